package ast

import (
	"strings"

	"sculpt/internal/compiler"
	"sculpt/internal/textutil"
)

// removalPolicy names which separator a removed construct absorbs.
// Comma elements take the following comma, or the preceding one when
// they close their group. Semicolon-terminated members take the
// following semicolon. Statements carry their terminator inside their
// own range and need neither.
type removalPolicy struct {
	trailing string
	leading  string
}

var removalPolicies = map[compiler.Kind]removalPolicy{
	compiler.KindPropertyIdentifier:   {trailing: ",", leading: ","},
	compiler.KindEnumAssignment:       {trailing: ",", leading: ","},
	compiler.KindRequiredParameter:    {trailing: ",", leading: ","},
	compiler.KindOptionalParameter:    {trailing: ",", leading: ","},
	compiler.KindVariableDeclarator:   {trailing: ",", leading: ","},
	compiler.KindFieldDefinition:      {trailing: ";"},
	compiler.KindMethodDefinition:     {trailing: ";"},
	compiler.KindPropertySignature:    {trailing: ";,"},
	compiler.KindMethodSignature:      {trailing: ";,"},
	compiler.KindClassDeclaration:     {},
	compiler.KindAbstractClass:        {},
	compiler.KindInterfaceDeclaration: {},
	compiler.KindEnumDeclaration:      {},
	compiler.KindFunctionDeclaration:  {},
	compiler.KindTypeAliasDeclaration: {},
	compiler.KindLexicalDeclaration:   {},
	compiler.KindVariableStatement:    {},
	compiler.KindExpressionStatement:  {},
	compiler.KindExportStatement:      {},
	compiler.KindDecorator:            {},
}

// Remove deletes the construct's text together with its leading trivia,
// absorbing one neighboring separator per its kind's policy. The handle
// and every descendant handle are disposed by the following re-parse.
func (n *Node) Remove() error {
	raw, err := n.compilerNode()
	if err != nil {
		return err
	}
	policy, ok := removalPolicies[n.kind]
	if !ok {
		return errUnsupported(n.kind, "removal")
	}

	// A bare identifier is only removable as an enum member.
	if n.kind == compiler.KindPropertyIdentifier && enclosingContainer(raw) != compiler.KindEnumBody {
		return errUnsupported(n.kind, "removal")
	}

	// Removing the last declarator of a variable statement removes the
	// whole statement; "const ;" is not a construct.
	if n.kind == compiler.KindVariableDeclarator {
		if parent := raw.Parent(); parent != nil && countKind(parent, compiler.KindVariableDeclarator) == 1 {
			return n.context.getOrCreate(parent, n.file).Remove()
		}
	}

	text := n.file.text()
	start, end := raw.Pos(), raw.End()
	absorbed := false
	if policy.trailing != "" {
		if nxt := textutil.NextNonSpace(text, end); nxt < len(text) && strings.IndexByte(policy.trailing, text[nxt]) >= 0 {
			end = nxt + 1
			// Take the horizontal gap after the separator too, so inline
			// removals leave no double space. Newlines stay: the next
			// element keeps its line.
			for end < len(text) && (text[end] == ' ' || text[end] == '\t') {
				end++
			}
			absorbed = true
		}
	}
	if !absorbed && policy.leading != "" {
		start = textutil.ScanBackOver(text, start, policy.leading)
	}

	// A removal that begins at its own line start (first statement of a
	// file, a leading decorator) would otherwise leave the line's newline
	// behind.
	if start == textutil.LineStart(text, start) && end < len(text) && text[end] == '\n' {
		end++
	}
	return n.file.applyTextChange(textChange{start: start, oldEnd: end})
}

// enclosingContainer names the kind of the body the node is an element
// of, hopping over the syntax list, or "" when it is not a list element.
func enclosingContainer(raw *compiler.Node) compiler.Kind {
	parent := raw.Parent()
	if parent == nil || parent.Kind() != compiler.KindSyntaxList {
		return ""
	}
	container := parent.Parent()
	if container == nil {
		return ""
	}
	return container.Kind()
}

func countKind(parent *compiler.Node, kind compiler.Kind) int {
	n := 0
	for _, c := range parent.Children() {
		if c.Kind() == kind {
			n++
		}
	}
	return n
}
