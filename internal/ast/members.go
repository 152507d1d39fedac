package ast

import (
	"fmt"
	"strings"

	"sculpt/internal/compiler"
	"sculpt/internal/structures"
	"sculpt/internal/textutil"
)

// bodyNode resolves the braced member container of a declaration: the
// class body, enum body, interface body or statement block. Called on a
// container kind it returns the node itself.
func (n *Node) bodyNode() (*compiler.Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	if compiler.IsListContainer(raw.Kind()) {
		return raw, nil
	}
	if body := raw.ChildByField("body"); body != nil && compiler.IsListContainer(body.Kind()) {
		return body, nil
	}
	for _, c := range raw.Children() {
		if compiler.IsListContainer(c.Kind()) {
			return c, nil
		}
	}
	return nil, errUnsupported(n.kind, "member access")
}

// elementsOf returns the named elements of a member container in order.
// Empty containers have no syntax list and return nil; the program root
// lists its statements directly.
func elementsOf(container *compiler.Node) []*compiler.Node {
	var out []*compiler.Node
	if container.Kind() == compiler.KindProgram {
		for _, c := range container.Children() {
			if c.Named() {
				out = append(out, c)
			}
		}
		return out
	}
	for _, c := range container.Children() {
		if c.Kind() != compiler.KindSyntaxList {
			continue
		}
		for _, el := range c.Children() {
			if el.Named() {
				out = append(out, el)
			}
		}
		return out
	}
	return nil
}

// flattenContainer lists a container's children with syntax list elements
// inlined, separator tokens included.
func flattenContainer(container *compiler.Node) []*compiler.Node {
	var out []*compiler.Node
	for _, c := range container.Children() {
		if c.Kind() == compiler.KindSyntaxList {
			out = append(out, c.Children()...)
			continue
		}
		out = append(out, c)
	}
	return out
}

// insertionPoint returns the splice offset following element prev. The
// offset sits past prev's trailing separator token when one exists, so
// that inserted text never lands between a member and its terminator.
func insertionPoint(container, prev *compiler.Node) (pos int, sepFound bool) {
	pos = prev.End()
	flat := flattenContainer(container)
	for i, c := range flat {
		if c != prev {
			continue
		}
		if i+1 < len(flat) {
			k := flat[i+1].Kind()
			if k == "," || k == ";" {
				pos = flat[i+1].End()
				sepFound = true
			}
		}
		return pos, sepFound
	}
	return pos, false
}

// Members returns the named members of a braced declaration body: class
// properties and methods, enum members, interface signatures or block
// statements. The slice is recomputed from the live tree on every call.
func (n *Node) Members() ([]*Node, error) {
	body, err := n.bodyNode()
	if err != nil {
		return nil, err
	}
	els := elementsOf(body)
	out := make([]*Node, len(els))
	for i, el := range els {
		out[i] = n.context.getOrCreate(el, n.file)
	}
	return out, nil
}

// MemberCount reports the number of named members in the body.
func (n *Node) MemberCount() (int, error) {
	body, err := n.bodyNode()
	if err != nil {
		return 0, err
	}
	return len(elementsOf(body)), nil
}

// insertItem is one rendered element of a member insertion: its text,
// the kinds it may parse to (empty accepts any) and whether it carries a
// braced body, which earns it blank-line separation from its neighbors.
type insertItem struct {
	text   string
	bodied bool
	kinds  []compiler.Kind
}

func kindIn(k compiler.Kind, kinds []compiler.Kind) bool {
	for _, c := range kinds {
		if k == c {
			return true
		}
	}
	return false
}

// insertElements renders items into the receiver's body at the element
// index with a single splice and re-parse, then returns handles for the
// created elements. The receiver and every member outside the insertion
// point keep their handles.
func (n *Node) insertElements(index int, items []insertItem) ([]*Node, error) {
	if len(items) == 0 {
		return nil, nil
	}
	body, err := n.bodyNode()
	if err != nil {
		return nil, err
	}
	return n.file.insertIntoContainer(body, index, items)
}

func (f *SourceFile) insertIntoContainer(container *compiler.Node, index int, items []insertItem) ([]*Node, error) {
	els := elementsOf(container)
	if index < 0 || index > len(els) {
		return nil, fmt.Errorf("%w: member index %d out of range [0,%d]", ErrInvalidOperation, index, len(els))
	}

	text := f.text()
	nl := f.context.format.NewLine
	fileLevel := container.Kind() == compiler.KindProgram
	sepToken := ""
	if container.Kind() == compiler.KindEnumBody {
		sepToken = ","
	}

	memberIndent := ""
	ownerIndent := ""
	if !fileLevel {
		anchor := container
		if p := container.Parent(); p != nil {
			anchor = p
		}
		ownerIndent = textutil.IndentationAt(text, anchor.Start())
		memberIndent = ownerIndent + f.context.format.Indent
	}

	// Splice boundaries and surroundings.
	wasEmpty := len(els) == 0
	hasPrev := !wasEmpty && index > 0
	hasNext := !wasEmpty && index < len(els)
	var start, end int
	sepFound := false
	needClose := false
	switch {
	case fileLevel && wasEmpty:
		start, end = 0, 0
	case wasEmpty:
		// Replace the whitespace between the braces, unless comment
		// trivia lives there; then insert right after the opening brace.
		kids := container.Children()
		if len(kids) < 2 {
			return nil, fmt.Errorf("%w: %s has no braces to insert into", ErrConsistency, container.Kind())
		}
		start = kids[0].End()
		end = kids[len(kids)-1].Start()
		if textutil.NextNonSpace(text, start) < end {
			end = start
		} else {
			needClose = true
		}
	case index == 0:
		start = els[0].Pos()
		end = start
	default:
		start, sepFound = insertionPoint(container, els[index-1])
		end = start
	}

	var b strings.Builder
	prevBodied := hasPrev && compiler.IsBodied(els[index-1].Kind())
	openLine := !fileLevel || hasPrev
	for i, item := range items {
		if i == 0 && hasPrev && !sepFound {
			b.WriteString(sepToken)
		}
		if i > 0 || openLine {
			b.WriteString(nl)
			if (i > 0 || hasPrev) && (prevBodied || item.bodied) {
				b.WriteString(nl)
			}
		}
		b.WriteString(textutil.Indent(item.text, memberIndent))
		if i < len(items)-1 {
			b.WriteString(sepToken)
		}
		prevBodied = item.bodied
	}
	switch {
	case hasNext:
		next := els[index]
		b.WriteString(sepToken)
		needed := 1
		if prevBodied || compiler.IsBodied(next.Kind()) {
			needed = 2
		}
		have := countNewlines(text, start, next.Start())
		for ; have < needed; have++ {
			b.WriteString(nl)
		}
	case needClose:
		b.WriteString(nl)
		b.WriteString(ownerIndent)
	case fileLevel:
		if countNewlines(text, start, len(text)) == 0 {
			b.WriteString(nl)
		}
	}

	containerHandle := f.context.getOrCreate(container, f)
	if err := f.applyTextChange(textChange{start: start, oldEnd: end, newText: b.String()}); err != nil {
		return nil, err
	}

	live, err := containerHandle.compilerNode()
	if err != nil {
		return nil, fmt.Errorf("%w: member container did not survive the edit", ErrConsistency)
	}
	newEls := elementsOf(live)
	if len(newEls) != len(els)+len(items) {
		return nil, fmt.Errorf("%w: expected %d members after insert, found %d",
			ErrConsistency, len(els)+len(items), len(newEls))
	}
	out := make([]*Node, len(items))
	for i := range items {
		el := newEls[index+i]
		if len(items[i].kinds) > 0 && !kindIn(el.Kind(), items[i].kinds) {
			return nil, fmt.Errorf("%w: inserted member %d parsed as %s", ErrConsistency, i, el.Kind())
		}
		out[i] = f.context.getOrCreate(el, f)
	}
	return out, nil
}

func countNewlines(text []byte, from, to int) int {
	n := 0
	for i := from; i < to && i < len(text); i++ {
		if text[i] == '\n' {
			n++
		}
	}
	return n
}

// requireBody checks that the receiver's body has one of the given kinds.
func (n *Node) requireBody(op string, kinds ...compiler.Kind) (*compiler.Node, error) {
	body, err := n.bodyNode()
	if err != nil {
		return nil, err
	}
	if !kindIn(body.Kind(), kinds) {
		return nil, errUnsupported(n.kind, op)
	}
	return body, nil
}

// InsertMemberText splices raw member text at the element index and
// returns the created member. Bodied members are recognized by a brace
// in the text and separated with blank lines.
func (n *Node) InsertMemberText(index int, text string) (*Node, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errBlank("member text")
	}
	created, err := n.insertElements(index, []insertItem{{
		text:   text,
		bodied: strings.Contains(text, "{"),
	}})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// AddMemberText appends raw member text to the body.
func (n *Node) AddMemberText(text string) (*Node, error) {
	count, err := n.MemberCount()
	if err != nil {
		return nil, err
	}
	return n.InsertMemberText(count, text)
}

// InsertProperties inserts property declarations into a class body at the
// member index, batched into one re-parse.
func (n *Node) InsertProperties(index int, props []structures.Property) ([]*Node, error) {
	if _, err := n.requireBody("properties", compiler.KindClassBody); err != nil {
		return nil, err
	}
	items := make([]insertItem, len(props))
	for i, p := range props {
		if strings.TrimSpace(p.Name) == "" {
			return nil, errBlank("property name")
		}
		items[i] = insertItem{
			text:  renderProperty(p, n.context.format),
			kinds: []compiler.Kind{compiler.KindFieldDefinition},
		}
	}
	return n.insertElements(index, items)
}

// InsertProperty inserts one property declaration at the member index.
func (n *Node) InsertProperty(index int, p structures.Property) (*Node, error) {
	created, err := n.InsertProperties(index, []structures.Property{p})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// AddProperty appends a property declaration to a class body.
func (n *Node) AddProperty(p structures.Property) (*Node, error) {
	count, err := n.MemberCount()
	if err != nil {
		return nil, err
	}
	return n.InsertProperty(count, p)
}

// AddProperties appends property declarations to a class body in one
// re-parse.
func (n *Node) AddProperties(props []structures.Property) ([]*Node, error) {
	count, err := n.MemberCount()
	if err != nil {
		return nil, err
	}
	return n.InsertProperties(count, props)
}

// InsertMethods inserts method declarations into a class body at the
// member index, batched into one re-parse.
func (n *Node) InsertMethods(index int, methods []structures.Method) ([]*Node, error) {
	if _, err := n.requireBody("methods", compiler.KindClassBody); err != nil {
		return nil, err
	}
	items := make([]insertItem, len(methods))
	for i, m := range methods {
		if strings.TrimSpace(m.Name) == "" {
			return nil, errBlank("method name")
		}
		items[i] = insertItem{
			text:   renderMethod(m, n.context.format),
			bodied: true,
			kinds:  []compiler.Kind{compiler.KindMethodDefinition},
		}
	}
	return n.insertElements(index, items)
}

// InsertMethod inserts one method declaration at the member index.
func (n *Node) InsertMethod(index int, m structures.Method) (*Node, error) {
	created, err := n.InsertMethods(index, []structures.Method{m})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// AddMethod appends a method declaration to a class body.
func (n *Node) AddMethod(m structures.Method) (*Node, error) {
	count, err := n.MemberCount()
	if err != nil {
		return nil, err
	}
	return n.InsertMethod(count, m)
}

// InsertEnumMembers inserts members into an enum body at the member
// index, batched into one re-parse. Comma separators are managed here;
// member structures never carry them.
func (n *Node) InsertEnumMembers(index int, members []structures.EnumMember) ([]*Node, error) {
	if _, err := n.requireBody("enum members", compiler.KindEnumBody); err != nil {
		return nil, err
	}
	items := make([]insertItem, len(members))
	for i, m := range members {
		if strings.TrimSpace(m.Name) == "" {
			return nil, errBlank("enum member name")
		}
		items[i] = insertItem{
			text: renderEnumMember(m, n.context.format),
			kinds: []compiler.Kind{
				compiler.KindEnumAssignment,
				compiler.KindPropertyIdentifier,
			},
		}
	}
	return n.insertElements(index, items)
}

// InsertEnumMember inserts one enum member at the member index.
func (n *Node) InsertEnumMember(index int, m structures.EnumMember) (*Node, error) {
	created, err := n.InsertEnumMembers(index, []structures.EnumMember{m})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// AddEnumMember appends a member to an enum body.
func (n *Node) AddEnumMember(m structures.EnumMember) (*Node, error) {
	count, err := n.MemberCount()
	if err != nil {
		return nil, err
	}
	return n.InsertEnumMember(count, m)
}

// InsertSignatures inserts property and method signatures into an
// interface body at the member index.
func (n *Node) InsertSignatures(index int, props []structures.PropertySignature, methods []structures.MethodSignature) ([]*Node, error) {
	if _, err := n.requireBody("signatures", compiler.KindInterfaceBody, compiler.KindObjectType); err != nil {
		return nil, err
	}
	items := make([]insertItem, 0, len(props)+len(methods))
	for _, p := range props {
		if strings.TrimSpace(p.Name) == "" {
			return nil, errBlank("property signature name")
		}
		items = append(items, insertItem{
			text:  renderPropertySignature(p, n.context.format),
			kinds: []compiler.Kind{compiler.KindPropertySignature},
		})
	}
	for _, m := range methods {
		if strings.TrimSpace(m.Name) == "" {
			return nil, errBlank("method signature name")
		}
		items = append(items, insertItem{
			text:  renderMethodSignature(m, n.context.format),
			kinds: []compiler.Kind{compiler.KindMethodSignature},
		})
	}
	return n.insertElements(index, items)
}

// AddPropertySignature appends a property signature to an interface body.
func (n *Node) AddPropertySignature(p structures.PropertySignature) (*Node, error) {
	count, err := n.MemberCount()
	if err != nil {
		return nil, err
	}
	created, err := n.InsertSignatures(count, []structures.PropertySignature{p}, nil)
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// AddMethodSignature appends a method signature to an interface body.
func (n *Node) AddMethodSignature(m structures.MethodSignature) (*Node, error) {
	count, err := n.MemberCount()
	if err != nil {
		return nil, err
	}
	created, err := n.InsertSignatures(count, nil, []structures.MethodSignature{m})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// InsertStatements inserts raw statement texts into a braced statement
// body at the statement index.
func (n *Node) InsertStatements(index int, stmts []string) ([]*Node, error) {
	if _, err := n.requireBody("statements", compiler.KindStatementBlock); err != nil {
		return nil, err
	}
	items := make([]insertItem, len(stmts))
	for i, s := range stmts {
		if strings.TrimSpace(s) == "" {
			return nil, errBlank("statement")
		}
		items[i] = insertItem{text: s, bodied: strings.Contains(s, "{")}
	}
	return n.insertElements(index, items)
}

// AddStatements appends raw statement texts to a braced statement body.
func (n *Node) AddStatements(stmts []string) ([]*Node, error) {
	count, err := n.MemberCount()
	if err != nil {
		return nil, err
	}
	return n.InsertStatements(count, stmts)
}
