package ast

import (
	"fmt"
	"strings"

	"sculpt/internal/compiler"
	"sculpt/internal/structures"
	"sculpt/internal/textutil"
)

// NameNode returns the construct's name node. Identifier kinds name
// themselves.
func (n *Node) NameNode() (*Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	if identifierKinds[n.kind] {
		return n, nil
	}
	if name := raw.ChildByField("name"); name != nil {
		return n.context.getOrCreate(name, n.file), nil
	}
	if pattern := raw.ChildByField("pattern"); pattern != nil {
		return n.context.getOrCreate(pattern, n.file), nil
	}
	return nil, fmt.Errorf("%w: %s has no name", ErrInvalidOperation, n.kind)
}

// Name returns the construct's name text.
func (n *Node) Name() (string, error) {
	name, err := n.NameNode()
	if err != nil {
		return "", err
	}
	return name.Text()
}

// Rename replaces the construct's name text. Only this declaration is
// touched; references elsewhere are not rewritten. The name node's own
// handle does not survive the edit.
func (n *Node) Rename(newName string) error {
	if strings.TrimSpace(newName) == "" {
		return errBlank("name")
	}
	if strings.ContainsAny(newName, " \t\r\n") {
		return fmt.Errorf("%w: name %q contains whitespace", ErrInvalidOperation, newName)
	}
	name, err := n.NameNode()
	if err != nil {
		return err
	}
	raw, err := name.compilerNode()
	if err != nil {
		return err
	}
	return n.file.applyTextChange(textChange{start: raw.Start(), oldEnd: raw.End(), newText: newName})
}

// IsExported reports whether the declaration sits inside an export
// statement.
func (n *Node) IsExported() (bool, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return false, err
	}
	if !exportableKinds[n.kind] {
		return false, errUnsupported(n.kind, "export")
	}
	parent := raw.Parent()
	return parent != nil && parent.Kind() == compiler.KindExportStatement, nil
}

// SetExported wraps or unwraps the declaration in an export statement.
// The grammar nests exported declarations under a wrapper node, so the
// receiver's handle does not survive the change; the returned handle is
// the live declaration.
func (n *Node) SetExported(on bool) (*Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	if !exportableKinds[n.kind] {
		return nil, errUnsupported(n.kind, "export")
	}
	parent := raw.Parent()
	if parent == nil ||
		(parent.Kind() != compiler.KindProgram && parent.Kind() != compiler.KindExportStatement) {
		return nil, fmt.Errorf("%w: %s is not a top-level declaration", ErrInvalidOperation, n.kind)
	}
	exported := parent.Kind() == compiler.KindExportStatement
	if exported == on {
		return n, nil
	}
	if on {
		start := raw.Start()
		if err := n.file.applyTextChange(textChange{start: start, oldEnd: start, newText: "export "}); err != nil {
			return nil, err
		}
		return n.file.declarationAt(start, n.kind)
	}
	start := parent.Start()
	if err := n.file.applyTextChange(textChange{start: start, oldEnd: raw.Start()}); err != nil {
		return nil, err
	}
	return n.file.declarationAt(start, n.kind)
}

// hasModifierToken reports whether the keyword appears as a direct token
// child.
func hasModifierToken(raw *compiler.Node, kw string) bool {
	for _, c := range raw.Children() {
		if !c.Named() && c.Kind() == compiler.Kind(kw) {
			return true
		}
	}
	return false
}

// modifierInsertPos finds where a new modifier keyword belongs: after the
// decorators and after every present modifier of lower rank.
func modifierInsertPos(text []byte, raw *compiler.Node, kw string) int {
	rank := modifierRank[kw]
	pos := raw.Start()
	for _, c := range raw.Children() {
		switch {
		case c.Kind() == compiler.KindDecorator:
			pos = textutil.NextNonSpace(text, c.End())
			continue
		case c.Kind() == compiler.KindAccessibilityMod:
			if 0 < rank {
				pos = textutil.NextNonSpace(text, c.End())
				continue
			}
		case !c.Named():
			if r, ok := modifierRank[string(c.Kind())]; ok && r < rank {
				pos = textutil.NextNonSpace(text, c.End())
				continue
			}
		}
		break
	}
	return pos
}

// setModifierToken adds or removes a bare modifier keyword, preserving
// canonical modifier order.
func (n *Node) setModifierToken(kw string, on bool) error {
	raw, err := n.compilerNode()
	if err != nil {
		return err
	}
	text := n.file.text()
	if hasModifierToken(raw, kw) == on {
		return nil
	}
	if on {
		pos := modifierInsertPos(text, raw, kw)
		return n.file.applyTextChange(textChange{start: pos, oldEnd: pos, newText: kw + " "})
	}
	for _, c := range raw.Children() {
		if !c.Named() && c.Kind() == compiler.Kind(kw) {
			return n.file.applyTextChange(textChange{
				start:  c.Start(),
				oldEnd: textutil.NextNonSpace(text, c.End()),
			})
		}
	}
	return nil
}

// IsStatic reports whether the member carries the static modifier.
func (n *Node) IsStatic() (bool, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return false, err
	}
	return hasModifierToken(raw, "static"), nil
}

// SetStatic toggles the static modifier on a class member.
func (n *Node) SetStatic(on bool) error {
	if !staticableKinds[n.kind] {
		return errUnsupported(n.kind, "the static modifier")
	}
	return n.setModifierToken("static", on)
}

// IsReadonly reports whether the construct carries the readonly modifier.
func (n *Node) IsReadonly() (bool, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return false, err
	}
	return hasModifierToken(raw, "readonly"), nil
}

// SetReadonly toggles the readonly modifier.
func (n *Node) SetReadonly(on bool) error {
	if !readonlyableKinds[n.kind] {
		return errUnsupported(n.kind, "the readonly modifier")
	}
	return n.setModifierToken("readonly", on)
}

// IsAsync reports whether the callable carries the async modifier.
func (n *Node) IsAsync() (bool, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return false, err
	}
	return hasModifierToken(raw, "async"), nil
}

// SetAsync toggles the async modifier.
func (n *Node) SetAsync(on bool) error {
	if !asyncableKinds[n.kind] {
		return errUnsupported(n.kind, "the async modifier")
	}
	return n.setModifierToken("async", on)
}

// IsAbstract reports whether the construct is declared abstract.
func (n *Node) IsAbstract() (bool, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return false, err
	}
	return n.kind == compiler.KindAbstractClass || hasModifierToken(raw, "abstract"), nil
}

// SetAbstract rewrites the class's abstract keyword. Abstract classes
// have their own grammar kind, so the receiver's handle does not survive
// the change; callers continue with the returned handle.
func (n *Node) SetAbstract(on bool) (*Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	if n.kind != compiler.KindClassDeclaration && n.kind != compiler.KindAbstractClass {
		return nil, errUnsupported(n.kind, "the abstract modifier")
	}
	parent := raw.Parent()
	if parent == nil ||
		(parent.Kind() != compiler.KindProgram && parent.Kind() != compiler.KindExportStatement) {
		return nil, fmt.Errorf("%w: %s is not a top-level declaration", ErrInvalidOperation, n.kind)
	}
	if (n.kind == compiler.KindAbstractClass) == on {
		return n, nil
	}
	anchor := raw.Start()
	if on {
		for _, c := range raw.Children() {
			if !c.Named() && c.Kind() == "class" {
				at := c.Start()
				if err := n.file.applyTextChange(textChange{start: at, oldEnd: at, newText: "abstract "}); err != nil {
					return nil, err
				}
				return n.file.declarationAt(anchor, compiler.KindAbstractClass)
			}
		}
		return nil, fmt.Errorf("%w: class keyword not found", ErrConsistency)
	}
	for _, c := range raw.Children() {
		if !c.Named() && c.Kind() == "abstract" {
			if err := n.file.applyTextChange(textChange{
				start:  c.Start(),
				oldEnd: textutil.NextNonSpace(n.file.text(), c.End()),
			}); err != nil {
				return nil, err
			}
			return n.file.declarationAt(anchor, compiler.KindClassDeclaration)
		}
	}
	return nil, fmt.Errorf("%w: abstract keyword not found", ErrConsistency)
}

// TypeParameters returns the texts of the construct's type parameters.
func (n *Node) TypeParameters() ([]string, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	tp := raw.ChildByField("type_parameters")
	if tp == nil {
		return nil, nil
	}
	var out []string
	for _, c := range tp.Children() {
		if c.Named() {
			out = append(out, c.Text(n.file.text()))
		}
	}
	return out, nil
}

// SetTypeParameters writes the type parameter list after the name,
// replacing any present one. An empty slice leaves the construct alone.
func (n *Node) SetTypeParameters(params []string) error {
	if len(params) == 0 {
		return nil
	}
	raw, err := n.compilerNode()
	if err != nil {
		return err
	}
	rendered := "<" + strings.Join(params, ", ") + ">"
	if tp := raw.ChildByField("type_parameters"); tp != nil {
		return n.file.applyTextChange(textChange{start: tp.Start(), oldEnd: tp.End(), newText: rendered})
	}
	name, err := n.NameNode()
	if err != nil {
		return err
	}
	nameRaw, err := name.compilerNode()
	if err != nil {
		return err
	}
	at := nameRaw.End()
	return n.file.applyTextChange(textChange{start: at, oldEnd: at, newText: rendered})
}

// Scope returns the accessibility modifier, or the empty scope.
func (n *Node) Scope() (structures.Scope, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return "", err
	}
	if !scopedKinds[n.kind] {
		return "", errUnsupported(n.kind, "accessibility")
	}
	for _, c := range raw.Children() {
		if c.Kind() == compiler.KindAccessibilityMod {
			return structures.Scope(c.Text(n.file.text())), nil
		}
	}
	return "", nil
}

// SetScope replaces, inserts or (for the empty scope) removes the
// accessibility modifier.
func (n *Node) SetScope(s structures.Scope) error {
	switch s {
	case "", structures.ScopePublic, structures.ScopePrivate, structures.ScopeProtected:
	default:
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidOperation, s)
	}
	raw, err := n.compilerNode()
	if err != nil {
		return err
	}
	if !scopedKinds[n.kind] {
		return errUnsupported(n.kind, "accessibility")
	}
	text := n.file.text()
	for _, c := range raw.Children() {
		if c.Kind() != compiler.KindAccessibilityMod {
			continue
		}
		if s == "" {
			return n.file.applyTextChange(textChange{
				start:  c.Start(),
				oldEnd: textutil.NextNonSpace(text, c.End()),
			})
		}
		return n.file.applyTextChange(textChange{start: c.Start(), oldEnd: c.End(), newText: string(s)})
	}
	if s == "" {
		return nil
	}
	pos := modifierInsertPos(text, raw, string(s))
	return n.file.applyTextChange(textChange{start: pos, oldEnd: pos, newText: string(s) + " "})
}

// requireInitializerCapable guards the initializer family. Plain enum
// members qualify only inside an enum body.
func (n *Node) requireInitializerCapable() (*compiler.Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	if !initializerKinds[n.kind] {
		return nil, errUnsupported(n.kind, "an initializer")
	}
	if n.kind == compiler.KindPropertyIdentifier && enclosingContainer(raw) != compiler.KindEnumBody {
		return nil, errUnsupported(n.kind, "an initializer")
	}
	return raw, nil
}

// Initializer returns the initializer expression node, or nil.
func (n *Node) Initializer() (*Node, error) {
	raw, err := n.requireInitializerCapable()
	if err != nil {
		return nil, err
	}
	value := raw.ChildByField("value")
	if value == nil {
		return nil, nil
	}
	return n.context.getOrCreate(value, n.file), nil
}

// InitializerText returns the initializer expression's text, or "".
func (n *Node) InitializerText() (string, error) {
	value, err := n.Initializer()
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}
	return value.Text()
}

// HasInitializer reports whether an initializer is present.
func (n *Node) HasInitializer() (bool, error) {
	value, err := n.Initializer()
	if err != nil {
		return false, err
	}
	return value != nil, nil
}

// resolveSuccessor re-reads the construct at the same position in its
// sibling group after an edit changed its kind.
func (n *Node) resolveSuccessor(parent *Node, index int, op string) (*Node, error) {
	if n.raw != nil {
		return n, nil
	}
	parentRaw, err := parent.compilerNode()
	if err != nil {
		return nil, fmt.Errorf("%w: %s lost its parent", ErrConsistency, op)
	}
	if index < 0 || index >= parentRaw.ChildCount() {
		return nil, fmt.Errorf("%w: %s produced no successor node", ErrConsistency, op)
	}
	return n.context.getOrCreate(parentRaw.Child(index), n.file), nil
}

// SetInitializer writes ` = <expr>` over the current initializer, or
// inserts one before the trailing terminator. Setting a plain enum
// member's initializer turns it into an assignment node, so callers must
// continue with the returned handle.
func (n *Node) SetInitializer(expr string) (*Node, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, errBlank("initializer")
	}
	raw, err := n.requireInitializerCapable()
	if err != nil {
		return nil, err
	}
	parentRaw := raw.Parent()
	parent := n.context.getOrCreate(parentRaw, n.file)
	index := childIndexOf(parentRaw, raw)

	text := n.file.text()
	if value := raw.ChildByField("value"); value != nil {
		start := textutil.ScanBackOver(text, value.Start(), "=")
		if err := n.file.applyTextChange(textChange{start: start, oldEnd: value.End(), newText: " = " + expr}); err != nil {
			return nil, err
		}
	} else {
		at := raw.End()
		if at > 0 && text[at-1] == ';' {
			at--
		}
		if err := n.file.applyTextChange(textChange{start: at, oldEnd: at, newText: " = " + expr}); err != nil {
			return nil, err
		}
	}
	return n.resolveSuccessor(parent, index, "setting an initializer")
}

// RemoveInitializer deletes the initializer together with its equals
// sign. Removing an absent initializer is a no-op. An enum assignment
// collapses back to a plain member, so callers must continue with the
// returned handle.
func (n *Node) RemoveInitializer() (*Node, error) {
	raw, err := n.requireInitializerCapable()
	if err != nil {
		return nil, err
	}
	value := raw.ChildByField("value")
	if value == nil {
		return n, nil
	}
	parentRaw := raw.Parent()
	parent := n.context.getOrCreate(parentRaw, n.file)
	index := childIndexOf(parentRaw, raw)

	start := textutil.ScanBackOver(n.file.text(), value.Start(), "=")
	if err := n.file.applyTextChange(textChange{start: start, oldEnd: value.End()}); err != nil {
		return nil, err
	}
	return n.resolveSuccessor(parent, index, "removing an initializer")
}

func childIndexOf(parent, child *compiler.Node) int {
	for i, c := range parent.Children() {
		if c == child {
			return i
		}
	}
	return -1
}

// typeAnnotation returns the construct's type annotation node (colon
// included), or nil.
func (n *Node) typeAnnotation() (*compiler.Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	if !typedKinds[n.kind] {
		return nil, errUnsupported(n.kind, "a type annotation")
	}
	return raw.ChildByField("type"), nil
}

// TypeNode returns the declared type node, or nil when the construct has
// no annotation.
func (n *Node) TypeNode() (*Node, error) {
	ann, err := n.typeAnnotation()
	if err != nil || ann == nil {
		return nil, err
	}
	for _, c := range ann.Children() {
		if c.Named() {
			return n.context.getOrCreate(c, n.file), nil
		}
	}
	return n.context.getOrCreate(ann, n.file), nil
}

// TypeText returns the declared type's text, or "".
func (n *Node) TypeText() (string, error) {
	tn, err := n.TypeNode()
	if err != nil {
		return "", err
	}
	if tn == nil {
		return "", nil
	}
	return tn.Text()
}

// SetType writes the declared type, replacing the whole annotation or
// inserting one after the name. A construct that ended at its name grows
// past its old range, which can replace its handle; callers continue
// with the returned one.
func (n *Node) SetType(t string) (*Node, error) {
	if strings.TrimSpace(t) == "" {
		return nil, errBlank("type")
	}
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	if !typedKinds[n.kind] {
		return nil, errUnsupported(n.kind, "a type annotation")
	}
	parentRaw := raw.Parent()
	parent := n.context.getOrCreate(parentRaw, n.file)
	index := childIndexOf(parentRaw, raw)

	if ann := raw.ChildByField("type"); ann != nil {
		if err := n.file.applyTextChange(textChange{start: ann.Start(), oldEnd: ann.End(), newText: ": " + t}); err != nil {
			return nil, err
		}
		return n.resolveSuccessor(parent, index, "setting a type")
	}
	name, err := n.NameNode()
	if err != nil {
		return nil, err
	}
	nameRaw, err := name.compilerNode()
	if err != nil {
		return nil, err
	}
	at := nameRaw.End()
	text := n.file.text()
	if at < len(text) && text[at] == '?' {
		at++
	}
	if err := n.file.applyTextChange(textChange{start: at, oldEnd: at, newText: ": " + t}); err != nil {
		return nil, err
	}
	return n.resolveSuccessor(parent, index, "setting a type")
}

// RemoveType deletes the type annotation, colon included. Removing an
// absent annotation is a no-op.
func (n *Node) RemoveType() error {
	ann, err := n.typeAnnotation()
	if err != nil || ann == nil {
		return err
	}
	start := textutil.ScanBackOver(n.file.text(), ann.Start(), "")
	return n.file.applyTextChange(textChange{start: start, oldEnd: ann.End()})
}

// returnTypeAnnotation returns the return type annotation node, or nil.
func (n *Node) returnTypeAnnotation() (*compiler.Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	if !returnTypedKinds[n.kind] {
		return nil, errUnsupported(n.kind, "a return type")
	}
	return raw.ChildByField("return_type"), nil
}

// ReturnTypeText returns the declared return type's text, or "".
func (n *Node) ReturnTypeText() (string, error) {
	ann, err := n.returnTypeAnnotation()
	if err != nil || ann == nil {
		return "", err
	}
	for _, c := range ann.Children() {
		if c.Named() {
			return c.Text(n.file.text()), nil
		}
	}
	return "", nil
}

// SetReturnType writes the return type after the parameter list. A
// signature that ended at its parameter list grows past its old range,
// which can replace its handle; callers continue with the returned one.
func (n *Node) SetReturnType(t string) (*Node, error) {
	if strings.TrimSpace(t) == "" {
		return nil, errBlank("return type")
	}
	ann, err := n.returnTypeAnnotation()
	if err != nil {
		return nil, err
	}
	raw, _ := n.compilerNode()
	parentRaw := raw.Parent()
	parent := n.context.getOrCreate(parentRaw, n.file)
	index := childIndexOf(parentRaw, raw)

	if ann != nil {
		if err := n.file.applyTextChange(textChange{start: ann.Start(), oldEnd: ann.End(), newText: ": " + t}); err != nil {
			return nil, err
		}
		return n.resolveSuccessor(parent, index, "setting a return type")
	}
	params := raw.ChildByField("parameters")
	if params == nil {
		return nil, fmt.Errorf("%w: %s has no parameter list", ErrConsistency, n.kind)
	}
	at := params.End()
	if err := n.file.applyTextChange(textChange{start: at, oldEnd: at, newText: ": " + t}); err != nil {
		return nil, err
	}
	return n.resolveSuccessor(parent, index, "setting a return type")
}

// RemoveReturnType deletes the return type annotation. Removing an
// absent annotation is a no-op.
func (n *Node) RemoveReturnType() error {
	ann, err := n.returnTypeAnnotation()
	if err != nil || ann == nil {
		return err
	}
	start := textutil.ScanBackOver(n.file.text(), ann.Start(), "")
	return n.file.applyTextChange(textChange{start: start, oldEnd: ann.End()})
}

// Parameters returns the callable's parameter nodes.
func (n *Node) Parameters() ([]*Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	if !parameteredKinds[n.kind] {
		return nil, errUnsupported(n.kind, "parameters")
	}
	params := raw.ChildByField("parameters")
	if params == nil {
		return nil, nil
	}
	var out []*Node
	for _, c := range params.Children() {
		if c.Named() {
			out = append(out, n.context.getOrCreate(c, n.file))
		}
	}
	return out, nil
}

// InsertParameter renders a parameter into the callable's list at the
// parameter index and returns its handle.
func (n *Node) InsertParameter(index int, p structures.Parameter) (*Node, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, errBlank("parameter name")
	}
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	if !parameteredKinds[n.kind] {
		return nil, errUnsupported(n.kind, "parameters")
	}
	params := raw.ChildByField("parameters")
	if params == nil {
		return nil, fmt.Errorf("%w: %s has no parameter list", ErrConsistency, n.kind)
	}
	var els []*compiler.Node
	for _, c := range params.Children() {
		if c.Named() {
			els = append(els, c)
		}
	}
	if index < 0 || index > len(els) {
		return nil, fmt.Errorf("%w: parameter index %d out of range [0,%d]", ErrInvalidOperation, index, len(els))
	}

	rendered := renderParameter(p, n.context.format)
	var start int
	var fragment string
	switch {
	case len(els) == 0:
		start = params.Start() + 1
		fragment = rendered
	case index == 0:
		start = els[0].Pos()
		fragment = rendered + ", "
	default:
		var sepFound bool
		start, sepFound = insertionPoint(params, els[index-1])
		if sepFound {
			fragment = " " + rendered
		} else {
			fragment = ", " + rendered
		}
		if index < len(els) {
			fragment += ","
		}
	}

	paramsHandle := n.context.getOrCreate(params, n.file)
	if err := n.file.applyTextChange(textChange{start: start, oldEnd: start, newText: fragment}); err != nil {
		return nil, err
	}
	live, err := paramsHandle.compilerNode()
	if err != nil {
		return nil, fmt.Errorf("%w: parameter list did not survive the edit", ErrConsistency)
	}
	i := 0
	for _, c := range live.Children() {
		if !c.Named() {
			continue
		}
		if i == index {
			if c.Kind() != compiler.KindRequiredParameter && c.Kind() != compiler.KindOptionalParameter {
				return nil, fmt.Errorf("%w: inserted parameter parsed as %s", ErrConsistency, c.Kind())
			}
			return n.context.getOrCreate(c, n.file), nil
		}
		i++
	}
	return nil, fmt.Errorf("%w: inserted parameter not found", ErrConsistency)
}

// AddParameter appends a parameter to the callable's list.
func (n *Node) AddParameter(p structures.Parameter) (*Node, error) {
	params, err := n.Parameters()
	if err != nil {
		return nil, err
	}
	return n.InsertParameter(len(params), p)
}

// heritageClause finds an extends or implements clause, looking inside
// the class heritage wrapper when the grammar uses one.
func heritageClause(raw *compiler.Node, kind compiler.Kind) *compiler.Node {
	for _, c := range raw.Children() {
		if c.Kind() == kind {
			return c
		}
		if c.Kind() == compiler.KindClassHeritage {
			for _, h := range c.Children() {
				if h.Kind() == kind {
					return h
				}
			}
		}
	}
	return nil
}

// clauseTargets lists the named targets of a heritage clause.
func (n *Node) clauseTargets(kind compiler.Kind) ([]string, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	if !heritageKinds[n.kind] {
		return nil, errUnsupported(n.kind, "heritage clauses")
	}
	clause := heritageClause(raw, kind)
	if clause == nil {
		return nil, nil
	}
	var out []string
	for _, c := range clause.Children() {
		if c.Named() {
			out = append(out, c.Text(n.file.text()))
		}
	}
	return out, nil
}

// extendsKindFor names the grammar's extends clause for the construct:
// interfaces use a type clause of their own.
func extendsKindFor(k compiler.Kind) compiler.Kind {
	if k == compiler.KindInterfaceDeclaration {
		return compiler.KindExtendsTypeClause
	}
	return compiler.KindExtendsClause
}

// Extends lists the extended types: at most one for a class, any number
// for an interface.
func (n *Node) Extends() ([]string, error) {
	return n.clauseTargets(extendsKindFor(n.kind))
}

// Implements lists a class's implemented interface types.
func (n *Node) Implements() ([]string, error) {
	return n.clauseTargets(compiler.KindImplementsClause)
}

// heritageInsertPos is where a new heritage clause goes: right before the
// body, after the name and type parameters.
func (n *Node) heritageInsertPos(raw *compiler.Node) (int, error) {
	body := raw.ChildByField("body")
	if body == nil {
		return 0, fmt.Errorf("%w: %s has no body", ErrConsistency, n.kind)
	}
	return body.Pos(), nil
}

// SetExtends writes the extends clause, replacing any present one.
func (n *Node) SetExtends(target string) error {
	if strings.TrimSpace(target) == "" {
		return errBlank("extends target")
	}
	raw, err := n.compilerNode()
	if err != nil {
		return err
	}
	if !heritageKinds[n.kind] {
		return errUnsupported(n.kind, "heritage clauses")
	}
	if clause := heritageClause(raw, extendsKindFor(n.kind)); clause != nil {
		return n.file.applyTextChange(textChange{
			start:   clause.Start(),
			oldEnd:  clause.End(),
			newText: "extends " + target,
		})
	}
	at, err := n.heritageInsertPos(raw)
	if err != nil {
		return err
	}
	return n.file.applyTextChange(textChange{start: at, oldEnd: at, newText: " extends " + target})
}

// RemoveExtends deletes the extends clause. Removing an absent clause is
// a no-op.
func (n *Node) RemoveExtends() error {
	raw, err := n.compilerNode()
	if err != nil {
		return err
	}
	if !heritageKinds[n.kind] {
		return errUnsupported(n.kind, "heritage clauses")
	}
	clause := heritageClause(raw, extendsKindFor(n.kind))
	if clause == nil {
		return nil
	}
	start := textutil.ScanBackOver(n.file.text(), clause.Start(), "")
	return n.file.applyTextChange(textChange{start: start, oldEnd: clause.End()})
}

// AddExtends appends a target to an interface's extends clause, creating
// the clause when absent. Adding a target already present is a no-op.
func (n *Node) AddExtends(target string) error {
	return n.addClauseTarget(extendsKindFor(n.kind), "extends", target)
}

// AddImplements appends a target to a class's implements clause, creating
// the clause when absent. Adding a target already present is a no-op.
func (n *Node) AddImplements(target string) error {
	return n.addClauseTarget(compiler.KindImplementsClause, "implements", target)
}

func (n *Node) addClauseTarget(kind compiler.Kind, keyword, target string) error {
	if strings.TrimSpace(target) == "" {
		return errBlank(keyword + " target")
	}
	raw, err := n.compilerNode()
	if err != nil {
		return err
	}
	if !heritageKinds[n.kind] {
		return errUnsupported(n.kind, "heritage clauses")
	}
	if clause := heritageClause(raw, kind); clause != nil {
		for _, c := range clause.Children() {
			if c.Named() && c.Text(n.file.text()) == target {
				return nil
			}
		}
		at := clause.End()
		return n.file.applyTextChange(textChange{start: at, oldEnd: at, newText: ", " + target})
	}
	at, err := n.heritageInsertPos(raw)
	if err != nil {
		return err
	}
	return n.file.applyTextChange(textChange{start: at, oldEnd: at, newText: " " + keyword + " " + target})
}

// Decorators returns the construct's decorator nodes.
func (n *Node) Decorators() ([]*Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	var out []*Node
	for _, c := range raw.Children() {
		if c.Kind() == compiler.KindDecorator {
			out = append(out, n.context.getOrCreate(c, n.file))
		}
	}
	return out, nil
}

// AddDecorator writes a decorator on its own line above the construct.
// Adding a decorator whose name is already present is a no-op.
func (n *Node) AddDecorator(d structures.Decorator) error {
	if strings.TrimSpace(d.Name) == "" {
		return errBlank("decorator name")
	}
	raw, err := n.compilerNode()
	if err != nil {
		return err
	}
	existing, err := n.Decorators()
	if err != nil {
		return err
	}
	for _, dec := range existing {
		text, err := dec.Text()
		if err != nil {
			continue
		}
		if decoratorName(text) == d.Name {
			return nil
		}
	}
	text := n.file.text()
	indent := textutil.IndentationAt(text, raw.Start())
	// The construct's range starts at its first decorator; a new one goes
	// after the last present decorator, keeping declaration order.
	at := raw.Start()
	for _, c := range raw.Children() {
		if c.Kind() == compiler.KindDecorator {
			at = textutil.NextNonSpace(text, c.End())
		}
	}
	return n.file.applyTextChange(textChange{
		start:   at,
		oldEnd:  at,
		newText: renderDecorator(d) + n.context.format.NewLine + indent,
	})
}

// decoratorName extracts the bare name from decorator text.
func decoratorName(text string) string {
	text = strings.TrimPrefix(text, "@")
	if i := strings.IndexByte(text, '('); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// LeadingComments returns the comment blocks in the construct's leading
// trivia, in order.
func (n *Node) LeadingComments() ([]string, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	return scanComments(n.file.text(), raw.Pos(), raw.Start()), nil
}

// scanComments extracts // and /* */ comments from the text range.
func scanComments(text []byte, from, to int) []string {
	var out []string
	for i := from; i < to && i < len(text); i++ {
		if text[i] != '/' || i+1 >= len(text) {
			continue
		}
		switch text[i+1] {
		case '/':
			j := i
			for j < to && text[j] != '\n' {
				j++
			}
			out = append(out, string(text[i:j]))
			i = j
		case '*':
			j := i + 2
			for j+1 < to && !(text[j] == '*' && text[j+1] == '/') {
				j++
			}
			if j+1 < to {
				out = append(out, string(text[i:j+2]))
				i = j + 1
			}
		}
	}
	return out
}

// AddDocComment writes a doc comment block on the lines above the
// construct. Adding text that already appears in the leading trivia is a
// no-op.
func (n *Node) AddDocComment(doc string) error {
	if strings.TrimSpace(doc) == "" {
		return errBlank("doc comment")
	}
	raw, err := n.compilerNode()
	if err != nil {
		return err
	}
	text := n.file.text()
	if strings.Contains(string(text[raw.Pos():raw.Start()]), doc) {
		return nil
	}
	indent := textutil.IndentationAt(text, raw.Start())
	block := renderDocComment(doc, indent, n.context.format)
	at := textutil.LineStart(text, raw.Start())
	if !textutil.IsFirstOnLine(text, raw.Start()) {
		at = raw.Start()
	}
	return n.file.applyTextChange(textChange{start: at, oldEnd: at, newText: block})
}
