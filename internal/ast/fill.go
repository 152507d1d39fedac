package ast

import (
	"sculpt/internal/compiler"
	"sculpt/internal/structures"
)

// Filling applies a structure to an existing declaration as a series of
// edits. Shared facets go first (docs, decorators, modifiers), then the
// construct's own (heritage, types, initializers), and members last, so
// earlier edits never invalidate the offsets later ones compute. Zero
// fields are skipped and present state is re-checked per facet, which
// makes filling the same structure twice a no-op. Facets that change the
// declaration's kind hand back a fresh handle; callers continue with the
// returned one.

// FillClass applies s to an existing class declaration.
func FillClass(n *Node, s structures.Class) (*Node, error) {
	cur := n
	if err := fillPreamble(cur, s.Docs, s.Decorators); err != nil {
		return nil, err
	}
	if s.IsExported {
		fresh, err := cur.SetExported(true)
		if err != nil {
			return nil, err
		}
		cur = fresh
	}
	if s.IsAbstract {
		fresh, err := cur.SetAbstract(true)
		if err != nil {
			return nil, err
		}
		cur = fresh
	}
	if err := fillTypeParameters(cur, s.TypeParameters); err != nil {
		return nil, err
	}
	if s.Extends != "" {
		if err := fillExtends(cur, s.Extends); err != nil {
			return nil, err
		}
	}
	for _, target := range s.Implements {
		if err := cur.AddImplements(target); err != nil {
			return nil, err
		}
	}
	for _, p := range s.Properties {
		existing, err := memberByName(cur, p.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if _, err := FillProperty(existing, p); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := cur.AddProperty(p); err != nil {
			return nil, err
		}
	}
	for _, m := range s.Methods {
		existing, err := memberByName(cur, m.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if _, err := FillMethod(existing, m); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := cur.AddMethod(m); err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// FillProperty applies s to an existing class property. The structure's
// name is the lookup key, never a rename. A property that gains its
// first annotation or initializer grows past its old range, so callers
// continue with the returned handle.
func FillProperty(n *Node, s structures.Property) (*Node, error) {
	cur := n
	if err := fillPreamble(cur, s.Docs, s.Decorators); err != nil {
		return nil, err
	}
	if s.Scope != "" {
		if err := fillScope(cur, s.Scope); err != nil {
			return nil, err
		}
	}
	if s.IsStatic {
		if err := cur.SetStatic(true); err != nil {
			return nil, err
		}
	}
	if s.IsReadonly {
		if err := cur.SetReadonly(true); err != nil {
			return nil, err
		}
	}
	if s.IsOptional {
		fresh, err := ensureOptionalMarker(cur)
		if err != nil {
			return nil, err
		}
		cur = fresh
	}
	if s.Type != "" {
		fresh, err := fillType(cur, s.Type)
		if err != nil {
			return nil, err
		}
		cur = fresh
	}
	if s.Initializer != "" {
		fresh, err := fillInitializer(cur, s.Initializer)
		if err != nil {
			return nil, err
		}
		cur = fresh
	}
	return cur, nil
}

// FillMethod applies the facets of s that decorate an existing method:
// docs, decorators, modifiers and the return type. Parameters and body
// statements belong to the method's callers and are left untouched.
func FillMethod(n *Node, s structures.Method) (*Node, error) {
	cur := n
	if err := fillPreamble(cur, s.Docs, s.Decorators); err != nil {
		return nil, err
	}
	if s.Scope != "" {
		if err := fillScope(cur, s.Scope); err != nil {
			return nil, err
		}
	}
	if s.IsStatic {
		if err := cur.SetStatic(true); err != nil {
			return nil, err
		}
	}
	if s.IsAsync {
		if err := cur.SetAsync(true); err != nil {
			return nil, err
		}
	}
	if s.ReturnType != "" {
		fresh, err := fillReturnType(cur, s.ReturnType)
		if err != nil {
			return nil, err
		}
		cur = fresh
	}
	return cur, nil
}

// FillInterface applies s to an existing interface declaration.
func FillInterface(n *Node, s structures.Interface) (*Node, error) {
	cur := n
	for _, d := range s.Docs {
		if err := cur.AddDocComment(d); err != nil {
			return nil, err
		}
	}
	if s.IsExported {
		fresh, err := cur.SetExported(true)
		if err != nil {
			return nil, err
		}
		cur = fresh
	}
	if err := fillTypeParameters(cur, s.TypeParameters); err != nil {
		return nil, err
	}
	for _, target := range s.Extends {
		if err := cur.AddExtends(target); err != nil {
			return nil, err
		}
	}
	for _, p := range s.Properties {
		existing, err := memberByName(cur, p.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if _, err := FillPropertySignature(existing, p); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := cur.AddPropertySignature(p); err != nil {
			return nil, err
		}
	}
	for _, m := range s.Methods {
		existing, err := memberByName(cur, m.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if _, err := FillMethodSignature(existing, m); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := cur.AddMethodSignature(m); err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// FillPropertySignature applies s to an existing interface property.
// A bare signature that gains its first annotation grows past its old
// range, so callers continue with the returned handle.
func FillPropertySignature(n *Node, s structures.PropertySignature) (*Node, error) {
	cur := n
	for _, d := range s.Docs {
		if err := cur.AddDocComment(d); err != nil {
			return nil, err
		}
	}
	if s.IsReadonly {
		if err := cur.SetReadonly(true); err != nil {
			return nil, err
		}
	}
	if s.IsOptional {
		fresh, err := ensureOptionalMarker(cur)
		if err != nil {
			return nil, err
		}
		cur = fresh
	}
	if s.Type != "" {
		fresh, err := fillType(cur, s.Type)
		if err != nil {
			return nil, err
		}
		cur = fresh
	}
	return cur, nil
}

// FillMethodSignature applies s to an existing interface method.
func FillMethodSignature(n *Node, s structures.MethodSignature) (*Node, error) {
	cur := n
	for _, d := range s.Docs {
		if err := cur.AddDocComment(d); err != nil {
			return nil, err
		}
	}
	if s.ReturnType != "" {
		fresh, err := fillReturnType(cur, s.ReturnType)
		if err != nil {
			return nil, err
		}
		cur = fresh
	}
	return cur, nil
}

// FillEnum applies s to an existing enum declaration.
func FillEnum(n *Node, s structures.Enum) (*Node, error) {
	cur := n
	for _, d := range s.Docs {
		if err := cur.AddDocComment(d); err != nil {
			return nil, err
		}
	}
	if s.IsExported {
		fresh, err := cur.SetExported(true)
		if err != nil {
			return nil, err
		}
		cur = fresh
	}
	if s.IsConst {
		if err := ensureConstEnum(cur); err != nil {
			return nil, err
		}
	}
	for _, m := range s.Members {
		existing, err := memberByName(cur, m.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if _, err := FillEnumMember(existing, m); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := cur.AddEnumMember(m); err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// FillEnumMember applies s to an existing enum member. Writing a value
// onto a plain member changes its kind, so callers continue with the
// returned handle.
func FillEnumMember(n *Node, s structures.EnumMember) (*Node, error) {
	cur := n
	for _, d := range s.Docs {
		if err := cur.AddDocComment(d); err != nil {
			return nil, err
		}
	}
	if s.Value != "" {
		have, err := cur.InitializerText()
		if err != nil {
			return nil, err
		}
		if have != s.Value {
			fresh, err := cur.SetInitializer(s.Value)
			if err != nil {
				return nil, err
			}
			cur = fresh
		}
	}
	return cur, nil
}

// FillFunction applies the decorating facets of s to an existing
// function declaration.
func FillFunction(n *Node, s structures.Function) (*Node, error) {
	cur := n
	for _, d := range s.Docs {
		if err := cur.AddDocComment(d); err != nil {
			return nil, err
		}
	}
	if s.IsExported {
		fresh, err := cur.SetExported(true)
		if err != nil {
			return nil, err
		}
		cur = fresh
	}
	if s.IsAsync {
		if err := cur.SetAsync(true); err != nil {
			return nil, err
		}
	}
	if err := fillTypeParameters(cur, s.TypeParameters); err != nil {
		return nil, err
	}
	if s.ReturnType != "" {
		fresh, err := fillReturnType(cur, s.ReturnType)
		if err != nil {
			return nil, err
		}
		cur = fresh
	}
	return cur, nil
}

// The fill helpers below re-read the construct before writing, so a
// facet already in the requested state costs no edit.

func fillScope(n *Node, s structures.Scope) error {
	have, err := n.Scope()
	if err != nil {
		return err
	}
	if have == s {
		return nil
	}
	return n.SetScope(s)
}

func fillType(n *Node, t string) (*Node, error) {
	have, err := n.TypeText()
	if err != nil {
		return nil, err
	}
	if have == t {
		return n, nil
	}
	return n.SetType(t)
}

func fillInitializer(n *Node, expr string) (*Node, error) {
	have, err := n.InitializerText()
	if err != nil {
		return nil, err
	}
	if have == expr {
		return n, nil
	}
	return n.SetInitializer(expr)
}

func fillReturnType(n *Node, t string) (*Node, error) {
	have, err := n.ReturnTypeText()
	if err != nil {
		return nil, err
	}
	if have == t {
		return n, nil
	}
	return n.SetReturnType(t)
}

func fillTypeParameters(n *Node, params []string) error {
	if len(params) == 0 {
		return nil
	}
	have, err := n.TypeParameters()
	if err != nil {
		return err
	}
	if len(have) == len(params) {
		same := true
		for i := range have {
			if have[i] != params[i] {
				same = false
				break
			}
		}
		if same {
			return nil
		}
	}
	return n.SetTypeParameters(params)
}

func fillExtends(n *Node, target string) error {
	have, err := n.Extends()
	if err != nil {
		return err
	}
	if len(have) == 1 && have[0] == target {
		return nil
	}
	return n.SetExtends(target)
}

func fillPreamble(n *Node, docs []string, decorators []structures.Decorator) error {
	for _, d := range docs {
		if err := n.AddDocComment(d); err != nil {
			return err
		}
	}
	for _, d := range decorators {
		if err := n.AddDecorator(d); err != nil {
			return err
		}
	}
	return nil
}

// memberByName finds the body member whose name matches, or nil.
// Unnamed members (index signatures, string literal keys) are skipped.
func memberByName(container *Node, name string) (*Node, error) {
	members, err := container.Members()
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		got, err := m.Name()
		if err != nil {
			continue
		}
		if got == name {
			return m, nil
		}
	}
	return nil, nil
}

// ensureOptionalMarker writes the "?" after the member's name. A member
// that ended at its name grows past its old range, which can replace its
// handle.
func ensureOptionalMarker(n *Node) (*Node, error) {
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
		return n, nil
	}
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	parentRaw := raw.Parent()
	parent := n.context.getOrCreate(parentRaw, n.file)
	index := childIndexOf(parentRaw, raw)
	if err := n.file.applyTextChange(textChange{start: at, oldEnd: at, newText: "?"}); err != nil {
		return nil, err
	}
	return n.resolveSuccessor(parent, index, "marking optional")
}

// ensureConstEnum writes the "const" keyword in front of the enum
// keyword. Unlike abstract on classes, const does not move the enum to a
// different grammar kind, so the handle survives.
func ensureConstEnum(n *Node) error {
	raw, err := n.compilerNode()
	if err != nil {
		return err
	}
	if n.kind != compiler.KindEnumDeclaration {
		return errUnsupported(n.kind, "the const modifier")
	}
	for _, c := range raw.Children() {
		if !c.Named() && c.Kind() == "const" {
			return nil
		}
	}
	for _, c := range raw.Children() {
		if !c.Named() && c.Kind() == "enum" {
			at := c.Start()
			return n.file.applyTextChange(textChange{start: at, oldEnd: at, newText: "const "})
		}
	}
	return errUnsupported(n.kind, "the const modifier")
}
