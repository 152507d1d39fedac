package ast

import (
	"fmt"

	"sculpt/internal/compiler"
	"sculpt/internal/textutil"
)

// Children returns handles for every direct child, tokens included.
// Elements grouped under a synthesized syntax list appear as that single
// list child; use Members or the list's own Children to reach them.
func (n *Node) Children() ([]*Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	children := raw.Children()
	out := make([]*Node, len(children))
	for i, c := range children {
		out[i] = n.context.getOrCreate(c, n.file)
	}
	return out, nil
}

// ChildCount reports the number of direct children.
func (n *Node) ChildCount() (int, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return 0, err
	}
	return raw.ChildCount(), nil
}

// Child returns the i-th direct child, or nil when out of range.
func (n *Node) Child(i int) (*Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= raw.ChildCount() {
		return nil, nil
	}
	return n.context.getOrCreate(raw.Child(i), n.file), nil
}

// Parent returns the enclosing construct. Synthesized syntax lists are
// skipped: a list element's parent is the list's container. The root
// returns nil.
func (n *Node) Parent() (*Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	parent := raw.Parent()
	if parent != nil && parent.Kind() == compiler.KindSyntaxList {
		parent = parent.Parent()
	}
	if parent == nil {
		return nil, nil
	}
	return n.context.getOrCreate(parent, n.file), nil
}

// ParentOrThrow is Parent, failing with ErrNotFound at the root.
func (n *Node) ParentOrThrow() (*Node, error) {
	parent, err := n.Parent()
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("%w: %s has no parent", ErrNotFound, n.kind)
	}
	return parent, nil
}

// ParentSyntaxList returns the synthesized list grouping the node, or nil
// when the node is not a list element.
func (n *Node) ParentSyntaxList() (*Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	parent := raw.Parent()
	if parent == nil || parent.Kind() != compiler.KindSyntaxList {
		return nil, nil
	}
	return n.context.getOrCreate(parent, n.file), nil
}

// siblingGroup resolves the child list the node lives in. For list
// elements that is the syntax list's children, so separators count as
// siblings.
func (n *Node) siblingGroup() ([]*compiler.Node, int, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, 0, err
	}
	parent := raw.Parent()
	if parent == nil {
		return nil, 0, nil
	}
	group := parent.Children()
	for i, c := range group {
		if c == raw {
			return group, i, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: %s is detached from its parent", ErrConsistency, n.kind)
}

// PreviousSibling returns the preceding node in the sibling group, or nil.
func (n *Node) PreviousSibling() (*Node, error) {
	group, i, err := n.siblingGroup()
	if err != nil || group == nil || i == 0 {
		return nil, err
	}
	return n.context.getOrCreate(group[i-1], n.file), nil
}

// NextSibling returns the following node in the sibling group, or nil.
func (n *Node) NextSibling() (*Node, error) {
	group, i, err := n.siblingGroup()
	if err != nil || group == nil || i == len(group)-1 {
		return nil, err
	}
	return n.context.getOrCreate(group[i+1], n.file), nil
}

// NextSiblingOrThrow is NextSibling, failing with ErrNotFound when the
// node is last.
func (n *Node) NextSiblingOrThrow() (*Node, error) {
	sib, err := n.NextSibling()
	if err != nil {
		return nil, err
	}
	if sib == nil {
		return nil, fmt.Errorf("%w: %s has no following sibling", ErrNotFound, n.kind)
	}
	return sib, nil
}

// PreviousSiblingOrThrow is PreviousSibling, failing with ErrNotFound
// when the node is first.
func (n *Node) PreviousSiblingOrThrow() (*Node, error) {
	sib, err := n.PreviousSibling()
	if err != nil {
		return nil, err
	}
	if sib == nil {
		return nil, fmt.Errorf("%w: %s has no preceding sibling", ErrNotFound, n.kind)
	}
	return sib, nil
}

// NextSiblings returns the rest of the sibling group after the node, in
// document order. The last sibling returns an empty slice.
func (n *Node) NextSiblings() ([]*Node, error) {
	group, i, err := n.siblingGroup()
	if err != nil || group == nil {
		return nil, err
	}
	out := make([]*Node, 0, len(group)-i-1)
	for _, c := range group[i+1:] {
		out = append(out, n.context.getOrCreate(c, n.file))
	}
	return out, nil
}

// ChildIndex reports the node's position in its sibling group.
func (n *Node) ChildIndex() (int, error) {
	group, i, err := n.siblingGroup()
	if err != nil {
		return 0, err
	}
	if group == nil {
		return 0, fmt.Errorf("%w: %s has no parent", ErrNotFound, n.kind)
	}
	return i, nil
}

// FirstChild returns the first direct child matching pred, or nil. A nil
// pred matches any child.
func (n *Node) FirstChild(pred func(*Node) bool) (*Node, error) {
	children, err := n.Children()
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		if pred == nil || pred(c) {
			return c, nil
		}
	}
	return nil, nil
}

// FirstChildOrThrow is FirstChild, failing with ErrNotFound on no match.
func (n *Node) FirstChildOrThrow(pred func(*Node) bool) (*Node, error) {
	c, err := n.FirstChild(pred)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s has no matching child", ErrNotFound, n.kind)
	}
	return c, nil
}

// LastChild returns the last direct child matching pred, or nil.
func (n *Node) LastChild(pred func(*Node) bool) (*Node, error) {
	children, err := n.Children()
	if err != nil {
		return nil, err
	}
	for i := len(children) - 1; i >= 0; i-- {
		if pred == nil || pred(children[i]) {
			return children[i], nil
		}
	}
	return nil, nil
}

// LastChildOrThrow is LastChild, failing with ErrNotFound on no match.
func (n *Node) LastChildOrThrow(pred func(*Node) bool) (*Node, error) {
	c, err := n.LastChild(pred)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s has no matching child", ErrNotFound, n.kind)
	}
	return c, nil
}

// FirstChildOfKind returns the first direct child of the given kind, or
// nil. Syntax lists are searched one level deep so that grouped members
// are reachable without an explicit hop.
func (n *Node) FirstChildOfKind(kind compiler.Kind) (*Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	for _, c := range raw.Children() {
		if c.Kind() == kind {
			return n.context.getOrCreate(c, n.file), nil
		}
		if c.Kind() == compiler.KindSyntaxList {
			for _, el := range c.Children() {
				if el.Kind() == kind {
					return n.context.getOrCreate(el, n.file), nil
				}
			}
		}
	}
	return nil, nil
}

// FirstChildOfKindOrThrow is FirstChildOfKind, failing with ErrNotFound
// on no match.
func (n *Node) FirstChildOfKindOrThrow(kind compiler.Kind) (*Node, error) {
	c, err := n.FirstChildOfKind(kind)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s has no %s child", ErrNotFound, n.kind, kind)
	}
	return c, nil
}

// ChildrenOfKind returns every direct child of the given kind, searching
// through syntax lists one level deep.
func (n *Node) ChildrenOfKind(kind compiler.Kind) ([]*Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	var out []*Node
	for _, c := range raw.Children() {
		if c.Kind() == kind {
			out = append(out, n.context.getOrCreate(c, n.file))
			continue
		}
		if c.Kind() == compiler.KindSyntaxList {
			for _, el := range c.Children() {
				if el.Kind() == kind {
					out = append(out, n.context.getOrCreate(el, n.file))
				}
			}
		}
	}
	return out, nil
}

// ForEachDescendant walks the subtree in document order, excluding the
// receiver. Returning false from visit stops the walk.
func (n *Node) ForEachDescendant(visit func(*Node) bool) error {
	raw, err := n.compilerNode()
	if err != nil {
		return err
	}
	var walk func(*compiler.Node) bool
	walk = func(c *compiler.Node) bool {
		if !visit(n.context.getOrCreate(c, n.file)) {
			return false
		}
		for _, child := range c.Children() {
			if !walk(child) {
				return false
			}
		}
		return true
	}
	for _, child := range raw.Children() {
		if !walk(child) {
			break
		}
	}
	return nil
}

// Descendants returns every node in the subtree in document order,
// excluding the receiver. The sequence is recomputed from the live tree
// on each call.
func (n *Node) Descendants() ([]*Node, error) {
	var out []*Node
	err := n.ForEachDescendant(func(d *Node) bool {
		out = append(out, d)
		return true
	})
	return out, err
}

// FirstDescendant returns the first descendant matching pred, or nil.
func (n *Node) FirstDescendant(pred func(*Node) bool) (*Node, error) {
	var found *Node
	err := n.ForEachDescendant(func(d *Node) bool {
		if pred(d) {
			found = d
			return false
		}
		return true
	})
	return found, err
}

// FirstDescendantOrThrow is FirstDescendant, failing with ErrNotFound on
// no match.
func (n *Node) FirstDescendantOrThrow(pred func(*Node) bool) (*Node, error) {
	d, err := n.FirstDescendant(pred)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: %s has no matching descendant", ErrNotFound, n.kind)
	}
	return d, nil
}

// FirstDescendantOfKind returns the first descendant of the given kind,
// or nil.
func (n *Node) FirstDescendantOfKind(kind compiler.Kind) (*Node, error) {
	return n.FirstDescendant(func(d *Node) bool { return d.kind == kind })
}

// FirstDescendantOfKindOrThrow is FirstDescendantOfKind, failing with
// ErrNotFound on no match.
func (n *Node) FirstDescendantOfKindOrThrow(kind compiler.Kind) (*Node, error) {
	d, err := n.FirstDescendantOfKind(kind)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: %s has no %s descendant", ErrNotFound, n.kind, kind)
	}
	return d, nil
}

// DescendantsOfKind returns every descendant of the given kind in
// document order.
func (n *Node) DescendantsOfKind(kind compiler.Kind) ([]*Node, error) {
	var out []*Node
	err := n.ForEachDescendant(func(d *Node) bool {
		if d.kind == kind {
			out = append(out, d)
		}
		return true
	})
	return out, err
}

// ChildAtPos returns the direct child whose full range contains pos, or
// nil.
func (n *Node) ChildAtPos(pos int) (*Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	for _, c := range raw.Children() {
		if c.ContainsPos(pos) {
			return n.context.getOrCreate(c, n.file), nil
		}
	}
	return nil, nil
}

// DescendantAtPos returns the deepest node whose full range contains pos,
// or nil when pos falls outside the receiver. The result is resolved from
// the live tree on every call.
func (n *Node) DescendantAtPos(pos int) (*Node, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	if !raw.ContainsPos(pos) {
		return nil, nil
	}
	cur := raw
	for {
		var next *compiler.Node
		for _, c := range cur.Children() {
			if c.ContainsPos(pos) {
				next = c
				break
			}
		}
		if next == nil {
			break
		}
		cur = next
	}
	return n.context.getOrCreate(cur, n.file), nil
}

// FirstAncestor returns the nearest enclosing node matching pred, or nil.
func (n *Node) FirstAncestor(pred func(*Node) bool) (*Node, error) {
	parent, err := n.Parent()
	if err != nil {
		return nil, err
	}
	for parent != nil {
		if pred(parent) {
			return parent, nil
		}
		parent, err = parent.Parent()
		if err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// FirstAncestorOfKind returns the nearest enclosing node of the given
// kind, or nil.
func (n *Node) FirstAncestorOfKind(kind compiler.Kind) (*Node, error) {
	return n.FirstAncestor(func(a *Node) bool { return a.kind == kind })
}

// StartLinePos reports the offset of the line the construct starts on.
func (n *Node) StartLinePos() (int, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return 0, err
	}
	return textutil.LineStart(n.file.text(), raw.Start()), nil
}

// IsFirstOnLine reports whether only whitespace precedes the construct on
// its line.
func (n *Node) IsFirstOnLine() (bool, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return false, err
	}
	return textutil.IsFirstOnLine(n.file.text(), raw.Start()), nil
}

// IndentationText returns the whitespace prefix of the construct's line,
// clipped at the construct itself.
func (n *Node) IndentationText() (string, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return "", err
	}
	return textutil.IndentationAt(n.file.text(), raw.Start()), nil
}

// ChildIndentationText returns IndentationText plus one more level.
func (n *Node) ChildIndentationText() (string, error) {
	indent, err := n.IndentationText()
	if err != nil {
		return "", err
	}
	return indent + n.context.format.Indent, nil
}
