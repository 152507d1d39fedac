package compiler

// Node is one node of a materialized parse snapshot. Snapshots are
// immutable after construction; a re-parse produces an entirely new tree.
// Node identity (the pointer) is therefore stable for exactly one tree
// generation, which is what the wrapper registry keys on.
//
// Positions are half-open byte ranges. [Pos, End) includes the node's
// leading trivia (whitespace and comments since the previous sibling);
// [Start, End) excludes it. Children tile their parent's range exactly:
// the first child's Pos equals the parent's Pos and each later child's Pos
// equals its predecessor's End.
type Node struct {
	kind     Kind
	named    bool
	field    string
	pos      int
	start    int
	end      int
	parent   *Node
	children []*Node
}

// Kind returns the node's grammatical category.
func (n *Node) Kind() Kind { return n.kind }

// Named reports whether the grammar considers the node a named construct
// (as opposed to an anonymous token such as "{" or "=").
func (n *Node) Named() bool { return n.named }

// Field returns the grammar field tag this node occupies in its parent
// ("name", "value", "body", ...), or "" when untagged.
func (n *Node) Field() string { return n.field }

// Pos returns the trivia-inclusive start offset.
func (n *Node) Pos() int { return n.pos }

// Start returns the trivia-exclusive start offset.
func (n *Node) Start() int { return n.start }

// End returns the end offset.
func (n *Node) End() int { return n.end }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's direct children, tokens included. Callers
// must not modify the returned slice.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th direct child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// NamedChildren returns the named direct children in order.
func (n *Node) NamedChildren() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		if c.named {
			out = append(out, c)
		}
	}
	return out
}

// ChildByField returns the first direct child tagged with the given grammar
// field, or nil. The synthesized syntax list is transparent: a field child
// hoisted into a list is still found through the container.
func (n *Node) ChildByField(field string) *Node {
	for _, c := range n.children {
		if c.field == field {
			return c
		}
		if c.kind == KindSyntaxList {
			if inner := c.ChildByField(field); inner != nil {
				return inner
			}
		}
	}
	return nil
}

// Text returns the node's trivia-exclusive source slice.
func (n *Node) Text(src []byte) string { return string(src[n.start:n.end]) }

// FullText returns the node's trivia-inclusive source slice.
func (n *Node) FullText(src []byte) string { return string(src[n.pos:n.end]) }

// ContainsPos reports whether the trivia-inclusive range contains offset.
func (n *Node) ContainsPos(offset int) bool { return n.pos <= offset && offset < n.end }

// Walk visits n and its descendants pre-order. Returning false from visit
// prunes descent below the current node.
func (n *Node) Walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(visit)
	}
}
