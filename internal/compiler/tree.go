package compiler

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Diagnostic marks a syntax error region found while snapshotting a parse
// result. The engine records diagnostics but never acts on them; callers
// that inject text care only about the resulting tree shape.
type Diagnostic struct {
	Start   int
	End     int
	Message string
}

// Tree is one immutable parse snapshot: the materialized root, the exact
// buffer it was parsed from, and the syntax errors found. It keeps the
// producing tree-sitter tree alive so the next Reparse can reuse it; Close
// releases that memory and must be called when the snapshot is replaced.
type Tree struct {
	Root        *Node
	Text        []byte
	Diagnostics []Diagnostic

	sitter *sitter.Tree
}

func newTree(st *sitter.Tree, src []byte) *Tree {
	b := &builder{src: src}
	root := b.build(st.RootNode(), nil, 0)

	// Missing-token errors produce no ERROR node; surface them anyway.
	if len(b.diags) == 0 && st.RootNode().HasError() {
		b.diags = append(b.diags, Diagnostic{
			Start:   root.start,
			End:     root.end,
			Message: "syntax error",
		})
	}

	// The file root owns any trailing trivia.
	root.pos = 0
	root.end = len(src)

	return &Tree{
		Root:        root,
		Text:        src,
		Diagnostics: b.diags,
		sitter:      st,
	}
}

// HasErrors reports whether the parse produced any syntax errors.
func (t *Tree) HasErrors() bool { return len(t.Diagnostics) > 0 }

// Close releases the underlying tree-sitter tree. The snapshot nodes stay
// valid; only incremental reuse is lost. Close is idempotent.
func (t *Tree) Close() {
	if t.sitter != nil {
		t.sitter.Close()
		t.sitter = nil
	}
}

type builder struct {
	src   []byte
	diags []Diagnostic
}

func (b *builder) build(sn *sitter.Node, parent *Node, pos int) *Node {
	node := &Node{
		kind:   Kind(sn.Type()),
		named:  sn.IsNamed(),
		pos:    pos,
		start:  int(sn.StartByte()),
		end:    int(sn.EndByte()),
		parent: parent,
	}

	if node.kind == KindError {
		b.diags = append(b.diags, Diagnostic{
			Start:   node.start,
			End:     node.end,
			Message: "syntax error",
		})
	}

	count := int(sn.ChildCount())
	if count == 0 {
		return node
	}

	fields := b.fieldRanges(sn)

	children := make([]*Node, 0, count)
	childPos := pos
	for i := 0; i < count; i++ {
		sc := sn.Child(i)
		if Kind(sc.Type()) == KindComment {
			// Comments are trivia: dropped from the child list, their
			// bytes land in the next sibling's leading gap.
			continue
		}
		child := b.build(sc, node, childPos)
		child.field = fields[rangeKey{child.start, child.end}]
		children = append(children, child)
		childPos = child.end
	}
	node.children = children

	if IsListContainer(node.kind) {
		interposeList(node)
	}
	return node
}

type rangeKey struct {
	start int
	end   int
}

// fieldRanges resolves the grammar field tags of sn's children. Tags are
// matched back to children by byte range because the binding exposes field
// lookup, not per-child field enumeration.
func (b *builder) fieldRanges(sn *sitter.Node) map[rangeKey]string {
	var fields map[rangeKey]string
	for _, name := range fieldNames {
		c := sn.ChildByFieldName(name)
		if c == nil {
			continue
		}
		if fields == nil {
			fields = make(map[rangeKey]string, 4)
		}
		fields[rangeKey{int(c.StartByte()), int(c.EndByte())}] = name
	}
	return fields
}

// interposeList rewrites container's children so that everything between
// its first and last named child (elements and their separator tokens, but
// not the enclosing delimiters) hangs off one synthesized syntax list. A
// container with no named children is left alone: "no list yet" is a valid
// state that element insertion bootstraps.
func interposeList(container *Node) {
	first, last := -1, -1
	for i, c := range container.children {
		if c.named {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return
	}

	elems := container.children[first : last+1]
	list := &Node{
		kind:   KindSyntaxList,
		named:  true,
		pos:    elems[0].pos,
		start:  elems[0].start,
		end:    elems[len(elems)-1].end,
		parent: container,
	}
	list.children = make([]*Node, len(elems))
	copy(list.children, elems)
	for _, c := range list.children {
		c.parent = list
	}

	rebuilt := make([]*Node, 0, len(container.children)-len(elems)+1)
	rebuilt = append(rebuilt, container.children[:first]...)
	rebuilt = append(rebuilt, list)
	rebuilt = append(rebuilt, container.children[last+1:]...)
	container.children = rebuilt
}
