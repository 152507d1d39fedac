package ast

import (
	"fmt"

	"sculpt/internal/compiler"
)

// Node is an identity-stable handle for one construct in a source file.
// Handles are cached per Context: navigating to the same construct twice
// yields the same *Node. A handle survives manipulations that keep its
// construct alive and is disposed when an edit removes or replaces it;
// a disposed handle fails every slot-touching operation with
// ErrInvalidOperation, but Kind and String keep working.
type Node struct {
	context *Context
	file    *SourceFile
	kind    compiler.Kind
	raw     *compiler.Node // nil once disposed
}

// Kind reports the construct's grammar kind. It remains valid after
// disposal.
func (n *Node) Kind() compiler.Kind {
	return n.kind
}

// KindName reports the kind's grammar name. Like Kind, it remains valid
// after disposal.
func (n *Node) KindName() string {
	return n.kind.String()
}

// IsDisposed reports whether the handle has been invalidated.
func (n *Node) IsDisposed() bool {
	return n.raw == nil
}

// Named reports whether the grammar treats the construct as a named node
// rather than an anonymous token.
func (n *Node) Named() (bool, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return false, err
	}
	return raw.Named(), nil
}

// SourceFile returns the file the handle belongs to.
func (n *Node) SourceFile() *SourceFile {
	return n.file
}

// compilerNode returns the live snapshot node, or ErrInvalidOperation
// once the handle has been disposed.
func (n *Node) compilerNode() (*compiler.Node, error) {
	if n.raw == nil {
		return nil, errDisposed(n.kind)
	}
	return n.raw, nil
}

// Pos reports the construct's start including leading trivia.
func (n *Node) Pos() (int, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return 0, err
	}
	return raw.Pos(), nil
}

// Start reports the construct's start excluding leading trivia.
func (n *Node) Start() (int, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return 0, err
	}
	return raw.Start(), nil
}

// End reports the byte offset one past the construct.
func (n *Node) End() (int, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return 0, err
	}
	return raw.End(), nil
}

// Width reports End minus Start.
func (n *Node) Width() (int, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return 0, err
	}
	return raw.End() - raw.Start(), nil
}

// FullWidth reports End minus Pos.
func (n *Node) FullWidth() (int, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return 0, err
	}
	return raw.End() - raw.Pos(), nil
}

// Text returns the construct's source text without leading trivia.
func (n *Node) Text() (string, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return "", err
	}
	return raw.Text(n.file.text()), nil
}

// FullText returns the construct's source text including leading trivia.
func (n *Node) FullText() (string, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return "", err
	}
	return raw.FullText(n.file.text()), nil
}

// ContainsRange reports whether [pos, end) lies within the construct's
// full range. An inverted range is contained by nothing.
func (n *Node) ContainsRange(pos, end int) (bool, error) {
	raw, err := n.compilerNode()
	if err != nil {
		return false, err
	}
	return pos <= end && pos >= raw.Pos() && end <= raw.End(), nil
}

// Forget invalidates the handle and every cached descendant handle,
// children first. The source text is not modified.
func (n *Node) Forget() error {
	raw, err := n.compilerNode()
	if err != nil {
		return err
	}
	n.context.disposeSubtree(raw)
	return nil
}

// ForgetDescendants invalidates every cached descendant handle while
// keeping the receiver alive.
func (n *Node) ForgetDescendants() error {
	raw, err := n.compilerNode()
	if err != nil {
		return err
	}
	for _, child := range raw.Children() {
		n.context.disposeSubtree(child)
	}
	return nil
}

// String describes the handle for logs and test failures.
func (n *Node) String() string {
	if n.raw == nil {
		return fmt.Sprintf("%s (disposed)", n.kind)
	}
	return fmt.Sprintf("%s [%d,%d)", n.kind, n.raw.Pos(), n.raw.End())
}
