// Package ast wraps compiler snapshots in identity-stable node handles and
// keeps them synchronized with the source text across manipulations.
//
// Each Context owns a wrapper cache keyed by compiler node. Navigating to
// the same underlying node twice yields the same handle; manipulating a
// file re-parses it and either rebinds each live handle to its counterpart
// in the fresh snapshot or disposes it when the construct no longer exists.
package ast

import (
	"context"
	"fmt"

	"sculpt/internal/compiler"
)

// Format holds the text settings manipulations render with.
type Format struct {
	// Indent is one indentation level.
	Indent string
	// NewLine terminates generated lines.
	NewLine string
}

// DefaultFormat returns two-space indentation with LF line endings.
func DefaultFormat() Format {
	return Format{Indent: "  ", NewLine: "\n"}
}

// FileEdit describes one applied manipulation batch. Start and OldEnd are
// byte offsets into the previous text; NewText is the replacement. Version
// is the file version after the edit.
type FileEdit struct {
	Path    string
	Version int
	Start   int
	OldEnd  int
	NewText string
}

// EditObserver receives every applied edit, after the file has been
// re-parsed and its handles reconciled.
type EditObserver func(FileEdit)

// Context is a single-threaded manipulation session. It owns the parser,
// the wrapper cache and the format settings shared by its source files.
type Context struct {
	parser   *compiler.Parser
	wrappers map[*compiler.Node]*Node
	format   Format
	observer EditObserver
}

// NewContext creates a session with the given format settings. Zero-value
// fields fall back to DefaultFormat.
func NewContext(format Format) *Context {
	def := DefaultFormat()
	if format.Indent == "" {
		format.Indent = def.Indent
	}
	if format.NewLine == "" {
		format.NewLine = def.NewLine
	}
	return &Context{
		parser:   compiler.NewParser(),
		wrappers: make(map[*compiler.Node]*Node),
		format:   format,
	}
}

// Format returns the session's text settings.
func (c *Context) Format() Format {
	return c.format
}

// SetEditObserver registers fn to be called for every applied edit.
// Passing nil removes the observer.
func (c *Context) SetEditObserver(fn EditObserver) {
	c.observer = fn
}

// Close releases the parser. Source files created by the session keep
// their text but can no longer be manipulated.
func (c *Context) Close() {
	c.parser.Close()
}

// CreateSourceFile parses text into a new source file associated with
// path. The path is a label; nothing is read from or written to disk.
func (c *Context) CreateSourceFile(path string, text string) (*SourceFile, error) {
	tree, err := c.parser.Parse(context.Background(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	file := &SourceFile{path: path, tree: tree, version: 1}
	file.Node = Node{context: c, file: file, kind: tree.Root.Kind(), raw: tree.Root}
	c.wrappers[tree.Root] = &file.Node
	return file, nil
}

// getOrCreate returns the cached handle for raw, creating and caching one
// on first sight.
func (c *Context) getOrCreate(raw *compiler.Node, file *SourceFile) *Node {
	if n, ok := c.wrappers[raw]; ok {
		return n
	}
	n := &Node{context: c, file: file, kind: raw.Kind(), raw: raw}
	c.wrappers[raw] = n
	return n
}

// lookup returns the cached handle for raw, or nil. It never creates.
func (c *Context) lookup(raw *compiler.Node) *Node {
	return c.wrappers[raw]
}

// rekey moves the handle bound to old, if any, onto fresh. Positions and
// text reads immediately reflect the fresh snapshot.
func (c *Context) rekey(old, fresh *compiler.Node) {
	n, ok := c.wrappers[old]
	if !ok {
		return
	}
	delete(c.wrappers, old)
	n.raw = fresh
	c.wrappers[fresh] = n
}

// dispose drops the cache entry for raw and invalidates its handle.
func (c *Context) dispose(raw *compiler.Node) {
	if n, ok := c.wrappers[raw]; ok {
		delete(c.wrappers, raw)
		n.raw = nil
	}
}

// disposeSubtree invalidates raw and every descendant, children first.
func (c *Context) disposeSubtree(raw *compiler.Node) {
	for _, child := range raw.Children() {
		c.disposeSubtree(child)
	}
	c.dispose(raw)
}
