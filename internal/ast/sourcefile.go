package ast

import (
	"fmt"

	"sculpt/internal/compiler"
)

// SourceFile is the root handle of one parsed file. It owns the current
// text and snapshot; every manipulation of its nodes funnels through it.
// The embedded Node is the program root and stays bound across edits.
type SourceFile struct {
	Node
	path    string
	tree    *compiler.Tree
	version int
}

// Path returns the label the file was created with.
func (f *SourceFile) Path() string {
	return f.path
}

// Version reports how many times the file has been parsed. It starts at 1
// and increases by one per applied edit, whatever the edit batched.
func (f *SourceFile) Version() int {
	return f.version
}

// Content returns the file's current full text.
func (f *SourceFile) Content() string {
	return string(f.tree.Text)
}

// AsNode returns the file's root handle.
func (f *SourceFile) AsNode() *Node {
	return &f.Node
}

// Diagnostics returns the parse errors of the current snapshot.
func (f *SourceFile) Diagnostics() []compiler.Diagnostic {
	return f.tree.Diagnostics
}

// HasParseErrors reports whether the current snapshot contains errors.
func (f *SourceFile) HasParseErrors() bool {
	return f.tree.HasErrors()
}

func (f *SourceFile) text() []byte {
	return f.tree.Text
}

// ReplaceText splices text over the byte range [start, end), re-parses
// and reconciles every live handle of the file.
func (f *SourceFile) ReplaceText(start, end int, text string) error {
	if start < 0 || end < start || end > len(f.tree.Text) {
		return fmt.Errorf("%w: range [%d,%d) is outside the file", ErrInvalidOperation, start, end)
	}
	return f.applyTextChange(textChange{start: start, oldEnd: end, newText: text})
}

// InsertText inserts text at pos.
func (f *SourceFile) InsertText(pos int, text string) error {
	return f.ReplaceText(pos, pos, text)
}

// RemoveText deletes the byte range [start, end).
func (f *SourceFile) RemoveText(start, end int) error {
	return f.ReplaceText(start, end, "")
}

// SetText replaces the whole file. All handles below the root are
// disposed.
func (f *SourceFile) SetText(text string) error {
	return f.ReplaceText(0, len(f.tree.Text), text)
}

// Statements returns the file's top-level named statements.
func (f *SourceFile) Statements() ([]*Node, error) {
	raw, err := f.compilerNode()
	if err != nil {
		return nil, err
	}
	var out []*Node
	for _, c := range raw.Children() {
		if c.Named() {
			out = append(out, f.context.getOrCreate(c, f))
		}
	}
	return out, nil
}

// declarationsOfKind finds top-level declarations of the given kind,
// looking through export wrappers.
func (f *SourceFile) declarationsOfKind(kind compiler.Kind) ([]*Node, error) {
	raw, err := f.compilerNode()
	if err != nil {
		return nil, err
	}
	var out []*Node
	for _, c := range raw.Children() {
		target := c
		if c.Kind() == compiler.KindExportStatement {
			target = nil
			for _, inner := range c.Children() {
				if inner.Kind() == kind {
					target = inner
					break
				}
			}
			if target == nil {
				continue
			}
		}
		if target.Kind() == kind {
			out = append(out, f.context.getOrCreate(target, f))
		}
	}
	return out, nil
}

func (f *SourceFile) declarationByName(kind compiler.Kind, name string) (*Node, error) {
	decls, err := f.declarationsOfKind(kind)
	if err != nil {
		return nil, err
	}
	for _, d := range decls {
		got, err := d.Name()
		if err != nil {
			continue
		}
		if got == name {
			return d, nil
		}
	}
	return nil, nil
}

func (f *SourceFile) declarationByNameOrThrow(kind compiler.Kind, name string) (*Node, error) {
	d, err := f.declarationByName(kind, name)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: no %s named %q", ErrNotFound, kind, name)
	}
	return d, nil
}

// Classes returns the file's top-level class declarations, exported ones
// included.
func (f *SourceFile) Classes() ([]*Node, error) {
	abstract, err := f.declarationsOfKind(compiler.KindAbstractClass)
	if err != nil {
		return nil, err
	}
	plain, err := f.declarationsOfKind(compiler.KindClassDeclaration)
	if err != nil {
		return nil, err
	}
	return append(plain, abstract...), nil
}

// GetClass returns the top-level class with the given name, or nil.
func (f *SourceFile) GetClass(name string) (*Node, error) {
	classes, err := f.Classes()
	if err != nil {
		return nil, err
	}
	for _, c := range classes {
		got, err := c.Name()
		if err != nil {
			continue
		}
		if got == name {
			return c, nil
		}
	}
	return nil, nil
}

// GetClassOrThrow is GetClass, failing with ErrNotFound when absent.
func (f *SourceFile) GetClassOrThrow(name string) (*Node, error) {
	c, err := f.GetClass(name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: no class named %q", ErrNotFound, name)
	}
	return c, nil
}

// GetEnum returns the top-level enum with the given name, or nil.
func (f *SourceFile) GetEnum(name string) (*Node, error) {
	return f.declarationByName(compiler.KindEnumDeclaration, name)
}

// GetEnumOrThrow is GetEnum, failing with ErrNotFound when absent.
func (f *SourceFile) GetEnumOrThrow(name string) (*Node, error) {
	return f.declarationByNameOrThrow(compiler.KindEnumDeclaration, name)
}

// GetInterface returns the top-level interface with the given name, or
// nil.
func (f *SourceFile) GetInterface(name string) (*Node, error) {
	return f.declarationByName(compiler.KindInterfaceDeclaration, name)
}

// GetInterfaceOrThrow is GetInterface, failing with ErrNotFound when
// absent.
func (f *SourceFile) GetInterfaceOrThrow(name string) (*Node, error) {
	return f.declarationByNameOrThrow(compiler.KindInterfaceDeclaration, name)
}

// GetFunction returns the top-level function with the given name, or nil.
func (f *SourceFile) GetFunction(name string) (*Node, error) {
	return f.declarationByName(compiler.KindFunctionDeclaration, name)
}

// GetFunctionOrThrow is GetFunction, failing with ErrNotFound when
// absent.
func (f *SourceFile) GetFunctionOrThrow(name string) (*Node, error) {
	return f.declarationByNameOrThrow(compiler.KindFunctionDeclaration, name)
}

// GetTypeAlias returns the top-level type alias with the given name, or
// nil.
func (f *SourceFile) GetTypeAlias(name string) (*Node, error) {
	return f.declarationByName(compiler.KindTypeAliasDeclaration, name)
}

// GetTypeAliasOrThrow is GetTypeAlias, failing with ErrNotFound when
// absent.
func (f *SourceFile) GetTypeAliasOrThrow(name string) (*Node, error) {
	return f.declarationByNameOrThrow(compiler.KindTypeAliasDeclaration, name)
}

// GetVariableDeclaration returns the top-level declarator with the given
// name, or nil.
func (f *SourceFile) GetVariableDeclaration(name string) (*Node, error) {
	stmts, err := f.declarationsOfKind(compiler.KindLexicalDeclaration)
	if err != nil {
		return nil, err
	}
	vars, err := f.declarationsOfKind(compiler.KindVariableStatement)
	if err != nil {
		return nil, err
	}
	for _, stmt := range append(stmts, vars...) {
		decls, err := stmt.ChildrenOfKind(compiler.KindVariableDeclarator)
		if err != nil {
			continue
		}
		for _, d := range decls {
			got, err := d.Name()
			if err != nil {
				continue
			}
			if got == name {
				return d, nil
			}
		}
	}
	return nil, nil
}
