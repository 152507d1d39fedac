package ast

import (
	"fmt"
	"strings"

	"sculpt/internal/compiler"
	"sculpt/internal/structures"
)

// InsertStatements inserts raw statement texts at the top-level statement
// index, batched into one re-parse.
func (f *SourceFile) InsertStatements(index int, stmts []string) ([]*Node, error) {
	raw, err := f.compilerNode()
	if err != nil {
		return nil, err
	}
	items := make([]insertItem, len(stmts))
	for i, s := range stmts {
		if strings.TrimSpace(s) == "" {
			return nil, errBlank("statement")
		}
		items[i] = insertItem{text: s, bodied: strings.Contains(s, "{")}
	}
	return f.insertIntoContainer(raw, index, items)
}

// AddStatements appends raw statement texts to the file.
func (f *SourceFile) AddStatements(stmts []string) ([]*Node, error) {
	stmtsNow, err := f.Statements()
	if err != nil {
		return nil, err
	}
	return f.InsertStatements(len(stmtsNow), stmts)
}

// unwrapExport returns the declaration inside an export statement, or the
// node itself when it is not wrapped.
func unwrapExport(n *Node, kinds ...compiler.Kind) (*Node, error) {
	if n.kind != compiler.KindExportStatement {
		return n, nil
	}
	raw, err := n.compilerNode()
	if err != nil {
		return nil, err
	}
	for _, c := range raw.Children() {
		if kindIn(c.Kind(), kinds) {
			return n.context.getOrCreate(c, n.file), nil
		}
	}
	return nil, fmt.Errorf("%w: export statement wraps no %v", ErrConsistency, kinds)
}

// insertDeclaration renders one top-level declaration, splices it at the
// statement index and returns the declaration handle, looking through the
// export wrapper when the structure asked for one.
func (f *SourceFile) insertDeclaration(index int, text string, exported bool, kinds ...compiler.Kind) (*Node, error) {
	raw, err := f.compilerNode()
	if err != nil {
		return nil, err
	}
	expect := kinds
	if exported {
		expect = []compiler.Kind{compiler.KindExportStatement}
	}
	created, err := f.insertIntoContainer(raw, index, []insertItem{{
		text:   text,
		bodied: strings.Contains(text, "{"),
		kinds:  expect,
	}})
	if err != nil {
		return nil, err
	}
	return unwrapExport(created[0], kinds...)
}

// InsertClass renders a class declaration at the statement index.
func (f *SourceFile) InsertClass(index int, s structures.Class) (*Node, error) {
	if strings.TrimSpace(s.Name) == "" {
		return nil, errBlank("class name")
	}
	kinds := []compiler.Kind{compiler.KindClassDeclaration}
	if s.IsAbstract {
		kinds = []compiler.Kind{compiler.KindAbstractClass}
	}
	return f.insertDeclaration(index, renderClass(s, f.context.format), s.IsExported, kinds...)
}

// AddClass renders a class declaration at the end of the file.
func (f *SourceFile) AddClass(s structures.Class) (*Node, error) {
	stmts, err := f.Statements()
	if err != nil {
		return nil, err
	}
	return f.InsertClass(len(stmts), s)
}

// InsertInterface renders an interface declaration at the statement
// index.
func (f *SourceFile) InsertInterface(index int, s structures.Interface) (*Node, error) {
	if strings.TrimSpace(s.Name) == "" {
		return nil, errBlank("interface name")
	}
	return f.insertDeclaration(index, renderInterface(s, f.context.format), s.IsExported,
		compiler.KindInterfaceDeclaration)
}

// AddInterface renders an interface declaration at the end of the file.
func (f *SourceFile) AddInterface(s structures.Interface) (*Node, error) {
	stmts, err := f.Statements()
	if err != nil {
		return nil, err
	}
	return f.InsertInterface(len(stmts), s)
}

// InsertEnum renders an enum declaration at the statement index.
func (f *SourceFile) InsertEnum(index int, s structures.Enum) (*Node, error) {
	if strings.TrimSpace(s.Name) == "" {
		return nil, errBlank("enum name")
	}
	return f.insertDeclaration(index, renderEnum(s, f.context.format), s.IsExported,
		compiler.KindEnumDeclaration)
}

// AddEnum renders an enum declaration at the end of the file.
func (f *SourceFile) AddEnum(s structures.Enum) (*Node, error) {
	stmts, err := f.Statements()
	if err != nil {
		return nil, err
	}
	return f.InsertEnum(len(stmts), s)
}

// InsertFunction renders a function declaration at the statement index.
func (f *SourceFile) InsertFunction(index int, s structures.Function) (*Node, error) {
	if strings.TrimSpace(s.Name) == "" {
		return nil, errBlank("function name")
	}
	return f.insertDeclaration(index, renderFunction(s, f.context.format), s.IsExported,
		compiler.KindFunctionDeclaration)
}

// AddFunction renders a function declaration at the end of the file.
func (f *SourceFile) AddFunction(s structures.Function) (*Node, error) {
	stmts, err := f.Statements()
	if err != nil {
		return nil, err
	}
	return f.InsertFunction(len(stmts), s)
}

// InsertTypeAlias renders a type alias at the statement index.
func (f *SourceFile) InsertTypeAlias(index int, s structures.TypeAlias) (*Node, error) {
	if strings.TrimSpace(s.Name) == "" {
		return nil, errBlank("type alias name")
	}
	if strings.TrimSpace(s.Type) == "" {
		return nil, errBlank("type alias target")
	}
	return f.insertDeclaration(index, renderTypeAlias(s, f.context.format), s.IsExported,
		compiler.KindTypeAliasDeclaration)
}

// AddTypeAlias renders a type alias at the end of the file.
func (f *SourceFile) AddTypeAlias(s structures.TypeAlias) (*Node, error) {
	stmts, err := f.Statements()
	if err != nil {
		return nil, err
	}
	return f.InsertTypeAlias(len(stmts), s)
}

// InsertVariableStatement renders a variable statement at the statement
// index.
func (f *SourceFile) InsertVariableStatement(index int, s structures.VariableStatement) (*Node, error) {
	if len(s.Declarations) == 0 {
		return nil, fmt.Errorf("%w: variable statement needs at least one declaration", ErrInvalidOperation)
	}
	for _, d := range s.Declarations {
		if strings.TrimSpace(d.Name) == "" {
			return nil, errBlank("variable name")
		}
	}
	kind := compiler.KindLexicalDeclaration
	if s.DeclarationKind == "var" {
		kind = compiler.KindVariableStatement
	}
	return f.insertDeclaration(index, renderVariableStatement(s, f.context.format), s.IsExported, kind)
}

// AddVariableStatement renders a variable statement at the end of the
// file.
func (f *SourceFile) AddVariableStatement(s structures.VariableStatement) (*Node, error) {
	stmts, err := f.Statements()
	if err != nil {
		return nil, err
	}
	return f.InsertVariableStatement(len(stmts), s)
}
