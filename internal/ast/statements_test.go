package ast_test

import (
	"errors"
	"testing"

	"sculpt/internal/ast"
	"sculpt/internal/structures"
)

func TestAddDeclarationsToFile(t *testing.T) {
	file := newTestFile(t, "")

	class, err := file.AddClass(structures.Class{
		Name:       "A",
		Properties: []structures.Property{{Name: "x", Initializer: "1"}},
	})
	if err != nil {
		t.Fatalf("AddClass failed: %v", err)
	}
	wantContent(t, file, "class A {\n  x = 1;\n}\n")
	if name, err := class.Name(); err != nil || name != "A" {
		t.Errorf("expected created class A, got %q (%v)", name, err)
	}

	// A non-bodied declaration after a bodied one gets a blank line.
	if _, err := file.AddTypeAlias(structures.TypeAlias{Name: "ID", Type: "string"}); err != nil {
		t.Fatalf("AddTypeAlias failed: %v", err)
	}
	wantContent(t, file, "class A {\n  x = 1;\n}\n\ntype ID = string;\n")

	// Two non-bodied declarations sit on adjacent lines.
	if _, err := file.AddVariableStatement(structures.VariableStatement{
		Declarations: []structures.VariableDeclaration{{Name: "x", Type: "number", Initializer: "1"}},
	}); err != nil {
		t.Fatalf("AddVariableStatement failed: %v", err)
	}
	wantContent(t, file, "class A {\n  x = 1;\n}\n\ntype ID = string;\nconst x: number = 1;\n")

	if alias, err := file.GetTypeAlias("ID"); err != nil || alias == nil {
		t.Errorf("expected to find type alias ID, got %v (%v)", alias, err)
	}
	if decl, err := file.GetVariableDeclaration("x"); err != nil || decl == nil {
		t.Errorf("expected to find declarator x, got %v (%v)", decl, err)
	}
}

func TestAddExportedDeclarationUnwraps(t *testing.T) {
	file := newTestFile(t, "")

	class, err := file.AddClass(structures.Class{Name: "A", IsExported: true})
	if err != nil {
		t.Fatalf("AddClass failed: %v", err)
	}
	wantContent(t, file, "export class A {\n}\n")

	// The returned handle is the declaration, not the export wrapper.
	if name, err := class.Name(); err != nil || name != "A" {
		t.Errorf("expected handle for class A, got %q (%v)", name, err)
	}
	if exported, err := class.IsExported(); err != nil || !exported {
		t.Errorf("expected IsExported true, got %v (%v)", exported, err)
	}
	if found := getClass(t, file, "A"); found != class {
		t.Error("expected navigation to return the created handle")
	}
}

func TestAddInterfaceAndEnum(t *testing.T) {
	file := newTestFile(t, "class A {}\n")

	if _, err := file.AddInterface(structures.Interface{
		Name:       "I",
		IsExported: true,
	}); err != nil {
		t.Fatalf("AddInterface failed: %v", err)
	}
	wantContent(t, file, "class A {}\n\nexport interface I {\n}\n")

	enum, err := file.AddEnum(structures.Enum{
		Name:    "E",
		Members: []structures.EnumMember{{Name: "a", Value: "1"}, {Name: "b"}},
	})
	if err != nil {
		t.Fatalf("AddEnum failed: %v", err)
	}
	wantContent(t, file, "class A {}\n\nexport interface I {\n}\n\nenum E {\n  a = 1,\n  b\n}\n")

	if count, err := enum.MemberCount(); err != nil || count != 2 {
		t.Errorf("expected 2 enum members, got %d (%v)", count, err)
	}
}

func TestInsertFunctionAtTop(t *testing.T) {
	file := newTestFile(t, "const a = 1;\n")

	fn, err := file.InsertFunction(0, structures.Function{Name: "main"})
	if err != nil {
		t.Fatalf("InsertFunction failed: %v", err)
	}
	wantContent(t, file, "function main() {\n}\n\nconst a = 1;\n")
	if name, err := fn.Name(); err != nil || name != "main" {
		t.Errorf("expected created function main, got %q (%v)", name, err)
	}
}

func TestDeclarationValidation(t *testing.T) {
	file := newTestFile(t, "")

	if _, err := file.AddClass(structures.Class{Name: "  "}); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for a blank class name, got %v", err)
	}
	if _, err := file.AddTypeAlias(structures.TypeAlias{Name: "T"}); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for a blank alias target, got %v", err)
	}
	if _, err := file.AddVariableStatement(structures.VariableStatement{}); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for an empty variable statement, got %v", err)
	}
	if _, err := file.InsertClass(3, structures.Class{Name: "A"}); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for an out-of-range index, got %v", err)
	}
}
