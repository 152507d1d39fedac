package ast_test

import (
	"errors"
	"testing"

	"sculpt/internal/ast"
	"sculpt/internal/structures"
)

func firstMember(t *testing.T, container *ast.Node) *ast.Node {
	t.Helper()
	members, err := container.Members()
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) == 0 {
		t.Fatal("expected at least one member")
	}
	return members[0]
}

func TestRename(t *testing.T) {
	file := newTestFile(t, "class C {\n  a = 1;\n}")
	class := getClass(t, file, "C")

	if err := class.Rename("D"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	wantContent(t, file, "class D {\n  a = 1;\n}")
	if name, err := class.Name(); err != nil || name != "D" {
		t.Errorf("expected renamed handle to read D, got %q (%v)", name, err)
	}
	if old, err := file.GetClass("C"); err != nil || old != nil {
		t.Errorf("expected the old name to be gone, got %v (%v)", old, err)
	}

	prop := firstMember(t, class)
	if err := prop.Rename("b"); err != nil {
		t.Fatalf("member Rename failed: %v", err)
	}
	wantContent(t, file, "class D {\n  b = 1;\n}")

	if err := class.Rename("  "); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for a blank name, got %v", err)
	}
	if err := class.Rename("no spaces"); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for whitespace in a name, got %v", err)
	}
}

func TestSetExportedRoundTrip(t *testing.T) {
	file := newTestFile(t, "class C {}")
	class := getClass(t, file, "C")

	class, err := class.SetExported(true)
	if err != nil {
		t.Fatalf("SetExported(true) failed: %v", err)
	}
	wantContent(t, file, "export class C {}")
	if exported, err := class.IsExported(); err != nil || !exported {
		t.Errorf("expected IsExported true, got %v (%v)", exported, err)
	}

	// Exporting an exported declaration is a no-op on the same handle.
	version := file.Version()
	again, err := class.SetExported(true)
	if err != nil {
		t.Fatalf("second SetExported(true) failed: %v", err)
	}
	if again != class {
		t.Error("expected the same handle back from a no-op")
	}
	if file.Version() != version {
		t.Errorf("expected no edit from a no-op, version went %d -> %d", version, file.Version())
	}

	class, err = class.SetExported(false)
	if err != nil {
		t.Fatalf("SetExported(false) failed: %v", err)
	}
	wantContent(t, file, "class C {}")
	if exported, err := class.IsExported(); err != nil || exported {
		t.Errorf("expected IsExported false, got %v (%v)", exported, err)
	}
}

func TestSetAbstract(t *testing.T) {
	file := newTestFile(t, "class C {}")
	class := getClass(t, file, "C")

	class, err := class.SetAbstract(true)
	if err != nil {
		t.Fatalf("SetAbstract(true) failed: %v", err)
	}
	wantContent(t, file, "abstract class C {}")
	if abstract, err := class.IsAbstract(); err != nil || !abstract {
		t.Errorf("expected IsAbstract true, got %v (%v)", abstract, err)
	}
	if name, err := class.Name(); err != nil || name != "C" {
		t.Errorf("expected the returned handle to read name C, got %q (%v)", name, err)
	}

	class, err = class.SetAbstract(false)
	if err != nil {
		t.Fatalf("SetAbstract(false) failed: %v", err)
	}
	wantContent(t, file, "class C {}")
}

func TestModifierTogglesKeepCanonicalOrder(t *testing.T) {
	file := newTestFile(t, "class C {\n  m() {\n  }\n}")
	method := firstMember(t, getClass(t, file, "C"))

	if err := method.SetStatic(true); err != nil {
		t.Fatalf("SetStatic failed: %v", err)
	}
	if err := method.SetAsync(true); err != nil {
		t.Fatalf("SetAsync failed: %v", err)
	}
	// async sorts after static regardless of toggle order.
	wantContent(t, file, "class C {\n  static async m() {\n  }\n}")

	if isStatic, err := method.IsStatic(); err != nil || !isStatic {
		t.Errorf("expected IsStatic true, got %v (%v)", isStatic, err)
	}
	if isAsync, err := method.IsAsync(); err != nil || !isAsync {
		t.Errorf("expected IsAsync true, got %v (%v)", isAsync, err)
	}

	// Toggling an already-set modifier is a no-op.
	version := file.Version()
	if err := method.SetStatic(true); err != nil {
		t.Fatalf("repeated SetStatic failed: %v", err)
	}
	if file.Version() != version {
		t.Errorf("expected no edit from a no-op, version went %d -> %d", version, file.Version())
	}

	if err := method.SetAsync(false); err != nil {
		t.Fatalf("SetAsync(false) failed: %v", err)
	}
	wantContent(t, file, "class C {\n  static m() {\n  }\n}")
}

func TestSetReadonly(t *testing.T) {
	file := newTestFile(t, "class C {\n  a = 1;\n}")
	prop := firstMember(t, getClass(t, file, "C"))

	if err := prop.SetReadonly(true); err != nil {
		t.Fatalf("SetReadonly failed: %v", err)
	}
	wantContent(t, file, "class C {\n  readonly a = 1;\n}")

	if err := prop.SetReadonly(false); err != nil {
		t.Fatalf("SetReadonly(false) failed: %v", err)
	}
	wantContent(t, file, "class C {\n  a = 1;\n}")
}

func TestSetScope(t *testing.T) {
	file := newTestFile(t, "class C {\n  a = 1;\n}")
	prop := firstMember(t, getClass(t, file, "C"))

	if err := prop.SetScope(structures.ScopePrivate); err != nil {
		t.Fatalf("SetScope(private) failed: %v", err)
	}
	wantContent(t, file, "class C {\n  private a = 1;\n}")
	if scope, err := prop.Scope(); err != nil || scope != structures.ScopePrivate {
		t.Errorf("expected scope private, got %q (%v)", scope, err)
	}

	// A new scope replaces the present modifier in place.
	if err := prop.SetScope(structures.ScopeProtected); err != nil {
		t.Fatalf("SetScope(protected) failed: %v", err)
	}
	wantContent(t, file, "class C {\n  protected a = 1;\n}")

	// The empty scope removes the modifier.
	if err := prop.SetScope(""); err != nil {
		t.Fatalf("SetScope(\"\") failed: %v", err)
	}
	wantContent(t, file, "class C {\n  a = 1;\n}")

	if err := prop.SetScope("internal"); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for an unknown scope, got %v", err)
	}
}

func TestSetTypeParameters(t *testing.T) {
	file := newTestFile(t, "class C {}")
	class := getClass(t, file, "C")

	if err := class.SetTypeParameters([]string{"T", "U extends T"}); err != nil {
		t.Fatalf("SetTypeParameters failed: %v", err)
	}
	wantContent(t, file, "class C<T, U extends T> {}")

	params, err := class.TypeParameters()
	if err != nil {
		t.Fatalf("TypeParameters failed: %v", err)
	}
	if len(params) != 2 || params[0] != "T" || params[1] != "U extends T" {
		t.Errorf("expected [T, U extends T], got %v", params)
	}

	// A later call replaces the whole list.
	if err := class.SetTypeParameters([]string{"V"}); err != nil {
		t.Fatalf("replacing SetTypeParameters failed: %v", err)
	}
	wantContent(t, file, "class C<V> {}")
}

func TestTypeAnnotations(t *testing.T) {
	file := newTestFile(t, "class C {\n  a;\n}")
	prop := firstMember(t, getClass(t, file, "C"))

	prop, err := prop.SetType("number")
	if err != nil {
		t.Fatalf("SetType failed: %v", err)
	}
	wantContent(t, file, "class C {\n  a: number;\n}")
	if text, err := prop.TypeText(); err != nil || text != "number" {
		t.Errorf("expected type number, got %q (%v)", text, err)
	}

	prop, err = prop.SetType("string")
	if err != nil {
		t.Fatalf("replacing SetType failed: %v", err)
	}
	wantContent(t, file, "class C {\n  a: string;\n}")

	if err := prop.RemoveType(); err != nil {
		t.Fatalf("RemoveType failed: %v", err)
	}
	wantContent(t, file, "class C {\n  a;\n}")
	if text, err := prop.TypeText(); err != nil || text != "" {
		t.Errorf("expected no type after removal, got %q (%v)", text, err)
	}
}

func TestReturnTypes(t *testing.T) {
	file := newTestFile(t, "function f() {}")
	fn, err := file.GetFunctionOrThrow("f")
	if err != nil {
		t.Fatalf("GetFunctionOrThrow failed: %v", err)
	}

	fn, err = fn.SetReturnType("void")
	if err != nil {
		t.Fatalf("SetReturnType failed: %v", err)
	}
	wantContent(t, file, "function f(): void {}")
	if text, err := fn.ReturnTypeText(); err != nil || text != "void" {
		t.Errorf("expected return type void, got %q (%v)", text, err)
	}

	fn, err = fn.SetReturnType("Promise<void>")
	if err != nil {
		t.Fatalf("replacing SetReturnType failed: %v", err)
	}
	wantContent(t, file, "function f(): Promise<void> {}")

	if err := fn.RemoveReturnType(); err != nil {
		t.Fatalf("RemoveReturnType failed: %v", err)
	}
	wantContent(t, file, "function f() {}")
}

func TestParameterInsertion(t *testing.T) {
	file := newTestFile(t, "function f() {}")
	fn, err := file.GetFunctionOrThrow("f")
	if err != nil {
		t.Fatalf("GetFunctionOrThrow failed: %v", err)
	}

	if _, err := fn.AddParameter(structures.Parameter{Name: "a", Type: "number"}); err != nil {
		t.Fatalf("AddParameter failed: %v", err)
	}
	wantContent(t, file, "function f(a: number) {}")

	param, err := fn.InsertParameter(0, structures.Parameter{Name: "b", IsOptional: true, Type: "string"})
	if err != nil {
		t.Fatalf("InsertParameter failed: %v", err)
	}
	wantContent(t, file, "function f(b?: string, a: number) {}")
	if name, err := param.Name(); err != nil || name != "b" {
		t.Errorf("expected returned handle for b, got %q (%v)", name, err)
	}

	params, err := fn.Parameters()
	if err != nil {
		t.Fatalf("Parameters failed: %v", err)
	}
	if len(params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(params))
	}

	if _, err := fn.InsertParameter(5, structures.Parameter{Name: "z"}); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for an out-of-range index, got %v", err)
	}
}

func TestHeritageClauses(t *testing.T) {
	file := newTestFile(t, "class C {}")
	class := getClass(t, file, "C")

	if err := class.SetExtends("Base"); err != nil {
		t.Fatalf("SetExtends failed: %v", err)
	}
	wantContent(t, file, "class C extends Base {}")

	if err := class.AddImplements("I"); err != nil {
		t.Fatalf("AddImplements failed: %v", err)
	}
	if err := class.AddImplements("J"); err != nil {
		t.Fatalf("second AddImplements failed: %v", err)
	}
	wantContent(t, file, "class C extends Base implements I, J {}")

	// Re-adding a present target is a no-op.
	version := file.Version()
	if err := class.AddImplements("I"); err != nil {
		t.Fatalf("repeated AddImplements failed: %v", err)
	}
	if file.Version() != version {
		t.Errorf("expected no edit from a no-op, version went %d -> %d", version, file.Version())
	}

	extends, err := class.Extends()
	if err != nil {
		t.Fatalf("Extends failed: %v", err)
	}
	if len(extends) != 1 || extends[0] != "Base" {
		t.Errorf("expected extends [Base], got %v", extends)
	}
	impls, err := class.Implements()
	if err != nil {
		t.Fatalf("Implements failed: %v", err)
	}
	if len(impls) != 2 || impls[0] != "I" || impls[1] != "J" {
		t.Errorf("expected implements [I, J], got %v", impls)
	}

	if err := class.SetExtends("Other"); err != nil {
		t.Fatalf("replacing SetExtends failed: %v", err)
	}
	wantContent(t, file, "class C extends Other implements I, J {}")

	if err := class.RemoveExtends(); err != nil {
		t.Fatalf("RemoveExtends failed: %v", err)
	}
	wantContent(t, file, "class C implements I, J {}")
}

func TestAddDecorator(t *testing.T) {
	file := newTestFile(t, "class C {\n  a = 1;\n}")
	prop := firstMember(t, getClass(t, file, "C"))

	if err := prop.AddDecorator(structures.Decorator{Name: "Input", Arguments: []string{}}); err != nil {
		t.Fatalf("AddDecorator failed: %v", err)
	}
	wantContent(t, file, "class C {\n  @Input()\n  a = 1;\n}")

	decorators, err := prop.Decorators()
	if err != nil {
		t.Fatalf("Decorators failed: %v", err)
	}
	if len(decorators) != 1 {
		t.Fatalf("expected 1 decorator, got %d", len(decorators))
	}
	if text, err := decorators[0].Text(); err != nil || text != "@Input()" {
		t.Errorf("expected decorator text @Input(), got %q (%v)", text, err)
	}

	// Same name again, even with different arguments, is a no-op.
	version := file.Version()
	if err := prop.AddDecorator(structures.Decorator{Name: "Input", Arguments: []string{"1"}}); err != nil {
		t.Fatalf("repeated AddDecorator failed: %v", err)
	}
	if file.Version() != version {
		t.Errorf("expected no edit from a duplicate decorator, version went %d -> %d", version, file.Version())
	}

	// A bare decorator renders without parentheses.
	if err := prop.AddDecorator(structures.Decorator{Name: "Expose"}); err != nil {
		t.Fatalf("AddDecorator without arguments failed: %v", err)
	}
	wantContent(t, file, "class C {\n  @Input()\n  @Expose\n  a = 1;\n}")
}

func TestAddDocComment(t *testing.T) {
	file := newTestFile(t, "class C {\n  a = 1;\n}")
	class := getClass(t, file, "C")

	if err := class.AddDocComment("Greets."); err != nil {
		t.Fatalf("AddDocComment failed: %v", err)
	}
	wantContent(t, file, "/** Greets. */\nclass C {\n  a = 1;\n}")

	comments, err := class.LeadingComments()
	if err != nil {
		t.Fatalf("LeadingComments failed: %v", err)
	}
	if len(comments) != 1 || comments[0] != "/** Greets. */" {
		t.Errorf("expected [/** Greets. */], got %v", comments)
	}

	// Text already present in the leading trivia is not written twice.
	version := file.Version()
	if err := class.AddDocComment("Greets."); err != nil {
		t.Fatalf("repeated AddDocComment failed: %v", err)
	}
	if file.Version() != version {
		t.Errorf("expected no edit from a duplicate doc, version went %d -> %d", version, file.Version())
	}

	// Members get the comment at their own indentation.
	prop := firstMember(t, class)
	if err := prop.AddDocComment("The a."); err != nil {
		t.Fatalf("member AddDocComment failed: %v", err)
	}
	wantContent(t, file, "/** Greets. */\nclass C {\n  /** The a. */\n  a = 1;\n}")
}

func TestCapabilityErrors(t *testing.T) {
	file := newTestFile(t, "class C {\n  a = 1;\n  m() {\n  }\n}")
	class := getClass(t, file, "C")
	members, err := class.Members()
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	prop, method := members[0], members[1]

	if err := prop.SetAsync(true); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for async on a property, got %v", err)
	}
	if err := method.SetReadonly(true); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for readonly on a method, got %v", err)
	}
	if _, err := method.SetInitializer("1"); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for an initializer on a method, got %v", err)
	}
	if _, err := prop.SetExported(true); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for export on a member, got %v", err)
	}
	if err := class.SetExtends("  "); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for a blank extends target, got %v", err)
	}
	if _, err := class.SetType("number"); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for a type annotation on a class, got %v", err)
	}
}
