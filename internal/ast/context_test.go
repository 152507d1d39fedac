package ast_test

import (
	"errors"
	"strings"
	"testing"

	"sculpt/internal/ast"
	"sculpt/internal/structures"
)

// newTestFile parses text into a fresh single-file session.
func newTestFile(t *testing.T, text string) *ast.SourceFile {
	t.Helper()
	ctx := ast.NewContext(ast.DefaultFormat())
	t.Cleanup(ctx.Close)
	file, err := ctx.CreateSourceFile("/src/main.ts", text)
	if err != nil {
		t.Fatalf("failed to create source file: %v", err)
	}
	return file
}

func getClass(t *testing.T, file *ast.SourceFile, name string) *ast.Node {
	t.Helper()
	class, err := file.GetClassOrThrow(name)
	if err != nil {
		t.Fatalf("GetClassOrThrow(%q) failed: %v", name, err)
	}
	return class
}

func getEnum(t *testing.T, file *ast.SourceFile, name string) *ast.Node {
	t.Helper()
	enum, err := file.GetEnumOrThrow(name)
	if err != nil {
		t.Fatalf("GetEnumOrThrow(%q) failed: %v", name, err)
	}
	return enum
}

func wantContent(t *testing.T, file *ast.SourceFile, want string) {
	t.Helper()
	if got := file.Content(); got != want {
		t.Errorf("content mismatch\ngot:  %q\nwant: %q", got, want)
	}
}

func TestCreateSourceFile(t *testing.T) {
	file := newTestFile(t, "const a = 1;\n")

	if file.Path() != "/src/main.ts" {
		t.Errorf("expected path /src/main.ts, got %s", file.Path())
	}
	if file.Version() != 1 {
		t.Errorf("expected version 1 on a fresh file, got %d", file.Version())
	}
	if file.Content() != "const a = 1;\n" {
		t.Errorf("content does not round-trip: %q", file.Content())
	}
	if file.HasParseErrors() {
		t.Errorf("expected no parse errors, got %v", file.Diagnostics())
	}
}

func TestParseErrorsAreReported(t *testing.T) {
	file := newTestFile(t, "class {")

	if !file.HasParseErrors() {
		t.Error("expected parse errors for malformed source")
	}
	if len(file.Diagnostics()) == 0 {
		t.Error("expected at least one diagnostic")
	}
}

func TestHandleIdentity(t *testing.T) {
	file := newTestFile(t, "class C {\n  a = 1;\n}\n")

	first := getClass(t, file, "C")
	second := getClass(t, file, "C")
	if first != second {
		t.Error("navigating to the same class twice returned distinct handles")
	}

	membersA, err := first.Members()
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	membersB, err := first.Members()
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(membersA) != 1 || len(membersB) != 1 {
		t.Fatalf("expected 1 member, got %d and %d", len(membersA), len(membersB))
	}
	if membersA[0] != membersB[0] {
		t.Error("navigating to the same member twice returned distinct handles")
	}
}

func TestVersionAdvancesPerAppliedEdit(t *testing.T) {
	file := newTestFile(t, "class C {}")
	class := getClass(t, file, "C")

	// A batch of two properties is a single splice and re-parse.
	if _, err := class.AddProperties([]structures.Property{
		{Name: "a", Type: "number"},
		{Name: "b", Type: "string"},
	}); err != nil {
		t.Fatalf("AddProperties failed: %v", err)
	}
	if file.Version() != 2 {
		t.Errorf("expected version 2 after one batch, got %d", file.Version())
	}
	wantContent(t, file, "class C {\n  a: number;\n  b: string;\n}")

	if _, err := class.AddProperty(structures.Property{Name: "c"}); err != nil {
		t.Fatalf("AddProperty failed: %v", err)
	}
	if file.Version() != 3 {
		t.Errorf("expected version 3 after a second edit, got %d", file.Version())
	}
}

func TestEditObserver(t *testing.T) {
	ctx := ast.NewContext(ast.DefaultFormat())
	t.Cleanup(ctx.Close)
	file, err := ctx.CreateSourceFile("/src/main.ts", "class C {}")
	if err != nil {
		t.Fatalf("failed to create source file: %v", err)
	}
	var edits []ast.FileEdit
	ctx.SetEditObserver(func(e ast.FileEdit) { edits = append(edits, e) })

	class, err := file.GetClassOrThrow("C")
	if err != nil {
		t.Fatalf("GetClassOrThrow failed: %v", err)
	}
	if _, err := class.AddProperty(structures.Property{Name: "a", Type: "number"}); err != nil {
		t.Fatalf("AddProperty failed: %v", err)
	}

	if len(edits) != 1 {
		t.Fatalf("expected 1 observed edit, got %d", len(edits))
	}
	e := edits[0]
	if e.Path != "/src/main.ts" {
		t.Errorf("expected edit path /src/main.ts, got %s", e.Path)
	}
	if e.Version != 2 {
		t.Errorf("expected edit version 2, got %d", e.Version)
	}
	if e.Start != 9 || e.OldEnd != 9 {
		t.Errorf("expected splice at [9,9), got [%d,%d)", e.Start, e.OldEnd)
	}
	if e.NewText != "\n  a: number;\n" {
		t.Errorf("unexpected splice text %q", e.NewText)
	}

	// Removing the observer stops the reports.
	ctx.SetEditObserver(nil)
	if _, err := class.AddProperty(structures.Property{Name: "b"}); err != nil {
		t.Fatalf("AddProperty failed: %v", err)
	}
	if len(edits) != 1 {
		t.Errorf("expected no further edits after removing the observer, got %d", len(edits))
	}
}

func TestForget(t *testing.T) {
	file := newTestFile(t, "class C {\n  a = 1;\n}\n")
	class := getClass(t, file, "C")

	members, err := class.Members()
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	prop := members[0]

	if err := class.Forget(); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	if !class.IsDisposed() {
		t.Error("expected the class handle to be disposed")
	}
	if !prop.IsDisposed() {
		t.Error("expected the member handle to be disposed with its ancestor")
	}

	// The text is untouched and fresh navigation works.
	wantContent(t, file, "class C {\n  a = 1;\n}\n")
	again := getClass(t, file, "C")
	if again == class {
		t.Error("expected a fresh handle after Forget")
	}
	if name, err := again.Name(); err != nil || name != "C" {
		t.Errorf("expected fresh handle to read name C, got %q (%v)", name, err)
	}
}

func TestForgetDescendants(t *testing.T) {
	file := newTestFile(t, "class C {\n  a = 1;\n}\n")
	class := getClass(t, file, "C")

	members, err := class.Members()
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	prop := members[0]

	if err := class.ForgetDescendants(); err != nil {
		t.Fatalf("ForgetDescendants failed: %v", err)
	}
	if class.IsDisposed() {
		t.Error("expected the receiver to stay alive")
	}
	if !prop.IsDisposed() {
		t.Error("expected the member handle to be disposed")
	}
}

func TestDisposedHandleFailsOperations(t *testing.T) {
	file := newTestFile(t, "class C {\n  a = 1;\n}\n")
	class := getClass(t, file, "C")

	if err := class.Forget(); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}

	if _, err := class.Name(); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation from a disposed handle, got %v", err)
	}
	if _, err := class.Members(); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation from a disposed handle, got %v", err)
	}
	if _, err := class.AddProperty(structures.Property{Name: "b"}); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation from a disposed handle, got %v", err)
	}

	// Kind and String survive disposal for logging.
	if class.Kind() != "class_declaration" {
		t.Errorf("expected kind to survive disposal, got %s", class.Kind())
	}
	if !strings.Contains(class.String(), "disposed") {
		t.Errorf("expected String to flag disposal, got %s", class.String())
	}
}

func TestSetTextDisposesDescendants(t *testing.T) {
	file := newTestFile(t, "class C {\n  a = 1;\n}\n")
	class := getClass(t, file, "C")

	if err := file.SetText("const x = 1;\n"); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	wantContent(t, file, "const x = 1;\n")
	if file.Version() != 2 {
		t.Errorf("expected version 2 after SetText, got %d", file.Version())
	}
	if !class.IsDisposed() {
		t.Error("expected the old class handle to be disposed")
	}
	if file.AsNode().IsDisposed() {
		t.Error("expected the file root to stay alive")
	}

	decl, err := file.GetVariableDeclaration("x")
	if err != nil {
		t.Fatalf("GetVariableDeclaration failed: %v", err)
	}
	if decl == nil {
		t.Fatal("expected to find declarator x in the replaced text")
	}
}

func TestReplaceTextValidatesRange(t *testing.T) {
	file := newTestFile(t, "const a = 1;\n")

	if err := file.ReplaceText(5, 3, "x"); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for an inverted range, got %v", err)
	}
	if err := file.ReplaceText(0, 1000, "x"); !errors.Is(err, ast.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation for an out-of-bounds range, got %v", err)
	}
}

func TestCustomFormat(t *testing.T) {
	ctx := ast.NewContext(ast.Format{Indent: "    ", NewLine: "\n"})
	t.Cleanup(ctx.Close)
	file, err := ctx.CreateSourceFile("/src/main.ts", "class C {}")
	if err != nil {
		t.Fatalf("failed to create source file: %v", err)
	}
	class, err := file.GetClassOrThrow("C")
	if err != nil {
		t.Fatalf("GetClassOrThrow failed: %v", err)
	}
	if _, err := class.AddProperty(structures.Property{Name: "a", Type: "number"}); err != nil {
		t.Fatalf("AddProperty failed: %v", err)
	}
	if got := file.Content(); got != "class C {\n    a: number;\n}" {
		t.Errorf("expected four-space indentation, got %q", got)
	}
}
