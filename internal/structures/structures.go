// Package structures defines the declarative value objects consumed by the
// fill protocol. A structure describes the desired shape of a construct;
// it carries no identity and is never a live view of current state. Zero
// fields mean "leave alone": partial structures are always valid.
package structures

// Scope is a TypeScript accessibility modifier. The empty string means
// unspecified.
type Scope string

const (
	ScopePublic    Scope = "public"
	ScopePrivate   Scope = "private"
	ScopeProtected Scope = "protected"
)

// Decorator describes one decorator application. Arguments nil means a
// bare decorator (@Name); an empty non-nil slice renders a call (@Name()).
type Decorator struct {
	Name      string
	Arguments []string
}

// Parameter describes one function or method parameter.
type Parameter struct {
	Name        string
	Type        string
	Initializer string
	IsRest      bool
	IsOptional  bool
	Scope       Scope
	IsReadonly  bool
}

// Property describes a class property declaration.
type Property struct {
	Name        string
	Type        string
	Initializer string
	Scope       Scope
	IsStatic    bool
	IsReadonly  bool
	IsOptional  bool
	Decorators  []Decorator
	Docs        []string
}

// Method describes a class method declaration.
type Method struct {
	Name           string
	Parameters     []Parameter
	ReturnType     string
	TypeParameters []string
	Scope          Scope
	IsStatic       bool
	IsAsync        bool
	Statements     []string
	Decorators     []Decorator
	Docs           []string
}

// Class describes a class declaration.
type Class struct {
	Name           string
	IsExported     bool
	IsAbstract     bool
	TypeParameters []string
	Extends        string
	Implements     []string
	Properties     []Property
	Methods        []Method
	Decorators     []Decorator
	Docs           []string
}

// PropertySignature describes an interface property member.
type PropertySignature struct {
	Name       string
	Type       string
	IsReadonly bool
	IsOptional bool
	Docs       []string
}

// MethodSignature describes an interface method member.
type MethodSignature struct {
	Name       string
	Parameters []Parameter
	ReturnType string
	IsOptional bool
	Docs       []string
}

// Interface describes an interface declaration.
type Interface struct {
	Name           string
	IsExported     bool
	TypeParameters []string
	Extends        []string
	Properties     []PropertySignature
	Methods        []MethodSignature
	Docs           []string
}

// EnumMember describes one enum member; Value is the initializer text.
type EnumMember struct {
	Name  string
	Value string
	Docs  []string
}

// Enum describes an enum declaration.
type Enum struct {
	Name       string
	IsExported bool
	IsConst    bool
	Members    []EnumMember
	Docs       []string
}

// Function describes a function declaration.
type Function struct {
	Name           string
	IsExported     bool
	IsAsync        bool
	TypeParameters []string
	Parameters     []Parameter
	ReturnType     string
	Statements     []string
	Docs           []string
}

// TypeAlias describes a type alias declaration.
type TypeAlias struct {
	Name           string
	IsExported     bool
	TypeParameters []string
	Type           string
	Docs           []string
}

// VariableDeclaration describes one declarator of a variable statement.
type VariableDeclaration struct {
	Name        string
	Type        string
	Initializer string
}

// VariableStatement describes a const/let/var statement.
type VariableStatement struct {
	DeclarationKind string // "const", "let" or "var"; defaults to "const"
	IsExported      bool
	Declarations    []VariableDeclaration
	Docs            []string
}
