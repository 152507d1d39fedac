package ast

import "sculpt/internal/compiler"

// Capability tables. Operations are grouped into families; each family
// names the kinds it applies to and every accessor checks its family
// before touching the tree. Asking a construct for something outside its
// families fails with ErrInvalidOperation instead of blowing up on a
// missing child.

// identifierKinds name themselves.
var identifierKinds = map[compiler.Kind]bool{
	compiler.KindIdentifier:         true,
	compiler.KindPropertyIdentifier: true,
	compiler.KindTypeIdentifier:     true,
}

// exportableKinds may carry an export wrapper at the top level.
var exportableKinds = map[compiler.Kind]bool{
	compiler.KindClassDeclaration:     true,
	compiler.KindAbstractClass:        true,
	compiler.KindInterfaceDeclaration: true,
	compiler.KindEnumDeclaration:      true,
	compiler.KindFunctionDeclaration:  true,
	compiler.KindTypeAliasDeclaration: true,
	compiler.KindLexicalDeclaration:   true,
	compiler.KindVariableStatement:    true,
}

// initializerKinds carry an optional initializer expression. A plain enum
// member counts: setting its initializer turns it into an assignment.
var initializerKinds = map[compiler.Kind]bool{
	compiler.KindFieldDefinition:    true,
	compiler.KindVariableDeclarator: true,
	compiler.KindEnumAssignment:     true,
	compiler.KindRequiredParameter:  true,
	compiler.KindOptionalParameter:  true,
	compiler.KindPropertyIdentifier: true,
}

// typedKinds carry an optional declared type annotation.
var typedKinds = map[compiler.Kind]bool{
	compiler.KindFieldDefinition:    true,
	compiler.KindPropertySignature:  true,
	compiler.KindVariableDeclarator: true,
	compiler.KindRequiredParameter:  true,
	compiler.KindOptionalParameter:  true,
}

// returnTypedKinds carry an optional return type annotation.
var returnTypedKinds = map[compiler.Kind]bool{
	compiler.KindMethodDefinition:    true,
	compiler.KindFunctionDeclaration: true,
	compiler.KindMethodSignature:     true,
}

// parameteredKinds carry a formal parameter list.
var parameteredKinds = map[compiler.Kind]bool{
	compiler.KindMethodDefinition:    true,
	compiler.KindFunctionDeclaration: true,
	compiler.KindMethodSignature:     true,
}

// scopedKinds accept an accessibility modifier.
var scopedKinds = map[compiler.Kind]bool{
	compiler.KindFieldDefinition:   true,
	compiler.KindMethodDefinition:  true,
	compiler.KindRequiredParameter: true,
	compiler.KindOptionalParameter: true,
}

// heritageKinds accept extends (and, for classes, implements) clauses.
var heritageKinds = map[compiler.Kind]bool{
	compiler.KindClassDeclaration:     true,
	compiler.KindAbstractClass:        true,
	compiler.KindInterfaceDeclaration: true,
}

// staticableKinds accept the static modifier.
var staticableKinds = map[compiler.Kind]bool{
	compiler.KindFieldDefinition:  true,
	compiler.KindMethodDefinition: true,
}

// readonlyableKinds accept the readonly modifier.
var readonlyableKinds = map[compiler.Kind]bool{
	compiler.KindFieldDefinition:   true,
	compiler.KindPropertySignature: true,
	compiler.KindRequiredParameter: true,
	compiler.KindOptionalParameter: true,
}

// asyncableKinds accept the async modifier.
var asyncableKinds = map[compiler.Kind]bool{
	compiler.KindMethodDefinition:    true,
	compiler.KindFunctionDeclaration: true,
}

// modifierRank orders modifier keywords within a declaration prefix. A
// new modifier is inserted after every present modifier of lower rank.
var modifierRank = map[string]int{
	"public":    0,
	"private":   0,
	"protected": 0,
	"static":    1,
	"abstract":  2,
	"override":  3,
	"readonly":  4,
	"async":     5,
}
