package compiler

// Kind identifies a node's grammatical category. Values are the TypeScript
// grammar's node type names, plus KindSyntaxList which is synthesized during
// snapshot construction and never produced by the grammar itself.
type Kind string

const (
	KindProgram              Kind = "program"
	KindClassDeclaration     Kind = "class_declaration"
	KindAbstractClass        Kind = "abstract_class_declaration"
	KindClassBody            Kind = "class_body"
	KindMethodDefinition     Kind = "method_definition"
	KindFieldDefinition      Kind = "public_field_definition"
	KindInterfaceDeclaration Kind = "interface_declaration"
	KindInterfaceBody        Kind = "interface_body"
	KindObjectType           Kind = "object_type"
	KindPropertySignature    Kind = "property_signature"
	KindMethodSignature      Kind = "method_signature"
	KindEnumDeclaration      Kind = "enum_declaration"
	KindEnumBody             Kind = "enum_body"
	KindEnumAssignment       Kind = "enum_assignment"
	KindFunctionDeclaration  Kind = "function_declaration"
	KindStatementBlock       Kind = "statement_block"
	KindLexicalDeclaration   Kind = "lexical_declaration"
	KindVariableStatement    Kind = "variable_declaration"
	KindVariableDeclarator   Kind = "variable_declarator"
	KindTypeAliasDeclaration Kind = "type_alias_declaration"
	KindExportStatement      Kind = "export_statement"
	KindExpressionStatement  Kind = "expression_statement"
	KindFormalParameters     Kind = "formal_parameters"
	KindRequiredParameter    Kind = "required_parameter"
	KindOptionalParameter    Kind = "optional_parameter"
	KindTypeParameters       Kind = "type_parameters"
	KindTypeAnnotation       Kind = "type_annotation"
	KindExtendsClause        Kind = "extends_clause"
	KindExtendsTypeClause    Kind = "extends_type_clause"
	KindImplementsClause     Kind = "implements_clause"
	KindClassHeritage        Kind = "class_heritage"
	KindDecorator            Kind = "decorator"
	KindIdentifier           Kind = "identifier"
	KindPropertyIdentifier   Kind = "property_identifier"
	KindTypeIdentifier       Kind = "type_identifier"
	KindAccessibilityMod     Kind = "accessibility_modifier"
	KindComment              Kind = "comment"
	KindError                Kind = "ERROR"

	// KindSyntaxList groups the elements (and their separator tokens) of a
	// delimiter-bodied container. Synthesized; see interposeList.
	KindSyntaxList Kind = "syntax_list"
)

// String returns the kind's grammar name.
func (k Kind) String() string { return string(k) }

// listContainers are the kinds whose element children are grouped under a
// synthesized syntax list. An empty container gets no list; inserting the
// first element bootstraps one on the following re-parse.
var listContainers = map[Kind]bool{
	KindClassBody:      true,
	KindEnumBody:       true,
	KindInterfaceBody:  true,
	KindObjectType:     true,
	KindStatementBlock: true,
}

// IsListContainer reports whether k groups its elements under a synthesized
// syntax list when non-empty.
func IsListContainer(k Kind) bool { return listContainers[k] }

// bodiedKinds are member kinds that carry a braced body. Insertion
// separates such members from their neighbors with a blank line.
var bodiedKinds = map[Kind]bool{
	KindMethodDefinition:     true,
	KindClassDeclaration:     true,
	KindAbstractClass:        true,
	KindInterfaceDeclaration: true,
	KindEnumDeclaration:      true,
	KindFunctionDeclaration:  true,
}

// IsBodied reports whether nodes of kind k carry a braced body.
func IsBodied(k Kind) bool { return bodiedKinds[k] }

// fieldNames are the grammar field tags recorded on snapshot children.
var fieldNames = []string{
	"name",
	"value",
	"type",
	"body",
	"parameters",
	"type_parameters",
	"return_type",
	"declaration",
	"pattern",
}
