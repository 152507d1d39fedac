package ast

import (
	"strings"

	"sculpt/internal/structures"
	"sculpt/internal/textutil"
)

// Renderers turn structures into member or statement text. Rendered
// blocks start at column zero with internal levels using the session's
// indent; the insertion machinery indents the whole block into place.

func renderDocs(docs []string, f Format) []string {
	var out []string
	for _, doc := range docs {
		if doc == "" {
			continue
		}
		if !strings.Contains(doc, "\n") {
			out = append(out, "/** "+doc+" */")
			continue
		}
		out = append(out, "/**")
		for _, line := range strings.Split(doc, "\n") {
			out = append(out, " * "+line)
		}
		out = append(out, " */")
	}
	return out
}

// renderDocComment renders one doc entry as an insertable block: every
// line carries the construct's indentation and the block ends on a fresh
// line.
func renderDocComment(doc string, indent string, f Format) string {
	var b strings.Builder
	for _, line := range renderDocs([]string{doc}, f) {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString(f.NewLine)
	}
	return b.String()
}

func renderDecorator(d structures.Decorator) string {
	if d.Arguments == nil {
		return "@" + d.Name
	}
	return "@" + d.Name + "(" + strings.Join(d.Arguments, ", ") + ")"
}

// writePreamble emits docs and decorators, one per line.
func writePreamble(b *strings.Builder, docs []string, decorators []structures.Decorator, f Format) {
	for _, line := range renderDocs(docs, f) {
		b.WriteString(line)
		b.WriteString(f.NewLine)
	}
	for _, d := range decorators {
		b.WriteString(renderDecorator(d))
		b.WriteString(f.NewLine)
	}
}

func renderTypeParameters(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func renderParameter(p structures.Parameter, f Format) string {
	var b strings.Builder
	if p.Scope != "" {
		b.WriteString(string(p.Scope))
		b.WriteString(" ")
	}
	if p.IsReadonly {
		b.WriteString("readonly ")
	}
	if p.IsRest {
		b.WriteString("...")
	}
	b.WriteString(p.Name)
	if p.IsOptional {
		b.WriteString("?")
	}
	if p.Type != "" {
		b.WriteString(": ")
		b.WriteString(p.Type)
	}
	if p.Initializer != "" {
		b.WriteString(" = ")
		b.WriteString(p.Initializer)
	}
	return b.String()
}

func renderParameters(params []structures.Parameter, f Format) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = renderParameter(p, f)
	}
	return strings.Join(parts, ", ")
}

func renderProperty(p structures.Property, f Format) string {
	var b strings.Builder
	writePreamble(&b, p.Docs, p.Decorators, f)
	if p.Scope != "" {
		b.WriteString(string(p.Scope))
		b.WriteString(" ")
	}
	if p.IsStatic {
		b.WriteString("static ")
	}
	if p.IsReadonly {
		b.WriteString("readonly ")
	}
	b.WriteString(p.Name)
	if p.IsOptional {
		b.WriteString("?")
	}
	if p.Type != "" {
		b.WriteString(": ")
		b.WriteString(p.Type)
	}
	if p.Initializer != "" {
		b.WriteString(" = ")
		b.WriteString(p.Initializer)
	}
	b.WriteString(";")
	return b.String()
}

// renderBlock emits a braced statement body with one extra indent level.
func renderBlock(statements []string, f Format) string {
	if len(statements) == 0 {
		return "{" + f.NewLine + "}"
	}
	var b strings.Builder
	b.WriteString("{")
	for _, s := range statements {
		b.WriteString(f.NewLine)
		b.WriteString(textutil.Indent(s, f.Indent))
	}
	b.WriteString(f.NewLine)
	b.WriteString("}")
	return b.String()
}

func renderMethod(m structures.Method, f Format) string {
	var b strings.Builder
	writePreamble(&b, m.Docs, m.Decorators, f)
	if m.Scope != "" {
		b.WriteString(string(m.Scope))
		b.WriteString(" ")
	}
	if m.IsStatic {
		b.WriteString("static ")
	}
	if m.IsAsync {
		b.WriteString("async ")
	}
	b.WriteString(m.Name)
	b.WriteString(renderTypeParameters(m.TypeParameters))
	b.WriteString("(")
	b.WriteString(renderParameters(m.Parameters, f))
	b.WriteString(")")
	if m.ReturnType != "" {
		b.WriteString(": ")
		b.WriteString(m.ReturnType)
	}
	b.WriteString(" ")
	b.WriteString(renderBlock(m.Statements, f))
	return b.String()
}

func renderEnumMember(m structures.EnumMember, f Format) string {
	var b strings.Builder
	for _, line := range renderDocs(m.Docs, f) {
		b.WriteString(line)
		b.WriteString(f.NewLine)
	}
	b.WriteString(m.Name)
	if m.Value != "" {
		b.WriteString(" = ")
		b.WriteString(m.Value)
	}
	return b.String()
}

func renderPropertySignature(p structures.PropertySignature, f Format) string {
	var b strings.Builder
	for _, line := range renderDocs(p.Docs, f) {
		b.WriteString(line)
		b.WriteString(f.NewLine)
	}
	if p.IsReadonly {
		b.WriteString("readonly ")
	}
	b.WriteString(p.Name)
	if p.IsOptional {
		b.WriteString("?")
	}
	if p.Type != "" {
		b.WriteString(": ")
		b.WriteString(p.Type)
	}
	b.WriteString(";")
	return b.String()
}

func renderMethodSignature(m structures.MethodSignature, f Format) string {
	var b strings.Builder
	for _, line := range renderDocs(m.Docs, f) {
		b.WriteString(line)
		b.WriteString(f.NewLine)
	}
	b.WriteString(m.Name)
	if m.IsOptional {
		b.WriteString("?")
	}
	b.WriteString("(")
	b.WriteString(renderParameters(m.Parameters, f))
	b.WriteString(")")
	if m.ReturnType != "" {
		b.WriteString(": ")
		b.WriteString(m.ReturnType)
	}
	b.WriteString(";")
	return b.String()
}

// joinMembers lays member blocks out inside a braced body, blank lines
// around bodied members.
func joinMembers(members []string, bodied []bool, f Format) string {
	if len(members) == 0 {
		return "{" + f.NewLine + "}"
	}
	var b strings.Builder
	b.WriteString("{")
	for i, m := range members {
		b.WriteString(f.NewLine)
		if i > 0 && (bodied[i-1] || bodied[i]) {
			b.WriteString(f.NewLine)
		}
		b.WriteString(textutil.Indent(m, f.Indent))
	}
	b.WriteString(f.NewLine)
	b.WriteString("}")
	return b.String()
}

func renderClass(s structures.Class, f Format) string {
	var b strings.Builder
	writePreamble(&b, s.Docs, s.Decorators, f)
	if s.IsExported {
		b.WriteString("export ")
	}
	if s.IsAbstract {
		b.WriteString("abstract ")
	}
	b.WriteString("class ")
	b.WriteString(s.Name)
	b.WriteString(renderTypeParameters(s.TypeParameters))
	if s.Extends != "" {
		b.WriteString(" extends ")
		b.WriteString(s.Extends)
	}
	if len(s.Implements) > 0 {
		b.WriteString(" implements ")
		b.WriteString(strings.Join(s.Implements, ", "))
	}
	b.WriteString(" ")

	var members []string
	var bodied []bool
	for _, p := range s.Properties {
		members = append(members, renderProperty(p, f))
		bodied = append(bodied, false)
	}
	for _, m := range s.Methods {
		members = append(members, renderMethod(m, f))
		bodied = append(bodied, true)
	}
	b.WriteString(joinMembers(members, bodied, f))
	return b.String()
}

func renderInterface(s structures.Interface, f Format) string {
	var b strings.Builder
	for _, line := range renderDocs(s.Docs, f) {
		b.WriteString(line)
		b.WriteString(f.NewLine)
	}
	if s.IsExported {
		b.WriteString("export ")
	}
	b.WriteString("interface ")
	b.WriteString(s.Name)
	b.WriteString(renderTypeParameters(s.TypeParameters))
	if len(s.Extends) > 0 {
		b.WriteString(" extends ")
		b.WriteString(strings.Join(s.Extends, ", "))
	}
	b.WriteString(" ")

	var members []string
	var bodied []bool
	for _, p := range s.Properties {
		members = append(members, renderPropertySignature(p, f))
		bodied = append(bodied, false)
	}
	for _, m := range s.Methods {
		members = append(members, renderMethodSignature(m, f))
		bodied = append(bodied, false)
	}
	b.WriteString(joinMembers(members, bodied, f))
	return b.String()
}

func renderEnum(s structures.Enum, f Format) string {
	var b strings.Builder
	for _, line := range renderDocs(s.Docs, f) {
		b.WriteString(line)
		b.WriteString(f.NewLine)
	}
	if s.IsExported {
		b.WriteString("export ")
	}
	if s.IsConst {
		b.WriteString("const ")
	}
	b.WriteString("enum ")
	b.WriteString(s.Name)
	b.WriteString(" {")
	for i, m := range s.Members {
		b.WriteString(f.NewLine)
		b.WriteString(textutil.Indent(renderEnumMember(m, f), f.Indent))
		if i < len(s.Members)-1 {
			b.WriteString(",")
		}
	}
	b.WriteString(f.NewLine)
	b.WriteString("}")
	return b.String()
}

func renderFunction(s structures.Function, f Format) string {
	var b strings.Builder
	for _, line := range renderDocs(s.Docs, f) {
		b.WriteString(line)
		b.WriteString(f.NewLine)
	}
	if s.IsExported {
		b.WriteString("export ")
	}
	if s.IsAsync {
		b.WriteString("async ")
	}
	b.WriteString("function ")
	b.WriteString(s.Name)
	b.WriteString(renderTypeParameters(s.TypeParameters))
	b.WriteString("(")
	b.WriteString(renderParameters(s.Parameters, f))
	b.WriteString(")")
	if s.ReturnType != "" {
		b.WriteString(": ")
		b.WriteString(s.ReturnType)
	}
	b.WriteString(" ")
	b.WriteString(renderBlock(s.Statements, f))
	return b.String()
}

func renderTypeAlias(s structures.TypeAlias, f Format) string {
	var b strings.Builder
	for _, line := range renderDocs(s.Docs, f) {
		b.WriteString(line)
		b.WriteString(f.NewLine)
	}
	if s.IsExported {
		b.WriteString("export ")
	}
	b.WriteString("type ")
	b.WriteString(s.Name)
	b.WriteString(renderTypeParameters(s.TypeParameters))
	b.WriteString(" = ")
	b.WriteString(s.Type)
	b.WriteString(";")
	return b.String()
}

func renderVariableStatement(s structures.VariableStatement, f Format) string {
	var b strings.Builder
	for _, line := range renderDocs(s.Docs, f) {
		b.WriteString(line)
		b.WriteString(f.NewLine)
	}
	if s.IsExported {
		b.WriteString("export ")
	}
	kind := s.DeclarationKind
	if kind == "" {
		kind = "const"
	}
	b.WriteString(kind)
	b.WriteString(" ")
	for i, d := range s.Declarations {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.Name)
		if d.Type != "" {
			b.WriteString(": ")
			b.WriteString(d.Type)
		}
		if d.Initializer != "" {
			b.WriteString(" = ")
			b.WriteString(d.Initializer)
		}
	}
	b.WriteString(";")
	return b.String()
}
