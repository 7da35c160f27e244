package htmlrender

import (
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/apidoc/signature"
	"git.home.luguber.info/inful/docsite/internal/apidoc/xref"
)

// sigWriter emits a signature into a code element, turning every referenced
// type name into a link or a plain name span. Its text content always equals
// the corresponding signature package output.
type sigWriter struct {
	resolver *xref.Resolver
	out      *html.Node
	pending  strings.Builder
}

func newSigWriter(r *xref.Resolver, out *html.Node) *sigWriter {
	return &sigWriter{resolver: r, out: out}
}

func (w *sigWriter) text(s string) {
	w.pending.WriteString(s)
}

func (w *sigWriter) flush() {
	if w.pending.Len() > 0 {
		w.out.AppendChild(txt(w.pending.String()))
		w.pending.Reset()
	}
}

// done flushes buffered text and returns the target node.
func (w *sigWriter) done() *html.Node {
	w.flush()
	return w.out
}

// typeName links local and cross-package names; built-in and unresolved
// names render as plain text.
func (w *sigWriter) typeName(name string) {
	w.flush()
	link := w.resolver.Resolve(name)
	switch link.Class {
	case xref.Local, xref.CrossPackage:
		w.out.AppendChild(textEl("a", name, "class", xref.CSSClass(link.Class), "href", link.URL))
	default:
		w.out.AppendChild(textEl("span", name, "class", "type-name"))
	}
}

func (w *sigWriter) typ(t *apidoc.TsTypeDef, depth int) {
	if t == nil {
		w.text(signature.Unknown)
		return
	}
	if depth > apidoc.MaxTypeDepth {
		w.text(reprOrUnknown(t))
		return
	}
	next := depth + 1

	switch t.Kind {
	case apidoc.TypeKindTypeRef:
		if t.TypeRef != nil && t.TypeRef.TypeName != "" {
			w.typeName(t.TypeRef.TypeName)
			if len(t.TypeRef.TypeParams) > 0 {
				w.text("<")
				w.types(t.TypeRef.TypeParams, ", ", next)
				w.text(">")
			}
			return
		}
	case apidoc.TypeKindArray:
		if t.Array != nil {
			parens := needsParens(t.Array)
			if parens {
				w.text("(")
			}
			w.typ(t.Array, next)
			if parens {
				w.text(")")
			}
			w.text("[]")
			return
		}
	case apidoc.TypeKindUnion:
		if len(t.Union) > 0 {
			w.types(t.Union, " | ", next)
			return
		}
	case apidoc.TypeKindIntersection:
		if len(t.Intersection) > 0 {
			w.types(t.Intersection, " & ", next)
			return
		}
	case apidoc.TypeKindTuple:
		if t.Tuple != nil {
			w.text("[")
			w.types(t.Tuple, ", ", next)
			w.text("]")
			return
		}
	case apidoc.TypeKindFnOrConstructor:
		if fn := t.FnOrConstructor; fn != nil {
			if fn.Constructor {
				w.text("new ")
			}
			w.typeParams(fn.TypeParams, next)
			w.text("(")
			w.params(fn.Params, next)
			w.text(") => ")
			w.typ(fn.TsType, next)
			return
		}
	case apidoc.TypeKindTypeOperator:
		if op := t.TypeOperator; op != nil && op.TsType != nil {
			w.text(op.Operator + " ")
			w.typ(op.TsType, next)
			return
		}
	case apidoc.TypeKindTypeLiteral:
		if t.TypeLiteral != nil {
			w.typeLiteral(t.TypeLiteral, next)
			return
		}
	case apidoc.TypeKindOptional:
		if t.Optional != nil {
			w.typ(t.Optional, next)
			w.text("?")
			return
		}
	case apidoc.TypeKindParenthesized:
		if t.Parenthesized != nil {
			w.text("(")
			w.typ(t.Parenthesized, next)
			w.text(")")
			return
		}
	case apidoc.TypeKindRest:
		if t.Rest != nil {
			w.text("...")
			w.typ(t.Rest, next)
			return
		}
	case apidoc.TypeKindIndexedAccess:
		if ia := t.IndexedAccess; ia != nil && ia.ObjType != nil && ia.IndexType != nil {
			w.typ(ia.ObjType, next)
			w.text("[")
			w.typ(ia.IndexType, next)
			w.text("]")
			return
		}
	case apidoc.TypeKindConditional:
		if c := t.Conditional; c != nil && c.CheckType != nil && c.ExtendsType != nil {
			w.typ(c.CheckType, next)
			w.text(" extends ")
			w.typ(c.ExtendsType, next)
			w.text(" ? ")
			w.typ(c.TrueType, next)
			w.text(" : ")
			w.typ(c.FalseType, next)
			return
		}
	case apidoc.TypeKindLiteral:
		if l := t.Literal; l != nil && l.Kind == apidoc.LiteralTemplate && l.TsTypes != nil {
			w.template(l.TsTypes, next)
			return
		}
	case apidoc.TypeKindMapped:
		if m := t.Mapped; m != nil && m.TypeParam.Name != "" && m.TypeParam.Constraint != nil {
			w.text("{ " + signature.MappedReadonly(m) + "[" + m.TypeParam.Name + " in ")
			w.typ(m.TypeParam.Constraint, next)
			if m.NameType != nil {
				w.text(" as ")
				w.typ(m.NameType, next)
			}
			w.text("]" + signature.MappedOptional(m) + ": ")
			w.typ(m.TsType, next)
			w.text(" }")
			return
		}
	case apidoc.TypeKindTypePredicate:
		if p := t.TypePredicate; p != nil && p.Param != "" {
			if p.Asserts {
				w.text("asserts ")
			}
			w.text(p.Param)
			if p.Type != nil {
				w.text(" is ")
				w.typ(p.Type, next)
			}
			return
		}
	}
	// Keywords, plain literals and the remaining shapes carry no links of
	// their own.
	w.text(signature.Type(t))
}

// template writes a template literal type; string parts are verbatim and
// every other part is interpolated.
func (w *sigWriter) template(parts []apidoc.TsTypeDef, depth int) {
	w.text("`")
	for i := range parts {
		part := &parts[i]
		if part.Kind == apidoc.TypeKindLiteral && part.Literal != nil && part.Literal.Kind == apidoc.LiteralString && part.Literal.String != nil {
			w.text(*part.Literal.String)
			continue
		}
		w.text("${")
		w.typ(part, depth)
		w.text("}")
	}
	w.text("`")
}

func (w *sigWriter) types(ts []apidoc.TsTypeDef, sep string, depth int) {
	for i := range ts {
		if i > 0 {
			w.text(sep)
		}
		w.typ(&ts[i], depth)
	}
}

func (w *sigWriter) typeLiteral(lit *apidoc.TsTypeLiteralDef, depth int) {
	if len(lit.CallSignatures)+len(lit.IndexSignatures)+len(lit.Properties)+len(lit.Methods) == 0 {
		w.text("{}")
		return
	}
	w.text("{ ")
	first := true
	sep := func() {
		if !first {
			w.text("; ")
		}
		first = false
	}
	for i := range lit.CallSignatures {
		sep()
		w.callSignature(&lit.CallSignatures[i], depth)
	}
	for i := range lit.IndexSignatures {
		sep()
		w.indexSignature(&lit.IndexSignatures[i], depth)
	}
	for i := range lit.Properties {
		sep()
		w.interfaceProperty(&lit.Properties[i], depth)
	}
	for i := range lit.Methods {
		sep()
		w.interfaceMethod(&lit.Methods[i], depth)
	}
	w.text(" }")
}

func (w *sigWriter) params(ps []apidoc.ParamDef, depth int) {
	for i := range ps {
		if i > 0 {
			w.text(", ")
		}
		p := &ps[i]
		name := signature.ParamName(p)
		if signature.ParamOptional(p) {
			name += "?"
		}
		w.text(name + ": ")
		w.typ(signature.ParamType(p), depth)
	}
}

func (w *sigWriter) typeParams(tps []apidoc.TsTypeParamDef, depth int) {
	if len(tps) == 0 {
		return
	}
	w.text("<")
	for i := range tps {
		if i > 0 {
			w.text(", ")
		}
		tp := &tps[i]
		w.text(tp.Name)
		if tp.Constraint != nil {
			w.text(" extends ")
			w.typ(tp.Constraint, depth)
		}
		if tp.Default != nil {
			w.text(" = ")
			w.typ(tp.Default, depth)
		}
	}
	w.text(">")
}

func (w *sigWriter) returnType(t *apidoc.TsTypeDef) {
	if t != nil {
		w.text(": ")
		w.typ(t, 0)
	}
}

func (w *sigWriter) function(name string, def *apidoc.FunctionDef) {
	if def == nil {
		w.text("function " + name + "()")
		return
	}
	if def.IsAsync {
		w.text("async ")
	}
	w.text("function")
	if def.IsGenerator {
		w.text("*")
	}
	w.text(" " + name)
	w.typeParams(def.TypeParams, 0)
	w.text("(")
	w.params(def.Params, 0)
	w.text(")")
	w.returnType(def.ReturnType)
}

func (w *sigWriter) class(name string, def *apidoc.ClassDef) {
	if def == nil {
		w.text("class " + name)
		return
	}
	if def.IsAbstract {
		w.text("abstract ")
	}
	w.text("class " + name)
	w.typeParams(def.TypeParams, 0)
	if def.Extends != "" {
		w.text(" extends ")
		w.typeName(def.Extends)
		if len(def.SuperTypeParams) > 0 {
			w.text("<")
			w.types(def.SuperTypeParams, ", ", 0)
			w.text(">")
		}
	}
	if len(def.Implements) > 0 {
		w.text(" implements ")
		w.types(def.Implements, ", ", 0)
	}
}

func (w *sigWriter) iface(name string, def *apidoc.InterfaceDef) {
	w.text("interface " + name)
	if def == nil {
		return
	}
	w.typeParams(def.TypeParams, 0)
	if len(def.Extends) > 0 {
		w.text(" extends ")
		w.types(def.Extends, ", ", 0)
	}
}

func (w *sigWriter) typeAlias(name string, def *apidoc.TypeAliasDef) {
	w.text("type " + name)
	if def == nil {
		w.text(" = " + signature.Unknown)
		return
	}
	w.typeParams(def.TypeParams, 0)
	w.text(" = ")
	w.typ(def.TsType, 0)
}

func (w *sigWriter) variable(name string, def *apidoc.VariableDef) {
	keyword := string(apidoc.VarDeclConst)
	if def != nil && def.Kind != "" {
		keyword = string(def.Kind)
	}
	w.text(keyword + " " + name)
	if def != nil {
		w.returnType(def.TsType)
	}
}

func (w *sigWriter) constructor(c *apidoc.ClassConstructorDef) {
	w.text(modifier(string(c.Accessibility)) + "constructor(")
	w.params(c.Params, 0)
	w.text(")")
}

func (w *sigWriter) property(p *apidoc.ClassPropertyDef) {
	mods := modifier(string(p.Accessibility))
	if p.IsStatic {
		mods += "static "
	}
	if p.IsAbstract {
		mods += "abstract "
	}
	if p.Readonly {
		mods += "readonly "
	}
	name := p.Name
	if p.Optional {
		name += "?"
	}
	w.text(mods + name + ": ")
	w.typ(p.TsType, 0)
}

func (w *sigWriter) method(m *apidoc.ClassMethodDef) {
	mods := modifier(string(m.Accessibility))
	if m.IsStatic {
		mods += "static "
	}
	if m.IsAbstract {
		mods += "abstract "
	}
	if m.FunctionDef.IsAsync {
		mods += "async "
	}
	mods += accessor(m.Kind)
	if m.FunctionDef.IsGenerator {
		mods += "*"
	}
	name := m.Name
	if m.Optional {
		name += "?"
	}
	w.text(mods + name)
	w.typeParams(m.FunctionDef.TypeParams, 0)
	w.text("(")
	w.params(m.FunctionDef.Params, 0)
	w.text(")")
	w.returnType(m.FunctionDef.ReturnType)
}

func (w *sigWriter) interfaceProperty(p *apidoc.InterfacePropertyDef, depth int) {
	s := ""
	if p.Readonly {
		s = "readonly "
	}
	s += p.Name
	if p.Optional {
		s += "?"
	}
	w.text(s + ": ")
	w.typ(p.TsType, depth)
}

func (w *sigWriter) interfaceMethod(m *apidoc.InterfaceMethodDef, depth int) {
	name := accessor(m.Kind) + m.Name
	if m.Optional {
		name += "?"
	}
	w.text(name)
	w.typeParams(m.TypeParams, depth)
	w.text("(")
	w.params(m.Params, depth)
	w.text(")")
	if m.ReturnType != nil {
		w.text(": ")
		w.typ(m.ReturnType, depth)
	}
}

func (w *sigWriter) callSignature(c *apidoc.InterfaceCallSignatureDef, depth int) {
	w.typeParams(c.TypeParams, depth)
	w.text("(")
	w.params(c.Params, depth)
	w.text("): ")
	w.typ(c.TsType, depth)
}

func (w *sigWriter) indexSignature(s *apidoc.InterfaceIndexSignatureDef, depth int) {
	if s.Readonly {
		w.text("readonly ")
	}
	w.text("[")
	w.params(s.Params, depth)
	w.text("]: ")
	w.typ(s.TsType, depth)
}

func (w *sigWriter) enumMember(m *apidoc.EnumMemberDef) {
	w.text(m.Name)
	if m.Init != nil {
		w.text(" = ")
		w.typ(m.Init, 0)
	}
}

func reprOrUnknown(t *apidoc.TsTypeDef) string {
	if t.Repr != "" {
		return t.Repr
	}
	return signature.Unknown
}

func needsParens(t *apidoc.TsTypeDef) bool {
	switch t.Kind {
	case apidoc.TypeKindUnion, apidoc.TypeKindIntersection, apidoc.TypeKindFnOrConstructor, apidoc.TypeKindConditional:
		return true
	}
	return false
}

func modifier(s string) string {
	if s == "" {
		return ""
	}
	return s + " "
}

func accessor(k apidoc.MethodKind) string {
	switch k {
	case apidoc.MethodKindGetter:
		return "get "
	case apidoc.MethodKindSetter:
		return "set "
	}
	return ""
}
