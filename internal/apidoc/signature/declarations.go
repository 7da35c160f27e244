package signature

import (
	"strings"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
)

// Declaration signatures compose modifiers, keyword, name, type parameters,
// parameters or heritage clauses, and the return type, in that order.

// Function formats `[async ]function[*] name<T>(params)[: R]`.
func Function(name string, def *apidoc.FunctionDef) string {
	if def == nil {
		return "function " + name + "()"
	}
	var b strings.Builder
	if def.IsAsync {
		b.WriteString("async ")
	}
	b.WriteString("function")
	if def.IsGenerator {
		b.WriteByte('*')
	}
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(TypeParams(def.TypeParams))
	b.WriteString("(" + Params(def.Params) + ")")
	if def.ReturnType != nil {
		b.WriteString(": " + Type(def.ReturnType))
	}
	return b.String()
}

// Class formats `[abstract ]class Name<T>[ extends Base<A>][ implements I, J]`.
func Class(name string, def *apidoc.ClassDef) string {
	if def == nil {
		return "class " + name
	}
	var b strings.Builder
	if def.IsAbstract {
		b.WriteString("abstract ")
	}
	b.WriteString("class " + name)
	b.WriteString(TypeParams(def.TypeParams))
	if def.Extends != "" {
		b.WriteString(" extends " + def.Extends)
		if len(def.SuperTypeParams) > 0 {
			b.WriteString("<" + joinTypes(def.SuperTypeParams, ", ", 0) + ">")
		}
	}
	if len(def.Implements) > 0 {
		b.WriteString(" implements " + joinTypes(def.Implements, ", ", 0))
	}
	return b.String()
}

// Interface formats `interface Name<T>[ extends A, B]`.
func Interface(name string, def *apidoc.InterfaceDef) string {
	if def == nil {
		return "interface " + name
	}
	s := "interface " + name + TypeParams(def.TypeParams)
	if len(def.Extends) > 0 {
		s += " extends " + joinTypes(def.Extends, ", ", 0)
	}
	return s
}

// TypeAlias formats `type Name<T> = Type`.
func TypeAlias(name string, def *apidoc.TypeAliasDef) string {
	if def == nil {
		return "type " + name + " = " + Unknown
	}
	return "type " + name + TypeParams(def.TypeParams) + " = " + Type(def.TsType)
}

// Variable formats `const name[: Type]`; the keyword follows the declaration kind.
func Variable(name string, def *apidoc.VariableDef) string {
	keyword := string(apidoc.VarDeclConst)
	if def != nil && def.Kind != "" {
		keyword = string(def.Kind)
	}
	s := keyword + " " + name
	if def != nil && def.TsType != nil {
		s += ": " + Type(def.TsType)
	}
	return s
}

// Enum formats `[const ]enum Name`.
func Enum(name string, def *apidoc.EnumDef) string {
	if def != nil && def.IsConst {
		return "const enum " + name
	}
	return "enum " + name
}

// EnumMember formats `Name[ = init]`.
func EnumMember(m *apidoc.EnumMemberDef) string {
	if m.Init != nil {
		return m.Name + " = " + Type(m.Init)
	}
	return m.Name
}

// Constructor formats `[accessibility ]constructor(params)`.
func Constructor(c *apidoc.ClassConstructorDef) string {
	return accessibility(c.Accessibility) + "constructor(" + Params(c.Params) + ")"
}

// Method formats a class method with its modifiers, e.g.
// `protected static async get name<T>(params): R`.
func Method(m *apidoc.ClassMethodDef) string {
	var b strings.Builder
	b.WriteString(accessibility(m.Accessibility))
	if m.IsStatic {
		b.WriteString("static ")
	}
	if m.IsAbstract {
		b.WriteString("abstract ")
	}
	if m.FunctionDef.IsAsync {
		b.WriteString("async ")
	}
	switch m.Kind {
	case apidoc.MethodKindGetter:
		b.WriteString("get ")
	case apidoc.MethodKindSetter:
		b.WriteString("set ")
	}
	if m.FunctionDef.IsGenerator {
		b.WriteByte('*')
	}
	b.WriteString(m.Name)
	if m.Optional {
		b.WriteByte('?')
	}
	b.WriteString(TypeParams(m.FunctionDef.TypeParams))
	b.WriteString("(" + Params(m.FunctionDef.Params) + ")")
	if m.FunctionDef.ReturnType != nil {
		b.WriteString(": " + Type(m.FunctionDef.ReturnType))
	}
	return b.String()
}

// Property formats a class property, e.g. `private static readonly name?: T`.
func Property(p *apidoc.ClassPropertyDef) string {
	var b strings.Builder
	b.WriteString(accessibility(p.Accessibility))
	if p.IsStatic {
		b.WriteString("static ")
	}
	if p.IsAbstract {
		b.WriteString("abstract ")
	}
	if p.Readonly {
		b.WriteString("readonly ")
	}
	b.WriteString(p.Name)
	if p.Optional {
		b.WriteByte('?')
	}
	b.WriteString(": " + Type(p.TsType))
	return b.String()
}

// InterfaceMethod formats `name[?]<T>(params)[: R]`.
func InterfaceMethod(m *apidoc.InterfaceMethodDef) string {
	return interfaceMethod(m, 0)
}

func interfaceMethod(m *apidoc.InterfaceMethodDef, depth int) string {
	s := ""
	switch m.Kind {
	case apidoc.MethodKindGetter:
		s = "get "
	case apidoc.MethodKindSetter:
		s = "set "
	}
	s += m.Name
	if m.Optional {
		s += "?"
	}
	s += typeParams(m.TypeParams, depth) + "(" + params(m.Params, depth) + ")"
	if m.ReturnType != nil {
		s += ": " + formatType(m.ReturnType, depth)
	}
	return s
}

// InterfaceProperty formats `[readonly ]name[?]: T`.
func InterfaceProperty(p *apidoc.InterfacePropertyDef) string {
	return interfaceProperty(p, 0)
}

func interfaceProperty(p *apidoc.InterfacePropertyDef, depth int) string {
	s := ""
	if p.Readonly {
		s = "readonly "
	}
	s += p.Name
	if p.Optional {
		s += "?"
	}
	return s + ": " + formatType(p.TsType, depth)
}

// CallSignature formats `<T>(params): R`.
func CallSignature(c *apidoc.InterfaceCallSignatureDef) string {
	return callSignature(c, 0)
}

func callSignature(c *apidoc.InterfaceCallSignatureDef, depth int) string {
	return typeParams(c.TypeParams, depth) + "(" + params(c.Params, depth) + "): " + formatType(c.TsType, depth)
}

// IndexSignature formats `[readonly ][key: K]: V`.
func IndexSignature(s *apidoc.InterfaceIndexSignatureDef) string {
	return indexSignature(s, 0)
}

func indexSignature(s *apidoc.InterfaceIndexSignatureDef, depth int) string {
	out := ""
	if s.Readonly {
		out = "readonly "
	}
	return out + "[" + params(s.Params, depth) + "]: " + formatType(s.TsType, depth)
}

func accessibility(a apidoc.Accessibility) string {
	if a == "" {
		return ""
	}
	return string(a) + " "
}

// Node formats the primary declaration signature of any node. Kinds without a
// signature render as their bare name.
func Node(n *apidoc.DocNode) string {
	switch n.Kind {
	case apidoc.KindFunction:
		return Function(n.Name, n.FunctionDef)
	case apidoc.KindClass:
		return Class(n.Name, n.ClassDef)
	case apidoc.KindInterface:
		return Interface(n.Name, n.InterfaceDef)
	case apidoc.KindTypeAlias:
		return TypeAlias(n.Name, n.TypeAliasDef)
	case apidoc.KindVariable:
		return Variable(n.Name, n.VariableDef)
	case apidoc.KindEnum:
		return Enum(n.Name, n.EnumDef)
	case apidoc.KindNamespace:
		return "namespace " + n.Name
	}
	return n.Name
}
