// Package signature renders type expressions, parameter lists and declaration
// signatures as canonical TypeScript-like source strings.
//
// All functions are pure and never fail: absent types render as "unknown",
// absent optional clauses are omitted, and variants without a structured
// rendering fall back to the extractor's Repr text.
package signature

import (
	"strconv"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
)

// Unknown is rendered for an absent type expression.
const Unknown = "unknown"

// Type formats a type expression.
func Type(t *apidoc.TsTypeDef) string {
	return formatType(t, 0)
}

func formatType(t *apidoc.TsTypeDef, depth int) string {
	if t == nil {
		return Unknown
	}
	if depth > apidoc.MaxTypeDepth {
		return fallback(t)
	}
	next := depth + 1

	switch t.Kind {
	case apidoc.TypeKindKeyword:
		if t.Keyword != "" {
			return t.Keyword
		}
	case apidoc.TypeKindTypeRef:
		if t.TypeRef != nil && t.TypeRef.TypeName != "" {
			if len(t.TypeRef.TypeParams) == 0 {
				return t.TypeRef.TypeName
			}
			return t.TypeRef.TypeName + "<" + joinTypes(t.TypeRef.TypeParams, ", ", next) + ">"
		}
	case apidoc.TypeKindArray:
		if t.Array != nil {
			elem := formatType(t.Array, next)
			if needsParens(t.Array) {
				elem = "(" + elem + ")"
			}
			return elem + "[]"
		}
	case apidoc.TypeKindUnion:
		if len(t.Union) > 0 {
			return joinTypes(t.Union, " | ", next)
		}
	case apidoc.TypeKindIntersection:
		if len(t.Intersection) > 0 {
			return joinTypes(t.Intersection, " & ", next)
		}
	case apidoc.TypeKindLiteral:
		if s, ok := literal(t.Literal, next); ok {
			return s
		}
	case apidoc.TypeKindTuple:
		if t.Tuple != nil {
			return "[" + joinTypes(t.Tuple, ", ", next) + "]"
		}
	case apidoc.TypeKindFnOrConstructor:
		if fn := t.FnOrConstructor; fn != nil {
			prefix := ""
			if fn.Constructor {
				prefix = "new "
			}
			return prefix + typeParams(fn.TypeParams, next) + "(" + params(fn.Params, next) + ") => " + formatType(fn.TsType, next)
		}
	case apidoc.TypeKindTypeOperator:
		if op := t.TypeOperator; op != nil && op.TsType != nil {
			return op.Operator + " " + formatType(op.TsType, next)
		}
	case apidoc.TypeKindTypeLiteral:
		if t.TypeLiteral != nil {
			return typeLiteral(t.TypeLiteral, next)
		}
	case apidoc.TypeKindOptional:
		if t.Optional != nil {
			return formatType(t.Optional, next) + "?"
		}
	case apidoc.TypeKindParenthesized:
		if t.Parenthesized != nil {
			return "(" + formatType(t.Parenthesized, next) + ")"
		}
	case apidoc.TypeKindRest:
		if t.Rest != nil {
			return "..." + formatType(t.Rest, next)
		}
	case apidoc.TypeKindIndexedAccess:
		if ia := t.IndexedAccess; ia != nil && ia.ObjType != nil && ia.IndexType != nil {
			return formatType(ia.ObjType, next) + "[" + formatType(ia.IndexType, next) + "]"
		}
	case apidoc.TypeKindTypeQuery:
		if t.TypeQuery != "" {
			return "typeof " + t.TypeQuery
		}
	case apidoc.TypeKindThis:
		return "this"
	case apidoc.TypeKindConditional:
		if c := t.Conditional; c != nil && c.CheckType != nil && c.ExtendsType != nil {
			return formatType(c.CheckType, next) + " extends " + formatType(c.ExtendsType, next) +
				" ? " + formatType(c.TrueType, next) + " : " + formatType(c.FalseType, next)
		}
	case apidoc.TypeKindMapped:
		if m := t.Mapped; m != nil && m.TypeParam.Name != "" && m.TypeParam.Constraint != nil {
			s := "{ " + MappedReadonly(m) + "[" + m.TypeParam.Name + " in " + formatType(m.TypeParam.Constraint, next)
			if m.NameType != nil {
				s += " as " + formatType(m.NameType, next)
			}
			return s + "]" + MappedOptional(m) + ": " + formatType(m.TsType, next) + " }"
		}
	case apidoc.TypeKindTypePredicate:
		if p := t.TypePredicate; p != nil && p.Param != "" {
			s := p.Param
			if p.Asserts {
				s = "asserts " + s
			}
			if p.Type != nil {
				s += " is " + formatType(p.Type, next)
			}
			return s
		}
	}
	return fallback(t)
}

// MappedReadonly returns the readonly modifier of a mapped type, including
// its trailing space, or "".
func MappedReadonly(m *apidoc.TsMappedTypeDef) string {
	switch m.Readonly {
	case "":
		return ""
	case "+", "-":
		return m.Readonly + "readonly "
	default:
		return "readonly "
	}
}

// MappedOptional returns the optional modifier of a mapped type, or "".
func MappedOptional(m *apidoc.TsMappedTypeDef) string {
	switch m.Optional {
	case "":
		return ""
	case "+", "-":
		return m.Optional + "?"
	default:
		return "?"
	}
}

func fallback(t *apidoc.TsTypeDef) string {
	if t.Repr != "" {
		return t.Repr
	}
	return Unknown
}

func needsParens(t *apidoc.TsTypeDef) bool {
	switch t.Kind {
	case apidoc.TypeKindUnion, apidoc.TypeKindIntersection, apidoc.TypeKindFnOrConstructor, apidoc.TypeKindConditional:
		return true
	}
	return false
}

func joinTypes(types []apidoc.TsTypeDef, sep string, depth int) string {
	parts := make([]string, len(types))
	for i := range types {
		parts[i] = formatType(&types[i], depth)
	}
	return strings.Join(parts, sep)
}

func literal(l *apidoc.LiteralDef, depth int) (string, bool) {
	if l == nil {
		return "", false
	}
	switch l.Kind {
	case apidoc.LiteralString:
		if l.String != nil {
			return strconv.Quote(*l.String), true
		}
	case apidoc.LiteralNumber:
		if l.Number != nil {
			return strconv.FormatFloat(*l.Number, 'f', -1, 64), true
		}
	case apidoc.LiteralBigInt:
		if l.String != nil {
			return *l.String + "n", true
		}
	case apidoc.LiteralBoolean:
		if l.Boolean != nil {
			return strconv.FormatBool(*l.Boolean), true
		}
	case apidoc.LiteralTemplate:
		if l.TsTypes != nil {
			var b strings.Builder
			b.WriteByte('`')
			for i := range l.TsTypes {
				part := &l.TsTypes[i]
				if part.Kind == apidoc.TypeKindLiteral && part.Literal != nil && part.Literal.Kind == apidoc.LiteralString && part.Literal.String != nil {
					b.WriteString(*part.Literal.String)
					continue
				}
				b.WriteString("${" + formatType(part, depth) + "}")
			}
			b.WriteByte('`')
			return b.String(), true
		}
	}
	return "", false
}

func typeLiteral(lit *apidoc.TsTypeLiteralDef, depth int) string {
	var members []string
	for i := range lit.CallSignatures {
		members = append(members, callSignature(&lit.CallSignatures[i], depth))
	}
	for i := range lit.IndexSignatures {
		members = append(members, indexSignature(&lit.IndexSignatures[i], depth))
	}
	for i := range lit.Properties {
		members = append(members, interfaceProperty(&lit.Properties[i], depth))
	}
	for i := range lit.Methods {
		members = append(members, interfaceMethod(&lit.Methods[i], depth))
	}
	if len(members) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(members, "; ") + " }"
}
