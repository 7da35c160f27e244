// Package typeref collects the names of every type reference appearing in a
// type expression or declaration.
//
// The walk visits every structural position that can hold a type: type
// arguments, array elements, union/intersection/tuple members, function
// parameters and return types, type-literal members, operator operands,
// conditional and mapped types, and type-parameter constraints and defaults.
package typeref

import (
	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/util/sets"
)

// Set is a deduplicated set of referenced type names.
type Set = sets.Set[string]

type walker struct {
	out Set
}

func newWalker() *walker { return &walker{out: sets.New[string]()} }

// FromType collects references in a type expression. Nil yields an empty set.
func FromType(t *apidoc.TsTypeDef) Set {
	w := newWalker()
	w.typ(t, 0)
	return w.out
}

// FromParams collects references in a parameter list.
func FromParams(ps []apidoc.ParamDef) Set {
	w := newWalker()
	w.params(ps, 0)
	return w.out
}

// FromTypeParams collects references in type-parameter constraints and defaults.
func FromTypeParams(tps []apidoc.TsTypeParamDef) Set {
	w := newWalker()
	w.typeParams(tps, 0)
	return w.out
}

// FromFunction collects references in a function's parameters, return type and type parameters.
func FromFunction(def *apidoc.FunctionDef) Set {
	w := newWalker()
	w.function(def, 0)
	return w.out
}

// FromClass collects references in a class's heritage clauses, constructors,
// properties, methods and index signatures.
func FromClass(def *apidoc.ClassDef) Set {
	w := newWalker()
	if def == nil {
		return w.out
	}
	if def.Extends != "" {
		w.out.Add(def.Extends)
	}
	w.types(def.SuperTypeParams, 0)
	w.types(def.Implements, 0)
	w.typeParams(def.TypeParams, 0)
	for i := range def.Constructors {
		w.params(def.Constructors[i].Params, 0)
	}
	for i := range def.Properties {
		w.typ(def.Properties[i].TsType, 0)
	}
	for i := range def.Methods {
		w.function(&def.Methods[i].FunctionDef, 0)
	}
	for i := range def.IndexSignatures {
		w.indexSignature(&def.IndexSignatures[i], 0)
	}
	return w.out
}

// FromInterface collects references in an interface declaration.
func FromInterface(def *apidoc.InterfaceDef) Set {
	w := newWalker()
	if def == nil {
		return w.out
	}
	w.types(def.Extends, 0)
	w.typeParams(def.TypeParams, 0)
	w.members(def.Methods, def.Properties, def.CallSignatures, def.IndexSignatures, 0)
	return w.out
}

// FromTypeAlias collects references in a type alias.
func FromTypeAlias(def *apidoc.TypeAliasDef) Set {
	w := newWalker()
	if def == nil {
		return w.out
	}
	w.typeParams(def.TypeParams, 0)
	w.typ(def.TsType, 0)
	return w.out
}

// FromVariable collects references in a variable's declared type.
func FromVariable(def *apidoc.VariableDef) Set {
	if def == nil {
		return sets.New[string]()
	}
	return FromType(def.TsType)
}

// FromEnum collects references in enum member initializers.
func FromEnum(def *apidoc.EnumDef) Set {
	w := newWalker()
	if def == nil {
		return w.out
	}
	for i := range def.Members {
		w.typ(def.Members[i].Init, 0)
	}
	return w.out
}

func (w *walker) typ(t *apidoc.TsTypeDef, depth int) {
	if t == nil || depth > apidoc.MaxTypeDepth {
		return
	}
	next := depth + 1

	switch t.Kind {
	case apidoc.TypeKindTypeRef:
		if t.TypeRef != nil {
			if t.TypeRef.TypeName != "" {
				w.out.Add(t.TypeRef.TypeName)
			}
			w.types(t.TypeRef.TypeParams, next)
		}
	case apidoc.TypeKindArray:
		w.typ(t.Array, next)
	case apidoc.TypeKindUnion:
		w.types(t.Union, next)
	case apidoc.TypeKindIntersection:
		w.types(t.Intersection, next)
	case apidoc.TypeKindTuple:
		w.types(t.Tuple, next)
	case apidoc.TypeKindLiteral:
		if t.Literal != nil {
			w.types(t.Literal.TsTypes, next)
		}
	case apidoc.TypeKindFnOrConstructor:
		if fn := t.FnOrConstructor; fn != nil {
			w.params(fn.Params, next)
			w.typ(fn.TsType, next)
			w.typeParams(fn.TypeParams, next)
		}
	case apidoc.TypeKindTypeOperator:
		if t.TypeOperator != nil {
			w.typ(t.TypeOperator.TsType, next)
		}
	case apidoc.TypeKindTypeLiteral:
		if lit := t.TypeLiteral; lit != nil {
			w.members(lit.Methods, lit.Properties, lit.CallSignatures, lit.IndexSignatures, next)
		}
	case apidoc.TypeKindOptional:
		w.typ(t.Optional, next)
	case apidoc.TypeKindParenthesized:
		w.typ(t.Parenthesized, next)
	case apidoc.TypeKindRest:
		w.typ(t.Rest, next)
	case apidoc.TypeKindIndexedAccess:
		if ia := t.IndexedAccess; ia != nil {
			w.typ(ia.ObjType, next)
			w.typ(ia.IndexType, next)
		}
	case apidoc.TypeKindConditional:
		if c := t.Conditional; c != nil {
			w.typ(c.CheckType, next)
			w.typ(c.ExtendsType, next)
			w.typ(c.TrueType, next)
			w.typ(c.FalseType, next)
		}
	case apidoc.TypeKindMapped:
		if m := t.Mapped; m != nil {
			w.typeParams([]apidoc.TsTypeParamDef{m.TypeParam}, next)
			w.typ(m.NameType, next)
			w.typ(m.TsType, next)
		}
	case apidoc.TypeKindTypePredicate:
		if t.TypePredicate != nil {
			w.typ(t.TypePredicate.Type, next)
		}
	}
}

func (w *walker) types(ts []apidoc.TsTypeDef, depth int) {
	for i := range ts {
		w.typ(&ts[i], depth)
	}
}

func (w *walker) params(ps []apidoc.ParamDef, depth int) {
	for i := range ps {
		w.param(&ps[i], depth)
	}
}

func (w *walker) param(p *apidoc.ParamDef, depth int) {
	if p == nil || depth > apidoc.MaxTypeDepth {
		return
	}
	w.typ(p.TsType, depth)
	w.param(p.Left, depth+1)
	w.param(p.Arg, depth+1)
	for _, el := range p.Elements {
		w.param(el, depth+1)
	}
	for i := range p.Props {
		w.param(p.Props[i].Value, depth+1)
		w.param(p.Props[i].Arg, depth+1)
	}
}

func (w *walker) typeParams(tps []apidoc.TsTypeParamDef, depth int) {
	for i := range tps {
		w.typ(tps[i].Constraint, depth)
		w.typ(tps[i].Default, depth)
	}
}

func (w *walker) function(def *apidoc.FunctionDef, depth int) {
	if def == nil {
		return
	}
	w.params(def.Params, depth)
	w.typ(def.ReturnType, depth)
	w.typeParams(def.TypeParams, depth)
}

func (w *walker) indexSignature(s *apidoc.InterfaceIndexSignatureDef, depth int) {
	w.params(s.Params, depth)
	w.typ(s.TsType, depth)
}

func (w *walker) members(
	methods []apidoc.InterfaceMethodDef,
	props []apidoc.InterfacePropertyDef,
	calls []apidoc.InterfaceCallSignatureDef,
	indexes []apidoc.InterfaceIndexSignatureDef,
	depth int,
) {
	for i := range methods {
		w.params(methods[i].Params, depth)
		w.typ(methods[i].ReturnType, depth)
		w.typeParams(methods[i].TypeParams, depth)
	}
	for i := range props {
		w.typ(props[i].TsType, depth)
	}
	for i := range calls {
		w.params(calls[i].Params, depth)
		w.typ(calls[i].TsType, depth)
		w.typeParams(calls[i].TypeParams, depth)
	}
	for i := range indexes {
		w.indexSignature(&indexes[i], depth)
	}
}
