package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
)

func strLit(s string) *apidoc.TsTypeDef {
	return &apidoc.TsTypeDef{Kind: apidoc.TypeKindLiteral, Literal: &apidoc.LiteralDef{Kind: apidoc.LiteralString, String: &s}}
}

func numLit(n float64) *apidoc.TsTypeDef {
	return &apidoc.TsTypeDef{Kind: apidoc.TypeKindLiteral, Literal: &apidoc.LiteralDef{Kind: apidoc.LiteralNumber, Number: &n}}
}

func TestType_Variants(t *testing.T) {
	tr := true
	tests := []struct {
		name string
		in   *apidoc.TsTypeDef
		want string
	}{
		{"nil", nil, "unknown"},
		{"keyword", apidoc.Keyword("string"), "string"},
		{"ref", apidoc.Ref("Promise", apidoc.Keyword("string")), "Promise<string>"},
		{"ref two args", apidoc.Ref("Map", apidoc.Keyword("string"), apidoc.Ref("User")), "Map<string, User>"},
		{"array", apidoc.ArrayOf(apidoc.Keyword("number")), "number[]"},
		{"array of union", apidoc.ArrayOf(apidoc.UnionOf(apidoc.Keyword("string"), apidoc.Keyword("number"))), "(string | number)[]"},
		{"union", apidoc.UnionOf(apidoc.Ref("A"), apidoc.Keyword("null")), "A | null"},
		{"intersection", &apidoc.TsTypeDef{Kind: apidoc.TypeKindIntersection, Intersection: []apidoc.TsTypeDef{*apidoc.Ref("A"), *apidoc.Ref("B")}}, "A & B"},
		{"string literal", strLit("get"), `"get"`},
		{"number literal", numLit(42), "42"},
		{"bool literal", &apidoc.TsTypeDef{Kind: apidoc.TypeKindLiteral, Literal: &apidoc.LiteralDef{Kind: apidoc.LiteralBoolean, Boolean: &tr}}, "true"},
		{"tuple", &apidoc.TsTypeDef{Kind: apidoc.TypeKindTuple, Tuple: []apidoc.TsTypeDef{*apidoc.Keyword("string"), *apidoc.Keyword("number")}}, "[string, number]"},
		{"empty tuple", &apidoc.TsTypeDef{Kind: apidoc.TypeKindTuple, Tuple: []apidoc.TsTypeDef{}}, "[]"},
		{"keyof", &apidoc.TsTypeDef{Kind: apidoc.TypeKindTypeOperator, TypeOperator: &apidoc.TsTypeOperatorDef{Operator: "keyof", TsType: apidoc.Ref("T")}}, "keyof T"},
		{"typeof", &apidoc.TsTypeDef{Kind: apidoc.TypeKindTypeQuery, TypeQuery: "config"}, "typeof config"},
		{"indexed", &apidoc.TsTypeDef{Kind: apidoc.TypeKindIndexedAccess, IndexedAccess: &apidoc.TsIndexedAccessDef{ObjType: apidoc.Ref("T"), IndexType: strLit("id")}}, `T["id"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Type(tt.in))
		})
	}
}

func TestType_FunctionType(t *testing.T) {
	fn := &apidoc.TsTypeDef{
		Kind: apidoc.TypeKindFnOrConstructor,
		FnOrConstructor: &apidoc.TsFnOrConstructorDef{
			Params: []apidoc.ParamDef{
				apidoc.Ident("event", apidoc.Ref("Event")),
				{Kind: apidoc.ParamObject},
			},
			TsType: apidoc.Keyword("void"),
		},
	}
	assert.Equal(t, "(event: Event, _: unknown) => void", Type(fn))

	fn.FnOrConstructor.Constructor = true
	assert.Equal(t, "new (event: Event, _: unknown) => void", Type(fn))
}

func TestType_TypeLiteral(t *testing.T) {
	lit := &apidoc.TsTypeDef{
		Kind: apidoc.TypeKindTypeLiteral,
		TypeLiteral: &apidoc.TsTypeLiteralDef{
			Properties: []apidoc.InterfacePropertyDef{
				{Name: "id", TsType: apidoc.Keyword("string"), Readonly: true},
				{Name: "tags", TsType: apidoc.ArrayOf(apidoc.Keyword("string")), Optional: true},
			},
			Methods: []apidoc.InterfaceMethodDef{{Name: "close", ReturnType: apidoc.Keyword("void")}},
		},
	}
	assert.Equal(t, "{ readonly id: string; tags?: string[]; close(): void }", Type(lit))
	assert.Equal(t, "{}", Type(&apidoc.TsTypeDef{Kind: apidoc.TypeKindTypeLiteral, TypeLiteral: &apidoc.TsTypeLiteralDef{}}))
}

func TestType_FallsBackToRepr(t *testing.T) {
	mapped := &apidoc.TsTypeDef{Kind: apidoc.TypeKindMapped, Repr: "{ [K in keyof T]: T[K] }"}
	assert.Equal(t, "{ [K in keyof T]: T[K] }", Type(mapped))

	partial := &apidoc.TsTypeDef{Kind: apidoc.TypeKindTypeRef, Repr: "Broken"}
	assert.Equal(t, "Broken", Type(partial))

	assert.Equal(t, "unknown", Type(&apidoc.TsTypeDef{Kind: "somethingNew"}))
}

func TestType_MappedAndPredicate(t *testing.T) {
	mapped := &apidoc.TsTypeDef{Kind: apidoc.TypeKindMapped, Repr: "ignored", Mapped: &apidoc.TsMappedTypeDef{
		Readonly:  "+",
		TypeParam: apidoc.TsTypeParamDef{Name: "K", Constraint: &apidoc.TsTypeDef{Kind: apidoc.TypeKindTypeOperator, TypeOperator: &apidoc.TsTypeOperatorDef{Operator: "keyof", TsType: apidoc.Ref("Options")}}},
		NameType:  apidoc.Ref("Rename", apidoc.Ref("K")),
		Optional:  "-",
		TsType:    apidoc.Ref("Options"),
	}}
	assert.Equal(t, "{ +readonly [K in keyof Options as Rename<K>]-?: Options }", Type(mapped))

	plain := &apidoc.TsTypeDef{Kind: apidoc.TypeKindMapped, Mapped: &apidoc.TsMappedTypeDef{
		Readonly:  "true",
		TypeParam: apidoc.TsTypeParamDef{Name: "P", Constraint: apidoc.Ref("Keys")},
		Optional:  "true",
		TsType:    apidoc.Keyword("string"),
	}}
	assert.Equal(t, "{ readonly [P in Keys]?: string }", Type(plain))

	guard := &apidoc.TsTypeDef{Kind: apidoc.TypeKindTypePredicate, TypePredicate: &apidoc.TsTypePredicateDef{Param: "x", Type: apidoc.Ref("Foo")}}
	assert.Equal(t, "x is Foo", Type(guard))
}

func TestType_IsIdempotent(t *testing.T) {
	in := apidoc.Ref("Record", apidoc.Keyword("string"), apidoc.ArrayOf(apidoc.Ref("User")))
	assert.Equal(t, Type(in), Type(in))
}

func TestType_DeepNestingIsBounded(t *testing.T) {
	leaf := apidoc.Keyword("string")
	cur := leaf
	for i := 0; i < 500; i++ {
		cur = &apidoc.TsTypeDef{Kind: apidoc.TypeKindArray, Array: cur, Repr: "deep[]"}
	}
	out := Type(cur)
	require.NotEmpty(t, out)
	assert.Contains(t, out, "deep[]")
}

func TestParams(t *testing.T) {
	assert.Equal(t, "", Params(nil))
	ps := []apidoc.ParamDef{
		apidoc.Ident("a", apidoc.Keyword("number")),
		{Kind: apidoc.ParamIdentifier, Name: "b", Optional: true, TsType: apidoc.Keyword("string")},
		{Kind: apidoc.ParamAssign, Left: &apidoc.ParamDef{Kind: apidoc.ParamIdentifier, Name: "retries", TsType: apidoc.Keyword("number")}, Right: "3"},
		{Kind: apidoc.ParamRest, Arg: &apidoc.ParamDef{Kind: apidoc.ParamIdentifier, Name: "rest"}, TsType: apidoc.ArrayOf(apidoc.Keyword("unknown"))},
		{Kind: apidoc.ParamIdentifier, Name: "untyped"},
	}
	assert.Equal(t, "a: number, b?: string, retries?: number, ...rest: unknown[], untyped: unknown", Params(ps))
}

func TestTypeParams(t *testing.T) {
	assert.Equal(t, "", TypeParams(nil))
	tps := []apidoc.TsTypeParamDef{
		{Name: "T", Constraint: apidoc.Keyword("object")},
		{Name: "K", Constraint: &apidoc.TsTypeDef{Kind: apidoc.TypeKindTypeOperator, TypeOperator: &apidoc.TsTypeOperatorDef{Operator: "keyof", TsType: apidoc.Ref("T")}}, Default: apidoc.Keyword("never")},
		{Name: "U"},
	}
	assert.Equal(t, "<T extends object, K extends keyof T = never, U>", TypeParams(tps))
}

func TestFunction(t *testing.T) {
	def := &apidoc.FunctionDef{
		Params:     []apidoc.ParamDef{apidoc.Ident("a", apidoc.Keyword("number")), apidoc.Ident("b", apidoc.Keyword("number"))},
		ReturnType: apidoc.Keyword("number"),
	}
	assert.Equal(t, "function add(a: number, b: number): number", Function("add", def))

	gen := &apidoc.FunctionDef{
		IsAsync:     true,
		IsGenerator: true,
		TypeParams:  []apidoc.TsTypeParamDef{{Name: "T"}},
		Params:      []apidoc.ParamDef{apidoc.Ident("items", apidoc.ArrayOf(apidoc.Ref("T")))},
		ReturnType:  apidoc.Ref("AsyncGenerator", apidoc.Ref("T")),
	}
	assert.Equal(t, "async function* iterate<T>(items: T[]): AsyncGenerator<T>", Function("iterate", gen))

	assert.Equal(t, "function noop()", Function("noop", &apidoc.FunctionDef{}))
}

func TestClass_ClauseOrder(t *testing.T) {
	def := &apidoc.ClassDef{
		TypeParams:      []apidoc.TsTypeParamDef{{Name: "T", Constraint: apidoc.Keyword("object")}},
		Extends:         "Base",
		SuperTypeParams: []apidoc.TsTypeDef{*apidoc.Ref("T")},
		Implements:      []apidoc.TsTypeDef{*apidoc.Ref("Serializable")},
	}
	assert.Equal(t, "class AdvancedClass<T extends object> extends Base<T> implements Serializable", Class("AdvancedClass", def))

	def.IsAbstract = true
	assert.Equal(t, "abstract class AdvancedClass<T extends object> extends Base<T> implements Serializable", Class("AdvancedClass", def))
}

func TestOtherDeclarations(t *testing.T) {
	assert.Equal(t, "interface Reader<T> extends Closer, Iterable<T>", Interface("Reader", &apidoc.InterfaceDef{
		TypeParams: []apidoc.TsTypeParamDef{{Name: "T"}},
		Extends:    []apidoc.TsTypeDef{*apidoc.Ref("Closer"), *apidoc.Ref("Iterable", apidoc.Ref("T"))},
	}))
	assert.Equal(t, "type ID = string | number", TypeAlias("ID", &apidoc.TypeAliasDef{TsType: apidoc.UnionOf(apidoc.Keyword("string"), apidoc.Keyword("number"))}))
	assert.Equal(t, "const VERSION: string", Variable("VERSION", &apidoc.VariableDef{Kind: apidoc.VarDeclConst, TsType: apidoc.Keyword("string")}))
	assert.Equal(t, "let counter", Variable("counter", &apidoc.VariableDef{Kind: apidoc.VarDeclLet}))
	assert.Equal(t, "const enum Level", Enum("Level", &apidoc.EnumDef{IsConst: true}))
}

func TestMembers(t *testing.T) {
	m := &apidoc.ClassMethodDef{
		Name:          "load",
		Accessibility: apidoc.AccessibilityProtected,
		IsStatic:      true,
		FunctionDef: apidoc.FunctionDef{
			IsAsync:    true,
			Params:     []apidoc.ParamDef{apidoc.Ident("id", apidoc.Keyword("string"))},
			ReturnType: apidoc.Ref("Promise", apidoc.Ref("User")),
		},
	}
	assert.Equal(t, "protected static async load(id: string): Promise<User>", Method(m))

	getter := &apidoc.ClassMethodDef{Name: "size", Kind: apidoc.MethodKindGetter, FunctionDef: apidoc.FunctionDef{ReturnType: apidoc.Keyword("number")}}
	assert.Equal(t, "get size(): number", Method(getter))

	p := &apidoc.ClassPropertyDef{Name: "id", Readonly: true, IsStatic: true, Optional: true, TsType: apidoc.Keyword("string")}
	assert.Equal(t, "static readonly id?: string", Property(p))

	c := &apidoc.ClassConstructorDef{Name: "constructor", Params: []apidoc.ParamDef{apidoc.Ident("opts", apidoc.Ref("Options"))}}
	assert.Equal(t, "constructor(opts: Options)", Constructor(c))

	idx := &apidoc.InterfaceIndexSignatureDef{Readonly: true, Params: []apidoc.ParamDef{apidoc.Ident("key", apidoc.Keyword("string"))}, TsType: apidoc.Keyword("number")}
	assert.Equal(t, "readonly [key: string]: number", IndexSignature(idx))

	cs := &apidoc.InterfaceCallSignatureDef{Params: []apidoc.ParamDef{apidoc.Ident("x", apidoc.Keyword("number"))}, TsType: apidoc.Keyword("string")}
	assert.Equal(t, "(x: number): string", CallSignature(cs))
}

func TestNode_Dispatch(t *testing.T) {
	n := &apidoc.DocNode{Name: "VERSION", Kind: apidoc.KindVariable, VariableDef: &apidoc.VariableDef{Kind: apidoc.VarDeclConst, TsType: apidoc.Keyword("string")}}
	assert.Equal(t, "const VERSION: string", Node(n))
	assert.Equal(t, "namespace util", Node(&apidoc.DocNode{Name: "util", Kind: apidoc.KindNamespace}))
}
