package typeref

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/util/sets"
)

func names(s Set) []string { return sets.Sorted(s) }

func TestFromType_NilIsEmpty(t *testing.T) {
	assert.Empty(t, FromType(nil))
	assert.Empty(t, FromParams(nil))
	assert.Empty(t, FromTypeParams(nil))
	assert.Empty(t, FromFunction(nil))
	assert.Empty(t, FromClass(nil))
}

func TestFromType_RecursesIntoEveryPosition(t *testing.T) {
	tests := []struct {
		name string
		in   *apidoc.TsTypeDef
		want []string
	}{
		{"keyword has none", apidoc.Keyword("string"), []string{}},
		{"type args", apidoc.Ref("Promise", apidoc.Ref("User")), []string{"Promise", "User"}},
		{"array", apidoc.ArrayOf(apidoc.Ref("Item")), []string{"Item"}},
		{"union", apidoc.UnionOf(apidoc.Ref("A"), apidoc.Keyword("null"), apidoc.Ref("B")), []string{"A", "B"}},
		{"intersection", &apidoc.TsTypeDef{Kind: apidoc.TypeKindIntersection, Intersection: []apidoc.TsTypeDef{*apidoc.Ref("A"), *apidoc.Ref("C")}}, []string{"A", "C"}},
		{"tuple", &apidoc.TsTypeDef{Kind: apidoc.TypeKindTuple, Tuple: []apidoc.TsTypeDef{*apidoc.Ref("K"), *apidoc.Ref("V")}}, []string{"K", "V"}},
		{"operator", &apidoc.TsTypeDef{Kind: apidoc.TypeKindTypeOperator, TypeOperator: &apidoc.TsTypeOperatorDef{Operator: "keyof", TsType: apidoc.Ref("Config")}}, []string{"Config"}},
		{"function", &apidoc.TsTypeDef{Kind: apidoc.TypeKindFnOrConstructor, FnOrConstructor: &apidoc.TsFnOrConstructorDef{
			Params:     []apidoc.ParamDef{apidoc.Ident("req", apidoc.Ref("Request"))},
			TsType:     apidoc.Ref("Response"),
			TypeParams: []apidoc.TsTypeParamDef{{Name: "T", Constraint: apidoc.Ref("Body")}},
		}}, []string{"Body", "Request", "Response"}},
		{"type literal", &apidoc.TsTypeDef{Kind: apidoc.TypeKindTypeLiteral, TypeLiteral: &apidoc.TsTypeLiteralDef{
			Properties:      []apidoc.InterfacePropertyDef{{Name: "p", TsType: apidoc.Ref("Prop")}},
			Methods:         []apidoc.InterfaceMethodDef{{Name: "m", Params: []apidoc.ParamDef{apidoc.Ident("x", apidoc.Ref("Arg"))}, ReturnType: apidoc.Ref("Ret")}},
			CallSignatures:  []apidoc.InterfaceCallSignatureDef{{TsType: apidoc.Ref("Called")}},
			IndexSignatures: []apidoc.InterfaceIndexSignatureDef{{TsType: apidoc.Ref("Indexed")}},
		}}, []string{"Arg", "Called", "Indexed", "Prop", "Ret"}},
		{"conditional", &apidoc.TsTypeDef{Kind: apidoc.TypeKindConditional, Conditional: &apidoc.TsConditionalDef{
			CheckType: apidoc.Ref("T"), ExtendsType: apidoc.Ref("Base"), TrueType: apidoc.Ref("Yes"), FalseType: apidoc.Ref("No"),
		}}, []string{"Base", "No", "T", "Yes"}},
		{"indexed access", &apidoc.TsTypeDef{Kind: apidoc.TypeKindIndexedAccess, IndexedAccess: &apidoc.TsIndexedAccessDef{ObjType: apidoc.Ref("Obj"), IndexType: apidoc.Ref("Key")}}, []string{"Key", "Obj"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(FromType(tt.in)))
		})
	}
}

func TestFromType_Deduplicates(t *testing.T) {
	in := apidoc.UnionOf(apidoc.Ref("User"), apidoc.ArrayOf(apidoc.Ref("User")), apidoc.Ref("Map", apidoc.Ref("User"), apidoc.Ref("User")))
	assert.Equal(t, []string{"Map", "User"}, names(FromType(in)))
}

func TestFromTypeParams_ConstraintsAndDefaults(t *testing.T) {
	tps := []apidoc.TsTypeParamDef{{Name: "T", Constraint: apidoc.Ref("Entity"), Default: apidoc.Ref("User")}}
	assert.Equal(t, []string{"Entity", "User"}, names(FromTypeParams(tps)))
}

func TestFromParams_Destructured(t *testing.T) {
	ps := []apidoc.ParamDef{
		{Kind: apidoc.ParamAssign, Left: &apidoc.ParamDef{Kind: apidoc.ParamIdentifier, Name: "o", TsType: apidoc.Ref("Options")}},
		{Kind: apidoc.ParamRest, Arg: &apidoc.ParamDef{Kind: apidoc.ParamIdentifier, Name: "xs"}, TsType: apidoc.ArrayOf(apidoc.Ref("Item"))},
	}
	assert.Equal(t, []string{"Item", "Options"}, names(FromParams(ps)))
}

func TestFromClass(t *testing.T) {
	def := &apidoc.ClassDef{
		Extends:         "Base",
		SuperTypeParams: []apidoc.TsTypeDef{*apidoc.Ref("Model")},
		Implements:      []apidoc.TsTypeDef{*apidoc.Ref("Serializable")},
		TypeParams:      []apidoc.TsTypeParamDef{{Name: "T", Constraint: apidoc.Ref("Entity")}},
		Constructors:    []apidoc.ClassConstructorDef{{Name: "constructor", Params: []apidoc.ParamDef{apidoc.Ident("opts", apidoc.Ref("Options"))}}},
		Properties:      []apidoc.ClassPropertyDef{{Name: "logger", TsType: apidoc.Ref("Logger")}},
		Methods:         []apidoc.ClassMethodDef{{Name: "run", FunctionDef: apidoc.FunctionDef{ReturnType: apidoc.Ref("Promise", apidoc.Ref("Result"))}}},
	}
	assert.Equal(t,
		[]string{"Base", "Entity", "Logger", "Model", "Options", "Promise", "Result", "Serializable"},
		names(FromClass(def)))
}

func TestFromInterface_ExtendsAndMembers(t *testing.T) {
	iface := &apidoc.InterfaceDef{
		Extends:    []apidoc.TsTypeDef{*apidoc.Ref("Closer")},
		Properties: []apidoc.InterfacePropertyDef{{Name: "buf", TsType: apidoc.Ref("Uint8Array")}},
	}
	assert.Equal(t, []string{"Closer", "Uint8Array"}, names(FromInterface(iface)))
}

func TestFromType_DeepNestingIsBounded(t *testing.T) {
	cur := apidoc.Ref("Leaf")
	for i := 0; i < 1000; i++ {
		cur = apidoc.ArrayOf(cur)
	}
	assert.Empty(t, FromType(cur))

	shallow := apidoc.Ref("Leaf")
	for i := 0; i < 10; i++ {
		shallow = apidoc.ArrayOf(shallow)
	}
	assert.Equal(t, []string{"Leaf"}, names(FromType(shallow)))
}
