package apidoc

// TsTypeKind tags the populated variant of a TsTypeDef.
type TsTypeKind string

const (
	TypeKindKeyword         TsTypeKind = "keyword"
	TypeKindTypeRef         TsTypeKind = "typeRef"
	TypeKindArray           TsTypeKind = "array"
	TypeKindUnion           TsTypeKind = "union"
	TypeKindIntersection    TsTypeKind = "intersection"
	TypeKindLiteral         TsTypeKind = "literal"
	TypeKindTuple           TsTypeKind = "tuple"
	TypeKindFnOrConstructor TsTypeKind = "fnOrConstructor"
	TypeKindTypeOperator    TsTypeKind = "typeOperator"
	TypeKindTypeLiteral     TsTypeKind = "typeLiteral"
	TypeKindOptional        TsTypeKind = "optional"
	TypeKindParenthesized   TsTypeKind = "parenthesized"
	TypeKindRest            TsTypeKind = "rest"
	TypeKindIndexedAccess   TsTypeKind = "indexedAccess"
	TypeKindTypeQuery       TsTypeKind = "typeQuery"
	TypeKindConditional     TsTypeKind = "conditional"
	TypeKindMapped          TsTypeKind = "mapped"
	TypeKindTypePredicate   TsTypeKind = "typePredicate"
	TypeKindThis            TsTypeKind = "this"
)

// TsTypeDef is a recursive type expression. Kind selects the populated payload;
// Repr always carries the extractor's plain-text rendering as a fallback.
type TsTypeDef struct {
	Repr string     `json:"repr"`
	Kind TsTypeKind `json:"kind"`

	Keyword         string                `json:"keyword,omitempty"`
	TypeRef         *TsTypeRefDef         `json:"typeRef,omitempty"`
	Array           *TsTypeDef            `json:"array,omitempty"`
	Union           []TsTypeDef           `json:"union,omitempty"`
	Intersection    []TsTypeDef           `json:"intersection,omitempty"`
	Literal         *LiteralDef           `json:"literal,omitempty"`
	Tuple           []TsTypeDef           `json:"tuple,omitempty"`
	FnOrConstructor *TsFnOrConstructorDef `json:"fnOrConstructor,omitempty"`
	TypeOperator    *TsTypeOperatorDef    `json:"typeOperator,omitempty"`
	TypeLiteral     *TsTypeLiteralDef     `json:"typeLiteral,omitempty"`
	Optional        *TsTypeDef            `json:"optional,omitempty"`
	Parenthesized   *TsTypeDef            `json:"parenthesized,omitempty"`
	Rest            *TsTypeDef            `json:"rest,omitempty"`
	IndexedAccess   *TsIndexedAccessDef   `json:"indexedAccess,omitempty"`
	TypeQuery       string                `json:"typeQuery,omitempty"`
	Conditional     *TsConditionalDef     `json:"conditionalType,omitempty"`
	Mapped          *TsMappedTypeDef      `json:"mappedType,omitempty"`
	TypePredicate   *TsTypePredicateDef   `json:"typePredicate,omitempty"`
}

// TsTypeRefDef is a named type reference with optional type arguments.
type TsTypeRefDef struct {
	TypeName   string      `json:"typeName"`
	TypeParams []TsTypeDef `json:"typeParams,omitempty"`
}

// LiteralKind tags the populated field of a LiteralDef.
type LiteralKind string

const (
	LiteralString   LiteralKind = "string"
	LiteralNumber   LiteralKind = "number"
	LiteralBigInt   LiteralKind = "bigInt"
	LiteralBoolean  LiteralKind = "boolean"
	LiteralTemplate LiteralKind = "template"
)

// LiteralDef is a literal type such as "a", 42 or true.
type LiteralDef struct {
	Kind    LiteralKind `json:"kind"`
	String  *string     `json:"string,omitempty"`
	Number  *float64    `json:"number,omitempty"`
	Boolean *bool       `json:"boolean,omitempty"`
	TsTypes []TsTypeDef `json:"tsTypes,omitempty"`
}

// TsFnOrConstructorDef is a function or constructor type.
type TsFnOrConstructorDef struct {
	Constructor bool             `json:"constructor,omitempty"`
	TsType      *TsTypeDef       `json:"tsType,omitempty"`
	Params      []ParamDef       `json:"params"`
	TypeParams  []TsTypeParamDef `json:"typeParams,omitempty"`
}

// TsTypeOperatorDef is keyof/unique/readonly applied to an operand.
type TsTypeOperatorDef struct {
	Operator string     `json:"operator"`
	TsType   *TsTypeDef `json:"tsType,omitempty"`
}

// TsTypeLiteralDef is an inline structural type.
type TsTypeLiteralDef struct {
	Methods         []InterfaceMethodDef         `json:"methods,omitempty"`
	Properties      []InterfacePropertyDef       `json:"properties,omitempty"`
	CallSignatures  []InterfaceCallSignatureDef  `json:"callSignatures,omitempty"`
	IndexSignatures []InterfaceIndexSignatureDef `json:"indexSignatures,omitempty"`
}

// TsIndexedAccessDef is T[K].
type TsIndexedAccessDef struct {
	Readonly  bool       `json:"readonly,omitempty"`
	ObjType   *TsTypeDef `json:"objType,omitempty"`
	IndexType *TsTypeDef `json:"indexType,omitempty"`
}

// TsConditionalDef is C extends E ? T : F.
type TsConditionalDef struct {
	CheckType   *TsTypeDef `json:"checkType,omitempty"`
	ExtendsType *TsTypeDef `json:"extendsType,omitempty"`
	TrueType    *TsTypeDef `json:"trueType,omitempty"`
	FalseType   *TsTypeDef `json:"falseType,omitempty"`
}

// TsMappedTypeDef is { [K in T]: V }.
type TsMappedTypeDef struct {
	Readonly  string         `json:"readonly,omitempty"`
	TypeParam TsTypeParamDef `json:"typeParam"`
	NameType  *TsTypeDef     `json:"nameType,omitempty"`
	Optional  string         `json:"optional,omitempty"`
	TsType    *TsTypeDef     `json:"tsType,omitempty"`
}

// TsTypePredicateDef is `x is T` or `asserts x is T`.
type TsTypePredicateDef struct {
	Asserts bool       `json:"asserts,omitempty"`
	Param   string     `json:"param"`
	Type    *TsTypeDef `json:"type,omitempty"`
}

// Keyword builds a keyword type. Handy for fixtures and tests.
func Keyword(name string) *TsTypeDef {
	return &TsTypeDef{Repr: name, Kind: TypeKindKeyword, Keyword: name}
}

// Ref builds a type reference with optional type arguments.
func Ref(name string, args ...*TsTypeDef) *TsTypeDef {
	ref := &TsTypeRefDef{TypeName: name}
	for _, a := range args {
		ref.TypeParams = append(ref.TypeParams, *a)
	}
	return &TsTypeDef{Repr: name, Kind: TypeKindTypeRef, TypeRef: ref}
}

// ArrayOf builds an array type.
func ArrayOf(elem *TsTypeDef) *TsTypeDef {
	return &TsTypeDef{Repr: elem.Repr + "[]", Kind: TypeKindArray, Array: elem}
}

// UnionOf builds a union type.
func UnionOf(members ...*TsTypeDef) *TsTypeDef {
	t := &TsTypeDef{Kind: TypeKindUnion}
	for _, m := range members {
		t.Union = append(t.Union, *m)
	}
	return t
}

// Ident builds a plain identifier parameter.
func Ident(name string, tsType *TsTypeDef) ParamDef {
	return ParamDef{Kind: ParamIdentifier, Name: name, TsType: tsType}
}
