// Package apidoc defines the documentation data model produced by the API
// extractor and consumed by the signature, cross-reference and rendering packages.
//
// Every type here mirrors the extractor's JSON output (camelCase field names).
// Values are treated as read-only once loaded: renderers never mutate them.
package apidoc

import "time"

// MaxTypeDepth bounds recursive traversal of TsTypeDef trees. Subtrees deeper
// than this are rendered from their Repr and contribute no references.
const MaxTypeDepth = 64

// Kind is the closed set of exported declaration kinds.
type Kind string

const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindFunction  Kind = "function"
	KindTypeAlias Kind = "typeAlias"
	KindEnum      Kind = "enum"
	KindVariable  Kind = "variable"
	KindNamespace Kind = "namespace"
	KindImport    Kind = "import"
	KindModuleDoc Kind = "moduleDoc"
)

// Kinds lists every known Kind in rendering order.
var Kinds = []Kind{
	KindClass, KindInterface, KindFunction, KindTypeAlias, KindEnum,
	KindVariable, KindNamespace, KindImport, KindModuleDoc,
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// DocNode is one exported declaration. Exactly one payload field matching Kind is set.
type DocNode struct {
	Name            string `json:"name"`
	Kind            Kind   `json:"kind"`
	DeclarationKind string `json:"declarationKind,omitempty"`
	JSDoc           *JSDoc `json:"jsDoc,omitempty"`

	FunctionDef  *FunctionDef  `json:"functionDef,omitempty"`
	ClassDef     *ClassDef     `json:"classDef,omitempty"`
	InterfaceDef *InterfaceDef `json:"interfaceDef,omitempty"`
	TypeAliasDef *TypeAliasDef `json:"typeAliasDef,omitempty"`
	EnumDef      *EnumDef      `json:"enumDef,omitempty"`
	VariableDef  *VariableDef  `json:"variableDef,omitempty"`
	NamespaceDef *NamespaceDef `json:"namespaceDef,omitempty"`
	ImportDef    *ImportDef    `json:"importDef,omitempty"`
}

// JSDoc is the parsed documentation comment of a declaration.
type JSDoc struct {
	Doc  string     `json:"doc,omitempty"`
	Tags []JSDocTag `json:"tags,omitempty"`
}

// JSDocTag is a single @tag. Name and Doc are optional depending on the tag kind.
type JSDocTag struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
	Doc  string `json:"doc,omitempty"`
}

// Well-known tag kinds.
const (
	TagParam      = "param"
	TagExample    = "example"
	TagReturn     = "return"
	TagReturns    = "returns"
	TagInternal   = "internal"
	TagPrivate    = "private"
	TagDeprecated = "deprecated"
)

// Accessibility is a class member's access modifier; empty means none was written.
type Accessibility string

const (
	AccessibilityPublic    Accessibility = "public"
	AccessibilityPrivate   Accessibility = "private"
	AccessibilityProtected Accessibility = "protected"
)

// TsTypeParamDef is a generic type parameter.
type TsTypeParamDef struct {
	Name       string     `json:"name"`
	Constraint *TsTypeDef `json:"constraint,omitempty"`
	Default    *TsTypeDef `json:"default,omitempty"`
}

// ParamKind distinguishes plain identifiers from destructuring patterns.
type ParamKind string

const (
	ParamIdentifier ParamKind = "identifier"
	ParamAssign     ParamKind = "assign"
	ParamArray      ParamKind = "array"
	ParamObject     ParamKind = "object"
	ParamRest       ParamKind = "rest"
)

// ParamDef is a function or method parameter.
type ParamDef struct {
	Kind     ParamKind  `json:"kind"`
	Name     string     `json:"name,omitempty"`
	Optional bool       `json:"optional,omitempty"`
	TsType   *TsTypeDef `json:"tsType,omitempty"`

	// Destructuring sub-structure, used for display only.
	Left     *ParamDef          `json:"left,omitempty"`
	Right    string             `json:"right,omitempty"`
	Elements []*ParamDef        `json:"elements,omitempty"`
	Props    []ObjectPatPropDef `json:"props,omitempty"`
	Arg      *ParamDef          `json:"arg,omitempty"`
}

// ObjectPatPropDef is one property of an object destructuring pattern.
type ObjectPatPropDef struct {
	Kind  string    `json:"kind"`
	Key   string    `json:"key,omitempty"`
	Value *ParamDef `json:"value,omitempty"`
	Arg   *ParamDef `json:"arg,omitempty"`
}

// FunctionDef is the payload of a function declaration or method.
type FunctionDef struct {
	Params      []ParamDef       `json:"params"`
	ReturnType  *TsTypeDef       `json:"returnType,omitempty"`
	IsAsync     bool             `json:"isAsync,omitempty"`
	IsGenerator bool             `json:"isGenerator,omitempty"`
	TypeParams  []TsTypeParamDef `json:"typeParams,omitempty"`
}

// ClassDef is the payload of a class declaration.
type ClassDef struct {
	IsAbstract      bool                         `json:"isAbstract,omitempty"`
	Constructors    []ClassConstructorDef        `json:"constructors,omitempty"`
	Properties      []ClassPropertyDef           `json:"properties,omitempty"`
	IndexSignatures []InterfaceIndexSignatureDef `json:"indexSignatures,omitempty"`
	Methods         []ClassMethodDef             `json:"methods,omitempty"`
	Extends         string                       `json:"extends,omitempty"`
	Implements      []TsTypeDef                  `json:"implements,omitempty"`
	TypeParams      []TsTypeParamDef             `json:"typeParams,omitempty"`
	SuperTypeParams []TsTypeDef                  `json:"superTypeParams,omitempty"`
}

// ClassConstructorDef is one constructor overload of a class.
type ClassConstructorDef struct {
	Name          string        `json:"name"`
	JSDoc         *JSDoc        `json:"jsDoc,omitempty"`
	Accessibility Accessibility `json:"accessibility,omitempty"`
	Params        []ParamDef    `json:"params"`
}

// ClassPropertyDef is a class field.
type ClassPropertyDef struct {
	Name          string        `json:"name"`
	JSDoc         *JSDoc        `json:"jsDoc,omitempty"`
	TsType        *TsTypeDef    `json:"tsType,omitempty"`
	Readonly      bool          `json:"readonly,omitempty"`
	Optional      bool          `json:"optional,omitempty"`
	IsStatic      bool          `json:"isStatic,omitempty"`
	IsAbstract    bool          `json:"isAbstract,omitempty"`
	Accessibility Accessibility `json:"accessibility,omitempty"`
}

// MethodKind distinguishes plain methods from accessors.
type MethodKind string

const (
	MethodKindMethod MethodKind = "method"
	MethodKindGetter MethodKind = "getter"
	MethodKindSetter MethodKind = "setter"
)

// ClassMethodDef is a class method or accessor.
type ClassMethodDef struct {
	Name          string        `json:"name"`
	JSDoc         *JSDoc        `json:"jsDoc,omitempty"`
	Kind          MethodKind    `json:"kind,omitempty"`
	FunctionDef   FunctionDef   `json:"functionDef"`
	Optional      bool          `json:"optional,omitempty"`
	IsStatic      bool          `json:"isStatic,omitempty"`
	IsAbstract    bool          `json:"isAbstract,omitempty"`
	Accessibility Accessibility `json:"accessibility,omitempty"`
}

// InterfaceDef is the payload of an interface declaration.
type InterfaceDef struct {
	Extends         []TsTypeDef                  `json:"extends,omitempty"`
	Methods         []InterfaceMethodDef         `json:"methods,omitempty"`
	Properties      []InterfacePropertyDef       `json:"properties,omitempty"`
	CallSignatures  []InterfaceCallSignatureDef  `json:"callSignatures,omitempty"`
	IndexSignatures []InterfaceIndexSignatureDef `json:"indexSignatures,omitempty"`
	TypeParams      []TsTypeParamDef             `json:"typeParams,omitempty"`
}

// InterfaceMethodDef is a method member of an interface or type literal.
type InterfaceMethodDef struct {
	Name       string           `json:"name"`
	JSDoc      *JSDoc           `json:"jsDoc,omitempty"`
	Kind       MethodKind       `json:"kind,omitempty"`
	Params     []ParamDef       `json:"params"`
	Optional   bool             `json:"optional,omitempty"`
	ReturnType *TsTypeDef       `json:"returnType,omitempty"`
	TypeParams []TsTypeParamDef `json:"typeParams,omitempty"`
}

// InterfacePropertyDef is a property member of an interface or type literal.
type InterfacePropertyDef struct {
	Name     string     `json:"name"`
	JSDoc    *JSDoc     `json:"jsDoc,omitempty"`
	TsType   *TsTypeDef `json:"tsType,omitempty"`
	Readonly bool       `json:"readonly,omitempty"`
	Optional bool       `json:"optional,omitempty"`
}

// InterfaceCallSignatureDef is a call signature member.
type InterfaceCallSignatureDef struct {
	JSDoc      *JSDoc           `json:"jsDoc,omitempty"`
	Params     []ParamDef       `json:"params"`
	TsType     *TsTypeDef       `json:"tsType,omitempty"`
	TypeParams []TsTypeParamDef `json:"typeParams,omitempty"`
}

// InterfaceIndexSignatureDef is an index signature member.
type InterfaceIndexSignatureDef struct {
	Readonly bool       `json:"readonly,omitempty"`
	Params   []ParamDef `json:"params"`
	TsType   *TsTypeDef `json:"tsType,omitempty"`
}

// TypeAliasDef is the payload of a type alias.
type TypeAliasDef struct {
	TsType     *TsTypeDef       `json:"tsType,omitempty"`
	TypeParams []TsTypeParamDef `json:"typeParams,omitempty"`
}

// VarDeclKind is the declaration keyword of a variable.
type VarDeclKind string

const (
	VarDeclVar   VarDeclKind = "var"
	VarDeclLet   VarDeclKind = "let"
	VarDeclConst VarDeclKind = "const"
)

// VariableDef is the payload of a variable export.
type VariableDef struct {
	Kind   VarDeclKind `json:"kind"`
	TsType *TsTypeDef  `json:"tsType,omitempty"`
}

// EnumDef is the payload of an enum declaration.
type EnumDef struct {
	IsConst bool            `json:"isConst,omitempty"`
	Members []EnumMemberDef `json:"members"`
}

// EnumMemberDef is one enum member.
type EnumMemberDef struct {
	Name  string     `json:"name"`
	Init  *TsTypeDef `json:"init,omitempty"`
	JSDoc *JSDoc     `json:"jsDoc,omitempty"`
}

// NamespaceDef is the payload of a namespace export.
type NamespaceDef struct {
	Elements []DocNode `json:"elements"`
}

// ImportDef is the payload of a re-exported import.
type ImportDef struct {
	Src      string `json:"src"`
	Imported string `json:"imported,omitempty"`
}

// PackageDocument is one package's full documentation.
type PackageDocument struct {
	Name        string    `json:"name"`
	Specifier   string    `json:"specifier"`
	Version     string    `json:"version"`
	Description string    `json:"description,omitempty"`
	Nodes       []DocNode `json:"nodes"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Index enumerates all known packages with per-kind export counts.
type Index struct {
	Packages    []IndexEntry `json:"packages"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

// IndexEntry summarizes one package in the Index.
type IndexEntry struct {
	Name        string       `json:"name"`
	Specifier   string       `json:"specifier"`
	Version     string       `json:"version"`
	Description string       `json:"description,omitempty"`
	Counts      map[Kind]int `json:"counts"`
}
