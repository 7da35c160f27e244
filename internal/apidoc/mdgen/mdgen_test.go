package mdgen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/apidoc/xref"
)

var generatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func fn(name string, ret *apidoc.TsTypeDef, params ...apidoc.ParamDef) apidoc.DocNode {
	return apidoc.DocNode{
		Name: name, Kind: apidoc.KindFunction,
		FunctionDef: &apidoc.FunctionDef{Params: params, ReturnType: ret},
	}
}

func document(name string, nodes ...apidoc.DocNode) *apidoc.PackageDocument {
	return &apidoc.PackageDocument{
		Name: name, Specifier: "@acme/" + name, Version: "1.0.0",
		Nodes: nodes, GeneratedAt: generatedAt,
	}
}

func TestGenerate_SingleFunction(t *testing.T) {
	num := apidoc.Keyword("number")
	doc := document("math", fn("add", num, apidoc.Ident("a", num), apidoc.Ident("b", num)))

	want := strings.Join([]string{
		"# math",
		"",
		"**Version:** 1.0.0",
		"",
		"## Functions",
		"",
		"### `add`",
		"",
		"```ts",
		"function add(a: number, b: number): number",
		"```",
		"",
		"**Parameters:**",
		"",
		"- `a` (`number`)",
		"- `b` (`number`)",
		"",
		"**Returns:** `number`",
		"",
		"---",
		"",
		"*Generated: 2026-01-02T03:04:05Z*",
		"",
	}, "\n")
	got := Generate(doc, Options{})
	assert.Equal(t, want, got)
	assert.Equal(t, 1, strings.Count(got, "## Functions"))
	assert.NotContains(t, got, "## Related Links")
}

func TestGenerate_Overloads(t *testing.T) {
	str := apidoc.Keyword("string")
	num := apidoc.Keyword("number")
	first := fn("parse", num, apidoc.Ident("input", str))
	first.JSDoc = &apidoc.JSDoc{Doc: "Parses one value.", Tags: []apidoc.JSDocTag{
		{Kind: apidoc.TagParam, Name: "input", Doc: "raw text"},
		{Kind: apidoc.TagReturns, Doc: "the parsed number"},
	}}
	second := fn("parse", apidoc.ArrayOf(num), apidoc.Ident("input", apidoc.ArrayOf(str)))
	doc := document("parser", first, fn("format", str), second)

	got := Generate(doc, Options{})
	assert.Equal(t, 1, strings.Count(got, "### `parse`"))
	assert.Contains(t, got, "### `parse` (2 overloads)")
	assert.Contains(t, got, "**Overload 1:**\n\n```ts\nfunction parse(input: string): number\n```\n\nParses one value.\n\n"+
		"**Parameters:**\n\n- `input` (`string`): raw text\n\n**Returns:** `number` — the parsed number")
	assert.Contains(t, got, "**Overload 2:**\n\n```ts\nfunction parse(input: string[]): number[]\n```")
	assert.Less(t, strings.Index(got, "### `format`"), strings.Index(got, "### `parse`"))
	assert.Contains(t, got, "---\n\n### `parse`")
}

func TestGenerate_BuiltinLink(t *testing.T) {
	doc := document("fetcher", fn("load", nil, apidoc.Ident("body", apidoc.Ref("Promise", apidoc.Keyword("string")))))

	res := Render(doc, Options{})
	assert.Contains(t, res.Markdown, "## Related Links\n\n### Built-in Types\n\n- [`Promise`]("+xref.Builtins["Promise"]+")\n\n")
	assert.NotContains(t, res.Markdown, "### This Package")
	assert.NotContains(t, res.Markdown, "### Other Packages")
	assert.Empty(t, res.Links.Local)
	assert.Empty(t, res.Links.CrossPackage)
	require.Len(t, res.Links.Builtin, 1)
}

func TestGenerate_CrossPackageLink(t *testing.T) {
	a := document("app", fn("useClient", nil, apidoc.Ident("client", apidoc.Ref("HttpClient"))))
	b := document("client-http", apidoc.DocNode{Name: "HttpClient", Kind: apidoc.KindClass, ClassDef: &apidoc.ClassDef{}})

	got := Generate(a, Options{Siblings: []*apidoc.PackageDocument{b}, BaseURL: "https://docs.example.com"})
	assert.Contains(t, got, "### Other Packages\n\n- [`HttpClient`](https://docs.example.com/api/client-http#HttpClient) (from `@acme/client-http`)")
	assert.NotContains(t, got, "### This Package")
	assert.NotContains(t, got, "### Built-in Types")
}

func TestGenerate_SharedIndex(t *testing.T) {
	b := document("client-http", apidoc.DocNode{Name: "HttpClient", Kind: apidoc.KindClass, ClassDef: &apidoc.ClassDef{}})
	a := document("app", fn("useClient", nil, apidoc.Ident("client", apidoc.Ref("HttpClient"))))
	idx := xref.NewPackageIndex(nil, a, b)

	res := Render(a, Options{Index: idx})
	require.Len(t, res.Links.CrossPackage, 1)
	assert.Equal(t, "/api/client-http#HttpClient", res.Links.CrossPackage[0].URL)
}

func TestGenerate_ExcludesNonPublic(t *testing.T) {
	hidden := fn("tagged", nil, apidoc.Ident("x", apidoc.Ref("Secret")))
	hidden.JSDoc = &apidoc.JSDoc{Tags: []apidoc.JSDocTag{{Kind: apidoc.TagInternal}}}
	doc := document("pkg",
		fn("_internalHelper", nil, apidoc.Ident("x", apidoc.Ref("Other"))),
		hidden,
		apidoc.DocNode{Name: "Secret", Kind: apidoc.KindClass, ClassDef: &apidoc.ClassDef{},
			JSDoc: &apidoc.JSDoc{Tags: []apidoc.JSDocTag{{Kind: apidoc.TagPrivate}}}},
		fn("visible", apidoc.Keyword("void")),
	)

	got := Generate(doc, Options{})
	assert.Contains(t, got, "### `visible`")
	assert.NotContains(t, got, "_internalHelper")
	assert.NotContains(t, got, "tagged")
	assert.NotContains(t, got, "Secret")
	assert.NotContains(t, got, "Other")
	assert.NotContains(t, got, "## Classes")
	assert.NotContains(t, got, "## Related Links")
}

func TestGenerate_SectionOrder(t *testing.T) {
	doc := document("kit",
		apidoc.DocNode{Name: "VERSION", Kind: apidoc.KindVariable, VariableDef: &apidoc.VariableDef{Kind: apidoc.VarDeclConst, TsType: apidoc.Keyword("string")}},
		apidoc.DocNode{Name: "Color", Kind: apidoc.KindEnum, EnumDef: &apidoc.EnumDef{Members: []apidoc.EnumMemberDef{{Name: "Red"}}}},
		apidoc.DocNode{Name: "Id", Kind: apidoc.KindTypeAlias, TypeAliasDef: &apidoc.TypeAliasDef{TsType: apidoc.Keyword("string")}},
		fn("run", nil),
		apidoc.DocNode{Name: "Options", Kind: apidoc.KindInterface, InterfaceDef: &apidoc.InterfaceDef{}},
		apidoc.DocNode{Name: "Kit", Kind: apidoc.KindClass, ClassDef: &apidoc.ClassDef{}},
		apidoc.DocNode{Name: "ns", Kind: apidoc.KindNamespace, NamespaceDef: &apidoc.NamespaceDef{}},
	)
	got := Generate(doc, Options{})

	order := []string{"## Classes", "## Interfaces", "## Functions", "## Types", "## Enums", "## Variables"}
	last := -1
	for _, h := range order {
		i := strings.Index(got, h)
		require.NotEqual(t, -1, i, h)
		assert.Greater(t, i, last, h)
		last = i
	}
	assert.NotContains(t, got, "`ns`")
	assert.Contains(t, got, "```ts\nconst VERSION: string\n```")
	assert.Contains(t, got, "**Members:**\n\n- `Red`")
}

func TestGenerate_ClassDetails(t *testing.T) {
	class := apidoc.DocNode{
		Name: "Client", Kind: apidoc.KindClass,
		JSDoc: &apidoc.JSDoc{Doc: "Talks to the server. See {@link Options}."},
		ClassDef: &apidoc.ClassDef{
			Extends: "Base",
			Constructors: []apidoc.ClassConstructorDef{
				{Name: "constructor", Params: []apidoc.ParamDef{apidoc.Ident("opts", apidoc.Ref("Options"))}},
			},
			Properties: []apidoc.ClassPropertyDef{
				{Name: "url", TsType: apidoc.Keyword("string"), Readonly: true, JSDoc: &apidoc.JSDoc{Doc: "Endpoint. Must be absolute."}},
				{Name: "_cache", TsType: apidoc.Ref("Cache")},
				{Name: "token", TsType: apidoc.Ref("Token"), Accessibility: apidoc.AccessibilityPrivate},
			},
			Methods: []apidoc.ClassMethodDef{
				{Name: "connect", FunctionDef: apidoc.FunctionDef{IsAsync: true, ReturnType: apidoc.Ref("Promise", apidoc.Keyword("void"))}},
				{Name: "_reset"},
			},
		},
	}
	options := apidoc.DocNode{Name: "Options", Kind: apidoc.KindInterface, InterfaceDef: &apidoc.InterfaceDef{
		Properties: []apidoc.InterfacePropertyDef{{Name: "retries", Optional: true, TsType: apidoc.Keyword("number")}},
	}}
	got := Generate(document("net", class, options), Options{})

	assert.Contains(t, got, "```ts\nclass Client extends Base\n```\n\nTalks to the server. See [`Options`](#Options).")
	assert.Contains(t, got, "**Constructors:**\n\n```ts\nconstructor(opts: Options)\n```")
	assert.Contains(t, got, "**Properties:**\n\n- `readonly url: string` — Endpoint.")
	assert.Contains(t, got, "**Methods:**\n\n- `async connect(): Promise<void>`")
	assert.Contains(t, got, "- `retries?: number`")
	assert.NotContains(t, got, "_cache")
	assert.NotContains(t, got, "token")
	assert.NotContains(t, got, "_reset")
	// Private member types are not collected.
	assert.NotContains(t, got, "Token")
	assert.Contains(t, got, "### This Package\n\n- [`Options`](#Options)")
	assert.Contains(t, got, "### Built-in Types\n\n- [`Promise`]")
}

func TestGenerate_ExamplesAndDeprecation(t *testing.T) {
	node := fn("old", nil)
	node.JSDoc = &apidoc.JSDoc{Tags: []apidoc.JSDocTag{
		{Kind: apidoc.TagDeprecated, Doc: "use {@link fresh}"},
		{Kind: apidoc.TagExample, Doc: "old()"},
		{Kind: apidoc.TagExample, Doc: "```js\nold(1)\n```"},
	}}
	got := Generate(document("legacy", node, fn("fresh", nil)), Options{})

	assert.Contains(t, got, "> **Deprecated:** use [`fresh`](#fresh)")
	assert.Contains(t, got, "**Examples:**\n\n```ts\nold()\n```\n\n```js\nold(1)\n```\n\n")
	assert.Equal(t, 1, strings.Count(got, "**Examples:**"))
}

func TestGenerate_HeaderDescription(t *testing.T) {
	doc := document("mod", apidoc.DocNode{Name: "mod", Kind: apidoc.KindModuleDoc, JSDoc: &apidoc.JSDoc{Doc: "Module overview."}})
	got := Generate(doc, Options{GeneratedAt: generatedAt.Add(time.Hour)})
	assert.True(t, strings.HasPrefix(got, "# mod\n\n**Version:** 1.0.0\n\nModule overview.\n\n"))
	assert.True(t, strings.HasSuffix(got, "*Generated: 2026-01-02T04:04:05Z*\n"))

	doc.Description = "Explicit description."
	assert.Contains(t, Generate(doc, Options{}), "Explicit description.")
	assert.NotContains(t, Generate(doc, Options{}), "Module overview.")
}

func TestGenerate_NilDocument(t *testing.T) {
	assert.Empty(t, Generate(nil, Options{}))
}

func TestGenerate_IsDeterministic(t *testing.T) {
	doc := document("pkg",
		fn("b", apidoc.Ref("Map", apidoc.Keyword("string"), apidoc.Ref("Item"))),
		fn("a", apidoc.Ref("Set", apidoc.Ref("Item"))),
		apidoc.DocNode{Name: "Item", Kind: apidoc.KindInterface, InterfaceDef: &apidoc.InterfaceDef{}},
	)
	assert.Equal(t, Generate(doc, Options{}), Generate(doc, Options{}))
}
