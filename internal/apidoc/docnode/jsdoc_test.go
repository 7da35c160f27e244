package docnode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
)

func TestDescriptionSummary(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"first sentence", "Parses input. Returns a number.", "Parses input."},
		{"period then newline", "Parses input.\nMore detail.", "Parses input."},
		{"no sentence break uses first line", "Parses input\nacross lines", "Parses input"},
		{"version number is not a break", "Supports v1.2 syntax\nonly", "Supports v1.2 syntax"},
		{"single sentence", "Parses input.", "Parses input."},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescriptionSummary(&apidoc.JSDoc{Doc: tt.doc}))
		})
	}
	assert.Empty(t, DescriptionSummary(nil))
}

func TestTagAccessors(t *testing.T) {
	js := &apidoc.JSDoc{
		Doc: "  Adds numbers.  ",
		Tags: []apidoc.JSDocTag{
			{Kind: apidoc.TagParam, Name: "a", Doc: "first operand"},
			{Kind: apidoc.TagParam, Name: "b"},
			{Kind: apidoc.TagParam, Doc: "nameless"},
			{Kind: apidoc.TagReturns, Doc: "the plural form"},
			{Kind: apidoc.TagReturn, Doc: "the sum"},
			{Kind: apidoc.TagExample, Doc: "add(1, 2)"},
			{Kind: apidoc.TagExample, Doc: "  "},
			{Kind: apidoc.TagExample, Doc: "add(3, 4)"},
		},
	}

	assert.Equal(t, "Adds numbers.", Description(js))
	assert.Equal(t, map[string]string{"a": "first operand"}, ParamDocs(js))
	assert.Equal(t, "the sum", ReturnDoc(js))
	assert.Equal(t, []string{"add(1, 2)", "add(3, 4)"}, Examples(js))
	assert.Len(t, TagsByKind(js, apidoc.TagParam), 3)
	assert.False(t, IsDeprecated(js))
}

func TestReturnDoc_FallsBackToReturns(t *testing.T) {
	js := &apidoc.JSDoc{Tags: []apidoc.JSDocTag{{Kind: apidoc.TagReturns, Doc: "a value"}}}
	assert.Equal(t, "a value", ReturnDoc(js))
	assert.Empty(t, ReturnDoc(nil))
}

func TestDeprecation(t *testing.T) {
	js := &apidoc.JSDoc{Tags: []apidoc.JSDocTag{{Kind: apidoc.TagDeprecated, Doc: "use parse2"}}}
	msg, ok := Deprecation(js)
	assert.True(t, ok)
	assert.Equal(t, "use parse2", msg)
	assert.True(t, IsDeprecated(js))

	_, ok = Deprecation(nil)
	assert.False(t, ok)
}

func TestNilJSDoc(t *testing.T) {
	assert.Empty(t, Description(nil))
	assert.Empty(t, TagsByKind(nil, apidoc.TagParam))
	assert.Empty(t, Examples(nil))
	assert.Empty(t, ParamDocs(nil))
}
