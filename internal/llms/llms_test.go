package llms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/narrative"
)

func TestIndex(t *testing.T) {
	idx := &apidoc.Index{Packages: []apidoc.IndexEntry{
		{Name: "core", Description: "Core\nprimitives.", Counts: map[apidoc.Kind]int{apidoc.KindClass: 2, apidoc.KindFunction: 1}},
		{Name: "empty"},
	}}
	pages := []*narrative.Page{{Slug: "guide", Title: "Guide", Description: "Start here."}}

	got := Index(Site{Title: "Acme", Description: "Acme SDK.", BaseURL: "https://docs.acme.dev/"}, idx, pages)

	want := "# Acme\n\n" +
		"> Acme SDK.\n\n" +
		"## Docs\n\n" +
		"- [Guide](https://docs.acme.dev/docs/guide.md): Start here.\n\n" +
		"## API\n\n" +
		"- [core](https://docs.acme.dev/api/core.md): Core primitives. (2 classes, 1 function)\n" +
		"- [empty](https://docs.acme.dev/api/empty.md)\n"
	assert.Equal(t, want, got)
}

func TestIndexWithoutContent(t *testing.T) {
	assert.Equal(t, "# Acme\n", Index(Site{Title: "Acme"}, nil, nil))
}

func TestCounts(t *testing.T) {
	assert.Equal(t, "1 interface, 3 types, 2 variables", Counts(map[apidoc.Kind]int{
		apidoc.KindVariable:  2,
		apidoc.KindTypeAlias: 3,
		apidoc.KindInterface: 1,
		apidoc.KindImport:    4,
	}))
	assert.Empty(t, Counts(nil))
}

func TestFull(t *testing.T) {
	got := Full(Site{Title: "Acme"}, []Package{
		{Name: "a", Markdown: "# a\n\nbody\n\n"},
		{Name: "b", Markdown: "# b\n"},
	})
	assert.Equal(t, "# Acme\n\n# a\n\nbody\n\n---\n\n# b\n", got)
}
