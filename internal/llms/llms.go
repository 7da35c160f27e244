// Package llms writes the llms.txt conventions: a short link index of the
// site and a single file concatenating every package's markdown.
package llms

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/narrative"
)

// Site describes the site as a whole.
type Site struct {
	Title       string
	Description string
	BaseURL     string
}

// Package is one rendered package for llms-full.txt.
type Package struct {
	Name     string
	Markdown string
}

var countLabels = []struct {
	kind             apidoc.Kind
	singular, plural string
}{
	{apidoc.KindClass, "class", "classes"},
	{apidoc.KindInterface, "interface", "interfaces"},
	{apidoc.KindFunction, "function", "functions"},
	{apidoc.KindTypeAlias, "type", "types"},
	{apidoc.KindEnum, "enum", "enums"},
	{apidoc.KindVariable, "variable", "variables"},
	{apidoc.KindNamespace, "namespace", "namespaces"},
}

// Index renders llms.txt. Narrative pages come first, then one line per
// package in index order.
func Index(site Site, idx *apidoc.Index, pages []*narrative.Page) string {
	var b strings.Builder
	base := strings.TrimRight(site.BaseURL, "/")

	fmt.Fprintf(&b, "# %s\n\n", site.Title)
	if d := strings.TrimSpace(site.Description); d != "" {
		fmt.Fprintf(&b, "> %s\n\n", oneLine(d))
	}

	if len(pages) > 0 {
		b.WriteString("## Docs\n\n")
		for _, p := range pages {
			fmt.Fprintf(&b, "- [%s](%s/docs/%s.md)", p.Title, base, p.Slug)
			if p.Description != "" {
				fmt.Fprintf(&b, ": %s", oneLine(p.Description))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if idx != nil && len(idx.Packages) > 0 {
		b.WriteString("## API\n\n")
		for _, e := range idx.Packages {
			fmt.Fprintf(&b, "- [%s](%s/api/%s.md)", e.Name, base, e.Name)
			var parts []string
			if e.Description != "" {
				parts = append(parts, oneLine(e.Description))
			}
			if counts := Counts(e.Counts); counts != "" {
				parts = append(parts, "("+counts+")")
			}
			if len(parts) > 0 {
				b.WriteString(": " + strings.Join(parts, " "))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Counts summarizes export counts, e.g. "2 classes, 1 function".
func Counts(counts map[apidoc.Kind]int) string {
	var parts []string
	for _, l := range countLabels {
		n := counts[l.kind]
		switch {
		case n == 1:
			parts = append(parts, "1 "+l.singular)
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", n, l.plural))
		}
	}
	return strings.Join(parts, ", ")
}

// Full renders llms-full.txt from already rendered package markdown.
func Full(site Site, pkgs []Package) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", site.Title)
	if d := strings.TrimSpace(site.Description); d != "" {
		fmt.Fprintf(&b, "> %s\n\n", oneLine(d))
	}
	for i, p := range pkgs {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		b.WriteString(strings.TrimSpace(p.Markdown))
		b.WriteString("\n")
	}
	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
