// Package mdgen renders one package's documentation as a single markdown
// document: a header, one section per export kind, a Related Links section
// listing every referenced type, and a generation timestamp.
//
// Rendering is a pure function of its inputs. Each call builds its own link
// collector, so packages may be rendered concurrently over a shared,
// read-only document set.
package mdgen

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/apidoc/docnode"
	"git.home.luguber.info/inful/docsite/internal/apidoc/xref"
)

// Options carries the global context of a render.
type Options struct {
	// Siblings are the other known packages, in registration order. Ignored
	// when Index is set.
	Siblings []*apidoc.PackageDocument
	// Index is a prebuilt cross-package index shared across a render batch.
	Index *xref.PackageIndex
	// BaseURL prefixes cross-package links.
	BaseURL string
	// GeneratedAt overrides the document's timestamp in the trailing line.
	GeneratedAt time.Time
	Logger      *slog.Logger
}

// Result is the rendered document plus the links it references.
type Result struct {
	Markdown string
	Links    xref.LinkGroups
}

type section struct {
	kind  apidoc.Kind
	title string
}

// sections lists the rendered kinds in document order.
var sections = []section{
	{apidoc.KindClass, "Classes"},
	{apidoc.KindInterface, "Interfaces"},
	{apidoc.KindFunction, "Functions"},
	{apidoc.KindTypeAlias, "Types"},
	{apidoc.KindEnum, "Enums"},
	{apidoc.KindVariable, "Variables"},
}

// Generate renders doc as markdown. A nil doc yields "".
func Generate(doc *apidoc.PackageDocument, opts Options) string {
	return Render(doc, opts).Markdown
}

// Render renders doc and reports the collected links.
func Render(doc *apidoc.PackageDocument, opts Options) Result {
	if doc == nil {
		return Result{}
	}
	index := opts.Index
	if index == nil {
		index = xref.NewPackageIndex(opts.Logger, opts.Siblings...)
	}
	g := &generator{
		doc:       doc,
		collector: xref.NewCollector(xref.NewResolver(doc, index, opts.BaseURL)),
	}
	g.render(opts)
	return Result{Markdown: g.String(), Links: g.links}
}

type generator struct {
	strings.Builder
	doc       *apidoc.PackageDocument
	collector *xref.Collector
	links     xref.LinkGroups
}

// block writes s followed by a blank line.
func (g *generator) block(s string) {
	g.WriteString(s)
	g.WriteString("\n\n")
}

func (g *generator) render(opts Options) {
	g.header()

	public := docnode.PublicNodes(g.doc)
	byKind := docnode.GroupByKind(public)
	overloads := docnode.GroupsByKey(docnode.GroupByName(public))

	for _, sec := range sections {
		nodes := docnode.DeduplicateByName(byKind[sec.kind])
		if len(nodes) == 0 {
			continue
		}
		g.block("## " + sec.title)
		for i, n := range nodes {
			if i > 0 {
				g.block("---")
			}
			group := overloads[docnode.KeyOf(n)]
			if n.Kind == apidoc.KindFunction && group.IsOverloaded() {
				g.overloads(group)
				continue
			}
			g.symbol(n)
		}
	}

	g.links = g.collector.Links()
	g.relatedLinks()

	ts := opts.GeneratedAt
	if ts.IsZero() {
		ts = g.doc.GeneratedAt
	}
	if ts.IsZero() {
		ts = time.Now()
	}
	g.block("---")
	g.WriteString("*Generated: " + ts.UTC().Format(time.RFC3339) + "*\n")
}

func (g *generator) header() {
	g.block("# " + g.doc.Name)
	if g.doc.Version != "" {
		g.block("**Version:** " + g.doc.Version)
	}
	desc := strings.TrimSpace(g.doc.Description)
	if desc == "" {
		if mod := docnode.ModuleDoc(g.doc); mod != nil {
			desc = docnode.Description(mod.JSDoc)
		}
	}
	if desc != "" {
		g.block(g.inline(desc))
	}
}

func (g *generator) inline(text string) string {
	return xref.ProcessInlineLinks(text, g.collector.Resolver())
}

func (g *generator) relatedLinks() {
	if g.links.Empty() {
		return
	}
	g.block("## Related Links")
	g.linkGroup("This Package", g.links.Local)
	g.linkGroup("Other Packages", g.links.CrossPackage)
	g.linkGroup("Built-in Types", g.links.Builtin)
}

func (g *generator) linkGroup(title string, links []xref.Link) {
	if len(links) == 0 {
		return
	}
	lines := make([]string, 0, len(links))
	for _, l := range links {
		line := fmt.Sprintf("- [`%s`](%s)", l.Name, l.URL)
		if l.Class == xref.CrossPackage {
			line += fmt.Sprintf(" (from `%s`)", l.Specifier)
		}
		lines = append(lines, line)
	}
	g.block("### " + title)
	g.block(strings.Join(lines, "\n"))
}
