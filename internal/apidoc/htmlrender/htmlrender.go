// Package htmlrender renders a package document as an HTML fragment tree for
// in-browser navigation. Type names inside signatures link directly to their
// declarations using the same classification as the markdown generator.
package htmlrender

import (
	"bytes"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/apidoc/docnode"
	"git.home.luguber.info/inful/docsite/internal/apidoc/xref"
	"git.home.luguber.info/inful/docsite/internal/narrative"
)

// Options carries the global context of a render.
type Options struct {
	// Siblings are the other known packages. Ignored when Index is set.
	Siblings []*apidoc.PackageDocument
	Index    *xref.PackageIndex
	BaseURL  string
	Logger   *slog.Logger
	// Markdown renders descriptions; nil uses a private safe renderer. Doc
	// comments are untrusted, so it should not pass raw HTML through.
	Markdown *narrative.Renderer
}

type section struct {
	kind  apidoc.Kind
	id    string
	title string
}

var sections = []section{
	{apidoc.KindClass, "kind-classes", "Classes"},
	{apidoc.KindInterface, "kind-interfaces", "Interfaces"},
	{apidoc.KindFunction, "kind-functions", "Functions"},
	{apidoc.KindTypeAlias, "kind-types", "Types"},
	{apidoc.KindEnum, "kind-enums", "Enums"},
	{apidoc.KindVariable, "kind-variables", "Variables"},
}

// Context holds the per-package state shared by symbol renderers.
type Context struct {
	doc      *apidoc.PackageDocument
	resolver *xref.Resolver
	md       *narrative.Renderer
}

// NewContext prepares rendering of symbols belonging to doc.
func NewContext(doc *apidoc.PackageDocument, opts Options) *Context {
	index := opts.Index
	if index == nil {
		index = xref.NewPackageIndex(opts.Logger, opts.Siblings...)
	}
	md := opts.Markdown
	if md == nil {
		md = narrative.NewSafeRenderer()
	}
	return &Context{
		doc:      doc,
		resolver: xref.NewResolver(doc, index, opts.BaseURL),
		md:       md,
	}
}

// RenderPackage builds the fragment for doc rooted at an article element.
// A nil doc yields nil; callers render their own not-found response.
func RenderPackage(doc *apidoc.PackageDocument, opts Options) *html.Node {
	if doc == nil {
		return nil
	}
	ctx := NewContext(doc, opts)

	public := docnode.PublicNodes(doc)
	byKind := docnode.GroupByKind(public)
	groups := docnode.GroupsByKey(docnode.GroupByName(public))

	article := el("article", "class", "api-package")
	add(article, ctx.header())

	toc := el("nav", "class", "api-toc")
	var body []*html.Node
	for _, sec := range sections {
		nodes := docnode.DeduplicateByName(byKind[sec.kind])
		if len(nodes) == 0 {
			continue
		}
		list := el("ul")
		s := add(el("section", "class", "api-kind", "id", sec.id), textEl("h2", sec.title))
		for _, n := range nodes {
			add(list, add(el("li"), textEl("a", n.Name, "href", "#"+n.Name)))
			add(s, ctx.RenderNode(groups[docnode.KeyOf(n)]))
		}
		add(toc, add(el("div", "class", "api-toc-group"), textEl("h3", sec.title), list))
		body = append(body, s)
	}
	if toc.FirstChild != nil {
		add(article, toc)
	}
	add(article, body...)
	return article
}

// RenderString serializes the package fragment. A nil doc yields "".
func RenderString(doc *apidoc.PackageDocument, opts Options) (string, error) {
	root := RenderPackage(doc, opts)
	if root == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (c *Context) header() *html.Node {
	h := add(el("header", "class", "api-header"), textEl("h1", c.doc.Name))
	if c.doc.Version != "" {
		add(h, textEl("p", "Version "+c.doc.Version, "class", "api-version"))
	}
	desc := strings.TrimSpace(c.doc.Description)
	if desc == "" {
		if mod := docnode.ModuleDoc(c.doc); mod != nil {
			desc = docnode.Description(mod.JSDoc)
		}
	}
	add(h, c.prose(desc, "api-description"))
	return h
}

// prose renders free text with inline links into a div; empty text yields nil.
func (c *Context) prose(text, class string) *html.Node {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	classes := map[string]string{}
	linked := xref.RewriteInlineLinks(text, c.resolver, func(l xref.Link) {
		classes[l.URL] = xref.CSSClass(l.Class)
	})
	rendered, err := c.md.Render([]byte(linked))
	div := el("div", "class", class)
	if err != nil {
		return add(div, textEl("p", text))
	}
	nodes := fragment(strings.TrimSpace(rendered))
	for _, n := range nodes {
		classifyLinks(n, classes)
	}
	return add(div, nodes...)
}
