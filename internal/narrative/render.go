// Package narrative renders hand-written markdown: GFM with stable slug ids on
// headings, optional YAML frontmatter, and raw HTML passed through for trusted
// site content only.
package narrative

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Heading is a rendered heading and its generated id.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Renderer converts markdown to HTML. Safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer returns a renderer for narrative pages, which are site content
// and may embed raw HTML.
func NewRenderer() *Renderer {
	return newRenderer(gmhtml.WithUnsafe())
}

// NewSafeRenderer returns a renderer for untrusted text such as extracted doc
// comments: raw HTML is omitted and dangerous link destinations are dropped.
func NewSafeRenderer() *Renderer {
	return newRenderer()
}

func newRenderer(opts ...renderer.Option) *Renderer {
	return &Renderer{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(opts...),
	)}
}

// Render converts src to an HTML fragment.
func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Headings returns the headings of src at the given level in document order,
// with the ids Render assigns to them.
func (r *Renderer) Headings(src []byte, level int) []Heading {
	root := r.md.Parser().Parse(text.NewReader(src))

	var out []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if h.Level == level {
			id, _ := h.AttributeString("id")
			idStr := ""
			if b, ok := id.([]byte); ok {
				idStr = string(b)
			}
			out = append(out, Heading{Level: h.Level, ID: idStr, Text: plainText(h, src)})
		}
		return gmast.WalkSkipChildren, nil
	})
	return out
}

func plainText(n gmast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			buf.Write(t.Segment.Value(src))
			continue
		}
		buf.WriteString(plainText(c, src))
	}
	return buf.String()
}
