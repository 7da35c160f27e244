package site

import (
	"bytes"
	"html/template"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/llms"
	"git.home.luguber.info/inful/docsite/internal/narrative"
)

// NavLink is one entry of the page navigation.
type NavLink struct {
	Title   string
	URL     string
	Summary string
	Current bool
}

// PageData fills the page shell.
type PageData struct {
	SiteTitle string
	Title     string
	Home      string
	// Markdown is the URL of the page's markdown twin, if any.
	Markdown string
	Docs     []NavLink
	Packages []NavLink
	Body     template.HTML
}

var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .Title}}{{.Title}} | {{end}}{{.SiteTitle}}</title>
{{- if .Markdown}}
<link rel="alternate" type="text/markdown" href="{{.Markdown}}">
{{- end}}
</head>
<body>
<nav class="site-nav">
<a class="site-title" href="{{.Home}}">{{.SiteTitle}}</a>
{{- if .Docs}}
<ul class="site-docs">
{{- range .Docs}}
<li><a href="{{.URL}}"{{if .Current}} aria-current="page"{{end}}>{{.Title}}</a></li>
{{- end}}
</ul>
{{- end}}
{{- if .Packages}}
<ul class="site-packages">
{{- range .Packages}}
<li><a href="{{.URL}}"{{if .Current}} aria-current="page"{{end}}>{{.Title}}</a></li>
{{- end}}
</ul>
{{- end}}
</nav>
<main>
{{.Body}}
</main>
</body>
</html>
`))

var homeTemplate = template.Must(template.New("home").Parse(`<article class="site-home">
<h1>{{.Title}}</h1>
{{- if .Description}}
<p class="site-description">{{.Description}}</p>
{{- end}}
{{- if .Docs}}
<section class="site-docs">
<h2>Guides</h2>
<ul>
{{- range .Docs}}
<li><a href="{{.URL}}">{{.Title}}</a>{{if .Summary}} <span class="summary">{{.Summary}}</span>{{end}}</li>
{{- end}}
</ul>
</section>
{{- end}}
<section class="site-packages">
<h2>Packages</h2>
{{- if .Packages}}
<ul>
{{- range .Packages}}
<li><a href="{{.URL}}">{{.Title}}</a>{{if .Summary}} <span class="summary">{{.Summary}}</span>{{end}}</li>
{{- end}}
</ul>
{{- else}}
<p>No packages found.</p>
{{- end}}
</section>
</article>`))

// RenderPage wraps a body fragment in the page shell.
func RenderPage(data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := shellTemplate.Execute(&buf, data); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRender, "failed to render page shell").
			WithContext("title", data.Title).
			Build()
	}
	return buf.Bytes(), nil
}

type homeData struct {
	Title       string
	Description string
	Docs        []NavLink
	Packages    []NavLink
}

func renderHome(data homeData) (template.HTML, error) {
	var buf bytes.Buffer
	if err := homeTemplate.Execute(&buf, data); err != nil {
		return "", derrors.WrapError(err, derrors.CategoryRender, "failed to render home page").Build()
	}
	// #nosec G203 -- produced by html/template.
	return template.HTML(buf.String()), nil
}

// Routes builds site URLs relative to a base.
type Routes struct {
	Base string
}

func (r Routes) Home() string                 { return r.Base + "/" }
func (r Routes) Package(name string) string   { return r.Base + "/api/" + name }
func (r Routes) PackageMD(name string) string { return r.Base + "/api/" + name + ".md" }
func (r Routes) Doc(slug string) string       { return r.Base + "/docs/" + slug }
func (r Routes) DocMD(slug string) string     { return r.Base + "/docs/" + slug + ".md" }

func packageLinks(r Routes, idx *apidoc.Index, current string) []NavLink {
	if idx == nil {
		return nil
	}
	out := make([]NavLink, 0, len(idx.Packages))
	for _, e := range idx.Packages {
		summary := e.Description
		if counts := llms.Counts(e.Counts); counts != "" {
			if summary != "" {
				summary += " "
			}
			summary += "(" + counts + ")"
		}
		out = append(out, NavLink{Title: e.Name, URL: r.Package(e.Name), Summary: summary, Current: e.Name == current})
	}
	return out
}

func docLinks(r Routes, pages []*narrative.Page, current string) []NavLink {
	out := make([]NavLink, 0, len(pages))
	for _, p := range pages {
		out = append(out, NavLink{Title: p.Title, URL: r.Doc(p.Slug), Summary: p.Description, Current: p.Slug == current})
	}
	return out
}
