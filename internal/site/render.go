package site

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/apidoc/htmlrender"
	"git.home.luguber.info/inful/docsite/internal/apidoc/mdgen"
	"git.home.luguber.info/inful/docsite/internal/apidoc/xref"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// Rendered is one package in both output formats.
type Rendered struct {
	Name    string
	Version string
	// Description is the package summary shown in listings.
	Description string
	Markdown    string
	// HTML is the article fragment, without the page shell.
	HTML  string
	Links xref.LinkGroups
	// Fingerprint identifies Markdown; used as its ETag.
	Fingerprint string
}

// LinkCounts counts collected references by classification.
func (r *Rendered) LinkCounts() map[string]int {
	counts := map[string]int{}
	if n := len(r.Links.Local); n > 0 {
		counts[xref.Local.String()] = n
	}
	if n := len(r.Links.CrossPackage); n > 0 {
		counts[xref.CrossPackage.String()] = n
	}
	if n := len(r.Links.Builtin); n > 0 {
		counts[xref.Builtin.String()] = n
	}
	if r.Links.Unresolved > 0 {
		counts[xref.Unresolved.String()] = r.Links.Unresolved
	}
	return counts
}

type renderJob struct {
	doc    *apidoc.PackageDocument
	cached bool
	took   time.Duration
	out    *Rendered
}

// renderPackage renders doc in both formats unless the cache already holds it.
func (b *Builder) renderPackage(ctx context.Context, doc *apidoc.PackageDocument, index *xref.PackageIndex, log *slog.Logger) (*renderJob, error) {
	if r, ok := b.cache.Get(doc.Name, doc.Version); ok {
		b.recorder.IncCacheResult(true)
		return &renderJob{doc: doc, cached: true, out: r}, nil
	}
	b.recorder.IncCacheResult(false)

	start := time.Now()
	md := mdgen.Render(doc, mdgen.Options{
		Index:   index,
		BaseURL: b.cfg.Site.BaseURL,
		Logger:  log,
	})
	b.recorder.ObserveRenderDuration(metrics.FormatMarkdown, time.Since(start))
	b.recorder.IncPackagesRendered(metrics.FormatMarkdown)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	htmlStart := time.Now()
	frag, err := htmlrender.RenderString(doc, htmlrender.Options{
		Index:    index,
		BaseURL:  b.cfg.Site.BaseURL,
		Logger:   log,
		Markdown: b.api,
	})
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRender, "failed to serialize package HTML").
			WithContext("package", doc.Name).
			Build()
	}
	b.recorder.ObserveRenderDuration(metrics.FormatHTML, time.Since(htmlStart))
	b.recorder.IncPackagesRendered(metrics.FormatHTML)

	r := &Rendered{
		Name:        doc.Name,
		Version:     doc.Version,
		Description: doc.Description,
		Markdown:    md.Markdown,
		HTML:        frag,
		Links:       md.Links,
		Fingerprint: Fingerprint([]byte(md.Markdown)),
	}
	for class, n := range r.LinkCounts() {
		b.recorder.AddLinks(class, n)
	}
	b.cache.Put(r)

	log.Debug("Package rendered",
		logfields.Package(doc.Name),
		logfields.Version(doc.Version),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return &renderJob{doc: doc, took: time.Since(start), out: r}, nil
}
