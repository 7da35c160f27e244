package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/apidoc/htmlrender"
	"git.home.luguber.info/inful/docsite/internal/apidoc/mdgen"
	"git.home.luguber.info/inful/docsite/internal/apidoc/xref"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Package  string   `arg:"" help:"Package document (JSON) to render"`
	Format   string   `short:"f" enum:"md,html" default:"md" help:"Output format (md|html)"`
	Siblings []string `short:"s" help:"Directories holding sibling package documents for cross-package links"`
	BaseURL  string   `name:"base-url" help:"Prefix for cross-package links"`
	Output   string   `short:"o" help:"Write to this file instead of stdout"`
}

func (r *RenderCmd) Run(g *Global, _ *CLI) error {
	doc, err := apidoc.LoadPackage(r.Package)
	if err != nil {
		return err
	}
	var siblings []*apidoc.PackageDocument
	for _, dir := range r.Siblings {
		docs, err := apidoc.LoadDir(dir)
		if err != nil {
			return err
		}
		siblings = append(siblings, docs...)
	}

	out, err := renderDocument(doc, siblings, r.Format, r.BaseURL, g.logger())
	if err != nil {
		return err
	}
	if r.Output == "" {
		_, err = io.WriteString(os.Stdout, out)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.Output), 0o750); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", r.Output).
			Build()
	}
	// #nosec G306 -- rendered documentation is world-readable.
	if err := os.WriteFile(r.Output, []byte(out), 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write rendered document").
			WithContext("path", r.Output).
			Build()
	}
	return nil
}

// renderDocument renders doc with the target registered ahead of its
// siblings, so its own names win any collision.
func renderDocument(doc *apidoc.PackageDocument, siblings []*apidoc.PackageDocument, format, baseURL string, logger *slog.Logger) (string, error) {
	docs := []*apidoc.PackageDocument{doc}
	for _, s := range siblings {
		if s.Name != doc.Name {
			docs = append(docs, s)
		}
	}
	index := xref.NewPackageIndex(logger, docs...)

	switch format {
	case "", "md":
		return mdgen.Generate(doc, mdgen.Options{Index: index, BaseURL: baseURL, Logger: logger}), nil
	case "html":
		out, err := htmlrender.RenderString(doc, htmlrender.Options{Index: index, BaseURL: baseURL, Logger: logger})
		if err != nil {
			return "", derrors.WrapError(err, derrors.CategoryRender, "failed to render HTML").
				WithContext("package", doc.Name).
				Build()
		}
		return out + "\n", nil
	default:
		return "", derrors.ValidationError("unknown output format").WithContext("format", format).Build()
	}
}
