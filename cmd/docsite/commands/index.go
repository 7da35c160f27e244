package commands

import (
	"encoding/json"
	"io"
	"os"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/apidoc/docnode"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/source"
)

// IndexCmd implements the 'index' command. Without a directory the
// configured sources are loaded.
type IndexCmd struct {
	Dir string `arg:"" optional:"" help:"Directory of package documents"`
}

func (i *IndexCmd) Run(g *Global, root *CLI) error {
	var docs []*apidoc.PackageDocument
	if i.Dir != "" {
		loaded, err := apidoc.LoadDir(i.Dir)
		if err != nil {
			return err
		}
		docs = loaded
	} else {
		cfg, err := loadConfig(root)
		if err != nil {
			return err
		}
		sources, err := source.FromConfig(cfg)
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()
		res, err := source.Load(ctx, sources, g.logger())
		if err != nil {
			return err
		}
		docs = res.Documents
	}
	return writeIndex(os.Stdout, docs)
}

func writeIndex(w io.Writer, docs []*apidoc.PackageDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docnode.BuildIndex(docs)); err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to encode index").Build()
	}
	return nil
}
