package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory (overrides output.directory)"`
	Clean  bool   `help:"Remove outputs left over from previous builds"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	b.apply(cfg)

	ctx, cancel := signalContext()
	defer cancel()

	rt, err := newRuntime(cfg, g.logger())
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	fmt.Println("Starting docsite build")
	report, err := rt.builder.Build(ctx, "cli")
	if err != nil {
		fmt.Println("Build failed")
		return err
	}
	printReport(os.Stdout, cfg.Output.Directory, report)
	return nil
}

func (b *BuildCmd) apply(cfg *config.Config) {
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}
	if b.Clean {
		cfg.Output.Clean = true
	}
}

func printReport(w io.Writer, dir string, r *site.Report) {
	_, _ = fmt.Fprintf(w, "Built %d packages and %d pages into %s in %s\n",
		r.Packages, r.Pages, dir, r.Duration.Round(time.Millisecond))
	_, _ = fmt.Fprintf(w, "  written %d, unchanged %d, removed %d, cached renders %d\n",
		r.Written, r.Unchanged, r.Removed, r.CacheHits)
	_, _ = fmt.Fprintf(w, "  build %s\n", r.BuildID)
}
