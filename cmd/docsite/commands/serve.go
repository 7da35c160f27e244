package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/schedule"
	"git.home.luguber.info/inful/docsite/internal/server"
	"git.home.luguber.info/inful/docsite/internal/site"
	"git.home.luguber.info/inful/docsite/internal/source"
	"git.home.luguber.info/inful/docsite/internal/watch"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr      string `short:"a" help:"Listen address (overrides server.addr)"`
	Watch     bool   `short:"w" help:"Rebuild when local sources or narrative docs change (also server.watch)"`
	NoRefresh bool   `name:"no-refresh" help:"Disable the scheduled refresh of git sources"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}
	logger := g.logger()

	ctx, cancel := signalContext()
	defer cancel()

	rt, err := newRuntime(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	// A failed first build still serves; requests answer 503 until a
	// rebuild succeeds.
	if report, err := rt.builder.Build(ctx, "serve"); err != nil {
		logger.Error("Initial build failed", logfields.Error(err))
	} else {
		printReport(os.Stdout, cfg.Output.Directory, report)
	}

	srv := server.New(cfg.Server.Addr, rt.builder, server.Options{Logger: logger, Metrics: rt.metrics})
	fmt.Printf("Serving on %s\n", cfg.Server.Addr)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { return srv.Run(gctx) })

	if s.Watch || cfg.Server.Watch {
		if dirs := watchDirs(cfg, rt.builder.Sources()); len(dirs) > 0 {
			w := watch.New(dirs, rebuild(rt.builder, "watch")).WithLogger(logger)
			group.Go(func() error { return w.Run(gctx) })
		} else {
			logger.Warn("Watch requested but no local directories to watch")
		}
	}

	if !s.NoRefresh && cfg.Refresh.Interval > 0 && len(cfg.GitSources()) > 0 {
		r, err := schedule.New(cfg.Refresh.Interval, rebuild(rt.builder, "refresh"), logger)
		if err != nil {
			cancel()
			_ = group.Wait()
			return err
		}
		group.Go(func() error { return r.Run(gctx) })
	}

	return group.Wait()
}

func rebuild(b *site.Builder, trigger string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := b.Build(ctx, trigger)
		return err
	}
}

// watchDirs lists the existing local source directories and the narrative
// directory.
func watchDirs(cfg *config.Config, sources []source.Source) []string {
	var dirs []string
	for _, src := range sources {
		if local, ok := src.(*source.Local); ok {
			dirs = append(dirs, local.Dir())
		}
	}
	if cfg.Narrative.Dir != "" {
		dirs = append(dirs, cfg.Narrative.Dir)
	}
	existing := dirs[:0]
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			existing = append(existing, d)
		} else {
			slog.Debug("Skipping missing watch directory", logfields.Path(d))
		}
	}
	return existing
}
