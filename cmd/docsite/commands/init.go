package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// InitCmd writes a starter configuration.
type InitCmd struct {
	Force   bool   `help:"Overwrite an existing configuration file"`
	Output  string `short:"o" help:"Directory to write docsite.yaml into (default: the --config path)"`
	Title   string `help:"Site title"`
	BaseURL string `name:"base-url" help:"Base URL prefixed to cross-package links"`
	Local   string `help:"Directory of package JSON files; replaces the example sources with this one"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	if i.Output != "" {
		path = filepath.Join(i.Output, config.DefaultPath)
	}
	cfg := i.config()
	if err := config.Write(path, cfg, i.Force); err != nil {
		return err
	}
	g.logger().Info("Configuration written", logfields.Path(path), logfields.Count(len(cfg.Sources)))
	printNextSteps(os.Stdout, path, cfg)
	return nil
}

// config is the example configuration with the command's overrides applied.
func (i *InitCmd) config() *config.Config {
	cfg := config.Example()
	if i.Title != "" {
		cfg.Site.Title = i.Title
	}
	if i.BaseURL != "" {
		cfg.Site.BaseURL = i.BaseURL
	}
	if i.Local != "" {
		cfg.Sources = []config.Source{{Name: "local", Type: config.SourceLocal, Path: i.Local}}
		cfg.Refresh.Interval = 0
	}
	return cfg
}

func printNextSteps(w io.Writer, path string, cfg *config.Config) {
	_, _ = fmt.Fprintf(w, "Wrote %s for %q\n", path, cfg.Site.Title)
	for _, s := range cfg.Sources {
		loc := s.Path
		if s.Type == config.SourceGit {
			loc = s.URL
		}
		_, _ = fmt.Fprintf(w, "  source %-8s %-5s %s\n", s.Name, s.Type, loc)
	}
	_, _ = fmt.Fprintf(w, "Next: docsite -c %s build\n", path)
}
