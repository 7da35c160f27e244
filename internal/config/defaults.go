package config

import (
	"path/filepath"
	"runtime"
	"strings"
)

const (
	defaultTitle        = "API Reference"
	defaultOutputDir    = "./site"
	defaultWorkspaceDir = ".docsite/sources"
	defaultAddr         = ":8080"
	defaultSubject      = "docsite.build.completed"
	defaultBranch       = "main"
)

func applyDefaults(cfg *Config) {
	if cfg.Site.Title == "" {
		cfg.Site.Title = defaultTitle
	}
	cfg.Site.BaseURL = strings.TrimRight(cfg.Site.BaseURL, "/")

	if cfg.Output.Directory == "" {
		cfg.Output.Directory = defaultOutputDir
	}
	if cfg.Build.Workers <= 0 {
		cfg.Build.Workers = min(runtime.NumCPU(), 8)
	}
	if cfg.Build.WorkspaceDir == "" {
		cfg.Build.WorkspaceDir = defaultWorkspaceDir
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultAddr
	}
	if cfg.Notify.NATSURL != "" && cfg.Notify.Subject == "" {
		cfg.Notify.Subject = defaultSubject
	}

	for i := range cfg.Sources {
		s := &cfg.Sources[i]
		if s.Type == "" {
			s.Type = SourceLocal
			if s.URL != "" {
				s.Type = SourceGit
			}
		} else {
			s.Type = NormalizeSourceType(string(s.Type))
		}
		if s.Type == SourceGit && s.Branch == "" {
			s.Branch = defaultBranch
		}
		if s.Path != "" {
			s.Path = filepath.Clean(s.Path)
		}
	}
}
