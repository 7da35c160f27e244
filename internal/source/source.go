// Package source fetches package documents from the locations named in the
// configuration: plain directories and git repositories.
package source

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/retry"
)

// Snapshot is the state of a source after a sync.
type Snapshot struct {
	// Dir holds the package documents.
	Dir string
	// Revision identifies the fetched content; empty for local sources.
	Revision string
}

// Source is a location holding extracted package documents.
type Source interface {
	Name() string
	// Sync brings the source up to date and reports where its documents live.
	Sync(ctx context.Context) (Snapshot, error)
}

// New builds the source described by cfg. Git checkouts are placed under
// workspace.
func New(cfg config.Source, workspace string) (Source, error) {
	switch cfg.Type {
	case config.SourceLocal:
		return NewLocal(cfg.Name, cfg.Path), nil
	case config.SourceGit:
		return NewGit(cfg, workspace), nil
	default:
		return nil, derrors.ConfigError("unknown source type").
			WithContext("source", cfg.Name).
			WithContext("type", string(cfg.Type)).
			Build()
	}
}

// FromConfig builds every configured source in declaration order. Git
// sources retry transient failures per build.retry.
func FromConfig(cfg *config.Config) ([]Source, error) {
	policy := RetryPolicy(cfg.Build.Retry)
	out := make([]Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		s, err := New(sc, cfg.Build.WorkspaceDir)
		if err != nil {
			return nil, err
		}
		if g, ok := s.(*Git); ok {
			g.WithRetry(policy)
		}
		out = append(out, s)
	}
	return out, nil
}

// RetryPolicy converts the retry configuration into a policy.
func RetryPolicy(rc config.RetryConfig) retry.Policy {
	maxRetries := -1
	if rc.MaxRetries != nil {
		maxRetries = *rc.MaxRetries
	}
	return retry.NewPolicy(retry.Mode(rc.Backoff), rc.Initial, rc.Max, maxRetries)
}

// Result is the document set gathered from all sources.
type Result struct {
	Documents []*apidoc.PackageDocument
	// Revisions maps source names to their synced revision.
	Revisions map[string]string
}

// Load syncs each source and loads its documents. Sources are visited in
// order and the first document registered under a package name wins; later
// duplicates are dropped with a warning.
func Load(ctx context.Context, sources []Source, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	res := &Result{Revisions: make(map[string]string, len(sources))}
	seen := make(map[string]string)

	for _, s := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap, err := s.Sync(ctx)
		if err != nil {
			return nil, err
		}
		res.Revisions[s.Name()] = snap.Revision

		docs, err := apidoc.LoadDir(snap.Dir)
		if err != nil {
			return nil, derrors.WrapError(err, derrors.CategorySource, "failed to load source documents").
				WithContext("source", s.Name()).
				Build()
		}
		for _, doc := range docs {
			if owner, dup := seen[doc.Name]; dup {
				logger.Warn("Duplicate package ignored",
					logfields.Package(doc.Name),
					logfields.Source(s.Name()),
					slog.String("kept_from", owner))
				continue
			}
			seen[doc.Name] = s.Name()
			res.Documents = append(res.Documents, doc)
		}
		logger.Debug("Source loaded",
			logfields.Source(s.Name()),
			logfields.Path(snap.Dir),
			logfields.Count(len(docs)))
	}
	return res, nil
}
