package source

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/retry"
)

// Git is a repository cloned into the workspace and pulled on every sync.
type Git struct {
	name     string
	url      string
	branch   string
	token    string
	subdir   string
	checkout string
	retry    retry.Policy
}

// NewGit returns a source for cfg whose checkout lives at workspace/<name>.
func NewGit(cfg config.Source, workspace string) *Git {
	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}
	return &Git{
		name:     cfg.Name,
		url:      cfg.URL,
		branch:   branch,
		token:    cfg.AuthToken,
		subdir:   cfg.Path,
		checkout: filepath.Join(workspace, cfg.Name),
	}
}

func (g *Git) Name() string { return g.name }

// Checkout returns the local clone path.
func (g *Git) Checkout() string { return g.checkout }

// WithRetry retries failed clones and pulls under p.
func (g *Git) WithRetry(p retry.Policy) *Git {
	g.retry = p
	return g
}

// Sync clones the repository on first use and pulls afterwards.
func (g *Git) Sync(ctx context.Context) (Snapshot, error) {
	var repo *git.Repository
	err := g.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		repo, err = g.cloneOrPull(ctx)
		return err
	}, func(n int, delay time.Duration, err error) {
		slog.Warn("Retrying git sync",
			logfields.Source(g.name),
			slog.Int("retry", n),
			slog.Duration("delay", delay),
			logfields.Error(err))
	})
	if err != nil {
		return Snapshot{}, err
	}
	head, err := repo.Head()
	if err != nil {
		return Snapshot{}, g.wrap(err, "failed to resolve HEAD")
	}
	dir := g.checkout
	if g.subdir != "" && g.subdir != "." {
		dir = filepath.Join(g.checkout, g.subdir)
	}
	return Snapshot{Dir: dir, Revision: head.Hash().String()}, nil
}

func (g *Git) cloneOrPull(ctx context.Context) (*git.Repository, error) {
	if _, err := os.Stat(filepath.Join(g.checkout, ".git")); err != nil {
		return g.clone(ctx)
	}

	repo, err := git.PlainOpen(g.checkout)
	if err != nil {
		return nil, g.wrap(err, "failed to open checkout")
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, g.wrap(err, "failed to get worktree")
	}
	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName:    "origin",
		ReferenceName: plumbing.NewBranchReferenceName(g.branch),
		SingleBranch:  true,
		Auth:          g.auth(),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil, g.wrap(err, "failed to pull repository")
	}
	return repo, nil
}

func (g *Git) clone(ctx context.Context) (*git.Repository, error) {
	if err := os.MkdirAll(filepath.Dir(g.checkout), 0o750); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create workspace").
			WithContext("path", g.checkout).
			Build()
	}
	// A partial checkout from an interrupted clone would fail PlainOpen.
	if err := os.RemoveAll(g.checkout); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to clear checkout").
			WithContext("path", g.checkout).
			Build()
	}
	repo, err := git.PlainCloneContext(ctx, g.checkout, false, &git.CloneOptions{
		URL:           g.url,
		ReferenceName: plumbing.NewBranchReferenceName(g.branch),
		SingleBranch:  true,
		Auth:          g.auth(),
	})
	if err != nil {
		return nil, g.wrap(err, "failed to clone repository")
	}
	return repo, nil
}

func (g *Git) auth() transport.AuthMethod {
	if g.token == "" {
		return nil
	}
	return &http.BasicAuth{Username: "token", Password: g.token}
}

func (g *Git) wrap(err error, msg string) error {
	return derrors.WrapError(err, derrors.CategorySource, msg).
		Retryable().
		WithContext("source", g.name).
		WithContext("url", g.url).
		WithContext("branch", g.branch).
		Build()
}
