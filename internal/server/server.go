// Package server serves the latest site build over HTTP for local preview.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
	"git.home.luguber.info/inful/docsite/internal/version"
)

// Content types of served outputs.
const (
	contentTypeHTML     = "text/html; charset=utf-8"
	contentTypeMarkdown = "text/markdown; charset=utf-8"
	contentTypeText     = "text/plain; charset=utf-8"
	contentTypeJSON     = "application/json"
)

// Snapshots provides the build to serve.
type Snapshots interface {
	Current() *site.Snapshot
}

// Options configures optional endpoints.
type Options struct {
	Logger *slog.Logger
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// Server is the preview HTTP server.
type Server struct {
	router    *chi.Mux
	server    *http.Server
	snapshots Snapshots
	errors    *derrors.HTTPErrorAdapter
	logger    *slog.Logger
	metrics   http.Handler
}

// New creates a server listening on addr.
func New(addr string, snapshots Snapshots, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router:    chi.NewRouter(),
		snapshots: snapshots,
		errors:    derrors.NewHTTPErrorAdapter(logger),
		logger:    logger,
		metrics:   opts.Metrics,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(chain(s.logger, s.errors))

	s.router.Get("/health", s.handleHealth)
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics)
	}

	s.router.Get("/", s.serveFile(site.PathHome))
	s.router.Get("/index.html", s.serveFile(site.PathHome))
	s.router.Get("/index.json", s.serveFile(site.PathIndexJSON))
	s.router.Get("/llms.txt", s.serveFile(site.PathLLMs))
	s.router.Get("/llms-full.txt", s.serveFile(site.PathLLMsFull))
	s.router.Get("/api/*", s.handlePackage)
	s.router.Get("/docs/*", s.handleDoc)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.errors.WriteErrorResponse(w, r, derrors.NotFoundError("page not found").
			WithContext("path", r.URL.Path).
			Build())
	})
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Preview server listening", slog.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return derrors.WrapError(err, derrors.CategoryNetwork, "preview server failed").
				WithContext("addr", s.server.Addr).
				Build()
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

type health struct {
	Status  string    `json:"status"`
	Version string    `json:"version"`
	BuildID string    `json:"build_id,omitempty"`
	BuiltAt time.Time `json:"built_at,omitzero"`
}

// handleHealth reports liveness; the server is healthy before the first
// build completes.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h := health{Status: "healthy", Version: version.Version}
	if snap := s.snapshots.Current(); snap != nil {
		h.BuildID, h.BuiltAt = snap.BuildID, snap.BuiltAt
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(h)
}

func (s *Server) serveFile(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.write(w, r, path)
	}
}

// handlePackage serves /api/{name} as HTML and /api/{name}.md as markdown.
func (s *Server) handlePackage(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(chi.URLParam(r, "*"), "/")
	if md, ok := strings.CutSuffix(name, ".md"); ok {
		s.write(w, r, site.PackageMarkdownPath(md))
		return
	}
	s.write(w, r, site.PackageHTMLPath(name))
}

func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSuffix(chi.URLParam(r, "*"), "/")
	if md, ok := strings.CutSuffix(slug, ".md"); ok {
		s.write(w, r, site.DocMarkdownPath(md))
		return
	}
	s.write(w, r, site.DocHTMLPath(slug))
}

// write serves one build output with its fingerprint as a strong ETag.
func (s *Server) write(w http.ResponseWriter, r *http.Request, path string) {
	snap := s.snapshots.Current()
	if snap == nil {
		s.errors.WriteErrorResponse(w, r, derrors.NewError(derrors.CategoryRuntime, "site has not been built yet").
			Retryable().
			Build())
		return
	}
	data, fp, ok := snap.File(path)
	if !ok {
		s.errors.WriteErrorResponse(w, r, derrors.NotFoundError("page not found").
			WithContext("path", r.URL.Path).
			Build())
		return
	}

	etag := `"` + fp + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", contentType(path))
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func contentType(path string) string {
	switch {
	case strings.HasSuffix(path, ".html"):
		return contentTypeHTML
	case strings.HasSuffix(path, ".md"):
		return contentTypeMarkdown
	case strings.HasSuffix(path, ".json"):
		return contentTypeJSON
	default:
		return contentTypeText
	}
}
