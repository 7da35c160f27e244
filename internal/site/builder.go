// Package site turns the configured sources into a static documentation
// site. A build loads every package document, renders each package to
// markdown and HTML over a shared read-only index, adds narrative pages and
// the llms.txt files, and writes only outputs whose fingerprint changed.
package site

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/apidoc/docnode"
	"git.home.luguber.info/inful/docsite/internal/apidoc/xref"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/eventstore"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/llms"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/narrative"
	"git.home.luguber.info/inful/docsite/internal/notify"
	"git.home.luguber.info/inful/docsite/internal/source"
)

// Build stages reported in build.failed events.
const (
	StageLoad      = "load"
	StageNarrative = "narrative"
	StageRender    = "render"
	StageAssemble  = "assemble"
	StageWrite     = "write"
)

// Output paths, slash separated and relative to the output root.
const (
	PathHome      = "index.html"
	PathIndexJSON = "index.json"
	PathLLMs      = "llms.txt"
	PathLLMsFull  = "llms-full.txt"
)

// PackageHTMLPath returns the page path of a package.
func PackageHTMLPath(name string) string { return "api/" + name + "/index.html" }

// PackageMarkdownPath returns the markdown path of a package.
func PackageMarkdownPath(name string) string { return "api/" + name + ".md" }

// DocHTMLPath returns the page path of a narrative page.
func DocHTMLPath(slug string) string { return "docs/" + slug + "/index.html" }

// DocMarkdownPath returns the raw markdown path of a narrative page.
func DocMarkdownPath(slug string) string { return "docs/" + slug + ".md" }

// Report summarizes a finished build.
type Report struct {
	BuildID   string
	Trigger   string
	Packages  int
	CacheHits int
	Pages     int
	Written   int
	Unchanged int
	Removed   int
	Duration  time.Duration
	Revisions map[string]string
}

// Snapshot is the immutable result of the latest successful build.
type Snapshot struct {
	BuildID  string
	BuiltAt  time.Time
	Site     config.SiteConfig
	Index    *apidoc.Index
	Packages []*Rendered
	Pages    []*narrative.Page
	// Files holds every output keyed by path.
	Files        map[string][]byte
	Fingerprints map[string]string
}

// Package returns the rendered package called name.
func (s *Snapshot) Package(name string) (*Rendered, bool) {
	for _, p := range s.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// File returns the output at path and its fingerprint.
func (s *Snapshot) File(path string) ([]byte, string, bool) {
	data, ok := s.Files[path]
	return data, s.Fingerprints[path], ok
}

// Builder runs builds. Builds are serialized; the latest successful snapshot
// is readable concurrently through Current.
type Builder struct {
	cfg      *config.Config
	sources  []source.Source
	md       *narrative.Renderer
	api      *narrative.Renderer
	cache    *Cache
	recorder metrics.Recorder
	events   eventstore.Store
	notifier notify.Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewBuilder returns a builder for cfg with sources built from the configuration.
func NewBuilder(cfg *config.Config) (*Builder, error) {
	sources, err := source.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Builder{
		cfg:      cfg,
		sources:  sources,
		md:       narrative.NewRenderer(),
		api:      narrative.NewSafeRenderer(),
		cache:    NewCache(),
		recorder: metrics.NoopRecorder{},
		notifier: notify.Nop{},
		logger:   slog.Default(),
	}, nil
}

// WithSources replaces the configured sources.
func (b *Builder) WithSources(sources ...source.Source) *Builder {
	b.sources = sources
	return b
}

func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// WithEventStore records build events in store.
func (b *Builder) WithEventStore(store eventstore.Store) *Builder {
	b.events = store
	return b
}

func (b *Builder) WithNotifier(n notify.Notifier) *Builder {
	if n != nil {
		b.notifier = n
	}
	return b
}

func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// Sources returns the sources a build reads.
func (b *Builder) Sources() []source.Source { return b.sources }

// Config returns the builder configuration.
func (b *Builder) Config() *config.Config { return b.cfg }

// Current returns the latest successful snapshot, or nil before the first build.
func (b *Builder) Current() *Snapshot { return b.current.Load() }

type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.stage + ": " + e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

func inStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &stageError{stage: stage, err: err}
}

// Build runs one build. trigger names its cause (cli, watch, schedule, serve)
// and is recorded in the build history.
func (b *Builder) Build(ctx context.Context, trigger string) (*Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	start := time.Now()
	log := b.logger.With(logfields.BuildID(id))

	names := make([]string, 0, len(b.sources))
	for _, s := range b.sources {
		names = append(names, s.Name())
	}
	b.emit(ctx, log, id, eventstore.TypeBuildStarted, eventstore.BuildStarted{Trigger: trigger, Sources: names})
	log.Info("Build started", slog.String("trigger", trigger), logfields.Count(len(b.sources)))

	report, rendered, err := b.build(ctx, id, log)
	elapsed := time.Since(start)
	b.recorder.ObserveBuildDuration(elapsed)

	if err != nil {
		outcome := metrics.BuildOutcomeFailed
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			outcome = metrics.BuildOutcomeCanceled
		}
		b.recorder.IncBuildOutcome(outcome)

		stage := StageRender
		var se *stageError
		if errors.As(err, &se) {
			stage = se.stage
			err = se.err
		}
		b.emit(context.WithoutCancel(ctx), log, id, eventstore.TypeBuildFailed, eventstore.BuildFailed{Stage: stage, Error: err.Error()})
		log.Error("Build failed", slog.String("stage", stage), logfields.Error(err))
		return nil, err
	}

	report.BuildID = id
	report.Trigger = trigger
	report.Duration = elapsed
	b.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)

	events := make([]eventstore.Event, 0, len(rendered)+1)
	for _, job := range rendered {
		ev, evErr := eventstore.NewEvent(id, eventstore.TypePackageRendered, eventstore.PackageRendered{
			Package:    job.out.Name,
			Version:    job.out.Version,
			Cached:     job.cached,
			DurationMS: job.took.Milliseconds(),
			Links:      job.out.LinkCounts(),
		})
		if evErr == nil {
			events = append(events, ev)
		}
	}
	if ev, evErr := eventstore.NewEvent(id, eventstore.TypeBuildCompleted, eventstore.BuildCompleted{
		Packages:   report.Packages,
		Pages:      report.Pages,
		Written:    report.Written,
		Unchanged:  report.Unchanged,
		DurationMS: elapsed.Milliseconds(),
	}); evErr == nil {
		events = append(events, ev)
	}
	b.record(ctx, log, events...)

	b.publish(ctx, log, report)

	log.Info("Build completed",
		logfields.Count(report.Packages),
		slog.Int("pages", report.Pages),
		slog.Int("written", report.Written),
		slog.Int("unchanged", report.Unchanged),
		slog.Int("cache_hits", report.CacheHits),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return report, nil
}

func (b *Builder) build(ctx context.Context, id string, log *slog.Logger) (*Report, []*renderJob, error) {
	loaded, err := source.Load(ctx, b.sources, log)
	if err != nil {
		return nil, nil, inStage(StageLoad, err)
	}
	docs := loaded.Documents

	var pages []*narrative.Page
	if dir := b.cfg.Narrative.Dir; dir != "" {
		if pages, err = b.md.LoadDir(dir); err != nil {
			return nil, nil, inStage(StageNarrative, err)
		}
	}

	index := xref.NewPackageIndex(log, docs...)
	if b.cache.Sync(docs, b.cfg.Site.BaseURL) {
		log.Debug("Render cache invalidated")
	}

	results := runOrdered(ctx, docs, b.cfg.Build.Workers, func(ctx context.Context, doc *apidoc.PackageDocument) (*renderJob, error) {
		return b.renderPackage(ctx, doc, index, log)
	})
	jobs := make([]*renderJob, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			return nil, nil, inStage(StageRender, r.Err)
		}
		jobs = append(jobs, r.Value)
	}
	b.recorder.SetPackages(len(jobs))

	snap, err := b.assemble(id, docs, jobs, pages)
	if err != nil {
		return nil, nil, inStage(StageAssemble, err)
	}

	report := &Report{Packages: len(jobs), Pages: len(pages), Revisions: loaded.Revisions}
	for _, j := range jobs {
		if j.cached {
			report.CacheHits++
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, inStage(StageWrite, err)
	}
	if b.cfg.Output.Directory != "" {
		if err := b.write(id, snap, report); err != nil {
			return nil, nil, inStage(StageWrite, err)
		}
	}

	b.current.Store(snap)
	return report, jobs, nil
}

// assemble produces every output file in memory.
func (b *Builder) assemble(id string, docs []*apidoc.PackageDocument, jobs []*renderJob, pages []*narrative.Page) (*Snapshot, error) {
	site := b.cfg.Site
	routes := Routes{Base: site.BaseURL}
	apiIndex := docnode.BuildIndex(docs)

	snap := &Snapshot{
		BuildID:      id,
		BuiltAt:      time.Now().UTC(),
		Site:         site,
		Index:        apiIndex,
		Pages:        pages,
		Files:        make(map[string][]byte),
		Fingerprints: make(map[string]string),
	}
	add := func(path string, content []byte) {
		snap.Files[path] = content
		snap.Fingerprints[path] = Fingerprint(content)
	}
	shell := func(title, md, curPkg, curDoc string, body template.HTML) ([]byte, error) {
		return RenderPage(PageData{
			SiteTitle: site.Title,
			Title:     title,
			Home:      routes.Home(),
			Markdown:  md,
			Docs:      docLinks(routes, pages, curDoc),
			Packages:  packageLinks(routes, apiIndex, curPkg),
			Body:      body,
		})
	}

	home, err := renderHome(homeData{
		Title:       site.Title,
		Description: site.Description,
		Docs:        docLinks(routes, pages, ""),
		Packages:    packageLinks(routes, apiIndex, ""),
	})
	if err != nil {
		return nil, err
	}
	page, err := shell("", "", "", "", home)
	if err != nil {
		return nil, err
	}
	add(PathHome, page)

	full := make([]llms.Package, 0, len(jobs))
	for _, j := range jobs {
		r := j.out
		snap.Packages = append(snap.Packages, r)
		add(PackageMarkdownPath(r.Name), []byte(r.Markdown))
		// #nosec G203 -- produced by the HTML renderer from escaped nodes.
		out, err := shell(r.Name, routes.PackageMD(r.Name), r.Name, "", template.HTML(r.HTML))
		if err != nil {
			return nil, err
		}
		add(PackageHTMLPath(r.Name), out)
		full = append(full, llms.Package{Name: r.Name, Markdown: r.Markdown})
	}

	for _, p := range pages {
		add(DocMarkdownPath(p.Slug), p.Body)
		// #nosec G203 -- narrative pages are trusted site content.
		out, err := shell(p.Title, routes.DocMD(p.Slug), "", p.Slug, template.HTML(p.HTML))
		if err != nil {
			return nil, err
		}
		add(DocHTMLPath(p.Slug), out)
	}

	llmsSite := llms.Site{Title: site.Title, Description: site.Description, BaseURL: site.BaseURL}
	add(PathLLMs, []byte(llms.Index(llmsSite, apiIndex, pages)))
	add(PathLLMsFull, []byte(llms.Full(llmsSite, full)))

	indexJSON, err := json.MarshalIndent(apiIndex, "", "  ")
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to encode package index").Build()
	}
	add(PathIndexJSON, append(indexJSON, '\n'))
	return snap, nil
}

func (b *Builder) write(id string, snap *Snapshot, report *Report) error {
	w, err := newWriter(b.cfg.Output.Directory, id)
	if err != nil {
		return err
	}
	for _, path := range slices.Sorted(maps.Keys(snap.Files)) {
		if err := w.write(path, snap.Files[path]); err != nil {
			return err
		}
	}
	if b.cfg.Output.Clean {
		removed, err := w.removeStale()
		report.Removed = removed
		if err != nil {
			return err
		}
	}
	report.Written = w.written
	report.Unchanged = w.unchanged
	return w.saveManifest()
}

func (b *Builder) emit(ctx context.Context, log *slog.Logger, id string, typ eventstore.Type, payload any) {
	if b.events == nil {
		return
	}
	ev, err := eventstore.NewEvent(id, typ, payload)
	if err != nil {
		log.Warn("Failed to encode build event", logfields.Error(err))
		return
	}
	b.record(ctx, log, ev)
}

// record appends events; history is best effort and never fails a build.
func (b *Builder) record(ctx context.Context, log *slog.Logger, events ...eventstore.Event) {
	if b.events == nil || len(events) == 0 {
		return
	}
	if err := b.events.Append(context.WithoutCancel(ctx), events...); err != nil {
		log.Warn("Failed to record build events", logfields.Error(err))
	}
}

func (b *Builder) publish(ctx context.Context, log *slog.Logger, report *Report) {
	snap := b.current.Load()
	pkgs := make([]string, 0, len(snap.Packages))
	for _, p := range snap.Packages {
		pkgs = append(pkgs, p.Name)
	}
	err := b.notifier.BuildCompleted(context.WithoutCancel(ctx), notify.BuildCompleted{
		BuildID:     report.BuildID,
		Site:        b.cfg.Site.Title,
		Trigger:     report.Trigger,
		Packages:    pkgs,
		Pages:       report.Pages,
		Written:     report.Written,
		Unchanged:   report.Unchanged,
		DurationMS:  report.Duration.Milliseconds(),
		Revisions:   report.Revisions,
		CompletedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Warn("Failed to publish build notification", logfields.Error(err))
	}
}
