package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/eventstore"
	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/notify"
	"git.home.luguber.info/inful/docsite/internal/source"
)

type recordingNotifier struct {
	msgs []notify.BuildCompleted
}

func (r *recordingNotifier) BuildCompleted(_ context.Context, msg notify.BuildCompleted) error {
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordingNotifier) Close() error { return nil }

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func alphaDoc() *apidoc.PackageDocument {
	return &apidoc.PackageDocument{
		Name:        "alpha",
		Specifier:   "@acme/alpha",
		Version:     "1.0.0",
		Description: "Alpha primitives.",
		GeneratedAt: fixedTime,
		Nodes: []apidoc.DocNode{
			{Name: "Options", Kind: apidoc.KindInterface, InterfaceDef: &apidoc.InterfaceDef{
				Properties: []apidoc.InterfacePropertyDef{{Name: "retries", TsType: apidoc.Keyword("number")}},
			}},
			{Name: "start", Kind: apidoc.KindFunction, FunctionDef: &apidoc.FunctionDef{
				Params:     []apidoc.ParamDef{apidoc.Ident("opts", apidoc.Ref("Options"))},
				ReturnType: apidoc.Keyword("void"),
			}},
		},
	}
}

func betaDoc() *apidoc.PackageDocument {
	return &apidoc.PackageDocument{
		Name:        "beta",
		Specifier:   "@acme/beta",
		Version:     "0.3.0",
		GeneratedAt: fixedTime,
		Nodes: []apidoc.DocNode{
			{Name: "configure", Kind: apidoc.KindFunction, FunctionDef: &apidoc.FunctionDef{
				Params:     []apidoc.ParamDef{apidoc.Ident("opts", apidoc.Ref("Options"))},
				ReturnType: apidoc.Ref("Promise", apidoc.Keyword("void")),
			}},
		},
	}
}

type fixture struct {
	data   string
	docs   string
	output string
	cfg    *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		data:   filepath.Join(root, "data"),
		docs:   filepath.Join(root, "docs"),
		output: filepath.Join(root, "site"),
	}
	require.NoError(t, os.MkdirAll(f.data, 0o750))
	require.NoError(t, os.MkdirAll(f.docs, 0o750))
	require.NoError(t, apidoc.WritePackage(filepath.Join(f.data, "alpha.json"), alphaDoc()))
	require.NoError(t, apidoc.WritePackage(filepath.Join(f.data, "beta.json"), betaDoc()))
	require.NoError(t, os.WriteFile(filepath.Join(f.docs, "intro.md"),
		[]byte("---\ntitle: Introduction\ndescription: Start here.\n---\n# Welcome\n\nHello.\n"), 0o600))

	f.cfg = &config.Config{
		Site:      config.SiteConfig{Title: "Acme", Description: "Acme SDK."},
		Sources:   []config.Source{{Name: "local", Type: config.SourceLocal, Path: f.data}},
		Narrative: config.NarrativeConfig{Dir: f.docs},
		Output:    config.OutputConfig{Directory: f.output, Clean: true},
		Build:     config.BuildConfig{Workers: 2},
	}
	return f
}

func (f *fixture) builder(t *testing.T) *Builder {
	t.Helper()
	b, err := NewBuilder(f.cfg)
	require.NoError(t, err)
	return b
}

func (f *fixture) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.output, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

const outputsPerBuild = 10

func TestBuildWritesSite(t *testing.T) {
	f := newFixture(t)
	b := f.builder(t)

	report, err := b.Build(context.Background(), "cli")
	require.NoError(t, err)
	assert.NotEmpty(t, report.BuildID)
	assert.Equal(t, "cli", report.Trigger)
	assert.Equal(t, 2, report.Packages)
	assert.Equal(t, 1, report.Pages)
	assert.Equal(t, outputsPerBuild, report.Written)
	assert.Zero(t, report.Unchanged)

	alphaHTML := f.read(t, "api/alpha/index.html")
	assert.Contains(t, alphaHTML, "<!DOCTYPE html>")
	assert.Contains(t, alphaHTML, `<article class="api-package">`)
	assert.Contains(t, alphaHTML, `<link rel="alternate" type="text/markdown" href="/api/alpha.md">`)
	assert.Contains(t, alphaHTML, `<a href="/api/alpha" aria-current="page">alpha</a>`)

	betaMD := f.read(t, "api/beta.md")
	assert.Contains(t, betaMD, "# beta")
	assert.Contains(t, betaMD, "/api/alpha#Options")

	assert.Contains(t, f.read(t, "docs/intro/index.html"), "Hello.")
	assert.Equal(t, "# Welcome\n\nHello.\n", f.read(t, "docs/intro.md"))

	llmsTxt := f.read(t, "llms.txt")
	assert.Contains(t, llmsTxt, "- [Introduction](/docs/intro.md): Start here.")
	assert.Contains(t, llmsTxt, "- [alpha](/api/alpha.md): Alpha primitives. (1 interface, 1 function)")
	assert.Contains(t, f.read(t, "llms-full.txt"), "# alpha")

	idx, err := apidoc.LoadIndex(filepath.Join(f.output, "index.json"))
	require.NoError(t, err)
	require.Len(t, idx.Packages, 2)
	assert.Equal(t, "alpha", idx.Packages[0].Name)

	m, err := LoadManifest(f.output)
	require.NoError(t, err)
	assert.Equal(t, report.BuildID, m.BuildID)
	assert.Len(t, m.Files, outputsPerBuild)
	assert.Equal(t, Fingerprint([]byte(betaMD)), m.Files["api/beta.md"])

	snap := b.Current()
	require.NotNil(t, snap)
	r, ok := snap.Package("beta")
	require.True(t, ok)
	assert.Equal(t, Fingerprint([]byte(r.Markdown)), r.Fingerprint)
	data, fp, ok := snap.File(PackageMarkdownPath("beta"))
	require.True(t, ok)
	assert.Equal(t, betaMD, string(data))
	assert.Equal(t, r.Fingerprint, fp)
}

func TestBuildSkipsUnchangedOutputs(t *testing.T) {
	f := newFixture(t)
	b := f.builder(t)

	_, err := b.Build(context.Background(), "cli")
	require.NoError(t, err)

	second, err := b.Build(context.Background(), "cli")
	require.NoError(t, err)
	assert.Zero(t, second.Written)
	assert.Equal(t, outputsPerBuild, second.Unchanged)
	assert.Equal(t, 2, second.CacheHits)
}

func TestBuildRerendersEditedPackageWithSameVersion(t *testing.T) {
	f := newFixture(t)
	b := f.builder(t)

	_, err := b.Build(context.Background(), "cli")
	require.NoError(t, err)

	edited := alphaDoc()
	edited.Description = "Alpha launch primitives."
	edited.Nodes[1].Name = "launch"
	require.NoError(t, apidoc.WritePackage(filepath.Join(f.data, "alpha.json"), edited))

	report, err := b.Build(context.Background(), "watch")
	require.NoError(t, err)
	assert.Zero(t, report.CacheHits)

	alphaMD := f.read(t, "api/alpha.md")
	assert.Contains(t, alphaMD, "launch")
	assert.NotContains(t, alphaMD, "start")
	assert.Contains(t, f.read(t, "api/alpha/index.html"), `id="launch"`)
	assert.Contains(t, f.read(t, "llms.txt"), "Alpha launch primitives.")
}

func TestBuildRemovesStaleOutputs(t *testing.T) {
	f := newFixture(t)
	b := f.builder(t)

	_, err := b.Build(context.Background(), "cli")
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(f.data, "beta.json")))
	report, err := b.Build(context.Background(), "watch")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Packages)
	assert.Equal(t, 2, report.Removed)
	assert.Zero(t, report.CacheHits, "cache must be dropped when the package set changes")

	assert.NoFileExists(t, filepath.Join(f.output, "api", "beta.md"))
	assert.NoDirExists(t, filepath.Join(f.output, "api", "beta"))
	assert.FileExists(t, filepath.Join(f.output, "api", "alpha.md"))
}

func TestBuildRecordsHistoryAndNotifies(t *testing.T) {
	f := newFixture(t)
	store, err := eventstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	n := &recordingNotifier{}

	b := f.builder(t).WithEventStore(store).WithNotifier(n)
	report, err := b.Build(context.Background(), "schedule")
	require.NoError(t, err)

	history, err := eventstore.History(context.Background(), store, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, report.BuildID, history[0].BuildID)
	assert.Equal(t, eventstore.StatusCompleted, history[0].Status)
	assert.Equal(t, "schedule", history[0].Trigger)
	assert.Equal(t, 2, history[0].Packages)

	require.Len(t, n.msgs, 1)
	assert.Equal(t, report.BuildID, n.msgs[0].BuildID)
	assert.Equal(t, []string{"alpha", "beta"}, n.msgs[0].Packages)
	assert.Equal(t, outputsPerBuild, n.msgs[0].Written)
}

func TestBuildFailureKeepsPreviousSnapshot(t *testing.T) {
	f := newFixture(t)
	store, err := eventstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	b := f.builder(t).WithEventStore(store)
	_, err = b.Build(context.Background(), "cli")
	require.NoError(t, err)
	first := b.Current()

	b.WithSources(source.NewLocal("gone", filepath.Join(f.data, "missing")))
	_, err = b.Build(context.Background(), "cli")
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategorySource) || derrors.HasCategory(err, derrors.CategoryNotFound))
	assert.Same(t, first, b.Current())

	history, err := eventstore.History(context.Background(), store, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, eventstore.StatusFailed, history[0].Status)
	assert.Equal(t, StageLoad, history[0].ErrorStage)
}

func TestBuildRejectsPackageNameOutsideOutput(t *testing.T) {
	f := newFixture(t)
	escaping := betaDoc()
	escaping.Name = "../../escaped"
	require.NoError(t, apidoc.WritePackage(filepath.Join(f.data, "beta.json"), escaping))

	b := f.builder(t)
	_, err := b.Build(context.Background(), "cli")
	require.Error(t, err)
	assert.ErrorContains(t, err, "not a valid path segment")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(f.output), "..", "escaped.md"))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(f.output), "escaped.md"))
	assert.Nil(t, b.Current())
}

func TestBuildWithoutOutputDirectory(t *testing.T) {
	f := newFixture(t)
	f.cfg.Output.Directory = ""
	b := f.builder(t)

	report, err := b.Build(context.Background(), "serve")
	require.NoError(t, err)
	assert.Zero(t, report.Written)
	assert.NoDirExists(t, f.output)
	_, _, ok := b.Current().File(PathLLMs)
	assert.True(t, ok)
}

func TestBuildCanceled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.builder(t).Build(ctx, "cli")
	require.ErrorIs(t, err, context.Canceled)
}
