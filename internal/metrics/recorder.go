package metrics

import "time"

// BuildOutcomeLabel enumerates final build states.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// Format labels for render metrics.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Recorder defines observability hooks for builds and package renders.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	ObserveRenderDuration(format string, d time.Duration)
	IncPackagesRendered(format string)
	IncCacheResult(hit bool)
	// AddLinks counts collected type references by classification.
	AddLinks(class string, n int)
	SetPackages(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration)          {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)           {}
func (NoopRecorder) ObserveRenderDuration(string, time.Duration) {}
func (NoopRecorder) IncPackagesRendered(string)                  {}
func (NoopRecorder) IncCacheResult(bool)                         {}
func (NoopRecorder) AddLinks(string, int)                        {}
func (NoopRecorder) SetPackages(int)                             {}
