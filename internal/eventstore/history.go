package eventstore

import (
	"context"
	"slices"
	"time"
)

// Build status values of a Summary.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Summary is the read model of one build.
type Summary struct {
	BuildID     string        `json:"build_id"`
	Trigger     string        `json:"trigger,omitempty"`
	Status      string        `json:"status"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at,omitzero"`
	Duration    time.Duration `json:"duration,omitempty"`
	Packages    int           `json:"packages"`
	CacheHits   int           `json:"cache_hits"`
	Pages       int           `json:"pages"`
	Written     int           `json:"written"`
	ErrorStage  string        `json:"error_stage,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// Summarize folds events into one summary per build, newest first.
// Events with an empty build id are ignored; undecodable payloads leave the
// affected fields unset.
func Summarize(events []Event) []Summary {
	byID := map[string]*Summary{}
	var order []string
	for _, e := range events {
		if e.BuildID == "" {
			continue
		}
		s, ok := byID[e.BuildID]
		if !ok {
			s = &Summary{BuildID: e.BuildID, Status: StatusRunning, StartedAt: e.Timestamp}
			byID[e.BuildID] = s
			order = append(order, e.BuildID)
		}
		apply(s, e)
	}

	// Reverse first so builds starting in the same millisecond keep newest first.
	out := make([]Summary, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		out = append(out, *byID[order[i]])
	}
	slices.SortStableFunc(out, func(a, b Summary) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
	return out
}

func apply(s *Summary, e Event) {
	switch e.Type {
	case TypeBuildStarted:
		s.StartedAt = e.Timestamp
		var p BuildStarted
		if e.Decode(&p) == nil {
			s.Trigger = p.Trigger
		}
	case TypePackageRendered:
		s.Packages++
		var p PackageRendered
		if e.Decode(&p) == nil && p.Cached {
			s.CacheHits++
		}
	case TypeBuildCompleted:
		s.finish(StatusCompleted, e.Timestamp)
		var p BuildCompleted
		if e.Decode(&p) == nil {
			s.Pages = p.Pages
			s.Written = p.Written
		}
	case TypeBuildFailed:
		s.finish(StatusFailed, e.Timestamp)
		var p BuildFailed
		if e.Decode(&p) == nil {
			s.ErrorStage = p.Stage
			s.Error = p.Error
		}
	}
}

func (s *Summary) finish(status string, at time.Time) {
	s.Status = status
	s.CompletedAt = at
	s.Duration = at.Sub(s.StartedAt)
}

// History returns up to limit build summaries recorded since t, newest first.
// A non-positive limit returns every build.
func History(ctx context.Context, store Store, since time.Time, limit int) ([]Summary, error) {
	events, err := store.Since(ctx, since)
	if err != nil {
		return nil, err
	}
	out := Summarize(events)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
