package eventstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, e Event, ts time.Time) Event {
	t.Helper()
	e.Timestamp = ts
	return e
}

func TestSummarize(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []Event{
		at(t, mustEvent(t, "b1", TypeBuildStarted, BuildStarted{Trigger: "cli"}), base),
		at(t, mustEvent(t, "b1", TypePackageRendered, PackageRendered{Package: "core"}), base.Add(time.Second)),
		at(t, mustEvent(t, "b1", TypePackageRendered, PackageRendered{Package: "http", Cached: true}), base.Add(time.Second)),
		at(t, mustEvent(t, "b1", TypeBuildCompleted, BuildCompleted{Packages: 2, Pages: 3, Written: 4}), base.Add(3*time.Second)),
		at(t, mustEvent(t, "b2", TypeBuildStarted, BuildStarted{Trigger: "watch"}), base.Add(time.Minute)),
		at(t, mustEvent(t, "b2", TypeBuildFailed, BuildFailed{Stage: "load", Error: "boom"}), base.Add(time.Minute+time.Second)),
		at(t, mustEvent(t, "b3", TypeBuildStarted, BuildStarted{Trigger: "schedule"}), base.Add(2*time.Minute)),
		{Type: TypeBuildStarted},
	}

	got := Summarize(events)
	require.Len(t, got, 3)

	assert.Equal(t, "b3", got[0].BuildID)
	assert.Equal(t, StatusRunning, got[0].Status)
	assert.True(t, got[0].CompletedAt.IsZero())

	assert.Equal(t, StatusFailed, got[1].Status)
	assert.Equal(t, "load", got[1].ErrorStage)
	assert.Equal(t, "boom", got[1].Error)
	assert.Equal(t, time.Second, got[1].Duration)

	assert.Equal(t, Summary{
		BuildID: "b1", Trigger: "cli", Status: StatusCompleted,
		StartedAt: base, CompletedAt: base.Add(3 * time.Second), Duration: 3 * time.Second,
		Packages: 2, CacheHits: 1, Pages: 3, Written: 4,
	}, got[2])
}

func TestHistory_Limit(t *testing.T) {
	store := openMemory(t)
	ctx := t.Context()
	now := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		e := mustEvent(t, id, TypeBuildStarted, BuildStarted{})
		e.Timestamp = now.Add(time.Duration(i) * time.Second)
		require.NoError(t, store.Append(ctx, e))
	}

	got, err := History(ctx, store, time.Time{}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].BuildID)
	assert.Equal(t, "b", got[1].BuildID)

	all, err := History(ctx, store, time.Time{}, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
