package eventstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

const testBuildID = "build-123"

func openMemory(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func mustEvent(t *testing.T, buildID string, typ Type, payload any) Event {
	t.Helper()
	e, err := NewEvent(buildID, typ, payload)
	require.NoError(t, err)
	return e
}

func TestStore_AppendAndByBuild(t *testing.T) {
	store := openMemory(t)
	ctx := t.Context()

	started := mustEvent(t, testBuildID, TypeBuildStarted, BuildStarted{Trigger: "cli", Sources: []string{"local"}})
	require.NoError(t, store.Append(ctx, started, mustEvent(t, "other", TypeBuildStarted, BuildStarted{})))

	events, err := store.ByBuild(ctx, testBuildID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Positive(t, events[0].ID)
	assert.Equal(t, TypeBuildStarted, events[0].Type)
	assert.WithinDuration(t, started.Timestamp, events[0].Timestamp, time.Millisecond)

	var p BuildStarted
	require.NoError(t, events[0].Decode(&p))
	assert.Equal(t, BuildStarted{Trigger: "cli", Sources: []string{"local"}}, p)
}

func TestStore_Since(t *testing.T) {
	store := openMemory(t)
	ctx := t.Context()

	old := mustEvent(t, "b1", TypeBuildStarted, BuildStarted{})
	old.Timestamp = time.Now().Add(-48 * time.Hour)
	recent := mustEvent(t, "b2", TypeBuildStarted, BuildStarted{})
	require.NoError(t, store.Append(ctx, old, recent))

	events, err := store.Since(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "b2", events[0].BuildID)

	all, err := store.Since(ctx, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_AppendNothing(t *testing.T) {
	require.NoError(t, openMemory(t).Append(t.Context()))
}

func TestEvent_DecodeError(t *testing.T) {
	e := Event{BuildID: "b", Type: TypeBuildFailed, Payload: []byte("{")}
	var p BuildFailed
	err := e.Decode(&p)
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryEventStore))
}

func TestNewEvent_MarshalError(t *testing.T) {
	_, err := NewEvent("b", TypeBuildStarted, make(chan int))
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryEventStore))
}
