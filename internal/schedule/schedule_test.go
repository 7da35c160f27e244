package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

func TestNewRejectsNonPositiveInterval(t *testing.T) {
	_, err := New(0, func(context.Context) error { return nil }, nil)
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
}

func TestRunExecutesTaskPeriodically(t *testing.T) {
	var runs atomic.Int32
	r, err := New(50*time.Millisecond, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		runs.Add(1)
		return nil
	}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, r.JobID())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("refresher did not stop")
	}
}
