package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

func TestNewPolicyOverrides(t *testing.T) {
	p := NewPolicy(Fixed, 5*time.Second, 2*time.Second, 5)
	assert.Equal(t, Policy{Mode: Fixed, Initial: 2 * time.Second, Max: 2 * time.Second, MaxRetries: 5}, p)

	assert.Equal(t, DefaultPolicy(), NewPolicy("bogus", 0, 0, -1))
	assert.Equal(t, 0, NewPolicy("", 0, 0, 0).MaxRetries)
}

func TestDelayModes(t *testing.T) {
	ms := time.Millisecond
	tests := []struct {
		name   string
		policy Policy
		want   []time.Duration
	}{
		{"fixed", NewPolicy(Fixed, 100*ms, 500*ms, 3), []time.Duration{100 * ms, 100 * ms, 100 * ms}},
		{"linear", NewPolicy(Linear, 100*ms, 250*ms, 4), []time.Duration{100 * ms, 200 * ms, 250 * ms, 250 * ms}},
		{"exponential", NewPolicy(Exponential, 100*ms, 500*ms, 5), []time.Duration{100 * ms, 200 * ms, 400 * ms, 500 * ms, 500 * ms}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Zero(t, tt.policy.Delay(0))
			for i, want := range tt.want {
				assert.Equal(t, want, tt.policy.Delay(i+1), "retry %d", i+1)
			}
		})
	}
}

func TestDoRetriesRetryableErrors(t *testing.T) {
	p := NewPolicy(Fixed, time.Millisecond, time.Millisecond, 3)
	calls := 0
	var retries []int
	err := p.Do(t.Context(), func(context.Context) error {
		calls++
		if calls < 3 {
			return derrors.SourceError("clone failed").Build()
		}
		return nil
	}, func(retry int, _ time.Duration, _ error) { retries = append(retries, retry) })

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retries)
}

func TestDoStopsOnPermanentError(t *testing.T) {
	p := NewPolicy(Fixed, time.Millisecond, time.Millisecond, 3)
	calls := 0
	plain := errors.New("plain")
	err := p.Do(t.Context(), func(context.Context) error { calls++; return plain }, nil)
	assert.ErrorIs(t, err, plain)
	assert.Equal(t, 1, calls)
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	p := NewPolicy(Fixed, time.Millisecond, time.Millisecond, 2)
	calls := 0
	err := p.Do(t.Context(), func(context.Context) error {
		calls++
		return derrors.SourceError("still down").Build()
	}, nil)
	assert.True(t, derrors.HasCategory(err, derrors.CategorySource))
	assert.Equal(t, 3, calls)
}

func TestDoHonorsCancellation(t *testing.T) {
	p := NewPolicy(Fixed, time.Hour, time.Hour, 1)
	ctx, cancel := context.WithCancel(t.Context())
	err := p.Do(ctx, func(context.Context) error {
		cancel()
		return derrors.SourceError("down").Build()
	}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestZeroPolicyRunsOnce(t *testing.T) {
	calls := 0
	_ = Policy{}.Do(t.Context(), func(context.Context) error {
		calls++
		return derrors.SourceError("down").Build()
	}, nil)
	assert.Equal(t, 1, calls)
}
