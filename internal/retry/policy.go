// Package retry implements backoff policies for transient failures.
package retry

import (
	"context"
	"time"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Mode selects how delays grow between attempts.
type Mode string

const (
	Fixed       Mode = "fixed"
	Linear      Mode = "linear"
	Exponential Mode = "exponential"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case Fixed, Linear, Exponential:
		return true
	}
	return false
}

// Policy holds backoff settings. The zero value runs an operation once.
type Policy struct {
	Mode       Mode
	Initial    time.Duration
	Max        time.Duration
	MaxRetries int // retries after the first failure
}

// DefaultPolicy is linear from 1s, capped at 30s, with 2 retries.
func DefaultPolicy() Policy {
	return Policy{Mode: Linear, Initial: time.Second, Max: 30 * time.Second, MaxRetries: 2}
}

// NewPolicy overlays the given fields on DefaultPolicy. Zero durations,
// unknown modes and negative retry counts keep the default.
func NewPolicy(mode Mode, initial, maxDelay time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDelay > 0 {
		p.Max = maxDelay
	}
	if mode.Valid() {
		p.Mode = mode
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the wait before the given retry (1-based).
func (p Policy) Delay(retry int) time.Duration {
	if retry <= 0 {
		return 0
	}
	var d time.Duration
	switch p.Mode {
	case Fixed:
		d = p.Initial
	case Exponential:
		d = p.Initial
		for i := 1; i < retry && (p.Max <= 0 || d < p.Max); i++ {
			d *= 2
		}
	default:
		d = time.Duration(retry) * p.Initial
	}
	if p.Max > 0 && d > p.Max {
		return p.Max
	}
	return d
}

// Do runs fn until it succeeds, fails with an error that is not retryable,
// or the retries are spent. onRetry, if set, is called before each wait.
// Cancellation of ctx during a wait returns ctx.Err().
func (p Policy) Do(ctx context.Context, fn func(context.Context) error, onRetry func(retry int, delay time.Duration, err error)) error {
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil || attempt >= p.MaxRetries || !Retryable(err) {
			return err
		}
		delay := p.Delay(attempt + 1)
		if onRetry != nil {
			onRetry(attempt+1, delay, err)
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Retryable reports whether err is a classified error that asks for a retry.
func Retryable(err error) bool {
	c, ok := derrors.AsClassified(err)
	return ok && c.CanRetry()
}
