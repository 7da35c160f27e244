// Package schedule periodically refreshes git sources and rebuilds the site.
package schedule

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Task is the scheduled work; it receives the context passed to Run.
type Task func(ctx context.Context) error

// Refresher runs a task on a fixed interval. A run still in progress when the
// next one is due is not overlapped; the due run is rescheduled.
type Refresher struct {
	scheduler gocron.Scheduler
	interval  time.Duration
	task      Task
	logger    *slog.Logger

	mu  sync.Mutex
	ctx context.Context
	id  string
}

// New creates a refresher. The interval must be positive.
func New(interval time.Duration, task Task, logger *slog.Logger) (*Refresher, error) {
	if interval <= 0 {
		return nil, derrors.ConfigError("refresh interval must be positive").
			WithContext("interval", interval.String()).
			Build()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRuntime, "failed to create scheduler").Build()
	}

	r := &Refresher{scheduler: s, interval: interval, task: task, logger: logger, ctx: context.Background()}
	job, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(r.execute),
		gocron.WithName("source-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, derrors.WrapError(err, derrors.CategoryRuntime, "failed to schedule refresh job").Build()
	}
	r.id = job.ID().String()
	return r, nil
}

// JobID identifies the scheduled job.
func (r *Refresher) JobID() string { return r.id }

// Run starts the scheduler and blocks until ctx is canceled.
func (r *Refresher) Run(ctx context.Context) error {
	r.mu.Lock()
	r.ctx = ctx
	r.mu.Unlock()

	r.logger.Info("Starting scheduled refresh", slog.Duration("interval", r.interval))
	r.scheduler.Start()
	<-ctx.Done()

	r.logger.Info("Stopping scheduled refresh")
	if err := r.scheduler.Shutdown(); err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "failed to stop scheduler").Build()
	}
	return nil
}

func (r *Refresher) execute() {
	r.mu.Lock()
	ctx := r.ctx
	r.mu.Unlock()
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	r.logger.Info("Executing scheduled refresh")
	if err := r.task(ctx); err != nil {
		r.logger.Error("Scheduled refresh failed", logfields.Error(err))
		return
	}
	r.logger.Debug("Scheduled refresh finished",
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
}
