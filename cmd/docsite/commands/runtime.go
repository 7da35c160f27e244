package commands

import (
	"errors"
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/eventstore"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/notify"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// runtime holds a builder and the optional collaborators enabled by the
// configuration.
type runtime struct {
	cfg     *config.Config
	builder *site.Builder
	metrics http.Handler
	closers []func() error
}

func newRuntime(cfg *config.Config, logger *slog.Logger) (*runtime, error) {
	builder, err := site.NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, builder: builder.WithLogger(logger)}

	if cfg.Metrics.Enabled {
		rec := metrics.NewPrometheusRecorder(nil)
		builder.WithRecorder(rec)
		rt.metrics = metrics.HTTPHandler(rec.Registry())
	}

	if cfg.History.Path != "" {
		store, err := eventstore.Open(cfg.History.Path)
		if err != nil {
			_ = rt.Close()
			return nil, err
		}
		builder.WithEventStore(store)
		rt.closers = append(rt.closers, store.Close)
	}

	if cfg.Notify.NATSURL != "" {
		n, err := notify.Connect(cfg.Notify.NATSURL, cfg.Notify.Subject, logger)
		if err != nil {
			// Builds still run without notifications.
			logger.Warn("Build notifications disabled", slog.String("url", cfg.Notify.NATSURL), logfields.Error(err))
		} else {
			builder.WithNotifier(n)
			rt.closers = append(rt.closers, n.Close)
		}
	}
	return rt, nil
}

// Close releases collaborators in reverse order of creation.
func (r *runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
