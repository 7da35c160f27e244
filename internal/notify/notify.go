// Package notify publishes build notifications on NATS.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// BuildCompleted is the JSON body published after every successful build.
type BuildCompleted struct {
	BuildID     string            `json:"build_id"`
	Site        string            `json:"site"`
	Trigger     string            `json:"trigger"`
	Packages    []string          `json:"packages"`
	Pages       int               `json:"pages"`
	Written     int               `json:"written"`
	Unchanged   int               `json:"unchanged"`
	DurationMS  int64             `json:"duration_ms"`
	Revisions   map[string]string `json:"revisions,omitempty"`
	CompletedAt time.Time         `json:"completed_at"`
}

// Notifier receives build notifications.
type Notifier interface {
	BuildCompleted(ctx context.Context, msg BuildCompleted) error
	Close() error
}

// conn is the subset of *nats.Conn used for publishing.
type conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// NATS publishes to a single subject.
type NATS struct {
	conn    conn
	subject string
	logger  *slog.Logger
}

// Connect dials url. Reconnects are handled by the client library.
func Connect(url, subject string, logger *slog.Logger) (*NATS, error) {
	if logger == nil {
		logger = slog.Default()
	}
	nc, err := nats.Connect(url,
		nats.Name("docsite"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryNetwork, "failed to connect to NATS").
			Retryable().
			WithContext("url", url).
			Build()
	}
	logger.Info("NATS notifications enabled", slog.String("url", url), slog.String("subject", subject))
	return newNATS(nc, subject, logger), nil
}

func newNATS(c conn, subject string, logger *slog.Logger) *NATS {
	if logger == nil {
		logger = slog.Default()
	}
	return &NATS{conn: c, subject: subject, logger: logger}
}

// BuildCompleted publishes msg and waits for the server to acknowledge the flush.
func (n *NATS) BuildCompleted(ctx context.Context, msg BuildCompleted) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to encode notification").Build()
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		return derrors.WrapError(err, derrors.CategoryNetwork, "failed to publish notification").
			Retryable().
			WithContext("subject", n.subject).
			Build()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return derrors.WrapError(err, derrors.CategoryNetwork, "failed to flush notification").
			Retryable().
			WithContext("subject", n.subject).
			Build()
	}
	n.logger.Debug("Published build notification",
		logfields.BuildID(msg.BuildID),
		slog.String("subject", n.subject))
	return nil
}

func (n *NATS) Close() error {
	n.conn.Close()
	return nil
}

// Nop discards notifications.
type Nop struct{}

func (Nop) BuildCompleted(context.Context, BuildCompleted) error { return nil }
func (Nop) Close() error                                         { return nil }
