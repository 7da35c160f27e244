package eventstore

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Store persists build events.
type Store interface {
	Append(ctx context.Context, events ...Event) error
	ByBuild(ctx context.Context, buildID string) ([]Event, error)
	// Since returns events at or after t in append order.
	Since(ctx context.Context, t time.Time) ([]Event, error)
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the event database at path.
// Use ":memory:" for an in-memory database.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryEventStore, "could not open event store database").
			WithContext("path", path).
			Build()
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, derrors.WrapError(err, derrors.CategoryEventStore, "failed to initialize event store schema").
			WithContext("path", path).
			Build()
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		payload BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_build_id ON events(build_id);
	CREATE INDEX IF NOT EXISTS idx_timestamp ON events(timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores events in one transaction.
func (s *SQLiteStore) Append(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return appendError(err)
	}
	for _, e := range events {
		ts := e.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		payload := []byte(e.Payload)
		if payload == nil {
			payload = []byte("null")
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO events (build_id, event_type, timestamp, payload) VALUES (?, ?, ?, ?)",
			e.BuildID, string(e.Type), ts.UnixMilli(), payload,
		); err != nil {
			_ = tx.Rollback()
			return appendError(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return appendError(err)
	}
	return nil
}

func appendError(err error) error {
	return derrors.WrapError(err, derrors.CategoryEventStore, "failed to append event to store").Build()
}

// ByBuild returns every event of one build in append order.
func (s *SQLiteStore) ByBuild(ctx context.Context, buildID string) ([]Event, error) {
	return s.query(ctx,
		"SELECT id, build_id, event_type, timestamp, payload FROM events WHERE build_id = ? ORDER BY id",
		buildID,
	)
}

func (s *SQLiteStore) Since(ctx context.Context, t time.Time) ([]Event, error) {
	return s.query(ctx,
		"SELECT id, build_id, event_type, timestamp, payload FROM events WHERE timestamp >= ? ORDER BY id",
		t.UnixMilli(),
	)
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...any) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryEventStore, "failed to query events from store").Build()
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e       Event
			typ     string
			ms      int64
			payload []byte
		)
		if err := rows.Scan(&e.ID, &e.BuildID, &typ, &ms, &payload); err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryEventStore, "failed to scan event rows").Build()
		}
		e.Type = Type(typ)
		e.Timestamp = time.UnixMilli(ms).UTC()
		e.Payload = payload
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryEventStore, "failed to scan event rows").Build()
	}
	return events, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
