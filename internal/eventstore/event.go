// Package eventstore persists site build events in SQLite and projects them
// into a build history.
package eventstore

import (
	"encoding/json"
	"time"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Type names a build event.
type Type string

const (
	TypeBuildStarted    Type = "build.started"
	TypePackageRendered Type = "package.rendered"
	TypeBuildCompleted  Type = "build.completed"
	TypeBuildFailed     Type = "build.failed"
)

// Event is one stored build event. ID is assigned by the store on append.
type Event struct {
	ID        int64           `json:"id"`
	BuildID   string          `json:"build_id"`
	Type      Type            `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return derrors.WrapError(err, derrors.CategoryEventStore, "failed to decode event payload").
			WithContext("build_id", e.BuildID).
			WithContext("type", string(e.Type)).
			Build()
	}
	return nil
}

// BuildStarted is the payload of TypeBuildStarted.
type BuildStarted struct {
	// Trigger is what caused the build: cli, serve, watch or refresh.
	Trigger string   `json:"trigger"`
	Sources []string `json:"sources,omitempty"`
}

// PackageRendered is the payload of TypePackageRendered.
type PackageRendered struct {
	Package    string `json:"package"`
	Version    string `json:"version,omitempty"`
	Cached     bool   `json:"cached"`
	DurationMS int64  `json:"duration_ms"`
	// Links counts collected type references by classification.
	Links map[string]int `json:"links,omitempty"`
}

// BuildCompleted is the payload of TypeBuildCompleted.
type BuildCompleted struct {
	Packages   int   `json:"packages"`
	Pages      int   `json:"pages"`
	Written    int   `json:"written"`
	Unchanged  int   `json:"unchanged"`
	DurationMS int64 `json:"duration_ms"`
}

// BuildFailed is the payload of TypeBuildFailed.
type BuildFailed struct {
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// NewEvent builds an event stamped with the current time.
func NewEvent(buildID string, typ Type, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, derrors.WrapError(err, derrors.CategoryEventStore, "failed to marshal event payload").
			WithContext("build_id", buildID).
			WithContext("type", string(typ)).
			Build()
	}
	return Event{BuildID: buildID, Type: typ, Timestamp: time.Now().UTC(), Payload: raw}, nil
}
