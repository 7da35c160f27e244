package source

import (
	"context"
	"os"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Local is a directory on disk.
type Local struct {
	name string
	dir  string
}

// NewLocal returns a source reading dir.
func NewLocal(name, dir string) *Local {
	return &Local{name: name, dir: dir}
}

func (l *Local) Name() string { return l.name }

// Dir returns the watched directory.
func (l *Local) Dir() string { return l.dir }

func (l *Local) Sync(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	info, err := os.Stat(l.dir)
	if err != nil {
		return Snapshot{}, derrors.WrapError(err, derrors.CategoryNotFound, "source directory not found").
			WithContext("source", l.name).
			WithContext("path", l.dir).
			Build()
	}
	if !info.IsDir() {
		return Snapshot{}, derrors.ValidationError("source path is not a directory").
			WithContext("source", l.name).
			WithContext("path", l.dir).
			Build()
	}
	return Snapshot{Dir: l.dir}, nil
}
