package site

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/inful/mdfp"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// ManifestFileName is written at the output root.
const ManifestFileName = "manifest.json"

// Manifest maps output paths (slash separated, relative to the output root)
// to their content fingerprints.
type Manifest struct {
	BuildID     string            `json:"build_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Files       map[string]string `json:"files"`
}

// Fingerprint is the mdfp fingerprint of an output body.
func Fingerprint(content []byte) string {
	return mdfp.CalculateFingerprintFromParts("", string(content))
}

// LoadManifest reads the manifest in dir. A missing manifest yields an empty one.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)
	// #nosec G304 -- path is under the configured output directory.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Manifest{Files: map[string]string{}}, nil
		}
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read manifest").
			WithContext("path", path).
			Build()
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryValidation, "failed to parse manifest").
			WithContext("path", path).
			Build()
	}
	if m.Files == nil {
		m.Files = map[string]string{}
	}
	return &m, nil
}

// writer writes outputs under root, skipping files whose fingerprint matches
// the previous manifest and whose file still exists.
type writer struct {
	root      string
	previous  *Manifest
	next      *Manifest
	written   int
	unchanged int
}

func newWriter(root, buildID string) (*writer, error) {
	prev, err := LoadManifest(root)
	if err != nil {
		return nil, err
	}
	return &writer{
		root:     root,
		previous: prev,
		next: &Manifest{
			BuildID:     buildID,
			GeneratedAt: time.Now().UTC(),
			Files:       make(map[string]string),
		},
	}, nil
}

// resolve maps a slash separated output path to a file under root. Paths
// that would leave root are rejected.
func (w *writer) resolve(rel string) (string, bool) {
	local := filepath.FromSlash(rel)
	if !filepath.IsLocal(local) {
		return "", false
	}
	return filepath.Join(w.root, local), true
}

func (w *writer) write(rel string, content []byte) error {
	full, ok := w.resolve(rel)
	if !ok {
		return derrors.ValidationError("output path escapes the output directory").
			WithContext("path", rel).
			Build()
	}
	fp := Fingerprint(content)
	w.next.Files[rel] = fp

	if w.previous.Files[rel] == fp {
		if _, err := os.Stat(full); err == nil {
			w.unchanged++
			return nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", full).
			Build()
	}
	// #nosec G306 -- generated site files are meant to be served.
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write output").
			WithContext("path", full).
			Build()
	}
	w.written++
	return nil
}

// removeStale deletes files listed in the previous manifest that this build
// did not produce, then prunes directories left empty. Manifest entries
// pointing outside root are ignored.
func (w *writer) removeStale() (int, error) {
	var stale []string
	for rel := range w.previous.Files {
		if _, ok := w.next.Files[rel]; !ok {
			stale = append(stale, rel)
		}
	}
	slices.Sort(stale)

	removed := 0
	for _, rel := range stale {
		full, ok := w.resolve(rel)
		if !ok {
			continue
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to remove stale output").
				WithContext("path", full).
				Build()
		}
		removed++
		w.pruneEmptyDirs(filepath.Dir(full))
	}
	return removed, nil
}

func (w *writer) pruneEmptyDirs(dir string) {
	root := filepath.Clean(w.root) + string(filepath.Separator)
	for strings.HasPrefix(dir, root) {
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

func (w *writer) saveManifest() error {
	data, err := json.MarshalIndent(w.next, "", "  ")
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to encode manifest").Build()
	}
	path := filepath.Join(w.root, ManifestFileName)
	// #nosec G306 -- generated site files are meant to be served.
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write manifest").
			WithContext("path", path).
			Build()
	}
	return nil
}
