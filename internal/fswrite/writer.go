// SPDX-License-Identifier: MPL-2.0

package fswrite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/afero"
)

const (
	// Unchanged means the file already held the desired content.
	Unchanged Outcome = iota
	// Created means the file did not exist.
	Created
	// Updated means the file existed with different content.
	Updated
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

type (
	// Outcome describes what Write did (or, in dry-run mode, would do).
	Outcome int

	// Stats counts outcomes across every Write call of a Writer.
	Stats struct {
		Created   int64
		Updated   int64
		Unchanged int64
	}

	// Writer performs compare-and-write file updates on an afero filesystem.
	// It is safe for concurrent use on distinct paths.
	Writer struct {
		fs     afero.Fs
		dryRun bool

		created   atomic.Int64
		updated   atomic.Int64
		unchanged atomic.Int64
	}

	// Option configures a Writer.
	Option func(*Writer)
)

// WithDryRun makes Write report outcomes without touching the filesystem.
func WithDryRun(dryRun bool) Option {
	return func(w *Writer) {
		w.dryRun = dryRun
	}
}

// New returns a Writer over fsys.
func New(fsys afero.Fs, opts ...Option) *Writer {
	w := &Writer{fs: fsys}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewOS returns a Writer over the host filesystem.
func NewOS(opts ...Option) *Writer {
	return New(afero.NewOsFs(), opts...)
}

// Fs returns the filesystem the Writer operates on.
func (w *Writer) Fs() afero.Fs {
	return w.fs
}

// DryRun reports whether the Writer is in dry-run mode.
func (w *Writer) DryRun() bool {
	return w.dryRun
}

// Write makes the file at path hold content. Parent directories are created
// as needed. An existing file with identical bytes is left untouched.
func (w *Writer) Write(ctx context.Context, path string, content []byte) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Unchanged, err
	}

	outcome := Created
	existing, err := afero.ReadFile(w.fs, path)
	switch {
	case err == nil:
		if bytes.Equal(existing, content) {
			w.unchanged.Add(1)
			return Unchanged, nil
		}
		outcome = Updated
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Unchanged, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !w.dryRun {
		if err := w.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
			return Unchanged, fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
		if err := w.replace(path, content); err != nil {
			return Unchanged, err
		}
	}

	if outcome == Created {
		w.created.Add(1)
	} else {
		w.updated.Add(1)
	}
	return outcome, nil
}

// WriteString is Write for string content.
func (w *Writer) WriteString(ctx context.Context, path, content string) (Outcome, error) {
	return w.Write(ctx, path, []byte(content))
}

// replace writes content to a temporary sibling and renames it over path,
// so readers never observe a partially written file.
func (w *Writer) replace(path string, content []byte) error {
	tmp, err := afero.TempFile(w.fs, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = w.fs.Remove(tmpPath) // Best-effort cleanup
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.fs.Chmod(tmpPath, filePerm); err != nil {
		_ = w.fs.Remove(tmpPath) // Best-effort cleanup
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := w.fs.Rename(tmpPath, path); err != nil {
		_ = w.fs.Remove(tmpPath) // Best-effort cleanup
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Stats returns the outcome counters accumulated so far.
func (w *Writer) Stats() Stats {
	return Stats{
		Created:   w.created.Load(),
		Updated:   w.updated.Load(),
		Unchanged: w.unchanged.Load(),
	}
}

// Sub returns the counts accumulated since earlier was taken.
func (s Stats) Sub(earlier Stats) Stats {
	return Stats{
		Created:   s.Created - earlier.Created,
		Updated:   s.Updated - earlier.Updated,
		Unchanged: s.Unchanged - earlier.Unchanged,
	}
}

// Writes returns how many files were (or would be) written.
func (s Stats) Writes() int64 {
	return s.Created + s.Updated
}

// Changed reports whether the outcome implies a write.
func (o Outcome) Changed() bool {
	return o != Unchanged
}

// String returns a lowercase label for the outcome.
func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}
