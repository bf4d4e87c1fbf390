package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultRetainDays is how many rotated files are kept when the
// configuration does not say otherwise.
const DefaultRetainDays = 10

// RotatingWriter is an io.Writer that rotates the target file at local
// midnight. The live file keeps its configured name; on rotation it is
// renamed with a ".YYYY-MM-DD" suffix for the day it covers, and suffixed
// files older than the retention window are removed.
type RotatingWriter struct {
	mu         sync.Mutex
	path       string
	retainDays int
	file       *os.File
	day        time.Time // midnight of the day the open file belongs to

	now func() time.Time // injected in tests
}

// NewRotatingWriter opens (or creates) the log file at path, creating
// parent directories as needed.
func NewRotatingWriter(path string, retainDays int) (*RotatingWriter, error) {
	if retainDays <= 0 {
		retainDays = DefaultRetainDays
	}
	w := &RotatingWriter{
		path:       path,
		retainDays: retainDays,
		now:        time.Now,
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

// Write appends p to the current file, rotating first if the day has
// changed since the file was opened.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if today := midnight(w.now()); today.After(w.day) {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}
	return w.file.Write(p)
}

// Close closes the underlying file.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

func (w *RotatingWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", w.path, err)
	}
	w.file = f
	w.day = midnight(w.now())
	return nil
}

// rotate renames the live file with the suffix of the day it covers and
// reopens a fresh one. Callers hold w.mu.
func (w *RotatingWriter) rotate() error {
	if w.file != nil {
		w.file.Close()
		w.file = nil
	}
	rotated := w.path + "." + w.day.Format("2006-01-02")
	if err := os.Rename(w.path, rotated); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rotating log file: %w", err)
	}
	w.prune()
	return w.open()
}

// prune removes rotated files beyond the retention window. Errors are
// ignored; pruning is best effort.
func (w *RotatingWriter) prune() {
	matches, err := filepath.Glob(w.path + ".*")
	if err != nil {
		return
	}
	cutoff := midnight(w.now()).AddDate(0, 0, -w.retainDays)

	sort.Strings(matches)
	for _, m := range matches {
		suffix := strings.TrimPrefix(m, w.path+".")
		day, err := time.ParseInLocation("2006-01-02", suffix, time.Local)
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			os.Remove(m)
		}
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
