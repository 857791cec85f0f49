// Package viz writes human-readable planner search traces, one file per
// run, for offline inspection.
package viz

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"asv-planner/internal/nav"
)

// Writer appends search events to a run-scoped log file. A nil Writer is
// valid and discards everything.
type Writer struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// Open creates a visualization log under dir named by a fresh run id.
func Open(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, fmt.Sprintf("search-%s.log", uuid.New().String()))
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{f: f, path: path}, nil
}

// Path returns the log file path.
func (w *Writer) Path() string {
	if w == nil {
		return ""
	}
	return w.path
}

// BeginIteration marks the start of an outer anytime iteration.
func (w *Writer) BeginIteration(n int) {
	w.emit("iteration %d", n)
}

// Vertex records a search vertex with its cost breakdown.
func (w *Writer) Vertex(tag string, s nav.State, f, g, h float64) {
	w.emit("%s %s f=%.3f g=%.3f h=%.3f", tag, s, f, g, h)
}

// Note records a free-form line.
func (w *Writer) Note(format string, args ...any) {
	w.emit(format, args...)
}

func (w *Writer) emit(format string, args ...any) {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.f, format+"\n", args...)
}

// Close flushes and closes the log.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}
