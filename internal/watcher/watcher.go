// Package watcher re-ingests the data directory when files change.
// Filesystem events are debounced so editors that write in bursts
// trigger a single ingestion pass.
package watcher

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driving"
	"github.com/alejandro-ao/rag-mcp/internal/logger"
)

// DefaultDebounce is the quiet period after the last event before an
// ingestion pass runs.
const DefaultDebounce = 2 * time.Second

// Watcher observes a directory tree and triggers ingestion passes.
type Watcher struct {
	ingest   driving.IngestService
	debounce time.Duration
}

// New creates a watcher. A zero debounce uses DefaultDebounce.
func New(ingest driving.IngestService, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{ingest: ingest, debounce: debounce}
}

// Watch blocks watching dir until the context is cancelled. New
// subdirectories are added to the watch as they appear. Ingestion
// failures are logged; the watch keeps running.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := addRecursive(fsw, dir); err != nil {
		return err
	}

	logger.Info("watching %s for changes", dir)

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if isHidden(event.Name) {
				continue
			}

			// Watch directories created after startup.
			if event.Op.Has(fsnotify.Create) {
				if err := addRecursive(fsw, event.Name); err == nil {
					logger.Debug("watching new path %s", event.Name)
				}
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-pending:
			pending = nil
			w.ingest.AutoIngest(ctx)
		}
	}
}

// addRecursive watches dir and every non-hidden subdirectory.
// Non-directories are ignored.
func addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || !entry.IsDir() {
			return nil //nolint:nilerr // transient entries disappear mid-walk
		}
		if isHidden(path) && path != dir {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

// isHidden reports whether any path element starts with a dot.
func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
