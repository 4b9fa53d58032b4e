// Package watch re-runs a callback when a configuration file changes on
// disk. Change bursts from editors (write + rename + chmod) are coalesced
// through a short debounce window so one save triggers one re-bind.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/pyrite/internal/ctxlog"
)

const debounce = 250 * time.Millisecond

// Watcher observes one file and invokes the callback after each settled
// change.
type Watcher struct {
	path     string
	onChange func(ctx context.Context)
}

// New creates a watcher for the given file. The callback runs on the
// watcher's own goroutine; runs are serialized.
func New(path string, onChange func(ctx context.Context)) *Watcher {
	return &Watcher{path: path, onChange: onChange}
}

// Run blocks, dispatching the callback on changes, until the context is
// canceled or the underlying watcher fails. The parent directory is
// watched rather than the file itself so atomic-rename saves keep working.
func (w *Watcher) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot start file watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	logger.Debug("Watching configuration file.", "path", w.path)

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)

		case <-pending:
			logger.Info("Configuration file changed, re-binding.", "path", w.path)
			w.onChange(ctx)
		}
	}
}
