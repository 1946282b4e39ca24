// Package fsnotify watches the theme source for changes using the fsnotify
// library.
package fsnotify

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/fwojciec/themecheck"
)

// Compile-time interface verification.
var _ themecheck.Watcher = (*Watcher)(nil)

// DefaultDebounce is how long a burst of events must be quiet before the
// callback runs.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports debounced changes to a single file.
type Watcher struct {
	Debounce time.Duration
}

// NewWatcher creates a watcher with the default debounce interval.
func NewWatcher() *Watcher {
	return &Watcher{Debounce: DefaultDebounce}
}

// Watch calls fn after each burst of changes to the file at path. The
// parent directory is watched, so editors that replace the file by rename
// are seen. Watch returns nil once ctx is done, or the first error from
// fn or the underlying watcher.
func (w *Watcher) Watch(ctx context.Context, path string, fn func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !isRelevant(event, abs) {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			if err := fn(); err != nil {
				return err
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", path, err)

		case <-ctx.Done():
			return nil
		}
	}
}

// isRelevant reports whether event changed the contents of the file at
// path.
func isRelevant(event fsnotify.Event, path string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == path
}
