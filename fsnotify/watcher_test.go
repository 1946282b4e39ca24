package fsnotify_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/themecheck/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Watch(t *testing.T) {
	t.Parallel()

	t.Run("calls back after the file changes", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ThemeContext.jsx")
		require.NoError(t, os.WriteFile(path, []byte("v0"), 0644))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var calls atomic.Int32
		done := make(chan error, 1)
		w := &fsnotify.Watcher{Debounce: 20 * time.Millisecond}
		go func() {
			done <- w.Watch(ctx, path, func() error {
				calls.Add(1)
				return nil
			})
		}()

		// The watch may not be registered yet; keep writing until seen.
		require.Eventually(t, func() bool {
			_ = os.WriteFile(path, []byte(time.Now().String()), 0644)
			return calls.Load() > 0
		}, 5*time.Second, 50*time.Millisecond)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Watch did not return after cancel")
		}
	})

	t.Run("ignores other files in the directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "ThemeContext.jsx")
		require.NoError(t, os.WriteFile(path, []byte("v0"), 0644))

		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()

		var calls atomic.Int32
		var writers sync.WaitGroup
		writers.Add(1)
		go func() {
			defer writers.Done()
			for ctx.Err() == nil {
				_ = os.WriteFile(filepath.Join(dir, "other.js"), []byte(time.Now().String()), 0644)
				time.Sleep(10 * time.Millisecond)
			}
		}()

		w := &fsnotify.Watcher{Debounce: 20 * time.Millisecond}
		err := w.Watch(ctx, path, func() error {
			calls.Add(1)
			return nil
		})
		writers.Wait()
		require.NoError(t, err)
		assert.Zero(t, calls.Load())
	})

	t.Run("stops on the first callback error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ThemeContext.jsx")
		require.NoError(t, os.WriteFile(path, []byte("v0"), 0644))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errBoom := errors.New("boom")
		done := make(chan error, 1)
		w := &fsnotify.Watcher{Debounce: 20 * time.Millisecond}
		go func() {
			done <- w.Watch(ctx, path, func() error { return errBoom })
		}()

		var err error
		require.Eventually(t, func() bool {
			_ = os.WriteFile(path, []byte(time.Now().String()), 0644)
			select {
			case err = <-done:
				return true
			default:
				return false
			}
		}, 5*time.Second, 50*time.Millisecond)
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "ThemeContext.jsx")
		err := fsnotify.NewWatcher().Watch(context.Background(), path, func() error { return nil })
		require.Error(t, err)
	})
}
