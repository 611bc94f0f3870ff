package catalog

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 500 * time.Millisecond

// Watch reloads the store whenever the catalog file at path is written,
// created or renamed into place. It watches the parent directory so atomic
// replace-by-rename is seen. Watch returns once the watcher is running; it
// stops when ctx is done.
func Watch(ctx context.Context, store *Store, path string, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	target, err := filepath.Abs(path)
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	go func() {
		defer func() { _ = watcher.Close() }()

		timer := time.NewTimer(debounce)
		if !timer.Stop() {
			<-timer.C
		}

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				timer.Reset(debounce)
			case <-timer.C:
				if _, err := store.Reload(ctx); err != nil {
					log.Printf("[catalog] reload after change failed, keeping previous catalog: %v", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[catalog] watcher error: %v", err)
			}
		}
	}()

	return nil
}
