package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/erraggy/asynctools/logging"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events editors emit for one save.
const watchDebounce = 100 * time.Millisecond

// WatchFile calls onChange after each write to path until ctx is cancelled.
// The parent directory is watched so editors that save by rename are seen.
func WatchFile(ctx context.Context, path string, logger logging.Logger, onChange func()) error {
	logger = logging.OrNop(logger)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	logger.Info("watching document for changes", "path", absPath)

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("document changed", "event", event.Op.String(), "file", event.Name)
			timer.Reset(watchDebounce)

		case <-timer.C:
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", "error", err)
		}
	}
}
