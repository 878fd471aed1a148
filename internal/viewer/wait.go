package viewer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/retroview/mdaview/internal/logging"
)

// WaitForPipe blocks until pipePath exists, watching its parent directory
// for the creation event. SoftICE brings the pipe up after the VM starts,
// so the viewer is often launched first. Returns immediately if the pipe
// is already there; returns ctx.Err() on cancellation.
func WaitForPipe(ctx context.Context, pipePath string) error {
	if _, err := os.Stat(pipePath); err == nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create pipe watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(pipePath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	// The pipe may have appeared between the Stat and the watch.
	if _, err := os.Stat(pipePath); err == nil {
		return nil
	}
	logging.Debug("waiting for pipe %s", pipePath)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return errors.New("pipe watcher closed")
			}
			if ev.Op&fsnotify.Create != 0 && ev.Name == pipePath {
				logging.Debug("pipe %s appeared", pipePath)
				return nil
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return errors.New("pipe watcher closed")
			}
			return fmt.Errorf("watch %s: %w", dir, werr)
		}
	}
}
