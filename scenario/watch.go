package scenario

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/arplane"
)

// Watch loads the scenario at path, calls fn with the result, and calls it
// again every time the file is written or recreated. Load errors are passed
// to fn and do not stop the watch.
//
// The parent directory is watched rather than the file so that editors that
// save by renaming a temporary file are picked up.
//
// Watch blocks until ctx is done and then returns nil.
func Watch(ctx context.Context, path string, fn func(*Scenario, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("scenario: watch: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scenario: watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("scenario: watch %s: %w", filepath.Dir(abs), err)
	}

	fn(Load(abs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				arplane.Logger().Debug("scenario: file changed", "path", abs, "op", event.Op.String())
				fn(Load(abs))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("scenario: watch: %w", err))
		}
	}
}
