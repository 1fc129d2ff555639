package config

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/tsfeat/tsfeat/internal/monitoring"
)

// Watch monitors path for changes and calls onChange with the newly loaded
// RunConfig each time the file is written. It runs until ctx is cancelled.
//
// If a reload fails the error is logged and the previous config remains
// active; Watch does not call onChange.
func Watch(ctx context.Context, path string, onChange func(*RunConfig)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	monitoring.Logf("config: watching %s for changes", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often save via rename, so catch Create as well as
			// Write.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(path)
			if err != nil {
				monitoring.Logf("config: reload of %s failed, keeping previous config: %v", path, err)
				continue
			}

			monitoring.Logf("config: reloaded %s", path)
			onChange(cfg)

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			monitoring.Logf("config: watcher error: %v", err)
		}
	}
}
