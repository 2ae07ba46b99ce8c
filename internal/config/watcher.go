package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"kazi/internal/logging"
)

// Watch re-reads the config file whenever it changes on disk and delivers
// each successfully-loaded value on the returned channel until ctx is done.
// Invalid intermediate states (mid-write, parse errors) are skipped.
func Watch(ctx context.Context, path string) (<-chan *Config, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: editors replace the file on save
	// and a file-level watch would go stale after the first write.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan *Config, 1)
	go func() {
		defer watcher.Close()
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					logging.Get(logging.CategoryBoot).Warn("config reload skipped: %v", err)
					continue
				}
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Get(logging.CategoryBoot).Warn("config watcher: %v", err)
			}
		}
	}()
	return out, nil
}
