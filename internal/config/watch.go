package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events editors emit on save.
const reloadDelay = 100 * time.Millisecond

// Watch reloads path whenever it changes and sends each valid config on the
// returned channel. Invalid files are logged and skipped. The channel holds
// only the newest config and is closed when ctx is done.
func Watch(ctx context.Context, path string) (<-chan *Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	// Watch the directory; editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}

	out := make(chan *Config, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		timer := time.NewTimer(reloadDelay)
		timer.Stop()

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					timer.Reset(reloadDelay)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Config: watcher error: %v", err)
			case <-timer.C:
				cfg, err := Load(abs)
				if err != nil {
					log.Printf("Config: reload skipped: %v", err)
					continue
				}
				log.Printf("Config: reloaded %s", path)
				publish(out, cfg)
			}
		}
	}()
	return out, nil
}

// publish replaces any unread config with cfg.
func publish(out chan *Config, cfg *Config) {
	select {
	case <-out:
	default:
	}
	out <- cfg
}
