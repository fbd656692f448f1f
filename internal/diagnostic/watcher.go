package diagnostic

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// WatchTable reloads the table file into a whenever it changes. The parent
// directory is watched so editors that replace the file are still seen.
// Invalid files are logged and the previous table stays active.
func WatchTable(ctx context.Context, path string, a *Analyzer, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return err
	}

	target := filepath.Clean(path)
	go func() {
		defer w.Close()
		var timer *time.Timer
		fire := make(chan struct{}, 1)

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			case <-fire:
				t, err := LoadTableFile(path)
				if err != nil {
					logger.Warn("WatchTable(): keeping previous table", "path", path, "error", err)
					continue
				}
				a.Swap(t)
				logger.Info("WatchTable(): pattern table reloaded", "path", path, "patterns", len(t.Patterns))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("WatchTable(): watcher error", "error", err)
			}
		}
	}()
	return nil
}
