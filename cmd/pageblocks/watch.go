package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchFile calls onChange every time path is written or created, until ctx
// is done. Failures from onChange are logged and the watch continues.
func watchFile(ctx context.Context, path string, logger *slog.Logger, onChange func() error) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files instead of writing in place, so the
	// directory is watched rather than the file itself.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}
	logger.Info("watching page", "path", absPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isPageChange(event) {
				continue
			}
			if name, _ := filepath.Abs(event.Name); name != absPath {
				continue
			}
			logger.Debug("page changed", "path", absPath, "op", event.Op.String())
			if err := onChange(); err != nil {
				logger.Error("re-render failed", "path", absPath, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

func isPageChange(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// sameFile reports whether a and b name the same file. Existing files are
// compared with os.SameFile so links resolve.
func sameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if infoA, err := os.Stat(a); err == nil {
		if infoB, err := os.Stat(b); err == nil {
			return os.SameFile(infoA, infoB)
		}
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
