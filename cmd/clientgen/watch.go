package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-clientgen/internal/config"
	"github.com/goliatone/go-clientgen/internal/logger"
)

const debounceWindow = 300 * time.Millisecond

// watchAndRegenerate blocks watching the discovery document and, when
// configured, the template directory, re-running the generation on change.
// Events are debounced: editors fire several writes per save.
func watchAndRegenerate(cfg *config.Config, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(flagSource)); err != nil {
		return fmt.Errorf("watch source: %w", err)
	}
	if cfg.Templates != "" {
		if err := watcher.Add(cfg.Templates); err != nil {
			return fmt.Errorf("watch templates: %w", err)
		}
	}
	logger.Info("watching for changes (ctrl-c to stop)")

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			logger.Debug("file event: %s %s", event.Op, event.Name)
			pending = time.After(debounceWindow)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Warn("watcher: %v", err)

		case <-pending:
			pending = nil
			if err := run(); err != nil {
				logger.Error("generate: %v", err)
			}
		}
	}
}
