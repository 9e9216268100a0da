// Package watch re-reads a source file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/msto63/fnc/pkg/core/logging"
)

// DefaultDebounce collapses bursts of events from one save
const DefaultDebounce = 100 * time.Millisecond

// Handler receives the file content after every change, or the read error
type Handler func(source string, err error)

// Config holds watcher configuration
type Config struct {
	Path     string
	Debounce time.Duration
	Logger   *logging.Logger
}

// Watcher watches one file. The parent directory is watched so that
// editors replacing the file on save are followed.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *logging.Logger
	handler  Handler
}

// New creates a watcher for cfg.Path
func New(cfg Config, handler Handler) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.New("watch")
	}
	return &Watcher{
		path:     filepath.Clean(cfg.Path),
		debounce: cfg.Debounce,
		logger:   cfg.Logger,
		handler:  handler,
	}
}

// Run delivers the current content once and then every change until ctx
// is done
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}
	w.logger.Info("Started watching", "file", w.path)

	w.deliver()

	// Trailing debounce: reload once the events for one save have settled
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping file watcher (context cancelled)")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("File event", "file", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case <-timer.C:
			w.deliver()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) deliver() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.handler("", err)
		return
	}
	w.handler(string(data), nil)
}
