// Package watch hot-reloads a scaling configuration file into a running
// engine. The engine core performs no I/O itself; this collaborator owns
// the filesystem side and feeds UpdateConfig.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"vpscale/config"
	"vpscale/scale"
)

// debounceWindow coalesces the bursts of write events editors emit for a
// single save.
const debounceWindow = 200 * time.Millisecond

// Watcher monitors one config file and replaces the engine's configuration
// whenever the file changes.
type Watcher struct {
	engine     *scale.Engine
	watcher    *fsnotify.Watcher
	configPath string
	logger     *slog.Logger

	mu         sync.Mutex
	lastChange time.Time
}

// New creates a watcher for configPath. The path's directory is watched
// rather than the file itself, so atomic rename-based saves are seen.
func New(engine *scale.Engine, configPath string, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	return &Watcher{
		engine:     engine,
		watcher:    fsWatcher,
		configPath: absPath,
		logger:     logger,
	}, nil
}

// Start begins watching and blocks until ctx is canceled or the underlying
// watcher fails.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.configPath)); err != nil {
		return fmt.Errorf("failed to watch config dir: %w", err)
	}
	w.logger.Info("watching config", "path", w.configPath)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil || abs != w.configPath {
		return
	}
	if !w.shouldReload() {
		return
	}
	w.reload()
}

// shouldReload debounces rapid successive change events.
func (w *Watcher) shouldReload() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	if now.Sub(w.lastChange) < debounceWindow {
		return false
	}
	w.lastChange = now
	return true
}

// reload loads the file and swaps it into the engine. A broken config is
// logged and skipped; the engine keeps serving the previous generation.
func (w *Watcher) reload() {
	cfg, err := config.Load(w.configPath)
	if err != nil {
		w.logger.Error("config reload failed, keeping previous configuration",
			"path", w.configPath, "error", err)
		return
	}
	if err := w.engine.UpdateConfig(cfg); err != nil {
		w.logger.Error("config rejected, keeping previous configuration",
			"path", w.configPath, "error", err)
		return
	}
	w.logger.Info("config reloaded", "path", w.configPath,
		"breakpoints", len(cfg.Breakpoints), "tokens", len(cfg.Strategy.Tokens))
}
