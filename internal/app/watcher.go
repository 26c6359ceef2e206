package app

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ConfigWatcher watches the configuration file and triggers a callback once
// a burst of writes has settled. Editors often replace a file rather than
// write it, so the containing directory is watched.
type ConfigWatcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger

	watcher  *fsnotify.Watcher
	onChange func(path string)
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewConfigWatcher creates a watcher for path. Changes closer together than
// debounce are reported once.
func NewConfigWatcher(path string, debounce time.Duration, logger *zap.Logger) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigWatcher{path: abs, debounce: debounce, logger: logger}, nil
}

// OnChange sets the callback. It is called from a background goroutine; use
// appropriate synchronization if updating UI.
func (w *ConfigWatcher) OnChange(callback func(path string)) {
	w.onChange = callback
}

// Path returns the watched file.
func (w *ConfigWatcher) Path() string {
	return w.path
}

// Start begins watching in a background goroutine.
func (w *ConfigWatcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.watcher = fw
	w.stopCh = make(chan struct{})
	w.wg.Add(1)
	go w.watchLoop()
	return nil
}

// Stop stops the watcher goroutine and waits for it to exit.
func (w *ConfigWatcher) Stop() {
	if w.watcher == nil {
		return
	}
	close(w.stopCh)
	w.watcher.Close()
	w.wg.Wait()
	w.watcher = nil
}

func (w *ConfigWatcher) watchLoop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", zap.Error(err))
		case <-fire:
			fire = nil
			w.logger.Info("configuration changed", zap.String("path", w.path))
			if w.onChange != nil {
				w.onChange(w.path)
			}
		}
	}
}
