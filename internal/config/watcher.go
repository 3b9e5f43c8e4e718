package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"serverhub/internal/types"
)

// Watcher watches for configuration changes
type Watcher struct {
	loader    *Loader
	logger    types.Logger
	callbacks []func(*types.HubConfig)
	mu        sync.RWMutex
	watcher   *fsnotify.Watcher
	stopCh    chan struct{}
	stopOnce  sync.Once
	config    *types.HubConfig
	debounce  time.Duration
}

// NewWatcher creates a new configuration watcher
func NewWatcher(loader *Loader, logger types.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		loader:    loader,
		logger:    logger,
		callbacks: make([]func(*types.HubConfig), 0),
		watcher:   fsWatcher,
		stopCh:    make(chan struct{}),
		debounce:  500 * time.Millisecond,
	}, nil
}

// Start records the current configuration and starts watching its file
func (w *Watcher) Start(ctx context.Context, current *types.HubConfig) error {
	w.mu.Lock()
	w.config = current
	w.mu.Unlock()

	configFile := w.loader.ConfigFileUsed()
	if configFile == "" {
		w.logger.Debug("No configuration file to watch")
		return nil
	}

	// Watch the directory so editors that replace the file are still seen
	if err := w.watcher.Add(filepath.Dir(configFile)); err != nil {
		return fmt.Errorf("failed to watch config file: %w", err)
	}
	w.logger.Info("Watching configuration file", "file", configFile)

	go w.watch(ctx, filepath.Clean(configFile))

	return nil
}

// Stop stops the configuration watcher
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
	})
	return err
}

// OnChange registers a callback for configuration changes
func (w *Watcher) OnChange(callback func(*types.HubConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// GetConfig returns the current configuration
func (w *Watcher) GetConfig() *types.HubConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

func (w *Watcher) watch(ctx context.Context, configFile string) {
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != configFile {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("Configuration file changed", "file", event.Name, "op", event.Op.String())

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(w.debounce, w.reload)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Configuration watcher error", "error", err)
		}
	}
}

// reload reloads the configuration and notifies callbacks
func (w *Watcher) reload() {
	w.logger.Info("Reloading configuration")

	newCfg, err := w.loader.LoadConfig()
	if err != nil {
		w.logger.Error("Failed to reload configuration", "error", err)
		return
	}

	w.mu.Lock()
	w.config = newCfg
	callbacks := make([]func(*types.HubConfig), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, callback := range callbacks {
		func(cb func(*types.HubConfig)) {
			defer func() {
				if r := recover(); r != nil {
					w.logger.Error("Configuration change callback panicked", "error", r)
				}
			}()
			cb(newCfg)
		}(callback)
	}

	w.logger.Info("Configuration reloaded successfully")
}
