package tokens

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc receives the freshly loaded catalog when the watched file
// changes. It runs on the watcher goroutine; callers swap the catalog into
// their session state and must not block.
type ReloadFunc func(*Catalog, *CatalogIndex)

// CatalogWatcher reloads a catalog file whenever it changes on disk.
// Rapid editor save sequences are debounced so a half-written file never
// reaches the reload callback twice.
type CatalogWatcher struct {
	watcher    *fsnotify.Watcher
	path       string
	onReload   ReloadFunc
	logger     *slog.Logger
	debounceMs int

	debounceTimer *time.Timer
	debounceMu    sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewCatalogWatcher creates a watcher for the catalog file at path.
// debounceMs defaults to 200 when zero.
func NewCatalogWatcher(path string, onReload ReloadFunc, debounceMs int, logger *slog.Logger) (*CatalogWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog watcher: %w", err)
	}
	if debounceMs == 0 {
		debounceMs = 200
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogWatcher{
		watcher:    watcher,
		path:       path,
		onReload:   onReload,
		logger:     logger,
		debounceMs: debounceMs,
		stopChan:   make(chan struct{}),
	}, nil
}

// Start begins watching. The event loop runs in a background goroutine.
func (cw *CatalogWatcher) Start() error {
	cw.mu.Lock()
	if cw.stopped {
		cw.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	cw.mu.Unlock()

	if err := cw.watcher.Add(cw.path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cw.path, err)
	}

	cw.logger.Info("catalog watcher started", "path", cw.path)
	go cw.eventLoop()
	return nil
}

// Stop stops the watcher. Safe to call multiple times.
func (cw *CatalogWatcher) Stop() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.stopped {
		return nil
	}
	cw.stopped = true
	close(cw.stopChan)

	cw.debounceMu.Lock()
	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.debounceMu.Unlock()

	err := cw.watcher.Close()
	cw.logger.Info("catalog watcher stopped")
	return err
}

func (cw *CatalogWatcher) eventLoop() {
	for {
		select {
		case <-cw.stopChan:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				cw.debounceReload()
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Error("catalog watcher error", "error", err)
		}
	}
}

// debounceReload schedules a reload after the debounce delay. If more
// events arrive within the window only the last one triggers a reload.
func (cw *CatalogWatcher) debounceReload() {
	cw.debounceMu.Lock()
	defer cw.debounceMu.Unlock()

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.debounceTimer = time.AfterFunc(
		time.Duration(cw.debounceMs)*time.Millisecond,
		cw.reload,
	)
}

func (cw *CatalogWatcher) reload() {
	catalog, index, err := LoadCatalogFromFile(cw.path)
	if err != nil {
		cw.logger.Warn("catalog reload failed, keeping previous catalog",
			"path", cw.path,
			"error", err)
		return
	}

	cw.logger.Info("catalog reloaded",
		"path", cw.path,
		"themes", len(catalog.Themes))
	cw.onReload(catalog, index)
}
