package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for file activity to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors the config file and the Markdown pages below the docs root and calls
// trigger once file activity settles.
type Watcher struct {
	configPath string
	docsRoot   string
	trigger    func(source string)
	debounce   time.Duration

	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	stopChan  chan struct{}
	eventChan chan struct{}
	stopped   bool
}

// NewWatcher creates a watcher. A zero debounce selects DefaultDebounce.
func NewWatcher(configPath, docsRoot string, debounce time.Duration, trigger func(source string)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	absDocs, err := filepath.Abs(docsRoot)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to resolve docs root: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		configPath: absConfig,
		docsRoot:   absDocs,
		trigger:    trigger,
		debounce:   debounce,
		watcher:    watcher,
		stopChan:   make(chan struct{}),
		eventChan:  make(chan struct{}, 1),
	}, nil
}

// Start adds the watches and begins processing events.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Watch the directory holding the config, editors replace files on save.
	configDir := filepath.Dir(w.configPath)
	if err := w.watcher.Add(configDir); err != nil {
		return fmt.Errorf("failed to watch config directory %s: %w", configDir, err)
	}
	if err := w.addTree(w.docsRoot); err != nil {
		return err
	}

	slog.Info("Starting file watcher",
		logfields.Path(w.configPath),
		slog.String("docs_root", w.docsRoot),
		logfields.Count(len(w.watcher.WatchList())))

	go w.watchLoop(ctx)
	go w.debounceLoop(ctx)
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)
	return w.watcher.Close()
}

// addTree watches dir and its subdirectories, skipping the ones Discover skips.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && skipDir(d.Name()) {
			return fs.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

// relevant reports whether an event can change the check result.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Name == w.configPath {
		return true
	}
	if !strings.HasPrefix(event.Name, w.docsRoot+string(filepath.Separator)) {
		return false
	}
	if strings.EqualFold(filepath.Ext(event.Name), ".md") {
		return true
	}
	// A removed or renamed directory may have held pages.
	return event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				w.watchNewDir(event.Name)
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("File change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			select {
			case w.eventChan <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

// watchNewDir picks up directories created after Start.
func (w *Watcher) watchNewDir(name string) {
	if !strings.HasPrefix(name, w.docsRoot+string(filepath.Separator)) || skipDir(filepath.Base(name)) {
		return
	}
	if info, err := os.Stat(name); err == nil && info.IsDir() {
		if err := w.addTree(name); err != nil {
			slog.Warn("Failed to watch new directory", logfields.Path(name), logfields.Error(err))
		}
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	var timer *time.Timer
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-w.stopChan:
			stop()
			return
		case <-w.eventChan:
			stop()
			timer = time.AfterFunc(w.debounce, func() {
				w.trigger(SourceFSNotify)
			})
		}
	}
}
