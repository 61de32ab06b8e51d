// Package watch rebuilds the generated tree whenever the spec tree
// changes. fsnotify does not recurse, so every directory under the
// root is added individually and directories created while watching
// are picked up from their create events.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is the settle window applied to event bursts. An
// editor save typically fires several events per file; one rebuild
// covers all of them.
const DefaultDebounce = 500 * time.Millisecond

// tickInterval is how often the settle window is checked.
const tickInterval = 100 * time.Millisecond

// RebuildFunc runs one build. Errors are logged and watching
// continues.
type RebuildFunc func(ctx context.Context) error

// Watcher triggers rebuilds from filesystem events under a spec root.
// Rebuilds are serialized: events arriving during a build coalesce
// into a single trailing rebuild.
type Watcher struct {
	root     string
	debounce time.Duration
	rebuild  RebuildFunc
	log      *zap.Logger
	fsw      *fsnotify.Watcher

	mu      sync.Mutex
	lastEvt time.Time
	pending bool
}

// New prepares a watcher over root. Every existing subdirectory is
// registered up front. A debounce of zero selects DefaultDebounce.
func New(root string, debounce time.Duration, rebuild RebuildFunc, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:     root,
		debounce: debounce,
		rebuild:  rebuild,
		log:      log,
		fsw:      fsw,
	}

	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks, dispatching rebuilds until ctx is cancelled. The
// fsnotify handle is closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.collect(ctx) })
	g.Go(func() error { return w.schedule(ctx) })
	return g.Wait()
}

// Watched lists the directories currently registered.
func (w *Watcher) Watched() []string {
	return w.fsw.WatchList()
}

// addTree registers root and all directories below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.fsw.Add(path)
	})
}

// collect consumes fsnotify events and marks the debounce window.
func (w *Watcher) collect(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// handleEvent folds one event into the pending state. Directory
// creations extend the watch set; chmod-only events are ignored.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename
	if event.Op&relevant == 0 {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.log.Warn("watch new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			w.mark()
			return
		}
	}

	if !isSpecFile(event.Name) {
		return
	}

	w.log.Debug("spec change",
		zap.String("file", event.Name),
		zap.String("op", event.Op.String()))
	w.mark()
}

func (w *Watcher) mark() {
	w.mu.Lock()
	w.lastEvt = time.Now()
	w.pending = true
	w.mu.Unlock()
}

// schedule fires the rebuild callback once per settled burst. Running
// on a single goroutine keeps builds serialized; events landing
// mid-build re-arm the window for a trailing rebuild.
func (w *Watcher) schedule(ctx context.Context) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			w.mu.Lock()
			due := w.pending && time.Since(w.lastEvt) >= w.debounce
			if due {
				w.pending = false
			}
			w.mu.Unlock()
			if !due {
				continue
			}

			if err := w.rebuild(ctx); err != nil {
				w.log.Error("rebuild failed", zap.Error(err))
			}
		}
	}
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}
