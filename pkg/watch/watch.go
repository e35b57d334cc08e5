// Package watch re-checks style files as they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/report"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/runner"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/stylecheck"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

const styleInfix = ".style"

// Sentinel errors returned by Run.
var (
	// ErrNoRoots is returned when Run is called without directories to watch.
	ErrNoRoots = errors.New("no directories to watch")
	// ErrWatcherClosed is returned when the event stream ends before ctx is done.
	ErrWatcherClosed = errors.New("file watcher closed")
)

// Handler receives the entry of every check the watcher runs.
type Handler func(report.Entry)

// Options tunes a Watcher.
type Options struct {
	// Debounce collapses events for the same style file that arrive within
	// this period into a single check.
	Debounce time.Duration

	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger
}

// Watcher subscribes to file system events under a set of directories and
// checks each style file that is created or written. A write to a sibling
// file re-checks the style file paired with it.
type Watcher struct {
	runner   *runner.Runner
	handler  Handler
	debounce time.Duration
	logger   *slog.Logger

	ready     chan struct{}
	readyOnce sync.Once

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a Watcher that checks files with r and passes entries to handler.
func New(r *runner.Runner, handler Handler, opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		runner:   r,
		handler:  handler,
		debounce: opts.Debounce,
		logger:   logger,
		ready:    make(chan struct{}),
		timers:   make(map[string]*time.Timer),
	}
}

// Ready is closed once every root directory is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches roots until ctx is done. It returns nil on cancellation and
// ErrWatcherClosed if the event stream ends first. Relative roots are
// resolved against the working directory.
func (w *Watcher) Run(ctx context.Context, roots []string) error {
	if len(roots) == 0 {
		return ErrNoRoots
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	absRoots := make([]string, 0, len(roots))

	for _, root := range roots {
		abs, absErr := filepath.Abs(root)
		if absErr != nil {
			return fmt.Errorf("resolve %s: %w", root, absErr)
		}

		err = w.addTree(watcher, abs)
		if err != nil {
			return err
		}

		absRoots = append(absRoots, abs)
	}

	w.readyOnce.Do(func() { close(w.ready) })
	w.logger.InfoContext(ctx, "watching for style changes", "roots", absRoots, "debounce", w.debounce)

	return w.loop(ctx, watcher, watcher.Events, watcher.Errors)
}

// loop dispatches events until ctx is done or a stream closes.
func (w *Watcher) loop(
	ctx context.Context,
	watcher *fsnotify.Watcher,
	events <-chan fsnotify.Event,
	errs <-chan error,
) error {
	due := make(chan string)
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return ErrWatcherClosed
			}

			w.handleEvent(ctx, watcher, event, due)

		case stylePath := <-due:
			entry := w.runner.CheckOne(ctx, runner.Request{Path: stylePath})
			if w.handler != nil {
				w.handler(entry)
			}

		case err, ok := <-errs:
			if !ok {
				return ErrWatcherClosed
			}

			w.logger.WarnContext(ctx, "watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event, due chan<- string) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			err = w.addTree(watcher, event.Name)
			if err != nil {
				w.logger.WarnContext(ctx, "failed to watch new directory", "path", event.Name, "error", err)
			}

			return
		}
	}

	name := filepath.ToSlash(event.Name)
	if stylecheck.IsStyleFile(path.Base(name)) {
		w.schedule(ctx, name, due)

		return
	}

	stylePath := StylePathFor(name)
	if _, err := os.Stat(stylePath); err == nil {
		w.schedule(ctx, stylePath, due)
	}
}

// schedule (re)starts the debounce timer for path.
func (w *Watcher) schedule(ctx context.Context, path string, due chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.debounce)

		return
	}

	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		select {
		case due <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}

// addTree watches root and every directory below it that walks descend into.
func (w *Watcher) addTree(watcher *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() {
			return nil
		}

		if path != root && runner.SkipDir(entry.Name()) {
			return filepath.SkipDir
		}

		return watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	return nil
}

// StylePathFor returns the style file paired with a sibling path by
// inserting ".style" before the extension: "a/card.ts" gives
// "a/card.style.ts". A name without extension gets the suffix appended.
func StylePathFor(siblingPath string) string {
	dir, name := path.Split(siblingPath)

	stem, ext, found := strings.Cut(name, ".")
	if !found {
		return dir + name + styleInfix
	}

	return dir + stem + styleInfix + "." + ext
}
