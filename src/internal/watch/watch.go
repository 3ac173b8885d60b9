// FILE: hydrolog/src/internal/watch/watch.go
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"hydrolog/src/internal/source"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// Options configures a Watcher
type Options struct {
	// Input files or glob patterns
	Patterns []string

	// Quiet period after the last relevant event
	Debounce time.Duration

	// Minimum time between two change callbacks
	MinInterval time.Duration

	// Paths whose events are ignored, typically the export outputs
	Ignore []string
}

// ChangeFunc receives the freshly expanded input list after a change
type ChangeFunc func(ctx context.Context, paths []string) error

// Watcher re-runs a callback when input files change
type Watcher struct {
	fsw      *fsnotify.Watcher
	opts     Options
	patterns []string
	mu       sync.RWMutex
	ignore   map[string]bool
	dirs     []string
	watched  map[string]bool
	// Set when a pattern descends into subdirectories with "**"
	recursive bool
	limiter  *rate.Limiter
	logger   *log.Logger

	// Statistics
	totalEvents     atomic.Uint64
	totalRuns       atomic.Uint64
	totalFailedRuns atomic.Uint64
}

// Creates a new watcher over the directories holding the inputs
func New(opts Options, logger *log.Logger) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}

	paths, err := source.Expand(opts.Patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to expand inputs: %w", err)
	}
	dirs := source.Directories(paths)
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no input directories to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	limit := rate.Inf
	if opts.MinInterval > 0 {
		limit = rate.Every(opts.MinInterval)
	}

	w := &Watcher{
		fsw:     fsw,
		opts:    opts,
		ignore:  make(map[string]bool),
		watched: make(map[string]bool),
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}

	for _, p := range opts.Patterns {
		w.patterns = append(w.patterns, absPath(p))
		if strings.Contains(p, "**") {
			w.recursive = true
		}
	}
	for _, p := range opts.Ignore {
		w.ignore[absPath(p)] = true
	}

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			logger.Warn("msg", "Cannot watch directory",
				"component", "watcher",
				"directory", dir,
				"error", err)
			continue
		}
		w.dirs = append(w.dirs, dir)
		w.watched[dir] = true
	}
	if len(w.dirs) == 0 {
		fsw.Close()
		return nil, fmt.Errorf("no input directory could be watched")
	}

	return w, nil
}

// Ignore adds paths whose events are dropped and which are never passed
// to the change callback, typically outputs written into a watched
// directory
func (w *Watcher) Ignore(paths ...string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range paths {
		w.ignore[absPath(p)] = true
	}
}

func (w *Watcher) ignored(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ignore[absPath(path)]
}

// Directories returns the watched directories
func (w *Watcher) Directories() []string {
	return w.dirs
}

// Run blocks until ctx is cancelled, calling onChange after relevant
// events settle. Callback errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	defer w.fsw.Close()

	w.logger.Info("msg", "Watching inputs",
		"component", "watcher",
		"directories", len(w.dirs),
		"debounce", w.opts.Debounce)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.addCreatedDir(ev) && !w.relevant(ev) {
				continue
			}
			w.totalEvents.Add(1)
			w.logger.Debug("msg", "Input changed",
				"component", "watcher",
				"path", ev.Name,
				"op", ev.Op.String())
			timer.Reset(w.opts.Debounce)
			pending = true

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("msg", "Watcher error",
				"component", "watcher",
				"error", err)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			w.trigger(ctx, onChange)
		}
	}
}

func (w *Watcher) trigger(ctx context.Context, onChange ChangeFunc) {
	paths, err := source.Expand(w.opts.Patterns)
	if err != nil {
		w.logger.Error("msg", "Failed to expand inputs",
			"component", "watcher",
			"error", err)
		return
	}

	inputs := paths[:0]
	for _, p := range paths {
		if !w.ignored(p) {
			inputs = append(inputs, p)
		}
	}

	w.totalRuns.Add(1)
	if err := onChange(ctx, inputs); err != nil {
		w.totalFailedRuns.Add(1)
		w.logger.Error("msg", "Change handler failed",
			"component", "watcher",
			"error", err)
	}
}

// relevant filters events to changes of files matching the input patterns
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := absPath(ev.Name)
	if w.ignored(name) || strings.HasPrefix(filepath.Base(name), ".hydrolog-tmp-") {
		return false
	}
	for _, p := range w.patterns {
		if p == name {
			return true
		}
		if ok, _ := doublestar.PathMatch(p, name); ok {
			return true
		}
	}
	return false
}

// addCreatedDir starts watching a directory created below a watched one
// when a "**" pattern can match files inside it. Nested directories that
// already exist are added too. It reports whether anything was added.
func (w *Watcher) addCreatedDir(ev fsnotify.Event) bool {
	if !w.recursive || ev.Op&fsnotify.Create == 0 {
		return false
	}
	info, err := os.Stat(ev.Name)
	if err != nil || !info.IsDir() {
		return false
	}

	added := false
	_ = filepath.WalkDir(ev.Name, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		dir := absPath(path)
		if w.watched[dir] {
			return nil
		}
		if err := w.fsw.Add(dir); err != nil {
			w.logger.Warn("msg", "Cannot watch directory",
				"component", "watcher",
				"directory", dir,
				"error", err)
			return nil
		}
		w.watched[dir] = true
		w.dirs = append(w.dirs, dir)
		added = true
		w.logger.Debug("msg", "Watching new directory",
			"component", "watcher",
			"directory", dir)
		return nil
	})
	return added
}

// GetStats returns watcher statistics
func (w *Watcher) GetStats() map[string]any {
	return map[string]any{
		"directories":       len(w.dirs),
		"total_events":      w.totalEvents.Load(),
		"total_runs":        w.totalRuns.Load(),
		"total_failed_runs": w.totalFailedRuns.Load(),
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
