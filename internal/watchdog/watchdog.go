// Package watchdog triggers documentation rebuilds when the markdown sources
// or the mkdocs configuration change.
package watchdog

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the docs tree and configuration file and invokes a rebuild
// callback with debouncing.
type Watcher struct {
	roots        []string
	ignorePrefix string // output directory; events under it are self-inflicted
	rebuild      func(ctx context.Context) error
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
}

// New creates a watcher over the given root paths. Directories are watched
// recursively. Events under ignoreDir (the output directory) are discarded.
func New(roots []string, ignoreDir string, rebuild func(ctx context.Context) error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	abs := make([]string, 0, len(roots))
	for _, r := range roots {
		p, err := filepath.Abs(r)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to resolve watch path: %w", err)
		}
		abs = append(abs, p)
	}

	return &Watcher{
		roots:        abs,
		ignorePrefix: ignoreDir,
		rebuild:      rebuild,
		watcher:      fsw,
		debounceTime: 2 * time.Second, // debounce rapid editor save bursts
	}, nil
}

// WithDebounce overrides the debounce interval (tests).
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounceTime = d
	}
	return w
}

// Start begins monitoring and blocks until ctx is done. The first rebuild is
// triggered by the caller, not the watcher.
func (w *Watcher) Start(ctx context.Context) error {
	defer w.watcher.Close()

	for _, root := range w.roots {
		if err := w.addRecursive(root); err != nil {
			return err
		}
	}
	slog.Info("Watching for documentation changes", "paths", w.roots)

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Filesystem event", "op", event.Op.String(), "path", event.Name)
			// New directories need to be added to the watch set.
			if event.Op&fsnotify.Create == fsnotify.Create {
				_ = w.addRecursive(event.Name)
			}
			if timer == nil {
				timer = time.AfterFunc(w.debounceTime, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(w.debounceTime)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", "error", err)

		case <-pending:
			timer = nil
			slog.Info("Change detected, rebuilding documentation")
			if err := w.rebuild(ctx); err != nil {
				// Keep watching; the next change may fix the build.
				slog.Error("Rebuild failed", "error", err)
			}
		}
	}
}

// relevant filters out events for the output directory and editor temp files.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if w.ignored(event.Name) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

// ignored reports whether path is the ignored output directory or inside it.
// Plain prefix matching would also exclude siblings like site-notes/ next to
// site/, so the boundary must be a path separator.
func (w *Watcher) ignored(path string) bool {
	if w.ignorePrefix == "" {
		return false
	}
	if path == w.ignorePrefix {
		return true
	}
	return strings.HasPrefix(path, w.ignorePrefix+string(filepath.Separator))
}

// addRecursive registers a path and all its subdirectories with the watcher.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Paths may vanish between event and walk.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
