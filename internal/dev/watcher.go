package dev

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	ChangeAsset ChangeType = iota
	ChangeCSS
)

// Change represents a detected file change.
type Change struct {
	// Name is the changed path relative to the watched root, slash-separated.
	Name string
	Type ChangeType
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Root is the directory watched recursively.
	Root string

	// Ignore holds base-name glob patterns to skip.
	Ignore []string

	// Debounce is how long the tree must stay quiet before changes are
	// reported.
	Debounce time.Duration
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"*.tmp",
	"*.swp",
	"*~",
	".DS_Store",
}

// Watcher monitors a directory tree for changes.
type Watcher struct {
	config WatcherConfig
	logger *slog.Logger
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig, logger *slog.Logger) *Watcher {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if config.Ignore == nil {
		config.Ignore = DefaultIgnore
	}
	if logger == nil {
		logger = slog.Default().With("component", "watcher")
	}
	return &Watcher{config: config, logger: logger}
}

// Run watches until ctx is cancelled. After each burst of events it calls
// onChange once: with a ChangeCSS change when only stylesheets changed,
// otherwise with a ChangeAsset change for the first file of the burst.
func (w *Watcher) Run(ctx context.Context, onChange func(Change)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := w.addTree(fsw, w.config.Root); err != nil {
		return err
	}

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	var pending []Change
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.shouldIgnore(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(fsw, ev.Name); err != nil {
						w.logger.Warn("watch failed", "path", ev.Name, "error", err)
					}
					continue
				}
			}
			pending = append(pending, w.change(ev.Name))
			timer.Reset(w.config.Debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-timer.C:
			if len(pending) > 0 {
				onChange(summarize(pending))
				pending = pending[:0]
			}
		}
	}
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && w.shouldIgnore(p) {
			return filepath.SkipDir
		}
		return fsw.Add(p)
	})
}

func (w *Watcher) change(path string) Change {
	name := path
	if rel, err := filepath.Rel(w.config.Root, path); err == nil {
		name = filepath.ToSlash(rel)
	}
	return Change{Name: name, Type: classifyChange(path)}
}

func summarize(changes []Change) Change {
	for _, c := range changes {
		if c.Type != ChangeCSS {
			return c
		}
	}
	return changes[0]
}

// shouldIgnore checks the base name against the ignore globs.
func (w *Watcher) shouldIgnore(path string) bool {
	name := filepath.Base(path)
	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

func classifyChange(path string) ChangeType {
	if strings.EqualFold(filepath.Ext(path), ".css") {
		return ChangeCSS
	}
	return ChangeAsset
}
