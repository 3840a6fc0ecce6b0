package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/ScorpionResponse/pelican/internal/logfields"
)

// NotifyDetector reports changes delivered by filesystem notifications
// instead of walking the tree on every call.
type NotifyDetector struct {
	tree    Tree
	watcher *fsnotify.Watcher
	primed  bool
}

// NewNotifyDetector subscribes to every directory below tree.Root.
func NewNotifyDetector(tree Tree) (*NotifyDetector, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := addDirsRecursive(w, tree); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &NotifyDetector{tree: tree, watcher: w}, nil
}

// Changed drains pending events without blocking.
func (d *NotifyDetector) Changed(ctx context.Context) (bool, error) {
	changed := !d.primed
	d.primed = true
	for {
		select {
		case <-ctx.Done():
			return changed, ctx.Err()
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return changed, nil
			}
			if d.relevant(ev) {
				changed = true
			}
		case err, ok := <-d.watcher.Errors:
			if ok {
				slog.Warn("watcher error", logfields.Tree(d.tree.Name), logfields.Error(err))
			}
		default:
			return changed, nil
		}
	}
}

func (d *NotifyDetector) relevant(ev fsnotify.Event) bool {
	if shouldIgnoreEvent(ev.Name) || d.tree.excluded(ev.Name) {
		return false
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			sub := d.tree
			sub.Root = ev.Name
			_ = addDirsRecursive(d.watcher, sub)
			return true
		}
	}
	if ev.Op == fsnotify.Chmod {
		return false
	}
	// a removed or renamed directory has no extension but may hold sources
	if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && filepath.Ext(ev.Name) == "" {
		return true
	}
	return d.tree.matches(ev.Name)
}

// Close stops the subscription.
func (d *NotifyDetector) Close() error { return d.watcher.Close() }

func addDirsRecursive(w *fsnotify.Watcher, tree Tree) error {
	return filepath.WalkDir(tree.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if tree.excluded(path) {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", "dir", path, "error", err)
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for editor temp files and OS metadata.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
