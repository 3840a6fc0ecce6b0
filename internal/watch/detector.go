// Package watch rebuilds a site whenever its content or theme changes.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/ScorpionResponse/pelican/internal/paths"
)

// Tree is one watched directory. A nil Extensions list watches every file.
// Directories in Exclude are not watched unless Root itself lies in one.
type Tree struct {
	Name       string
	Root       string
	Extensions []string
	Exclude    []string
}

func (t Tree) excluded(dir string) bool {
	for _, e := range t.Exclude {
		if e != "" && paths.Within(dir, e) && !paths.Within(t.Root, e) {
			return true
		}
	}
	return false
}

func (t Tree) matches(path string) bool {
	if t.Extensions == nil {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return slices.Contains(t.Extensions, ext)
}

// Detector reports whether its tree changed since the previous call. The
// first call on a fresh detector always reports a change.
type Detector interface {
	Changed(ctx context.Context) (bool, error)
	Close() error
}

// State is what a PollDetector remembers between polls.
type State struct {
	LatestModTime time.Time
	Files         map[string]time.Time
	Fingerprint   uint64
	polled        bool
}

// PollDetector walks its tree on every call and compares modification
// times and the file set with the previous walk.
type PollDetector struct {
	tree  Tree
	state State
}

// NewPollDetector returns a detector for tree with an empty state.
func NewPollDetector(tree Tree) *PollDetector {
	return &PollDetector{tree: tree}
}

// State returns the state recorded by the last poll.
func (d *PollDetector) State() State { return d.state }

// Changed walks the tree and reports whether any matching file was added,
// removed or modified.
func (d *PollDetector) Changed(ctx context.Context) (bool, error) {
	files := map[string]time.Time{}
	var latest time.Time
	err := filepath.WalkDir(d.tree.Root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			if p == d.tree.Root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			// files may vanish mid-walk
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			if d.tree.excluded(p) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.tree.matches(p) {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		mod := info.ModTime()
		files[p] = mod
		if mod.After(latest) {
			latest = mod
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	fp := fingerprint(files)
	changed := !d.state.polled || fp != d.state.Fingerprint || latest.After(d.state.LatestModTime)
	d.state = State{LatestModTime: latest, Files: files, Fingerprint: fp, polled: true}
	return changed, nil
}

// Close is a no-op.
func (d *PollDetector) Close() error { return nil }

// fingerprint hashes the sorted (path, mtime) pairs.
func fingerprint(files map[string]time.Time) uint64 {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	h := xxhash.New()
	for _, name := range names {
		_, _ = h.WriteString(name)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(strconv.FormatInt(files[name].UnixNano(), 10))
		_, _ = h.WriteString("\n")
	}
	return h.Sum64()
}
