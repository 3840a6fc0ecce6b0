// Package paths resolves the content, theme and output locations of a build
// into absolute, canonical forms.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	ferrors "github.com/ScorpionResponse/pelican/internal/foundation/errors"
)

// Resolved holds the absolute locations a build works with.
// Content and Output are canonical: symlinks are followed as far as the path
// exists, so the two can be compared for overlap.
type Resolved struct {
	Content string
	Theme   string
	Output  string
}

// Resolve normalizes the raw content, theme and output paths. A theme that
// does not exist as given is looked up by name under bundledThemes.
func Resolve(content, theme, output, bundledThemes string) (Resolved, error) {
	if content == "" {
		return Resolved{}, ferrors.ConfigError("You need to specify a path containing the content (see pelican --help for more information)").Build()
	}
	content = strings.TrimSuffix(content, string(os.PathSeparator))
	absContent, err := Canonical(content)
	if err != nil {
		return Resolved{}, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid content path").
			Fatal().
			WithContext("path", content).
			Build()
	}

	themePath, err := resolveTheme(theme, bundledThemes)
	if err != nil {
		return Resolved{}, err
	}

	absOutput, err := Canonical(output)
	if err != nil {
		return Resolved{}, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid output path").
			Fatal().
			WithContext("path", output).
			Build()
	}

	return Resolved{Content: absContent, Theme: themePath, Output: absOutput}, nil
}

func resolveTheme(theme, bundledThemes string) (string, error) {
	if theme != "" && exists(theme) {
		return filepath.Abs(theme)
	}
	if theme != "" && bundledThemes != "" {
		candidate := filepath.Join(bundledThemes, theme)
		if exists(candidate) {
			return filepath.Abs(candidate)
		}
	}
	return "", ferrors.ConfigError("Impossible to find the theme " + theme).
		WithContext("theme", theme).
		WithContext("bundled_themes", bundledThemes).
		Build()
}

// Canonical returns the absolute form of p with symlinks resolved for the
// longest prefix of p that exists on disk; the missing remainder is appended.
func Canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	existing := abs
	var rest []string
	for {
		resolved, err := filepath.EvalSymlinks(existing)
		if err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...), nil
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return abs, nil
		}
		rest = append([]string{filepath.Base(existing)}, rest...)
		existing = parent
	}
}

// Within reports whether path equals root or lies underneath it. Both must be
// clean absolute paths; the comparison respects path segment boundaries.
func Within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)))
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
