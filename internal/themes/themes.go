// Package themes ships the bundled "simple" theme and loads theme templates.
package themes

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/ncruces/go-strftime"
)

//go:embed simple
var bundled embed.FS

// Bundled is the name of the theme compiled into the binary.
const Bundled = "simple"

// DefaultDir returns the directory bundled themes are installed into.
func DefaultDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("themes: locate cache directory: %w", err)
	}
	return filepath.Join(cache, "pelican", "themes"), nil
}

// Install writes the bundled themes below baseDir and returns baseDir.
// Files already holding the bundled bytes are left alone.
func Install(baseDir string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("themes: base directory is empty")
	}
	err := fs.WalkDir(bundled, Bundled, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(baseDir, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := bundled.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read embedded %s: %w", p, err)
		}
		if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
			return nil
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to install %s: %w", target, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return baseDir, nil
}

// Funcs are the helpers available to every theme template.
var Funcs = template.FuncMap{
	"strftime": func(layout string, t time.Time) string { return strftime.Format(layout, t) },
	"path":     path.Join,
}

// Templates parses every templates/*.html file of the theme at themePath into
// one set. Execute a page with set.Lookup("article.html").
func Templates(themePath string) (*template.Template, error) {
	pattern := filepath.Join(themePath, "templates", "*.html")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("theme %s has no templates", themePath)
	}
	set, err := template.New("theme").Funcs(Funcs).ParseFiles(matches...)
	if err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", themePath, err)
	}
	return set, nil
}

// Lookup returns the named template of set or an error naming the theme file.
func Lookup(set *template.Template, name string) (*template.Template, error) {
	t := set.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("template %s not found in theme", name)
	}
	return t, nil
}
