// Package readers turns source files into documents: rendered HTML plus a
// metadata map with lower-case keys. Readers are selected by file extension.
package readers

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Document is the result of reading one source file.
type Document struct {
	Path        string
	Metadata    map[string]any
	Body        string // rendered HTML
	Fingerprint string
	ModTime     int64 // unix nanoseconds of the source file
}

// Reader converts the raw bytes of a source file into a Document.
type Reader interface {
	Extensions() []string
	Read(path string, raw []byte) (*Document, error)
}

// Registry maps file extensions (without dot, lower-case) to readers.
type Registry struct {
	byExt map[string]Reader
}

// NewRegistry returns a registry with the markdown and HTML readers installed.
func NewRegistry() *Registry {
	r := &Registry{byExt: map[string]Reader{}}
	r.Register(NewMarkdownReader())
	r.Register(NewHTMLReader())
	return r
}

// Register installs reader for all of its extensions, replacing earlier ones.
func (r *Registry) Register(reader Reader) {
	for _, ext := range reader.Extensions() {
		r.byExt[strings.ToLower(ext)] = reader
	}
}

// Supports reports whether a reader exists for ext (with or without the dot).
func (r *Registry) Supports(ext string) bool {
	_, ok := r.byExt[normalizeExt(ext)]
	return ok
}

// Enabled filters markup down to the extensions this registry can read,
// returning the usable ones and the ones without a reader.
func (r *Registry) Enabled(markup []string) (usable, missing []string) {
	for _, m := range markup {
		ext := normalizeExt(m)
		if ext == "" || slices.Contains(usable, ext) {
			continue
		}
		if r.Supports(ext) {
			usable = append(usable, ext)
		} else {
			missing = append(missing, ext)
		}
	}
	return usable, missing
}

// Read reads the file at path with the reader registered for its extension.
func (r *Registry) Read(path string) (*Document, error) {
	reader, ok := r.byExt[normalizeExt(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("no reader for %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := reader.Read(path, raw)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc.Path = path
	doc.ModTime = info.ModTime().UnixNano()
	return doc, nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
