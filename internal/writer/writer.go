// Package writer renders templates into the output directory and copies
// static files, skipping writes whose bytes are already on disk.
package writer

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ScorpionResponse/pelican/internal/logfields"
	"github.com/ScorpionResponse/pelican/internal/paths"
	"github.com/ScorpionResponse/pelican/internal/settings"
)

// Writer writes generated files below a single output directory.
type Writer struct {
	outputPath string
	settings   settings.Settings
	logger     *slog.Logger

	written int
	skipped int
}

// New returns a writer rooted at outputPath.
func New(outputPath string, s settings.Settings) *Writer {
	return &Writer{
		outputPath: outputPath,
		settings:   s,
		logger:     slog.Default().With(logfields.Path(outputPath)),
	}
}

// OutputPath returns the root directory files are written to.
func (w *Writer) OutputPath() string { return w.outputPath }

// Counts returns how many files were written and how many were unchanged.
func (w *Writer) Counts() (written, skipped int) { return w.written, w.skipped }

// Target resolves name below the output directory, rejecting names that
// escape it.
func (w *Writer) Target(name string) (string, error) {
	name = strings.TrimPrefix(filepath.FromSlash(name), string(filepath.Separator))
	if name == "" {
		return "", fmt.Errorf("empty output name")
	}
	target := filepath.Join(w.outputPath, name)
	if !paths.Within(target, w.outputPath) {
		return "", fmt.Errorf("output name %q escapes %s", name, w.outputPath)
	}
	return target, nil
}

// WriteFile executes tmpl with the settings merged under ctx and writes the
// result to name. A name ending in "/" receives an index.html.
func (w *Writer) WriteFile(name string, tmpl *template.Template, ctx map[string]any) error {
	if strings.HasSuffix(name, "/") {
		name += "index.html"
	}
	data := make(map[string]any, len(w.settings)+len(ctx)+1)
	for k, v := range w.settings {
		data[k] = v
	}
	for k, v := range ctx {
		data[k] = v
	}
	data["output_file"] = name

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s with %s: %w", name, tmpl.Name(), err)
	}
	return w.WriteBytes(name, buf.Bytes())
}

// WriteBytes writes content to name unless the file already holds it.
func (w *Writer) WriteBytes(name string, content []byte) error {
	target, err := w.Target(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, content) {
		w.skipped++
		w.logger.Debug("file unchanged, skipping", logfields.File(name))
		return nil
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	w.written++
	w.logger.Info("Writing", logfields.File(target))
	return nil
}

// CopyFile copies src to name below the output directory when the target is
// missing, differs in size or is older than src.
func (w *Writer) CopyFile(src, name string) error {
	target, err := w.Target(name)
	if err != nil {
		return err
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(target); err == nil &&
		dstInfo.Size() == srcInfo.Size() && !dstInfo.ModTime().Before(srcInfo.ModTime()) {
		w.skipped++
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Chtimes(target, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return err
	}
	w.written++
	w.logger.Info("Copying", logfields.File(target))
	return nil
}
