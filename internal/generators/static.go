package generators

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ScorpionResponse/pelican/internal/logfields"
	"github.com/ScorpionResponse/pelican/internal/writer"
)

// StaticFile is one file copied verbatim into the output.
type StaticFile struct {
	Source string
	SaveAs string
}

// StaticGenerator copies STATIC_PATHS from the content tree and
// THEME_STATIC_PATHS from the theme into output/theme.
type StaticGenerator struct {
	cfg    Config
	logger *slog.Logger
	files  []StaticFile
}

// NewStatic is the Factory for the static generator.
func NewStatic(cfg Config) (Generator, error) {
	return &StaticGenerator{cfg: cfg, logger: cfg.logger("static")}, nil
}

func (g *StaticGenerator) Name() string { return "static" }

// GenerateContext lists the files to copy and publishes them as static_files.
func (g *StaticGenerator) GenerateContext(ctx context.Context) error {
	g.files = nil
	for _, p := range g.cfg.Settings.Strings("STATIC_PATHS") {
		files, err := listStatic(g.cfg.ContentPath, p, "", g.cfg.OutputPath)
		if err != nil {
			return err
		}
		g.files = append(g.files, files...)
	}
	for _, p := range g.cfg.Settings.Strings("THEME_STATIC_PATHS") {
		files, err := listStatic(g.cfg.ThemePath, p, "theme", g.cfg.OutputPath)
		if err != nil {
			return err
		}
		g.files = append(g.files, files...)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	g.cfg.Context["static_files"] = g.files
	g.logger.Debug("Static files listed", logfields.Count(len(g.files)))
	return nil
}

// GenerateOutput copies the listed files.
func (g *StaticGenerator) GenerateOutput(ctx context.Context, w *writer.Writer) error {
	for _, f := range g.files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.CopyFile(f.Source, f.SaveAs); err != nil {
			return err
		}
	}
	return nil
}

// listStatic lists the files of root/rel. Content static paths keep their
// relative path; theme paths drop rel and go below prefix, so
// theme/static/css/main.css becomes theme/css/main.css. The output
// directory is never listed.
func listStatic(root, rel, prefix, output string) ([]StaticFile, error) {
	rel = strings.Trim(rel, "/")
	if rel == "" {
		return nil, nil
	}
	start := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(start)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	saveAs := func(p string) string {
		if prefix == "" {
			r, _ := filepath.Rel(root, p)
			return filepath.ToSlash(r)
		}
		r, _ := filepath.Rel(start, p)
		if !info.IsDir() {
			r = filepath.Base(p)
		}
		return path.Join(prefix, filepath.ToSlash(r))
	}
	if !info.IsDir() {
		return []StaticFile{{Source: start, SaveAs: saveAs(start)}}, nil
	}
	var out []StaticFile
	err = filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && p != start {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() && isOutputDir(p, start, output) {
			return fs.SkipDir
		}
		if !d.IsDir() {
			out = append(out, StaticFile{Source: p, SaveAs: saveAs(p)})
		}
		return nil
	})
	return out, err
}
