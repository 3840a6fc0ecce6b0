package generators

import (
	"context"
	"log/slog"

	"github.com/ScorpionResponse/pelican/internal/content"
	"github.com/ScorpionResponse/pelican/internal/logfields"
	"github.com/ScorpionResponse/pelican/internal/themes"
	"github.com/ScorpionResponse/pelican/internal/writer"
)

// PagesGenerator reads the static pages below PAGE_DIR.
type PagesGenerator struct {
	cfg    Config
	logger *slog.Logger

	pages        []*content.Content
	hidden       []*content.Content
	translations []*content.Content
}

// NewPages is the Factory for the pages generator.
func NewPages(cfg Config) (Generator, error) {
	return &PagesGenerator{cfg: cfg, logger: cfg.logger("pages")}, nil
}

func (g *PagesGenerator) Name() string { return "pages" }

// GenerateContext publishes pages, hidden_pages and page translations.
// Drafts are dropped.
func (g *PagesGenerator) GenerateContext(ctx context.Context) error {
	s := g.cfg.Settings
	dir := s.String("PAGE_DIR")
	if dir == "" {
		return nil
	}
	files, err := collectFiles(g.cfg.ContentPath, dir, s.Strings("PAGE_EXCLUDES"), g.cfg.Markup, g.cfg.OutputPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var visible, hidden []*content.Content
	for _, p := range readContents(g.cfg, g.Name(), files, content.KindPage) {
		switch p.Status {
		case content.StatusPublished:
			visible = append(visible, p)
		case content.StatusHidden:
			hidden = append(hidden, p)
		case content.StatusDraft:
		default:
			g.logger.Warn("Unknown status "+p.Status+" for "+p.SourcePath+", skipping", logfields.File(p.SourcePath))
		}
	}

	g.pages, g.translations, err = splitTranslations(visible, s)
	if err != nil {
		return err
	}
	var hiddenTranslations []*content.Content
	g.hidden, hiddenTranslations, err = splitTranslations(hidden, s)
	if err != nil {
		return err
	}
	g.translations = append(g.translations, hiddenTranslations...)

	g.cfg.Context["pages"] = g.pages
	g.cfg.Context["hidden_pages"] = g.hidden
	g.cfg.Context["page_translations"] = g.translations

	g.logger.Info("Pages read", logfields.Count(len(g.pages)), slog.Int("hidden", len(g.hidden)))
	return nil
}

// GenerateOutput writes every page, hidden ones included.
func (g *PagesGenerator) GenerateOutput(ctx context.Context, w *writer.Writer) error {
	all := make([]*content.Content, 0, len(g.pages)+len(g.hidden)+len(g.translations))
	all = append(append(append(all, g.pages...), g.hidden...), g.translations...)
	if len(all) == 0 {
		return nil
	}
	set, err := themes.Templates(g.cfg.ThemePath)
	if err != nil {
		return err
	}
	tmpl, err := themes.Lookup(set, "page.html")
	if err != nil {
		return err
	}
	for _, p := range all {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.WriteFile(p.SaveAs, tmpl, g.cfg.templateData(map[string]any{"page": p, "title": p.Title})); err != nil {
			return err
		}
	}
	return nil
}
