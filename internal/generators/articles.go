package generators

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"sort"

	"github.com/ScorpionResponse/pelican/internal/content"
	"github.com/ScorpionResponse/pelican/internal/logfields"
	"github.com/ScorpionResponse/pelican/internal/themes"
	"github.com/ScorpionResponse/pelican/internal/writer"
)

// ArticlesGenerator reads dated articles and writes them with their index,
// category and tag pages.
type ArticlesGenerator struct {
	cfg    Config
	logger *slog.Logger

	articles     []*content.Content
	translations []*content.Content
	drafts       []*content.Content
	categories   []*Taxonomy
	tags         []*Taxonomy
}

// NewArticles is the Factory for the articles generator.
func NewArticles(cfg Config) (Generator, error) {
	return &ArticlesGenerator{cfg: cfg, logger: cfg.logger("articles")}, nil
}

func (g *ArticlesGenerator) Name() string { return "articles" }

// GenerateContext publishes articles, translations, drafts, categories,
// tags and dates.
func (g *ArticlesGenerator) GenerateContext(ctx context.Context) error {
	s := g.cfg.Settings
	excludes := append([]string{s.String("PAGE_DIR")}, s.Strings("ARTICLE_EXCLUDES")...)
	excludes = append(excludes, s.Strings("STATIC_PATHS")...)
	files, err := collectFiles(g.cfg.ContentPath, s.String("ARTICLE_DIR"), excludes, g.cfg.Markup, g.cfg.OutputPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var published []*content.Content
	for _, a := range readContents(g.cfg, g.Name(), files, content.KindArticle) {
		if a.Status == content.StatusDraft {
			g.drafts = append(g.drafts, a)
			continue
		}
		published = append(published, a)
	}

	g.articles, g.translations, err = splitTranslations(published, s)
	if err != nil {
		return err
	}
	sortByDateDesc(g.articles)
	sortByDateDesc(g.translations)

	g.categories, err = buildTaxonomies(g.articles, s, "CATEGORY", func(c *content.Content) []string {
		return []string{c.Category}
	})
	if err != nil {
		return err
	}
	g.tags, err = buildTaxonomies(g.articles, s, "TAG", func(c *content.Content) []string { return c.Tags })
	if err != nil {
		return err
	}

	dates := append([]*content.Content(nil), g.articles...)
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].Date.Before(dates[j].Date) })

	g.cfg.Context["articles"] = g.articles
	g.cfg.Context["translations"] = g.translations
	g.cfg.Context["drafts"] = g.drafts
	g.cfg.Context["categories"] = g.categories
	g.cfg.Context["tags"] = g.tags
	g.cfg.Context["dates"] = dates

	g.logger.Info("Articles read",
		logfields.Count(len(g.articles)),
		slog.Int("translations", len(g.translations)),
		slog.Int("drafts", len(g.drafts)))
	return nil
}

// GenerateOutput writes every article, the index and the taxonomy pages.
func (g *ArticlesGenerator) GenerateOutput(ctx context.Context, w *writer.Writer) error {
	set, err := themes.Templates(g.cfg.ThemePath)
	if err != nil {
		return err
	}
	articleTmpl, err := themes.Lookup(set, "article.html")
	if err != nil {
		return err
	}

	categoryOf := map[string]*Taxonomy{}
	for _, c := range g.categories {
		categoryOf[c.Slug] = c
	}
	for _, a := range append(append([]*content.Content(nil), g.articles...), g.translations...) {
		if err := ctx.Err(); err != nil {
			return err
		}
		data := g.cfg.templateData(map[string]any{
			"article":  a,
			"title":    a.Title,
			"category": categoryOf[content.Slugify(a.Category)],
		})
		if err := w.WriteFile(a.SaveAs, articleTmpl, data); err != nil {
			return err
		}
	}

	if err := g.writeList(w, set, "index.html", g.cfg.Settings.String("INDEX_SAVE_AS"), nil); err != nil {
		return err
	}
	for _, c := range g.categories {
		if err := g.writeList(w, set, "category.html", c.SaveAs, map[string]any{"category": c, "title": c.Name, "articles": c.Articles}); err != nil {
			return err
		}
	}
	for _, t := range g.tags {
		if err := g.writeList(w, set, "tag.html", t.SaveAs, map[string]any{"tag": t, "title": t.Name, "articles": t.Articles}); err != nil {
			return err
		}
	}
	return nil
}

func (g *ArticlesGenerator) writeList(w *writer.Writer, set *template.Template, tmplName, saveAs string, extra map[string]any) error {
	if saveAs == "" {
		return nil
	}
	tmpl, err := themes.Lookup(set, tmplName)
	if err != nil {
		return err
	}
	if err := w.WriteFile(saveAs, tmpl, g.cfg.templateData(extra)); err != nil {
		return fmt.Errorf("write %s: %w", saveAs, err)
	}
	return nil
}

func sortByDateDesc(items []*content.Content) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
}
