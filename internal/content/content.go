package content

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/ScorpionResponse/pelican/internal/readers"
	"github.com/ScorpionResponse/pelican/internal/settings"
)

// Kind selects the settings prefix used for URL templates.
type Kind string

const (
	KindArticle Kind = "ARTICLE"
	KindPage    Kind = "PAGE"
)

const (
	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusHidden    = "hidden"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02 15:04",
	"2006/01/02",
}

// Content is one article or page ready for templating.
type Content struct {
	Kind        Kind
	Title       string
	Slug        string
	Lang        string
	Category    string
	Author      string
	Tags        []string
	Date        time.Time
	Status      string
	Body        template.HTML
	Summary     template.HTML
	Metadata    map[string]any
	SourcePath  string
	Fingerprint string
	URL         string
	SaveAs      string

	// Translations of this content in other languages, filled by generators.
	Translations []*Content
}

// FromDocument builds Content from a reader document, applying defaults from
// s and expanding the URL and SAVE_AS templates for kind.
func FromDocument(doc *readers.Document, s settings.Settings, kind Kind) (*Content, error) {
	meta := doc.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	c := &Content{
		Kind:        kind,
		Title:       metaString(meta, "title"),
		Lang:        metaString(meta, "lang"),
		Category:    metaString(meta, "category"),
		Author:      metaString(meta, "author"),
		Status:      strings.ToLower(metaString(meta, "status")),
		Tags:        metaList(meta, "tags"),
		Body:        template.HTML(doc.Body),
		Metadata:    meta,
		SourcePath:  doc.Path,
		Fingerprint: doc.Fingerprint,
	}
	if c.Title == "" {
		return nil, fmt.Errorf("%s: missing title", doc.Path)
	}
	c.Slug = metaString(meta, "slug")
	if c.Slug == "" {
		c.Slug = Slugify(c.Title)
	}
	if c.Lang == "" {
		c.Lang = s.String("DEFAULT_LANG")
	}
	if c.Category == "" && kind == KindArticle {
		c.Category = categoryFromPath(doc.Path, s)
	}
	if c.Author == "" {
		c.Author = s.String("AUTHOR")
	}
	if c.Status == "" {
		c.Status = s.String("DEFAULT_STATUS")
	}

	date, err := parseDate(meta["date"])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Path, err)
	}
	if date.IsZero() && doc.ModTime != 0 && s.Bool("FALLBACK_ON_FS_DATE") {
		date = time.Unix(0, doc.ModTime)
	}
	c.Date = date

	if summary := metaString(meta, "summary"); summary != "" {
		c.Summary = template.HTML(summary)
	} else {
		c.Summary = template.HTML(Summarize(doc.Body, s.Int("SUMMARY_MAX_LENGTH", 50)))
	}

	if err := c.expandURLs(s, ""); err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Path, err)
	}
	return c, nil
}

// UseLangTemplates re-expands URL and SAVE_AS with the *_LANG_* templates,
// used for translations that are not in the default language.
func (c *Content) UseLangTemplates(s settings.Settings) error {
	return c.expandURLs(s, "_LANG")
}

func (c *Content) expandURLs(s settings.Settings, lang string) error {
	fields := c.Fields()
	prefix := string(c.Kind) + lang
	var err error
	if c.URL, err = FormatTemplate(s.String(prefix+"_URL"), fields); err != nil {
		return err
	}
	if saveAs := metaString(c.Metadata, "save_as"); saveAs != "" {
		c.SaveAs = saveAs
		return nil
	}
	c.SaveAs, err = FormatTemplate(s.String(prefix+"_SAVE_AS"), fields)
	return err
}

// Fields returns the values usable in URL templates.
func (c *Content) Fields() map[string]any {
	fields := map[string]any{
		"slug":     c.Slug,
		"lang":     c.Lang,
		"category": Slugify(c.Category),
		"author":   Slugify(c.Author),
		"date":     c.Date,
	}
	for k, v := range c.Metadata {
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	return fields
}

// IsPublished reports whether the content should be listed and rendered.
func (c *Content) IsPublished() bool { return c.Status == StatusPublished }

// LocaleDate formats Date with DEFAULT_DATE_FORMAT.
func (c *Content) LocaleDate(s settings.Settings) string {
	if c.Date.IsZero() {
		return ""
	}
	out, err := FormatTemplate("{date:"+s.String("DEFAULT_DATE_FORMAT")+"}", map[string]any{"date": c.Date})
	if err != nil {
		return c.Date.Format("2006-01-02")
	}
	return out
}

func categoryFromPath(path string, s settings.Settings) string {
	base := s.String(settings.KeyPath)
	if base != "" {
		if rel, err := filepath.Rel(base, filepath.Dir(path)); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			return strings.Split(filepath.ToSlash(rel), "/")[0]
		}
	}
	return s.String("DEFAULT_CATEGORY")
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return d, nil
	case string:
		d = strings.TrimSpace(d)
		if d == "" {
			return time.Time{}, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, d, time.Local); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable date %q", d)
	default:
		return time.Time{}, fmt.Errorf("unsupported date value %v", v)
	}
}

func metaString(meta map[string]any, key string) string {
	v, ok := meta[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func metaList(meta map[string]any, key string) []string {
	var out []string
	switch v := meta[key].(type) {
	case []any:
		for _, item := range v {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
