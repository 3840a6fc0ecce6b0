package content

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScorpionResponse/pelican/internal/readers"
	"github.com/ScorpionResponse/pelican/internal/settings"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"  Crème Brûlée!  ", "creme-brulee"},
		{"Go -- is   fun", "go-is-fun"},
		{"日本語 title", "title"},
		{"already-a-slug", "already-a-slug"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestFormatTemplate(t *testing.T) {
	date := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	fields := map[string]any{"slug": "intro", "lang": "fr", "date": date}

	got, err := FormatTemplate("{date:%Y}/{date:%m}/{slug}-{lang}.html", fields)
	require.NoError(t, err)
	assert.Equal(t, "2024/03/intro-fr.html", got)

	got, err = FormatTemplate("static/path.html", fields)
	require.NoError(t, err)
	assert.Equal(t, "static/path.html", got)

	_, err = FormatTemplate("{nope}.html", fields)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestSummarize(t *testing.T) {
	body := "<p>one two <em>three four</em> five</p><p>six</p>"

	assert.Equal(t, body, Summarize(body, 10))
	assert.Equal(t, "<p>one two <em>three ...</em></p>", Summarize(body, 3))
	assert.Equal(t, body, Summarize(body, 0))
}

func TestPlainText(t *testing.T) {
	got := PlainText("<h1>Title</h1><p>First <strong>para</strong>.</p><ul><li>a</li><li>b</li></ul>")
	assert.Equal(t, "Title\nFirst para.\na\nb", got)
}

func TestFromDocument(t *testing.T) {
	s := settings.Defaults()
	s["AUTHOR"] = "Jane Doe"

	doc := &readers.Document{
		Path: "/site/content/intro.md",
		Metadata: map[string]any{
			"title": "My First Post",
			"date":  "2024-03-09 10:00",
			"tags":  "go, static",
		},
		Body: "<p>Hello there.</p>",
	}

	c, err := FromDocument(doc, s, KindArticle)
	require.NoError(t, err)
	assert.Equal(t, "my-first-post", c.Slug)
	assert.Equal(t, "en", c.Lang)
	assert.Equal(t, "misc", c.Category)
	assert.Equal(t, "Jane Doe", c.Author)
	assert.Equal(t, StatusPublished, c.Status)
	assert.Equal(t, []string{"go", "static"}, c.Tags)
	assert.Equal(t, 2024, c.Date.Year())
	assert.Equal(t, "my-first-post.html", c.URL)
	assert.Equal(t, "my-first-post.html", c.SaveAs)
	assert.True(t, c.IsPublished())
}

func TestFromDocumentCategoryFromDirectory(t *testing.T) {
	s := settings.Defaults()
	s[settings.KeyPath] = "/site/content"

	doc := &readers.Document{
		Path:     "/site/content/travel/paris.md",
		Metadata: map[string]any{"title": "Paris"},
	}
	c, err := FromDocument(doc, s, KindArticle)
	require.NoError(t, err)
	assert.Equal(t, "travel", c.Category)
}

func TestFromDocumentMigratedPermalink(t *testing.T) {
	s := settings.Defaults()
	s[settings.KeyArticlePermalinkStructure] = "/%Y/%m/"
	settings.Migrate(s)

	doc := &readers.Document{
		Path:     "/site/content/a.md",
		Metadata: map[string]any{"title": "Dated", "date": "2023-11-05"},
	}
	c, err := FromDocument(doc, s, KindArticle)
	require.NoError(t, err)
	assert.Equal(t, "2023/11/dated.html", c.SaveAs)
}

func TestFromDocumentFallsBackToFileDate(t *testing.T) {
	s := settings.Defaults()
	mod := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := &readers.Document{
		Path:     "/site/content/a.md",
		Metadata: map[string]any{"title": "Undated"},
		ModTime:  mod.UnixNano(),
	}
	c, err := FromDocument(doc, s, KindArticle)
	require.NoError(t, err)
	assert.True(t, c.Date.Equal(mod))
}

func TestFromDocumentErrors(t *testing.T) {
	s := settings.Defaults()

	_, err := FromDocument(&readers.Document{Path: "x.md", Metadata: map[string]any{}}, s, KindPage)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "missing title"))

	_, err = FromDocument(&readers.Document{
		Path:     "x.md",
		Metadata: map[string]any{"title": "T", "date": "yesterday-ish"},
	}, s, KindPage)
	require.Error(t, err)
}

func TestUseLangTemplates(t *testing.T) {
	s := settings.Defaults()
	doc := &readers.Document{
		Path:     "/site/content/pages/about-fr.md",
		Metadata: map[string]any{"title": "About", "lang": "fr"},
	}
	c, err := FromDocument(doc, s, KindPage)
	require.NoError(t, err)
	require.NoError(t, c.UseLangTemplates(s))
	assert.Equal(t, "pages/about-fr.html", c.SaveAs)
}
