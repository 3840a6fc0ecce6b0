package generators

import (
	"sort"
	"strings"

	"github.com/ScorpionResponse/pelican/internal/content"
	"github.com/ScorpionResponse/pelican/internal/settings"
)

// Taxonomy is a category or tag with the articles filed under it.
type Taxonomy struct {
	Name     string
	Slug     string
	URL      string
	SaveAs   string
	Articles []*content.Content
}

// buildTaxonomies groups articles by the names keyOf returns, formatting
// URL and SAVE_AS with the prefix templates (CATEGORY or TAG). Result is
// sorted by name.
func buildTaxonomies(articles []*content.Content, s settings.Settings, prefix string, keyOf func(*content.Content) []string) ([]*Taxonomy, error) {
	bySlug := map[string]*Taxonomy{}
	for _, a := range articles {
		for _, name := range keyOf(a) {
			slug := content.Slugify(name)
			if slug == "" {
				continue
			}
			t, ok := bySlug[slug]
			if !ok {
				fields := map[string]any{"slug": slug, "name": name}
				url, err := content.FormatTemplate(s.String(prefix+"_URL"), fields)
				if err != nil {
					return nil, err
				}
				saveAs, err := content.FormatTemplate(s.String(prefix+"_SAVE_AS"), fields)
				if err != nil {
					return nil, err
				}
				t = &Taxonomy{Name: name, Slug: slug, URL: url, SaveAs: saveAs}
				bySlug[slug] = t
			}
			t.Articles = append(t.Articles, a)
		}
	}
	out := make([]*Taxonomy, 0, len(bySlug))
	for _, t := range bySlug {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}
