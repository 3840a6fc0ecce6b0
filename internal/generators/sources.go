package generators

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ScorpionResponse/pelican/internal/content"
	"github.com/ScorpionResponse/pelican/internal/paths"
	"github.com/ScorpionResponse/pelican/internal/settings"
)

// collectFiles lists files below root/sub whose extension is in markup,
// skipping hidden entries, any directory listed in excludes (relative to
// root) and the output directory. The result is in lexical order.
func collectFiles(root, sub string, excludes, markup []string, output string) ([]string, error) {
	start := filepath.Join(root, filepath.FromSlash(sub))
	var skip []string
	for _, e := range excludes {
		if e = strings.Trim(e, "/"); e != "" {
			skip = append(skip, filepath.Join(root, filepath.FromSlash(e)))
		}
	}
	var files []string
	err := filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == start && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if p != start && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if isOutputDir(p, start, output) {
				return fs.SkipDir
			}
			for _, s := range skip {
				if p != start && paths.Within(p, s) {
					return fs.SkipDir
				}
			}
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(p), "."))
		if slices.Contains(markup, ext) {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

// isOutputDir reports whether dir, met while walking start, is the output
// directory or lies below it. When start itself is inside the output
// directory nothing is skipped.
func isOutputDir(dir, start, output string) bool {
	if output == "" || dir == start || paths.Within(start, output) {
		return false
	}
	return paths.Within(dir, output)
}

// readContents reads files into content of kind. Files that cannot be read
// or lack required metadata are logged and skipped.
func readContents(cfg Config, name string, files []string, kind content.Kind) []*content.Content {
	reg := cfg.readers()
	log := cfg.logger(name)
	out := make([]*content.Content, 0, len(files))
	for _, f := range files {
		doc, err := reg.Read(f)
		if err != nil {
			log.Warn("Could not process "+f, "error", err)
			continue
		}
		c, err := content.FromDocument(doc, cfg.Settings, kind)
		if err != nil {
			log.Warn("Skipping "+f, "error", err)
			continue
		}
		out = append(out, c)
	}
	return out
}

// splitTranslations groups items by slug. In each group the item in the
// default language (or the first one) is the original; the rest become its
// translations and switch to the *_LANG_* URL templates.
func splitTranslations(items []*content.Content, s settings.Settings) (originals, translations []*content.Content, err error) {
	defaultLang := s.String("DEFAULT_LANG")
	groups := map[string][]*content.Content{}
	var order []string
	for _, c := range items {
		if _, ok := groups[c.Slug]; !ok {
			order = append(order, c.Slug)
		}
		groups[c.Slug] = append(groups[c.Slug], c)
	}
	for _, slug := range order {
		group := groups[slug]
		idx := slices.IndexFunc(group, func(c *content.Content) bool { return c.Lang == defaultLang })
		if idx < 0 {
			idx = 0
		}
		orig := group[idx]
		originals = append(originals, orig)
		for i, c := range group {
			if i == idx {
				continue
			}
			if err := c.UseLangTemplates(s); err != nil {
				return nil, nil, err
			}
			translations = append(translations, c)
		}
		for _, c := range group {
			for _, other := range group {
				if other != c {
					c.Translations = append(c.Translations, other)
				}
			}
		}
	}
	return originals, translations, nil
}
