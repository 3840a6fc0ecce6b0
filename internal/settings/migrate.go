package settings

import (
	"log/slog"
	"regexp"
	"strings"
)

var (
	namedToken    = regexp.MustCompile(`%\((\w+)\)s`)
	strftimeToken = regexp.MustCompile(`(%[A-Za-z])`)
)

// cleanURLs are the URL templates that replace the CLEAN_URLS flag.
var cleanURLs = []struct{ key, value string }{
	{KeyArticleURL, "{slug}/"},
	{KeyArticleLangURL, "{slug}-{lang}/"},
	{KeyPageURL, "pages/{slug}/"},
	{KeyPageLangURL, "pages/{slug}-{lang}/"},
}

// PermalinkTargets are the keys prefixed with a migrated ARTICLE_PERMALINK_STRUCTURE.
var PermalinkTargets = []string{
	KeyArticleURL,
	KeyPageURL,
	KeyArticleSaveAs,
	KeyArticleLangSaveAs,
	KeyPageSaveAs,
	KeyPageLangSaveAs,
}

// Migrate rewrites deprecated keys into their modern equivalents in place and
// returns s. It must run exactly once per settings value: the permalink
// migration prefixes existing values and is not idempotent.
func Migrate(s Settings) Settings {
	return MigrateWithLogger(s, slog.Default())
}

// MigrateWithLogger is Migrate reporting its warnings to logger.
func MigrateWithLogger(s Settings, logger *slog.Logger) Settings {
	if logger == nil {
		logger = slog.Default()
	}
	if s.Bool(KeyCleanURLs) {
		logger.Warn("Found deprecated `CLEAN_URLS` in settings. Modifying the following settings for the same behaviour.")
		for _, u := range cleanURLs {
			s[u.key] = u.value
		}
		for _, u := range cleanURLs {
			logDerived(logger, u.key, s.String(u.key))
		}
	}

	if s.Bool(KeyArticlePermalinkStructure) {
		logger.Warn("Found deprecated `ARTICLE_PERMALINK_STRUCTURE` in settings. Modifying the following settings for the same behaviour.")
		structure := ConvertPermalinkStructure(s.String(KeyArticlePermalinkStructure))
		for _, key := range PermalinkTargets {
			s[key] = joinURLPath(structure, s.String(key))
			logDerived(logger, key, s.String(key))
		}
	}
	return s
}

// ConvertPermalinkStructure turns a %-style permalink structure into the
// {name} / {date:%X} template form with any single leading slash removed.
func ConvertPermalinkStructure(structure string) string {
	structure = namedToken.ReplaceAllString(structure, "{$1}")
	structure = strftimeToken.ReplaceAllString(structure, "{date:$1}")
	return strings.TrimPrefix(structure, "/")
}

// joinURLPath joins like a filesystem join without cleaning, so a trailing
// slash on the template ("{slug}/") survives.
func joinURLPath(prefix, rest string) string {
	switch {
	case prefix == "" || strings.HasPrefix(rest, "/"):
		return rest
	case strings.HasSuffix(prefix, "/"):
		return prefix + rest
	default:
		return prefix + "/" + rest
	}
}

func logDerived(logger *slog.Logger, key, value string) {
	logger.Warn(key+" = '"+value+"'", "setting", key, "value", value)
}
