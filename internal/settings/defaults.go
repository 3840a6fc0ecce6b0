package settings

// DefaultTheme names the theme bundled with the binary.
const DefaultTheme = "simple"

// Recognized keys the build core reads directly.
const (
	KeyPath                      = "PATH"
	KeyTheme                     = "THEME"
	KeyOutputPath                = "OUTPUT_PATH"
	KeyMarkup                    = "MARKUP"
	KeyDeleteOutputDirectory     = "DELETE_OUTPUT_DIRECTORY"
	KeyPDFGenerator              = "PDF_GENERATOR"
	KeyCleanURLs                 = "CLEAN_URLS"
	KeyArticlePermalinkStructure = "ARTICLE_PERMALINK_STRUCTURE"
	KeyPelicanClass              = "PELICAN_CLASS"

	KeyArticleURL        = "ARTICLE_URL"
	KeyArticleLangURL    = "ARTICLE_LANG_URL"
	KeyPageURL           = "PAGE_URL"
	KeyPageLangURL       = "PAGE_LANG_URL"
	KeyArticleSaveAs     = "ARTICLE_SAVE_AS"
	KeyArticleLangSaveAs = "ARTICLE_LANG_SAVE_AS"
	KeyPageSaveAs        = "PAGE_SAVE_AS"
	KeyPageLangSaveAs    = "PAGE_LANG_SAVE_AS"

	KeyAutoreloadInterval = "AUTORELOAD_INTERVAL"
	KeyAutoreloadBackend  = "AUTORELOAD_BACKEND"
	KeyWatchFailurePolicy = "WATCH_FAILURE_POLICY"
	KeyBuildJournal       = "BUILD_JOURNAL"
	KeyNATSURL            = "NATS_URL"
	KeyNATSSubject        = "NATS_SUBJECT"
	KeyMetricsAddr        = "METRICS_ADDR"
)

// Defaults returns a fresh copy of the baseline settings.
func Defaults() Settings {
	return Settings{
		KeyPath:                  "",
		"ARTICLE_DIR":            "",
		"ARTICLE_EXCLUDES":       []string{"pages"},
		"PAGE_DIR":               "pages",
		"PAGE_EXCLUDES":          []string{},
		KeyTheme:                 DefaultTheme,
		KeyOutputPath:            "output/",
		KeyMarkup:                []string{"md", "html"},
		"STATIC_PATHS":           []string{"images"},
		"THEME_STATIC_PATHS":     []string{"static"},
		"SITENAME":               "A Pelican Blog",
		"SITEURL":                "",
		"AUTHOR":                 "",
		"DISPLAY_PAGES_ON_MENU":  true,
		KeyPDFGenerator:          false,
		"PDF_SAVE_AS":            "pdf/{slug}.pdf",
		"DEFAULT_CATEGORY":       "misc",
		"FALLBACK_ON_FS_DATE":    true,
		"WITH_FUTURE_DATES":      true,
		KeyDeleteOutputDirectory: false,
		KeyCleanURLs:             false,
		"RELATIVE_URLS":          true,
		"DEFAULT_LANG":           "en",
		"DEFAULT_STATUS":         "published",
		"DEFAULT_DATE_FORMAT":    "%a %d %B %Y",
		"SUMMARY_MAX_LENGTH":     50,

		KeyArticleURL:        "{slug}.html",
		KeyArticleSaveAs:     "{slug}.html",
		KeyArticleLangURL:    "{slug}-{lang}.html",
		KeyArticleLangSaveAs: "{slug}-{lang}.html",
		KeyPageURL:           "pages/{slug}.html",
		KeyPageSaveAs:        "pages/{slug}.html",
		KeyPageLangURL:       "pages/{slug}-{lang}.html",
		KeyPageLangSaveAs:    "pages/{slug}-{lang}.html",
		"CATEGORY_URL":       "category/{slug}.html",
		"CATEGORY_SAVE_AS":   "category/{slug}.html",
		"TAG_URL":            "tag/{slug}.html",
		"TAG_SAVE_AS":        "tag/{slug}.html",
		"INDEX_SAVE_AS":      "index.html",

		KeyArticlePermalinkStructure: "",
		KeyPelicanClass:              "pelican",

		KeyAutoreloadInterval: "500ms",
		KeyAutoreloadBackend:  "poll",
		KeyWatchFailurePolicy: "abort",
		KeyBuildJournal:       "",
		KeyNATSURL:            "",
		KeyNATSSubject:        "pelican.builds",
		KeyMetricsAddr:        "",
	}
}
