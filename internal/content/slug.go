package content

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s-]`)
	separators = regexp.MustCompile(`[-\s]+`)
)

// Slugify turns a title into an ASCII, lower-case, hyphen separated slug.
// Accents are decomposed and dropped; other non-ASCII characters are removed.
func Slugify(value string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, value)
	if err != nil {
		ascii = value
	}
	ascii = strings.ToLower(strings.TrimSpace(nonWord.ReplaceAllString(ascii, "")))
	return separators.ReplaceAllString(ascii, "-")
}
