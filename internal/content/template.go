package content

import (
	"fmt"
	"regexp"
	"time"

	"github.com/ncruces/go-strftime"
)

var field = regexp.MustCompile(`\{(\w+)(?::([^}]*))?\}`)

// FormatTemplate expands "{name}" and "{name:spec}" fields in a URL or path
// template. Time values take a strftime spec ("{date:%Y}"); other values
// ignore the spec. Unknown field names are an error.
func FormatTemplate(tmpl string, fields map[string]any) (string, error) {
	var missing string
	out := field.ReplaceAllStringFunc(tmpl, func(m string) string {
		parts := field.FindStringSubmatch(m)
		name, spec := parts[1], parts[2]
		v, ok := fields[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return m
		}
		if t, ok := v.(time.Time); ok {
			if spec == "" {
				return t.Format("2006-01-02 15:04:05")
			}
			return strftime.Format(spec, t)
		}
		return fmt.Sprint(v)
	})
	if missing != "" {
		return "", fmt.Errorf("unknown field %q in template %q", missing, tmpl)
	}
	return out, nil
}
