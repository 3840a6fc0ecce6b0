package settings

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"
)

// Settings maps upper-case configuration keys to heterogeneous values
// (strings, booleans, numbers, lists, nested maps).
type Settings map[string]any

// String returns the value for key as a string, or "" when unset.
func (s Settings) String(key string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

// Bool reports whether the value for key is truthy.
func (s Settings) Bool(key string) bool {
	return Truthy(s[key])
}

// Strings returns the value for key as a list. Lists of any element type are
// stringified and comma-separated strings are split and trimmed.
func (s Settings) Strings(key string) []string {
	switch v := s[key].(type) {
	case nil:
		return nil
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

// Int returns the value for key as an int, or def when unset or not numeric.
func (s Settings) Int(key string, def int) int {
	switch v := s[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// Duration returns the value for key as a duration. Strings are parsed with
// time.ParseDuration, bare numbers are seconds.
func (s Settings) Duration(key string, def time.Duration) time.Duration {
	switch v := s[key].(type) {
	case time.Duration:
		return v
	case int:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	case string:
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

// Clone returns a copy of s whose nested lists and maps are copied too, so
// a build may accumulate into the clone without touching s.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case Settings:
		return val.Clone()
	default:
		return v
	}
}

// Merge overlays other onto a copy of s.
func (s Settings) Merge(other Settings) Settings {
	out := s.Clone()
	maps.Copy(out, other)
	return out
}

// Truthy mirrors the truth test settings files were written against:
// false, zero, empty strings and empty collections are false.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case []string:
		return len(val) > 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
