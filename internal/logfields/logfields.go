package logfields

import "log/slog"

// LevelCritical is used for unrecovered failures; -q keeps only these.
const LevelCritical = slog.LevelError + 4

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyGenerator  = "generator"
	KeyPhase      = "phase"
	KeyPath       = "path"
	KeyFile       = "file"
	KeySetting    = "setting"
	KeyValue      = "value"
	KeyTree       = "tree"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr       { return slog.String(KeyBuildID, id) }
func Generator(name string) slog.Attr   { return slog.String(KeyGenerator, name) }
func Phase(name string) slog.Attr       { return slog.String(KeyPhase, name) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func File(f string) slog.Attr           { return slog.String(KeyFile, f) }
func Setting(key string) slog.Attr      { return slog.String(KeySetting, key) }
func Value(v any) slog.Attr             { return slog.Any(KeyValue, v) }
func Tree(root string) slog.Attr        { return slog.String(KeyTree, root) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
