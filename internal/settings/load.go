package settings

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ferrors "github.com/ScorpionResponse/pelican/internal/foundation/errors"
)

// pathKeys are resolved relative to the settings file when given as relative paths.
var pathKeys = []string{KeyPath, KeyOutputPath, KeyBuildJournal}

// Load reads a YAML settings file over Defaults. An empty path yields the defaults.
// Environment variables from .env/.env.local are loaded first (never overriding the
// process environment) and ${VAR} references in the file are expanded.
func Load(path string) (Settings, error) {
	if err := loadEnvFile(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	s := Defaults()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read settings file").
			Fatal().
			WithContext("file", path).
			Build()
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &raw); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse settings file").
			Fatal().
			WithContext("file", path).
			Build()
	}

	baseDir := filepath.Dir(path)
	for key, value := range raw {
		if key != strings.ToUpper(key) {
			slog.Debug("Ignoring non upper-case setting", "setting", key, "file", path)
			continue
		}
		s[key] = value
	}
	for _, key := range pathKeys {
		if _, set := raw[key]; !set {
			continue
		}
		if p := s.String(key); p != "" && !filepath.IsAbs(p) {
			s[key] = filepath.Join(baseDir, p)
		}
	}
	if theme, set := raw[KeyTheme].(string); set && strings.ContainsRune(theme, os.PathSeparator) && !filepath.IsAbs(theme) {
		s[KeyTheme] = filepath.Join(baseDir, theme)
	}
	return s, nil
}

// loadEnvFile loads the first of .env/.env.local found in the working directory.
func loadEnvFile() error {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
		slog.Debug("Loaded environment variables", "file", envPath)
		return nil
	}
	return fmt.Errorf("no .env file found")
}
