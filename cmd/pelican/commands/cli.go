// Package commands wires the command line onto settings, the orchestrator
// and the watch loop.
package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ScorpionResponse/pelican/internal/logfields"
	"github.com/ScorpionResponse/pelican/internal/settings"
)

// DefaultSettingsFile is read when --settings is not given and it exists.
const DefaultSettingsFile = "pelicanconf.yaml"

// CLI is the flag set of the pelican binary.
type CLI struct {
	Path                  string           `arg:"" optional:"" help:"Path where to find the content files."`
	ThemePath             string           `short:"t" name:"theme-path" help:"Path where to find the theme templates. If not specified, it will use the default one included with pelican."`
	Output                string           `short:"o" name:"output" help:"Where to output the generated files. If not specified, a directory will be created, named \"output\" in the current path."`
	Markup                string           `short:"m" name:"markup" help:"The list of markup language to use (rst or md). Please indicate them separated by commas."`
	Settings              string           `short:"s" name:"settings" help:"The settings of the application, this is automatically set to ${default_settings} if a file exists with this name." type:"path"`
	DeleteOutputDirectory bool             `short:"d" name:"delete-output-directory" help:"Delete the output directory."`
	Verbose               bool             `short:"v" help:"Show all messages."`
	Quiet                 bool             `short:"q" help:"Show only critical errors."`
	Debug                 bool             `short:"D" help:"Show all messages, including debug messages."`
	Version               kong.VersionFlag `name:"version" help:"Print the pelican version and exit."`
	Autoreload            bool             `short:"r" name:"autoreload" help:"Relaunch pelican each time a modification occurs on the content files."`
	MetricsAddr           string           `name:"metrics-addr" help:"Serve Prometheus metrics on this address while autoreloading (overrides METRICS_ADDR)."`
}

// Level returns the log level selected by the verbosity flags. The default
// shows warnings; debug wins over verbose, verbose over quiet.
func (c *CLI) Level() slog.Level {
	switch {
	case c.Debug:
		return slog.LevelDebug
	case c.Verbose:
		return slog.LevelInfo
	case c.Quiet:
		return logfields.LevelCritical
	default:
		return slog.LevelWarn
	}
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.Level()}))
	slog.SetDefault(logger)
	return nil
}

// SettingsFile returns the settings file to load, or "" for defaults only.
func (c *CLI) SettingsFile() string {
	if c.Settings != "" {
		return c.Settings
	}
	if _, err := os.Stat(DefaultSettingsFile); err == nil {
		return DefaultSettingsFile
	}
	return ""
}

// MarkupList splits --markup on commas, trimming and lower-casing entries.
func (c *CLI) MarkupList() []string {
	if strings.TrimSpace(c.Markup) == "" {
		return nil
	}
	var out []string
	for _, m := range strings.Split(c.Markup, ",") {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// Apply overlays the flags that were given onto s.
func (c *CLI) Apply(s settings.Settings) {
	if c.Path != "" {
		s[settings.KeyPath] = c.Path
	}
	if c.ThemePath != "" {
		s[settings.KeyTheme] = c.ThemePath
	}
	if c.Output != "" {
		s[settings.KeyOutputPath] = c.Output
	}
	if m := c.MarkupList(); m != nil {
		s[settings.KeyMarkup] = m
	}
	if c.DeleteOutputDirectory {
		s[settings.KeyDeleteOutputDirectory] = true
	}
	if c.MetricsAddr != "" {
		s[settings.KeyMetricsAddr] = c.MetricsAddr
	}
}
