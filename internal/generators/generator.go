package generators

import (
	"context"
	"log/slog"

	"github.com/ScorpionResponse/pelican/internal/logfields"
	"github.com/ScorpionResponse/pelican/internal/readers"
	"github.com/ScorpionResponse/pelican/internal/settings"
	"github.com/ScorpionResponse/pelican/internal/writer"
)

// Context is the per-build mutable map shared by all generators. It starts
// as a copy of the settings and is discarded after the build.
type Context map[string]any

// Config is handed unchanged to every generator factory of a build.
type Config struct {
	Context               Context
	Settings              settings.Settings
	ContentPath           string
	ThemePath             string
	OutputPath            string
	Markup                []string
	DeleteOutputDirectory bool
	Readers               *readers.Registry
}

// Generator is a pipeline member.
type Generator interface {
	Name() string
}

// ContextGenerator contributes to the shared context.
type ContextGenerator interface {
	Generator
	GenerateContext(ctx context.Context) error
}

// OutputGenerator writes files.
type OutputGenerator interface {
	Generator
	GenerateOutput(ctx context.Context, w *writer.Writer) error
}

// Factory builds a generator for one build.
type Factory func(Config) (Generator, error)

func (c Config) readers() *readers.Registry {
	if c.Readers != nil {
		return c.Readers
	}
	return readers.NewRegistry()
}

func (c Config) logger(name string) *slog.Logger {
	return slog.Default().With(logfields.Generator(name))
}

// templateData returns a copy of the shared context overlaid with extra.
func (c Config) templateData(extra map[string]any) map[string]any {
	data := make(map[string]any, len(c.Context)+len(extra))
	for k, v := range c.Context {
		data[k] = v
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
