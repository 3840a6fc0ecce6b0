package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	ferrors "github.com/ScorpionResponse/pelican/internal/foundation/errors"
	"github.com/ScorpionResponse/pelican/internal/settings"
)

// Runner performs one full build per call.
type Runner interface {
	Run(ctx context.Context) error
}

// Constructor creates a Runner for the given settings.
type Constructor func(settings.Settings, Options) (Runner, error)

var (
	classesMu sync.RWMutex
	classes   = map[string]Constructor{
		"pelican": func(s settings.Settings, opts Options) (Runner, error) { return New(s, opts) },
	}
)

// RegisterClass makes a Runner implementation selectable via PELICAN_CLASS.
func RegisterClass(name string, c Constructor) {
	classesMu.Lock()
	defer classesMu.Unlock()
	classes[strings.ToLower(name)] = c
}

// ForSettings constructs the Runner named by PELICAN_CLASS (default "pelican").
func ForSettings(s settings.Settings, opts Options) (Runner, error) {
	name := strings.ToLower(s.String(settings.KeyPelicanClass))
	if name == "" {
		name = "pelican"
	}
	classesMu.RLock()
	c, ok := classes[name]
	known := make([]string, 0, len(classes))
	for k := range classes {
		known = append(known, k)
	}
	classesMu.RUnlock()
	if !ok {
		sort.Strings(known)
		return nil, ferrors.ConfigError(fmt.Sprintf("unknown PELICAN_CLASS %q", name)).
			WithContext("known", strings.Join(known, ",")).
			Build()
	}
	return c(s, opts)
}
