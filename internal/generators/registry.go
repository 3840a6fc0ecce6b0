package generators

import (
	"fmt"

	"github.com/ScorpionResponse/pelican/internal/settings"
)

// Descriptor registers a generator under a name. Enabled may be nil, in
// which case the generator is always part of the pipeline.
type Descriptor struct {
	Name    string
	Enabled func(settings.Settings) bool
	New     Factory
}

// Registry is an ordered list of descriptors; registration order is
// pipeline order.
type Registry struct {
	descriptors []Descriptor
}

// NewRegistry returns a registry holding ds in order.
func NewRegistry(ds ...Descriptor) *Registry {
	r := &Registry{}
	for _, d := range ds {
		r.Register(d)
	}
	return r
}

// Register appends d, replacing an existing descriptor of the same name in
// place.
func (r *Registry) Register(d Descriptor) {
	for i := range r.descriptors {
		if r.descriptors[i].Name == d.Name {
			r.descriptors[i] = d
			return
		}
	}
	r.descriptors = append(r.descriptors, d)
}

// Names returns the names of the descriptors enabled for s, in order.
func (r *Registry) Names(s settings.Settings) []string {
	var names []string
	for _, d := range r.descriptors {
		if d.Enabled == nil || d.Enabled(s) {
			names = append(names, d.Name)
		}
	}
	return names
}

// Build instantiates the enabled generators, in order, from one shared cfg.
func (r *Registry) Build(s settings.Settings, cfg Config) ([]Generator, error) {
	var out []Generator
	for _, d := range r.descriptors {
		if d.Enabled != nil && !d.Enabled(s) {
			continue
		}
		g, err := d.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("create generator %s: %w", d.Name, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Default returns the standard pipeline: articles, pages and static, with
// pdf appended when PDF_GENERATOR is set.
func Default() *Registry {
	return NewRegistry(
		Descriptor{Name: "articles", New: NewArticles},
		Descriptor{Name: "pages", New: NewPages},
		Descriptor{Name: "static", New: NewStatic},
		Descriptor{
			Name:    "pdf",
			Enabled: func(s settings.Settings) bool { return s.Bool(settings.KeyPDFGenerator) },
			New:     NewPDF,
		},
	)
}
