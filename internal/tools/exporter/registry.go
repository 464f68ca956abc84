package exporter

import (
	"fmt"
	"sort"

	i18ncatalog "github.com/louisbranch/fillari-i18n/internal/platform/i18n/catalog"
)

// Artifact is one exported file, relative to the output directory.
type Artifact struct {
	Path    string
	Content []byte
}

// Exporter renders one locale of a bundle in a target format.
type Exporter interface {
	Format() string
	Export(bundle *i18ncatalog.Bundle, locale string) (Artifact, error)
}

// Registry maps format names to exporters.
type Registry struct {
	byFormat map[string]Exporter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byFormat: map[string]Exporter{}}
}

// DefaultRegistry returns a registry holding every built-in format.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TSExporter{})
	r.Register(CatalogYAMLExporter{})
	r.Register(NewGoI18nJSONExporter())
	r.Register(NewGoI18nTOMLExporter())
	return r
}

// Register adds e, replacing any exporter with the same format.
func (r *Registry) Register(e Exporter) {
	r.byFormat[e.Format()] = e
}

// Get returns the exporter for format.
func (r *Registry) Get(format string) (Exporter, bool) {
	e, ok := r.byFormat[format]
	return e, ok
}

// Formats returns registered format names in order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.byFormat))
	for format := range r.byFormat {
		out = append(out, format)
	}
	sort.Strings(out)
	return out
}

// ExportAll renders every locale of bundle with the exporter for format.
func (r *Registry) ExportAll(bundle *i18ncatalog.Bundle, format string) ([]Artifact, error) {
	e, ok := r.Get(format)
	if !ok {
		return nil, unknownFormat(format, r.Formats())
	}
	locales := bundle.Locales()
	out := make([]Artifact, 0, len(locales))
	for _, locale := range locales {
		artifact, err := e.Export(bundle, locale)
		if err != nil {
			return nil, fmt.Errorf("export %s as %s: %w", locale, format, err)
		}
		out = append(out, artifact)
	}
	return out, nil
}
