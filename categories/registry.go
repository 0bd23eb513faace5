// Package categories is the single source of presentation data per category:
// icon, color and emoji label. The list view, the map view and the exports
// all read the same Registry.
package categories

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var defaultYAML []byte

// Style is how one category is drawn.
type Style struct {
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
	Emoji string `yaml:"emoji"`
}

type document struct {
	Fallback   Style            `yaml:"fallback"`
	Categories map[string]Style `yaml:"categories"`
}

// Registry maps category names to styles. It is read-only after Load.
type Registry struct {
	fallback Style
	styles   map[string]Style
}

// Default returns the embedded registry.
func Default() *Registry {
	r, err := parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("categories: embedded registry: %v", err))
	}
	return r
}

// Load returns the embedded registry with the entries of the YAML file at
// path layered on top. An empty path yields Default().
func Load(path string) (*Registry, error) {
	r := Default()
	if path == "" {
		return r, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("categories: read %q: %w", path, err)
	}
	override, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("categories: %q: %w", path, err)
	}

	if override.fallback != (Style{}) {
		r.fallback = override.fallback
	}
	for name, s := range override.styles {
		r.styles[name] = s
	}
	return r, nil
}

func parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	r := &Registry{fallback: doc.Fallback, styles: make(map[string]Style, len(doc.Categories))}
	for name, s := range doc.Categories {
		r.styles[name] = s
	}
	return r, nil
}

// Style returns the style of category, or the fallback. Missing fields of a
// partial entry are taken from the fallback.
func (r *Registry) Style(category string) Style {
	s, ok := r.styles[category]
	if !ok {
		return r.fallback
	}
	if s.Icon == "" {
		s.Icon = r.fallback.Icon
	}
	if s.Color == "" {
		s.Color = r.fallback.Color
	}
	return s
}

// Known reports whether category has its own entry.
func (r *Registry) Known(category string) bool {
	_, ok := r.styles[category]
	return ok
}

// Label is the display name: the emoji followed by the category, or the bare
// name when the category has no emoji.
func (r *Registry) Label(category string) string {
	s, ok := r.styles[category]
	if !ok || s.Emoji == "" {
		return category
	}
	return s.Emoji + " " + category
}
