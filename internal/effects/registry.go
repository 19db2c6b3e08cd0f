package effects

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/codalotl/framekit/internal/q/gradient"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPreset  = errors.New("effects: unknown preset")
	ErrUnknownPalette = errors.New("effects: unknown palette")
)

//go:embed presets.yaml
var embeddedPresets []byte

// Registry holds named presets and palettes. It is immutable; With returns an extended copy.
type Registry struct {
	presets  map[string]Spec
	palettes map[string][]string
}

type registryFile struct {
	Presets  map[string]Spec     `yaml:"presets"`
	Palettes map[string][]string `yaml:"palettes"`
}

// LoadRegistry parses a registry from YAML with "presets" and "palettes" maps, validating every preset and palette.
func LoadRegistry(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("effects: parse registry: %w", err)
	}
	r := &Registry{presets: map[string]Spec{}, palettes: map[string][]string{}}
	return r.With(f.Presets, f.Palettes)
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := LoadRegistry(embeddedPresets)
	if err != nil {
		panic(err)
	}
	return r
})

// Default returns the built-in registry.
func Default() *Registry {
	return defaultRegistry()
}

// With returns a copy of r with presets and palettes added, replacing any with the same name.
func (r *Registry) With(presets map[string]Spec, palettes map[string][]string) (*Registry, error) {
	out := &Registry{presets: maps.Clone(r.presets), palettes: maps.Clone(r.palettes)}
	for name, s := range presets {
		v, err := New(s)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		out.presets[name] = v
	}
	for name, colors := range palettes {
		if _, err := New(Spec{Kind: KindMultiStop, Colors: colors}); err != nil {
			return nil, fmt.Errorf("palette %q: %w", name, err)
		}
		out.palettes[name] = slices.Clone(colors)
	}
	return out, nil
}

// Lookup returns the preset called name.
func (r *Registry) Lookup(name string) (Spec, error) {
	s, ok := r.presets[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	s.Colors = slices.Clone(s.Colors)
	return s, nil
}

// Names returns the sorted preset names.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.presets))
}

// Palette returns the colors of the palette called name.
func (r *Registry) Palette(name string) ([]string, error) {
	p, ok := r.palettes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	return slices.Clone(p), nil
}

// PaletteNames returns the sorted palette names.
func (r *Registry) PaletteNames() []string {
	return slices.Sorted(maps.Keys(r.palettes))
}

// FromPalette returns a multi-stop effect through the palette's colors.
func (r *Registry) FromPalette(name string, direction gradient.Direction, target gradient.Target) (Spec, error) {
	colors, err := r.Palette(name)
	if err != nil {
		return Spec{}, err
	}
	return MultiStop(colors, direction, target)
}

// Resolve returns the preset called name, or else a palette called name as a vertical content effect.
func (r *Registry) Resolve(name string) (Spec, error) {
	if s, err := r.Lookup(name); err == nil {
		return s, nil
	}
	if _, ok := r.palettes[name]; ok {
		return r.FromPalette(name, gradient.DirectionVertical, gradient.TargetContent)
	}
	return Spec{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Lookup returns the built-in preset called name.
func Lookup(name string) (Spec, error) {
	return Default().Lookup(name)
}

// FromPalette returns a multi-stop effect through the built-in palette called name.
func FromPalette(name string, direction gradient.Direction, target gradient.Target) (Spec, error) {
	return Default().FromPalette(name, direction, target)
}
