// Package effects describes gradient effects as validated, serializable values and keeps the registry of named presets and palettes.
package effects

import (
	"errors"
	"fmt"

	"github.com/codalotl/framekit/internal/q/gradient"
	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/validation"
)

// Kind is the color source of an effect.
type Kind string

const (
	KindGradient  Kind = "gradient"   // two colors
	KindMultiStop Kind = "multi_stop" // two or more colors, evenly spaced
	KindRainbow   Kind = "rainbow"    // hue sweep; no colors
)

var ErrInvalidSpec = errors.New("effects: invalid effect")

// Spec is a gradient effect. The zero values of Direction, Target and Variant mean vertical, content and standard.
type Spec struct {
	Kind      Kind     `yaml:"kind" toml:"kind" koanf:"kind" validate:"required,oneof=gradient multi_stop rainbow"`
	Colors    []string `yaml:"colors,omitempty" toml:"colors,omitempty" koanf:"colors" validate:"required_unless=Kind rainbow,dive,color"`
	Direction string   `yaml:"direction,omitempty" toml:"direction,omitempty" koanf:"direction" validate:"omitempty,oneof=vertical horizontal diagonal"`
	Target    string   `yaml:"target,omitempty" toml:"target,omitempty" koanf:"target" validate:"omitempty,oneof=content border both"`
	Variant   string   `yaml:"variant,omitempty" toml:"variant,omitempty" koanf:"variant" validate:"omitempty,oneof=standard neon pastel"`

	// Phase shifts the gradient along its direction, wrapping around. Animations advance it per frame.
	Phase float64 `yaml:"phase,omitempty" toml:"phase,omitempty" koanf:"phase" validate:"gte=0,lt=1"`
}

// New validates s and fills in defaults.
func New(s Spec) (Spec, error) {
	if err := validation.Struct(s); err != nil {
		return Spec{}, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	switch s.Kind {
	case KindGradient:
		if len(s.Colors) != 2 {
			return Spec{}, fmt.Errorf("%w: gradient needs exactly 2 colors, got %d", ErrInvalidSpec, len(s.Colors))
		}
	case KindMultiStop:
		if len(s.Colors) < 2 {
			return Spec{}, fmt.Errorf("%w: multi_stop needs at least 2 colors, got %d", ErrInvalidSpec, len(s.Colors))
		}
	case KindRainbow:
		if len(s.Colors) > 0 {
			return Spec{}, fmt.Errorf("%w: rainbow takes no colors", ErrInvalidSpec)
		}
	}

	if s.Direction == "" {
		s.Direction = string(gradient.DirectionVertical)
	}
	if s.Target == "" {
		s.Target = "content"
	}
	if s.Kind == KindRainbow && s.Variant == "" {
		s.Variant = string(gradient.RainbowStandard)
	}
	return s, nil
}

// Gradient is a two-color effect.
func Gradient(start, end string, direction gradient.Direction, target gradient.Target) (Spec, error) {
	return New(Spec{Kind: KindGradient, Colors: []string{start, end}, Direction: string(direction), Target: target.String()})
}

// MultiStop is an effect through colors, evenly spaced.
func MultiStop(colors []string, direction gradient.Direction, target gradient.Target) (Spec, error) {
	return New(Spec{Kind: KindMultiStop, Colors: colors, Direction: string(direction), Target: target.String()})
}

// Rainbow is a hue sweep starting at phase.
func Rainbow(variant gradient.RainbowVariant, phase float64, direction gradient.Direction) (Spec, error) {
	return New(Spec{Kind: KindRainbow, Variant: string(variant), Phase: phase, Direction: string(direction)})
}

// WithPhase returns s with its phase advanced by step, wrapping around.
func (s Spec) WithPhase(step float64) Spec {
	s.Phase = gradient.CyclePhase(s.Phase, step)
	return s
}

// WithTarget returns s coloring target instead.
func (s Spec) WithTarget(target gradient.Target) Spec {
	s.Target = target.String()
	return s
}

// Build converts s into gradient options. The classifier and policy are left for the caller.
func (s Spec) Build() (gradient.Options, error) {
	s, err := New(s)
	if err != nil {
		return gradient.Options{}, err
	}

	var src gradient.ColorSource
	switch s.Kind {
	case KindRainbow:
		src = gradient.Rainbow{Variant: gradient.RainbowVariant(s.Variant)}
	default:
		stops := make([]termformat.RGBColor, 0, len(s.Colors))
		for _, c := range s.Colors {
			rgb, err := termformat.ParseRGB(c)
			if err != nil {
				return gradient.Options{}, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
			}
			stops = append(stops, rgb)
		}
		if s.Kind == KindGradient {
			src = gradient.TwoStop{Start: stops[0], End: stops[1]}
		} else {
			src = gradient.MultiStop{Stops: stops}
		}
	}

	target, _ := gradient.ParseTarget(s.Target)
	return gradient.Options{
		Position: gradient.Offset{Inner: gradient.Direction(s.Direction).Strategy(), Offset: s.Phase},
		Colors:   src,
		Target:   target,
	}, nil
}
