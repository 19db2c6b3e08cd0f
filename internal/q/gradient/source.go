package gradient

import (
	"errors"
	"fmt"
	"math"

	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrNoStops         = errors.New("gradient: no color stops")
	ErrPhaseOutOfRange = errors.New("gradient: phase out of range")
)

// ColorSource maps a phase in [0, 1] to a color.
type ColorSource interface {
	ColorAt(phase float64) (termformat.RGBColor, error)
}

func checkPhase(phase float64) error {
	if math.IsNaN(phase) || phase < 0 || phase > 1 {
		return fmt.Errorf("%w: %v", ErrPhaseOutOfRange, phase)
	}
	return nil
}

// TwoStop blends linearly from Start to End.
type TwoStop struct {
	Start, End termformat.RGBColor
}

func (s TwoStop) ColorAt(phase float64) (termformat.RGBColor, error) {
	if err := checkPhase(phase); err != nil {
		return termformat.RGBColor{}, err
	}
	switch phase {
	case 0:
		return s.Start, nil
	case 1:
		return s.End, nil
	}
	return termformat.RGBFromColorful(s.Start.Colorful().BlendRgb(s.End.Colorful(), phase)), nil
}

// MultiStop spaces Stops evenly over [0, 1] and blends linearly in RGB between neighbors. Phase 0 is the first stop and phase 1 is the last stop exactly. A single stop is a
// constant color.
type MultiStop struct {
	Stops []termformat.RGBColor
}

func (s MultiStop) ColorAt(phase float64) (termformat.RGBColor, error) {
	if len(s.Stops) == 0 {
		return termformat.RGBColor{}, ErrNoStops
	}
	if err := checkPhase(phase); err != nil {
		return termformat.RGBColor{}, err
	}

	n := len(s.Stops)
	if n == 1 {
		return s.Stops[0], nil
	}

	scaled := phase * float64(n-1)
	seg := int(math.Floor(scaled))
	if seg >= n-1 {
		return s.Stops[n-1], nil
	}
	t := scaled - float64(seg)
	if t == 0 {
		return s.Stops[seg], nil
	}

	a := s.Stops[seg].Colorful()
	b := s.Stops[seg+1].Colorful()
	return termformat.RGBFromColorful(a.BlendRgb(b, t)), nil
}

// RainbowVariant selects saturation and brightness of a Rainbow.
type RainbowVariant string

const (
	RainbowStandard RainbowVariant = "standard"
	RainbowNeon     RainbowVariant = "neon"
	RainbowPastel   RainbowVariant = "pastel"
)

// rainbowHueSpan sweeps red (0°) to violet; going all the way to 360° would wrap back to red.
const rainbowHueSpan = 300.0

// Rainbow sweeps hue from red through violet.
type Rainbow struct {
	Variant RainbowVariant
}

func (r Rainbow) ColorAt(phase float64) (termformat.RGBColor, error) {
	if err := checkPhase(phase); err != nil {
		return termformat.RGBColor{}, err
	}

	s, v := 1.0, 1.0
	switch r.Variant {
	case RainbowNeon:
		s, v = 0.9, 1.0
	case RainbowPastel:
		s, v = 0.35, 1.0
	case RainbowStandard, "":
		s, v = 1.0, 0.95
	default:
		return termformat.RGBColor{}, fmt.Errorf("gradient: unknown rainbow variant %q", r.Variant)
	}

	return termformat.RGBFromColorful(colorful.Hsv(phase*rainbowHueSpan, s, v)), nil
}
