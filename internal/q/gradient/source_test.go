package gradient

import (
	"math"
	"testing"

	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = termformat.RGBColor{R: 255}
	green = termformat.RGBColor{G: 255}
	blue  = termformat.RGBColor{B: 255}
)

func TestMultiStopExactStops(t *testing.T) {
	src := MultiStop{Stops: []termformat.RGBColor{red, green, blue}}

	tests := []struct {
		name  string
		phase float64
		want  termformat.RGBColor
	}{
		{name: "start", phase: 0, want: red},
		{name: "middle", phase: 0.5, want: green},
		{name: "end", phase: 1, want: blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := src.ColorAt(tt.phase)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMultiStopInterpolates(t *testing.T) {
	src := TwoStop{Start: termformat.RGBColor{}, End: termformat.RGBColor{R: 255, G: 255, B: 255}}
	got, err := src.ColorAt(0.5)
	require.NoError(t, err)
	assert.Equal(t, termformat.RGBColor{R: 128, G: 128, B: 128}, got)

	// A quarter of the way through a 3-stop gradient is halfway between the first two stops.
	got, err = MultiStop{Stops: []termformat.RGBColor{red, green, blue}}.ColorAt(0.25)
	require.NoError(t, err)
	assert.Equal(t, termformat.RGBColor{R: 128, G: 128}, got)
}

func TestTwoStop(t *testing.T) {
	src := TwoStop{Start: red, End: blue}

	tests := []struct {
		name  string
		phase float64
		want  termformat.RGBColor
	}{
		{name: "start", phase: 0, want: red},
		{name: "quarter", phase: 0.25, want: termformat.RGBColor{R: 191, B: 64}},
		{name: "end", phase: 1, want: blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := src.ColorAt(tt.phase)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMultiStopSingleStop(t *testing.T) {
	src := MultiStop{Stops: []termformat.RGBColor{blue}}
	for _, p := range []float64{0, 0.3, 1} {
		got, err := src.ColorAt(p)
		require.NoError(t, err)
		assert.Equal(t, blue, got)
	}
}

func TestColorSourceErrors(t *testing.T) {
	_, err := MultiStop{}.ColorAt(0.5)
	assert.ErrorIs(t, err, ErrNoStops)

	for _, p := range []float64{-0.1, 1.5, math.NaN()} {
		_, err = TwoStop{Start: red, End: blue}.ColorAt(p)
		assert.ErrorIs(t, err, ErrPhaseOutOfRange)

		_, err = Rainbow{}.ColorAt(p)
		assert.ErrorIs(t, err, ErrPhaseOutOfRange)
	}

	_, err = Rainbow{Variant: "muted"}.ColorAt(0.5)
	assert.Error(t, err)
}

func TestRainbow(t *testing.T) {
	start, err := Rainbow{}.ColorAt(0)
	require.NoError(t, err)
	assert.Greater(t, start.R, uint8(200))
	assert.Zero(t, start.G)
	assert.Zero(t, start.B)

	end, err := Rainbow{Variant: RainbowNeon}.ColorAt(1)
	require.NoError(t, err)
	assert.Greater(t, end.R, uint8(200))
	assert.Greater(t, end.B, uint8(200))
	assert.Less(t, end.G, uint8(50))

	pastel, err := Rainbow{Variant: RainbowPastel}.ColorAt(0.4)
	require.NoError(t, err)
	for _, c := range []uint8{pastel.R, pastel.G, pastel.B} {
		assert.Greater(t, c, uint8(150))
	}
}
