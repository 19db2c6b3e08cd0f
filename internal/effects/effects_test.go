package effects

import (
	"testing"

	"github.com/codalotl/framekit/internal/q/gradient"
	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{name: "gradient", spec: Spec{Kind: KindGradient, Colors: []string{"purple", "#ff00ff"}}},
		{name: "multiStop", spec: Spec{Kind: KindMultiStop, Colors: []string{"red", "orange", "gold"}, Direction: "diagonal", Target: "both"}},
		{name: "rainbow", spec: Spec{Kind: KindRainbow, Variant: "neon", Phase: 0.5}},
		{name: "missingKind", spec: Spec{Colors: []string{"red", "blue"}}, wantErr: true},
		{name: "unknownKind", spec: Spec{Kind: "plasma"}, wantErr: true},
		{name: "gradientOneColor", spec: Spec{Kind: KindGradient, Colors: []string{"red"}}, wantErr: true},
		{name: "gradientThreeColors", spec: Spec{Kind: KindGradient, Colors: []string{"red", "green", "blue"}}, wantErr: true},
		{name: "multiStopNoColors", spec: Spec{Kind: KindMultiStop}, wantErr: true},
		{name: "badColor", spec: Spec{Kind: KindGradient, Colors: []string{"red", "blurple"}}, wantErr: true},
		{name: "badDirection", spec: Spec{Kind: KindRainbow, Direction: "spiral"}, wantErr: true},
		{name: "badTarget", spec: Spec{Kind: KindRainbow, Target: "margin"}, wantErr: true},
		{name: "badVariant", spec: Spec{Kind: KindRainbow, Variant: "muted"}, wantErr: true},
		{name: "phaseOne", spec: Spec{Kind: KindRainbow, Phase: 1}, wantErr: true},
		{name: "rainbowWithColors", spec: Spec{Kind: KindRainbow, Colors: []string{"red"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.spec)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSpec)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.Direction)
			assert.NotEmpty(t, got.Target)
		})
	}
}

func TestNewValidationField(t *testing.T) {
	_, err := New(Spec{Kind: KindGradient, Colors: []string{"red", "blurple"}})
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "spec.colors[1]", ve.Field)
}

func TestBuild(t *testing.T) {
	s, err := Gradient("#ff0000", "#0000ff", gradient.DirectionHorizontal, gradient.TargetBorder)
	require.NoError(t, err)

	opts, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, gradient.TargetBorder, opts.Target)
	assert.Equal(t, gradient.Offset{Inner: gradient.Horizontal{}}, opts.Position)
	assert.Equal(t, gradient.TwoStop{Start: termformat.RGBColor{R: 255}, End: termformat.RGBColor{B: 255}}, opts.Colors)

	start, err := opts.Colors.ColorAt(0)
	require.NoError(t, err)
	assert.Equal(t, termformat.RGBColor{R: 255}, start)
	end, err := opts.Colors.ColorAt(1)
	require.NoError(t, err)
	assert.Equal(t, termformat.RGBColor{B: 255}, end)

	r, err := Rainbow(gradient.RainbowPastel, 0.25, gradient.DirectionDiagonal)
	require.NoError(t, err)
	opts, err = r.Build()
	require.NoError(t, err)
	assert.Equal(t, gradient.Rainbow{Variant: gradient.RainbowPastel}, opts.Colors)
	assert.Equal(t, gradient.Offset{Inner: gradient.Diagonal{}, Offset: 0.25}, opts.Position)
	assert.Equal(t, gradient.TargetContent, opts.Target)

	m, err := MultiStop([]string{"#ff0000", "#00ff00", "#0000ff"}, gradient.DirectionVertical, gradient.TargetBoth)
	require.NoError(t, err)
	opts, err = m.Build()
	require.NoError(t, err)
	assert.IsType(t, gradient.MultiStop{}, opts.Colors)

	_, err = Spec{Kind: "plasma"}.Build()
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestWithPhase(t *testing.T) {
	s, err := Rainbow(gradient.RainbowStandard, 0.75, gradient.DirectionDiagonal)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, s.WithPhase(0.5).Phase, 1e-9)
	assert.InDelta(t, 0.75, s.Phase, 1e-9)
	assert.Equal(t, "border", s.WithTarget(gradient.TargetBorder).Target)
}

func TestBuiltinRegistry(t *testing.T) {
	r := Default()
	for _, name := range []string{"fire", "ocean", "matrix", "vaporwave", "sunset", "forest", "rainbow", "rainbow_neon", "rainbow_pastel", "border_fire", "border_ocean"} {
		t.Run(name, func(t *testing.T) {
			s, err := r.Lookup(name)
			require.NoError(t, err)
			_, err = s.Build()
			require.NoError(t, err)
		})
	}

	s, err := Lookup("border_fire")
	require.NoError(t, err)
	assert.Equal(t, "border", s.Target)

	_, err = Lookup("plaid")
	assert.ErrorIs(t, err, ErrUnknownPreset)

	assert.Contains(t, r.Names(), "rainbow_neon")
	assert.IsIncreasing(t, r.Names())
	assert.Contains(t, r.PaletteNames(), "berry_smoothie")
}

func TestPalettes(t *testing.T) {
	for _, name := range Default().PaletteNames() {
		t.Run(name, func(t *testing.T) {
			s, err := FromPalette(name, gradient.DirectionHorizontal, gradient.TargetBoth)
			require.NoError(t, err)
			assert.Equal(t, KindMultiStop, s.Kind)
			assert.Equal(t, "both", s.Target)
		})
	}

	_, err := FromPalette("plaid", gradient.DirectionVertical, gradient.TargetContent)
	assert.ErrorIs(t, err, ErrUnknownPalette)

	s, err := Default().Resolve("midnight")
	require.NoError(t, err)
	assert.Equal(t, KindMultiStop, s.Kind)
	_, err = Default().Resolve("plaid")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestRegistryWith(t *testing.T) {
	base := Default()
	r, err := base.With(map[string]Spec{"mine": {Kind: KindGradient, Colors: []string{"pink", "purple"}}}, map[string][]string{"duo": {"#000", "#fff"}})
	require.NoError(t, err)

	_, err = r.Lookup("mine")
	require.NoError(t, err)
	_, err = base.Lookup("mine")
	assert.ErrorIs(t, err, ErrUnknownPreset)
	_, err = r.Palette("duo")
	require.NoError(t, err)

	_, err = base.With(map[string]Spec{"broken": {Kind: KindGradient}}, nil)
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestLookupReturnsCopy(t *testing.T) {
	s, err := Lookup("fire")
	require.NoError(t, err)
	s.Colors[0] = "#000000"

	again, err := Lookup("fire")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", again.Colors[0])
}

func TestLoadRegistryErrors(t *testing.T) {
	_, err := LoadRegistry([]byte("presets: ["))
	assert.Error(t, err)

	_, err = LoadRegistry([]byte("presets:\n  bad:\n    kind: gradient\n    colors: [red]\n"))
	assert.ErrorIs(t, err, ErrInvalidSpec)
}
