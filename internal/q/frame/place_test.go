package frame

import (
	"testing"

	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/q/uni"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace(t *testing.T) {
	f, err := Layout([]string{"hi"}, Options{Width: 4, Border: "ascii"})
	require.NoError(t, err)

	tests := []struct {
		name string
		opts PlaceOptions
		want []string
	}{
		{
			name: "leftMargin",
			opts: PlaceOptions{Margin: Margin{Left: 2}},
			want: []string{"  +--+", "  |hi|", "  +--+"},
		},
		{
			name: "verticalMargins",
			opts: PlaceOptions{Margin: Margin{Top: 1, Bottom: 1}},
			want: []string{"    ", "+--+", "|hi|", "+--+", "    "},
		},
		{
			name: "centerInContainer",
			opts: PlaceOptions{ContainerWidth: 10, Align: AlignCenter},
			want: []string{"   +--+   ", "   |hi|   ", "   +--+   "},
		},
		{
			name: "rightAfterMargin",
			opts: PlaceOptions{ContainerWidth: 10, Align: AlignRight, Margin: Margin{Right: 1}},
			want: []string{"     +--+ ", "     |hi| ", "     +--+ "},
		},
		{
			name: "clippedWhenContainerTooSmall",
			opts: PlaceOptions{ContainerWidth: 5, Margin: Margin{Left: 2}},
			want: []string{"  +--", "  |hi", "  +--"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placed := Place(f, tt.opts)
			requireLines(t, tt.want, placed.Strings())
			for i, line := range placed.Lines {
				assert.Equal(t, placed.Width, line.Width())
				assert.Len(t, placed.Roles[i], placed.Width)
			}
		})
	}
}

func TestPlaceRoles(t *testing.T) {
	f, err := Layout([]string{"hi"}, Options{Width: 4})
	require.NoError(t, err)

	placed := Place(f, PlaceOptions{Margin: Margin{Left: 1}})
	assert.Equal(t, RoleMargin, placed.RoleAt(1, 0))
	assert.Equal(t, RoleBorder, placed.RoleAt(1, 1))
	assert.Equal(t, RoleContent, placed.RoleAt(1, 2))
}

func TestParseMargin(t *testing.T) {
	tests := []struct {
		in   []int
		want Margin
	}{
		{in: nil, want: Margin{}},
		{in: []int{2}, want: UniformMargin(2)},
		{in: []int{1, 3}, want: Margin{Top: 1, Right: 3, Bottom: 1, Left: 3}},
		{in: []int{0, 0, 0, 5}, want: Margin{Left: 5}},
	}
	for _, tt := range tests {
		got, err := ParseMargin(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseMargin([]int{1, 2, 3})
	assert.Error(t, err)
	_, err = ParseMargin([]int{-1})
	assert.Error(t, err)
}

func TestColumns(t *testing.T) {
	a, err := Layout([]string{"a", "b"}, Options{Width: 3, Border: "ascii"})
	require.NoError(t, err)
	b, err := Layout([]string{"cc"}, Options{Width: 4, Border: "ascii"})
	require.NoError(t, err)

	got := Columns([]Frame{a, b}, 1)
	requireLines(t, []string{
		"+-+ +--+",
		"|a| |cc|",
		"|b| +--+",
		"+-+     ",
	}, got.Strings())
	assert.Equal(t, 8, got.Width)
	assert.Equal(t, RoleMargin, got.RoleAt(0, 3))
	assert.Equal(t, RoleContent, got.RoleAt(1, 5))
}

func TestComposeOverlap(t *testing.T) {
	a, err := Layout([]string{"a"}, Options{Width: 3})
	require.NoError(t, err)

	_, err = Compose([]Block{{Frame: a}, {Frame: a, X: 2, Y: 1}})
	assert.ErrorIs(t, err, ErrOverlap)

	got, err := Compose([]Block{{Frame: a}, {Frame: a, X: 3, Y: 1}})
	require.NoError(t, err)
	assert.Equal(t, 4, got.Height())
	assert.Equal(t, 6, got.Width)

	empty, err := Compose(nil)
	require.NoError(t, err)
	assert.Zero(t, empty.Height())
}

func TestFromString(t *testing.T) {
	red := termformat.ANSIRed.ANSISequence(false)

	tests := []struct {
		name   string
		in     string
		width  int
		height int
		want   []string
	}{
		{name: "trailingNewline", in: "ab\n" + red + "wide\x1b[0m\n", width: 4, height: 3, want: []string{"ab  ", red + "wide\x1b[0m", "    "}},
		{name: "openStyleClosedBeforePadding", in: red + "ab\ncdef", width: 4, height: 2, want: []string{red + "ab\x1b[0m  ", red + "cdef\x1b[0m"}},
		{name: "wideGrapheme", in: "\U0001F680\nabc", width: 3, height: 2, want: []string{"\U0001F680 ", "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FromString(tt.in, uni.ModeModern)
			require.Equal(t, tt.height, f.Height())
			assert.Equal(t, tt.width, f.Width)
			assert.Equal(t, tt.want, f.Strings())
			assert.Equal(t, RoleContent, f.RoleAt(0, tt.width-1))
			requireRectangular(t, f, uni.ModeModern)
		})
	}
}
