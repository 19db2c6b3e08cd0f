package termformat

import (
	"testing"

	"github.com/codalotl/framekit/internal/q/uni"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromANSIPlain(t *testing.T) {
	txt := FromANSI("héllo 世界", uni.ModeModern)

	assert.Equal(t, 10, txt.Width())
	assert.Equal(t, 8, txt.Len())
	assert.Equal(t, "héllo 世界", txt.PlainText())
	assert.Equal(t, "héllo 世界", txt.String())
}

func TestFromANSIStyles(t *testing.T) {
	txt := FromANSI("\x1b[1;31mhi\x1b[0m there", uni.ModeModern)

	cells := txt.Cells()
	require.Len(t, cells, 8)
	assert.True(t, cells[0].Style.Bold)
	assert.Equal(t, Color(ANSIRed), cells[0].Style.Foreground)
	assert.True(t, cells[2].Style.IsDefault())

	spans := txt.Spans()
	require.Len(t, spans, 2)
	assert.Equal(t, "hi", spans[0].Text())
	assert.Equal(t, " there", spans[1].Text())
}

func TestFromANSIExtendedColors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		fg   Color
		bg   Color
	}{
		{name: "256", in: "\x1b[38;5;202mx", fg: ANSI256Color(202)},
		{name: "rgb", in: "\x1b[38;2;1;2;3mx", fg: RGBColor{R: 1, G: 2, B: 3}},
		{name: "rgbColon", in: "\x1b[38:2::1:2:3mx", fg: RGBColor{R: 1, G: 2, B: 3}},
		{name: "bright", in: "\x1b[92;104mx", fg: ANSIBrightGreen, bg: ANSIBrightBlue},
		{name: "bgRGB", in: "\x1b[48;2;9;8;7mx", bg: RGBColor{R: 9, G: 8, B: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromANSI(tt.in, uni.ModeModern).Cell(0)
			assert.Equal(t, tt.fg, c.Style.Foreground)
			assert.Equal(t, tt.bg, c.Style.Background)
		})
	}
}

func TestFromANSIUnknownParamsAreKept(t *testing.T) {
	in := "\x1b[53;4:3mover\x1b[0m"
	txt := FromANSI(in, uni.ModeModern)

	assert.Equal(t, []string{"53", "4:3"}, txt.Cell(0).Style.Raw)
	assert.Equal(t, in, txt.String())
}

func TestFromANSINonSGREscapes(t *testing.T) {
	in := "\x1b]8;;https://example.com\x07link\x1b]8;;\x07"
	txt := FromANSI(in, uni.ModeModern)

	assert.Equal(t, 4, txt.Width())
	assert.Equal(t, "\x1b]8;;https://example.com\x07", txt.Cell(0).Prefix)
	assert.Equal(t, in, txt.String())
}

func TestFromANSIMalformedNeverFails(t *testing.T) {
	txt := FromANSI("ok\x1b[12", uni.ModeModern)
	assert.Equal(t, "ok\x1b[12", txt.PlainText())
	assert.Equal(t, 5, txt.Width())
}

func TestStringMinimalSGR(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "unstyled", in: "abc", want: "abc"},
		{name: "redundantCodesCollapse", in: "\x1b[31ma\x1b[31mb\x1b[0m", want: "\x1b[31mab\x1b[0m"},
		{name: "addOnlyChanged", in: "\x1b[31ma\x1b[1mb\x1b[0m", want: "\x1b[31ma\x1b[1mb\x1b[0m"},
		{name: "turnOffResetsThenRestores", in: "\x1b[1;31ma\x1b[22mb", want: "\x1b[1;31ma\x1b[0;31mb\x1b[0m"},
		{name: "unterminatedStyleIsReset", in: "\x1b[4mx", want: "\x1b[4mx\x1b[0m"},
		{name: "backToDefault", in: "\x1b[32mg\x1b[39mn", want: "\x1b[32mg\x1b[0mn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromANSI(tt.in, uni.ModeModern).String())
		})
	}
}

func TestRoundTripIsVisuallyEquivalent(t *testing.T) {
	inputs := []string{
		"plain",
		"\x1b[1;35m\U0001F468\u200d\U0001F4BB\x1b[0m Developer",
		"\x1b[31mred\x1b[32mgreen\x1b[0m",
		"\x1b[38;2;255;100;0mfire\x1b[0m and \x1b[3mitalic\x1b[23m",
	}
	for _, in := range inputs {
		first := FromANSI(in, uni.ModeModern)
		second := FromANSI(first.String(), uni.ModeModern)

		assert.Equal(t, first.PlainText(), second.PlainText())
		assert.Equal(t, first.Width(), second.Width())
		require.Equal(t, first.Len(), second.Len())
		for i := 0; i < first.Len(); i++ {
			assert.True(t, first.Cell(i).Style.Equal(second.Cell(i).Style), "cell %d of %q", i, in)
		}
		assert.Equal(t, first.String(), second.String())
	}
}

func TestSlice(t *testing.T) {
	txt := FromANSI("a世b\x1b[31mcd\x1b[0m", uni.ModeModern) // a(0) 世(1-2) b(3) c(4) d(5)

	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{name: "all", start: 0, end: 6, want: "a世b\x1b[31mcd\x1b[0m"},
		{name: "wideStraddlesStart", start: 2, end: 4, want: "b"},
		{name: "wideStraddlesEnd", start: 0, end: 2, want: "a"},
		{name: "wideInside", start: 1, end: 3, want: "世"},
		{name: "styledTail", start: 5, end: 6, want: "\x1b[31md\x1b[0m"},
		{name: "clamped", start: -5, end: 100, want: "a世b\x1b[31mcd\x1b[0m"},
		{name: "empty", start: 3, end: 3, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, txt.Slice(tt.start, tt.end).String())
		})
	}
}

func TestSliceDoesNotMutate(t *testing.T) {
	txt := FromANSI("hello", uni.ModeModern)
	_ = txt.Slice(1, 3).Stylize(0, 2, Style{Bold: true})
	assert.Equal(t, "hello", txt.String())
}

func TestStylizeMergesPerAttribute(t *testing.T) {
	txt := FromANSI("\x1b[1;34mab\x1b[0mcd", uni.ModeModern)
	out := txt.Stylize(1, 3, Style{Foreground: ANSIRed})

	cells := out.Cells()
	assert.Equal(t, Color(ANSIBlue), cells[0].Style.Foreground)
	assert.Equal(t, Color(ANSIRed), cells[1].Style.Foreground)
	assert.True(t, cells[1].Style.Bold, "bold is a separate dimension")
	assert.Equal(t, Color(ANSIRed), cells[2].Style.Foreground)
	assert.False(t, cells[2].Style.Bold)
	assert.Nil(t, cells[3].Style.Foreground)
}

func TestStylizeIsIdempotent(t *testing.T) {
	txt := FromANSI("\x1b[3mhello\x1b[0m world", uni.ModeModern)
	style := Style{Bold: true, Foreground: RGBColor{R: 10, G: 20, B: 30}, Raw: []string{"53"}}

	once := txt.Stylize(2, 8, style)
	twice := once.Stylize(2, 8, style)

	assert.Equal(t, once.String(), twice.String())
}

func TestStylizeNoColorClears(t *testing.T) {
	txt := Styled("x", Style{Foreground: ANSIRed}, uni.ModeModern)
	assert.Equal(t, "x", txt.Stylize(0, 1, Style{Foreground: NoColor{}}).String())
}

func TestRestyle(t *testing.T) {
	txt := FromANSI("世x", uni.ModeModern)
	var cols []int
	_ = txt.Restyle(func(col int, c Cell) Style {
		cols = append(cols, col)
		return c.Style
	})
	assert.Equal(t, []int{0, 2}, cols)
}

func TestConcatAndPad(t *testing.T) {
	a := Styled("ab", Style{Foreground: ANSIRed}, uni.ModeModern)
	b := Plain("c", uni.ModeModern)

	joined := Concat(a, b).PadRight(5)
	assert.Equal(t, 5, joined.Width())
	assert.Equal(t, "\x1b[31mab\x1b[0mc  ", joined.String())
	assert.Equal(t, "abc", a.Concat(b).PlainText())
}

func TestTruncate(t *testing.T) {
	ellipsis := Plain("…", uni.ModeModern)

	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "hello", width: 5, want: "hello"},
		{name: "cut", in: "hello world", width: 6, want: "hello…"},
		{name: "wideGapFilled", in: "ab世界", width: 4, want: "ab …"},
		{name: "zwjNeverSplit", in: "\U0001F468\u200d\U0001F4BB\U0001F468\u200d\U0001F4BB", width: 3, want: "\U0001F468\u200d\U0001F4BB…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plain(tt.in, uni.ModeModern).Truncate(tt.width, ellipsis)
			assert.Equal(t, tt.want, got.String())
			assert.LessOrEqual(t, got.Width(), tt.width)
		})
	}
}

func TestWrap(t *testing.T) {
	lines := FromANSI("\x1b[31mabcdef\x1b[0m", uni.ModeModern).Wrap(4)
	require.Len(t, lines, 2)
	assert.Equal(t, "\x1b[31mabcd\x1b[0m", lines[0].String())
	assert.Equal(t, "\x1b[31mef\x1b[0m", lines[1].String())

	wide := Plain("a世界", uni.ModeModern).Wrap(2)
	assert.Equal(t, []string{"a", "世", "界"}, Strings(wide))

	assert.Len(t, Plain("", uni.ModeModern).Wrap(3), 1)
}

func TestTextsFromLinesCarriesStyle(t *testing.T) {
	lines := TextsFromLines("\x1b[32mone\ntwo\x1b[0m\r\nthree", uni.ModeModern)
	require.Len(t, lines, 3)
	assert.Equal(t, Color(ANSIGreen), lines[1].Cell(0).Style.Foreground)
	assert.Equal(t, "two", lines[1].PlainText())
	assert.True(t, lines[2].Cell(0).Style.IsDefault())
}

