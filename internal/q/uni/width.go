package uni

import (
	"sort"
	"unicode"
)

// widthRange pins every codepoint in [lo, hi] to width. Ranges must be sorted and disjoint.
type widthRange struct {
	lo, hi rune
	width  int
}

// fixedWidths resolves codepoints whose East Asian width is ambiguous or that frames and gradients depend on. Terminal locale is never consulted.
var fixedWidths = []widthRange{
	{0x00A0, 0x00A0, 1},
	{0x00AD, 0x00AD, 0}, // soft hyphen
	{0x2010, 0x2027, 1}, // dashes, quotes, bullet, ellipsis
	{0x2190, 0x21FF, 1}, // arrows
	{0x2500, 0x257F, 1}, // box drawing
	{0x2580, 0x259F, 1}, // block elements
	{0x25A0, 0x25FC, 1}, // geometric shapes (25FD-25FE are emoji)
	{0x3000, 0x303E, 2}, // CJK symbols and punctuation
	{0x303F, 0x303F, 1},
}

func lookupFixedWidth(r rune) (int, bool) {
	i := sort.Search(len(fixedWidths), func(i int) bool { return fixedWidths[i].hi >= r })
	if i < len(fixedWidths) && fixedWidths[i].lo <= r {
		return fixedWidths[i].width, true
	}
	return 0, false
}

func isControl(r rune) bool {
	return r < 0x20 || (r >= 0x7F && r < 0xA0)
}

// isZeroWidth reports codepoints that never advance the cursor on their own: combining marks, joiners, variation selectors and format characters.
func isZeroWidth(r rune) bool {
	switch {
	case r == zwj, r == 0x200B, r == 0x200C, r == 0x2060, r == 0xFEFF:
		return true
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	case r >= 0xE0100 && r <= 0xE01EF:
		return true
	case r >= 0xE0020 && r <= 0xE007F: // tag characters (subdivision flags)
		return true
	case r >= 0x1160 && r <= 0x11FF: // Hangul medial vowels and final consonants
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Me)
}

// RuneWidth returns the width of a single codepoint, in isolation: 0 for control, combining and joining codepoints; otherwise 1 or 2.
func RuneWidth(r rune) int {
	if isControl(r) || isZeroWidth(r) {
		return 0
	}
	if w, ok := lookupFixedWidth(r); ok {
		return w
	}
	return narrow.RuneWidth(r)
}

// GraphemeWidth returns the column width of the single grapheme cluster g under mode. The result is 0, 1 or 2 in ModeModern; in ModeStandard it is the plain sum of codepoint widths and may exceed 2.
func GraphemeWidth(g string, mode WidthMode) int {
	return graphemeWidth(NewGrapheme(g), mode)
}

func graphemeWidth(g Grapheme, mode WidthMode) int {
	sum := 0
	for _, r := range g.Text {
		sum += RuneWidth(r)
	}

	if mode == ModeStandard {
		return sum
	}

	if sum > 0 && (g.HasZWJ || g.IsRegionalPair || g.HasVS16 || g.HasSkinTone) {
		return 2
	}
	if sum > 2 {
		return 2
	}
	return sum
}
