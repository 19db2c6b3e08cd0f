package uni

const (
	zwj  = '\u200d'
	vs15 = '\ufe0e'
	vs16 = '\ufe0f'
)

// Grapheme is one user-perceived character: an extended grapheme cluster (UAX #29) along with the byte span it occupies in its source string.
type Grapheme struct {
	Text  string
	Start int // byte offset in the source string
	End   int // byte offset after the cluster

	// HasZWJ is true when the cluster joins two or more codepoints with U+200D (ex: 👨‍💻). A trailing ZWJ with nothing after it does not count.
	HasZWJ bool

	// HasVS16 is true when the cluster contains U+FE0F, requesting emoji presentation.
	HasVS16 bool

	// IsRegionalPair is true for a flag made of exactly two regional indicator symbols.
	IsRegionalPair bool

	// HasSkinTone is true when the cluster contains a Fitzpatrick modifier (U+1F3FB..U+1F3FF).
	HasSkinTone bool
}

// Segment splits text into grapheme clusters. Concatenating the Text of the result reproduces text exactly. text should not contain ANSI escape sequences (see termformat.Segment).
func Segment(text string) []Grapheme {
	if text == "" {
		return nil
	}
	var out []Grapheme
	iter := newGraphemeIterator(text)
	for iter.Next() {
		out = append(out, newGrapheme(iter.Value(), iter.Start(), iter.End()))
	}
	return out
}

// NewGrapheme classifies text, which is assumed to be a single cluster. The span is [0, len(text)).
func NewGrapheme(text string) Grapheme {
	return newGrapheme(text, 0, len(text))
}

func newGrapheme(text string, start, end int) Grapheme {
	g := Grapheme{Text: text, Start: start, End: end}

	runes := 0
	regional := 0
	sawZWJ := false
	for _, r := range text {
		runes++
		switch {
		case r == zwj:
			sawZWJ = true
			continue
		case r == vs16:
			g.HasVS16 = true
		case isSkinTone(r):
			g.HasSkinTone = true
		case isRegionalIndicator(r):
			regional++
		}
		if sawZWJ {
			g.HasZWJ = true
		}
	}
	g.IsRegionalPair = regional == 2 && runes == 2

	return g
}

// Width returns the number of terminal columns g occupies under mode.
func (g Grapheme) Width(mode WidthMode) int {
	return graphemeWidth(g, mode)
}

// Runes returns the codepoints of g.
func (g Grapheme) Runes() []rune {
	return []rune(g.Text)
}

func isSkinTone(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}

func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}
