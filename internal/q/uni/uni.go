package uni

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// WidthMode selects how multi-codepoint grapheme clusters are measured.
type WidthMode int

const (
	// ModeModern treats ZWJ sequences, flags, VS16 and skin-tone clusters as a single 2-column glyph, the way contemporary terminal emulators draw them.
	ModeModern WidthMode = iota

	// ModeStandard sums the East Asian width of every codepoint in a cluster, the way legacy terminals draw each component separately.
	ModeStandard
)

func (m WidthMode) String() string {
	switch m {
	case ModeModern:
		return "modern"
	case ModeStandard:
		return "standard"
	default:
		return "unknown"
	}
}

// ParseWidthMode parses "modern" or "standard". The empty string is ModeModern.
func ParseWidthMode(s string) (WidthMode, bool) {
	switch s {
	case "", "modern":
		return ModeModern, true
	case "standard":
		return ModeStandard, true
	default:
		return ModeModern, false
	}
}

// Options control width calculation in TextWidth, NewGraphemeIterator and other functions. A nil *Options is the same as the zero value (ModeModern).
type Options struct {
	Mode WidthMode
}

func (o *Options) mode() WidthMode {
	if o == nil {
		return ModeModern
	}
	return o.Mode
}

// narrow is never written after init; runewidth.Condition is safe for concurrent reads.
var narrow = newCondition()

func newCondition() *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true
	return cond
}

// TextWidth returns the text width of str for monospace fonts in terminals. str must not contain ANSI escape sequences (see termformat.VisualWidth for that).
func TextWidth[T string | []byte](str T, opts *Options) int {
	width := 0
	iter := NewGraphemeIterator(str, opts)
	for iter.Next() {
		width += iter.TextWidth()
	}
	return width
}

// Iterator iterates over grapheme clusters.
type Iterator[T string | []byte] struct {
	iter *graphemes.Iterator[T]
	mode WidthMode
}

// NewGraphemeIterator returns a new grapheme iterator for str (string or []byte). If opts is nil, ModeModern is used.
func NewGraphemeIterator[T string | []byte](str T, opts *Options) *Iterator[T] {
	return &Iterator[T]{
		iter: newGraphemeIterator(str),
		mode: opts.mode(),
	}
}

func (iter *Iterator[T]) Next() bool {
	return iter.iter.Next()
}

func (iter *Iterator[T]) Value() T {
	return iter.iter.Value()
}

// Start returns the byte position of the current token in the original data.
func (iter *Iterator[T]) Start() int {
	return iter.iter.Start()
}

// End returns the byte position after the current token in the original data. Allows looping over bytes [Start(), End()).
func (iter *Iterator[T]) End() int {
	return iter.iter.End()
}

// Grapheme returns the current cluster with its span and flags.
func (iter *Iterator[T]) Grapheme() Grapheme {
	return newGrapheme(string(iter.iter.Value()), iter.iter.Start(), iter.iter.End())
}

// TextWidth returns the text width of the current value for monospace fonts in terminals.
func (iter *Iterator[T]) TextWidth() int {
	g := iter.Grapheme()
	return g.Width(iter.mode)
}

func newGraphemeIterator[T string | []byte](text T) *graphemes.Iterator[T] {
	switch v := any(text).(type) {
	case string:
		iter := graphemes.FromString(v)
		return any(&iter).(*graphemes.Iterator[T])
	case []byte:
		iter := graphemes.FromBytes(v)
		return any(&iter).(*graphemes.Iterator[T])
	default:
		panic("unsupported type")
	}
}
