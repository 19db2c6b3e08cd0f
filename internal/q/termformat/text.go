package termformat

import (
	"strings"

	"github.com/codalotl/framekit/internal/q/uni"
)

// Cell is one grapheme cluster of a Text along with its rendered width and style.
type Cell struct {
	Grapheme string
	Width    int
	Style    Style

	// Prefix holds non-SGR escape sequences (ex: OSC 8 hyperlinks) that preceded this grapheme in the source. They are written verbatim before the grapheme.
	Prefix string
}

// Text is styled terminal text: a sequence of cells, each a grapheme cluster carrying its own Style. Text is immutable; every method returns a new Text and never modifies the
// receiver or the arguments.
//
// The zero value is empty text.
type Text struct {
	cells   []Cell
	trailer string // non-SGR escapes that followed the last grapheme
	width   int
}

// FromANSI parses s, which may contain ANSI escape sequences, measuring graphemes with mode. It never fails: unrecognized SGR parameters are kept in Style.Raw, other escapes are
// kept as cell prefixes, and a malformed escape makes the rest of s literal text.
//
// s should not contain newlines (a newline becomes a zero-width cell).
func FromANSI(s string, mode uni.WidthMode) Text {
	if s == "" {
		return Text{}
	}

	var t Text
	var cur Style
	var prefix strings.Builder
	opts := &uni.Options{Mode: mode}

	for _, tok := range scanANSI(s) {
		if tok.escape {
			if params, ok := isSGR(tok.text); ok {
				cur = applySGR(cur, params)
			} else {
				prefix.WriteString(tok.text)
			}
			continue
		}

		iter := uni.NewGraphemeIterator(tok.text, opts)
		for iter.Next() {
			w := iter.TextWidth()
			t.cells = append(t.cells, Cell{
				Grapheme: iter.Value(),
				Width:    w,
				Style:    cur,
				Prefix:   prefix.String(),
			})
			t.width += w
			prefix.Reset()
		}
	}
	t.trailer = prefix.String()

	return t
}

// Plain returns unstyled text. Escape sequences in s are parsed as in FromANSI.
func Plain(s string, mode uni.WidthMode) Text {
	return FromANSI(s, mode)
}

// Styled returns s with style merged over every cell.
func Styled(s string, style Style, mode uni.WidthMode) Text {
	t := FromANSI(s, mode)
	return t.Stylize(0, t.width, style)
}

// Spaces returns n unstyled spaces.
func Spaces(n int) Text {
	if n <= 0 {
		return Text{}
	}
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = Cell{Grapheme: " ", Width: 1}
	}
	return Text{cells: cells, width: n}
}

// FromCells builds a Text from cells. The slice is copied.
func FromCells(cells []Cell) Text {
	t := Text{cells: append([]Cell(nil), cells...)}
	for _, c := range cells {
		t.width += c.Width
	}
	return t
}

// Width is the number of terminal columns t occupies.
func (t Text) Width() int {
	return t.width
}

// Len is the number of cells (graphemes).
func (t Text) Len() int {
	return len(t.cells)
}

// IsEmpty is true if t has no cells and no escapes.
func (t Text) IsEmpty() bool {
	return len(t.cells) == 0 && t.trailer == ""
}

// Cells returns a copy of t's cells.
func (t Text) Cells() []Cell {
	return append([]Cell(nil), t.cells...)
}

// Cell returns the i-th cell.
func (t Text) Cell(i int) Cell {
	return t.cells[i]
}

// PlainText returns the visible text with every escape removed.
func (t Text) PlainText() string {
	var b strings.Builder
	for _, c := range t.cells {
		b.WriteString(c.Grapheme)
	}
	return b.String()
}

// Span is a maximal run of adjacent cells sharing one Style.
type Span struct {
	Style Style
	Cells []Cell
}

// Text returns the concatenated graphemes of the span.
func (s Span) Text() string {
	var b strings.Builder
	for _, c := range s.Cells {
		b.WriteString(c.Grapheme)
	}
	return b.String()
}

// Spans groups t into runs of identical style. Concatenating every span's graphemes reproduces PlainText.
func (t Text) Spans() []Span {
	var spans []Span
	for _, c := range t.cells {
		if n := len(spans); n > 0 && spans[n-1].Style.Equal(c.Style) {
			spans[n-1].Cells = append(spans[n-1].Cells, c)
			continue
		}
		spans = append(spans, Span{Style: c.Style, Cells: []Cell{c}})
	}
	return spans
}

// String serializes t. An SGR sequence is written only where the style changes between adjacent cells, and a non-default final style is reset so nothing leaks into following
// output.
func (t Text) String() string {
	var b strings.Builder
	b.Grow(t.width + 8)

	var cur Style
	for _, c := range t.cells {
		b.WriteString(c.Prefix)
		b.WriteString(transition(cur, c.Style))
		b.WriteString(c.Grapheme)
		cur = c.Style
	}
	if !cur.IsDefault() {
		b.WriteString(ANSIReset)
	}
	b.WriteString(t.trailer)
	return b.String()
}

// Slice returns the cells occupying visual columns [start, end). A grapheme is never split: a wide grapheme straddling start or end is dropped. start and end are clamped to
// [0, Width()]. Zero-width cells are kept if their column is in range. Non-SGR escapes of dropped cells are carried forward so hyperlinks stay balanced.
func (t Text) Slice(start, end int) Text {
	if start < 0 {
		start = 0
	}
	if end > t.width {
		end = t.width
	}
	if start >= end {
		return Text{trailer: t.allPrefixes()}
	}

	var out Text
	var carry strings.Builder
	col := 0
	for _, c := range t.cells {
		keep := col >= start && col+c.Width <= end
		if c.Width == 0 {
			keep = col >= start && (col < end || end == t.width)
		}
		if keep {
			if carry.Len() > 0 {
				c.Prefix = carry.String() + c.Prefix
				carry.Reset()
			}
			out.cells = append(out.cells, c)
			out.width += c.Width
		} else {
			carry.WriteString(c.Prefix)
		}
		col += c.Width
	}
	out.trailer = carry.String() + t.trailer
	return out
}

func (t Text) allPrefixes() string {
	var b strings.Builder
	for _, c := range t.cells {
		b.WriteString(c.Prefix)
	}
	b.WriteString(t.trailer)
	return b.String()
}

// Stylize merges style (see Style.Merge) into every cell whose starting column is in [start, end). Stylize is idempotent.
func (t Text) Stylize(start, end int, style Style) Text {
	out := t.clone()
	col := 0
	for i := range out.cells {
		if col >= start && col < end {
			out.cells[i].Style = out.cells[i].Style.Merge(style)
		}
		col += out.cells[i].Width
	}
	return out
}

// Restyle returns t with every cell's style replaced by fn(col, cell), where col is the cell's starting visual column.
func (t Text) Restyle(fn func(col int, c Cell) Style) Text {
	out := t.clone()
	col := 0
	for i := range out.cells {
		out.cells[i].Style = fn(col, out.cells[i])
		col += out.cells[i].Width
	}
	return out
}

// Concat returns t followed by others.
func (t Text) Concat(others ...Text) Text {
	return Concat(append([]Text{t}, others...)...)
}

// Concat joins texts. Each text keeps its own styles.
func Concat(texts ...Text) Text {
	n := 0
	for _, t := range texts {
		n += len(t.cells)
	}
	out := Text{cells: make([]Cell, 0, n)}
	var carry string
	for _, t := range texts {
		for i, c := range t.cells {
			if i == 0 && carry != "" {
				c.Prefix = carry + c.Prefix
				carry = ""
			}
			out.cells = append(out.cells, c)
		}
		out.width += t.width
		carry += t.trailer
	}
	out.trailer = carry
	return out
}

// PadRight appends spaces until t is width columns wide. The spaces are unstyled.
func (t Text) PadRight(width int) Text {
	if t.width >= width {
		return t
	}
	return Concat(t, Spaces(width-t.width))
}

// Truncate returns t cut at a grapheme boundary so that t plus tail fits in width columns, with tail appended. If t already fits, it is returned unchanged. If the cut leaves a
// gap (a wide grapheme did not fit) the gap before tail is filled with spaces so the result is exactly width columns.
func (t Text) Truncate(width int, tail Text) Text {
	if t.width <= width {
		return t
	}
	if tail.width > width {
		tail = tail.Slice(0, width)
	}
	head := t.Slice(0, width-tail.width)
	return Concat(head.PadRight(width-tail.width), tail)
}

// Wrap breaks t into lines of at most width columns at grapheme boundaries. A grapheme wider than width is placed on its own line. Wrap of empty text is a single empty line.
func (t Text) Wrap(width int) []Text {
	if len(t.cells) == 0 || width <= 0 {
		return []Text{t}
	}

	var out []Text
	var line Text
	for _, c := range t.cells {
		if line.width+c.Width > width && len(line.cells) > 0 {
			out = append(out, line)
			line = Text{}
		}
		line.cells = append(line.cells, c)
		line.width += c.Width
	}
	line.trailer = t.trailer
	out = append(out, line)
	return out
}

func (t Text) clone() Text {
	out := t
	out.cells = append([]Cell(nil), t.cells...)
	return out
}

// TextsFromLines parses each line of s (split on "\n", a trailing "\r" stripped) with FromANSI. An SGR state left open at the end of a line carries into the next line, as it would
// when printed.
func TextsFromLines(s string, mode uni.WidthMode) []Text {
	lines := strings.Split(BlockStylePerLine(s), "\n")
	out := make([]Text, len(lines))
	for i, line := range lines {
		out[i] = FromANSI(strings.TrimSuffix(line, "\r"), mode)
	}
	return out
}

// Strings serializes each text.
func Strings(texts []Text) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = t.String()
	}
	return out
}
