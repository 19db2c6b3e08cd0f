package frame

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/q/uni"
)

var (
	ErrWidthTooSmall   = errors.New("frame: width too small for border and padding")
	ErrNegativePadding = errors.New("frame: negative padding")
)

// Align positions content within the available columns.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlign parses "left", "center" or "right".
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("frame: unknown alignment %q", s)
}

// Overflow decides what happens to content lines wider than the inner width.
type Overflow int

const (
	OverflowTruncate Overflow = iota // cut at a grapheme boundary and append an ellipsis
	OverflowWrap                     // continue on the next line
)

// Role tags a single column of a rendered line.
type Role uint8

const (
	RoleContent Role = iota
	RoleBorder
	RoleTitle
	RolePadding
	RoleMargin // added by Place and Columns
)

// Options configure Layout.
type Options struct {
	// Width is the total width including borders. 0 sizes the frame to its content and title.
	Width   int
	Padding int // columns between border and content, on each side
	Align   Align

	Border       string       // built-in style name; "" is solid
	CustomBorder *BorderStyle // used instead of Border if non-nil

	Title      string // may contain ANSI styling
	TitleAlign *Align // nil centers the title

	Overflow     Overflow
	DividerAfter []int // content line indices (after splitting on newlines) followed by a divider

	Ellipsis  string // appended to truncated lines; "" is "…"
	TabWidth  int    // columns a tab expands to; 0 is DefaultTabWidth
	WidthMode uni.WidthMode
}

// DefaultTabWidth is the tab expansion used when Options.TabWidth is 0.
const DefaultTabWidth = 4

// Frame is laid-out text. Every line is exactly Width columns wide. Roles has one entry per column per line.
type Frame struct {
	Lines []termformat.Text
	Roles [][]Role
	Width int
}

// Height is the number of lines.
func (f Frame) Height() int {
	return len(f.Lines)
}

// Strings serializes each line.
func (f Frame) Strings() []string {
	return termformat.Strings(f.Lines)
}

// String serializes f, joining lines with "\n" (no trailing newline).
func (f Frame) String() string {
	return strings.Join(f.Strings(), "\n")
}

// RoleAt returns the role of the column at (row, col). Out-of-range positions are RoleMargin.
func (f Frame) RoleAt(row, col int) Role {
	if row < 0 || row >= len(f.Roles) || col < 0 || col >= len(f.Roles[row]) {
		return RoleMargin
	}
	return f.Roles[row][col]
}

// Layout draws lines inside a border. Each element of lines may contain newlines and ANSI escapes; pre-rendered frames can be nested as content and are treated as opaque styled text.
//
// Every output line is exactly Width columns: border + padding + aligned content + padding + border. Lines wider than the inner width are truncated with an ellipsis (or wrapped,
// with OverflowWrap) at grapheme boundaries; a gap left by a wide grapheme is filled with spaces. When wrapping, a single grapheme wider than the inner width is replaced by the
// ellipsis.
//
// Tabs are expanded to spaces. Other control characters in content and title are shown as escapes (see termformat.SanitizeLine), and a newline in the title does not break the
// top border.
//
// Layout returns ErrWidthTooSmall if Width cannot hold the borders, padding and one content column, ErrNegativePadding, or a border error. It never clamps.
func Layout(lines []string, opts Options) (Frame, error) {
	if opts.Padding < 0 {
		return Frame{}, fmt.Errorf("%w: %d", ErrNegativePadding, opts.Padding)
	}

	border, err := resolveBorder(opts.Border, opts.CustomBorder)
	if err != nil {
		return Frame{}, err
	}

	mode := opts.WidthMode
	const borderWidth = 1
	overhead := 2*borderWidth + 2*opts.Padding

	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	var content []termformat.Text
	for _, s := range lines {
		content = append(content, termformat.TextsFromLines(sanitizeBlock(s, tabWidth), mode)...)
	}

	title := termformat.FromANSI(termformat.SanitizeLine(opts.Title, tabWidth), mode)

	width := opts.Width
	if width == 0 {
		inner := 1
		for _, t := range content {
			inner = max(inner, t.Width())
		}
		width = inner + overhead
		if title.Width() > 0 {
			width = max(width, title.Width()+6)
		}
	}
	if width < overhead+1 {
		return Frame{}, fmt.Errorf("%w: width %d, need at least %d", ErrWidthTooSmall, width, overhead+1)
	}
	inner := width - overhead

	ellipsis := termformat.Plain(opts.Ellipsis, mode)
	if opts.Ellipsis == "" {
		ellipsis = termformat.Plain("…", mode)
	}

	titleAlign := AlignCenter
	if opts.TitleAlign != nil {
		titleAlign = *opts.TitleAlign
	}

	f := Frame{Width: width}
	f.add(border.top(width, title, titleAlign, ellipsis))

	dividers := make(map[int]bool, len(opts.DividerAfter))
	for _, i := range opts.DividerAfter {
		dividers[i] = true
	}

	for i, t := range content {
		var pieces []termformat.Text
		switch {
		case t.Width() <= inner:
			pieces = []termformat.Text{t}
		case opts.Overflow == OverflowWrap:
			pieces = t.Wrap(inner)
		default:
			pieces = []termformat.Text{t.Truncate(inner, ellipsis)}
		}
		for _, p := range pieces {
			if p.Width() > inner {
				p = p.Truncate(inner, ellipsis)
			}
			f.add(border.line(p, inner, opts.Padding, opts.Align))
		}
		if dividers[i] && i < len(content)-1 {
			f.add(border.divider(width))
		}
	}

	f.add(border.bottom(width))
	return f, nil
}

// resolveBorder returns custom if it is set and otherwise the built-in style called name, checking glyph widths.
func resolveBorder(name string, custom *BorderStyle) (BorderStyle, error) {
	border := Solid
	if custom != nil {
		border = *custom
	} else if name != "" {
		b, err := LookupBorder(name)
		if err != nil {
			return BorderStyle{}, err
		}
		border = b
	}
	if err := border.Validate(); err != nil {
		return BorderStyle{}, err
	}
	return border, nil
}

// sanitizeBlock neutralizes control characters in each line of s, keeping the line breaks.
func sanitizeBlock(s string, tabWidth int) string {
	if s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = termformat.SanitizeLine(strings.TrimSuffix(line, "\r"), tabWidth)
	}
	return strings.Join(lines, "\n")
}

func (f *Frame) add(t termformat.Text, roles []Role) {
	f.Lines = append(f.Lines, t)
	f.Roles = append(f.Roles, roles)
}

// alignText pads t with unstyled spaces to width according to align. The extra column of an odd remainder goes to the right.
func alignText(t termformat.Text, width int, align Align) (termformat.Text, int) {
	gap := width - t.Width()
	if gap <= 0 {
		return t, 0
	}
	left := 0
	switch align {
	case AlignRight:
		left = gap
	case AlignCenter:
		left = gap / 2
	}
	return termformat.Concat(termformat.Spaces(left), t).PadRight(width), left
}

func repeatRune(r rune, n int) termformat.Text {
	if n <= 0 {
		return termformat.Text{}
	}
	return termformat.Plain(strings.Repeat(string(r), n), uni.ModeModern)
}

func glyph(r rune) termformat.Text {
	return termformat.Plain(string(r), uni.ModeModern)
}

func fillRoles(roles []Role, role Role, n int) []Role {
	for i := 0; i < n; i++ {
		roles = append(roles, role)
	}
	return roles
}

// top renders the top edge with title embedded as " title ".
func (b BorderStyle) top(width int, title termformat.Text, align Align, ellipsis termformat.Text) (termformat.Text, []Role) {
	run := width - 2
	roles := make([]Role, 0, width)

	if title.Width() == 0 || run < 3 {
		roles = fillRoles(roles, RoleBorder, width)
		return termformat.Concat(glyph(b.TopLeft), repeatRune(b.Horizontal, run), glyph(b.TopRight)), roles
	}

	// One horizontal glyph is kept on each side of the title when there is room.
	maxTitle := run - 2
	if run >= 6 {
		maxTitle = run - 4
	}
	if title.Width() > maxTitle {
		title = title.Truncate(maxTitle, ellipsis)
	}
	segWidth := title.Width() + 2

	var left int
	switch align {
	case AlignLeft:
		left = min(1, run-segWidth)
	case AlignRight:
		left = max(run-segWidth-1, 0)
	default:
		left = (run - segWidth) / 2
	}
	right := run - segWidth - left

	roles = fillRoles(roles, RoleBorder, 1+left)
	roles = fillRoles(roles, RoleTitle, segWidth)
	roles = fillRoles(roles, RoleBorder, right+1)

	return termformat.Concat(
		glyph(b.TopLeft),
		repeatRune(b.Horizontal, left),
		termformat.Spaces(1), title, termformat.Spaces(1),
		repeatRune(b.Horizontal, right),
		glyph(b.TopRight),
	), roles
}

// line renders one content row; t must fit in inner columns.
func (b BorderStyle) line(t termformat.Text, inner, padding int, align Align) (termformat.Text, []Role) {
	aligned, left := alignText(t, inner, align)
	roles := make([]Role, 0, inner+2*padding+2)
	roles = append(roles, RoleBorder)
	roles = fillRoles(roles, RolePadding, padding+left)
	roles = fillRoles(roles, RoleContent, t.Width())
	roles = fillRoles(roles, RolePadding, inner-left-t.Width()+padding)
	roles = append(roles, RoleBorder)

	return termformat.Concat(
		glyph(b.Vertical),
		termformat.Spaces(padding),
		aligned,
		termformat.Spaces(padding),
		glyph(b.Vertical),
	), roles
}

func (b BorderStyle) divider(width int) (termformat.Text, []Role) {
	return termformat.Concat(glyph(b.LeftJoint), repeatRune(b.Horizontal, width-2), glyph(b.RightJoint)), fillRoles(nil, RoleBorder, width)
}

func (b BorderStyle) bottom(width int) (termformat.Text, []Role) {
	return termformat.Concat(glyph(b.BottomLeft), repeatRune(b.Horizontal, width-2), glyph(b.BottomRight)), fillRoles(nil, RoleBorder, width)
}

// Top renders a top border width columns wide with title (which may contain ANSI styling) centered in it.
func (b BorderStyle) Top(width int, title string) string {
	if width < 2 {
		return ""
	}
	t, _ := b.top(width, termformat.FromANSI(termformat.SanitizeLine(title, DefaultTabWidth), uni.ModeModern), AlignCenter, termformat.Plain("…", uni.ModeModern))
	return t.String()
}

// Line renders content between two vertical edges, aligned in width-2 columns. Content that does not fit is truncated with "…".
func (b BorderStyle) Line(width int, content string, align Align) string {
	if width < 3 {
		return ""
	}
	t := termformat.FromANSI(termformat.SanitizeLine(content, DefaultTabWidth), uni.ModeModern).Truncate(width-2, termformat.Plain("…", uni.ModeModern))
	line, _ := b.line(t, width-2, 0, align)
	return line.String()
}

// Divider renders a horizontal divider with joints at both ends.
func (b BorderStyle) Divider(width int) string {
	if width < 2 {
		return ""
	}
	t, _ := b.divider(width)
	return t.String()
}

// Bottom renders the bottom border.
func (b BorderStyle) Bottom(width int) string {
	if width < 2 {
		return ""
	}
	t, _ := b.bottom(width)
	return t.String()
}
