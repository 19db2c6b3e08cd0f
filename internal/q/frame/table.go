package frame

import (
	"errors"
	"fmt"

	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/q/uni"
)

var (
	ErrNoColumns   = errors.New("frame: table has no columns")
	ErrRowTooLong  = errors.New("frame: row has more cells than columns")
	ErrNegativeCol = errors.New("frame: negative column width")
)

// Column describes one table column.
type Column struct {
	Header string
	Align  Align
	Style  termformat.Style // merged under the styling of each body cell; a cell's own colors win
	Width  int              // content width; 0 fits the widest cell
}

// TableOptions configure Table.
type TableOptions struct {
	Columns []Column

	// Width is the total width including borders. 0 sizes every column to its content. Otherwise columns are shrunk (widest first) or grown (round robin) to fit.
	Width   int
	Padding int // columns on each side of every cell

	Border       string       // built-in style name; "" is solid
	CustomBorder *BorderStyle // used instead of Border if non-nil

	Title       string // drawn on its own line above the table
	TitleAlign  *Align // nil centers the title
	HeaderStyle termformat.Style
	ShowLines   bool // draw a divider between body rows

	Ellipsis  string // appended to truncated cells; "" is "…"
	TabWidth  int    // 0 is DefaultTabWidth
	WidthMode uni.WidthMode
}

// Table draws rows as a bordered grid. A header row is drawn if any column has a Header, followed by a divider. Rows shorter than Columns get empty cells; longer rows are an
// error (ErrRowTooLong). Cells are single lines: control characters, newlines included, are shown as escapes, and a cell wider than its column is truncated with the ellipsis.
//
// Every line of the grid is exactly Width columns. The roles mark border glyphs (edges, joints and crosses) as RoleBorder, cell text as RoleContent and the title as RoleTitle,
// so a gradient can target the grid lines alone.
func Table(rows [][]string, opts TableOptions) (Frame, error) {
	n := len(opts.Columns)
	if n == 0 {
		return Frame{}, ErrNoColumns
	}
	if opts.Padding < 0 {
		return Frame{}, fmt.Errorf("%w: %d", ErrNegativePadding, opts.Padding)
	}
	border, err := resolveBorder(opts.Border, opts.CustomBorder)
	if err != nil {
		return Frame{}, err
	}

	mode := opts.WidthMode
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	parse := func(s string, style termformat.Style) termformat.Text {
		t := termformat.FromANSI(termformat.SanitizeLine(s, tabWidth), mode)
		if style.IsDefault() {
			return t
		}
		return t.Restyle(func(_ int, c termformat.Cell) termformat.Style {
			return style.Merge(c.Style)
		})
	}

	header := make([]termformat.Text, n)
	hasHeader := false
	for i, col := range opts.Columns {
		if col.Width < 0 {
			return Frame{}, fmt.Errorf("%w: column %d: %d", ErrNegativeCol, i, col.Width)
		}
		header[i] = parse(col.Header, opts.HeaderStyle)
		hasHeader = hasHeader || col.Header != ""
	}

	body := make([][]termformat.Text, len(rows))
	for r, row := range rows {
		if len(row) > n {
			return Frame{}, fmt.Errorf("%w: row %d has %d cells, table has %d columns", ErrRowTooLong, r, len(row), n)
		}
		body[r] = make([]termformat.Text, n)
		for i, cell := range row {
			body[r][i] = parse(cell, opts.Columns[i].Style)
		}
	}

	widths := make([]int, n)
	for i, col := range opts.Columns {
		if col.Width > 0 {
			widths[i] = col.Width
			continue
		}
		w := max(1, header[i].Width())
		for _, cells := range body {
			w = max(w, cells[i].Width())
		}
		widths[i] = w
	}

	overhead := n*2*opts.Padding + n + 1
	if opts.Width > 0 {
		if opts.Width < overhead+n {
			return Frame{}, fmt.Errorf("%w: width %d, need at least %d for %d columns", ErrWidthTooSmall, opts.Width, overhead+n, n)
		}
		fitColumns(widths, opts.Width-overhead)
	}
	width := overhead
	for _, w := range widths {
		width += w
	}

	ellipsis := termformat.Plain(opts.Ellipsis, mode)
	if opts.Ellipsis == "" {
		ellipsis = termformat.Plain("…", mode)
	}

	g := grid{border: border, widths: widths, columns: opts.Columns, padding: opts.Padding, width: width, ellipsis: ellipsis}
	f := Frame{Width: width}

	if title := termformat.FromANSI(termformat.SanitizeLine(opts.Title, tabWidth), mode); title.Width() > 0 {
		align := AlignCenter
		if opts.TitleAlign != nil {
			align = *opts.TitleAlign
		}
		f.add(titleLine(title.Truncate(width, ellipsis), width, align))
	}

	f.add(g.rule(border.TopLeft, border.TopJoint, border.TopRight))
	if hasHeader {
		f.add(g.row(header))
		f.add(g.rule(border.LeftJoint, border.Cross, border.RightJoint))
	}
	for r, cells := range body {
		if r > 0 && opts.ShowLines {
			f.add(g.rule(border.LeftJoint, border.Cross, border.RightJoint))
		}
		f.add(g.row(cells))
	}
	f.add(g.rule(border.BottomLeft, border.BottomJoint, border.BottomRight))

	return f, nil
}

// fitColumns shrinks the widest column or grows columns round robin until widths sum to total. total must be at least len(widths).
func fitColumns(widths []int, total int) {
	sum := 0
	for _, w := range widths {
		sum += w
	}
	for sum > total {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		widths[widest]--
		sum--
	}
	for i := 0; sum < total; i = (i + 1) % len(widths) {
		widths[i]++
		sum++
	}
}

type grid struct {
	border   BorderStyle
	widths   []int
	columns  []Column
	padding  int
	width    int
	ellipsis termformat.Text
}

// rule draws a horizontal grid line: left, then each column's run joined by joint, then right.
func (g grid) rule(left, joint, right rune) (termformat.Text, []Role) {
	parts := []termformat.Text{glyph(left)}
	for i, w := range g.widths {
		if i > 0 {
			parts = append(parts, glyph(joint))
		}
		parts = append(parts, repeatRune(g.border.Horizontal, w+2*g.padding))
	}
	parts = append(parts, glyph(right))
	return termformat.Concat(parts...), fillRoles(nil, RoleBorder, g.width)
}

func (g grid) row(cells []termformat.Text) (termformat.Text, []Role) {
	parts := []termformat.Text{glyph(g.border.Vertical)}
	roles := make([]Role, 0, g.width)
	roles = append(roles, RoleBorder)

	for i, w := range g.widths {
		if i > 0 {
			parts = append(parts, glyph(g.border.Vertical))
			roles = append(roles, RoleBorder)
		}
		t := cells[i].Truncate(w, g.ellipsis)
		aligned, left := alignText(t, w, g.columns[i].Align)
		parts = append(parts, termformat.Spaces(g.padding), aligned, termformat.Spaces(g.padding))
		roles = fillRoles(roles, RolePadding, g.padding+left)
		roles = fillRoles(roles, RoleContent, t.Width())
		roles = fillRoles(roles, RolePadding, w-left-t.Width()+g.padding)
	}

	parts = append(parts, glyph(g.border.Vertical))
	roles = append(roles, RoleBorder)
	return termformat.Concat(parts...), roles
}

func titleLine(title termformat.Text, width int, align Align) (termformat.Text, []Role) {
	aligned, left := alignText(title, width, align)
	roles := fillRoles(nil, RoleMargin, left)
	roles = fillRoles(roles, RoleTitle, title.Width())
	roles = fillRoles(roles, RoleMargin, width-left-title.Width())
	return aligned, roles
}
