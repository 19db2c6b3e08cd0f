package frame

import (
	"fmt"

	"github.com/codalotl/framekit/internal/q/termformat"
)

// Margin is blank space around a frame, CSS order.
type Margin struct {
	Top, Right, Bottom, Left int
}

// UniformMargin returns a Margin of n on every side.
func UniformMargin(n int) Margin {
	return Margin{Top: n, Right: n, Bottom: n, Left: n}
}

// ParseMargin parses 1, 2 or 4 integers (CSS shorthand: all; vertical horizontal; top right bottom left).
func ParseMargin(vals []int) (Margin, error) {
	for _, v := range vals {
		if v < 0 {
			return Margin{}, fmt.Errorf("frame: negative margin %d", v)
		}
	}
	switch len(vals) {
	case 0:
		return Margin{}, nil
	case 1:
		return UniformMargin(vals[0]), nil
	case 2:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 4:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
	return Margin{}, fmt.Errorf("frame: margin needs 1, 2 or 4 values, got %d", len(vals))
}

// PlaceOptions position a frame within a container.
type PlaceOptions struct {
	// ContainerWidth is the width to fill (ex: the terminal width). 0 uses the frame width plus horizontal margins.
	ContainerWidth int
	Align          Align // frame alignment within the container, after margins
	Margin         Margin
}

// Place surrounds f with margins and aligns it within a container. Every output line is exactly the container width. If the frame is wider than the space left by the margins,
// its right side is clipped at a grapheme boundary (clipped gaps are filled with spaces).
func Place(f Frame, opts PlaceOptions) Frame {
	m := opts.Margin
	total := opts.ContainerWidth
	if total <= 0 {
		total = m.Left + f.Width + m.Right
	}

	avail := max(total-m.Left-m.Right, 0)
	offset := 0
	if gap := avail - f.Width; gap > 0 {
		switch opts.Align {
		case AlignCenter:
			offset = gap / 2
		case AlignRight:
			offset = gap
		}
	}
	left := min(m.Left+offset, total)
	visible := min(f.Width, max(total-left, 0))

	out := Frame{Width: total}
	blank := func() {
		out.add(termformat.Spaces(total), fillRoles(nil, RoleMargin, total))
	}

	for i := 0; i < m.Top; i++ {
		blank()
	}
	for row, line := range f.Lines {
		body := line
		roles := f.Roles[row]
		if visible < f.Width {
			body = line.Slice(0, visible).PadRight(visible)
			roles = roles[:visible]
		}

		var rs []Role
		rs = fillRoles(rs, RoleMargin, left)
		rs = append(rs, roles...)
		rs = fillRoles(rs, RoleMargin, total-left-visible)

		out.add(termformat.Concat(termformat.Spaces(left), body).PadRight(total), rs)
	}
	for i := 0; i < m.Bottom; i++ {
		blank()
	}
	return out
}
