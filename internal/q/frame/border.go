package frame

import (
	"errors"
	"fmt"
	"slices"

	"github.com/codalotl/framekit/internal/q/uni"
)

var (
	ErrUnknownBorder = errors.New("frame: unknown border style")
	ErrInvalidBorder = errors.New("frame: invalid border style")
)

// BorderStyle is a named set of box-drawing glyphs. Every glyph must be exactly one column wide.
type BorderStyle struct {
	Name string

	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune // top and bottom edges
	Vertical    rune // left and right edges

	// Divider glyphs.
	LeftJoint   rune
	RightJoint  rune
	TopJoint    rune
	BottomJoint rune
	Cross       rune
}

var (
	Solid = BorderStyle{
		Name: "solid",
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Horizontal: '─', Vertical: '│',
		LeftJoint: '├', RightJoint: '┤', TopJoint: '┬', BottomJoint: '┴', Cross: '┼',
	}
	Rounded = BorderStyle{
		Name: "rounded",
		TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
		Horizontal: '─', Vertical: '│',
		LeftJoint: '├', RightJoint: '┤', TopJoint: '┬', BottomJoint: '┴', Cross: '┼',
	}
	Double = BorderStyle{
		Name: "double",
		TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
		Horizontal: '═', Vertical: '║',
		LeftJoint: '╠', RightJoint: '╣', TopJoint: '╦', BottomJoint: '╩', Cross: '╬',
	}
	Heavy = BorderStyle{
		Name: "heavy",
		TopLeft: '┏', TopRight: '┓', BottomLeft: '┗', BottomRight: '┛',
		Horizontal: '━', Vertical: '┃',
		LeftJoint: '┣', RightJoint: '┫', TopJoint: '┳', BottomJoint: '┻', Cross: '╋',
	}
	Thick = BorderStyle{
		Name: "thick",
		TopLeft: '█', TopRight: '█', BottomLeft: '█', BottomRight: '█',
		Horizontal: '▀', Vertical: '█',
		LeftJoint: '█', RightJoint: '█', TopJoint: '▀', BottomJoint: '▄', Cross: '█',
	}
	RoundedThick = BorderStyle{
		Name: "rounded_thick",
		TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
		Horizontal: '━', Vertical: '┃',
		LeftJoint: '┣', RightJoint: '┫', TopJoint: '┳', BottomJoint: '┻', Cross: '╋',
	}
	ASCII = BorderStyle{
		Name: "ascii",
		TopLeft: '+', TopRight: '+', BottomLeft: '+', BottomRight: '+',
		Horizontal: '-', Vertical: '|',
		LeftJoint: '+', RightJoint: '+', TopJoint: '+', BottomJoint: '+', Cross: '+',
	}
	Dots = BorderStyle{
		Name: "dots",
		TopLeft: '·', TopRight: '·', BottomLeft: '·', BottomRight: '·',
		Horizontal: '·', Vertical: ':',
		LeftJoint: ':', RightJoint: ':', TopJoint: '·', BottomJoint: '·', Cross: ':',
	}
	// Minimal draws only horizontal rules; corners and edges are blank.
	Minimal = BorderStyle{
		Name: "minimal",
		TopLeft: ' ', TopRight: ' ', BottomLeft: ' ', BottomRight: ' ',
		Horizontal: '─', Vertical: ' ',
		LeftJoint: ' ', RightJoint: ' ', TopJoint: '─', BottomJoint: '─', Cross: ' ',
	}
)

var builtinBorders = []BorderStyle{Solid, Rounded, Double, Heavy, Thick, RoundedThick, ASCII, Dots, Minimal}

// Borders returns the built-in border styles in catalogue order.
func Borders() []BorderStyle {
	return slices.Clone(builtinBorders)
}

// BorderNames returns the names of the built-in styles.
func BorderNames() []string {
	names := make([]string, len(builtinBorders))
	for i, b := range builtinBorders {
		names[i] = b.Name
	}
	return names
}

// LookupBorder returns the built-in style called name. The empty name is Solid.
func LookupBorder(name string) (BorderStyle, error) {
	if name == "" {
		return Solid, nil
	}
	for _, b := range builtinBorders {
		if b.Name == name {
			return b, nil
		}
	}
	return BorderStyle{}, fmt.Errorf("%w: %q", ErrUnknownBorder, name)
}

func (b BorderStyle) glyphs() []rune {
	return []rune{b.TopLeft, b.TopRight, b.BottomLeft, b.BottomRight, b.Horizontal, b.Vertical, b.LeftJoint, b.RightJoint, b.TopJoint, b.BottomJoint, b.Cross}
}

// Validate checks that every glyph is set and renders one column wide.
func (b BorderStyle) Validate() error {
	for _, r := range b.glyphs() {
		if uni.RuneWidth(r) != 1 {
			return fmt.Errorf("%w: %q: glyph %q is not one column wide", ErrInvalidBorder, b.Name, r)
		}
	}
	return nil
}

// Glyphs returns the distinct glyphs of b, suitable for a character-set classifier.
func (b BorderStyle) Glyphs() []rune {
	var out []rune
	for _, r := range b.glyphs() {
		if r != ' ' && !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out
}
