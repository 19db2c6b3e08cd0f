package gradient

import (
	"strings"
	"unicode/utf8"

	"github.com/codalotl/framekit/internal/q/frame"
	"github.com/codalotl/framekit/internal/q/termformat"
)

// Class is what a cell is, for gradient purposes.
type Class uint8

const (
	ClassContent Class = iota
	ClassBorder
	ClassNone // never colored (ex: margins)
)

// Target selects which classes of cell a gradient colors.
type Target uint8

const (
	TargetContent Target = iota
	TargetBorder
	TargetBoth
)

func (t Target) String() string {
	switch t {
	case TargetBorder:
		return "border"
	case TargetBoth:
		return "both"
	default:
		return "content"
	}
}

// ParseTarget parses "content", "border" or "both".
func ParseTarget(s string) (Target, bool) {
	switch strings.ToLower(s) {
	case "", "content":
		return TargetContent, true
	case "border":
		return TargetBorder, true
	case "both", "all":
		return TargetBoth, true
	}
	return TargetContent, false
}

func (t Target) includes(c Class) bool {
	switch c {
	case ClassContent:
		return t == TargetContent || t == TargetBoth
	case ClassBorder:
		return t == TargetBorder || t == TargetBoth
	default:
		return false
	}
}

// Classifier assigns a Class to the cell at (row, col). col is the cell's starting visual column.
type Classifier interface {
	Classify(row, col int, c termformat.Cell) Class
}

// ClassifierFunc adapts a function to a Classifier.
type ClassifierFunc func(row, col int, c termformat.Cell) Class

func (f ClassifierFunc) Classify(row, col int, c termformat.Cell) Class {
	return f(row, col, c)
}

// DefaultBorderChars holds every glyph of every built-in border style.
var DefaultBorderChars = defaultBorderChars()

func defaultBorderChars() string {
	seen := map[rune]bool{}
	var b strings.Builder
	for _, style := range frame.Borders() {
		for _, r := range style.Glyphs() {
			if !seen[r] {
				seen[r] = true
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

type charSet map[rune]bool

// CharSetClassifier classifies a cell as border iff its grapheme is a single rune contained in set. It looks only at characters, so the borders of nested frames are border cells
// too, and content that happens to use a border glyph is misclassified.
func CharSetClassifier(set string) Classifier {
	cs := make(charSet, utf8.RuneCountInString(set))
	for _, r := range set {
		cs[r] = true
	}
	return cs
}

func (cs charSet) Classify(row, col int, c termformat.Cell) Class {
	r, size := utf8.DecodeRuneInString(c.Grapheme)
	if size == len(c.Grapheme) && cs[r] {
		return ClassBorder
	}
	return ClassContent
}

// RoleClassifier classifies cells by the roles Layout recorded for f: only f's own border cells are border. Titles are content; padding and margins are never colored. Nested
// frames inside f's content are content, whatever glyphs they use.
func RoleClassifier(f frame.Frame) Classifier {
	return ClassifierFunc(func(row, col int, c termformat.Cell) Class {
		switch f.RoleAt(row, col) {
		case frame.RoleBorder:
			return ClassBorder
		case frame.RoleContent, frame.RoleTitle:
			return ClassContent
		default:
			return ClassNone
		}
	})
}
