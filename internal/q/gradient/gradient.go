package gradient

import (
	"errors"
	"fmt"

	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/q/uni"
)

var ErrNoColorSource = errors.New("gradient: no color source")

// Capabilities is the part of a render policy the engine consumes.
type Capabilities interface {
	ColorEnabled() bool
	ColorDepth() termformat.ColorDepth
}

// Options configure Apply.
type Options struct {
	Position PositionStrategy // nil is Vertical
	Colors   ColorSource
	Target   Target

	// Classifier decides which cells are border. nil uses CharSetClassifier(DefaultBorderChars).
	Classifier Classifier

	// Recolor allows overwriting cells that already have a foreground color. Without it, pre-colored cells (ex: an inner frame rendered with its own gradient) are left alone.
	Recolor bool

	// Policy limits color output. nil is full 24-bit color.
	Policy Capabilities
}

// Apply colors the foreground of every selected cell of lines. The block is treated as a grid of len(lines) rows and as many columns as the widest line. A cell's phase is
// computed at its starting column; other attributes of the cell (bold, background, ...) are kept. Blank cells are left as-is.
//
// If opts.Policy disables color, lines are returned unchanged. Apply returns an error only for a misconfigured color source (no stops, a phase outside [0, 1]).
func Apply(lines []termformat.Text, opts Options) ([]termformat.Text, error) {
	if opts.Colors == nil {
		return nil, ErrNoColorSource
	}

	depth := termformat.DepthTrueColor
	if opts.Policy != nil {
		if !opts.Policy.ColorEnabled() {
			return lines, nil
		}
		depth = opts.Policy.ColorDepth()
		if depth == termformat.DepthNone {
			return lines, nil
		}
	}

	pos := opts.Position
	if pos == nil {
		pos = Vertical{}
	}
	classifier := opts.Classifier
	if classifier == nil {
		classifier = CharSetClassifier(DefaultBorderChars)
	}

	rows := len(lines)
	cols := 0
	for _, l := range lines {
		cols = max(cols, l.Width())
	}

	out := make([]termformat.Text, rows)
	var firstErr error
	for row, line := range lines {
		out[row] = line.Restyle(func(col int, c termformat.Cell) termformat.Style {
			if firstErr != nil || isBlank(c.Grapheme) {
				return c.Style
			}
			if c.Style.Foreground != nil && !opts.Recolor {
				return c.Style
			}
			if !opts.Target.includes(classifier.Classify(row, col, c)) {
				return c.Style
			}
			rgb, err := opts.Colors.ColorAt(pos.Phase(row, col, rows, cols))
			if err != nil {
				firstErr = fmt.Errorf("row %d, column %d: %w", row, col, err)
				return c.Style
			}
			return c.Style.WithForeground(termformat.Downsample(rgb, depth))
		})
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// ApplyStrings is Apply for strings that may contain ANSI styling and newlines. Styles spanning lines are carried to each line.
func ApplyStrings(lines []string, mode uni.WidthMode, opts Options) ([]string, error) {
	var texts []termformat.Text
	for _, s := range lines {
		texts = append(texts, termformat.TextsFromLines(s, mode)...)
	}
	styled, err := Apply(texts, opts)
	if err != nil {
		return nil, err
	}
	return termformat.Strings(styled), nil
}

func isBlank(g string) bool {
	for _, r := range g {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}
