package frame

import (
	"errors"
	"sort"

	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/q/uni"
)

// Block is a frame positioned on a larger canvas.
type Block struct {
	Frame Frame
	X     int // 0: left-most. Increasing X -> rightward.
	Y     int // 0: top-most. Increasing Y -> downward.
}

var ErrOverlap = errors.New("frame: blocks overlap")

// Compose lays out blocks onto a new frame. Each block keeps its lines and roles. If any block overlaps another block, ErrOverlap is returned. Callers should handle size and
// position calculation outside of this function.
//
// Gaps are filled with spaces (RoleMargin), so the result is rectangular.
func Compose(blocks []Block) (Frame, error) {
	if len(blocks) == 0 {
		return Frame{}, nil
	}

	totalWidth := 0
	totalHeight := 0
	var placed []Block
	for _, blk := range blocks {
		w, h := blk.Frame.Width, blk.Frame.Height()
		totalWidth = max(totalWidth, blk.X+w)
		totalHeight = max(totalHeight, blk.Y+h)
		if w == 0 || h == 0 {
			continue
		}
		placed = append(placed, blk)
	}

	for i := 0; i < len(placed); i++ {
		for j := i + 1; j < len(placed); j++ {
			if blocksOverlap(placed[i], placed[j]) {
				return Frame{}, ErrOverlap
			}
		}
	}

	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].X < placed[j].X
	})

	out := Frame{Width: totalWidth}
	for y := 0; y < totalHeight; y++ {
		var parts []termformat.Text
		var roles []Role
		curX := 0

		for _, blk := range placed {
			if y < blk.Y || y >= blk.Y+blk.Frame.Height() {
				continue
			}
			if blk.X > curX {
				parts = append(parts, termformat.Spaces(blk.X-curX))
				roles = fillRoles(roles, RoleMargin, blk.X-curX)
			}
			parts = append(parts, blk.Frame.Lines[y-blk.Y])
			roles = append(roles, blk.Frame.Roles[y-blk.Y]...)
			curX = blk.X + blk.Frame.Width
		}

		if curX < totalWidth {
			parts = append(parts, termformat.Spaces(totalWidth-curX))
			roles = fillRoles(roles, RoleMargin, totalWidth-curX)
		}
		out.add(termformat.Concat(parts...), roles)
	}

	return out, nil
}

func blocksOverlap(a, b Block) bool {
	return a.X < b.X+b.Frame.Width &&
		a.X+a.Frame.Width > b.X &&
		a.Y < b.Y+b.Frame.Height() &&
		a.Y+a.Frame.Height() > b.Y
}

// Columns places frames side by side, top-aligned, separated by gap blank columns. Shorter frames are extended with blank rows so the result stays rectangular.
func Columns(frames []Frame, gap int) Frame {
	gap = max(gap, 0)
	blocks := make([]Block, 0, len(frames))
	x := 0
	for _, f := range frames {
		if f.Width == 0 {
			continue
		}
		blocks = append(blocks, Block{Frame: f, X: x})
		x += f.Width + gap
	}
	// Blocks are laid out left to right without overlap, so Compose cannot fail.
	out, _ := Compose(blocks)
	return out
}

// FromString wraps already-rendered text (ex: a frame printed earlier) as a Frame so it can be placed or composed. Ragged lines are padded to the widest line with unstyled spaces;
// a style left open at the end of a line is closed there and resumed on the next. Every column is RoleContent.
func FromString(s string, mode uni.WidthMode) Frame {
	width := termformat.BlockWidth(s, mode)
	normalized := termformat.BlockNormalizeWidth(s, width, termformat.BlockNormalizeModeTerminate, mode)

	out := Frame{Width: width}
	for _, l := range termformat.TextsFromLines(normalized, mode) {
		out.add(l, fillRoles(nil, RoleContent, width))
	}
	return out
}
