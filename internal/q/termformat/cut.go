package termformat

import "github.com/codalotl/framekit/internal/q/uni"

// Cut removes `left` terminal-cell width from the start of `s` and `right`
// terminal-cell width from the end of `s`, returning the remaining substring.
//
// `s` must not contain newlines. `s` may contain ANSI escape sequences.
// Recognized escape sequences are not counted toward width.
//
// Width removal is grapheme-cluster-aware: if a grapheme cluster has width 2 and
// only 1 width is to be removed, the entire cluster is removed.
//
// Cut preserves ANSI SGR styling: every remaining printable grapheme is rendered
// with the same SGR state that it had at that position in the original `s`, even
// if the SGR sequences that establish that state were entirely within the removed
// left/right portions. The result never leaks styles into subsequent output.
//
// If `left` or `right` is negative, it is treated as 0. If `left+right` removes
// all width, Cut returns "".
//
// Examples (using tags for readability; real strings contain ANSI escape codes):
//   - Cut("hello", 1, 1) -> "ell"
//   - Cut("<red>hello<reset>", 2, 1) -> "<red>ll<reset>"
//   - Cut("<red>he<reset>llo", 1, 1) -> "<red>e<reset>ll"
//   - Cut("界!", 1, 0) -> "!"
//   - Cut("界!", 2, 0) -> "!"
func Cut(s string, left, right int, mode uni.WidthMode) string {
	if s == "" {
		return ""
	}
	if left < 0 {
		left = 0
	}
	if right < 0 {
		right = 0
	}

	t := FromANSI(s, mode)
	if t.Width() == 0 || left+right >= t.Width() {
		return ""
	}

	// Dropping a partial wide cluster on the left consumes the whole cluster, so the kept region starts at the first cluster boundary at or after left.
	start := 0
	for _, c := range t.cells {
		if start >= left {
			break
		}
		start += c.Width
	}
	end := t.Width()
	for i := len(t.cells) - 1; i >= 0 && t.Width()-end < right; i-- {
		end -= t.cells[i].Width
	}
	if end <= start {
		return ""
	}

	return t.Slice(start, end).String()
}
