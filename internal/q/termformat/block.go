package termformat

import (
	"strings"

	"github.com/codalotl/framekit/internal/q/uni"
)

// BlockWidth calculates VisualWidth for each line in str and returns the max value. In other words, it's the number of columns that printing a block of text would occupy.
func BlockWidth(str string, mode uni.WidthMode) int {
	maxWidth := 0
	for _, line := range strings.Split(str, "\n") {
		if w := VisualWidth(strings.TrimSuffix(line, "\r"), mode); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// BlockHeight is the number of rows in str. Note that if str has a trailing newline, str is considered to have a blank last row (it counts).
func BlockHeight(str string) int {
	if str == "" {
		return 0
	}
	return strings.Count(str, "\n") + 1
}

type BlockNormalizeMode string

const (
	BlockNormalizeModeNaive     BlockNormalizeMode = ""
	BlockNormalizeModeTerminate BlockNormalizeMode = "terminate"
)

// BlockNormalizeWidth pads every line of str with spaces to width columns (or to the widest line, if width is smaller).
//
// Consider a str that is styled with ANSI codes. The styles may span lines. You may or may not want those styles to apply to the spaces added.
//   - BlockNormalizeModeNaive just adds spaces to each line, with no special logic. Sometimes those spaces inherit styles, sometimes not. Best for an unstyled block.
//   - BlockNormalizeModeTerminate ensures an ANSI reset is present on each line, if that line contains ongoing styles. Spaces added have default terminal styles. If styles were terminated, they're resumed on the next line.
func BlockNormalizeWidth(str string, width int, mode BlockNormalizeMode, wm uni.WidthMode) string {
	if str == "" && width <= 0 {
		return ""
	}

	input := str
	if mode == BlockNormalizeModeTerminate {
		input = BlockStylePerLine(str)
	}

	if w := BlockWidth(input, wm); w > width {
		width = w
	}

	lines := strings.Split(input, "\n")
	for i, line := range lines {
		core, hadCR := strings.CutSuffix(line, "\r")
		pad := width - VisualWidth(core, wm)
		if pad > 0 {
			core += strings.Repeat(" ", pad)
		}
		if hadCR {
			core += "\r"
		}
		lines[i] = core
	}

	return strings.Join(lines, "\n")
}

// BlockStylePerLine ensures str's ANSI styles are applied and reset on a per-line basis. The returned string should be displayed identically in terminals to the original.
//
// Examples (using tags for ease of human reading - actually ANSI codes):
//   - "" -> ""
//   - "hi" -> "hi"
//   - "<bold>hi<reset>" -> "<bold>hi<reset>"
//   - "<bold>hi" -> "<bold>hi<reset>"
//   - "<red>hello\nworld<reset>" -> "<red>hello<reset>\n<red>world<reset>"
//   - "<red>hello\nworld" -> "<red>hello<reset>\n<red>world<reset>"
//   - "<red>hello<reset> world" -> "<red>hello<reset> world"
//
// The resultant styled string is easier to work with: a line is an atomic unit that can be written independently, without the rest of the block.
func BlockStylePerLine(str string) string {
	if str == "" || strings.IndexByte(str, '\x1b') < 0 {
		return str
	}

	lines := strings.Split(str, "\n")
	ends := make([]Style, len(lines))
	var state Style
	needsRewrite := false
	for i, line := range lines {
		state = simulateSGRState(state, line)
		ends[i] = state
		if !state.IsDefault() {
			needsRewrite = true
		}
	}
	if !needsRewrite {
		return str
	}

	var out strings.Builder
	out.Grow(len(str) + 8*len(lines))

	var start Style
	for i, line := range lines {
		if i > 0 {
			out.WriteByte('\n')
		}
		core, hadCR := strings.CutSuffix(line, "\r")

		out.WriteString(start.Sequence())
		out.WriteString(core)
		if !ends[i].IsDefault() {
			out.WriteString(ANSIReset)
		}
		if hadCR {
			out.WriteByte('\r')
		}
		start = ends[i]
	}

	return out.String()
}

// simulateSGRState returns the SGR state after printing text, starting from start.
func simulateSGRState(start Style, text string) Style {
	cur := start
	for _, tok := range scanANSI(text) {
		if !tok.escape {
			continue
		}
		if params, ok := isSGR(tok.text); ok {
			cur = applySGR(cur, params)
		}
	}
	return cur
}
