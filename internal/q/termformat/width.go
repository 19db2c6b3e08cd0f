package termformat

import (
	"strings"

	"github.com/codalotl/framekit/internal/q/uni"
)

// VisualWidth returns the text width of str for monospace fonts in terminals while ignoring ANSI codes. Ex: color formatting codes don't
// contribute to the width and so are ignored. In other words, if rendered to a terminal, how many cells does str occupy?
//
// A malformed or unterminated escape sequence is treated as literal text from its ESC byte to the end of str.
func VisualWidth(str string, mode uni.WidthMode) int {
	if str == "" {
		return 0
	}

	opts := &uni.Options{Mode: mode}
	width := 0
	for _, tok := range scanANSI(str) {
		if !tok.escape {
			width += uni.TextWidth(tok.text, opts)
		}
	}
	return width
}

// Strip removes every well-formed escape sequence from str.
func Strip(str string) string {
	if strings.IndexByte(str, '\x1b') < 0 {
		return str
	}
	var b strings.Builder
	b.Grow(len(str))
	for _, tok := range scanANSI(str) {
		if !tok.escape {
			b.WriteString(tok.text)
		}
	}
	return b.String()
}

// token is a run of str that is either a single escape sequence or visible text with no escapes. start is its byte offset in the scanned string.
type token struct {
	text   string
	start  int
	escape bool
}

func scanANSI(str string) []token {
	var toks []token
	segmentStart := 0

	for i := 0; i < len(str); {
		if str[i] != '\x1b' {
			i++
			continue
		}

		seqLen := ansiSequenceLength(str[i:])
		if seqLen == 0 {
			// Malformed: everything from here on is literal.
			break
		}

		if segmentStart < i {
			toks = append(toks, token{text: str[segmentStart:i], start: segmentStart})
		}
		toks = append(toks, token{text: str[i : i+seqLen], start: i, escape: true})
		i += seqLen
		segmentStart = i
	}

	if segmentStart < len(str) {
		toks = append(toks, token{text: str[segmentStart:], start: segmentStart})
	}

	return toks
}

// ansiSequenceLength returns the byte length of the escape sequence at the start of s, or 0 if s does not start with a complete one.
func ansiSequenceLength(s string) int {
	if len(s) < 2 || s[0] != '\x1b' {
		return 0
	}

	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			c := s[i]
			if c >= 0x40 && c <= 0x7e { // Final byte of a CSI sequence
				return i + 1
			}
			if c < 0x20 || c > 0x7e {
				return 0
			}
		}
		return 0
	case ']':
		for i := 2; i < len(s); i++ {
			if s[i] == '\a' { // BEL terminator
				return i + 1
			}
			if s[i] == '\\' && s[i-1] == '\x1b' { // ST terminator (ESC \)
				return i + 1
			}
		}
		return 0
	case 'P', '^', '_', 'X':
		for i := 2; i < len(s); i++ {
			if s[i] == '\\' && s[i-1] == '\x1b' {
				return i + 1
			}
		}
		return 0
	default:
		if s[1] < 0x20 || s[1] == 0x7f {
			return 0
		}
		return 2 // ESC followed by a single-character control sequence
	}
}

// isSGR reports whether seq is a complete CSI ... m sequence, returning its parameter string.
func isSGR(seq string) (string, bool) {
	if len(seq) < 3 || seq[1] != '[' || seq[len(seq)-1] != 'm' {
		return "", false
	}
	params := seq[2 : len(seq)-1]
	for i := 0; i < len(params); i++ {
		c := params[i]
		if (c < '0' || c > '9') && c != ';' && c != ':' {
			return "", false
		}
	}
	return params, true
}
