package termformat

import (
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789ABCDEF"

// Sanitize makes untrusted text s safe to print:
//   - SGR sequences (colors, bold, ...) are kept, so styled input stays styled. Every other escape sequence is neutralized, as is everything after a malformed one.
//   - Control characters other than \n and \r are shown as "\xNN" (ex: ESC becomes the four characters `\x1B`). C1 controls are shown as "\u00NN".
//   - \t becomes tabWidth spaces if tabWidth > 0, and is otherwise kept.
//   - Invalid UTF-8 becomes U+FFFD.
func Sanitize(s string, tabWidth int) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, tok := range scanANSI(s) {
		if tok.escape {
			if _, ok := isSGR(tok.text); ok {
				b.WriteString(tok.text)
				continue
			}
		}
		writeSanitized(&b, tok.text, tabWidth, true)
	}
	return b.String()
}

// SanitizeLine is Sanitize for text that must stay on one terminal row, such as a title or a table cell. SGR sequences and OSC 8 hyperlinks are kept; \n and \r are shown as
// "\xNN" like every other control character. With tabWidth <= 0 a tab is shown as `\x09`.
func SanitizeLine(s string, tabWidth int) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, tok := range scanANSI(s) {
		if tok.escape {
			if _, ok := isSGR(tok.text); ok || strings.HasPrefix(tok.text, oscHyperlink) {
				b.WriteString(tok.text)
				continue
			}
		}
		writeSanitized(&b, tok.text, tabWidth, false)
	}
	return b.String()
}

const oscHyperlink = "\x1b]8;"

func writeSanitized(b *strings.Builder, s string, tabWidth int, keepBreaks bool) {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		switch {
		case r == utf8.RuneError && size == 1:
			b.WriteRune(utf8.RuneError)
		case r == '\t' && tabWidth > 0:
			b.WriteString(strings.Repeat(" ", tabWidth))
		case keepBreaks && (r == '\t' || r == '\n' || r == '\r'):
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			b.WriteString(`\x`)
			b.WriteByte(hexDigits[r>>4])
			b.WriteByte(hexDigits[r&0x0f])
		case r >= 0x80 && r < 0xa0:
			b.WriteString(`\u00`)
			b.WriteByte(hexDigits[r>>4&0x0f])
			b.WriteByte(hexDigits[r&0x0f])
		default:
			b.WriteRune(r)
		}
	}
}
