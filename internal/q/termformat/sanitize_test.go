package termformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	red := ANSIRed.ANSISequence(false)

	tests := []struct {
		name     string
		in       string
		tabWidth int
		want     string
	}{
		{name: "empty", in: "", want: ""},
		{name: "graphemesUntouched", in: "界 é 👍🏽", tabWidth: 4, want: "界 é 👍🏽"},
		{name: "tabsExpanded", in: "\tx\t", tabWidth: 2, want: "  x  "},
		{name: "tabsKept", in: "\tx", tabWidth: 0, want: "\tx"},
		{name: "lineBreaksKept", in: "a\r\nb\n", tabWidth: 4, want: "a\r\nb\n"},
		{name: "bellAndBackspace", in: "ding\a\b", tabWidth: 4, want: `ding\x07\x08`},
		{name: "delete", in: "x\x7f", tabWidth: 4, want: `x\x7F`},
		{name: "styledInputKept", in: red + "err" + ANSIReset + " ok", tabWidth: 4, want: red + "err" + ANSIReset + " ok"},
		{name: "cursorMovementNeutralized", in: "a\x1b[2Ab", tabWidth: 4, want: `a\x1B[2Ab`},
		{name: "clearScreenNeutralized", in: "\x1b[2J" + red + "x", tabWidth: 4, want: `\x1B[2J` + red + "x"},
		{name: "hyperlinkNeutralized", in: "\x1b]8;;http://x\x07link", tabWidth: 4, want: `\x1B]8;;http://x\x07link`},
		{name: "malformedEscapeNeutralizesRest", in: "a\x1b\x01" + red + "b", tabWidth: 4, want: `a\x1B\x01\x1B[31mb`},
		{name: "invalidUTF8", in: "ok\xff\xc3", tabWidth: 4, want: "ok\ufffd\ufffd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in, tt.tabWidth))
		})
	}
}

func TestSanitizeLine(t *testing.T) {
	red := ANSIRed.ANSISequence(false)
	link := "\x1b]8;;http://x\x1b\\"

	tests := []struct {
		name     string
		in       string
		tabWidth int
		want     string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "status", tabWidth: 4, want: "status"},
		{name: "newline", in: "a\nb", tabWidth: 4, want: `a\x0Ab`},
		{name: "carriageReturn", in: "a\r\nb", tabWidth: 4, want: `a\x0D\x0Ab`},
		{name: "tabExpanded", in: "a\tb", tabWidth: 4, want: "a    b"},
		{name: "tabShown", in: "a\tb", tabWidth: 0, want: `a\x09b`},
		{name: "c1Control", in: "a\u0085b", tabWidth: 4, want: `a\u0085b`},
		{name: "styleKept", in: red + "x" + ANSIReset, tabWidth: 4, want: red + "x" + ANSIReset},
		{name: "hyperlinkKept", in: link + "go" + "\x1b]8;;\x1b\\", tabWidth: 4, want: link + "go" + "\x1b]8;;\x1b\\"},
		{name: "cursorMovementNeutralized", in: "a\x1b[2Ab", tabWidth: 4, want: `a\x1B[2Ab`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeLine(tt.in, tt.tabWidth)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, Strip(got), "\n")
		})
	}
}
