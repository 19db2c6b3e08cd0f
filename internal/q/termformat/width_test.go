package termformat

import (
	"testing"

	"github.com/codalotl/framekit/internal/q/uni"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualWidthPlain(t *testing.T) {
	require.Equal(t, 11, VisualWidth("hello world", uni.ModeModern))
}

func TestVisualWidthSGR(t *testing.T) {
	colored := ANSIRed.ANSISequence(false) + "世a" + ANSIReset + "!"
	require.Equal(t, 4, VisualWidth(colored, uni.ModeModern))
}

func TestVisualWidthOSCBELTerminator(t *testing.T) {
	hyperlink := "\x1b]8;;https://example.com\x07link\x1b]8;;\x07"
	require.Equal(t, 4, VisualWidth(hyperlink, uni.ModeModern))
}

func TestVisualWidthOSCSTTerminator(t *testing.T) {
	hyperlink := "\x1b]8;;https://example.com\x1b\\label\x1b]8;;\x1b\\"
	require.Equal(t, 5, VisualWidth(hyperlink, uni.ModeModern))
}

func TestVisualWidthDefaultEscape(t *testing.T) {
	require.Equal(t, 2, VisualWidth("ok\x1bc", uni.ModeModern))
}

func TestVisualWidthNewlines(t *testing.T) {
	assert.Equal(t, 0, VisualWidth("", uni.ModeModern))
	assert.Equal(t, 0, VisualWidth("\r\n", uni.ModeModern))
}

func TestVisualWidthModes(t *testing.T) {
	dev := "\U0001F468\u200d\U0001F4BB"
	styled := "\x1b[1;35m" + dev + "\x1b[0m Developer"

	assert.Equal(t, 12, VisualWidth(styled, uni.ModeModern))
	assert.Equal(t, 14, VisualWidth(styled, uni.ModeStandard))
	assert.Equal(t, 10, VisualWidth("\x1b[32m\U0001F680 Rocket!\x1b[0m", uni.ModeModern))
}

func TestVisualWidthMalformedEscapeIsLiteral(t *testing.T) {
	// The ESC itself is a zero-width control; "[31" is literal text.
	assert.Equal(t, 5, VisualWidth("ab\x1b[31", uni.ModeModern))
	assert.Equal(t, 2, VisualWidth("ab\x1b", uni.ModeModern))
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "hi there", Strip("\x1b[31mhi\x1b[0m \x1b]8;;x\x07there\x1b]8;;\x07"))
	assert.Equal(t, "plain", Strip("plain"))
}
