package termformat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// ANSIReset resets every SGR attribute.
const ANSIReset = "\x1b[0m"

// Color is a terminal color. A nil Color means the terminal default. Implementations are comparable values, so two Colors can be compared with ==.
type Color interface {
	// ANSISequence returns the complete SGR escape selecting this color as foreground (or background if background is true).
	ANSISequence(background bool) string

	sgrParams(background bool) string
}

// ANSIColor is one of the 16 basic terminal colors (0-7 normal, 8-15 bright).
type ANSIColor uint8

const (
	ANSIBlack ANSIColor = iota
	ANSIRed
	ANSIGreen
	ANSIYellow
	ANSIBlue
	ANSIMagenta
	ANSICyan
	ANSIWhite
	ANSIBrightBlack
	ANSIBrightRed
	ANSIBrightGreen
	ANSIBrightYellow
	ANSIBrightBlue
	ANSIBrightMagenta
	ANSIBrightCyan
	ANSIBrightWhite
)

var basicColorNames = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright_black", "bright_red", "bright_green", "bright_yellow", "bright_blue", "bright_magenta", "bright_cyan", "bright_white",
}

func (c ANSIColor) ANSISequence(background bool) string {
	return sgrSequence(c.sgrParams(background))
}

func (c ANSIColor) sgrParams(background bool) string {
	n := int(c & 0x0f)
	base := 30
	if n >= 8 {
		base = 90
		n -= 8
	}
	if background {
		base += 10
	}
	return strconv.Itoa(base + n)
}

func (c ANSIColor) String() string {
	return basicColorNames[c&0x0f]
}

// ANSI256Color is an xterm 256-color palette index.
type ANSI256Color uint8

func (c ANSI256Color) ANSISequence(background bool) string {
	return sgrSequence(c.sgrParams(background))
}

func (c ANSI256Color) sgrParams(background bool) string {
	if background {
		return "48;5;" + strconv.Itoa(int(c))
	}
	return "38;5;" + strconv.Itoa(int(c))
}

func (c ANSI256Color) String() string {
	return "color(" + strconv.Itoa(int(c)) + ")"
}

// RGBColor is a 24-bit color.
type RGBColor struct {
	R, G, B uint8
}

func (c RGBColor) ANSISequence(background bool) string {
	return sgrSequence(c.sgrParams(background))
}

func (c RGBColor) sgrParams(background bool) string {
	prefix := "38;2;"
	if background {
		prefix = "48;2;"
	}
	return prefix + strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
}

// Hex returns c as "#rrggbb".
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGBColor) String() string {
	return c.Hex()
}

// Colorful converts c for color math.
func (c RGBColor) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// RGBFromColorful converts a colorful.Color, clamping out-of-gamut values.
func RGBFromColorful(c colorful.Color) RGBColor {
	r, g, b := c.Clamped().RGB255()
	return RGBColor{R: r, G: g, B: b}
}

// NoColor explicitly selects the terminal default color. When merged into a Style it clears the color.
type NoColor struct{}

func (NoColor) ANSISequence(background bool) string {
	return sgrSequence(NoColor{}.sgrParams(background))
}

func (NoColor) sgrParams(background bool) string {
	if background {
		return "49"
	}
	return "39"
}

func (NoColor) String() string {
	return "default"
}

func sgrSequence(params string) string {
	return "\x1b[" + params + "m"
}

var ErrInvalidColor = errors.New("termformat: invalid color")

// ParseColor parses "#rgb", "#rrggbb", "rgb(r,g,b)", "color(n)" (256-color index), a basic color name ("red", "bright_blue", ...) or "default".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "":
		return nil, fmt.Errorf("%w: empty", ErrInvalidColor)
	case s == "default" || s == "none":
		return NoColor{}, nil
	case strings.HasPrefix(s, "#"):
		if len(s) == 4 {
			s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return RGBFromColorful(c), nil
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		var vals [3]uint8
		for i, p := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			vals[i] = uint8(n)
		}
		return RGBColor{R: vals[0], G: vals[1], B: vals[2]}, nil
	case strings.HasPrefix(s, "color(") && strings.HasSuffix(s, ")"):
		n, err := strconv.ParseUint(s[6:len(s)-1], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return ANSI256Color(n), nil
	}

	name := strings.ReplaceAll(s, " ", "_")
	for i, n := range basicColorNames {
		if n == name {
			return ANSIColor(i), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustParseColor is like ParseColor but panics on error. Intended for static tables.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ColorDepth is how many colors a terminal can show.
type ColorDepth int

const (
	DepthNone      ColorDepth = iota // no color at all
	Depth16                          // basic ANSI colors
	Depth256                         // xterm palette
	DepthTrueColor                   // 24-bit
)

func (d ColorDepth) String() string {
	switch d {
	case DepthNone:
		return "none"
	case Depth16:
		return "16"
	case Depth256:
		return "256"
	case DepthTrueColor:
		return "truecolor"
	default:
		return "unknown"
	}
}

// ParseColorDepth parses the names returned by ColorDepth.String.
func ParseColorDepth(s string) (ColorDepth, bool) {
	switch strings.ToLower(s) {
	case "none", "ascii":
		return DepthNone, true
	case "16", "ansi":
		return Depth16, true
	case "256", "ansi256":
		return Depth256, true
	case "truecolor", "24bit", "":
		return DepthTrueColor, true
	default:
		return DepthTrueColor, false
	}
}

// DepthFromProfile maps a termenv color profile to a ColorDepth.
func DepthFromProfile(p termenv.Profile) ColorDepth {
	switch p {
	case termenv.TrueColor:
		return DepthTrueColor
	case termenv.ANSI256:
		return Depth256
	case termenv.ANSI:
		return Depth16
	default:
		return DepthNone
	}
}

// Profile is the inverse of DepthFromProfile.
func (d ColorDepth) Profile() termenv.Profile {
	switch d {
	case DepthTrueColor:
		return termenv.TrueColor
	case Depth256:
		return termenv.ANSI256
	case Depth16:
		return termenv.ANSI
	default:
		return termenv.Ascii
	}
}

// Downsample converts c to the closest color representable at depth. DepthNone returns nil (terminal default).
func Downsample(c Color, depth ColorDepth) Color {
	if c == nil {
		return nil
	}
	if depth == DepthNone {
		return nil
	}

	var tc termenv.Color
	switch v := c.(type) {
	case RGBColor:
		if depth == DepthTrueColor {
			return v
		}
		tc = termenv.RGBColor(v.Hex())
	case ANSI256Color:
		if depth >= Depth256 {
			return v
		}
		tc = termenv.ANSI256Color(v)
	default:
		return c
	}

	switch out := depth.Profile().Convert(tc).(type) {
	case termenv.ANSIColor:
		return ANSIColor(out)
	case termenv.ANSI256Color:
		return ANSI256Color(out)
	case termenv.RGBColor:
		cf, err := colorful.Hex(string(out))
		if err != nil {
			return c
		}
		return RGBFromColorful(cf)
	default:
		return nil
	}
}

// cssColors are names accepted by ParseRGB in addition to the basic color names. Basic names resolve to their xterm RGB values.
var cssColors = map[string]string{
	"purple":    "#800080",
	"violet":    "#ee82ee",
	"indigo":    "#4b0082",
	"orange":    "#ffa500",
	"pink":      "#ffc0cb",
	"hotpink":   "#ff69b4",
	"gold":      "#ffd700",
	"gray":      "#808080",
	"grey":      "#808080",
	"silver":    "#c0c0c0",
	"navy":      "#000080",
	"teal":      "#008080",
	"lime":      "#00ff00",
	"olive":     "#808000",
	"maroon":    "#800000",
	"brown":     "#a52a2a",
	"coral":     "#ff7f50",
	"salmon":    "#fa8072",
	"turquoise": "#40e0d0",
	"lavender":  "#e6e6fa",
}

// ParseRGB is like ParseColor but always returns a 24-bit color, resolving palette colors and a small set of CSS color names ("purple", "orange", "pink", "gray", ...). "default"
// is rejected: it has no RGB value.
func ParseRGB(s string) (RGBColor, error) {
	name := strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), " ", "")
	if hex, ok := cssColors[name]; ok {
		s = hex
	}
	c, err := ParseColor(s)
	if err != nil {
		return RGBColor{}, err
	}
	rgb, ok := ToRGB(c)
	if !ok {
		return RGBColor{}, fmt.Errorf("%w: %q has no RGB value", ErrInvalidColor, s)
	}
	return rgb, nil
}

// ToRGB returns the 24-bit value of c. nil and NoColor report false.
func ToRGB(c Color) (RGBColor, bool) {
	switch v := c.(type) {
	case RGBColor:
		return v, true
	case ANSIColor:
		return RGBFromColorful(termenv.ConvertToRGB(termenv.ANSIColor(v))), true
	case ANSI256Color:
		return RGBFromColorful(termenv.ConvertToRGB(termenv.ANSI256Color(v))), true
	default:
		return RGBColor{}, false
	}
}

func (d ColorDepth) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *ColorDepth) UnmarshalText(b []byte) error {
	v, ok := ParseColorDepth(string(b))
	if !ok {
		return fmt.Errorf("termformat: unknown color depth %q", b)
	}
	*d = v
	return nil
}
