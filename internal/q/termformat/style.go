package termformat

import (
	"slices"
	"strconv"
	"strings"
)

// Style is a set of SGR attributes. The zero value is the terminal default. Style is a value type: methods return new Styles.
type Style struct {
	Foreground    Color // nil: terminal default
	Background    Color // nil: terminal default
	Bold          bool
	Dim           bool
	Italic        bool
	Underline     bool
	Reverse       bool
	Strikethrough bool

	// Raw holds SGR parameters this package does not model (ex: "53" for overline, "4:3" for curly underline), in the order they were seen. They are re-emitted verbatim.
	Raw []string
}

// IsDefault is true if s renders exactly like unstyled text.
func (s Style) IsDefault() bool {
	return s.Foreground == nil && s.Background == nil && !s.Bold && !s.Dim && !s.Italic && !s.Underline && !s.Reverse && !s.Strikethrough && len(s.Raw) == 0
}

// Equal reports whether s and o produce the same SGR state.
func (s Style) Equal(o Style) bool {
	return s.Foreground == o.Foreground &&
		s.Background == o.Background &&
		s.Bold == o.Bold &&
		s.Dim == o.Dim &&
		s.Italic == o.Italic &&
		s.Underline == o.Underline &&
		s.Reverse == o.Reverse &&
		s.Strikethrough == o.Strikethrough &&
		slices.Equal(s.Raw, o.Raw)
}

// Merge returns s with over layered on top, one attribute dimension at a time: a non-nil color in over replaces s's color (NoColor clears it), a true flag in over sets the flag, and Raw
// parameters of over are appended unless already present. Dimensions over leaves unset are untouched. Merge is idempotent: s.Merge(o).Merge(o) == s.Merge(o).
func (s Style) Merge(over Style) Style {
	out := s
	if over.Foreground != nil {
		out.Foreground = normalizeColor(over.Foreground)
	}
	if over.Background != nil {
		out.Background = normalizeColor(over.Background)
	}
	out.Bold = s.Bold || over.Bold
	out.Dim = s.Dim || over.Dim
	out.Italic = s.Italic || over.Italic
	out.Underline = s.Underline || over.Underline
	out.Reverse = s.Reverse || over.Reverse
	out.Strikethrough = s.Strikethrough || over.Strikethrough
	if len(over.Raw) > 0 {
		raw := slices.Clone(s.Raw)
		for _, p := range over.Raw {
			if !slices.Contains(raw, p) {
				raw = append(raw, p)
			}
		}
		out.Raw = raw
	}
	return out
}

func normalizeColor(c Color) Color {
	if _, ok := c.(NoColor); ok {
		return nil
	}
	return c
}

// WithForeground returns s with its foreground replaced by c (nil for the default).
func (s Style) WithForeground(c Color) Style {
	s.Foreground = normalizeColor(c)
	return s
}

// params returns the SGR parameters that establish s starting from the default state.
func (s Style) params() []string {
	var ps []string
	if s.Bold {
		ps = append(ps, "1")
	}
	if s.Dim {
		ps = append(ps, "2")
	}
	if s.Italic {
		ps = append(ps, "3")
	}
	if s.Underline {
		ps = append(ps, "4")
	}
	if s.Reverse {
		ps = append(ps, "7")
	}
	if s.Strikethrough {
		ps = append(ps, "9")
	}
	if s.Foreground != nil {
		ps = append(ps, s.Foreground.sgrParams(false))
	}
	if s.Background != nil {
		ps = append(ps, s.Background.sgrParams(true))
	}
	ps = append(ps, s.Raw...)
	return ps
}

// Sequence returns the SGR escape that establishes s from the default state, or "" for the default style.
func (s Style) Sequence() string {
	if s.IsDefault() {
		return ""
	}
	return sgrSequence(strings.Join(s.params(), ";"))
}

// Apply wraps str (which should not contain newlines) in s, followed by a reset. Existing escapes in str are left alone; use Text.Stylize to merge.
func (s Style) Apply(str string) string {
	if s.IsDefault() || str == "" {
		return str
	}
	return s.Sequence() + str + ANSIReset
}

// transition returns the escape that moves the terminal from style from to style to, or "" if none is needed. Turning any attribute off resets and re-establishes the full target
// state; otherwise only the attributes that differ are emitted.
func transition(from, to Style) string {
	if from.Equal(to) {
		return ""
	}
	if to.IsDefault() {
		return ANSIReset
	}

	turnsOff := (from.Foreground != nil && to.Foreground == nil) ||
		(from.Background != nil && to.Background == nil) ||
		(from.Bold && !to.Bold) ||
		(from.Dim && !to.Dim) ||
		(from.Italic && !to.Italic) ||
		(from.Underline && !to.Underline) ||
		(from.Reverse && !to.Reverse) ||
		(from.Strikethrough && !to.Strikethrough)
	if !turnsOff {
		for _, p := range from.Raw {
			if !slices.Contains(to.Raw, p) {
				turnsOff = true
				break
			}
		}
	}
	if turnsOff {
		return sgrSequence("0;" + strings.Join(to.params(), ";"))
	}

	var ps []string
	if to.Bold && !from.Bold {
		ps = append(ps, "1")
	}
	if to.Dim && !from.Dim {
		ps = append(ps, "2")
	}
	if to.Italic && !from.Italic {
		ps = append(ps, "3")
	}
	if to.Underline && !from.Underline {
		ps = append(ps, "4")
	}
	if to.Reverse && !from.Reverse {
		ps = append(ps, "7")
	}
	if to.Strikethrough && !from.Strikethrough {
		ps = append(ps, "9")
	}
	if to.Foreground != from.Foreground {
		ps = append(ps, to.Foreground.sgrParams(false))
	}
	if to.Background != from.Background {
		ps = append(ps, to.Background.sgrParams(true))
	}
	for _, p := range to.Raw {
		if !slices.Contains(from.Raw, p) {
			ps = append(ps, p)
		}
	}
	return sgrSequence(strings.Join(ps, ";"))
}

// applySGR returns cur updated by the parameter string of one SGR sequence (the part between "ESC [" and "m").
func applySGR(cur Style, paramStr string) Style {
	if paramStr == "" {
		return Style{}
	}

	params := strings.Split(paramStr, ";")
	for i := 0; i < len(params); i++ {
		p := params[i]
		if strings.Contains(p, ":") {
			if c, ok := parseColonColor(p); ok {
				if strings.HasPrefix(p, "48") {
					cur.Background = c
				} else {
					cur.Foreground = c
				}
				continue
			}
			cur = appendRaw(cur, p)
			continue
		}

		n, err := strconv.Atoi(p)
		if p == "" {
			n, err = 0, nil
		}
		if err != nil {
			cur = appendRaw(cur, p)
			continue
		}

		switch {
		case n == 0:
			cur = Style{}
		case n == 1:
			cur.Bold = true
		case n == 2:
			cur.Dim = true
		case n == 3:
			cur.Italic = true
		case n == 4:
			cur.Underline = true
		case n == 7:
			cur.Reverse = true
		case n == 9:
			cur.Strikethrough = true
		case n == 22:
			cur.Bold = false
			cur.Dim = false
		case n == 23:
			cur.Italic = false
		case n == 24:
			cur.Underline = false
		case n == 27:
			cur.Reverse = false
		case n == 29:
			cur.Strikethrough = false
		case n >= 30 && n <= 37:
			cur.Foreground = ANSIColor(n - 30)
		case n >= 90 && n <= 97:
			cur.Foreground = ANSIColor(n - 90 + 8)
		case n >= 40 && n <= 47:
			cur.Background = ANSIColor(n - 40)
		case n >= 100 && n <= 107:
			cur.Background = ANSIColor(n - 100 + 8)
		case n == 39:
			cur.Foreground = nil
		case n == 49:
			cur.Background = nil
		case n == 38 || n == 48:
			c, consumed, ok := parseExtendedColor(params[i+1:])
			if !ok {
				// Not a color we understand; keep the rest verbatim so it round-trips.
				cur = appendRaw(cur, strings.Join(params[i:], ";"))
				return cur
			}
			if n == 38 {
				cur.Foreground = c
			} else {
				cur.Background = c
			}
			i += consumed
		default:
			cur = appendRaw(cur, p)
		}
	}
	return cur
}

func appendRaw(cur Style, p string) Style {
	if slices.Contains(cur.Raw, p) {
		return cur
	}
	cur.Raw = append(slices.Clone(cur.Raw), p)
	return cur
}

// parseExtendedColor parses the parameters following a 38 or 48: "5;n" or "2;r;g;b". It returns how many parameters it consumed.
func parseExtendedColor(rest []string) (Color, int, bool) {
	if len(rest) == 0 {
		return nil, 0, false
	}
	switch rest[0] {
	case "5":
		if len(rest) < 2 {
			return nil, 0, false
		}
		n, ok := parseByte(rest[1])
		if !ok {
			return nil, 0, false
		}
		return ANSI256Color(n), 2, true
	case "2":
		if len(rest) < 4 {
			return nil, 0, false
		}
		r, ok1 := parseByte(rest[1])
		g, ok2 := parseByte(rest[2])
		b, ok3 := parseByte(rest[3])
		if !ok1 || !ok2 || !ok3 {
			return nil, 0, false
		}
		return RGBColor{R: r, G: g, B: b}, 4, true
	}
	return nil, 0, false
}

// parseColonColor parses the ITU form "38:2::r:g:b", "38:2:r:g:b" or "38:5:n".
func parseColonColor(p string) (Color, bool) {
	parts := strings.Split(p, ":")
	if len(parts) < 3 || (parts[0] != "38" && parts[0] != "48") {
		return nil, false
	}
	switch parts[1] {
	case "5":
		if len(parts) != 3 {
			return nil, false
		}
		n, ok := parseByte(parts[2])
		if !ok {
			return nil, false
		}
		return ANSI256Color(n), true
	case "2":
		rgb := parts[2:]
		if len(rgb) == 4 {
			rgb = rgb[1:] // color space id
		}
		if len(rgb) != 3 {
			return nil, false
		}
		r, ok1 := parseByte(rgb[0])
		g, ok2 := parseByte(rgb[1])
		b, ok3 := parseByte(rgb[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, false
		}
		return RGBColor{R: r, G: g, B: b}, true
	}
	return nil, false
}

func parseByte(s string) (uint8, bool) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, false
	}
	return uint8(n), true
}
