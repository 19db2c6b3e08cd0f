// Package renderpolicy decides what a terminal can display: Unicode box drawing, color (and how many colors), emoji, and cursor control. A Policy is an immutable value passed to
// rendering calls; FromEnv is the only code that inspects the environment.
package renderpolicy

import (
	"sync/atomic"

	"github.com/codalotl/framekit/internal/q/frame"
	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/q/uni"
)

// Policy is a resolved set of terminal capabilities.
type Policy struct {
	// Unicode allows box drawing and other non-ASCII glyphs.
	Unicode bool `yaml:"unicode" toml:"unicode"`

	Color bool                  `yaml:"color" toml:"color"`
	Depth termformat.ColorDepth `yaml:"depth" toml:"depth"` // only meaningful if Color

	Emoji bool `yaml:"emoji" toml:"emoji"`

	// ModernWidth means the terminal draws ZWJ sequences, flags and VS16 emoji as a single wide glyph.
	ModernWidth bool `yaml:"modern_width" toml:"modern_width"`

	ForceASCIIIcons bool `yaml:"force_ascii_icons" toml:"force_ascii_icons"`

	// BorderFallback is the border style drawn in place of every style when Unicode is off. "" is "ascii".
	BorderFallback string `yaml:"border_fallback,omitempty" toml:"border_fallback,omitempty"`

	// Interactive means the output is a terminal that supports cursor movement.
	Interactive bool `yaml:"interactive" toml:"interactive"`
}

// Full is a modern interactive terminal.
func Full() Policy {
	return Policy{Unicode: true, Color: true, Depth: termformat.DepthTrueColor, Emoji: true, ModernWidth: true, Interactive: true}
}

// Minimal is plain ASCII without color.
func Minimal() Policy {
	return Policy{ForceASCIIIcons: true}
}

// CIFriendly suits CI logs: Unicode and basic colors, no emoji and no cursor movement.
func CIFriendly() Policy {
	return Policy{Unicode: true, Color: true, Depth: termformat.Depth16, ForceASCIIIcons: true}
}

// NoColor is Full without color.
func NoColor() Policy {
	p := Full()
	p.Color = false
	p.Depth = termformat.DepthNone
	return p
}

// Presets maps preset names to constructors.
var Presets = map[string]func() Policy{
	"full":    Full,
	"minimal": Minimal,
	"ci":      CIFriendly,
	"nocolor": NoColor,
}

// Override changes selected fields of a Policy. nil fields are left alone.
type Override struct {
	Unicode         *bool
	Color           *bool
	Depth           *termformat.ColorDepth
	Emoji           *bool
	ModernWidth     *bool
	ForceASCIIIcons *bool
	Interactive     *bool
	BorderFallback  *string
}

// WithOverride returns a copy of p with o applied. Turning Color off also sets the depth to none; turning it on from none picks 16 colors.
func (p Policy) WithOverride(o Override) Policy {
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Unicode, o.Unicode)
	set(&p.Emoji, o.Emoji)
	set(&p.ModernWidth, o.ModernWidth)
	set(&p.ForceASCIIIcons, o.ForceASCIIIcons)
	set(&p.Interactive, o.Interactive)
	if o.BorderFallback != nil {
		p.BorderFallback = *o.BorderFallback
	}
	if o.Depth != nil {
		p.Depth = *o.Depth
		p.Color = p.Depth != termformat.DepthNone
	}
	if o.Color != nil {
		p.Color = *o.Color
		switch {
		case !p.Color:
			p.Depth = termformat.DepthNone
		case p.Depth == termformat.DepthNone:
			p.Depth = termformat.Depth16
		}
	}
	return p
}

// ColorEnabled reports whether any color may be emitted.
func (p Policy) ColorEnabled() bool {
	return p.Color && p.Depth != termformat.DepthNone
}

// ColorDepth is the depth colors are downsampled to. It is DepthNone if color is off.
func (p Policy) ColorDepth() termformat.ColorDepth {
	if !p.Color {
		return termformat.DepthNone
	}
	return p.Depth
}

// WidthMode is the width calculation matching the terminal: modern only if it renders emoji and measures them the modern way.
func (p Policy) WidthMode() uni.WidthMode {
	if p.Emoji && p.ModernWidth {
		return uni.ModeModern
	}
	return uni.ModeStandard
}

// BorderFor returns the border style to draw instead of name. Without Unicode every style falls back to BorderFallback. Unknown names are returned as-is so Layout reports them.
func (p Policy) BorderFor(name string) string {
	if p.Unicode {
		return name
	}
	if _, err := frame.LookupBorder(name); err != nil {
		return name
	}
	if p.BorderFallback != "" {
		return p.BorderFallback
	}
	return frame.ASCII.Name
}

// Icon returns emoji if the policy can show it, otherwise ascii.
func (p Policy) Icon(emoji, ascii string) string {
	if p.Emoji && p.Unicode && !p.ForceASCIIIcons {
		return emoji
	}
	return ascii
}

// Colorize returns s styled with fg, downsampled to the policy's depth. Without color, s is returned unchanged.
func (p Policy) Colorize(s string, fg termformat.Color) string {
	c := termformat.Downsample(fg, p.ColorDepth())
	if c == nil {
		return s
	}
	return termformat.Style{Foreground: c}.Apply(s)
}

var defaultPolicy atomic.Pointer[Policy]

// Default returns the process-wide policy. Until SetDefault is called it is detected from the process environment and stdout on first use.
func Default() Policy {
	if p := defaultPolicy.Load(); p != nil {
		return *p
	}
	detected := FromEnv(OSEnviron{}, stdout())
	defaultPolicy.CompareAndSwap(nil, &detected)
	return *defaultPolicy.Load()
}

// SetDefault replaces the process-wide policy.
func SetDefault(p Policy) {
	defaultPolicy.Store(&p)
}

// ResetDefault discards the process-wide policy so the next Default call detects it again.
func ResetDefault() {
	defaultPolicy.Store(nil)
}
