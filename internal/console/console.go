// Package console renders frames, rules and columns for a writer under a render policy.
package console

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/codalotl/framekit/internal/animation"
	"github.com/codalotl/framekit/internal/effects"
	"github.com/codalotl/framekit/internal/logging"
	"github.com/codalotl/framekit/internal/q/frame"
	"github.com/codalotl/framekit/internal/q/gradient"
	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/renderpolicy"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const defaultWidth = 80

// Console writes rendered output to a writer.
type Console struct {
	w         io.Writer
	policy    renderpolicy.Policy
	hasPolicy bool
	width     int
	registry  *effects.Registry
	log       zerolog.Logger
}

// Option configures a Console.
type Option func(*Console)

// WithPolicy sets the render policy. The default is renderpolicy.Default().
func WithPolicy(p renderpolicy.Policy) Option {
	return func(c *Console) {
		c.policy = p
		c.hasPolicy = true
	}
}

// WithWidth sets the container width used for frame alignment and rules. The default is the terminal width of w, or 80.
func WithWidth(width int) Option {
	return func(c *Console) { c.width = width }
}

// WithRegistry sets the registry effect names are resolved in. The default is effects.Default().
func WithRegistry(r *effects.Registry) Option {
	return func(c *Console) { c.registry = r }
}

// New returns a Console writing to w.
func New(w io.Writer, opts ...Option) *Console {
	c := &Console{w: w, log: logging.Get("console")}
	for _, o := range opts {
		o(c)
	}
	if !c.hasPolicy {
		c.policy = renderpolicy.Default()
	}
	if c.width <= 0 {
		c.width = terminalWidth(w)
	}
	if c.registry == nil {
		c.registry = effects.Default()
	}
	return c
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

// Policy returns the console's render policy.
func (c *Console) Policy() renderpolicy.Policy {
	return c.policy
}

// Width returns the container width.
func (c *Console) Width() int {
	return c.width
}

// Registry returns the registry effect names are resolved in.
func (c *Console) Registry() *effects.Registry {
	return c.registry
}

// FrameOptions describe a frame drawn by a Console.
type FrameOptions struct {
	Title      string
	TitleAlign *frame.Align
	Width      int // 0 sizes to content
	Padding    int
	Align      frame.Align
	Overflow   frame.Overflow

	// Border is a border style name; without Unicode it falls back to ASCII.
	Border       string
	DividerAfter []int

	BorderColor termformat.Color // solid border color; ignored if the effect colors the border
	Effect      *effects.Spec    // gradient over the frame
	EffectName  string           // preset or palette name, used if Effect is nil

	FrameAlign frame.Align // position of the frame within the console width
	Margin     frame.Margin
}

// RenderFrame lays out content in a frame and colors it. Nested frames in content keep their colors: only this frame's own border counts as border.
func (c *Console) RenderFrame(content []string, o FrameOptions) (string, error) {
	f, effect, err := c.draw(content, o)
	if err != nil {
		return "", err
	}
	if effect != nil {
		if f.Lines, err = gradient.Apply(f.Lines, *effect); err != nil {
			return "", err
		}
	}
	return c.place(f, o.FrameAlign, o.Margin).String(), nil
}

// FrameSequence renders the frame once per animation step, shifting the effect's phase by seq.Step each time. Without an effect every step is the same frame.
func (c *Console) FrameSequence(content []string, o FrameOptions, seq gradient.FrameSeqOptions) (iter.Seq[string], error) {
	f, effect, err := c.draw(content, o)
	if err != nil {
		return nil, err
	}

	if effect == nil {
		s := c.place(f, o.FrameAlign, o.Margin).String()
		return func(yield func(string) bool) {
			for i := 0; seq.Count <= 0 || i < seq.Count; i++ {
				if !yield(s) {
					return
				}
			}
		}, nil
	}

	frames, err := gradient.Frames(f.Lines, *effect, seq)
	if err != nil {
		return nil, err
	}
	if !placed(o.FrameAlign, o.Margin) {
		return frames, nil
	}
	mode := c.policy.WidthMode()
	return func(yield func(string) bool) {
		for s := range frames {
			if !yield(c.place(frame.FromString(s, mode), o.FrameAlign, o.Margin).String()) {
				return
			}
		}
	}, nil
}

// Animate plays the frame with its effect cycling. See animation.Run for how anim is interpreted; Interactive is taken from the policy.
func (c *Console) Animate(ctx context.Context, content []string, o FrameOptions, seq gradient.FrameSeqOptions, anim animation.Options) error {
	frames, err := c.FrameSequence(content, o, seq)
	if err != nil {
		return err
	}
	anim.Interactive = c.policy.Interactive
	return animation.Run(ctx, c.w, frames, anim)
}

// draw lays out the frame and applies the solid border color. It returns the effect still to be applied, if any.
func (c *Console) draw(content []string, o FrameOptions) (frame.Frame, *gradient.Options, error) {
	f, err := frame.Layout(content, frame.Options{
		Width:        o.Width,
		Padding:      o.Padding,
		Align:        o.Align,
		Border:       c.policy.BorderFor(o.Border),
		Title:        o.Title,
		TitleAlign:   o.TitleAlign,
		Overflow:     o.Overflow,
		DividerAfter: o.DividerAfter,
		Ellipsis:     c.ellipsis(),
		WidthMode:    c.policy.WidthMode(),
	})
	if err != nil {
		return frame.Frame{}, nil, err
	}

	effect, err := c.decorate(&f, o.Effect, o.EffectName, o.BorderColor)
	if err != nil {
		return frame.Frame{}, nil, err
	}

	c.log.Debug().Int("width", f.Width).Int("height", f.Height()).Str("border", c.policy.BorderFor(o.Border)).Msg("rendered frame")
	return f, effect, nil
}

// decorate resolves the effect (spec, or else the named one) against f's roles and paints a solid border color unless the effect colors the border. It returns the effect
// still to be applied, if any.
func (c *Console) decorate(f *frame.Frame, spec *effects.Spec, name string, borderColor termformat.Color) (*gradient.Options, error) {
	if spec == nil && name != "" {
		s, err := c.registry.Resolve(name)
		if err != nil {
			return nil, err
		}
		spec = &s
	}

	var effect *gradient.Options
	if spec != nil {
		opts, err := spec.Build()
		if err != nil {
			return nil, err
		}
		opts.Classifier = gradient.RoleClassifier(*f)
		opts.Policy = c.policy
		effect = &opts
	}

	if borderColor != nil && c.policy.ColorEnabled() && (effect == nil || effect.Target == gradient.TargetContent) {
		color := termformat.Downsample(borderColor, c.policy.ColorDepth())
		for row, line := range f.Lines {
			f.Lines[row] = line.Restyle(func(col int, cell termformat.Cell) termformat.Style {
				if f.RoleAt(row, col) != frame.RoleBorder {
					return cell.Style
				}
				return cell.Style.WithForeground(color)
			})
		}
	}
	return effect, nil
}

func placed(align frame.Align, margin frame.Margin) bool {
	return align != frame.AlignLeft || margin != (frame.Margin{})
}

// place positions f within the console width.
func (c *Console) place(f frame.Frame, align frame.Align, margin frame.Margin) frame.Frame {
	if !placed(align, margin) {
		return f
	}
	container := 0
	if align != frame.AlignLeft {
		container = c.width
	}
	return frame.Place(f, frame.PlaceOptions{ContainerWidth: container, Align: align, Margin: margin})
}

func (c *Console) ellipsis() string {
	if c.policy.Unicode {
		return "…"
	}
	return "..."
}

// Frame renders content and writes it followed by a newline.
func (c *Console) Frame(content []string, o FrameOptions) error {
	s, err := c.RenderFrame(content, o)
	if err != nil {
		return err
	}
	return c.Println(s)
}

// TableOptions describe a table drawn by a Console.
type TableOptions struct {
	Columns    []frame.Column
	Title      string
	TitleAlign *frame.Align
	Width      int // 0 sizes columns to content
	Padding    int
	ShowLines  bool

	// Border is a border style name; without Unicode it falls back like frame borders do.
	Border string

	BorderColor termformat.Color
	Effect      *effects.Spec
	EffectName  string

	FrameAlign frame.Align
	Margin     frame.Margin
}

// RenderTable draws rows as a table. Header cells are bold when color is enabled. An effect targeting the border colors only the grid lines.
func (c *Console) RenderTable(rows [][]string, o TableOptions) (string, error) {
	var header termformat.Style
	if c.policy.ColorEnabled() {
		header.Bold = true
	}
	f, err := frame.Table(rows, frame.TableOptions{
		Columns:     o.Columns,
		Width:       o.Width,
		Padding:     o.Padding,
		Border:      c.policy.BorderFor(o.Border),
		Title:       o.Title,
		TitleAlign:  o.TitleAlign,
		HeaderStyle: header,
		ShowLines:   o.ShowLines,
		Ellipsis:    c.ellipsis(),
		WidthMode:   c.policy.WidthMode(),
	})
	if err != nil {
		return "", err
	}

	effect, err := c.decorate(&f, o.Effect, o.EffectName, o.BorderColor)
	if err != nil {
		return "", err
	}
	if effect != nil {
		if f.Lines, err = gradient.Apply(f.Lines, *effect); err != nil {
			return "", err
		}
	}

	c.log.Debug().Int("width", f.Width).Int("rows", len(rows)).Int("columns", len(o.Columns)).Msg("rendered table")
	return c.place(f, o.FrameAlign, o.Margin).String(), nil
}

// Table renders rows and writes the table followed by a newline.
func (c *Console) Table(rows [][]string, o TableOptions) error {
	s, err := c.RenderTable(rows, o)
	if err != nil {
		return err
	}
	return c.Println(s)
}

// Rule writes a horizontal line across the console width with title centered in it.
func (c *Console) Rule(title string) error {
	style, err := frame.LookupBorder(c.policy.BorderFor(frame.Solid.Name))
	if err != nil {
		return err
	}
	h := string(style.Horizontal)
	t := termformat.FromANSI(title, c.policy.WidthMode())
	if t.Width() == 0 {
		return c.Println(strings.Repeat(h, c.width))
	}
	if t.Width()+4 > c.width {
		t = t.Truncate(max(c.width-4, 1), termformat.Plain(c.ellipsis(), c.policy.WidthMode()))
	}
	left := (c.width - t.Width() - 2) / 2
	right := max(c.width-t.Width()-2-left, 0)
	return c.Println(strings.Repeat(h, max(left, 0)) + " " + t.String() + " " + strings.Repeat(h, right))
}

// RenderColumns places rendered blocks side by side with gap columns between them.
func (c *Console) RenderColumns(blocks []string, gap int) string {
	frames := make([]frame.Frame, 0, len(blocks))
	for _, b := range blocks {
		frames = append(frames, frame.FromString(b, c.policy.WidthMode()))
	}
	return frame.Columns(frames, gap).String()
}

// Columns writes blocks side by side.
func (c *Console) Columns(blocks []string, gap int) error {
	return c.Println(c.RenderColumns(blocks, gap))
}

// Newline writes n newlines.
func (c *Console) Newline(n int) error {
	_, err := io.WriteString(c.w, strings.Repeat("\n", max(n, 0)))
	return err
}

// Println writes s and a newline.
func (c *Console) Println(s string) error {
	_, err := fmt.Fprintln(c.w, s)
	return err
}

// Icon picks the emoji or its ASCII stand-in according to the policy.
func (c *Console) Icon(emoji, ascii string) string {
	return c.policy.Icon(emoji, ascii)
}
