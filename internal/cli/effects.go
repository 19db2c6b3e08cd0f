package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/codalotl/framekit/internal/animation"
	"github.com/codalotl/framekit/internal/effects"
	"github.com/codalotl/framekit/internal/logging"
	"github.com/codalotl/framekit/internal/q/gradient"
	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/spf13/cobra"
)

type gradientOptions struct {
	effect    string
	direction string
	target    string
	phase     float64
	recolor   bool
}

func newGradientCmd(a *app) *cobra.Command {
	opts := &gradientOptions{}

	cmd := &cobra.Command{
		Use:   "gradient [text...]",
		Short: "Color text with a gradient effect",
		Long:  "Color each argument (or line of standard input) with a preset or palette. Lines are treated as one block, so a vertical gradient runs from the first line to the last. Box-drawing characters count as border.",
		Example: `  framekit gradient --effect sunset --direction horizontal "hello, world"
  figlet framekit | framekit gradient --effect rainbow_neon --target both`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := inputLines(cmd, args)
			if err != nil {
				return err
			}
			spec, err := opts.spec(a)
			if err != nil {
				return err
			}
			gopts, err := spec.Build()
			if err != nil {
				return err
			}
			gopts.Policy = a.policy
			gopts.Recolor = opts.recolor

			defer logging.Operation(a.log, "gradient")()
			colored, err := gradient.ApplyStrings(lines, a.policy.WidthMode(), gopts)
			if err != nil {
				return err
			}
			for _, line := range colored {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.effect, "effect", "rainbow", "Preset or palette name")
	f.StringVar(&opts.direction, "direction", "", "Override the effect's direction: vertical, horizontal or diagonal")
	f.StringVar(&opts.target, "target", "", "Override the effect's target: content, border or both")
	f.Float64Var(&opts.phase, "phase", 0, "Shift the gradient by this fraction, in [0, 1)")
	f.BoolVar(&opts.recolor, "recolor", false, "Also recolor text that already has a foreground color")
	return cmd
}

// spec resolves the named effect and applies the override flags.
func (opts *gradientOptions) spec(a *app) (effects.Spec, error) {
	spec, err := a.registry.Resolve(opts.effect)
	if err != nil {
		return effects.Spec{}, usageError{err: err}
	}
	if opts.direction != "" {
		spec.Direction = opts.direction
	}
	if opts.target != "" {
		t, ok := gradient.ParseTarget(opts.target)
		if !ok {
			return effects.Spec{}, usageError{err: fmt.Errorf("unknown target %q", opts.target)}
		}
		spec = spec.WithTarget(t)
	}
	if opts.phase != 0 {
		spec = spec.WithPhase(opts.phase)
	}
	if spec, err = effects.New(spec); err != nil {
		return effects.Spec{}, usageError{err: err}
	}
	return spec, nil
}

type animateOptions struct {
	frame     frameOptions
	fps       int
	duration  time.Duration
	step      float64
	maxFrames int
}

func newAnimateCmd(a *app) *cobra.Command {
	opts := &animateOptions{}

	cmd := &cobra.Command{
		Use:   "animate [text...]",
		Short: "Draw a frame whose gradient cycles in place",
		Long:  "Draw text in a frame and cycle its gradient. Without --effect a diagonal rainbow is used. When output is not an interactive terminal only the final frame is written.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnimate(cmd, a, opts, args)
		},
	}

	opts.frame.addFlags(cmd)
	f := cmd.Flags()
	f.IntVar(&opts.fps, "fps", 0, "Frames per second (default from config)")
	f.DurationVar(&opts.duration, "duration", 0, "Stop after this long (default from config; 0 runs until interrupted)")
	f.Float64Var(&opts.step, "step", 0, "Phase advance per frame, in (0, 1) (default from config)")
	f.IntVar(&opts.maxFrames, "frames", 0, "Stop after this many frames (0 is no limit)")
	return cmd
}

func runAnimate(cmd *cobra.Command, a *app, opts *animateOptions, args []string) error {
	content, err := inputLines(cmd, args)
	if err != nil {
		return err
	}
	fo, err := opts.frame.resolve(cmd, a)
	if err != nil {
		return err
	}
	if fo.EffectName == "" {
		spec, err := effects.Rainbow(gradient.RainbowStandard, 0, gradient.DirectionDiagonal)
		if err != nil {
			return err
		}
		spec = spec.WithTarget(gradient.TargetBoth)
		fo.Effect = &spec
	}

	anim := animation.Options{FPS: a.cfg.Animation.FPS, Duration: a.cfg.Animation.Duration, MaxFrames: opts.maxFrames}
	if cmd.Flags().Changed("fps") {
		anim.FPS = opts.fps
	}
	if cmd.Flags().Changed("duration") {
		anim.Duration = opts.duration
	}
	step := a.cfg.Animation.Step
	if cmd.Flags().Changed("step") {
		step = opts.step
	}
	if anim.FPS <= 0 || anim.Duration < 0 || anim.MaxFrames < 0 {
		return usageError{err: errors.New("--fps must be positive; --duration and --frames must not be negative")}
	}
	if step <= 0 || step >= 1 {
		return usageError{err: fmt.Errorf("--step must be in (0, 1), got %g", step)}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	a.log.Info().Int("fps", anim.FPS).Dur("duration", anim.Duration).Float64("step", step).Msg("animating")
	err = a.console.Animate(ctx, content, fo, gradient.FrameSeqOptions{Step: step}, anim)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type presetsOptions struct {
	palettes bool
}

const swatch = "████████████████"

func newPresetsCmd(a *app) *cobra.Command {
	opts := &presetsOptions{}

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List effect presets and palettes",
		Long:  "List the built-in and configured effect presets with a sample of each. With --palettes, list the color palettes instead; a palette name can be used wherever an effect is expected.",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if opts.palettes {
				fmt.Fprintln(tw, "PALETTE\tCOLORS\tSAMPLE")
				for _, name := range a.registry.PaletteNames() {
					colors, err := a.registry.Palette(name)
					if err != nil {
						return err
					}
					spec, err := a.registry.FromPalette(name, gradient.DirectionHorizontal, gradient.TargetContent)
					if err != nil {
						return err
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\n", name, strings.Join(colors, " "), a.sample(spec))
				}
				return tw.Flush()
			}

			// Samples carry escapes that tabwriter would count as width, so they go last.
			fmt.Fprintln(tw, "PRESET\tKIND\tDIRECTION\tTARGET\tSAMPLE")
			for _, name := range a.registry.Names() {
				spec, err := a.registry.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", name, spec.Kind, spec.Direction, spec.Target, a.sample(spec))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&opts.palettes, "palettes", false, "List palettes instead of presets")
	return cmd
}

// sample renders a horizontal swatch of spec's colors, or "" without color.
func (a *app) sample(spec effects.Spec) string {
	if !a.policy.ColorEnabled() {
		return ""
	}
	block := swatch
	if !a.policy.Unicode {
		block = strings.Repeat("#", termformat.VisualWidth(swatch, a.policy.WidthMode()))
	}
	spec.Direction = string(gradient.DirectionHorizontal)
	opts, err := spec.WithTarget(gradient.TargetBoth).Build()
	if err != nil {
		return block
	}
	opts.Policy = a.policy
	lines, err := gradient.ApplyStrings([]string{block}, a.policy.WidthMode(), opts)
	if err != nil {
		return block
	}
	return lines[0]
}
