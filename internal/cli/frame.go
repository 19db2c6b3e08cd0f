package cli

import (
	"fmt"
	"strings"

	"github.com/codalotl/framekit/internal/console"
	"github.com/codalotl/framekit/internal/logging"
	"github.com/codalotl/framekit/internal/q/frame"
	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/spf13/cobra"
)

type frameOptions struct {
	width        int
	padding      int
	align        string
	border       string
	borderColor  string
	title        string
	titleAlign   string
	effect       string
	wrap         bool
	stdin        bool
	frameAlign   string
	margin       []int
	dividerAfter []int
}

func newFrameCmd(a *app) *cobra.Command {
	opts := &frameOptions{}

	cmd := &cobra.Command{
		Use:   "frame [text...]",
		Short: "Draw text inside a border",
		Long:  "Draw text inside a border. Each argument is a line; with --stdin (or no arguments) lines are read from standard input. Unset flags take their value from the frame section of the config.",
		Example: `  framekit frame --title Status "build ok" "tests ok"
  git log --oneline -5 | framekit frame --effect ocean --width 60`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrame(cmd, a, opts, args)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVar(&opts.stdin, "stdin", false, "Read lines from standard input")

	return cmd
}

// addFlags registers the layout flags shared by frame and animate.
func (opts *frameOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&opts.width, "width", 0, "Total width including borders (0 fits the content)")
	f.IntVar(&opts.padding, "padding", 0, "Columns between border and content")
	f.StringVar(&opts.align, "align", "", "Content alignment: left, center or right")
	f.StringVar(&opts.border, "border", "", "Border style ("+strings.Join(frame.BorderNames(), ", ")+")")
	f.StringVar(&opts.borderColor, "border-color", "", "Border color (name, #rrggbb or color(n))")
	f.StringVar(&opts.title, "title", "", "Title embedded in the top border")
	f.StringVar(&opts.titleAlign, "title-align", "", "Title alignment: left, center or right")
	f.StringVar(&opts.effect, "effect", "", "Gradient preset or palette name")
	f.BoolVar(&opts.wrap, "wrap", false, "Wrap long lines instead of truncating them")
	f.StringVar(&opts.frameAlign, "frame-align", "left", "Frame position within the terminal: left, center or right")
	f.IntSliceVar(&opts.margin, "margin", nil, "Margin around the frame: 1, 2 or 4 values (CSS order)")
	f.IntSliceVar(&opts.dividerAfter, "divider-after", nil, "Draw a divider after these content lines (0-based)")
}

func runFrame(cmd *cobra.Command, a *app, opts *frameOptions, args []string) error {
	content := args
	if opts.stdin || len(args) == 0 {
		s, err := readInput(cmd.InOrStdin())
		if err != nil {
			return err
		}
		content = []string{strings.TrimSuffix(s, "\n")}
	}

	fo, err := opts.resolve(cmd, a)
	if err != nil {
		return err
	}
	defer logging.Operation(a.log, "frame")()
	return a.console.Frame(content, fo)
}

// resolve merges flags with the config's frame defaults. Flags that were set on the command line win.
func (opts *frameOptions) resolve(cmd *cobra.Command, a *app) (console.FrameOptions, error) {
	def := a.cfg.Frame
	pick := func(flag, fromFlag, fromConfig string) string {
		if cmd.Flags().Changed(flag) {
			return fromFlag
		}
		return fromConfig
	}

	fo := console.FrameOptions{
		Title:        opts.title,
		Width:        opts.width,
		Padding:      def.Padding,
		Border:       pick("border", opts.border, def.Border),
		DividerAfter: opts.dividerAfter,
		EffectName:   pick("effect", opts.effect, def.Effect),
	}
	if cmd.Flags().Changed("padding") {
		fo.Padding = opts.padding
	}
	if opts.wrap {
		fo.Overflow = frame.OverflowWrap
	}

	var err error
	if fo.Align, err = frame.ParseAlign(pick("align", opts.align, def.Align)); err != nil {
		return fo, usageError{err: err}
	}
	titleAlign, err := frame.ParseAlign(pick("title-align", opts.titleAlign, def.TitleAlign))
	if err != nil {
		return fo, usageError{err: err}
	}
	fo.TitleAlign = &titleAlign
	if fo.FrameAlign, err = frame.ParseAlign(opts.frameAlign); err != nil {
		return fo, usageError{err: err}
	}
	if fo.Margin, err = frame.ParseMargin(opts.margin); err != nil {
		return fo, usageError{err: err}
	}
	if opts.borderColor != "" {
		if fo.BorderColor, err = termformat.ParseColor(opts.borderColor); err != nil {
			return fo, usageError{err: fmt.Errorf("--border-color: %w", err)}
		}
	}
	return fo, nil
}
