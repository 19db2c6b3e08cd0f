package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/q/uni"
	"github.com/spf13/cobra"
)

// inputLines returns args, or the lines of standard input if there are none.
func inputLines(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	s, err := readInput(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil, nil
	}
	return strings.Split(s, "\n"), nil
}

func newWidthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "width [text...]",
		Short: "Print the display width of text in both width modes",
		Long:  "Print the number of terminal columns each argument (or line of standard input) occupies. ANSI escapes don't count. Modern is the width in terminals that render emoji sequences as one glyph; standard is the sum of codepoint widths.",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := inputLines(cmd, args)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TEXT\tMODERN\tSTANDARD")
			for _, line := range lines {
				fmt.Fprintf(tw, "%s\t%d\t%d\n",
					termformat.Strip(line),
					termformat.VisualWidth(line, uni.ModeModern),
					termformat.VisualWidth(line, uni.ModeStandard),
				)
			}
			return tw.Flush()
		},
	}
}

func newGraphemesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "graphemes <text>",
		Short: "Break text into grapheme clusters",
		Long:  "List the grapheme clusters of text with their byte span, codepoints and width in both modes. Arguments are joined with spaces.",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tBYTES\tGRAPHEME\tCODEPOINTS\tMODERN\tSTANDARD\tNOTES")
			for i, g := range termformat.Segment(text) {
				fmt.Fprintf(tw, "%d\t%d-%d\t%s\t%s\t%d\t%d\t%s\n",
					i, g.Start, g.End,
					displayGrapheme(g.Text),
					codepoints(g.Runes()),
					g.Width(uni.ModeModern),
					g.Width(uni.ModeStandard),
					graphemeNotes(g),
				)
			}
			return tw.Flush()
		},
	}
}

// displayGrapheme makes control characters and lone combining marks visible.
func displayGrapheme(s string) string {
	if w := uni.NewGrapheme(s).Width(uni.ModeModern); w == 0 {
		return fmt.Sprintf("%q", s)
	}
	return termformat.Sanitize(s, 0)
}

func codepoints(rs []rune) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = fmt.Sprintf("U+%04X", r)
	}
	return strings.Join(parts, " ")
}

func graphemeNotes(g termformat.Grapheme) string {
	var notes []string
	if g.HasZWJ {
		notes = append(notes, "zwj")
	}
	if g.HasVS16 {
		notes = append(notes, "vs16")
	}
	if g.IsRegionalPair {
		notes = append(notes, "flag")
	}
	if g.HasSkinTone {
		notes = append(notes, "skin-tone")
	}
	if len(g.Escapes) > 0 {
		notes = append(notes, fmt.Sprintf("%d escape(s)", len(g.Escapes)))
	}
	if len(notes) == 0 {
		return "-"
	}
	return strings.Join(notes, ",")
}

type cutOptions struct {
	left  int
	right int
}

func newCutCmd(a *app) *cobra.Command {
	opts := &cutOptions{}

	cmd := &cobra.Command{
		Use:   "cut [text...]",
		Short: "Remove columns from the start and end of each line, keeping styles",
		Long:  "Remove --left columns from the start and --right columns from the end of each argument (or line of standard input). A wide grapheme that is only partly removed is removed entirely. ANSI styling of the kept text is preserved.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.left < 0 || opts.right < 0 {
				return usageError{err: fmt.Errorf("--left and --right must not be negative")}
			}
			lines, err := inputLines(cmd, args)
			if err != nil {
				return err
			}
			mode := a.policy.WidthMode()
			for _, line := range lines {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), termformat.Cut(line, opts.left, opts.right, mode)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.left, "left", 0, "Columns to remove from the start")
	cmd.Flags().IntVar(&opts.right, "right", 0, "Columns to remove from the end")
	return cmd
}
