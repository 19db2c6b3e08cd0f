package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/codalotl/framekit/internal/config"
	"github.com/codalotl/framekit/internal/console"
	"github.com/codalotl/framekit/internal/logging"
	"github.com/codalotl/framekit/internal/q/frame"
	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/spf13/cobra"
)

type tableOptions struct {
	file        string
	sep         string
	noHeader    bool
	align       []string
	width       int
	padding     int
	border      string
	borderColor string
	title       string
	effect      string
	showLines   bool
}

func newTableCmd(a *app) *cobra.Command {
	opts := &tableOptions{}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Draw rows as a bordered table",
		Long:  "Draw rows as a bordered table. Rows are read from --file (yaml, json or toml) or from standard input, one row per line with cells split by --sep. The first input row is the header unless --no-header is set. Flags override the file.",
		Example: `  printf 'name\tqty\napple\t3\n' | framekit table --align left,right
  framekit table --file stock.yaml --effect border_ocean`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd, a, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.file, "file", "", "Table file (yaml, json or toml) with columns and rows")
	f.StringVar(&opts.sep, "sep", "\t", "Cell separator for rows read from standard input")
	f.BoolVar(&opts.noHeader, "no-header", false, "Treat the first input row as data")
	f.StringSliceVar(&opts.align, "align", nil, "Per-column alignment: left, center or right")
	f.IntVar(&opts.width, "width", 0, "Total width including borders (0 fits the content)")
	f.IntVar(&opts.padding, "padding", 0, "Columns on each side of every cell")
	f.StringVar(&opts.border, "border", "", "Border style ("+strings.Join(frame.BorderNames(), ", ")+")")
	f.StringVar(&opts.borderColor, "border-color", "", "Border color (name, #rrggbb or color(n))")
	f.StringVar(&opts.title, "title", "", "Title drawn above the table")
	f.StringVar(&opts.effect, "effect", "", "Gradient preset or palette name")
	f.BoolVar(&opts.showLines, "show-lines", false, "Draw a divider between rows")

	return cmd
}

func runTable(cmd *cobra.Command, a *app, opts *tableOptions) error {
	def := a.cfg.Frame
	to := console.TableOptions{
		Border:     def.Border,
		Padding:    def.Padding,
		EffectName: def.Effect,
	}

	var rows [][]string
	if opts.file != "" {
		tf, err := config.LoadTable(opts.file)
		if err != nil {
			return err
		}
		to.Columns = tf.FrameColumns()
		to.Title = tf.Title
		to.Width = tf.Width
		to.ShowLines = tf.ShowLines
		if tf.Border != "" {
			to.Border = tf.Border
		}
		if tf.Padding != nil {
			to.Padding = *tf.Padding
		}
		if tf.Effect != "" {
			to.EffectName = tf.Effect
		}
		rows = tf.Rows
	} else {
		if opts.sep == "" {
			return usageError{err: fmt.Errorf("--sep must not be empty")}
		}
		s, err := readRaw(cmd.InOrStdin())
		if err != nil {
			return err
		}
		rows = splitRows(s, opts.sep)
		to.Columns = columnsFor(rows, opts.noHeader)
		if !opts.noHeader && len(rows) > 0 {
			rows = rows[1:]
		}
	}
	if len(to.Columns) == 0 {
		return usageError{err: fmt.Errorf("no columns: pass --file or rows on standard input")}
	}

	fl := cmd.Flags()
	if fl.Changed("title") {
		to.Title = opts.title
	}
	if fl.Changed("width") {
		to.Width = opts.width
	}
	if fl.Changed("padding") {
		to.Padding = opts.padding
	}
	if fl.Changed("border") {
		to.Border = opts.border
	}
	if fl.Changed("effect") {
		to.EffectName = opts.effect
	}
	if fl.Changed("show-lines") {
		to.ShowLines = opts.showLines
	}
	if len(opts.align) > len(to.Columns) {
		return usageError{err: fmt.Errorf("--align has %d values, table has %d columns", len(opts.align), len(to.Columns))}
	}
	for i, s := range opts.align {
		align, err := frame.ParseAlign(s)
		if err != nil {
			return usageError{err: fmt.Errorf("--align: %w", err)}
		}
		to.Columns[i].Align = align
	}
	if opts.borderColor != "" {
		var err error
		if to.BorderColor, err = termformat.ParseColor(opts.borderColor); err != nil {
			return usageError{err: fmt.Errorf("--border-color: %w", err)}
		}
	}

	a.log.Debug().Str("file", opts.file).Int("rows", len(rows)).Int("columns", len(to.Columns)).Msg("table input")
	defer logging.Operation(a.log, "table")()
	return a.console.Table(rows, to)
}

// readRaw reads r entirely without sanitizing; table cells are sanitized when drawn, after splitting on the separator.
func readRaw(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}

// splitRows splits s into lines (dropping a final empty line and any trailing "\r") and each line into cells.
func splitRows(s, sep string) [][]string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(strings.TrimSuffix(line, "\r"), sep)
	}
	return rows
}

// columnsFor sizes the column list to the longest row. Unless noHeader, the first row supplies the headers.
func columnsFor(rows [][]string, noHeader bool) []frame.Column {
	n := 0
	for _, row := range rows {
		n = max(n, len(row))
	}
	cols := make([]frame.Column, n)
	if !noHeader && len(rows) > 0 {
		for i, h := range rows[0] {
			cols[i].Header = h
		}
	}
	return cols
}
