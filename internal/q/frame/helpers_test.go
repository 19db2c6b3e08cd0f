package frame

import (
	"strings"
	"testing"

	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/q/uni"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// requireRectangular fails unless every line of f prints as exactly f.Width columns on one terminal row.
func requireRectangular(t *testing.T, f Frame, mode uni.WidthMode) {
	t.Helper()

	for i, line := range f.Strings() {
		if strings.ContainsAny(line, "\n\r\t") {
			t.Fatalf("line %d contains a line break or tab: %q", i, line)
		}
		if w := termformat.VisualWidth(line, mode); w != f.Width {
			t.Fatalf("line %d is %d columns, want %d: %q", i, w, f.Width, line)
		}
	}
}

// requireLines fails with a line diff if got != want.
func requireLines(t *testing.T, want []string, got []string) {
	t.Helper()

	w := strings.Join(want, "\n") + "\n"
	g := strings.Join(got, "\n") + "\n"
	if w == g {
		return
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(w, g)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line != "" {
				out.WriteString(prefix + line)
			}
		}
	}
	t.Fatalf("lines differ (- want, + got):\n%s", out.String())
}
