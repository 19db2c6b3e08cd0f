package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codalotl/framekit/internal/q/frame"
	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTable(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "t.yaml",
			content: `title: Regions
border: heavy
show_lines: true
padding: 2
columns:
  - {header: REGION}
  - {header: LATENCY, align: right, color: gray, bold: true}
rows:
  - [eu-west-1, 12]
  - [us-east-1]
`,
		},
		{
			name: "json",
			file: "t.json",
			content: `{"title": "Regions", "border": "heavy", "show_lines": true, "padding": 2,
 "columns": [{"header": "REGION"}, {"header": "LATENCY", "align": "right", "color": "gray", "bold": true}],
 "rows": [["eu-west-1", 12], ["us-east-1"]]}`,
		},
		{
			name: "toml",
			file: "t.toml",
			content: `title = "Regions"
border = "heavy"
show_lines = true
padding = 2
rows = [["eu-west-1", "12"], ["us-east-1"]]

[[columns]]
header = "REGION"

[[columns]]
header = "LATENCY"
align = "right"
color = "gray"
bold = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf, err := LoadTable(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, "Regions", tf.Title)
			assert.Equal(t, "heavy", tf.Border)
			assert.True(t, tf.ShowLines)
			require.NotNil(t, tf.Padding)
			assert.Equal(t, 2, *tf.Padding)
			assert.Equal(t, [][]string{{"eu-west-1", "12"}, {"us-east-1"}}, tf.Rows)

			cols := tf.FrameColumns()
			require.Len(t, cols, 2)
			assert.Equal(t, frame.Column{Header: "REGION"}, cols[0])
			assert.Equal(t, frame.AlignRight, cols[1].Align)
			assert.True(t, cols[1].Style.Bold)
			assert.Equal(t, termformat.Color(termformat.RGBColor{R: 0x80, G: 0x80, B: 0x80}), cols[1].Style.Foreground)
		})
	}
}

func TestLoadTableErrors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{name: "noColumns", content: "rows: [[a]]\n", wantField: "tablefile.columns"},
		{name: "badAlign", content: "columns:\n  - {align: middle}\n", wantField: "tablefile.columns[0].align"},
		{name: "badColor", content: "columns:\n  - {color: blurple}\n", wantField: "tablefile.columns[0].color"},
		{name: "badBorder", content: "border: wavy\ncolumns:\n  - {header: a}\n", wantField: "tablefile.border"},
		{name: "negativePadding", content: "padding: -1\ncolumns:\n  - {header: a}\n", wantField: "tablefile.padding"},
		{name: "rowTooLong", content: "columns:\n  - {header: a}\nrows:\n  - [x, y]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTable(writeFile(t, "t.yaml", tt.content))
			require.Error(t, err)
			if tt.wantField != "" {
				var ve *validation.Error
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantField, ve.Field)
			}
		})
	}

	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadTable(writeFile(t, "t.csv", "a,b"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
