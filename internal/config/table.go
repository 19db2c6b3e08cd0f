package config

import (
	"fmt"
	"os"

	"github.com/codalotl/framekit/internal/q/frame"
	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/validation"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// TableFile is a table described in a yaml, json or toml file:
//
//	title: Regions
//	border: heavy
//	effect: border_ocean
//	columns:
//	  - {header: REGION}
//	  - {header: LATENCY, align: right, color: gray}
//	rows:
//	  - [eu-west-1, 12ms]
type TableFile struct {
	Title     string        `koanf:"title"`
	Border    string        `koanf:"border" validate:"omitempty,border"`
	Effect    string        `koanf:"effect"`
	Padding   *int          `koanf:"padding" validate:"omitempty,gte=0,lte=32"`
	Width     int           `koanf:"width" validate:"gte=0"`
	ShowLines bool          `koanf:"show_lines"`
	Columns   []TableColumn `koanf:"columns" validate:"required,min=1,dive"`
	Rows      [][]string    `koanf:"rows"`
}

// TableColumn is one column of a TableFile.
type TableColumn struct {
	Header string `koanf:"header"`
	Align  string `koanf:"align" validate:"omitempty,oneof=left center right"`
	Color  string `koanf:"color" validate:"omitempty,color"`
	Bold   bool   `koanf:"bold"`
	Width  int    `koanf:"width" validate:"gte=0"`
}

// LoadTable reads and validates a table file. Scalar cells (numbers, booleans) are converted to strings.
func LoadTable(path string) (TableFile, error) {
	if _, err := os.Stat(path); err != nil {
		return TableFile{}, fmt.Errorf("config: %w", err)
	}
	parser, err := parserFor(path)
	if err != nil {
		return TableFile{}, err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return TableFile{}, fmt.Errorf("config: load %s: %w", path, err)
	}

	var tf TableFile
	err = k.UnmarshalWithConf("", &tf, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &tf,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return TableFile{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}

	if err := validation.Struct(tf); err != nil {
		return TableFile{}, fmt.Errorf("config: %s: %w", path, err)
	}
	for i, row := range tf.Rows {
		if len(row) > len(tf.Columns) {
			return TableFile{}, fmt.Errorf("config: %s: row %d has %d cells, table has %d columns", path, i, len(row), len(tf.Columns))
		}
	}
	return tf, nil
}

// FrameColumns converts the column descriptions for frame.Table. Fields were checked by LoadTable.
func (tf TableFile) FrameColumns() []frame.Column {
	cols := make([]frame.Column, len(tf.Columns))
	for i, c := range tf.Columns {
		align, _ := frame.ParseAlign(c.Align)
		style := termformat.Style{Bold: c.Bold}
		if c.Color != "" {
			if color, err := termformat.ParseColor(c.Color); err == nil {
				style.Foreground = color
			} else if rgb, err := termformat.ParseRGB(c.Color); err == nil {
				style.Foreground = rgb
			}
		}
		cols[i] = frame.Column{Header: c.Header, Align: align, Style: style, Width: c.Width}
	}
	return cols
}
