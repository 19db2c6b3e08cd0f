package uni

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rocket    = "\U0001F680"
	developer = "\U0001F468\u200d\U0001F4BB" // man + ZWJ + laptop
	family    = "\U0001F468\u200d\U0001F469\u200d\U0001F467\u200d\U0001F466"
	flagUS    = "\U0001F1FA\U0001F1F8"
	wave      = "\U0001F44B\U0001F3FD"
	heart     = "\u2764\ufe0f"
)

func TestTextWidthDefault(t *testing.T) {
	val := "áb世"

	assert.Equal(t, 4, TextWidth(val, nil))
	assert.Equal(t, 4, TextWidth([]byte(val), nil))
}

func TestTextWidthRequiredExamples(t *testing.T) {
	assert.Equal(t, 10, TextWidth("XXXXXXXXXX", nil))
	assert.Equal(t, 10, TextWidth(rocket+" Rocket!", nil))
	assert.Equal(t, 12, TextWidth(developer+" Developer", nil))
	assert.Equal(t, 4, TextWidth(developer, &Options{Mode: ModeStandard}))
}

func TestGraphemeWidthModes(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		modern   int
		standard int
	}{
		{name: "ascii", text: "a", modern: 1, standard: 1},
		{name: "cjk", text: "世", modern: 2, standard: 2},
		{name: "combining", text: "é", modern: 1, standard: 1},
		{name: "rocket", text: rocket, modern: 2, standard: 2},
		{name: "zwjPair", text: developer, modern: 2, standard: 4},
		{name: "zwjFamily", text: family, modern: 2, standard: 8},
		{name: "flag", text: flagUS, modern: 2, standard: 2},
		{name: "skinTone", text: wave, modern: 2, standard: 4},
		{name: "vs16", text: heart, modern: 2, standard: 1},
		{name: "control", text: "\x07", modern: 0, standard: 0},
		{name: "boxDrawing", text: "─", modern: 1, standard: 1},
		{name: "blockElement", text: "█", modern: 1, standard: 1},
		{name: "cjkPunctuation", text: "。", modern: 2, standard: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.modern, GraphemeWidth(tt.text, ModeModern))
			assert.Equal(t, tt.standard, GraphemeWidth(tt.text, ModeStandard))
		})
	}
}

func TestRuneWidth(t *testing.T) {
	assert.Equal(t, 1, RuneWidth('a'))
	assert.Equal(t, 2, RuneWidth('世'))
	assert.Equal(t, 1, RuneWidth('☆')) // white star is ambiguous; resolved narrow
	assert.Equal(t, 0, RuneWidth('\u200d'))
	assert.Equal(t, 0, RuneWidth('\ufe0f'))
	assert.Equal(t, 0, RuneWidth('\x1b'))
	assert.Equal(t, 0, RuneWidth('\u0085'))
	assert.Equal(t, 1, RuneWidth('╰'))
}

func TestSegment(t *testing.T) {
	gs := Segment(developer + " Developer")
	require.Len(t, gs, 11)
	assert.Equal(t, developer, gs[0].Text)
	assert.True(t, gs[0].HasZWJ)
	assert.Equal(t, 0, gs[0].Start)
	assert.Equal(t, len(developer), gs[0].End)
	assert.Equal(t, " ", gs[1].Text)

	var rebuilt string
	for _, g := range gs {
		rebuilt += g.Text
	}
	assert.Equal(t, developer+" Developer", rebuilt)

	assert.Nil(t, Segment(""))
}

func TestSegmentMergesClusters(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, g Grapheme)
	}{
		{name: "vs16", text: heart, check: func(t *testing.T, g Grapheme) { assert.True(t, g.HasVS16) }},
		{name: "zwjChain", text: family, check: func(t *testing.T, g Grapheme) { assert.True(t, g.HasZWJ) }},
		{name: "skinTone", text: wave, check: func(t *testing.T, g Grapheme) { assert.True(t, g.HasSkinTone) }},
		{name: "regionalPair", text: flagUS, check: func(t *testing.T, g Grapheme) { assert.True(t, g.IsRegionalPair) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := Segment(tt.text)
			require.Len(t, gs, 1)
			assert.Equal(t, tt.text, gs[0].Text)
			tt.check(t, gs[0])
		})
	}
}

func TestTrailingZWJIsNotASequence(t *testing.T) {
	g := NewGrapheme("a\u200d")
	assert.False(t, g.HasZWJ)
	assert.Equal(t, 1, g.Width(ModeModern))
}

func TestGraphemeIteratorString(t *testing.T) {
	val := "áb世"

	iter := NewGraphemeIterator(val, nil)

	var values []string
	var starts []int
	var ends []int
	var widths []int
	for iter.Next() {
		values = append(values, iter.Value())
		starts = append(starts, iter.Start())
		ends = append(ends, iter.End())
		widths = append(widths, iter.TextWidth())
	}

	assert.Equal(t, []string{"á", "b", "世"}, values)
	assert.Equal(t, []int{0, 3, 4}, starts)
	assert.Equal(t, []int{3, 4, 7}, ends)
	assert.Equal(t, []int{1, 1, 2}, widths)
}

func TestGraphemeIteratorBytes(t *testing.T) {
	val := "áb世"

	iter := NewGraphemeIterator([]byte(val), nil)

	var values []string
	for iter.Next() {
		values = append(values, string(iter.Value()))
	}

	assert.Equal(t, []string{"á", "b", "世"}, values)
}

func TestIteratorTextWidthMode(t *testing.T) {
	iter := NewGraphemeIterator(developer, &Options{Mode: ModeStandard})
	assert.True(t, iter.Next())
	assert.Equal(t, 4, iter.TextWidth())
	assert.True(t, iter.Grapheme().HasZWJ)

	iter = NewGraphemeIterator(developer, nil)
	assert.True(t, iter.Next())
	assert.Equal(t, 2, iter.TextWidth())
	assert.False(t, iter.Next())
}

func TestParseWidthMode(t *testing.T) {
	m, ok := ParseWidthMode("standard")
	assert.True(t, ok)
	assert.Equal(t, ModeStandard, m)

	m, ok = ParseWidthMode("")
	assert.True(t, ok)
	assert.Equal(t, ModeModern, m)

	_, ok = ParseWidthMode("wide")
	assert.False(t, ok)
	assert.Equal(t, "standard", ModeStandard.String())
}
