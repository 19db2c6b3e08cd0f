package termformat

import "github.com/codalotl/framekit/internal/q/uni"

// Grapheme is a grapheme cluster of a string that may contain escape sequences. Start and End are byte offsets into that string and cover only the cluster itself.
type Grapheme struct {
	uni.Grapheme

	// Escapes are the raw escape sequences (SGR or otherwise) that appeared immediately before this grapheme, in order.
	Escapes []string
}

// Segment splits text into grapheme clusters, lifting escape sequences out of the visible text and attaching each run of escapes to the grapheme that follows it. Escapes that follow
// the last grapheme are dropped; use SegmentWithTrailer to keep them.
func Segment(text string) []Grapheme {
	gs, _ := SegmentWithTrailer(text)
	return gs
}

// SegmentWithTrailer is Segment, also returning the escape sequences that follow the last grapheme.
func SegmentWithTrailer(text string) ([]Grapheme, []string) {
	var out []Grapheme
	var pending []string

	for _, tok := range scanANSI(text) {
		if tok.escape {
			pending = append(pending, tok.text)
			continue
		}
		for _, g := range uni.Segment(tok.text) {
			g.Start += tok.start
			g.End += tok.start
			out = append(out, Grapheme{Grapheme: g, Escapes: pending})
			pending = nil
		}
	}

	return out, pending
}
