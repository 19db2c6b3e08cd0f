package gradient

import (
	"iter"
	"strings"

	"github.com/codalotl/framekit/internal/q/termformat"
)

// FrameSeqOptions describe an animation: frame i is rendered with a phase offset of Start + i*Step.
type FrameSeqOptions struct {
	Start float64
	Step  float64
	Count int // frames to produce; 0 or less is unbounded (the consumer stops pulling)
}

// Frames returns a lazy sequence of base rendered with opts, each frame joined with "\n". The offset wraps around, so a Step of 1/n repeats every n frames. The sequence can be
// ranged over more than once; each range starts again at Start.
//
// Frames renders the first frame eagerly and returns its error, if any. Later frames cannot fail: only the offset changes between frames.
func Frames(base []termformat.Text, opts Options, seq FrameSeqOptions) (iter.Seq[string], error) {
	inner := opts.Position
	if inner == nil {
		inner = Vertical{}
	}
	render := func(i int) (string, error) {
		o := opts
		o.Position = Offset{Inner: inner, Offset: CyclePhase(seq.Start, float64(i)*seq.Step)}
		lines, err := Apply(base, o)
		if err != nil {
			return "", err
		}
		return strings.Join(termformat.Strings(lines), "\n"), nil
	}

	first, err := render(0)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		if !yield(first) {
			return
		}
		for i := 1; seq.Count <= 0 || i < seq.Count; i++ {
			s, err := render(i)
			if err != nil {
				return
			}
			if !yield(s) {
				return
			}
		}
	}, nil
}
