// Package animation plays a sequence of rendered frames in place on a terminal.
package animation

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/codalotl/framekit/internal/logging"
	"github.com/codalotl/framekit/internal/q/termformat"
)

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
	clearDown  = "\x1b[J"
)

// Options configure Run.
type Options struct {
	FPS       int           // frames per second; 0 is 10
	Duration  time.Duration // stop after this long; 0 runs until the sequence ends or ctx is done
	MaxFrames int           // stop after this many frames; 0 is no limit

	// Interactive enables cursor movement. Without it only the last frame within the frame limit is written; with neither Duration nor MaxFrames set, that is the first frame.
	Interactive bool
}

func (o Options) budget() int {
	fps := o.fps()
	n := o.MaxFrames
	if o.Duration > 0 {
		byDuration := max(int(o.Duration.Seconds()*float64(fps)), 1)
		if n <= 0 || byDuration < n {
			n = byDuration
		}
	}
	return n
}

func (o Options) fps() int {
	if o.FPS <= 0 {
		return 10
	}
	return o.FPS
}

// Run writes frames to w at opts.FPS, each frame overwriting the previous one. It stops when the sequence ends, the duration or frame limit is reached, or ctx is done; in the
// last case it returns ctx.Err(). The cursor is hidden while playing and always shown again.
func Run(ctx context.Context, w io.Writer, frames iter.Seq[string], opts Options) error {
	log := logging.Get("animation")
	budget := opts.budget()

	if !opts.Interactive {
		return writeFinal(ctx, w, frames, budget)
	}

	if _, err := io.WriteString(w, hideCursor); err != nil {
		return err
	}
	defer io.WriteString(w, showCursor)

	interval := time.Second / time.Duration(opts.fps())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	written, height := 0, 0
	for frame := range frames {
		if written > 0 {
			select {
			case <-ctx.Done():
				log.Debug().Int("frames", written).Msg("animation cancelled")
				return ctx.Err()
			case <-ticker.C:
			}
		}

		var b strings.Builder
		if height > 0 {
			fmt.Fprintf(&b, "\x1b[%dA\r%s", height, clearDown)
		}
		b.WriteString(frame)
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		height = max(termformat.BlockHeight(frame), 1)
		written++

		if budget > 0 && written >= budget {
			break
		}
		if opts.Duration > 0 && time.Since(start) >= opts.Duration {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	log.Debug().Int("frames", written).Dur("elapsed", time.Since(start)).Msg("animation finished")
	return nil
}

func writeFinal(ctx context.Context, w io.Writer, frames iter.Seq[string], budget int) error {
	if budget <= 0 {
		budget = 1
	}
	var last string
	n := 0
	for frame := range frames {
		last = frame
		n++
		if n >= budget || ctx.Err() != nil {
			break
		}
	}
	if n == 0 {
		return nil
	}
	_, err := io.WriteString(w, last+"\n")
	return err
}
