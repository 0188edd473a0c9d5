package descratch

import (
	"github.com/kpfaulkner/descratch-go/util"
)

// Thread is one traced vertical run of candidates.
type Thread struct {
	// seed position
	Column int
	Row    int
	// rows traced before the thread broke off
	Length   int
	Accepted bool
}

// Search offsets around the current centre, in test order. When several
// cells match in one row the last one becomes the new centre.
var (
	wideWindow   = []int{-2, 2, -1, 1, 0}
	narrowWindow = []int{-1, 1, 0}
)

type tracer struct {
	mask     *Mask
	window   []int
	maxwidth float32
	maxangle float32
}

func newTracer(mask *Mask, maxwidth int, maxangle float32) *tracer {
	return &tracer{
		mask:     mask,
		window:   util.IfThenElse(maxwidth >= 3, wideWindow, narrowWindow),
		maxwidth: float32(maxwidth),
		maxangle: maxangle,
	}
}

// follow walks down from the seed converting every from cell met in the
// search window to to, and returns the number of rows traced. The walk ends
// on a row without matches or once the thread leans further from the seed
// column than maxwidth plus the allowed angle.
func (t *tracer) follow(col int, row int, from State, to State) int {
	center := col + 1
	length := 0
	for ; length < t.mask.Height-row; length++ {
		y := row + length
		matched := 0
		newCenter := center
		for _, off := range t.window {
			x := center + off
			if t.mask.At(x, y) == from {
				t.mask.SetAt(x, y, to)
				newCenter = x
				matched++
			}
		}

		limit := t.maxwidth + float32(length)*t.maxangle/57
		if matched == 0 || !(limit > float32(util.Abs(newCenter-col))) {
			break
		}
		center = newCenter
	}
	return length
}

// TraceScratches groups candidates into vertical threads and classifies
// each as Accepted when its length lies in [minlen, maxlen], otherwise
// Rejected. Seeds are taken row by row, left to right; cells already
// consumed by an earlier thread never start a new one.
func TraceScratches(mask *Mask, maxwidth int, minlen int, maxlen int, maxangle float32) []Thread {
	t := newTracer(mask, maxwidth, maxangle)
	var threads []Thread

	for y := 0; y < mask.Height; y++ {
		for x := 2; x < mask.Width-2; x++ {
			if mask.Get(y, x) != Candidate {
				continue
			}

			// measure first, classification needs the final length
			length := t.follow(x, y, Candidate, Traced)
			accepted := length >= minlen && length <= maxlen
			t.follow(x, y, Traced, util.IfThenElse(accepted, Accepted, Rejected))

			threads = append(threads, Thread{Column: x, Row: y, Length: length, Accepted: accepted})
		}
	}
	return threads
}
