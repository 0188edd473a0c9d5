package descratch

import (
	"fmt"

	"github.com/kpfaulkner/descratch-go/util"
)

// State is the classification of one mask cell. Values are distinct bits so
// a run of accepted cells can be tested with a mask.
type State uint8

const (
	Null      State = 0
	Candidate State = 1
	Traced    State = 2
	Accepted  State = 4
	Rejected  State = 8
)

func (s State) String() string {
	switch s {
	case Null:
		return "null"
	case Candidate:
		return "candidate"
	case Traced:
		return "traced"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

var statePool = util.NewSlicePool[State]()

// Mask holds one state per sample of the analysed plane window. Reads
// outside the grid return Null and writes outside it are dropped.
type Mask struct {
	*util.Matrix[State]
}

func NewMask(width int, height int) *Mask {
	return &Mask{util.New2DMatrix[State](height, width)}
}

// acquireMask takes zeroed storage from the pool. Pair with release.
func acquireMask(width int, height int) *Mask {
	return &Mask{util.New2DMatrixFromSlice(height, width, statePool.Get(width*height))}
}

func (m *Mask) release() {
	statePool.Put(m.Data)
	m.Matrix = nil
}

func (m *Mask) At(x int, y int) State {
	if !m.InBounds(y, x) {
		return Null
	}
	return m.Get(y, x)
}

func (m *Mask) SetAt(x int, y int, s State) {
	if m.InBounds(y, x) {
		m.Set(y, x, s)
	}
}
