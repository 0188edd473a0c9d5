package descratch

import (
	"fmt"
)

// Polarity is the kind of scratch a pass looks for.
type Polarity int

const (
	Dark Polarity = iota
	Light
)

func (p Polarity) String() string {
	if p == Dark {
		return "dark"
	}
	return "light"
}

func polarityOf(mindif int) Polarity {
	if mindif > 0 {
		return Dark
	}
	return Light
}

// PassReport summarises one plane/polarity pass.
type PassReport struct {
	Plane    int
	Polarity Polarity
	// true when the window was too narrow and nothing was analysed
	Skipped    bool
	Candidates int
	Demoted    int
	Threads    []Thread
	// samples overwritten with marker values, or scratch runs rebuilt
	Marked   int
	Repaired int
}

func (r *PassReport) Accepted() int {
	n := 0
	for _, t := range r.Threads {
		if t.Accepted {
			n++
		}
	}
	return n
}

func (r *PassReport) Rejected() int {
	return len(r.Threads) - r.Accepted()
}

func (r *PassReport) String() string {
	return fmt.Sprintf("plane %d %s: candidates %d demoted %d threads %d accepted %d rejected %d",
		r.Plane, r.Polarity, r.Candidates, r.Demoted, len(r.Threads), r.Accepted(), r.Rejected())
}

// Report collects the passes run for one frame, in plane order.
type Report struct {
	Passes []PassReport
}

func (r *Report) Accepted() int {
	n := 0
	for i := range r.Passes {
		n += r.Passes[i].Accepted()
	}
	return n
}

func (r *Report) Rejected() int {
	n := 0
	for i := range r.Passes {
		n += r.Passes[i].Rejected()
	}
	return n
}

// AcceptedLengths returns the lengths of all accepted threads.
func (r *Report) AcceptedLengths() []float64 {
	var lengths []float64
	for i := range r.Passes {
		for _, t := range r.Passes[i].Threads {
			if t.Accepted {
				lengths = append(lengths, float64(t.Length))
			}
		}
	}
	return lengths
}
