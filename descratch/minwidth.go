package descratch

import (
	"github.com/kpfaulkner/descratch-go/image"
)

// RemoveNarrowExtrema demotes candidates that also match the template two
// samples narrower than minwidth, so only scratches at least minwidth wide
// survive. Nothing happens for minwidth <= 1. Returns the number demoted.
func RemoveNarrowExtrema(src *image.Plane, mask *Mask, mindif int, asym int, minwidth int) int {
	if minwidth <= 1 {
		return 0
	}

	d := shoulder(minwidth - 2)
	demoted := 0
	for y := 0; y < src.Height; y++ {
		s := src.Row(y)
		m := mask.GetRow(y)
		for x := d + 1; x < src.Width-d-1; x++ {
			if m[x] == Candidate && isExtremum(s, x, d, mindif, asym) {
				m[x] = Null
				demoted++
			}
		}
	}
	return demoted
}
