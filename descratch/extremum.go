package descratch

import (
	"github.com/kpfaulkner/descratch-go/image"
	"github.com/kpfaulkner/descratch-go/util"
)

// shoulder is the distance from the centre of a scratch of the given width
// to the first background sample.
func shoulder(width int) int {
	return (width + 1) / 2
}

// isExtremum tests sample p of row s against a scratch template whose
// shoulder sits d samples away. mindif > 0 looks for dark lines, mindif < 0
// for light ones. The caller keeps p-d-1 and p+d+1 inside the row.
func isExtremum(s []uint8, p int, d int, mindif int, asym int) bool {
	c := int(s[p])
	left, right := int(s[p-d]), int(s[p+d])
	leftIn, rightIn := int(s[p-d+1]), int(s[p+d-1])
	leftOut, rightOut := int(s[p-d-1]), int(s[p+d+1])

	// one sided features are edges, not lines
	if util.Abs(leftOut-rightOut) > asym {
		return false
	}

	inner := left - leftIn + right - rightIn
	outer := leftOut - left + rightOut - right
	if mindif > 0 {
		return left-c > mindif && right-c > mindif && inner > outer
	}
	return left-c < mindif && right-c < mindif && inner < outer
}

// FindExtrema marks every sample of src that is a sharp local extremum of
// the given width as Candidate and clears all others. The first and last
// shoulder+1 columns of each row are always Null.
func FindExtrema(src *image.Plane, mask *Mask, mindif int, asym int, width int) int {
	d := shoulder(width)
	found := 0
	for y := 0; y < src.Height; y++ {
		s := src.Row(y)
		m := mask.GetRow(y)
		for x := range m {
			m[x] = Null
		}
		for x := d + 1; x < src.Width-d-1; x++ {
			if isExtremum(s, x, d, mindif, asym) {
				m[x] = Candidate
				found++
			}
		}
	}
	return found
}
