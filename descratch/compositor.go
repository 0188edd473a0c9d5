package descratch

import (
	"github.com/kpfaulkner/descratch-go/image"
	"github.com/kpfaulkner/descratch-go/util"
)

const (
	markDark     uint8 = 0
	markLight    uint8 = 255
	markRejected uint8 = 127
)

// MarkScratches overwrites dst with value wherever the mask holds state.
func MarkScratches(dst *image.Plane, mask *Mask, state State, value uint8) int {
	marked := 0
	for y := 0; y < dst.Height; y++ {
		d := dst.Row(y)
		m := mask.GetRow(y)
		for x := range d {
			if m[x] == state {
				d[x] = value
				marked++
			}
		}
	}
	return marked
}

// RemoveScratches rebuilds the samples under every run of accepted cells.
// The body of the scratch (maxwidth/2 either side of the run centre) is a
// distance weighted blend of two estimates, one anchored on the background
// sample just left of the border zone and one anchored just right of it.
// Each estimate adds the anchor's blurred value to the local detail
// src-blurred, mixed with the plain anchor value by keep percent. The border
// samples use the nearer anchor only. dst must already hold a copy of src.
func RemoveScratches(src *image.Plane, dst *image.Plane, blurred *image.Plane, mask *Mask, maxwidth int, keep int, border int) int {
	rad := maxwidth / 2
	keep256 := keep * 256 / 100
	// division by 2*rad+2 as multiply and shift
	div2rad2 := (256 * 256) / (2*rad + 2)

	estimate := func(s []uint8, b []uint8, x int, anchor int) int {
		return (keep256*(int(s[x])+int(b[anchor])-int(b[x])) + (256-keep256)*int(s[anchor])) / 256
	}

	repaired := 0
	for y := 0; y < src.Height; y++ {
		s := src.Row(y)
		b := blurred.Row(y)
		d := dst.Row(y)
		m := mask.GetRow(y)

		left := -1
		for x := rad + border + 2; x < src.Width-rad-border-2; x++ {
			good := m[x]&Accepted != 0
			if good && m[x-1]&Accepted == 0 {
				left = x
			}
			if left < 0 || !good || m[x+1]&Accepted != 0 {
				continue
			}

			c := (left + x) / 2
			anchorLeft := c - rad - border - 1
			anchorRight := c + rad + border + 1

			for i := -rad; i <= rad; i++ {
				n1 := estimate(s, b, c+i, anchorLeft)
				n2 := estimate(s, b, c+i, anchorRight)
				v := ((n1*(rad-i+1) + n2*(rad+i+1)) * div2rad2) / (256 * 256)
				d[c+i] = util.ClampToByte(v)
			}
			for i := -rad - border; i < -rad; i++ {
				d[c+i] = util.ClampToByte(estimate(s, b, c+i, anchorLeft))
			}
			for i := rad + 1; i <= rad+border; i++ {
				d[c+i] = util.ClampToByte(estimate(s, b, c+i, anchorRight))
			}

			repaired++
			left = -1
		}
	}
	return repaired
}
