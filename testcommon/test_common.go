package testcommon

import (
	"github.com/kpfaulkner/descratch-go/image"
)

// UniformPlane returns a width x height plane filled with value.
func UniformPlane(width int, height int, value uint8) *image.Plane {
	p := image.NewPlane(width, height)
	p.Fill(value)
	return p
}

// UniformFrame returns a 4:2:0 frame with flat luma and neutral chroma.
func UniformFrame(width int, height int, luma uint8) *image.Frame {
	f := image.NewFrame(image.FormatYUV420P8, width, height)
	f.Y().Fill(luma)
	f.U().Fill(128)
	f.V().Fill(128)
	return f
}

// DrawVerticalLine sets columns [center-width/2, center+width/2] of rows
// [top, bottom] to value, giving a flat bottomed line of the given width.
func DrawVerticalLine(p *image.Plane, center int, width int, top int, bottom int, value uint8) {
	rad := width / 2
	for y := top; y <= bottom; y++ {
		for x := center - rad; x <= center+rad; x++ {
			p.Set(x, y, value)
		}
	}
}

// DrawDiagonalLine sets one sample per row starting at (col, top) and
// moving dx columns per row.
func DrawDiagonalLine(p *image.Plane, col int, top int, rows int, dx int, value uint8) {
	for i := 0; i < rows; i++ {
		p.Set(col+i*dx, top+i, value)
	}
}

// Row builds a single row plane from samples.
func Row(samples ...uint8) *image.Plane {
	p := image.NewPlane(len(samples), 1)
	copy(p.Row(0), samples)
	return p
}

// ScratchedFrame is the reference test scene: flat 200 luma with a dark
// three column line at column 30 from row 10 to 80.
func ScratchedFrame(width int, height int) *image.Frame {
	f := UniformFrame(width, height, 200)
	DrawVerticalLine(f.Y(), 30, 3, 10, 80, 150)
	return f
}
