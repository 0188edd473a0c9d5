package image

import (
	"errors"
	"fmt"
)

var ErrPlaneGeometry = errors.New("plane geometry mismatch")

// Plane is a rectangular grid of 8-bit samples. Width is the usable row
// size, Stride the distance in bytes between the starts of successive rows.
type Plane struct {
	Width  int
	Height int
	Stride int
	Pix    []uint8
}

func NewPlane(width int, height int) *Plane {
	return NewPlaneWithStride(width, height, width)
}

func NewPlaneWithStride(width int, height int, stride int) *Plane {
	return &Plane{Width: width, Height: height, Stride: stride, Pix: make([]uint8, planeLen(width, height, stride))}
}

// NewPlaneFromSlice wraps existing storage, typically a pooled buffer.
func NewPlaneFromSlice(width int, height int, stride int, pix []uint8) (*Plane, error) {
	if stride < width {
		return nil, fmt.Errorf("%w: stride %d smaller than width %d", ErrPlaneGeometry, stride, width)
	}
	if len(pix) < planeLen(width, height, stride) {
		return nil, fmt.Errorf("%w: %d bytes cannot hold %dx%d with stride %d", ErrPlaneGeometry, len(pix), width, height, stride)
	}
	return &Plane{Width: width, Height: height, Stride: stride, Pix: pix}, nil
}

// AlignedStride pads a row size up to the next multiple of 16, always
// leaving at least one spare byte.
func AlignedStride(width int) int {
	return width + 16 - width%16
}

func planeLen(width int, height int, stride int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return (height-1)*stride + width
}

func (p *Plane) InBounds(x int, y int) bool {
	return x >= 0 && x < p.Width && y >= 0 && y < p.Height
}

func (p *Plane) At(x int, y int) uint8 {
	if !p.InBounds(x, y) {
		panic(fmt.Sprintf("plane access (%d,%d) outside %dx%d", x, y, p.Width, p.Height))
	}
	return p.Pix[y*p.Stride+x]
}

func (p *Plane) Set(x int, y int, v uint8) {
	if !p.InBounds(x, y) {
		panic(fmt.Sprintf("plane access (%d,%d) outside %dx%d", x, y, p.Width, p.Height))
	}
	p.Pix[y*p.Stride+x] = v
}

// Row returns the usable samples of row y. The slice shares storage with the plane.
func (p *Plane) Row(y int) []uint8 {
	start := y * p.Stride
	return p.Pix[start : start+p.Width : start+p.Width]
}

// Window returns a view of columns [left, right) sharing storage with p.
func (p *Plane) Window(left int, right int) *Plane {
	if left < 0 || right > p.Width || left > right {
		panic(fmt.Sprintf("window [%d,%d) outside plane width %d", left, right, p.Width))
	}
	if left == right || p.Height == 0 {
		return &Plane{Width: 0, Height: p.Height, Stride: p.Stride}
	}
	return &Plane{Width: right - left, Height: p.Height, Stride: p.Stride, Pix: p.Pix[left:]}
}

// CopyFrom copies the samples of src row by row. Both planes must have the same size.
func (p *Plane) CopyFrom(src *Plane) error {
	if src.Width != p.Width || src.Height != p.Height {
		return fmt.Errorf("%w: copy %dx%d into %dx%d", ErrPlaneGeometry, src.Width, src.Height, p.Width, p.Height)
	}
	for y := 0; y < p.Height; y++ {
		copy(p.Row(y), src.Row(y))
	}
	return nil
}

func (p *Plane) Fill(v uint8) {
	for y := 0; y < p.Height; y++ {
		row := p.Row(y)
		for x := range row {
			row[x] = v
		}
	}
}

// Clone returns a tightly packed copy.
func (p *Plane) Clone() *Plane {
	c := NewPlane(p.Width, p.Height)
	for y := 0; y < p.Height; y++ {
		copy(c.Row(y), p.Row(y))
	}
	return c
}

// Equals compares samples, ignoring any stride padding.
func (p *Plane) Equals(other *Plane) bool {
	if other == nil || p.Width != other.Width || p.Height != other.Height {
		return false
	}
	for y := 0; y < p.Height; y++ {
		a := p.Row(y)
		b := other.Row(y)
		for x := range a {
			if a[x] != b[x] {
				return false
			}
		}
	}
	return true
}
