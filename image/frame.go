package image

import (
	"fmt"
)

type Format int

const (
	FormatUnknown Format = iota
	FormatYUV420P8
	FormatYUV422P8
	FormatYUV444P8
)

const (
	PlaneY = 0
	PlaneU = 1
	PlaneV = 2
)

func (f Format) String() string {
	switch f {
	case FormatYUV420P8:
		return "YUV420P8"
	case FormatYUV422P8:
		return "YUV422P8"
	case FormatYUV444P8:
		return "YUV444P8"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Subsampling returns the log2 horizontal and vertical chroma subsampling.
func (f Format) Subsampling() (int, int) {
	switch f {
	case FormatYUV420P8:
		return 1, 1
	case FormatYUV422P8:
		return 1, 0
	default:
		return 0, 0
	}
}

// Frame holds the three planes of one planar YUV picture.
type Frame struct {
	Format Format
	Width  int
	Height int
	Planes [3]*Plane
}

func NewFrame(format Format, width int, height int) *Frame {
	xs, ys := format.Subsampling()
	cw := (width + (1 << xs) - 1) >> xs
	ch := (height + (1 << ys) - 1) >> ys
	return &Frame{
		Format: format,
		Width:  width,
		Height: height,
		Planes: [3]*Plane{NewPlane(width, height), NewPlane(cw, ch), NewPlane(cw, ch)},
	}
}

func (f *Frame) Y() *Plane {
	return f.Planes[PlaneY]
}

func (f *Frame) U() *Plane {
	return f.Planes[PlaneU]
}

func (f *Frame) V() *Plane {
	return f.Planes[PlaneV]
}

func (f *Frame) Plane(i int) *Plane {
	return f.Planes[i]
}

// SameGeometry reports whether other has the same format and plane sizes.
func (f *Frame) SameGeometry(other *Frame) bool {
	if other == nil || f.Format != other.Format || f.Width != other.Width || f.Height != other.Height {
		return false
	}
	for i := range f.Planes {
		if f.Planes[i].Width != other.Planes[i].Width || f.Planes[i].Height != other.Planes[i].Height {
			return false
		}
	}
	return true
}

func (f *Frame) Clone() *Frame {
	c := &Frame{Format: f.Format, Width: f.Width, Height: f.Height}
	for i, p := range f.Planes {
		c.Planes[i] = p.Clone()
	}
	return c
}

func (f *Frame) Equals(other *Frame) bool {
	if !f.SameGeometry(other) {
		return false
	}
	for i := range f.Planes {
		if !f.Planes[i].Equals(other.Planes[i]) {
			return false
		}
	}
	return true
}
