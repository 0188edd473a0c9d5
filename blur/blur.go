package blur

import (
	"fmt"
	stdimage "image"

	"github.com/kpfaulkner/descratch-go/image"
	"github.com/kpfaulkner/descratch-go/util"
	log "github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"
)

// Blurrer builds the low pass reference used to rebuild scratched samples.
// Each plane is shrunk vertically by 1/(1+blurlen) and stretched back,
// which smooths along the scratch direction while keeping columns intact.
type Blurrer struct {
	width      int
	height     int
	blurLen    int
	downHeight int

	down xdraw.Interpolator
	up   xdraw.Interpolator
}

func NewBlurrer(width int, height int, blurLen int) (*Blurrer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid frame size %dx%d", image.ErrPlaneGeometry, width, height)
	}
	if blurLen < 0 {
		return nil, fmt.Errorf("blur length must not be negative, got %d", blurLen)
	}

	b := &Blurrer{
		width:      width,
		height:     height,
		blurLen:    blurLen,
		downHeight: max(util.RoundDownToEven(height/(1+blurLen)), 2),
		down:       xdraw.BiLinear,
		up:         xdraw.CatmullRom,
	}
	log.Debugf("blur %dx%d via height %d", width, height, b.downHeight)
	return b, nil
}

// DownHeight is the luma height of the intermediate picture.
func (b *Blurrer) DownHeight() int {
	return b.downHeight
}

func asGray(p *image.Plane) *stdimage.Gray {
	return &stdimage.Gray{Pix: p.Pix, Stride: p.Stride, Rect: stdimage.Rect(0, 0, p.Width, p.Height)}
}

// Plane blurs src into dst. Chroma planes use an intermediate height scaled
// by their own vertical subsampling.
func (b *Blurrer) Plane(dst *image.Plane, src *image.Plane) error {
	if dst.Width != src.Width || dst.Height != src.Height {
		return fmt.Errorf("%w: blur %dx%d into %dx%d", image.ErrPlaneGeometry, src.Width, src.Height, dst.Width, dst.Height)
	}
	downHeight := max(b.downHeight*src.Height/b.height, 1)
	if b.blurLen == 0 || downHeight >= src.Height {
		return dst.CopyFrom(src)
	}

	buf := util.BytePool.Get(src.Width * downHeight)
	defer util.BytePool.Put(buf)
	small := &stdimage.Gray{Pix: buf, Stride: src.Width, Rect: stdimage.Rect(0, 0, src.Width, downHeight)}

	from := asGray(src)
	to := asGray(dst)
	b.down.Scale(small, small.Rect, from, from.Rect, xdraw.Src, nil)
	b.up.Scale(to, to.Rect, small, small.Rect, xdraw.Src, nil)
	return nil
}

// FrameInto blurs every plane of src into dst.
func (b *Blurrer) FrameInto(dst *image.Frame, src *image.Frame) error {
	if src.Width != b.width || src.Height != b.height {
		return fmt.Errorf("%w: blurrer is %dx%d, frame %dx%d", image.ErrPlaneGeometry, b.width, b.height, src.Width, src.Height)
	}
	if !src.SameGeometry(dst) {
		return fmt.Errorf("%w: blur destination differs from source", image.ErrPlaneGeometry)
	}
	for i := range src.Planes {
		if err := b.Plane(dst.Planes[i], src.Planes[i]); err != nil {
			return err
		}
	}
	return nil
}

func (b *Blurrer) Frame(src *image.Frame) (*image.Frame, error) {
	dst := image.NewFrame(src.Format, src.Width, src.Height)
	if err := b.FrameInto(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}
