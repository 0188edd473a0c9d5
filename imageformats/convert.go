package imageformats

import (
	stdimage "image"
	"image/color"

	"github.com/kpfaulkner/descratch-go/image"
)

// FrameFromImage converts any image to a 4:2:0 frame. 4:2:0 YCbCr images
// are copied sample for sample; everything else goes through RGB with each
// chroma sample averaged over its 2x2 block.
func FrameFromImage(img stdimage.Image) *image.Frame {
	b := img.Bounds()
	f := image.NewFrame(image.FormatYUV420P8, b.Dx(), b.Dy())

	switch src := img.(type) {
	case *stdimage.YCbCr:
		if src.SubsampleRatio == stdimage.YCbCrSubsampleRatio420 {
			copyYCbCr420(f, src)
			return f
		}
	case *stdimage.Gray:
		for y := 0; y < f.Height; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(f.Y().Row(y), src.Pix[off:off+f.Width])
		}
		f.U().Fill(128)
		f.V().Fill(128)
		return f
	}

	cw := f.U().Width
	ch := f.U().Height
	cb := make([]int, cw*ch)
	cr := make([]int, cw*ch)
	count := make([]int, cw*ch)

	for y := 0; y < f.Height; y++ {
		row := f.Y().Row(y)
		for x := 0; x < f.Width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			yy, u, v := color.RGBToYCbCr(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			row[x] = yy
			ci := (y>>1)*cw + x>>1
			cb[ci] += int(u)
			cr[ci] += int(v)
			count[ci]++
		}
	}

	for cy := 0; cy < ch; cy++ {
		urow := f.U().Row(cy)
		vrow := f.V().Row(cy)
		for cx := 0; cx < cw; cx++ {
			ci := cy*cw + cx
			n := count[ci]
			urow[cx] = uint8((cb[ci] + n/2) / n)
			vrow[cx] = uint8((cr[ci] + n/2) / n)
		}
	}
	return f
}

func copyYCbCr420(f *image.Frame, src *stdimage.YCbCr) {
	b := src.Bounds()
	for y := 0; y < f.Height; y++ {
		off := src.YOffset(b.Min.X, b.Min.Y+y)
		copy(f.Y().Row(y), src.Y[off:off+f.Width])
	}
	for cy := 0; cy < f.U().Height; cy++ {
		urow := f.U().Row(cy)
		vrow := f.V().Row(cy)
		for cx := range urow {
			off := src.COffset(b.Min.X+2*cx, b.Min.Y+2*cy)
			urow[cx] = src.Cb[off]
			vrow[cx] = src.Cr[off]
		}
	}
}

var subsampleRatios = map[image.Format]stdimage.YCbCrSubsampleRatio{
	image.FormatYUV420P8: stdimage.YCbCrSubsampleRatio420,
	image.FormatYUV422P8: stdimage.YCbCrSubsampleRatio422,
	image.FormatYUV444P8: stdimage.YCbCrSubsampleRatio444,
}

// FrameToImage copies a frame into a new YCbCr image with the matching
// subsampling ratio.
func FrameToImage(f *image.Frame) *stdimage.YCbCr {
	ratio, ok := subsampleRatios[f.Format]
	if !ok {
		// unknown formats are built without subsampling
		ratio = stdimage.YCbCrSubsampleRatio444
	}
	img := stdimage.NewYCbCr(stdimage.Rect(0, 0, f.Width, f.Height), ratio)
	for y := 0; y < f.Height; y++ {
		copy(img.Y[y*img.YStride:], f.Y().Row(y))
	}
	for cy := 0; cy < f.U().Height; cy++ {
		copy(img.Cb[cy*img.CStride:], f.U().Row(cy))
		copy(img.Cr[cy*img.CStride:], f.V().Row(cy))
	}
	return img
}
