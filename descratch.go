package descratch_go

import (
	stdimage "image"

	"github.com/kpfaulkner/descratch-go/blur"
	"github.com/kpfaulkner/descratch-go/descratch"
	"github.com/kpfaulkner/descratch-go/image"
	"github.com/kpfaulkner/descratch-go/imageformats"
	"github.com/kpfaulkner/descratch-go/options"
)

// Process removes scratches from a single picture. The result is always a
// 4:2:0 YCbCr image; nil opts selects the defaults.
func Process(img stdimage.Image, opts *options.DescratchOptions) (stdimage.Image, error) {
	frame := imageformats.FrameFromImage(img)
	res, _, err := ProcessFrame(frame, opts)
	if err != nil {
		return nil, err
	}
	return imageformats.FrameToImage(res), nil
}

// ProcessFrame builds the blurred reference for src and runs one filter pass
// over it. Callers handling a stream should keep their own Filter and
// Blurrer instead.
func ProcessFrame(src *image.Frame, opts *options.DescratchOptions, filterOpts ...descratch.FilterOption) (*image.Frame, *descratch.Report, error) {
	if opts == nil {
		opts = options.NewDescratchOptions()
	}
	filter, err := descratch.NewFilter(src.Width, src.Height, src.Format, opts, filterOpts...)
	if err != nil {
		return nil, nil, err
	}
	blurrer, err := blur.NewBlurrer(src.Width, src.Height, opts.BlurLen)
	if err != nil {
		return nil, nil, err
	}
	blurred, err := blurrer.Frame(src)
	if err != nil {
		return nil, nil, err
	}

	dst := image.NewFrame(src.Format, src.Width, src.Height)
	report, err := filter.ProcessInto(dst, src, blurred)
	if err != nil {
		return nil, nil, err
	}
	return dst, report, nil
}
