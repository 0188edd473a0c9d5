package descratch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/kpfaulkner/descratch-go/image"
	"github.com/kpfaulkner/descratch-go/options"
	"github.com/kpfaulkner/descratch-go/util"
)

var ErrFrameGeometry = errors.New("descratch: frame geometry does not match filter")

type FilterOption func(f *Filter) error

// WithParallelPlanes processes Y, U and V on separate goroutines.
func WithParallelPlanes() FilterOption {
	return func(f *Filter) error {
		f.parallelPlanes = true
		return nil
	}
}

// Filter removes scratches from frames of one fixed geometry. It keeps no
// per-frame state, so Process may be called concurrently.
type Filter struct {
	opts   options.DescratchOptions
	width  int
	height int

	// working window in luma columns
	left  int
	right int

	parallelPlanes bool
}

// NewFilter validates the options against the video geometry. All
// configuration errors wrap options.ErrInvalidOptions.
func NewFilter(width int, height int, format image.Format, opts *options.DescratchOptions, filterOpts ...FilterOption) (*Filter, error) {
	if opts == nil {
		opts = options.NewDescratchOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if format != image.FormatYUV420P8 {
		return nil, fmt.Errorf("%w: video must be 8-bit YUV 4:2:0, got %s", options.ErrInvalidOptions, format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid frame size %dx%d", options.ErrInvalidOptions, width, height)
	}
	left, right, err := opts.Window(width)
	if err != nil {
		return nil, err
	}

	f := &Filter{
		opts:   *opts,
		width:  width,
		height: height,
		left:   left,
		right:  right,
	}
	f.opts.MinDifUV = opts.ChromaMinDif()

	for _, opt := range filterOpts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Options returns the normalised configuration in use.
func (f *Filter) Options() options.DescratchOptions {
	return f.opts
}

// Window returns the luma columns [left, right) that are processed.
func (f *Filter) Window() (int, int) {
	return f.left, f.right
}

// Process returns a new frame with scratches removed or marked. blurred is
// the low pass reference of src.
func (f *Filter) Process(src *image.Frame, blurred *image.Frame) (*image.Frame, error) {
	dst := image.NewFrame(src.Format, src.Width, src.Height)
	if _, err := f.ProcessInto(dst, src, blurred); err != nil {
		return nil, err
	}
	return dst, nil
}

// ProcessInto writes the result for src into dst, which must have the same
// geometry, and reports what each pass found.
func (f *Filter) ProcessInto(dst *image.Frame, src *image.Frame, blurred *image.Frame) (*Report, error) {
	if src == nil || blurred == nil || dst == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrFrameGeometry)
	}
	if src.Format != image.FormatYUV420P8 || src.Width != f.width || src.Height != f.height {
		return nil, fmt.Errorf("%w: got %s %dx%d, want %s %dx%d", ErrFrameGeometry,
			src.Format, src.Width, src.Height, image.FormatYUV420P8, f.width, f.height)
	}
	if !src.SameGeometry(blurred) || !src.SameGeometry(dst) {
		return nil, fmt.Errorf("%w: source, blurred and destination differ", ErrFrameGeometry)
	}

	results := make([][]PassReport, len(src.Planes))
	if f.parallelPlanes {
		var wg sync.WaitGroup
		for i := range src.Planes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = f.processPlane(i, dst.Planes[i], src.Planes[i], blurred.Planes[i])
			}(i)
		}
		wg.Wait()
	} else {
		for i := range src.Planes {
			results[i] = f.processPlane(i, dst.Planes[i], src.Planes[i], blurred.Planes[i])
		}
	}

	report := &Report{}
	for _, r := range results {
		report.Passes = append(report.Passes, r...)
	}
	return report, nil
}

// processPlane applies the plane's mode. In ModeBoth the dark pass writes a
// private copy which then feeds the light pass, so the second polarity sees
// the first one already repaired.
func (f *Filter) processPlane(plane int, dst *image.Plane, src *image.Plane, blurred *image.Plane) []PassReport {
	mode := f.opts.Mode(plane)
	mindif := util.IfThenElse(plane == image.PlaneY, f.opts.MinDif, f.opts.MinDifUV)
	hscale := max(f.height/src.Height, 1)
	left := f.left * src.Width / f.width
	right := f.right * src.Width / f.width

	if mode != options.ModeBoth {
		// geometry was checked by the caller
		_ = dst.CopyFrom(src)
		switch mode {
		case options.ModeLow:
			return []PassReport{f.pass(plane, src.Window(left, right), blurred.Window(left, right), dst.Window(left, right), mindif, hscale)}
		case options.ModeHigh:
			return []PassReport{f.pass(plane, src.Window(left, right), blurred.Window(left, right), dst.Window(left, right), -mindif, hscale)}
		}
		return nil
	}

	stride := image.AlignedStride(src.Width)
	buf := util.BytePool.Get(src.Height * stride)
	defer util.BytePool.Put(buf)
	tmp, err := image.NewPlaneFromSlice(src.Width, src.Height, stride, buf)
	if err != nil {
		// pooled buffer is always large enough
		panic(err)
	}

	_ = tmp.CopyFrom(src)
	dark := f.pass(plane, src.Window(left, right), blurred.Window(left, right), tmp.Window(left, right), mindif, hscale)
	_ = dst.CopyFrom(tmp)
	light := f.pass(plane, tmp.Window(left, right), blurred.Window(left, right), dst.Window(left, right), -mindif, hscale)
	return []PassReport{dark, light}
}
