package main

import (
	"flag"
	"fmt"
	stdimage "image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	descratch_go "github.com/kpfaulkner/descratch-go"
	"github.com/kpfaulkner/descratch-go/blur"
	"github.com/kpfaulkner/descratch-go/descratch"
	"github.com/kpfaulkner/descratch-go/image"
	"github.com/kpfaulkner/descratch-go/imageformats"
	"github.com/kpfaulkner/descratch-go/options"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/tiff"
)

type config struct {
	infile     string
	outfile    string
	profileDir string
	workers    int
	parallel   bool
	opts       *options.DescratchOptions
}

func parseFlags(args []string) (*config, error) {
	cfg := &config{opts: options.NewDescratchOptions()}
	opts := cfg.opts

	fs := flag.NewFlagSet("descratch", flag.ContinueOnError)
	fs.StringVar(&cfg.infile, "i", "", "input .y4m, .png, .jpg or .tif file")
	fs.StringVar(&cfg.outfile, "o", "", "output file, .y4m for video input, .png, .jpg or .tif for stills")
	fs.StringVar(&cfg.profileDir, "profile", "", "write a CPU profile into this directory")
	fs.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "frames processed at once for video input")
	fs.BoolVar(&cfg.parallel, "parallel", false, "process the planes of a frame concurrently")
	verbose := fs.Bool("v", false, "debug logging")

	fs.IntVar(&opts.MinDif, "mindif", opts.MinDif, "minimal difference of a scratch from its neighbours")
	fs.IntVar(&opts.Asym, "asym", opts.Asym, "maximal asymmetry of the neighbours")
	fs.IntVar(&opts.MaxGap, "maxgap", opts.MaxGap, "maximal vertical gap bridged inside a scratch")
	fs.IntVar(&opts.MaxWidth, "maxwidth", opts.MaxWidth, "maximal scratch width, odd")
	fs.IntVar(&opts.MinLen, "minlen", opts.MinLen, "minimal scratch length in rows")
	fs.IntVar(&opts.MaxLen, "maxlen", opts.MaxLen, "maximal scratch length in rows")
	maxAngle := fs.Float64("maxangle", float64(opts.MaxAngle), "maximal angle to vertical in degrees")
	fs.IntVar(&opts.BlurLen, "blurlen", opts.BlurLen, "vertical blur length of the reference")
	fs.IntVar(&opts.Keep, "keep", opts.Keep, "percentage of original detail kept in repaired samples")
	fs.IntVar(&opts.Border, "border", opts.Border, "columns repaired each side of a scratch")
	fs.IntVar(&opts.MinDifUV, "mindifuv", opts.MinDifUV, "chroma threshold, 0 uses mindif")
	fs.BoolVar(&opts.Mark, "mark", opts.Mark, "mark scratches instead of removing them")
	fs.IntVar(&opts.MinWidth, "minwidth", opts.MinWidth, "minimal scratch width, odd")
	fs.IntVar(&opts.Left, "left", opts.Left, "left edge of the processed window")
	fs.IntVar(&opts.Right, "right", opts.Right, "right edge of the processed window")
	modeY := fs.String("modey", opts.ModeY.String(), "luma mode: none, low, high or both")
	modeU := fs.String("modeu", opts.ModeU.String(), "U mode: none, low, high or both")
	modeV := fs.String("modev", opts.ModeV.String(), "V mode: none, low, high or both")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.infile == "" || cfg.outfile == "" {
		return nil, fmt.Errorf("both input and output files must be specified")
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	opts.MaxAngle = float32(*maxAngle)
	var err error
	if opts.ModeY, err = options.ParsePlaneMode(*modeY); err != nil {
		return nil, err
	}
	if opts.ModeU, err = options.ParsePlaneMode(*modeU); err != nil {
		return nil, err
	}
	if opts.ModeV, err = options.ParsePlaneMode(*modeV); err != nil {
		return nil, err
	}
	cfg.workers = max(cfg.workers, 1)
	return cfg, opts.Validate()
}

func isY4M(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".y4m")
}

func (c *config) filterOptions() []descratch.FilterOption {
	if c.parallel {
		return []descratch.FilterOption{descratch.WithParallelPlanes()}
	}
	return nil
}

func main() {
	if err := execute(os.Args[1:]); err != nil {
		log.Errorf("descratch: %v", err)
		os.Exit(1)
	}
}

// execute runs the tool for args. The profile is stopped before returning
// so main can exit with a status.
func execute(args []string) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}

	if cfg.profileDir != "" {
		p := profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.profileDir))
		defer p.Stop()
	}

	start := time.Now()
	stats, err := run(cfg)
	if err != nil {
		return err
	}
	stats.log()
	log.Infof("processing took %d ms", time.Since(start).Milliseconds())
	return nil
}

func run(cfg *config) (*summary, error) {
	video := isY4M(cfg.infile)
	if video && !isY4M(cfg.outfile) {
		return nil, fmt.Errorf("video input needs a .y4m output, got %s", cfg.outfile)
	}

	in, err := os.Open(cfg.infile)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	out, err := os.Create(cfg.outfile)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	if video {
		return processStream(in, out, cfg.opts, cfg.workers, cfg.filterOptions())
	}
	return processStill(in, out, cfg)
}

func processStill(in io.Reader, out io.Writer, cfg *config) (*summary, error) {
	img, format, err := stdimage.Decode(in)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", cfg.infile, err)
	}
	log.Debugf("read %s image %v", format, img.Bounds())

	frame := imageformats.FrameFromImage(img)
	res, report, err := descratch_go.ProcessFrame(frame, cfg.opts, cfg.filterOptions()...)
	if err != nil {
		return nil, err
	}
	stats := &summary{}
	stats.add(report)

	result := imageformats.FrameToImage(res)
	switch strings.ToLower(filepath.Ext(cfg.outfile)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(out, result, &jpeg.Options{Quality: 95})
	case ".tif", ".tiff":
		err = tiff.Encode(out, result, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(out, result)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", cfg.outfile, err)
	}
	return stats, nil
}

type frameResult struct {
	frame  *image.Frame
	report *descratch.Report
	err    error
}

// processStream filters frames in batches of workers and writes each batch
// in input order.
func processStream(in io.Reader, out io.Writer, opts *options.DescratchOptions, workers int, filterOpts []descratch.FilterOption) (*summary, error) {
	r, err := imageformats.NewY4MReader(in)
	if err != nil {
		return nil, err
	}
	h := r.Header()
	log.Debugf("stream %s", h)

	filter, err := descratch.NewFilter(h.Width, h.Height, h.Format, opts, filterOpts...)
	if err != nil {
		return nil, err
	}
	blurrer, err := blur.NewBlurrer(h.Width, h.Height, opts.BlurLen)
	if err != nil {
		return nil, err
	}
	w := imageformats.NewY4MWriter(out, *h)

	stats := &summary{}
	batch := make([]*image.Frame, 0, workers)
	for eof := false; !eof; {
		batch = batch[:0]
		for len(batch) < workers {
			f, err := r.ReadFrame()
			if err == io.EOF {
				eof = true
				break
			}
			if err != nil {
				return nil, err
			}
			batch = append(batch, f)
		}

		for _, res := range processBatch(filter, blurrer, batch) {
			if res.err != nil {
				return nil, res.err
			}
			if err := w.WriteFrame(res.frame); err != nil {
				return nil, err
			}
			stats.add(res.report)
		}
	}
	return stats, w.Flush()
}

func processBatch(filter *descratch.Filter, blurrer *blur.Blurrer, batch []*image.Frame) []frameResult {
	results := make([]frameResult, len(batch))
	var wg sync.WaitGroup
	for i, src := range batch {
		wg.Add(1)
		go func(i int, src *image.Frame) {
			defer wg.Done()
			blurred, err := blurrer.Frame(src)
			if err != nil {
				results[i].err = err
				return
			}
			dst := image.NewFrame(src.Format, src.Width, src.Height)
			results[i].report, results[i].err = filter.ProcessInto(dst, src, blurred)
			results[i].frame = dst
		}(i, src)
	}
	wg.Wait()
	return results
}
