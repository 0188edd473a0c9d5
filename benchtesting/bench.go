package main

import (
	"fmt"
	"time"

	"github.com/kpfaulkner/descratch-go/blur"
	"github.com/kpfaulkner/descratch-go/descratch"
	"github.com/kpfaulkner/descratch-go/image"
	"github.com/kpfaulkner/descratch-go/options"
	"github.com/kpfaulkner/descratch-go/testcommon"
	"github.com/kpfaulkner/descratch-go/util"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

const (
	width  = 1920
	height = 1080
	frames = 50
)

func main() {

	//p := profile.Start(profile.MemProfileHeap, profile.ProfilePath("."))
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	defer p.Stop()

	src := testcommon.UniformFrame(width, height, 180)
	for i, col := range []int{150, 611, 1200, 1777} {
		testcommon.DrawVerticalLine(src.Y(), col, 3, 20+i*40, height-30, 120)
	}
	testcommon.DrawVerticalLine(src.Y(), 900, 1, 0, height-1, 235)

	opts := options.NewDescratchOptions()
	opts.ModeY = options.ModeBoth
	opts.ModeU = options.ModeLow
	opts.ModeV = options.ModeLow

	filter, err := descratch.NewFilter(width, height, image.FormatYUV420P8, opts, descratch.WithParallelPlanes())
	if err != nil {
		log.Fatalf("boomage %v", err)
	}
	blurrer, err := blur.NewBlurrer(width, height, opts.BlurLen)
	if err != nil {
		log.Fatalf("boomage %v", err)
	}

	dst := image.NewFrame(image.FormatYUV420P8, width, height)
	blurred := image.NewFrame(image.FormatYUV420P8, width, height)
	start := time.Now()
	accepted := 0
	for count := 0; count < frames; count++ {
		if err := blurrer.FrameInto(blurred, src); err != nil {
			log.Fatalf("boomage %v", err)
		}
		report, err := filter.ProcessInto(dst, src, blurred)
		if err != nil {
			log.Fatalf("boomage %v", err)
		}
		accepted += report.Accepted()
	}
	elapsed := time.Since(start)

	fmt.Printf("%d frames took %d ms, %.2f ms per frame\n", frames, elapsed.Milliseconds(), float64(elapsed.Milliseconds())/frames)
	fmt.Printf("accepted scratches %d\n", accepted)
	hits, misses := util.BytePool.GetMetrics()
	fmt.Printf("buffer pool hits %d misses %d\n", hits, misses)
}
