package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/kpfaulkner/descratch-go/image"
	"github.com/kpfaulkner/descratch-go/imageformats"
	"github.com/kpfaulkner/descratch-go/testcommon"
	log "github.com/sirupsen/logrus"
)

// Writes a synthetic clip with a few dark and light scratches wandering a
// column per frame, for trying out tools/descratch.
func main() {
	outfile := flag.String("o", "scratched.y4m", "output y4m file")
	width := flag.Int("w", 720, "frame width")
	height := flag.Int("h", 576, "frame height")
	frames := flag.Int("n", 25, "number of frames")
	scratches := flag.Int("s", 4, "number of scratches")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	f, err := os.Create(*outfile)
	if err != nil {
		log.Fatalf("boomage %v", err)
	}
	defer f.Close()

	rnd := rand.New(rand.NewSource(*seed))
	cols := make([]int, *scratches)
	for i := range cols {
		cols[i] = 8 + rnd.Intn(*width-16)
	}

	header := imageformats.Y4MHeader{Width: *width, Height: *height, FrameRate: "25:1", Interlace: "p",
		Colorspace: "420jpeg", Format: image.FormatYUV420P8}
	w := imageformats.NewY4MWriter(f, header)
	for n := 0; n < *frames; n++ {
		frame := testcommon.UniformFrame(*width, *height, 160)
		for i, col := range cols {
			value := uint8(100)
			if i%2 == 1 {
				value = 220
			}
			top := rnd.Intn(*height / 4)
			testcommon.DrawVerticalLine(frame.Y(), col, 1+2*(i%2), top, *height-1-rnd.Intn(*height/4), value)
			cols[i] = min(max(col+rnd.Intn(3)-1, 8), *width-9)
		}
		if err := w.WriteFrame(frame); err != nil {
			log.Fatalf("boomage %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("boomage %v", err)
	}
	fmt.Printf("wrote %d frames to %s\n", *frames, *outfile)
}
