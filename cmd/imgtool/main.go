// Command imgtool applies the image pipeline to a single file: EXIF
// orientation correction plus an optional avatar crop, bounded thumbnail
// resize, flip, rotate or format conversion.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/nvr-ai/go-img/images"
	"github.com/nvr-ai/go-img/pipeline"
)

func main() {
	var (
		inPath     = flag.String("in", "", "Path to the input image (jpeg, png or gif)")
		outPath    = flag.String("out", "", "Path for the output image (defaults to input path)")
		avatarSize = flag.Int("avatar", 0, "Produce a centered square avatar of this size")
		thumbW     = flag.Int("thumb-width", 0, "Thumbnail max width (0 = unbounded)")
		thumbH     = flag.Int("thumb-height", 0, "Thumbnail max height (0 = unbounded)")
		thumb      = flag.Bool("thumb", false, "Apply a bounded thumbnail resize")
		flip       = flag.String("flip", "", "Flip axis: h, v or both")
		rotate     = flag.String("rotate", "", "Rotate direction: cw or ccw")
		format     = flag.String("format", "", "Convert output format: jpeg, png or gif")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *inPath == "" {
		log.Fatal("Input path is required (-in)")
	}
	if *outPath == "" {
		*outPath = *inPath
	}

	p, err := pipeline.Load(*inPath)
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	p.SetDebugMode(*debug)

	if err := p.CorrectOrientation(); err != nil {
		log.Fatalf("orientation: %v", err)
	}

	switch strings.ToLower(*flip) {
	case "":
	case "h":
		p.Flip(images.FlipHorizontal)
	case "v":
		p.Flip(images.FlipVertical)
	case "both":
		p.Flip(images.FlipBoth)
	default:
		log.Fatalf("unknown flip axis %q", *flip)
	}

	switch strings.ToLower(*rotate) {
	case "":
	case "cw":
		p.Rotate(images.RotateCW90)
	case "ccw":
		p.Rotate(images.RotateCCW90)
	default:
		log.Fatalf("unknown rotate direction %q", *rotate)
	}

	if *avatarSize > 0 {
		if err := p.Avatar(*avatarSize); err != nil {
			log.Fatalf("avatar: %v", err)
		}
	}
	if *thumb {
		if err := p.Thumbnail(*thumbW, *thumbH); err != nil {
			log.Fatalf("thumbnail: %v", err)
		}
	}
	if *format != "" {
		if err := p.ConvertFormat(images.ImageFormat(strings.ToLower(*format))); err != nil {
			log.Fatalf("convert: %v", err)
		}
	}

	if err := p.Save(*outPath); err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Printf("wrote %s (%dx%d %s)\n", *outPath, p.Width(), p.Height(), p.Format())
}
