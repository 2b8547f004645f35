// Command qr-locate runs the QR code region locator on one image and writes
// the thresholded result with the overlay rectangle drawn on it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/qr-locate/internal/detection"
	"github.com/ironsheep/qr-locate/internal/imaging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	def := detection.DefaultConfig()

	in := flag.String("in", "", "input image (PNG, JPEG or GIF)")
	out := flag.String("out", "qr-locate.png", "output PNG path")
	figure := flag.String("figure", "", "optional plotted figure path (.png, .svg or .pdf)")
	passes := flag.Int("passes", def.SmoothingPasses, "number of 3x3 smoothing passes")
	threshold := flag.Float64("threshold", def.Threshold, "foreground threshold on the 0-255 scale")
	rect := flag.String("rect", formatRect(def.Overlay), "overlay rectangle as x,y,w,h")
	colorHex := flag.String("color", imaging.DefaultOverlayColor, "overlay colour")
	version := flag.Bool("version", false, "print version information")
	flag.Parse()

	if *version {
		fmt.Printf("qr-locate %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	overlay, err := parseRect(*rect)
	if err != nil {
		log.Fatalf("-rect: %v", err)
	}
	cfg := detection.Config{
		SmoothingPasses: *passes,
		Threshold:       *threshold,
		Overlay:         overlay,
	}

	var pipelineLog *log.Logger
	if os.Getenv("QR_LOCATE_LOG_LEVEL") == "debug" {
		pipelineLog = log.New(os.Stderr, "pipeline: ", log.Ldate|log.Ltime|log.Lmicroseconds)
	}

	if err := run(*in, cfg, pipelineLog, sinks(*out, *figure, *colorHex)...); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", *out)
}

func sinks(out, figure, colorHex string) []detection.Sink {
	s := []detection.Sink{imaging.PNGSink{
		Path:      out,
		Color:     colorHex,
		LineWidth: imaging.DefaultOverlayLineWidth,
	}}
	if figure != "" {
		s = append(s, imaging.FigureSink{Path: figure, Title: "QR code region", Color: colorHex})
	}
	return s
}

// run loads path, runs the pipeline and presents the result to every sink.
func run(path string, cfg detection.Config, logger *log.Logger, sinks ...detection.Sink) error {
	p, err := detection.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}
	ch, err := imaging.LoadChannels(imaging.NewImageCache(), path)
	if err != nil {
		return err
	}
	res, err := p.Run(ch)
	if err != nil {
		return err
	}
	for _, s := range sinks {
		if err := p.Present(res, s); err != nil {
			return err
		}
	}
	return nil
}

func parseRect(s string) (detection.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return detection.Rect{}, fmt.Errorf("want x,y,w,h, got %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return detection.Rect{}, fmt.Errorf("bad value %q: %w", p, err)
		}
		v[i] = n
	}
	return detection.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

func formatRect(r detection.Rect) string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.Width, r.Height)
}
