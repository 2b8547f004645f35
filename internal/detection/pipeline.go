package detection

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/ironsheep/qr-locate/internal/grid"
)

// Default pipeline parameters.
const (
	DefaultSmoothingPasses = 8
	DefaultThreshold       = 70.0
)

// Rect describes an overlay rectangle in pixel coordinates. (X, Y) is the
// top-left corner.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultOverlay is the annotation drawn over the thresholded image when no
// other rectangle is supplied. It is not derived from the pipeline output.
var DefaultOverlay = Rect{X: 10, Y: 30, Width: 70, Height: 50}

// Bounds returns r as an image.Rectangle with an exclusive bottom-right corner.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Config holds the tunable pipeline parameters.
type Config struct {
	// SmoothingPasses is the number of 3x3 box-average passes applied to the
	// edge magnitude. Must be >= 0.
	SmoothingPasses int `json:"smoothing_passes"`

	// Threshold is the cutoff applied to the normalized grid. Cells at or
	// above it become foreground.
	Threshold float64 `json:"threshold"`

	// Overlay is handed to the Sink together with the final grid.
	Overlay Rect `json:"overlay"`
}

// DefaultConfig returns the stock parameters: 8 smoothing passes, threshold
// 70 and the fixed overlay rectangle.
func DefaultConfig() Config {
	return Config{
		SmoothingPasses: DefaultSmoothingPasses,
		Threshold:       DefaultThreshold,
		Overlay:         DefaultOverlay,
	}
}

// Validate checks the parameters for values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.SmoothingPasses < 0 {
		return fmt.Errorf("smoothing passes must be >= 0, got %d", c.SmoothingPasses)
	}
	if c.Overlay.Width < 0 || c.Overlay.Height < 0 {
		return fmt.Errorf("overlay size must be non-negative, got %dx%d", c.Overlay.Width, c.Overlay.Height)
	}
	return nil
}

// Channels holds the 8-bit red, green and blue grids of a source image.
type Channels struct {
	R, G, B *grid.Grid
}

// Result holds every grid produced by a pipeline run. Grids are owned by the
// Result and must be treated as read-only.
type Result struct {
	Greyscale  *grid.Grid
	Vertical   *grid.Grid
	Horizontal *grid.Grid
	Magnitude  *grid.Grid
	Smoothed   *grid.Grid
	Normalized *grid.Grid
	Binary     *grid.Grid

	// Overlay is copied from the Config used for the run.
	Overlay Rect

	Stats Stats
}

// Stats summarizes the binary output.
type Stats struct {
	Width              int     `json:"width"`
	Height             int     `json:"height"`
	SmoothingPasses    int     `json:"smoothing_passes"`
	Threshold          float64 `json:"threshold"`
	ForegroundPixels   int     `json:"foreground_pixels"`
	ForegroundFraction float64 `json:"foreground_fraction"`
}

// Sink receives the final grid of a run along with the overlay rectangle,
// for display or encoding.
type Sink interface {
	Show(g *grid.Grid, overlay Rect) error
}

// Pipeline runs the greyscale -> edges -> smoothing -> normalization ->
// threshold sequence with a fixed Config.
type Pipeline struct {
	cfg Config
	log *log.Logger
}

// NewPipeline validates cfg and returns a pipeline that uses it. logger may be
// nil to disable per-stage debug output.
func NewPipeline(cfg Config, logger *log.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	return &Pipeline{cfg: cfg, log: logger}, nil
}

// Config returns the parameters the pipeline was built with.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Run executes every stage in order on ch: greyscale, vertical, horizontal
// and magnitude edges, the configured number of smoothing passes,
// normalization to 0-255 and thresholding.
//
// Parameters:
//   - ch: Red, green and blue grids of equal shape with values in 0-255.
//
// Returns:
//   - *Result: Every intermediate grid, the overlay rectangle from the config
//     and foreground statistics of the binary grid. The input grids are not
//     modified.
//   - error: Non-nil if the channels cannot be combined.
//
// # Errors
//
//   - Returns an error wrapping grid.ErrInvalidDimension if the channels are
//     nil or differ in shape
func (p *Pipeline) Run(ch Channels) (*Result, error) {
	start := time.Now()

	grey, err := Greyscale(ch.R, ch.G, ch.B)
	if err != nil {
		return nil, err
	}
	p.debugf("greyscale %dx%d", grey.Width, grey.Height)

	res := &Result{
		Greyscale:  grey,
		Vertical:   VerticalEdges(grey),
		Horizontal: HorizontalEdges(grey),
		Magnitude:  EdgeMagnitude(grey),
		Overlay:    p.cfg.Overlay,
	}
	p.debugf("edges computed after %v", time.Since(start))

	res.Smoothed, err = Smooth(res.Magnitude, p.cfg.SmoothingPasses)
	if err != nil {
		return nil, err
	}
	p.debugf("%d smoothing passes done after %v", p.cfg.SmoothingPasses, time.Since(start))

	res.Normalized = ScaleTo0And255(res.Smoothed)
	res.Binary = ThresholdGE(res.Normalized, p.cfg.Threshold)

	fg := res.Binary.Count(Foreground)
	res.Stats = Stats{
		Width:              grey.Width,
		Height:             grey.Height,
		SmoothingPasses:    p.cfg.SmoothingPasses,
		Threshold:          p.cfg.Threshold,
		ForegroundPixels:   fg,
		ForegroundFraction: float64(fg) / float64(res.Binary.Len()),
	}
	p.debugf("threshold %.1f: %d foreground pixels, total %v", p.cfg.Threshold, fg, time.Since(start))

	return res, nil
}

// Present hands the binary grid of res and its overlay rectangle to sink.
func (p *Pipeline) Present(res *Result, sink Sink) error {
	if res == nil || res.Binary == nil {
		return fmt.Errorf("no pipeline result to present")
	}
	if err := sink.Show(res.Binary, res.Overlay); err != nil {
		return fmt.Errorf("failed to present result: %w", err)
	}
	return nil
}

func (p *Pipeline) debugf(format string, args ...interface{}) {
	if p.log != nil {
		p.log.Printf(format, args...)
	}
}
