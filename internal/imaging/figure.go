package imaging

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ironsheep/qr-locate/internal/detection"
	"github.com/ironsheep/qr-locate/internal/grid"
)

// FigureSink renders the final grid as a plot with pixel axes and draws the
// overlay rectangle as an unfilled patch on top, then saves the figure.
// The output format follows the file extension of Path (png, svg, pdf, ...).
type FigureSink struct {
	Path  string
	Title string
	Color string

	// Size is the figure's width and height. Zero means 6 inches.
	Size vg.Length
}

// Show implements detection.Sink.
func (s FigureSink) Show(g *grid.Grid, overlay detection.Rect) error {
	p, err := NewFigure(g, overlay, s.Title, s.Color)
	if err != nil {
		return err
	}

	size := s.Size
	if size == 0 {
		size = 6 * vg.Inch
	}
	if err := p.Save(size, size, s.Path); err != nil {
		return fmt.Errorf("save figure: %w", err)
	}
	return nil
}

// NewFigure builds a plot that shows g as a greyscale image spanning
// [0,width] x [0,height] and outlines overlay on top of it.
//
// Plot Y grows upward while image Y grows downward, so the rectangle is
// flipped vertically to line up with the image rows.
func NewFigure(g *grid.Grid, overlay detection.Rect, title, colorHex string) (*plot.Plot, error) {
	w, h := float64(g.Width), float64(g.Height)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px from bottom)"
	p.X.Min, p.X.Max = 0, w
	p.Y.Min, p.Y.Max = 0, h

	p.Add(plotter.NewImage(ToGray(g), 0, 0, w, h))

	if overlay.Empty() {
		return p, nil
	}

	c, err := ParseColor(colorHex)
	if err != nil {
		c, _ = ParseColor(DefaultOverlayColor)
	}

	x0, x1 := float64(overlay.X), float64(overlay.X+overlay.Width)
	top, bottom := h-float64(overlay.Y), h-float64(overlay.Y+overlay.Height)
	outline, err := plotter.NewLine(plotter.XYs{
		{X: x0, Y: top},
		{X: x1, Y: top},
		{X: x1, Y: bottom},
		{X: x0, Y: bottom},
		{X: x0, Y: top},
	})
	if err != nil {
		return nil, fmt.Errorf("overlay outline: %w", err)
	}
	outline.Color = c
	outline.Width = vg.Points(DefaultOverlayLineWidth)
	p.Add(outline)

	return p, nil
}
