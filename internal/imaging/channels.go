package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/qr-locate/internal/grid"
)

// SplitChannels converts img into three 8-bit grids holding its red, green
// and blue components. Alpha is discarded; the colour values are the
// premultiplied components of the image's RGBA form.
//
// Returns an error wrapping grid.ErrInvalidDimension for an empty image.
func SplitChannels(img image.Image) (r, g, b *grid.Grid, err error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if r, err = grid.New(width, height, 0); err != nil {
		return nil, nil, nil, err
	}
	g, _ = grid.New(width, height, 0)
	b, _ = grid.New(width, height, 0)

	rgba := clone.AsRGBA(img)
	for y := 0; y < height; y++ {
		rowR, rowG, rowB := r.Row(y), g.Row(y), b.Row(y)
		off := y * rgba.Stride
		for x := 0; x < width; x++ {
			i := off + x*4
			rowR[x] = float64(rgba.Pix[i])
			rowG[x] = float64(rgba.Pix[i+1])
			rowB[x] = float64(rgba.Pix[i+2])
		}
	}
	return r, g, b, nil
}

// ToGray converts a grid into an 8-bit greyscale image. Cells are rounded
// half-to-even and clamped to 0-255.
func ToGray(g *grid.Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		row := g.Row(y)
		for x, v := range row {
			img.SetGray(x, y, color.Gray{Y: toByte(v)})
		}
	}
	return img
}

// FromGray converts an 8-bit greyscale image into a grid.
func FromGray(img *image.Gray) (*grid.Grid, error) {
	bounds := img.Bounds()
	g, err := grid.New(bounds.Dx(), bounds.Dy(), 0)
	if err != nil {
		return nil, err
	}
	for y := 0; y < g.Height; y++ {
		row := g.Row(y)
		for x := range row {
			row[x] = float64(img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
		}
	}
	return g, nil
}

func toByte(v float64) uint8 {
	v = math.RoundToEven(v)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
