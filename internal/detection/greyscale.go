package detection

import (
	"fmt"
	"math"

	"github.com/ironsheep/qr-locate/internal/grid"
)

// Luminance weights (ITU-R BT.601).
const (
	lumaRed   = 0.299
	lumaGreen = 0.587
	lumaBlue  = 0.114
)

// Greyscale converts three equal-shaped 8-bit channel grids into a single
// luminance grid.
//
// Each output cell is RoundToEven(0.299*r + 0.587*g + 0.114*b). For inputs in
// 0-255 the output stays within 0-255, so no clamp is applied.
//
// Returns an error wrapping grid.ErrInvalidDimension if any channel is nil or
// the channel shapes differ.
func Greyscale(r, g, b *grid.Grid) (*grid.Grid, error) {
	if err := grid.CheckShapes(r, g, b); err != nil {
		return nil, fmt.Errorf("greyscale channels: %w", err)
	}

	out, err := grid.New(r.Width, r.Height, 0)
	if err != nil {
		return nil, err
	}

	rv, gv, bv, ov := r.Values(), g.Values(), b.Values(), out.Values()
	for i := range ov {
		// The conversions keep each product rounded on its own so the sum is
		// never fused into an FMA.
		ov[i] = math.RoundToEven(float64(lumaRed*rv[i]) + float64(lumaGreen*gv[i]) + float64(lumaBlue*bv[i]))
	}
	return out, nil
}
