package detection

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/qr-locate/internal/grid"
)

// ScaleTo0And255 rescales g so that its global minimum maps to 0 and its
// global maximum to 255, rounding each cell half-to-even.
//
// The minimum and maximum are taken over every cell, border included, before
// any output is written. A flat grid (max == min) yields an all-zero grid.
func ScaleTo0And255(g *grid.Grid) *grid.Grid {
	out := blankLike(g)

	vals := g.Values()
	lo, hi := floats.Min(vals), floats.Max(vals)
	if hi == lo {
		return out
	}

	span := hi - lo
	ov := out.Values()
	for i, v := range vals {
		ov[i] = math.RoundToEven((v - lo) / span * 255)
	}
	return out
}
