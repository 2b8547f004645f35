package detection

import (
	"fmt"
	"strconv"

	"github.com/ironsheep/qr-locate/internal/grid"
)

// smoothDecimals is the number of fractional digits kept after each box pass.
const smoothDecimals = 3

// BoxAverage applies one 3x3 box average to g.
//
// Each interior cell becomes the mean of its 3x3 neighbourhood, summed row by
// row from the top-left, rounded half-to-even to 3 decimal places. The
// one-pixel border is left at 0.
func BoxAverage(g *grid.Grid) *grid.Grid {
	out := blankLike(g)
	forEachInterior(g, func(y, x int) {
		up, mid, down := g.Row(y-1), g.Row(y), g.Row(y+1)
		sum := up[x-1] + up[x] + up[x+1]
		sum += mid[x-1] + mid[x] + mid[x+1]
		sum += down[x-1] + down[x] + down[x+1]
		out.Set(y, x, roundTo(sum/9, smoothDecimals))
	})
	return out
}

// Smooth applies BoxAverage passes times, each pass consuming the previous
// output. With zero passes it returns a copy of g.
func Smooth(g *grid.Grid, passes int) (*grid.Grid, error) {
	if passes < 0 {
		return nil, fmt.Errorf("smoothing passes must be >= 0, got %d", passes)
	}
	out := g.Clone()
	for i := 0; i < passes; i++ {
		out = BoxAverage(out)
	}
	return out, nil
}

// roundTo rounds the exact binary value of v to the given number of decimal
// places, breaking exact ties to even.
func roundTo(v float64, decimals int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}
