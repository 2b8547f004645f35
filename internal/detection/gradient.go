package detection

import (
	"math"

	"github.com/ironsheep/qr-locate/internal/grid"
)

// Sobel kernels. Both responses are divided by sobelScale before the absolute
// value is taken.
var (
	SobelVertical = grid.Kernel{
		{1, 0, -1},
		{2, 0, -2},
		{1, 0, -1},
	}
	SobelHorizontal = grid.Kernel{
		{1, 2, 1},
		{0, 0, 0},
		{-1, -2, -1},
	}
)

const sobelScale = 8.0

// VerticalEdges returns |Sobel_v / 8| for every interior cell of g.
// The one-pixel border is left at 0.
func VerticalEdges(g *grid.Grid) *grid.Grid {
	return convolveAbs(g, SobelVertical)
}

// HorizontalEdges returns |Sobel_h / 8| for every interior cell of g.
// The one-pixel border is left at 0.
func HorizontalEdges(g *grid.Grid) *grid.Grid {
	return convolveAbs(g, SobelHorizontal)
}

// EdgeMagnitude returns |Sobel_v / 8| + |Sobel_h / 8| for every interior cell
// of g. The one-pixel border is left at 0.
func EdgeMagnitude(g *grid.Grid) *grid.Grid {
	out := blankLike(g)
	forEachInterior(g, func(y, x int) {
		v := SobelVertical.Apply(g, y, x)
		h := SobelHorizontal.Apply(g, y, x)
		out.Set(y, x, math.Abs(v/sobelScale)+math.Abs(h/sobelScale))
	})
	return out
}

func convolveAbs(g *grid.Grid, k grid.Kernel) *grid.Grid {
	out := blankLike(g)
	forEachInterior(g, func(y, x int) {
		out.Set(y, x, math.Abs(k.Apply(g, y, x)/sobelScale))
	})
	return out
}

// blankLike allocates a zero grid with the shape of g. g is always a valid
// grid here, so New cannot fail.
func blankLike(g *grid.Grid) *grid.Grid {
	out, _ := grid.New(g.Width, g.Height, 0)
	return out
}

// forEachInterior calls fn for every cell that has a full 3x3 neighbourhood,
// row by row. Grids narrower or shorter than 3 have no interior.
func forEachInterior(g *grid.Grid, fn func(y, x int)) {
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			fn(y, x)
		}
	}
}
