package detection

import "github.com/ironsheep/qr-locate/internal/grid"

// Binary output levels.
const (
	Background = 0.0
	Foreground = 255.0
)

// ThresholdGE binarizes g: cells below threshold become Background, all others
// (including cells equal to threshold) become Foreground. Border cells are
// processed like any other.
func ThresholdGE(g *grid.Grid, threshold float64) *grid.Grid {
	out := blankLike(g)
	ov := out.Values()
	for i, v := range g.Values() {
		if v < threshold {
			ov[i] = Background
		} else {
			ov[i] = Foreground
		}
	}
	return out
}
