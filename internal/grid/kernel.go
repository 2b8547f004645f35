package grid

// Kernel is a 3x3 matrix of signed integer convolution weights. It is an array
// type, so values are copied on assignment and a Kernel is never shared.
type Kernel [3][3]int

// Sum returns the sum of all weights.
func (k Kernel) Sum() int {
	s := 0
	for _, row := range k {
		for _, w := range row {
			s += w
		}
	}
	return s
}

// Apply accumulates the kernel response at interior cell (y, x) of g.
//
// The kernel is applied mirrored relative to the neighbourhood:
//
//	sum over k, l in 0..2 of g[y+1-k][x+1-l] * K[k][l]
//
// Each product is rounded before it is accumulated, so results do not depend
// on whether the platform fuses multiply-add.
//
// The caller must keep (y, x) at least one cell away from every border.
func (k Kernel) Apply(g *Grid, y, x int) float64 {
	var res float64
	for ky := 0; ky < 3; ky++ {
		row := g.Row(y + 1 - ky)
		for kx := 0; kx < 3; kx++ {
			res += float64(row[x+1-kx] * float64(k[ky][kx]))
		}
	}
	return res
}
