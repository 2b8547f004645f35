// Package grid provides the rectangular pixel array shared by every stage of
// the QR locator pipeline.
//
// A Grid is stored row-major in a single backing slice. Cells are addressed as
// (y, x): y selects the row (vertical position, 0 = top) and x the column
// (horizontal position, 0 = left). Values are float64 throughout; stages that
// produce 8-bit output store whole numbers in the range 0-255.
package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidDimension is returned when a grid would have a non-positive width
// or height, or when grids that must share a shape do not.
var ErrInvalidDimension = errors.New("invalid dimension")

// Grid is a Width x Height array of numeric pixel values.
type Grid struct {
	Width  int
	Height int
	pix    []float64
}

// New creates a width x height grid with every cell set to fill.
//
// Returns an error wrapping ErrInvalidDimension if width or height is not
// positive.
func New(width, height int, fill float64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	pix := make([]float64, width*height)
	if fill != 0 {
		for i := range pix {
			pix[i] = fill
		}
	}
	return &Grid{Width: width, Height: height, pix: pix}, nil
}

// FromRows builds a grid from a slice of rows. Every row must have the same,
// non-zero length.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimension)
	}
	g, err := New(len(rows[0]), len(rows), 0)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimension, y, len(row), g.Width)
		}
		copy(g.Row(y), row)
	}
	return g, nil
}

// At returns the value at row y, column x.
func (g *Grid) At(y, x int) float64 {
	return g.pix[y*g.Width+x]
}

// Set stores v at row y, column x.
func (g *Grid) Set(y, x int, v float64) {
	g.pix[y*g.Width+x] = v
}

// Row returns row y. The slice aliases the grid's storage.
func (g *Grid) Row(y int) []float64 {
	return g.pix[y*g.Width : (y+1)*g.Width]
}

// Rows returns a copy of the grid as a slice of rows.
func (g *Grid) Rows() [][]float64 {
	rows := make([][]float64, g.Height)
	for y := range rows {
		rows[y] = append([]float64(nil), g.Row(y)...)
	}
	return rows
}

// Values returns the row-major backing slice. Callers must not modify it on
// grids they do not own.
func (g *Grid) Values() []float64 {
	return g.pix
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{
		Width:  g.Width,
		Height: g.Height,
		pix:    append([]float64(nil), g.pix...),
	}
}

// SameShape reports whether g and other have identical dimensions.
func (g *Grid) SameShape(other *Grid) bool {
	return other != nil && g.Width == other.Width && g.Height == other.Height
}

// Count returns the number of cells equal to v.
func (g *Grid) Count(v float64) int {
	n := 0
	for _, p := range g.pix {
		if p == v {
			n++
		}
	}
	return n
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.pix)
}

// CheckShapes returns an ErrInvalidDimension error unless every grid is
// non-nil and shares the shape of the first.
func CheckShapes(grids ...*Grid) error {
	if len(grids) == 0 {
		return nil
	}
	for i, g := range grids {
		if g == nil {
			return fmt.Errorf("%w: grid %d is nil", ErrInvalidDimension, i)
		}
		if !grids[0].SameShape(g) {
			return fmt.Errorf("%w: grid %d is %dx%d, want %dx%d",
				ErrInvalidDimension, i, g.Width, g.Height, grids[0].Width, grids[0].Height)
		}
	}
	return nil
}
