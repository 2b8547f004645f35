package grid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		fill          float64
	}{
		{"single cell", 1, 1, 0},
		{"wide", 7, 2, 3.5},
		{"tall", 2, 9, 255},
		{"square zero", 4, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.width, tt.height, tt.fill)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			rows := g.Rows()
			if len(rows) != tt.height {
				t.Fatalf("rows: got %d, want %d", len(rows), tt.height)
			}
			for y, row := range rows {
				if len(row) != tt.width {
					t.Fatalf("row %d: got %d cells, want %d", y, len(row), tt.width)
				}
				for x, v := range row {
					if v != tt.fill {
						t.Errorf("cell (%d,%d): got %v, want %v", y, x, v, tt.fill)
					}
				}
			}
		})
	}
}

func TestNew_InvalidDimension(t *testing.T) {
	tests := []struct {
		width, height int
	}{
		{0, 5},
		{5, 0},
		{-1, 3},
		{3, -2},
		{0, 0},
	}

	for _, tt := range tests {
		_, err := New(tt.width, tt.height, 0)
		if !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("New(%d, %d): got %v, want ErrInvalidDimension", tt.width, tt.height, err)
		}
	}
}

func TestFromRows(t *testing.T) {
	rows := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}
	g, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	if g.Width != 3 || g.Height != 2 {
		t.Errorf("dimensions: got %dx%d, want 3x2", g.Width, g.Height)
	}
	if g.At(1, 0) != 4 {
		t.Errorf("At(1,0): got %v, want 4", g.At(1, 0))
	}
	if diff := cmp.Diff(rows, g.Rows()); diff != "" {
		t.Errorf("Rows mismatch (-want +got):\n%s", diff)
	}

	// The grid must not alias the input rows.
	rows[0][0] = 99
	if g.At(0, 0) != 1 {
		t.Error("FromRows aliased its input")
	}
}

func TestFromRows_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
	}{
		{"nil", nil},
		{"empty row", [][]float64{{}}},
		{"ragged", [][]float64{{1, 2}, {3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromRows(tt.rows); !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("got %v, want ErrInvalidDimension", err)
			}
		})
	}
}

func TestGrid_SetAndClone(t *testing.T) {
	g, _ := New(3, 3, 0)
	g.Set(2, 1, 42)
	if g.At(2, 1) != 42 {
		t.Fatalf("At(2,1): got %v, want 42", g.At(2, 1))
	}

	c := g.Clone()
	c.Set(2, 1, 7)
	if g.At(2, 1) != 42 {
		t.Error("Clone shares storage with the original")
	}
	if g.Count(42) != 1 || c.Count(42) != 0 {
		t.Errorf("Count: got %d and %d, want 1 and 0", g.Count(42), c.Count(42))
	}
}

func TestCheckShapes(t *testing.T) {
	a, _ := New(4, 3, 0)
	b, _ := New(4, 3, 1)
	c, _ := New(3, 4, 0)

	if err := CheckShapes(a, b); err != nil {
		t.Errorf("matching shapes: unexpected error %v", err)
	}
	if err := CheckShapes(a, c); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("mismatched shapes: got %v, want ErrInvalidDimension", err)
	}
	if err := CheckShapes(a, nil); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("nil grid: got %v, want ErrInvalidDimension", err)
	}
}

func TestKernel_Apply(t *testing.T) {
	g, _ := FromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})

	// A kernel with a single weight at [0][0] reads the neighbour at
	// (y+1, x+1) because the kernel is mirrored.
	k := Kernel{{1, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	if got := k.Apply(g, 1, 1); got != 9 {
		t.Errorf("mirrored corner: got %v, want 9", got)
	}

	ones := Kernel{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}
	if got := ones.Apply(g, 1, 1); got != 45 {
		t.Errorf("sum kernel: got %v, want 45", got)
	}
	if ones.Sum() != 9 {
		t.Errorf("Sum: got %d, want 9", ones.Sum())
	}
}

func TestKernel_ApplyFractional(t *testing.T) {
	g, err := FromRows([][]float64{
		{0.1, 0.7, 12.35},
		{3.3, 0.25, 1.1},
		{9.95, 4.05, 0.3},
	})
	if err != nil {
		t.Fatal(err)
	}
	k := Kernel{{1, 0, -1}, {2, 0, -2}, {1, 0, -1}}

	var want float64
	for ky := 0; ky < 3; ky++ {
		for kx := 0; kx < 3; kx++ {
			p := g.At(2-ky, 2-kx) * float64(k[ky][kx])
			want += p
		}
	}
	if got := k.Apply(g, 1, 1); got != want {
		t.Errorf("Apply: got %v, want %v", got, want)
	}
}
