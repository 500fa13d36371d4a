package core

import (
	"fmt"
	"hash/fnv"
)

// Grid is a square board of color indices.
// Cells are stored in row-major order: index = row*Size + col.
type Grid struct {
	Size   int   // Width and height of the board
	Colors int   // Palette size the grid was built for; 0 if unknown
	Cells  []int // Flat array of color indices, length Size*Size
}

// NewGrid creates a size x size grid with every cell set to color 0.
func NewGrid(size, colors int) *Grid {
	if size < 0 {
		size = 0
	}
	return &Grid{
		Size:   size,
		Colors: colors,
		Cells:  make([]int, size*size),
	}
}

// NewGridFromRows builds a grid from explicit rows.
// Rows must form a square and every value must lie in [0, colors).
func NewGridFromRows(rows [][]int, colors int) (*Grid, error) {
	size := len(rows)
	if size == 0 {
		return nil, ValidationError{Code: "EMPTY_GRID", Message: "grid has no rows"}
	}
	if colors < 1 {
		return nil, ValidationError{Code: "INVALID_COLORS", Message: fmt.Sprintf("color count %d must be at least 1", colors)}
	}

	g := NewGrid(size, colors)
	for r, row := range rows {
		if len(row) != size {
			return nil, ValidationError{
				Code:    "NOT_SQUARE",
				Message: fmt.Sprintf("row %d has %d cells, expected %d", r, len(row), size),
			}
		}
		for c, v := range row {
			if v < 0 || v >= colors {
				return nil, ValidationError{
					Code:    "INVALID_COLOR",
					Message: fmt.Sprintf("cell %s has color %d outside [0,%d)", RC(r, c), v, colors),
				}
			}
			g.Cells[r*size+c] = v
		}
	}
	return g, nil
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Row*g.Size + c.Col
}

// InBounds returns true if the coordinate is on the board.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Size && c.Col >= 0 && c.Col < g.Size
}

// At returns the color at c, or -1 if out of bounds.
func (g *Grid) At(c Coord) int {
	if !g.InBounds(c) {
		return -1
	}
	return g.Cells[g.index(c)]
}

// Set recolors the cell at c. Out-of-bounds coordinates are ignored.
func (g *Grid) Set(c Coord, color int) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = color
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]int, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		Size:   g.Size,
		Colors: g.Colors,
		Cells:  cells,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.Size != other.Size || len(g.Cells) != len(other.Cells) {
		return false
	}
	for i, v := range g.Cells {
		if v != other.Cells[i] {
			return false
		}
	}
	return true
}

// Uniform reports whether every cell holds the same color.
// An empty grid is considered uniform.
func (g *Grid) Uniform() bool {
	for _, v := range g.Cells {
		if v != g.Cells[0] {
			return false
		}
	}
	return true
}

// Rows returns the grid as a fresh 2D slice.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.Size)
	for r := range rows {
		rows[r] = make([]int, g.Size)
		copy(rows[r], g.Cells[r*g.Size:(r+1)*g.Size])
	}
	return rows
}

// CountByColor returns how many cells hold each color.
func (g *Grid) CountByColor() map[int]int {
	counts := make(map[int]int)
	for _, v := range g.Cells {
		counts[v]++
	}
	return counts
}

// Hash returns an FNV-1a digest of the board contents.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, len(g.Cells)+1)
	buf = append(buf, byte(g.Size))
	for _, v := range g.Cells {
		buf = append(buf, byte(v))
	}
	//nolint:errcheck // hash.Hash never returns an error
	h.Write(buf)
	return h.Sum64()
}
