package core

// Generate builds a board from a level descriptor.
// The result is a pure function of (gridSize, colorCount, seed): cells are
// filled row-major, each one floor(rand * colorCount) from a fresh Mulberry32
// stream. Values below 1 are clamped to 1 so degenerate input still yields a
// valid grid.
func Generate(gridSize, colorCount int, seed int64) *Grid {
	if gridSize < 1 {
		gridSize = 1
	}
	if colorCount < 1 {
		colorCount = 1
	}

	rng := NewMulberry32(seed)
	g := NewGrid(gridSize, colorCount)
	for i := range g.Cells {
		g.Cells[i] = rng.Intn(colorCount)
	}
	return g
}
