package core

import "fmt"

// Coord addresses a cell on the board.
// Row increases downward, Col increases to the right.
type Coord struct {
	Row int
	Col int
}

// RC is a convenience constructor for Coord.
func RC(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// Origin is the anchor cell of the player's region.
var Origin = Coord{}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns a new Coord offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// neighborDeltas lists the 4-connected offsets: up, down, left, right.
// Diagonals are never connected.
var neighborDeltas = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Neighbors4 returns the orthogonal neighbors of c, without bounds checking.
func (c Coord) Neighbors4() [4]Coord {
	var out [4]Coord
	for i, d := range neighborDeltas {
		out[i] = c.Add(d[0], d[1])
	}
	return out
}
