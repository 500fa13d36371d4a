package core

// Status is the lifecycle state of a play session.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusFailed
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has ended.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusFailed
}

// MoveKind classifies the outcome of ApplyMove.
type MoveKind int

const (
	MoveRejected MoveKind = iota // No state change
	MoveContinued
	MoveWon
	MoveFailed
)

// String returns a human-readable name for the move kind.
func (k MoveKind) String() string {
	switch k {
	case MoveRejected:
		return "rejected"
	case MoveContinued:
		return "continued"
	case MoveWon:
		return "won"
	case MoveFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FloodedCell is one recolored cell with its BFS distance from the origin.
type FloodedCell struct {
	Coord
	Depth int
}

// MoveResult is returned by Engine.ApplyMove.
type MoveResult struct {
	Kind      MoveKind
	MovesUsed int           // Moves used after this call
	Flooded   []FloodedCell // Recolored cells in visit order; nil when rejected
}

// Accepted reports whether the move changed the board.
func (r MoveResult) Accepted() bool {
	return r.Kind != MoveRejected
}

// MaxDepth returns the largest BFS distance among flooded cells.
func (r MoveResult) MaxDepth() int {
	max := 0
	for _, fc := range r.Flooded {
		if fc.Depth > max {
			max = fc.Depth
		}
	}
	return max
}
