// Package core implements the flood-fill puzzle rules.
// It has no UI dependencies and is fully deterministic given its inputs.
package core

import (
	"sync"
	"sync/atomic"

	"github.com/zyedidia/generic/mapset"
)

// PlayState is the mutable state of one level session.
type PlayState struct {
	Original  *Grid // Snapshot used by Restart, never mutated
	Live      *Grid // Board mutated by moves
	MaxMoves  int
	MovesUsed int
	Status    Status
}

// Engine owns a single PlayState and applies moves to it.
//
// An accepted move leaves the engine in flight until Settle is called, so a
// host can present the recolor before the next move is taken. Calls to
// ApplyMove while in flight are rejected without side effects.
type Engine struct {
	mu       sync.Mutex
	state    *PlayState
	inFlight atomic.Bool
}

// NewEngine creates an engine with no level loaded.
func NewEngine() *Engine {
	return &Engine{}
}

// LoadLevel installs a fresh session from grid. The grid is deep-copied twice
// so neither the caller's copy nor the restart snapshot aliases the live board.
// An already-uniform grid starts in StatusWon with zero moves used.
// A nil grid unloads the engine.
func (e *Engine) LoadLevel(grid *Grid, maxMoves int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.inFlight.Store(false)
	if grid == nil {
		e.state = nil
		return
	}

	st := &PlayState{
		Original: grid.Clone(),
		Live:     grid.Clone(),
		MaxMoves: maxMoves,
		Status:   StatusPlaying,
	}
	if st.Live.Uniform() {
		st.Status = StatusWon
	}
	e.state = st
}

// ApplyMove floods the origin region with color.
//
// Rejected (no-op) when no level is loaded, the session is over, a move is in
// flight, color is out of range, or color equals the origin color.
func (e *Engine) ApplyMove(color int) MoveResult {
	if !e.inFlight.CompareAndSwap(false, true) {
		return MoveResult{Kind: MoveRejected, MovesUsed: e.MovesUsed()}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state
	if st == nil {
		e.inFlight.Store(false)
		return MoveResult{Kind: MoveRejected}
	}
	if !e.acceptable(st, color) {
		e.inFlight.Store(false)
		return MoveResult{Kind: MoveRejected, MovesUsed: st.MovesUsed}
	}

	flooded := floodFill(st.Live, color)
	st.MovesUsed++

	res := MoveResult{MovesUsed: st.MovesUsed, Flooded: flooded}
	switch {
	case st.Live.Uniform():
		st.Status = StatusWon
		res.Kind = MoveWon
	case st.MovesUsed >= st.MaxMoves:
		st.Status = StatusFailed
		res.Kind = MoveFailed
	default:
		res.Kind = MoveContinued
	}
	return res
}

// acceptable checks the move preconditions. Caller holds e.mu.
func (e *Engine) acceptable(st *PlayState, color int) bool {
	if st.Status != StatusPlaying || st.Live.Size == 0 {
		return false
	}
	if color < 0 || (st.Live.Colors > 0 && color >= st.Live.Colors) {
		return false
	}
	return color != st.Live.At(Origin)
}

// floodFill recolors the 4-connected region of the origin color reachable
// from (0,0) and returns the visited cells in BFS order.
func floodFill(g *Grid, color int) []FloodedCell {
	from := g.At(Origin)
	visited := mapset.New[Coord]()
	visited.Put(Origin)

	queue := []FloodedCell{{Coord: Origin}}
	var out []FloodedCell
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		g.Set(cur.Coord, color)
		out = append(out, cur)

		for _, n := range cur.Coord.Neighbors4() {
			if !g.InBounds(n) || visited.Has(n) || g.At(n) != from {
				continue
			}
			visited.Put(n)
			queue = append(queue, FloodedCell{Coord: n, Depth: cur.Depth + 1})
		}
	}
	return out
}

// Settle ends the in-flight period of the last accepted move.
func (e *Engine) Settle() {
	e.inFlight.Store(false)
}

// Restart resets the live board to the loaded snapshot.
// Returns false when no level is loaded.
func (e *Engine) Restart() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil {
		return false
	}
	e.state.Live = e.state.Original.Clone()
	e.state.MovesUsed = 0
	e.state.Status = StatusPlaying
	if e.state.Live.Uniform() {
		e.state.Status = StatusWon
	}
	e.inFlight.Store(false)
	return true
}

// Loaded reports whether a level is installed.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state != nil
}

// InFlight reports whether an accepted move has not been settled yet.
func (e *Engine) InFlight() bool {
	return e.inFlight.Load()
}

// OriginColor returns the color at (0,0), or -1 when nothing is loaded.
func (e *Engine) OriginColor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return -1
	}
	return e.state.Live.At(Origin)
}

// MovesUsed returns the number of accepted moves this session.
func (e *Engine) MovesUsed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return 0
	}
	return e.state.MovesUsed
}

// MaxMoves returns the move budget of the loaded level.
func (e *Engine) MaxMoves() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return 0
	}
	return e.state.MaxMoves
}

// MovesLeft returns the remaining budget, never negative.
func (e *Engine) MovesLeft() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return 0
	}
	if left := e.state.MaxMoves - e.state.MovesUsed; left > 0 {
		return left
	}
	return 0
}

// Status returns the session status. StatusPlaying when nothing is loaded.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return StatusPlaying
	}
	return e.state.Status
}

// Grid returns a copy of the live board, or nil when nothing is loaded.
func (e *Engine) Grid() *Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return nil
	}
	return e.state.Live.Clone()
}

// OriginalGrid returns a copy of the restart snapshot, or nil.
func (e *Engine) OriginalGrid() *Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return nil
	}
	return e.state.Original.Clone()
}
