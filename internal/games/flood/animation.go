package flood

import (
	"github.com/vovakirdan/tui-flood/internal/games/flood/core"
)

// waveState animates the cells recolored by the last accepted move.
// Cells are revealed in BFS depth order; unrevealed cells keep the old color.
type waveState struct {
	active   bool
	ticks    int
	from     int   // Color the region had before the move
	to       int   // Color picked
	size     int   // Grid size for indexing depth
	depth    []int // Per-cell BFS depth, -1 for cells the move did not touch
	maxDepth int
}

// stop cancels a running wave.
func (w *waveState) stop() {
	w.active = false
	w.ticks = 0
	w.depth = nil
	w.maxDepth = 0
}

// startWave begins the wave for an accepted move.
func (g *Game) startWave(res core.MoveResult, from, to int) {
	size := g.level.GridSize
	depth := make([]int, size*size)
	for i := range depth {
		depth[i] = -1
	}
	for _, fc := range res.Flooded {
		depth[fc.Row*size+fc.Col] = fc.Depth
	}
	g.wave = waveState{
		active:   true,
		from:     from,
		to:       to,
		size:     size,
		depth:    depth,
		maxDepth: res.MaxDepth(),
	}
	g.phase = phaseFlooding
}

// advanceWave moves the wave forward one tick and settles the engine at the end.
func (g *Game) advanceWave() {
	if !g.wave.active {
		g.finishWave()
		return
	}
	g.wave.ticks++
	if g.wave.ticks >= g.cfg.Animation.FloodTicks {
		g.finishWave()
	}
}

// finishWave releases the engine guard and moves to the next phase.
func (g *Game) finishWave() {
	g.wave.stop()
	g.engine.Settle()
	if g.engine.Status().Terminal() {
		g.phase = phaseResultDelay
		g.resultTicks = 0
		return
	}
	g.phase = phasePlaying
}

// progress returns the wave completion in [0, 1].
func (w *waveState) progress(duration int) float64 {
	if !w.active || duration <= 0 {
		return 1
	}
	p := float64(w.ticks) / float64(duration)
	if p > 1 {
		p = 1
	}
	return p
}

// revealedDepth returns how many BFS layers have taken the new color.
func (w *waveState) revealedDepth(duration int) int {
	t := easeOutQuad(w.progress(duration))
	return int(t * float64(w.maxDepth+1))
}

// colorAt returns the color to draw for a cell while the wave runs.
func (w *waveState) colorAt(row, col, live, duration int) int {
	if !w.active || w.depth == nil {
		return live
	}
	d := w.depth[row*w.size+col]
	if d >= 0 && d >= w.revealedDepth(duration) {
		return w.from
	}
	return live
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
