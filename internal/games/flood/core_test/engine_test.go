package core_test

import (
	"sync"
	"testing"

	"github.com/vovakirdan/tui-flood/internal/games/flood/core"
)

// twoMoveRows is solved by picking 1 then 2.
var twoMoveRows = [][]int{
	{0, 0, 1, 2},
	{0, 1, 2, 2},
	{1, 2, 2, 2},
	{2, 2, 2, 2},
}

func newEngine(t *testing.T, rows [][]int, colors, maxMoves int) *core.Engine {
	t.Helper()
	e := core.NewEngine()
	e.LoadLevel(mustGrid(t, rows, colors), maxMoves)
	return e
}

// move applies a move and immediately settles it.
func move(e *core.Engine, color int) core.MoveResult {
	res := e.ApplyMove(color)
	e.Settle()
	return res
}

func TestEngineWinInTwoMoves(t *testing.T) {
	e := newEngine(t, twoMoveRows, 3, 6)

	res := move(e, 1)
	if res.Kind != core.MoveContinued {
		t.Fatalf("first move = %s, expected continued", res.Kind)
	}
	if len(res.Flooded) != 3 {
		t.Errorf("first move flooded %d cells, expected 3", len(res.Flooded))
	}

	res = move(e, 2)
	if res.Kind != core.MoveWon {
		t.Fatalf("second move = %s, expected won", res.Kind)
	}
	if res.MovesUsed != 2 {
		t.Errorf("MovesUsed = %d, expected 2", res.MovesUsed)
	}
	if e.Status() != core.StatusWon {
		t.Errorf("Status = %s, expected won", e.Status())
	}
}

func TestEngineFailOnBudget(t *testing.T) {
	e := newEngine(t, twoMoveRows, 3, 1)

	res := move(e, 1)
	if res.Kind != core.MoveFailed {
		t.Fatalf("move = %s, expected failed", res.Kind)
	}
	if e.Status() != core.StatusFailed {
		t.Errorf("Status = %s, expected failed", e.Status())
	}
	if e.MovesLeft() != 0 {
		t.Errorf("MovesLeft = %d, expected 0", e.MovesLeft())
	}
}

func TestEngineWinBeatsBudget(t *testing.T) {
	e := newEngine(t, twoMoveRows, 3, 2)
	move(e, 1)
	if res := move(e, 2); res.Kind != core.MoveWon {
		t.Errorf("winning move on last budget = %s, expected won", res.Kind)
	}
}

func TestEngineSameColorIsFree(t *testing.T) {
	e := newEngine(t, twoMoveRows, 3, 6)
	before := e.Grid()

	res := e.ApplyMove(0)
	if res.Kind != core.MoveRejected {
		t.Fatalf("same color = %s, expected rejected", res.Kind)
	}
	if e.MovesUsed() != 0 {
		t.Errorf("MovesUsed = %d, expected 0", e.MovesUsed())
	}
	if !e.Grid().Equal(before) {
		t.Error("grid changed on same-color pick")
	}
	if e.InFlight() {
		t.Error("rejected move should not leave the engine in flight")
	}
}

func TestEngineRejectsInvalidColors(t *testing.T) {
	e := newEngine(t, twoMoveRows, 3, 6)
	for _, c := range []int{-1, 3, 99} {
		if res := e.ApplyMove(c); res.Kind != core.MoveRejected {
			t.Errorf("ApplyMove(%d) = %s, expected rejected", c, res.Kind)
		}
	}
	if e.MovesUsed() != 0 {
		t.Errorf("MovesUsed = %d, expected 0", e.MovesUsed())
	}
}

func TestEngineNoLevelLoaded(t *testing.T) {
	e := core.NewEngine()
	if res := e.ApplyMove(1); res.Kind != core.MoveRejected {
		t.Errorf("ApplyMove without level = %s, expected rejected", res.Kind)
	}
	if e.Restart() {
		t.Error("Restart without level should report false")
	}
	if e.Grid() != nil {
		t.Error("Grid without level should be nil")
	}
	if e.OriginColor() != -1 {
		t.Errorf("OriginColor = %d, expected -1", e.OriginColor())
	}
}

func TestEngineInFlightGuard(t *testing.T) {
	e := newEngine(t, twoMoveRows, 3, 6)

	first := e.ApplyMove(1)
	if first.Kind != core.MoveContinued {
		t.Fatalf("first move = %s, expected continued", first.Kind)
	}
	if !e.InFlight() {
		t.Fatal("engine should be in flight until settled")
	}

	second := e.ApplyMove(2)
	if second.Kind != core.MoveRejected {
		t.Errorf("move while in flight = %s, expected rejected", second.Kind)
	}
	if e.MovesUsed() != 1 {
		t.Errorf("MovesUsed = %d, expected 1", e.MovesUsed())
	}

	e.Settle()
	if res := e.ApplyMove(2); res.Kind != core.MoveWon {
		t.Errorf("move after settle = %s, expected won", res.Kind)
	}
}

func TestEngineConcurrentMovesAcceptOne(t *testing.T) {
	e := newEngine(t, twoMoveRows, 3, 6)

	const workers = 16
	results := make([]core.MoveResult, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.ApplyMove(1)
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, r := range results {
		if r.Accepted() {
			accepted++
		}
	}
	if accepted != 1 {
		t.Errorf("accepted %d concurrent moves, expected 1", accepted)
	}
	if e.MovesUsed() != 1 {
		t.Errorf("MovesUsed = %d, expected 1", e.MovesUsed())
	}
}

func TestEngineTerminalLock(t *testing.T) {
	e := newEngine(t, twoMoveRows, 3, 1)
	move(e, 1)
	snapshot := e.Grid()

	for _, c := range []int{0, 2} {
		if res := move(e, c); res.Kind != core.MoveRejected {
			t.Errorf("move after fail = %s, expected rejected", res.Kind)
		}
	}
	if e.MovesUsed() != 1 {
		t.Errorf("MovesUsed = %d, expected 1", e.MovesUsed())
	}
	if !e.Grid().Equal(snapshot) {
		t.Error("grid changed after terminal status")
	}
}

func TestEngineRestartIdempotent(t *testing.T) {
	original := mustGrid(t, twoMoveRows, 3)
	e := core.NewEngine()
	e.LoadLevel(original, 6)

	for round := 0; round < 3; round++ {
		move(e, 1)
		move(e, 2)
		if !e.Restart() {
			t.Fatal("Restart should succeed with a level loaded")
		}
		if !e.Grid().Equal(original) {
			t.Errorf("round %d: grid differs from loaded grid after restart", round)
		}
		if e.MovesUsed() != 0 {
			t.Errorf("round %d: MovesUsed = %d, expected 0", round, e.MovesUsed())
		}
		if e.Status() != core.StatusPlaying {
			t.Errorf("round %d: Status = %s, expected playing", round, e.Status())
		}
	}
}

func TestEngineLoadDoesNotAlias(t *testing.T) {
	g := mustGrid(t, twoMoveRows, 3)
	e := core.NewEngine()
	e.LoadLevel(g, 6)

	g.Set(core.RC(0, 0), 2)
	if e.OriginColor() != 0 {
		t.Error("mutating the caller's grid changed the engine")
	}

	move(e, 1)
	if g.At(core.RC(0, 1)) != 0 {
		t.Error("engine move changed the caller's grid")
	}

	snap := e.Grid()
	snap.Set(core.RC(3, 3), 0)
	if e.Grid().At(core.RC(3, 3)) != 2 {
		t.Error("mutating a snapshot changed the live grid")
	}
}

func TestEngineUniformOnLoad(t *testing.T) {
	e := core.NewEngine()
	e.LoadLevel(core.Generate(4, 1, 7), 5)

	if e.Status() != core.StatusWon {
		t.Errorf("Status = %s, expected won for uniform grid", e.Status())
	}
	if e.MovesUsed() != 0 {
		t.Errorf("MovesUsed = %d, expected 0", e.MovesUsed())
	}
	if res := e.ApplyMove(1); res.Kind != core.MoveRejected {
		t.Errorf("move on uniform grid = %s, expected rejected", res.Kind)
	}
}

func TestEngineDiagonalsNotConnected(t *testing.T) {
	rows := [][]int{
		{0, 1, 0},
		{1, 0, 1},
		{0, 1, 0},
	}
	e := newEngine(t, rows, 2, 10)

	res := move(e, 1)
	if len(res.Flooded) != 1 {
		t.Errorf("flooded %d cells, expected only the origin", len(res.Flooded))
	}
	g := e.Grid()
	for _, c := range []core.Coord{core.RC(1, 1), core.RC(0, 2), core.RC(2, 0), core.RC(2, 2)} {
		if g.At(c) != 0 {
			t.Errorf("diagonal cell %s was recolored", c)
		}
	}
}

func TestEngineFloodDepths(t *testing.T) {
	rows := [][]int{
		{0, 0, 0},
		{1, 1, 0},
		{0, 0, 0},
	}
	e := newEngine(t, rows, 2, 10)

	res := move(e, 1)
	if len(res.Flooded) != 7 {
		t.Fatalf("flooded %d cells, expected 7", len(res.Flooded))
	}
	if res.MaxDepth() != 6 {
		t.Errorf("MaxDepth = %d, expected 6", res.MaxDepth())
	}
	if res.Flooded[0].Coord != core.Origin || res.Flooded[0].Depth != 0 {
		t.Errorf("first flooded cell = %+v, expected origin at depth 0", res.Flooded[0])
	}
	for _, fc := range res.Flooded {
		if e.OriginalGrid().At(fc.Coord) != 0 {
			t.Errorf("flooded cell (%d,%d) was not in the origin region", fc.Row, fc.Col)
		}
	}
}

// TestEngineConnectivity checks random boards: exactly the origin's
// 4-connected component changes color on each move.
func TestEngineConnectivity(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		g := core.Generate(7, 4, seed)
		e := core.NewEngine()
		e.LoadLevel(g, 100)
		rng := core.NewMulberry32(seed * 7)

		for step := 0; step < 12 && e.Status() == core.StatusPlaying; step++ {
			before := e.Grid()
			component := componentOf(before, core.Origin)
			color := rng.Intn(4)
			if color == before.At(core.Origin) {
				continue
			}

			res := move(e, color)
			after := e.Grid()
			if len(res.Flooded) != len(component) {
				t.Fatalf("seed %d: flooded %d cells, component has %d", seed, len(res.Flooded), len(component))
			}
			for i := range before.Cells {
				c := core.RC(i/before.Size, i%before.Size)
				if component[c] {
					if after.At(c) != color {
						t.Fatalf("seed %d: component cell %s not recolored", seed, c)
					}
				} else if after.At(c) != before.At(c) {
					t.Fatalf("seed %d: cell %s outside component changed", seed, c)
				}
			}
		}
	}
}

// componentOf returns the 4-connected same-color region containing start.
func componentOf(g *core.Grid, start core.Coord) map[core.Coord]bool {
	color := g.At(start)
	seen := map[core.Coord]bool{start: true}
	stack := []core.Coord{start}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range c.Neighbors4() {
			if g.InBounds(n) && !seen[n] && g.At(n) == color {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return seen
}
