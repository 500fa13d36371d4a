package flood

import "github.com/vovakirdan/tui-flood/internal/games/flood/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateFlooding    GameStateType = "flooding"
	StateResolving   GameStateType = "resolving"
	StateWon         GameStateType = "won"
	StateFailed      GameStateType = "failed"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string // "campaign" or "endless"
	LevelID   int    // 0 for endless
	Seed      int64
	MovesUsed int
	MaxMoves  int
	Origin    int    // Color of the top-left region
	GridHash  uint64 // FNV-1a of the live grid
	Streak    int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.phase == phaseFlooding:
		state = StateFlooding
	case g.phase == phaseResultDelay:
		state = StateResolving
	case g.phase == phaseResult && g.engine.Status() == core.StatusWon:
		state = StateWon
	case g.phase == phaseResult && g.engine.Status() == core.StatusFailed:
		state = StateFailed
	}

	var hash uint64
	if grid := g.engine.Grid(); grid != nil {
		hash = grid.Hash()
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		LevelID:   g.level.ID,
		Seed:      g.level.Seed,
		MovesUsed: g.engine.MovesUsed(),
		MaxMoves:  g.engine.MaxMoves(),
		Origin:    g.engine.OriginColor(),
		GridHash:  hash,
		Streak:    g.streak,
		State:     state,
	}
}
