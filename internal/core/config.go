package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for endless boards
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Outcome is the platform-level view of a session result.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeFailed
)

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	LevelID   int     // Campaign level id; 0 for endless boards
	MovesUsed int     // Accepted moves this session
	MaxMoves  int     // Move budget
	Outcome   Outcome // Set once the result overlay is shown
	Paused    bool
}

// GameOver reports whether the session has a final result.
func (s GameState) GameOver() bool {
	return s.Outcome != OutcomeNone
}

// Completion is emitted exactly once per won session so the host can
// record progress.
type Completion struct {
	LevelID   int
	MovesUsed int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State      GameState
	Completion *Completion // Non-nil on the tick a level is completed
}
