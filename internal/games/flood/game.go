// Package flood provides the Flood color-fill puzzle in campaign and endless modes.
package flood

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/tui-flood/internal/config"
	platformcore "github.com/vovakirdan/tui-flood/internal/core"
	"github.com/vovakirdan/tui-flood/internal/games/flood/core"
	"github.com/vovakirdan/tui-flood/internal/games/flood/levels"
	"github.com/vovakirdan/tui-flood/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Registry ids.
const (
	IDCampaign = "flood"
	IDEndless  = "flood_endless"
)

// phase is the presentation phase layered on top of the engine status.
type phase int

const (
	phasePlaying     phase = iota
	phaseFlooding          // Wave animation running; engine in flight
	phaseResultDelay       // Terminal status reached, overlay not shown yet
	phaseResult            // Win/fail overlay visible
)

// Game implements the Flood puzzle.
type Game struct {
	mode     Mode
	engine   *core.Engine
	catalog  *levels.Catalog
	cfg      config.Config
	rng      *rand.Rand
	tick     uint64
	levelID  int // Requested campaign level; 0 = first
	level    levels.LevelSpec
	colors   int
	streak   int // Endless wins in a row
	boardNum int // Endless boards played
	diff     *config.DifficultyManager

	// Screen dimensions
	screenW int
	screenH int

	phase       phase
	cursor      int
	paused      bool
	tooSmall    bool
	resultTicks int
	completed   bool // Completion already emitted for this session

	wave waveState
}

// Package-level defaults shared by every new game.
var (
	defaultsMu     sync.RWMutex
	defaultCatalog *levels.Catalog
	defaultConfig  = config.Default()
)

// SetCatalog replaces the campaign catalog used by new games.
func SetCatalog(c *levels.Catalog) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultCatalog = c
}

// Catalog returns the campaign catalog used by new games.
func Catalog() *levels.Catalog {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	if defaultCatalog == nil {
		defaultCatalog = levels.Default()
	}
	return defaultCatalog
}

// SetConfig sets the animation, scoring and endless settings for new games.
func SetConfig(cfg config.Config) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultConfig = cfg
}

func currentConfig() config.Config {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaultConfig
}

func init() {
	registry.Register(IDCampaign, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}

// New creates a campaign game.
func New() *Game {
	return newGame(ModeCampaign)
}

// NewEndless creates an endless game of generated boards.
func NewEndless() *Game {
	return newGame(ModeEndless)
}

func newGame(mode Mode) *Game {
	cfg := currentConfig()
	return &Game{
		mode:    mode,
		engine:  core.NewEngine(),
		catalog: Catalog(),
		cfg:     cfg,
		diff:    config.NewDifficultyManager(cfg.Endless),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Flood (Endless)"
	}
	return "Flood"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// SetLevel selects the campaign level loaded by the next Reset.
// Unknown ids return an error wrapping levels.ErrLevelNotFound and change nothing.
func (g *Game) SetLevel(id int) error {
	if !g.catalog.Has(id) {
		return fmt.Errorf("%w: %d", levels.ErrLevelNotFound, id)
	}
	g.levelID = id
	return nil
}

// Level returns the current campaign level. Endless boards report id 0.
func (g *Game) Level() levels.LevelSpec {
	return g.level
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.streak = 0
	g.boardNum = 0
	g.cursor = 0

	if g.mode == ModeEndless {
		g.loadEndless()
	} else {
		id := g.levelID
		if id == 0 {
			id = g.catalog.First().ID
		}
		g.loadCampaign(id)
	}
}

// loadCampaign loads a catalog level. The id is known to exist.
func (g *Game) loadCampaign(id int) {
	grid, spec, err := g.catalog.Build(id)
	if err != nil {
		grid, spec, _ = g.catalog.Build(g.catalog.First().ID)
	}
	g.level = spec
	g.colors = spec.Colors
	g.startSession(grid, spec.MaxMoves)
}

// loadEndless generates the next endless board for the current streak.
func (g *Game) loadEndless() {
	p := g.diff.Params(g.streak)
	g.boardNum++
	g.level = levels.LevelSpec{
		GridSize: p.GridSize,
		Colors:   p.Colors,
		MaxMoves: p.MaxMoves,
		Seed:     g.rng.Int63n(1 << 31),
	}
	g.colors = p.Colors
	g.startSession(core.Generate(p.GridSize, p.Colors, g.level.Seed), p.MaxMoves)
}

// startSession hands a fresh board to the engine and resets presentation state.
func (g *Game) startSession(grid *core.Grid, maxMoves int) {
	g.engine.LoadLevel(grid, maxMoves)
	g.completed = false
	g.resultTicks = 0
	g.wave.stop()
	g.cursor = clampCursor(g.cursor, g.colors)
	g.phase = phasePlaying
	if g.engine.Status().Terminal() {
		// Already uniform: nothing to play.
		g.phase = phaseResultDelay
	}
	g.checkScreenSize()
}

// restartLevel replays the current board from its original layout.
func (g *Game) restartLevel() {
	if !g.engine.Restart() {
		return
	}
	g.wave.stop()
	if g.mode == ModeCampaign {
		// A replayed win is recorded again; endless streaks count each board once.
		g.completed = false
	}
	g.resultTicks = 0
	g.phase = phasePlaying
	if g.engine.Status().Terminal() {
		g.phase = phaseResultDelay
	}
}

// nextLevel advances after a win: the next catalog level, or a new endless board.
func (g *Game) nextLevel() bool {
	if g.mode == ModeEndless {
		g.loadEndless()
		return true
	}
	next, ok := g.catalog.Next(g.level.ID)
	if !ok {
		return false
	}
	g.loadCampaign(next.ID)
	return true
}

// HasNext reports whether a level follows the current one.
func (g *Game) HasNext() bool {
	if g.mode == ModeEndless {
		return true
	}
	_, ok := g.catalog.Next(g.level.ID)
	return ok
}

// Resize updates the screen size without restarting the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the current board.
func (g *Game) checkScreenSize() {
	minW, minH := g.minScreenSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) && g.phase != phaseResult {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	switch g.phase {
	case phaseResult:
		g.handleResultInput(in)
		return platformcore.StepResult{State: g.State()}

	case phaseResultDelay:
		g.resultTicks++
		if g.resultTicks < g.cfg.Animation.ResultDelayTicks {
			return platformcore.StepResult{State: g.State()}
		}
		return g.showResult()
	}

	if in.Has(platformcore.ActionRestart) {
		g.restartLevel()
		return platformcore.StepResult{State: g.State()}
	}

	if g.phase == phaseFlooding {
		g.advanceWave()
		return platformcore.StepResult{State: g.State()}
	}

	g.handlePlayInput(in)
	return platformcore.StepResult{State: g.State()}
}

// handlePlayInput moves the color cursor and submits picks to the engine.
func (g *Game) handlePlayInput(in platformcore.InputFrame) {
	switch {
	case in.Has(platformcore.ActionLeft):
		g.cursor = (g.cursor - 1 + g.colors) % g.colors
	case in.Has(platformcore.ActionRight):
		g.cursor = (g.cursor + 1) % g.colors
	}

	color, picked := in.PickedColor()
	if picked {
		if color >= g.colors {
			return
		}
		g.cursor = color
	} else if in.Has(platformcore.ActionConfirm) {
		color, picked = g.cursor, true
	}
	if picked {
		g.pick(color)
	}
}

// pick submits a color. Rejected picks change nothing.
func (g *Game) pick(color int) {
	from := g.engine.OriginColor()
	res := g.engine.ApplyMove(color)
	if !res.Accepted() {
		return
	}
	g.startWave(res, from, color)
	if g.cfg.Animation.FloodTicks <= 0 {
		g.finishWave()
	}
}

// showResult reveals the overlay and emits the completion once per won session.
func (g *Game) showResult() platformcore.StepResult {
	g.phase = phaseResult
	status := g.engine.Status()

	var completion *platformcore.Completion
	if status == core.StatusWon && !g.completed {
		g.completed = true
		if g.mode == ModeEndless {
			g.streak++
		} else {
			completion = &platformcore.Completion{
				LevelID:   g.level.ID,
				MovesUsed: g.engine.MovesUsed(),
			}
		}
	}
	if status == core.StatusFailed && g.mode == ModeEndless {
		g.streak = 0
	}
	return platformcore.StepResult{State: g.State(), Completion: completion}
}

// handleResultInput handles replay and next-level choices on the overlay.
func (g *Game) handleResultInput(in platformcore.InputFrame) {
	won := g.engine.Status() == core.StatusWon
	switch {
	case in.Has(platformcore.ActionNext):
		if won || g.mode == ModeEndless {
			g.nextLevel()
		}
	case in.Has(platformcore.ActionConfirm):
		if won && g.nextLevel() {
			return
		}
		g.restartLevel()
	case in.Has(platformcore.ActionRestart):
		g.restartLevel()
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	outcome := platformcore.OutcomeNone
	if g.phase == phaseResult {
		switch g.engine.Status() {
		case core.StatusWon:
			outcome = platformcore.OutcomeWon
		case core.StatusFailed:
			outcome = platformcore.OutcomeFailed
		}
	}
	return platformcore.GameState{
		LevelID:   g.level.ID,
		MovesUsed: g.engine.MovesUsed(),
		MaxMoves:  g.engine.MaxMoves(),
		Outcome:   outcome,
		Paused:    g.paused || g.tooSmall,
	}
}

// Streak returns the endless win streak.
func (g *Game) Streak() int {
	return g.streak
}

// Perfect reports whether the moves used earn the "Amazing" rating.
func (g *Game) Perfect() bool {
	return g.engine.MovesUsed() <= g.level.PerfectMoves(g.cfg.Gameplay.PerfectRatio)
}

// Danger reports whether the move budget is nearly spent.
func (g *Game) Danger() bool {
	left := g.engine.MovesLeft()
	return left > 0 && left <= g.cfg.Gameplay.DangerMoves
}

func clampCursor(cursor, colors int) int {
	if colors <= 0 {
		return 0
	}
	return platformcore.Clamp(cursor, 0, colors-1)
}
