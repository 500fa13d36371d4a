package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flood/internal/core"
	"github.com/vovakirdan/tui-flood/internal/games/flood"
	"github.com/vovakirdan/tui-flood/internal/games/flood/levels"
	"github.com/vovakirdan/tui-flood/internal/progress"
	"github.com/vovakirdan/tui-flood/internal/registry"
)

// SessionOptions wires a session to its stores and settings.
// Levels come from the flood package catalog.
type SessionOptions struct {
	Profiles *progress.Manager
	Board    Leaderboard // nil hides the board contents
	Styles   Styles
	Logger   *log.Logger
	Runtime  core.RuntimeConfig
}

// screen is the active screen of a session.
type screen int

const (
	screenProfiles screen = iota
	screenLevels
	screenGame
	screenBoard
)

// progressLoadedMsg reports that a profile's progress has been read.
type progressLoadedMsg struct {
	profile progress.Profile
	err     error
}

// levelSetter is implemented by games that can start at a chosen level.
type levelSetter interface {
	SetLevel(id int) error
}

// SessionModel manages the full flow: profiles -> levels -> game -> levels.
// It is the top-level model for both local and SSH sessions.
type SessionModel struct {
	opts      SessionOptions
	catalog   *levels.Catalog
	config    core.RuntimeConfig
	screen    screen
	profiles  ProfileMenuModel
	levels    LevelMenuModel
	board     ProgressBoardModel
	gameModel *GameModel
	quitting  bool
}

// NewSessionModel creates a session starting at the profile picker.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Styles == nil {
		opts.Styles = DefaultStyles()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	cfg := opts.Runtime
	return SessionModel{
		opts:     opts,
		catalog:  flood.Catalog(),
		config:   cfg,
		profiles: NewProfileMenuModel(opts.Profiles, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.profiles.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case progressLoadedMsg:
		return m.openLevels(msg)

	case CompletionSavedMsg:
		if m.screen != screenGame {
			if msg.Err != nil {
				m.opts.Logger.Error("could not save progress", "level", msg.Completion.LevelID, "error", msg.Err)
			}
			return m, nil
		}

	case TickMsg:
		if m.screen != screenGame {
			return m, nil
		}
	}

	switch m.screen {
	case screenLevels:
		return m.updateLevels(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenBoard:
		return m.updateBoard(msg)
	default:
		return m.updateProfiles(msg)
	}
}

// updateProfiles handles updates on the profile picker.
func (m SessionModel) updateProfiles(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.profiles.Update(msg)
	if pm, ok := next.(ProfileMenuModel); ok {
		m.profiles = pm
	}

	if m.profiles.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if p := m.profiles.Selected(); p != nil {
		selected := *p
		m.profiles.selected = nil
		m.opts.Profiles.SetActive(&selected)
		m.opts.Logger.Info("profile selected", "profile", selected.ID, "name", selected.Name)
		return m, m.loadProgressCmd(selected)
	}
	return m, cmd
}

func (m SessionModel) loadProgressCmd(p progress.Profile) tea.Cmd {
	profiles := m.opts.Profiles
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		_, err := profiles.LoadProgress(ctx, p.ID)
		return progressLoadedMsg{profile: p, err: err}
	}
}

// openLevels shows the level select once progress is loaded.
func (m SessionModel) openLevels(msg progressLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.opts.Logger.Warn("could not load progress", "profile", msg.profile.ID, "error", msg.err)
	}
	m.levels = NewLevelMenuModel(m.opts.Profiles, msg.profile, m.catalog, m.config.ScreenW, m.config.ScreenH)
	m.screen = screenLevels
	return m, m.levels.Init()
}

// updateLevels handles updates on the level select.
func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.levels.Update(msg)
	if lm, ok := next.(LevelMenuModel); ok {
		m.levels = lm
	}

	switch {
	case m.levels.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.levels.WantsBack():
		m.opts.Profiles.SetActive(nil)
		m.profiles = NewProfileMenuModel(m.opts.Profiles, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenProfiles
		return m, m.profiles.Init()

	case m.levels.WantsProgress():
		m.levels.progress = false
		start := 0
		if m.levels.cursor < len(m.levels.specs) {
			start = m.levels.specs[m.levels.cursor].ID
		}
		m.board = NewProgressBoardModel(m.opts.Board, m.catalog, m.levels.profile.ID, start, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenBoard
		return m, m.board.Init()
	}

	if sel := m.levels.Selected(); sel != nil {
		m.levels.selection = nil
		return m.startGame(*sel)
	}
	return m, cmd
}

// startGame creates the game for a selection and switches to it.
func (m SessionModel) startGame(sel LevelSelection) (tea.Model, tea.Cmd) {
	game, err := NewFloodGame(sel)
	if err != nil {
		m.opts.Logger.Error("could not start level", "level", sel.Level, "error", err)
		m.levels.notice = "That level could not be started."
		return m, nil
	}

	gm := NewGameModel(game, m.opts.Profiles, m.opts.Styles, m.opts.Logger, m.config)
	m.gameModel = &gm
	m.screen = screenGame
	return m, m.gameModel.Init()
}

// NewFloodGame creates a campaign game at the selected level, or an endless game.
func NewFloodGame(sel LevelSelection) (registry.Game, error) {
	if sel.Endless {
		return registry.Create(flood.IDEndless)
	}
	game, err := registry.Create(flood.IDCampaign)
	if err != nil {
		return nil, err
	}
	ls, ok := game.(levelSetter)
	if !ok {
		return nil, fmt.Errorf("game %q cannot select levels", game.ID())
	}
	if err := ls.SetLevel(sel.Level); err != nil {
		return nil, err
	}
	return game, nil
}

// updateGame handles updates while playing.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.gameModel = &gm
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		profile := m.levels.profile
		m.levels = NewLevelMenuModel(m.opts.Profiles, profile, m.catalog, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenLevels
		// Pending saves still report back through the session.
		return m, cmd
	}
	return m, cmd
}

// updateBoard handles updates on the progress board.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if bm, ok := next.(ProgressBoardModel); ok {
		m.board = bm
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.screen = screenLevels
		return m, nil
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenLevels:
		return m.levels.View()
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case screenBoard:
		return m.board.View()
	}
	return m.profiles.View()
}

// RunSession runs the full profile, level and game flow in the local terminal.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
