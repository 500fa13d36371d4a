package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flood/internal/games/flood/levels"
	"github.com/vovakirdan/tui-flood/internal/storage"
)

const maxBoardEntries = 20

// Leaderboard lists the fewest-move solves of a level.
type Leaderboard interface {
	Leaderboard(ctx context.Context, levelID, limit int) ([]storage.LeaderboardEntry, error)
}

// BoardKeyMap defines the key bindings for the progress board.
type BoardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevLevel, k.NextLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevLevel, k.NextLevel},
		{k.Back, k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left/h", "prev level"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right/l", "next level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProgressBoardModel shows the fewest-move solves per level.
type ProgressBoardModel struct {
	board     Leaderboard // nil: nothing to show
	specs     []levels.LevelSpec
	level     int // Index into specs
	profileID string
	entries   []storage.LeaderboardEntry
	loadErr   error
	table     table.Model
	help      help.Model
	keys      BoardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewProgressBoardModel creates the board starting at startLevel.
// Rows of profileID are marked in the table.
func NewProgressBoardModel(board Leaderboard, catalog *levels.Catalog, profileID string, startLevel, width, height int) ProgressBoardModel {
	h := help.New()
	h.ShowAll = false

	m := ProgressBoardModel{
		board:     board,
		specs:     catalog.All(),
		profileID: profileID,
		keys:      DefaultBoardKeyMap(),
		help:      h,
		width:     width,
		height:    height,
	}
	for i, spec := range m.specs {
		if spec.ID == startLevel {
			m.level = i
		}
	}

	m.table = m.createTable()
	m.loadEntries()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ProgressBoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 20},
		{Title: "Moves", Width: 7},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadEntries loads the leaderboard of the selected level.
func (m *ProgressBoardModel) loadEntries() {
	m.entries, m.loadErr = nil, nil
	if m.board != nil && len(m.specs) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		m.entries, m.loadErr = m.board.Leaderboard(ctx, m.specs[m.level].ID, maxBoardEntries)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current entries.
func (m *ProgressBoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		name := e.Avatar + " " + e.Name
		if e.ProfileID == m.profileID {
			name += " (you)"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			name,
			fmt.Sprintf("%d", e.MovesUsed),
			e.CompletedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the board.
func (m ProgressBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (m ProgressBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextLevel):
			if len(m.specs) > 0 {
				m.level = (m.level + 1) % len(m.specs)
				m.loadEntries()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			if len(m.specs) > 0 {
				m.level = (m.level - 1 + len(m.specs)) % len(m.specs)
				m.loadEntries()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m ProgressBoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "FEWEST MOVES"
	if len(m.specs) > 0 {
		spec := m.specs[m.level]
		title = fmt.Sprintf("FEWEST MOVES - < Level %d >", spec.ID)
		b.WriteString("\n")
		b.WriteString(centerText(titleStyle.Render(title), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(GetTheme().MenuDescription.Render(spec.Summary()), m.width))
	} else {
		b.WriteString("\n")
		b.WriteString(centerText(titleStyle.Render(title), m.width))
	}
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ProgressBoardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.board == nil:
		return emptyStyle.Render("The progress board is not available here.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load the board.\nTry again later!")
	case len(m.entries) == 0:
		return emptyStyle.Render("Nobody has solved this level yet.\nBe the first!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the level select.
func (m ProgressBoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProgressBoardModel) IsQuitting() bool {
	return m.quitting
}
