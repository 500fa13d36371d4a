package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flood/internal/games/flood/levels"
	"github.com/vovakirdan/tui-flood/internal/progress"
)

const levelCellWidth = 6 // Badge, number and gap

// LevelSelection holds the player's choice from the level select.
type LevelSelection struct {
	Level   int  // Campaign level id; 0 when Endless is set
	Endless bool // Generated boards instead of the campaign
}

// LevelMenuModel is the level select: one row per tier with progress badges.
type LevelMenuModel struct {
	profiles  *progress.Manager
	profile   progress.Profile
	catalog   *levels.Catalog
	specs     []levels.LevelSpec
	rows      [][]int // Indexes into specs, one row per tier
	cursor    int     // len(specs) is the Endless entry
	width     int
	height    int
	keyMapper *KeyMapper
	theme     Theme
	confirm   bool // "Start level?" popup open
	notice    string
	selection *LevelSelection
	back      bool
	progress  bool
	quitting  bool
}

// NewLevelMenuModel creates the level select for a profile.
// The cursor starts on the profile's current level.
func NewLevelMenuModel(profiles *progress.Manager, profile progress.Profile, catalog *levels.Catalog, width, height int) LevelMenuModel {
	m := LevelMenuModel{
		profiles:  profiles,
		profile:   profile,
		catalog:   catalog,
		specs:     catalog.All(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		theme:     GetTheme(),
	}

	idx := 0
	for _, tier := range catalog.Tiers() {
		row := make([]int, len(tier.Levels))
		for i := range tier.Levels {
			row[i] = idx
			idx++
		}
		m.rows = append(m.rows, row)
	}

	current := profiles.HighestUnlocked(profile.ID, catalog.Len())
	for i, spec := range m.specs {
		if spec.ID == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirm {
			return m.handleConfirmKey(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
	case MenuActionProgress:
		m.progress = true
	case MenuActionLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionRight:
		if m.cursor < len(m.specs) {
			m.cursor++
		}
	case MenuActionUp:
		m.moveRow(-1)
	case MenuActionDown:
		m.moveRow(1)
	case MenuActionSelect:
		m.choose()
	}
	return m, nil
}

// moveRow moves the cursor to the same column of the previous or next tier.
// Moving down from the last tier lands on Endless.
func (m *LevelMenuModel) moveRow(delta int) {
	row, col := m.position()
	target := row + delta
	switch {
	case target < 0:
		return
	case target >= len(m.rows):
		m.cursor = len(m.specs)
		return
	}
	r := m.rows[target]
	m.cursor = r[min(col, len(r)-1)]
}

// position returns the tier row and column of the cursor.
// The Endless entry sits on a row of its own below the last tier.
func (m LevelMenuModel) position() (row, col int) {
	for r, indexes := range m.rows {
		for c, idx := range indexes {
			if idx == m.cursor {
				return r, c
			}
		}
	}
	return len(m.rows), 0
}

// choose opens the confirm popup, explains a lock, or starts Endless.
func (m *LevelMenuModel) choose() {
	if m.cursor == len(m.specs) {
		m.selection = &LevelSelection{Endless: true}
		return
	}
	spec := m.specs[m.cursor]
	if m.profiles.IsLocked(m.profile.ID, spec.ID, m.catalog.Len()) {
		m.notice = fmt.Sprintf("Level %d is locked. Keep playing to unlock it!", spec.ID)
		return
	}
	m.confirm = true
}

func (m LevelMenuModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter", " ", "y", "Y":
		m.confirm = false
		m.selection = &LevelSelection{Level: m.specs[m.cursor].ID}
	case "esc", "b", "n", "N":
		m.confirm = false
	}
	return m, nil
}

// levelBadge returns the badge and style for a level.
func (m LevelMenuModel) levelBadge(spec levels.LevelSpec) (string, lipgloss.Style) {
	count := m.catalog.Len()
	if _, ok := m.profiles.Record(m.profile.ID, spec.ID); ok {
		return "⭐", m.theme.Completed
	}
	if m.profiles.IsLocked(m.profile.ID, spec.ID, count) {
		return "🔒", m.theme.Locked
	}
	if m.profiles.IsCurrent(m.profile.ID, spec.ID, count) {
		return "▶", m.theme.Current
	}
	return "·", m.theme.MenuItemNormal
}

// View renders the level select.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("F L O O D"), m.width))
	b.WriteString("\n\n")

	done := len(m.profiles.CompletedLevelIDs(m.profile.ID))
	header := fmt.Sprintf("%s %s · %d of %d levels complete", m.profile.Avatar, m.profile.Name, done, m.catalog.Len())
	b.WriteString(centerText(m.theme.MenuDescription.Render(header), m.width))
	b.WriteString("\n\n")

	if m.confirm {
		b.WriteString(m.viewConfirm())
	} else {
		b.WriteString(m.viewGrid())
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.Notice.Render(m.notice), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Arrows: Navigate  |  Enter: Play  |  Tab: Progress  |  B: Players  |  Q: Quit"
	b.WriteString(centerText(m.theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m LevelMenuModel) viewGrid() string {
	tiers := m.catalog.Tiers()
	lines := make([]string, 0, len(tiers)+1)

	for r, tier := range tiers {
		cells := []string{m.theme.TierHeader.Width(9).Render(tier.Name)}
		for c, spec := range tier.Levels {
			badge, style := m.levelBadge(spec)
			label := fmt.Sprintf("%s%2d", badge, spec.ID)
			if m.rows[r][c] == m.cursor {
				style = m.theme.MenuItemActive.Underline(true)
			}
			cells = append(cells, style.Width(levelCellWidth).Render(label))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	endless := "  ∞ Endless"
	style := m.theme.MenuItemNormal
	if m.cursor == len(m.specs) {
		endless = "> ∞ Endless"
		style = m.theme.MenuItemActive
	}
	lines = append(lines, "", style.Render(endless))

	return centerText(lipgloss.JoinVertical(lipgloss.Left, lines...), m.width) + "\n"
}

func (m LevelMenuModel) viewConfirm() string {
	spec := m.specs[m.cursor]
	body := []string{
		m.theme.PopupTitle.Render(fmt.Sprintf("Start Level %d?", spec.ID)),
		"",
		m.theme.PopupText.Render(levels.TierName(spec.Tier())),
		m.theme.PopupText.Render(spec.Summary()),
	}
	if rec, ok := m.profiles.Record(m.profile.ID, spec.ID); ok {
		body = append(body, m.theme.Completed.Render(fmt.Sprintf("⭐ Solved in %d moves", rec.MovesUsed)))
	}
	body = append(body, "", m.theme.Controls.Render("Enter: Play    Esc: Cancel"))

	popup := m.theme.PopupBorder.Render(lipgloss.JoinVertical(lipgloss.Center, body...))
	return centerText(popup, m.width) + "\n"
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	return m.selection
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// WantsProgress returns true if user opened the progress board.
func (m LevelMenuModel) WantsProgress() bool {
	return m.progress
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}
