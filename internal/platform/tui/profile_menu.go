package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flood/internal/progress"
)

const (
	maxNameLength = 16
	storeTimeout  = 5 * time.Second // Bounds one profile or progress store call
)

// profileMode is the sub-screen of the profile picker.
type profileMode int

const (
	profileModeList profileMode = iota
	profileModeCreate
	profileModeConfirmDelete
)

// profileCreatedMsg reports the result of creating a profile.
type profileCreatedMsg struct {
	profile progress.Profile
	err     error
}

// profileDeletedMsg reports the result of deleting a profile.
type profileDeletedMsg struct {
	id  string
	err error
}

// ProfileMenuModel lists the players and lets them create or delete profiles.
type ProfileMenuModel struct {
	profiles  *progress.Manager
	items     []progress.Profile
	cursor    int // len(items) is the "New player" entry
	width     int
	height    int
	keyMapper *KeyMapper
	theme     Theme
	mode      profileMode
	input     textinput.Model
	avatar    int
	message   string
	selected  *progress.Profile
	quitting  bool
}

// NewProfileMenuModel creates the profile picker from the manager's loaded profiles.
func NewProfileMenuModel(profiles *progress.Manager, width, height int) ProfileMenuModel {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = maxNameLength
	ti.Width = maxNameLength + 2
	ti.Prompt = ""

	return ProfileMenuModel{
		profiles:  profiles,
		items:     profiles.All(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		theme:     GetTheme(),
		input:     ti,
	}
}

// Init initializes the model.
func (m ProfileMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ProfileMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case profileCreatedMsg:
		return m.handleCreated(msg)

	case profileDeletedMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Could not delete player: %v", msg.err)
		}
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case profileModeCreate:
			return m.handleCreateKey(msg)
		case profileModeConfirmDelete:
			return m.handleDeleteKey(msg)
		default:
			return m.handleListKey(msg)
		}
	}

	if m.mode == profileModeCreate {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ProfileMenuModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items) {
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor == len(m.items) {
			return m.startCreate()
		}
		p := m.items[m.cursor]
		m.selected = &p
	case MenuActionDelete:
		if m.cursor < len(m.items) {
			m.mode = profileModeConfirmDelete
		}
	}
	return m, nil
}

func (m ProfileMenuModel) startCreate() (tea.Model, tea.Cmd) {
	m.mode = profileModeCreate
	m.avatar = 0
	m.input.SetValue("")
	return m, m.input.Focus()
}

func (m ProfileMenuModel) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.mode = profileModeList
		m.message = ""
		m.input.Blur()
		return m, nil
	case "up":
		m.avatar = (m.avatar - 1 + len(progress.Avatars)) % len(progress.Avatars)
		return m, nil
	case "down", "tab":
		m.avatar = (m.avatar + 1) % len(progress.Avatars)
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			m.message = "Please type a name first"
			return m, nil
		}
		return m, m.createCmd(name, progress.Avatars[m.avatar])
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ProfileMenuModel) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "y", "Y":
		m.mode = profileModeList
		if m.cursor < len(m.items) {
			return m, m.deleteCmd(m.items[m.cursor].ID)
		}
	case "n", "N", "esc", "b":
		m.mode = profileModeList
	}
	return m, nil
}

func (m ProfileMenuModel) handleCreated(msg profileCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, progress.ErrEmptyName) {
			m.message = "Please type a name first"
		} else {
			m.message = fmt.Sprintf("Could not save player: %v", msg.err)
		}
		return m, nil
	}
	m.mode = profileModeList
	m.input.Blur()
	m.reload()
	for i, p := range m.items {
		if p.ID == msg.profile.ID {
			m.cursor = i
		}
	}
	return m, nil
}

func (m ProfileMenuModel) createCmd(name, avatar string) tea.Cmd {
	profiles := m.profiles
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		p, err := profiles.Create(ctx, name, avatar)
		return profileCreatedMsg{profile: p, err: err}
	}
}

func (m ProfileMenuModel) deleteCmd(id string) tea.Cmd {
	profiles := m.profiles
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return profileDeletedMsg{id: id, err: profiles.Delete(ctx, id)}
	}
}

// reload refreshes the list from the manager and keeps the cursor in range.
func (m *ProfileMenuModel) reload() {
	m.items = m.profiles.All()
	if m.cursor > len(m.items) {
		m.cursor = len(m.items)
	}
}

// View renders the profile picker.
func (m ProfileMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("F L O O D"), m.width))
	b.WriteString("\n\n")

	switch m.mode {
	case profileModeCreate:
		m.viewCreate(&b)
	case profileModeConfirmDelete:
		m.viewConfirmDelete(&b)
	default:
		m.viewList(&b)
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.Error.Render(m.message), m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ProfileMenuModel) viewList(b *strings.Builder) {
	b.WriteString(centerText(m.theme.MenuDescription.Render("Who is playing?"), m.width))
	b.WriteString("\n\n")

	for i, p := range m.items {
		b.WriteString(centerText(m.itemLine(i, fmt.Sprintf("%s %s", p.Avatar, p.Name)), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(m.itemLine(len(m.items), "+ New player"), m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Enter: Select  |  X: Delete  |  Q: Quit"
	b.WriteString(centerText(m.theme.Controls.Render(controls), m.width))
	b.WriteString("\n")
}

func (m ProfileMenuModel) itemLine(i int, label string) string {
	if i == m.cursor {
		return m.theme.MenuItemActive.Render("> " + label)
	}
	return m.theme.MenuItemNormal.Render("  " + label)
}

func (m ProfileMenuModel) viewCreate(b *strings.Builder) {
	b.WriteString(centerText(m.theme.MenuDescription.Render("New player"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Name:   "+m.input.View(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Avatar: < %s >", progress.Avatars[m.avatar]), m.width))
	b.WriteString("\n\n")
	controls := "Up/Down: Avatar  |  Enter: Create  |  Esc: Cancel"
	b.WriteString(centerText(m.theme.Controls.Render(controls), m.width))
	b.WriteString("\n")
}

func (m ProfileMenuModel) viewConfirmDelete(b *strings.Builder) {
	p := m.items[m.cursor]
	question := fmt.Sprintf("Delete %s %s and all their progress?", p.Avatar, p.Name)
	b.WriteString(centerText(m.theme.PopupBorder.Render(
		m.theme.PopupTitle.Render(question)+"\n\n"+m.theme.PopupText.Render("Y: Yes    N: No"),
	), m.width))
	b.WriteString("\n")
}

// Selected returns the chosen profile, or nil if still choosing.
func (m ProfileMenuModel) Selected() *progress.Profile {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m ProfileMenuModel) IsQuitting() bool {
	return m.quitting
}
