package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the menu screens.
type Theme struct {
	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	TierHeader      lipgloss.Style

	// Level badges
	Completed lipgloss.Style
	Locked    lipgloss.Style
	Current   lipgloss.Style

	// Popup styles
	PopupBorder lipgloss.Style
	PopupTitle  lipgloss.Style
	PopupText   lipgloss.Style

	// Footer and feedback
	Controls lipgloss.Style
	Notice   lipgloss.Style
	Error    lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		TierHeader:      lipgloss.NewStyle().Foreground(lipgloss.Color("177")).Bold(true),

		Completed: lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		Locked:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Current:   lipgloss.NewStyle().Foreground(lipgloss.Color("77")).Bold(true),

		PopupBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("69")).
			Padding(1, 3),
		PopupTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		PopupText:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),

		Controls: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
}

var theme = DefaultTheme()

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}

// centerText centers text within the given width, measuring display cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return lipgloss.NewStyle().PaddingLeft((width - w) / 2).Render(text)
}
