package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flood/internal/config"
	"github.com/vovakirdan/tui-flood/internal/core"
)

// Styles maps core.Color to lipgloss styles.
type Styles map[core.Color]lipgloss.Style

// DefaultStyles returns styles for the built-in palette.
func DefaultStyles() Styles {
	return StylesFromPalette(config.Default().Palette)
}

// StylesFromPalette builds screen styles, taking tile colors from the palette.
// Palette entry i colors core.TileColor(i); missing entries keep the defaults.
func StylesFromPalette(palette []config.PaletteEntry) Styles {
	s := Styles{
		core.ColorDefault:      lipgloss.NewStyle(),
		core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		core.ColorPurple:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		core.ColorDim:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	}
	for i, entry := range palette {
		if entry.ANSI == "" || i >= len(core.TileColors) {
			continue
		}
		s[core.TileColor(i)] = lipgloss.NewStyle().Foreground(lipgloss.Color(entry.ANSI))
	}
	return s
}

// RenderScreen converts a Screen buffer to a styled string using the default styles.
func RenderScreen(s *core.Screen) string {
	return defaultStyles.Render(s)
}

var defaultStyles = DefaultStyles()

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (st Styles) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := st[startColor]
			if !ok {
				style = st[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
