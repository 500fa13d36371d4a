package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flood/internal/config"
	"github.com/vovakirdan/tui-flood/internal/core"
)

func TestStylesFromPalette(t *testing.T) {
	palette := []config.PaletteEntry{
		{Name: "Red", ANSI: "196"},
		{Name: "Yellow"}, // No code: keeps the default
	}
	s := StylesFromPalette(palette)

	if got := s[core.TileColor(0)].GetForeground(); got != lipgloss.Color("196") {
		t.Errorf("tile 0 foreground = %v, expected 196", got)
	}
	if got := s[core.TileColor(1)].GetForeground(); got != lipgloss.Color("3") {
		t.Errorf("tile 1 foreground = %v, expected default 3", got)
	}
	if _, ok := s[core.ColorDim]; !ok {
		t.Error("UI colors should always be present")
	}
}

func TestRenderKeepsLayout(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawTextColor(2, 0, "cd", core.ColorBlue)
	s.DrawText(1, 2, "xy")

	out := DefaultStyles().Render(s)

	if n := strings.Count(out, "\n"); n != 2 {
		t.Fatalf("rendered %d line breaks, expected 2", n)
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 6 {
			t.Errorf("line %d width = %d, expected 6", i, w)
		}
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") || !strings.Contains(lines[2], "xy") {
		t.Errorf("text missing from output:\n%s", out)
	}
}
