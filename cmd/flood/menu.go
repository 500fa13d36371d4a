package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flood/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a player and a level",
	Long: `Start Flood in interactive menu mode.

First pick or create a player, then choose a level from the map.
Solved levels show a star, the next level to play shows an arrow and
levels further ahead stay locked. After a game you return to the map.

Controls:
  Arrows/hjkl  - Navigate
  Enter/Space  - Select
  X            - Delete player (player screen)
  Tab          - Progress board (level map)
  B/Esc        - Back
  Q            - Quit

Examples:
  flood menu
  flood menu --fps 30
  flood menu --db ./progress.db
  flood menu --remote ws://localhost:8787/ws`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Endless difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := newApp(modeInteractive)
	if err != nil {
		return err
	}
	defer a.Close()

	return tui.RunSession(tui.SessionOptions{
		Profiles: a.profiles,
		Board:    a.local,
		Styles:   tui.StylesFromPalette(a.cfg.Palette),
		Logger:   a.logger,
		Runtime:  runtimeConfig(),
	})
}
