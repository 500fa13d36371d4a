package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flood/internal/platform/tui"
	"github.com/vovakirdan/tui-flood/internal/progress"
)

var (
	flagProfile string
	flagEndless bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing a campaign level, or an endless run of generated boards.

Without a level, the player's next unsolved level is started. Progress is
only saved when a player is given with --profile.

Controls:
  1-6          - Pick a color
  Left/Right   - Move the color cursor
  Enter/Space  - Flood with the selected color
  R            - Restart the level
  N            - Next level (after a win)
  P            - Pause
  Q/Ctrl+C     - Quit

Difficulty options (endless only):
  easy   - Start on the smallest boards, grow with the streak
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty
  fixed  - Boards never grow

Examples:
  flood play
  flood play 4 --profile Ana
  flood play --endless --difficulty easy
  flood play 1 --levels ./my-levels.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagProfile, "profile", "", "Player name (or id) to save progress for")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play generated boards instead of the campaign")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Endless difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) error {
	if flagEndless && len(args) > 0 {
		return fmt.Errorf("--endless does not take a level")
	}

	a, err := newApp(modeInteractive)
	if err != nil {
		return err
	}
	defer a.Close()

	// Only a named player records progress
	var profiles *progress.Manager
	var profile progress.Profile
	if flagProfile != "" {
		profile, err = a.findProfile(flagProfile)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
		defer cancel()
		if _, err := a.profiles.LoadProgress(ctx, profile.ID); err != nil {
			return err
		}
		a.profiles.SetActive(&profile)
		profiles = a.profiles
	}

	sel := tui.LevelSelection{Endless: flagEndless}
	if !flagEndless {
		sel.Level, err = pickLevel(a, args, profile.ID)
		if err != nil {
			return err
		}
	}

	game, err := tui.NewFloodGame(sel)
	if err != nil {
		return err
	}

	styles := tui.StylesFromPalette(a.cfg.Palette)
	if err := tui.Run(game, profiles, styles, a.logger, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// pickLevel resolves the level argument, or the player's next level.
func pickLevel(a *app, args []string, profileID string) (int, error) {
	count := a.catalog.Len()
	if len(args) == 0 {
		if profileID == "" {
			return a.catalog.First().ID, nil
		}
		return a.profiles.HighestUnlocked(profileID, count), nil
	}

	level, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid level %q", args[0])
	}
	if !a.catalog.Has(level) {
		return 0, fmt.Errorf("unknown level %d (run 'flood list')", level)
	}
	if profileID != "" && a.profiles.IsLocked(profileID, level, count) {
		return 0, fmt.Errorf("level %d is locked for this player", level)
	}
	return level, nil
}
