package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress <player>",
	Short: "Show a player's solved levels",
	Long: `Display every campaign level with the player's status, the moves they
needed and the fewest moves any player needed.

Examples:
  flood progress Ana`,
	Args: cobra.ExactArgs(1),
	RunE: runProgress,
}

func runProgress(_ *cobra.Command, args []string) error {
	a, err := newApp(modeInteractive)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.findProfile(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()
	if _, err := a.profiles.LoadProgress(ctx, p.ID); err != nil {
		return err
	}

	count := a.catalog.Len()
	solved := len(a.profiles.CompletedLevelIDs(p.ID))
	fmt.Printf("%s %s - %d of %d levels solved\n", p.Avatar, p.Name, solved, count)

	for _, tier := range a.catalog.Tiers() {
		fmt.Println()
		fmt.Println(tier.Name)
		fmt.Printf("  %-5s  %-2s  %-5s  %-4s  %s\n", "Level", "", "Moves", "Best", "Solved")
		fmt.Printf("  %-5s  %-2s  %-5s  %-4s  %s\n", "-----", "", "-----", "----", "------")
		for _, spec := range tier.Levels {
			moves, best, date := "-", "-", ""
			badge := "·"
			switch rec, ok := a.profiles.Record(p.ID, spec.ID); {
			case ok:
				badge = "⭐"
				moves = fmt.Sprintf("%d", rec.MovesUsed)
				date = rec.CompletedAt.Local().Format("2006-01-02")
			case a.profiles.IsLocked(p.ID, spec.ID, count):
				badge = "🔒"
			case a.profiles.IsCurrent(p.ID, spec.ID, count):
				badge = "▶"
			}

			top, err := a.local.Leaderboard(ctx, spec.ID, 1)
			if err != nil {
				return err
			}
			if len(top) > 0 {
				best = fmt.Sprintf("%d", top[0].MovesUsed)
			}

			fmt.Printf("  %-5d  %s  %-5s  %-4s  %s\n", spec.ID, badge, moves, best, date)
		}
	}

	if solved == 0 {
		fmt.Println()
		fmt.Printf("Run 'flood play --profile %s' to solve the first level!\n", p.Name)
	}
	return nil
}
