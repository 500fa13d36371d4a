package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flood/internal/progress"
)

var flagAvatar string

var profilesCmd = &cobra.Command{
	Use:     "profiles",
	Aliases: []string{"players"},
	Short:   "Manage players",
	Long: `List, add and remove players. Removing a player also removes all of
their progress.

Examples:
  flood profiles list
  flood profiles add Ana --avatar 🐼
  flood profiles rm Ana`,
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List players",
	Args:  cobra.NoArgs,
	RunE:  runProfilesList,
}

var profilesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a player",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilesAdd,
}

var profilesRmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a player and their progress",
	Args:    cobra.ExactArgs(1),
	RunE:    runProfilesRm,
}

func init() {
	profilesAddCmd.Flags().StringVar(&flagAvatar, "avatar", progress.DefaultAvatar,
		"Avatar, one of: "+strings.Join(progress.Avatars, " "))

	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesAddCmd)
	profilesCmd.AddCommand(profilesRmCmd)
}

func runProfilesList(_ *cobra.Command, _ []string) error {
	a, err := newApp(modeInteractive)
	if err != nil {
		return err
	}
	defer a.Close()

	all := a.profiles.All()
	if len(all) == 0 {
		fmt.Println("No players yet.")
		fmt.Println()
		fmt.Println("Run 'flood profiles add <name>' to add one.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	fmt.Printf("  %-2s  %-16s  %-6s  %s\n", "", "Name", "Solved", "Since")
	fmt.Printf("  %-2s  %-16s  %-6s  %s\n", "", "----", "------", "-----")
	for _, p := range all {
		solved, err := a.local.CompletedCount(ctx, p.ID)
		if err != nil {
			return err
		}
		fmt.Printf("  %s  %-16s  %-6d  %s\n", p.Avatar, p.Name, solved, p.CreatedAt.Local().Format("2006-01-02"))
	}
	return nil
}

func runProfilesAdd(_ *cobra.Command, args []string) error {
	if !slices.Contains(progress.Avatars, flagAvatar) {
		return fmt.Errorf("unknown avatar %q (want one of %s)", flagAvatar, strings.Join(progress.Avatars, " "))
	}

	a, err := newApp(modeInteractive)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()
	p, err := a.profiles.Create(ctx, args[0], flagAvatar)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s %s.\n", p.Avatar, p.Name)
	return nil
}

func runProfilesRm(_ *cobra.Command, args []string) error {
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
	if err := a.profiles.Delete(ctx, p.ID); err != nil {
		return err
	}
	fmt.Printf("Removed %s %s and their progress.\n", p.Avatar, p.Name)
	return nil
}
