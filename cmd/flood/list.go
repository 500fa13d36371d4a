package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flood/internal/games/flood"
	"github.com/vovakirdan/tui-flood/internal/games/flood/levels"
	"github.com/vovakirdan/tui-flood/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the campaign levels",
	Long: `Shows every level of the campaign, grouped by tier.

Examples:
  flood list
  flood list --levels ./my-levels.yaml`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	catalog, err := levels.Load(flagLevels)
	if err != nil {
		return err
	}

	fmt.Printf("%s - %d levels\n", catalog.Name(), catalog.Len())

	for _, tier := range catalog.Tiers() {
		fmt.Println()
		fmt.Printf("%s\n", tier.Name)
		fmt.Printf("  %-5s  %-5s  %-6s  %s\n", "Level", "Grid", "Colors", "Moves")
		fmt.Printf("  %-5s  %-5s  %-6s  %s\n", "-----", "----", "------", "-----")
		for _, spec := range tier.Levels {
			grid := fmt.Sprintf("%dx%d", spec.GridSize, spec.GridSize)
			fmt.Printf("  %-5d  %-5s  %-6d  %d\n", spec.ID, grid, spec.Colors, spec.MaxMoves)
		}
	}

	fmt.Println()
	fmt.Println("Modes:")
	for _, g := range registry.List() {
		fmt.Printf("  %-14s  %s\n", g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'flood play <level>' to play a level.")
	if registry.Exists(flood.IDEndless) {
		fmt.Println("Run 'flood play --endless' for generated boards.")
	}
	return nil
}
