// flood is a color flood puzzle for kids, played in the terminal.
//
// Usage:
//
//	flood list                    - List the campaign levels
//	flood play [level]            - Play a level (or --endless)
//	flood menu                    - Pick a player and a level interactively
//	flood profiles list|add|rm    - Manage players
//	flood progress <player>       - Show a player's solved levels
//	flood serve                   - Start the SSH server for remote play
//	flood backend                 - Start the websocket progress backend
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for endless boards
//	--db <path>      - Set progress database path (default from config)
//	--config <path>  - Use a custom config YAML
//	--levels <path>  - Use a custom level catalog YAML
//	--remote <url>   - Sync progress with a backend (ws://host:port/ws)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevels     string
	flagRemote     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flood",
	Short: "Flood - fill the board with one color",
	Long: `Flood is a color puzzle for kids. Pick colors to grow the region in the
top-left corner until the whole board is one color, before the moves run out.

Available commands:
  list      - Show the campaign levels
  play      - Play a level directly
  menu      - Pick a player and a level
  profiles  - Manage players
  progress  - Show a player's solved levels
  serve     - Start SSH server for remote play
  backend   - Start the progress backend

Examples:
  flood menu
  flood play 3 --profile Ana
  flood play --endless --difficulty easy
  flood profiles add Ana --avatar 🐼
  flood serve --ssh :2222
  flood backend --addr :8787`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for endless boards (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the progress database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to a custom level catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagRemote, "remote", "", "Progress backend URL, e.g. ws://localhost:8787/ws")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(backendCmd)
}
