package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// Default returns the hardcoded configuration, used when even the embedded
// YAML cannot be parsed.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			DBPath: "~/.flood/progress.db",
		},
		Remote: RemoteConfig{
			Timeout: 3 * time.Second,
		},
		Logging: LoggingConfig{
			File:  "~/.flood/flood.log",
			Level: "info",
		},
		Server: ServerConfig{
			SSHAddr:     ":23235",
			HostKeyPath: "~/.flood/host_key",
			IdleTimeout: 30 * time.Minute,
			BackendAddr: ":8787",
		},
		Animation: AnimationConfig{
			FloodTicks:       18,
			ResultDelayTicks: 24,
		},
		Gameplay: GameplayConfig{
			PerfectRatio: 0.6,
			DangerMoves:  3,
		},
		Endless: EndlessConfig{
			MoveSlack: 1,
			Difficulty: DifficultyConfig{
				Enabled:      true,
				InitialLevel: 0.3,
				MaxAtStreak:  10,
			},
		},
		Palette: []PaletteEntry{
			{Name: "Red", ANSI: "203"},
			{Name: "Yellow", ANSI: "221"},
			{Name: "Green", ANSI: "77"},
			{Name: "Blue", ANSI: "69"},
			{Name: "Purple", ANSI: "177"},
			{Name: "Orange", ANSI: "215"},
		},
	}
}
