// Package config provides YAML-based application configuration for Flood.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the full application configuration.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Remote    RemoteConfig    `yaml:"remote"`
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Animation AnimationConfig `yaml:"animation"`
	Gameplay  GameplayConfig  `yaml:"gameplay"`
	Endless   EndlessConfig   `yaml:"endless"`
	Palette   []PaletteEntry  `yaml:"palette"`
}

// StorageConfig defines the local progress database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// RemoteConfig defines the remote progress backend.
// An empty URL means local-only progress.
type RemoteConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig defines where interactive commands write logs.
// The TUI owns the terminal, so an empty File discards log output.
type LoggingConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// ServerConfig defines the SSH and backend listeners.
type ServerConfig struct {
	SSHAddr     string        `yaml:"ssh_addr"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	BackendAddr string        `yaml:"backend_addr"`
}

// AnimationConfig defines presentation timing in ticks.
type AnimationConfig struct {
	FloodTicks       int `yaml:"flood_ticks"`        // Duration of the recolor wave
	ResultDelayTicks int `yaml:"result_delay_ticks"` // Pause before the win/fail overlay
}

// GameplayConfig defines scoring and HUD thresholds.
type GameplayConfig struct {
	PerfectRatio float64 `yaml:"perfect_ratio"` // movesUsed <= floor(maxMoves*ratio) is perfect
	DangerMoves  int     `yaml:"danger_moves"`  // Highlight the HUD at or below this many moves left
}

// EndlessConfig defines the generated-board mode.
type EndlessConfig struct {
	MoveSlack  int              `yaml:"move_slack"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PaletteEntry maps a color index to a display name and ANSI 256 code.
type PaletteEntry struct {
	Name string `yaml:"name"`
	ANSI string `yaml:"ansi"`
}

// Validate reports the first nonsensical value.
func (c Config) Validate() error {
	if c.Storage.DBPath == "" {
		return fmt.Errorf("config: storage.db_path is required")
	}
	if c.Remote.Timeout < 0 {
		return fmt.Errorf("config: remote.timeout must not be negative")
	}
	if c.Logging.Level != "" {
		if _, err := log.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("config: logging.level: %w", err)
		}
	}
	if c.Animation.FloodTicks < 0 || c.Animation.ResultDelayTicks < 0 {
		return fmt.Errorf("config: animation ticks must not be negative")
	}
	if c.Gameplay.PerfectRatio < 0 || c.Gameplay.PerfectRatio > 1 {
		return fmt.Errorf("config: gameplay.perfect_ratio %.2f outside [0,1]", c.Gameplay.PerfectRatio)
	}
	if c.Gameplay.DangerMoves < 0 {
		return fmt.Errorf("config: gameplay.danger_moves must not be negative")
	}
	if c.Endless.MoveSlack < 0 {
		return fmt.Errorf("config: endless.move_slack must not be negative")
	}
	if lvl := c.Endless.Difficulty.InitialLevel; lvl < 0 || lvl > 1 {
		return fmt.Errorf("config: endless.difficulty.initial_level %.2f outside [0,1]", lvl)
	}
	if len(c.Palette) > 0 && len(c.Palette) < 6 {
		return fmt.Errorf("config: palette needs 6 entries, got %d", len(c.Palette))
	}
	return nil
}

// ColorName returns the palette name for a color index.
func (c Config) ColorName(index int) string {
	if index >= 0 && index < len(c.Palette) && c.Palette[index].Name != "" {
		return c.Palette[index].Name
	}
	return fmt.Sprintf("Color %d", index+1)
}
