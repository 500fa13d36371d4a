package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyConfig controls how endless boards grow with a win streak.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = 4x4/3 colors, 1.0 = 9x9/6 colors
	MaxAtStreak  int     `yaml:"max_at_streak"` // Streak at which the level reaches 1.0
}

// DifficultyPreset is a named starting point for endless mode.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset parses a preset name. Empty means normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset adjusts the difficulty config for a preset.
// Fixed keeps the configured initial level and disables growth.
func (d *DifficultyConfig) ApplyPreset(p DifficultyPreset) {
	switch p {
	case DifficultyEasy:
		d.Enabled = true
		d.InitialLevel = 0
	case DifficultyNormal:
		d.Enabled = true
		d.InitialLevel = 0.3
	case DifficultyHard:
		d.Enabled = true
		d.InitialLevel = 0.7
	case DifficultyFixed:
		d.Enabled = false
	}
}

// BoardParams describes a generated endless board.
type BoardParams struct {
	GridSize int
	Colors   int
	MaxMoves int
}

// Board size and palette bounds for generated boards.
const (
	minBoardSize   = 4
	maxBoardSize   = 9
	minBoardColors = 3
	maxBoardColors = 6
)

// DifficultyManager maps a win streak to board parameters.
type DifficultyManager struct {
	cfg       DifficultyConfig
	moveSlack int
}

// NewDifficultyManager creates a manager for the endless config.
func NewDifficultyManager(cfg EndlessConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:       cfg.Difficulty,
		moveSlack: cfg.MoveSlack,
	}
}

// Level returns the difficulty in [0, 1] after streak consecutive wins.
func (d *DifficultyManager) Level(streak int) float64 {
	initial := clampF(d.cfg.InitialLevel, 0, 1)
	if !d.cfg.Enabled {
		return initial
	}
	maxAt := float64(d.cfg.MaxAtStreak)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(streak)/maxAt, 0, 1)
	return initial + progress*(1-initial)
}

// Params returns the board for the given streak.
// The move budget follows the campaign curve: 2*size + colors - 5, plus slack.
func (d *DifficultyManager) Params(streak int) BoardParams {
	level := d.Level(streak)
	size := minBoardSize + int(math.Round(level*float64(maxBoardSize-minBoardSize)))
	colors := minBoardColors + int(math.Round(level*float64(maxBoardColors-minBoardColors)))
	moves := 2*size + colors - 5 + d.moveSlack
	if moves < 1 {
		moves = 1
	}
	return BoardParams{GridSize: size, Colors: colors, MaxMoves: moves}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
