// Package levels provides the level catalog for Flood.
// This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-flood/internal/games/flood/core"
)

// ErrLevelNotFound is returned when a level id is not in the catalog.
var ErrLevelNotFound = errors.New("level not found")

// TierSize is the number of levels per tier.
const TierSize = 5

// LevelSpec describes one level. The grid is derived from it on demand.
type LevelSpec struct {
	ID       int
	GridSize int
	Colors   int
	MaxMoves int
	Seed     int64
}

// Tier returns the 0-based tier index of the level.
func (l LevelSpec) Tier() int {
	if l.ID < 1 {
		return 0
	}
	return (l.ID - 1) / TierSize
}

// Summary returns a one-line description, e.g. "4x4 grid · 3 colors · 6 moves".
func (l LevelSpec) Summary() string {
	return fmt.Sprintf("%dx%d grid · %d colors · %d moves", l.GridSize, l.GridSize, l.Colors, l.MaxMoves)
}

// PerfectMoves returns the largest move count rated as a perfect solve.
func (l LevelSpec) PerfectMoves(ratio float64) int {
	return int(float64(l.MaxMoves) * ratio)
}

// Validate checks the level against the supported bounds.
func (l LevelSpec) Validate() error {
	if l.ID < 1 {
		return core.ValidationError{Code: "INVALID_ID", Message: fmt.Sprintf("level id %d must be at least 1", l.ID)}
	}
	if err := core.ValidateParams(l.GridSize, l.Colors, l.MaxMoves); err != nil {
		return fmt.Errorf("level %d: %w", l.ID, err)
	}
	return nil
}

// Tier groups consecutive levels for display.
type Tier struct {
	Index  int
	Name   string
	Levels []LevelSpec
}

// TierName returns the display label for a tier index.
func TierName(index int) string {
	return fmt.Sprintf("Age %d+", index+5)
}

// Catalog is an ordered, immutable set of levels.
type Catalog struct {
	name   string
	levels []LevelSpec
	byID   map[int]int
}

// NewCatalog validates specs and builds a catalog sorted by id.
func NewCatalog(name string, specs []LevelSpec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, core.ValidationError{Code: "EMPTY_CATALOG", Message: "catalog has no levels"}
	}

	sorted := make([]LevelSpec, len(specs))
	copy(sorted, specs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	c := &Catalog{
		name:   name,
		levels: sorted,
		byID:   make(map[int]int, len(sorted)),
	}
	for i, spec := range sorted {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[spec.ID]; dup {
			return nil, core.ValidationError{Code: "DUPLICATE_ID", Message: fmt.Sprintf("level id %d appears twice", spec.ID)}
		}
		c.byID[spec.ID] = i
	}
	return c, nil
}

// Name returns the catalog display name.
func (c *Catalog) Name() string {
	return c.name
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// All returns a copy of the levels in id order.
func (c *Catalog) All() []LevelSpec {
	out := make([]LevelSpec, len(c.levels))
	copy(out, c.levels)
	return out
}

// ByID looks up a level. Unknown ids wrap ErrLevelNotFound.
func (c *Catalog) ByID(id int) (LevelSpec, error) {
	i, ok := c.byID[id]
	if !ok {
		return LevelSpec{}, fmt.Errorf("%w: %d", ErrLevelNotFound, id)
	}
	return c.levels[i], nil
}

// Has reports whether id exists in the catalog.
func (c *Catalog) Has(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Next returns the level following id, if any.
func (c *Catalog) Next(id int) (LevelSpec, bool) {
	i, ok := c.byID[id]
	if !ok || i+1 >= len(c.levels) {
		return LevelSpec{}, false
	}
	return c.levels[i+1], true
}

// First returns the lowest-id level.
func (c *Catalog) First() LevelSpec {
	return c.levels[0]
}

// Build looks up a level and generates its starting grid.
func (c *Catalog) Build(id int) (*core.Grid, LevelSpec, error) {
	spec, err := c.ByID(id)
	if err != nil {
		return nil, LevelSpec{}, err
	}
	return core.Generate(spec.GridSize, spec.Colors, spec.Seed), spec, nil
}

// Tiers groups the levels by tier, in order.
func (c *Catalog) Tiers() []Tier {
	var tiers []Tier
	for _, spec := range c.levels {
		idx := spec.Tier()
		if len(tiers) == 0 || tiers[len(tiers)-1].Index != idx {
			tiers = append(tiers, Tier{Index: idx, Name: TierName(idx)})
		}
		last := &tiers[len(tiers)-1]
		last.Levels = append(last.Levels, spec)
	}
	return tiers
}
