package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-flood/internal/games/flood/core"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if c.Len() != 30 {
		t.Fatalf("Len() = %d, expected 30", c.Len())
	}

	tests := []struct {
		id, size, colors, moves int
		seed                    int64
	}{
		{1, 4, 3, 6, 101},
		{5, 4, 4, 7, 105},
		{10, 5, 5, 11, 205},
		{13, 6, 5, 13, 303},
		{19, 7, 6, 16, 404},
		{23, 8, 6, 19, 503},
		{27, 9, 6, 22, 602},
		{30, 9, 6, 20, 605},
	}

	for _, tc := range tests {
		spec, err := c.ByID(tc.id)
		if err != nil {
			t.Fatalf("ByID(%d) failed: %v", tc.id, err)
		}
		if spec.GridSize != tc.size || spec.Colors != tc.colors || spec.MaxMoves != tc.moves || spec.Seed != tc.seed {
			t.Errorf("level %d = %+v, expected size=%d colors=%d moves=%d seed=%d",
				tc.id, spec, tc.size, tc.colors, tc.moves, tc.seed)
		}
	}
}

func TestDefaultCatalogTiers(t *testing.T) {
	tiers := Default().Tiers()
	if len(tiers) != 6 {
		t.Fatalf("len(Tiers()) = %d, expected 6", len(tiers))
	}

	for i, tier := range tiers {
		if len(tier.Levels) != TierSize {
			t.Errorf("tier %d has %d levels, expected %d", i, len(tier.Levels), TierSize)
		}
		wantSize := i + 4
		for _, l := range tier.Levels {
			if l.GridSize != wantSize {
				t.Errorf("level %d in tier %d has size %d, expected %d", l.ID, i, l.GridSize, wantSize)
			}
		}
	}
	if tiers[0].Name != "Age 5+" || tiers[5].Name != "Age 10+" {
		t.Errorf("unexpected tier names %q, %q", tiers[0].Name, tiers[5].Name)
	}
}

func TestByIDNotFound(t *testing.T) {
	c := Default()
	for _, id := range []int{0, -1, 31, 999} {
		_, err := c.ByID(id)
		if !errors.Is(err, ErrLevelNotFound) {
			t.Errorf("ByID(%d) error = %v, expected ErrLevelNotFound", id, err)
		}
	}
}

func TestBuildMatchesGenerator(t *testing.T) {
	c := Default()
	g, spec, err := c.Build(7)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := core.Generate(spec.GridSize, spec.Colors, spec.Seed)
	if !g.Equal(want) {
		t.Error("Build grid differs from Generate output")
	}

	if _, _, err := c.Build(42); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("Build(42) error = %v, expected ErrLevelNotFound", err)
	}
}

func TestNext(t *testing.T) {
	c := Default()
	next, ok := c.Next(1)
	if !ok || next.ID != 2 {
		t.Errorf("Next(1) = %d, %v; expected 2, true", next.ID, ok)
	}
	if _, ok := c.Next(30); ok {
		t.Error("Next(30) should report no next level")
	}
}

func TestPerfectMoves(t *testing.T) {
	tests := []struct {
		maxMoves, want int
	}{
		{6, 3},
		{10, 6},
		{22, 13},
		{1, 0},
	}
	for _, tc := range tests {
		spec := LevelSpec{MaxMoves: tc.maxMoves}
		if got := spec.PerfectMoves(0.6); got != tc.want {
			t.Errorf("PerfectMoves(%d) = %d, expected %d", tc.maxMoves, got, tc.want)
		}
	}
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name     string
		specs    []LevelSpec
		wantCode string
	}{
		{"empty", nil, "EMPTY_CATALOG"},
		{"bad id", []LevelSpec{{ID: 0, GridSize: 4, Colors: 3, MaxMoves: 5}}, "INVALID_ID"},
		{"too small", []LevelSpec{{ID: 1, GridSize: 3, Colors: 3, MaxMoves: 5}}, "INVALID_SIZE"},
		{"too many colors", []LevelSpec{{ID: 1, GridSize: 4, Colors: 7, MaxMoves: 5}}, "INVALID_COLORS"},
		{"no moves", []LevelSpec{{ID: 1, GridSize: 4, Colors: 3, MaxMoves: 0}}, "INVALID_MOVES"},
		{"duplicate", []LevelSpec{
			{ID: 1, GridSize: 4, Colors: 3, MaxMoves: 5},
			{ID: 1, GridSize: 5, Colors: 3, MaxMoves: 5},
		}, "DUPLICATE_ID"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog("test", tc.specs)
			var ve core.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Code != tc.wantCode {
				t.Errorf("Code = %s, expected %s", ve.Code, tc.wantCode)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte(`name: Tiny
levels:
  - {id: 2, grid_size: 5, colors: 4, max_moves: 9, seed: 77}
  - {id: 1, grid_size: 4, colors: 3, max_moves: 5, seed: 11}
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if c.Name() != "Tiny" || c.Len() != 2 {
		t.Errorf("got name=%q len=%d", c.Name(), c.Len())
	}
	if c.First().ID != 1 {
		t.Errorf("First().ID = %d, expected levels sorted by id", c.First().ID)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "levels.json")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("levels: [{id: 1, grid_size: 12, colors: 3, max_moves: 4}]"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("expected validation error for oversized grid")
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if c.Len() != Default().Len() {
		t.Errorf("Load(\"\") returned %d levels, expected default catalog", c.Len())
	}
}
