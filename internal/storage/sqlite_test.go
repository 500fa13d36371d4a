package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flood/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SaveProfile(ctx, progress.Profile{ID: "p_1", Name: "Ana", Avatar: "🐸"}); err != nil {
		t.Fatalf("SaveProfile() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	profiles, err := store.Profiles(ctx)
	if err != nil {
		t.Fatalf("Profiles() failed: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Name != "Ana" || profiles[0].Avatar != "🐸" {
		t.Errorf("Profiles after reopen = %+v", profiles)
	}
}

func TestStoreSaveProfileUpserts(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	created := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	if err := store.SaveProfile(ctx, progress.Profile{ID: "p_1", Name: "Ana", Avatar: "🐸", CreatedAt: created}); err != nil {
		t.Fatalf("SaveProfile() failed: %v", err)
	}
	if err := store.SaveProfile(ctx, progress.Profile{ID: "p_1", Name: "Anna", Avatar: "🦊"}); err != nil {
		t.Fatalf("SaveProfile() update failed: %v", err)
	}

	profiles, err := store.Profiles(ctx)
	if err != nil {
		t.Fatalf("Profiles() failed: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("Expected 1 profile, got %d", len(profiles))
	}
	p := profiles[0]
	if p.Name != "Anna" || p.Avatar != "🦊" {
		t.Errorf("Profile not updated: %+v", p)
	}
	if !p.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want original %v", p.CreatedAt, created)
	}
}

func TestStoreProfilesOrderedByCreation(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	store.SaveProfile(ctx, progress.Profile{ID: "p_b", Name: "Second", CreatedAt: base.Add(time.Hour)})
	store.SaveProfile(ctx, progress.Profile{ID: "p_a", Name: "First", CreatedAt: base})

	profiles, _ := store.Profiles(ctx)
	if len(profiles) != 2 || profiles[0].Name != "First" || profiles[1].Name != "Second" {
		t.Errorf("Profiles not in creation order: %+v", profiles)
	}
}

func TestStoreProgressUpsert(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	store.SaveProfile(ctx, progress.Profile{ID: "p_1", Name: "Ana"})

	// Replay of level 2 overwrites the first result
	store.SaveProgress(ctx, progress.Record{ProfileID: "p_1", LevelID: 2, Completed: true, MovesUsed: 9})
	store.SaveProgress(ctx, progress.Record{ProfileID: "p_1", LevelID: 1, Completed: true, MovesUsed: 4})
	store.SaveProgress(ctx, progress.Record{ProfileID: "p_1", LevelID: 2, Completed: true, MovesUsed: 7})

	records, err := store.Progress(ctx, "p_1")
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].LevelID != 1 || records[1].LevelID != 2 {
		t.Errorf("Records not ordered by level: %+v", records)
	}
	if records[1].MovesUsed != 7 || !records[1].Completed {
		t.Errorf("Level 2 record = %+v, want completed in 7", records[1])
	}
	if records[1].CompletedAt.IsZero() {
		t.Error("CompletedAt not set")
	}

	n, err := store.CompletedCount(ctx, "p_1")
	if err != nil {
		t.Fatalf("CompletedCount() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CompletedCount = %d, want 2", n)
	}
}

func TestStoreDeleteProfileCascades(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	store.SaveProfile(ctx, progress.Profile{ID: "p_1", Name: "Ana"})
	store.SaveProfile(ctx, progress.Profile{ID: "p_2", Name: "Ben"})
	store.SaveProgress(ctx, progress.Record{ProfileID: "p_1", LevelID: 1, Completed: true, MovesUsed: 3})
	store.SaveProgress(ctx, progress.Record{ProfileID: "p_2", LevelID: 1, Completed: true, MovesUsed: 5})

	if err := store.DeleteProfile(ctx, "p_1"); err != nil {
		t.Fatalf("DeleteProfile() failed: %v", err)
	}

	if records, _ := store.Progress(ctx, "p_1"); len(records) != 0 {
		t.Errorf("Progress survived delete: %+v", records)
	}
	if records, _ := store.Progress(ctx, "p_2"); len(records) != 1 {
		t.Error("Other profile's progress should not be affected")
	}
	profiles, _ := store.Profiles(ctx)
	if len(profiles) != 1 || profiles[0].ID != "p_2" {
		t.Errorf("Profiles after delete = %+v", profiles)
	}

	// Deleting an unknown id is not an error
	if err := store.DeleteProfile(ctx, "p_missing"); err != nil {
		t.Errorf("DeleteProfile(unknown) failed: %v", err)
	}
}

func TestStoreLeaderboard(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	store.SaveProfile(ctx, progress.Profile{ID: "p_1", Name: "Ana", Avatar: "🐸"})
	store.SaveProfile(ctx, progress.Profile{ID: "p_2", Name: "Ben", Avatar: "🐼"})
	store.SaveProfile(ctx, progress.Profile{ID: "p_3", Name: "Cy", Avatar: "🦊"})
	store.SaveProfile(ctx, progress.Profile{ID: "p_4", Name: "Di", Avatar: "🐢"})

	store.SaveProgress(ctx, progress.Record{ProfileID: "p_1", LevelID: 3, Completed: true, MovesUsed: 8, CompletedAt: base})
	store.SaveProgress(ctx, progress.Record{ProfileID: "p_2", LevelID: 3, Completed: true, MovesUsed: 6, CompletedAt: base.Add(time.Minute)})
	store.SaveProgress(ctx, progress.Record{ProfileID: "p_3", LevelID: 3, Completed: true, MovesUsed: 8, CompletedAt: base.Add(-time.Minute)})
	store.SaveProgress(ctx, progress.Record{ProfileID: "p_4", LevelID: 3, Completed: false})
	store.SaveProgress(ctx, progress.Record{ProfileID: "p_1", LevelID: 4, Completed: true, MovesUsed: 1})

	entries, err := store.Leaderboard(ctx, 3, 10)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	// Fewest moves first, ties by earliest completion
	want := []string{"Ben", "Cy", "Ana"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entries[%d] = %s, want %s", i, entries[i].Name, name)
		}
	}
	if entries[0].Avatar != "🐼" || entries[0].MovesUsed != 6 {
		t.Errorf("Top entry = %+v", entries[0])
	}

	limited, _ := store.Leaderboard(ctx, 3, 1)
	if len(limited) != 1 {
		t.Errorf("Expected 1 entry with limit, got %d", len(limited))
	}
}

func TestStoreEmpty(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	profiles, err := store.Profiles(ctx)
	if err != nil {
		t.Fatalf("Profiles() failed: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("Expected no profiles, got %d", len(profiles))
	}
	records, err := store.Progress(ctx, "nobody")
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}
