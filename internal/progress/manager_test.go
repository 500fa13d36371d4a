package progress

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// failingStore returns err for every call.
type failingStore struct{ err error }

func (f failingStore) Profiles(context.Context) ([]Profile, error) {
	return nil, f.err
}

func (f failingStore) SaveProfile(context.Context, Profile) error {
	return f.err
}

func (f failingStore) DeleteProfile(context.Context, string) error {
	return f.err
}

func (f failingStore) Progress(context.Context, string) ([]Record, error) {
	return nil, f.err
}

func (f failingStore) SaveProgress(context.Context, Record) error {
	return f.err
}

func newManager(t *testing.T) (*Manager, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	m := NewManager(store)
	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m, store
}

func TestCreateTrimsAndDefaults(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()

	p, err := m.Create(ctx, "  Mia  ", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "Mia" {
		t.Errorf("name = %q, want Mia", p.Name)
	}
	if p.Avatar != DefaultAvatar {
		t.Errorf("avatar = %q, want %q", p.Avatar, DefaultAvatar)
	}
	if !strings.HasPrefix(p.ID, "p_") {
		t.Errorf("id = %q, want p_ prefix", p.ID)
	}
	if p.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}

	stored, _ := store.Profiles(ctx)
	if len(stored) != 1 || stored[0].ID != p.ID {
		t.Errorf("store profiles = %+v", stored)
	}
	if all := m.All(); len(all) != 1 {
		t.Errorf("All() len = %d, want 1", len(all))
	}
}

func TestCreateRejectsEmptyName(t *testing.T) {
	m, store := newManager(t)
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := m.Create(context.Background(), name, "🐯"); !errors.Is(err, ErrEmptyName) {
			t.Errorf("Create(%q) err = %v, want ErrEmptyName", name, err)
		}
	}
	if stored, _ := store.Profiles(context.Background()); len(stored) != 0 {
		t.Errorf("rejected profiles were stored: %+v", stored)
	}
}

func TestIDsAreUnique(t *testing.T) {
	m, _ := newManager(t)
	a, _ := m.Create(context.Background(), "A", "")
	b, _ := m.Create(context.Background(), "B", "")
	if a.ID == b.ID {
		t.Errorf("duplicate id %q", a.ID)
	}
}

func TestHighestUnlocked(t *testing.T) {
	tests := []struct {
		name      string
		completed []int
		count     int
		want      int
	}{
		{"none completed", nil, 30, 1},
		{"first completed", []int{1}, 30, 2},
		{"out of order", []int{3, 1, 2}, 30, 4},
		{"gap uses max", []int{1, 5}, 30, 6},
		{"capped at count", []int{30}, 30, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newManager(t)
			ctx := context.Background()
			p, _ := m.Create(ctx, "Kid", "")
			m.SetActive(&p)
			for _, id := range tt.completed {
				if err := m.RecordCompletion(ctx, id, 5); err != nil {
					t.Fatalf("RecordCompletion: %v", err)
				}
			}
			if got := m.HighestUnlocked(p.ID, tt.count); got != tt.want {
				t.Errorf("HighestUnlocked = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLockedAndCurrent(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	p, _ := m.Create(ctx, "Kid", "")
	m.SetActive(&p)
	_ = m.RecordCompletion(ctx, 1, 4)
	_ = m.RecordCompletion(ctx, 2, 4)

	// highest unlocked is 3
	if !m.IsCurrent(p.ID, 3, 30) {
		t.Error("level 3 should be current")
	}
	if m.IsLocked(p.ID, 4, 30) {
		t.Error("level 4 is highest+1 and should be playable")
	}
	if !m.IsLocked(p.ID, 5, 30) {
		t.Error("level 5 should be locked")
	}
	if m.IsLocked(p.ID, 1, 30) {
		t.Error("completed level 1 should not be locked")
	}
}

func TestRecordCompletionUpsertsCache(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()
	p, _ := m.Create(ctx, "Kid", "")
	m.SetActive(&p)

	_ = m.RecordCompletion(ctx, 1, 9)
	_ = m.RecordCompletion(ctx, 1, 6)

	records := m.Records(p.ID)
	if len(records) != 1 {
		t.Fatalf("cache has %d records, want 1", len(records))
	}
	if records[0].MovesUsed != 6 || !records[0].Completed {
		t.Errorf("record = %+v, want completed with 6 moves", records[0])
	}

	stored, _ := store.Progress(ctx, p.ID)
	if len(stored) != 1 || stored[0].MovesUsed != 6 {
		t.Errorf("store records = %+v", stored)
	}
}

func TestRecordCompletionWithoutActiveIsNoop(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()
	p, _ := m.Create(ctx, "Kid", "")

	if err := m.RecordCompletion(ctx, 1, 3); err != nil {
		t.Fatalf("RecordCompletion: %v", err)
	}
	if stored, _ := store.Progress(ctx, p.ID); len(stored) != 0 {
		t.Errorf("records saved without active profile: %+v", stored)
	}
}

func TestDeleteCascadesAndClearsActive(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()
	p, _ := m.Create(ctx, "Kid", "")
	other, _ := m.Create(ctx, "Other", "🐼")
	m.SetActive(&p)
	_ = m.RecordCompletion(ctx, 1, 3)

	if err := m.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := m.Active(); ok {
		t.Error("active profile not cleared")
	}
	if len(m.Records(p.ID)) != 0 {
		t.Error("cache not cleared")
	}
	if stored, _ := store.Progress(ctx, p.ID); len(stored) != 0 {
		t.Errorf("progress survived delete: %+v", stored)
	}
	all := m.All()
	if len(all) != 1 || all[0].ID != other.ID {
		t.Errorf("All() = %+v, want only %s", all, other.ID)
	}
	if _, err := m.Find(p.ID); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("Find deleted err = %v", err)
	}
}

func TestLoadProgressAndInit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	_ = store.SaveProfile(ctx, Profile{ID: "p_1", Name: "Ana", Avatar: "🐸"})
	_ = store.SaveProgress(ctx, Record{ProfileID: "p_1", LevelID: 2, Completed: true, MovesUsed: 7})
	_ = store.SaveProgress(ctx, Record{ProfileID: "p_1", LevelID: 1, Completed: true, MovesUsed: 5})
	_ = store.SaveProgress(ctx, Record{ProfileID: "p_1", LevelID: 3, Completed: false})

	m := NewManager(store)
	if err := m.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	p, err := m.FindByName("ana")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if _, err := m.LoadProgress(ctx, p.ID); err != nil {
		t.Fatalf("LoadProgress: %v", err)
	}
	if got := m.CompletedLevelIDs(p.ID); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("CompletedLevelIDs = %v, want [1 2]", got)
	}
	if r, ok := m.Record(p.ID, 2); !ok || r.MovesUsed != 7 {
		t.Errorf("Record(2) = %+v, %v", r, ok)
	}
}

func TestInitPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	m := NewManager(failingStore{err: boom})
	if err := m.Init(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Init err = %v, want wrapped boom", err)
	}
}

func TestFallbackStoreReadsLocalOnRemoteFailure(t *testing.T) {
	ctx := context.Background()
	local := NewMemoryStore()
	_ = local.SaveProfile(ctx, Profile{ID: "p_local", Name: "Local"})

	var buf bytes.Buffer
	logger := log.New(&buf)
	fs := NewFallbackStore(failingStore{err: errors.New("offline")}, local, logger)

	profiles, err := fs.Profiles(ctx)
	if err != nil {
		t.Fatalf("Profiles: %v", err)
	}
	if len(profiles) != 1 || profiles[0].ID != "p_local" {
		t.Errorf("profiles = %+v", profiles)
	}
	if !strings.Contains(buf.String(), "offline") {
		t.Errorf("fallback not logged: %q", buf.String())
	}

	// Writes still reach local when remote fails.
	if err := fs.SaveProgress(ctx, Record{ProfileID: "p_local", LevelID: 1, Completed: true}); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	if records, _ := local.Progress(ctx, "p_local"); len(records) != 1 {
		t.Errorf("local records = %+v", records)
	}
}

func TestFallbackStorePrefersRemote(t *testing.T) {
	ctx := context.Background()
	remote := NewMemoryStore()
	local := NewMemoryStore()
	fs := NewFallbackStore(remote, local, log.New(&bytes.Buffer{}))

	p := Profile{ID: "p_both", Name: "Both"}
	if err := fs.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	for name, s := range map[string]Store{"remote": remote, "local": local} {
		if got, _ := s.Profiles(ctx); len(got) != 1 {
			t.Errorf("%s profiles = %+v", name, got)
		}
	}

	_ = remote.SaveProgress(ctx, Record{ProfileID: "p_both", LevelID: 4, Completed: true})
	records, err := fs.Progress(ctx, "p_both")
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if len(records) != 1 || records[0].LevelID != 4 {
		t.Errorf("progress = %+v, want remote record", records)
	}

	if err := fs.DeleteProfile(ctx, "p_both"); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	if got, _ := remote.Progress(ctx, "p_both"); len(got) != 0 {
		t.Errorf("remote progress survived delete: %+v", got)
	}
}

func TestFallbackStoreLocalOnly(t *testing.T) {
	ctx := context.Background()
	local := NewMemoryStore()
	fs := NewFallbackStore(nil, local, nil)
	if err := fs.SaveProfile(ctx, Profile{ID: "p_x", Name: "X"}); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if got, _ := fs.Profiles(ctx); len(got) != 1 {
		t.Errorf("profiles = %+v", got)
	}
}
