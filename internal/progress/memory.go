package progress

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-process Store. It keeps nothing across restarts.
type MemoryStore struct {
	mu       sync.Mutex
	profiles []Profile
	progress map[string]map[int]Record
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{progress: make(map[string]map[int]Record)}
}

func (s *MemoryStore) Profiles(ctx context.Context) ([]Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.profiles), nil
}

func (s *MemoryStore) SaveProfile(ctx context.Context, p Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.IndexFunc(s.profiles, func(x Profile) bool { return x.ID == p.ID }); i >= 0 {
		s.profiles[i] = p
		return nil
	}
	s.profiles = append(s.profiles, p)
	return nil
}

func (s *MemoryStore) DeleteProfile(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = slices.DeleteFunc(s.profiles, func(p Profile) bool { return p.ID == id })
	delete(s.progress, id)
	return nil
}

// Progress returns records ordered by level id.
func (s *MemoryStore) Progress(ctx context.Context, profileID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]Record, 0, len(s.progress[profileID]))
	for _, r := range s.progress[profileID] {
		records = append(records, r)
	}
	slices.SortFunc(records, func(a, b Record) int { return a.LevelID - b.LevelID })
	return records, nil
}

func (s *MemoryStore) SaveProgress(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	levels, ok := s.progress[r.ProfileID]
	if !ok {
		levels = make(map[int]Record)
		s.progress[r.ProfileID] = levels
	}
	levels[r.LevelID] = r
	return nil
}

var _ Store = (*MemoryStore)(nil)
