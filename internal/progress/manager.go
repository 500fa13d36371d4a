package progress

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

var (
	// ErrEmptyName is returned when a profile name is blank after trimming.
	ErrEmptyName = errors.New("progress: profile name is empty")
	// ErrProfileNotFound is returned for an unknown profile id.
	ErrProfileNotFound = errors.New("progress: profile not found")
)

// Avatars is the fixed set of profile avatars.
var Avatars = []string{"🦁", "🐯", "🐻", "🐼", "🐨", "🐸", "🐵", "🦊", "🐰", "🐙", "🦄", "🐢"}

// DefaultAvatar is used when a profile is created without one.
const DefaultAvatar = "🦁"

// Manager holds the profile list, the active profile and a progress cache.
type Manager struct {
	mu       sync.RWMutex
	store    Store
	profiles []Profile
	active   *Profile
	cache    map[string][]Record
	now      func() time.Time
}

// NewManager creates a manager over store. Call Init to load profiles.
func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		cache: make(map[string][]Record),
		now:   time.Now,
	}
}

// Init loads the profile list from the store.
func (m *Manager) Init(ctx context.Context) error {
	profiles, err := m.store.Profiles(ctx)
	if err != nil {
		return fmt.Errorf("progress: load profiles: %w", err)
	}
	m.mu.Lock()
	m.profiles = profiles
	m.mu.Unlock()
	return nil
}

// All returns a copy of the known profiles.
func (m *Manager) All() []Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.profiles)
}

// Find returns the profile with the given id.
func (m *Manager) Find(id string) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
}

// FindByName returns the first profile whose name matches, ignoring case.
func (m *Manager) FindByName(name string) (Profile, error) {
	name = strings.TrimSpace(name)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.profiles {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}

// Create saves a new profile. The name is trimmed and must not be empty.
func (m *Manager) Create(ctx context.Context, name, avatar string) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, ErrEmptyName
	}
	if avatar == "" {
		avatar = DefaultAvatar
	}
	p := Profile{
		ID:        "p_" + uuid.NewString(),
		Name:      name,
		Avatar:    avatar,
		CreatedAt: m.now().UTC(),
	}
	if err := m.store.SaveProfile(ctx, p); err != nil {
		return Profile{}, fmt.Errorf("progress: save profile: %w", err)
	}
	m.mu.Lock()
	m.profiles = append(m.profiles, p)
	m.mu.Unlock()
	return p, nil
}

// Delete removes a profile and its progress. Deleting the active profile clears it.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.DeleteProfile(ctx, id); err != nil {
		return fmt.Errorf("progress: delete profile: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = slices.DeleteFunc(m.profiles, func(p Profile) bool { return p.ID == id })
	delete(m.cache, id)
	if m.active != nil && m.active.ID == id {
		m.active = nil
	}
	return nil
}

// SetActive selects the profile that receives completions. Nil clears it.
func (m *Manager) SetActive(p *Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p == nil {
		m.active = nil
		return
	}
	cp := *p
	m.active = &cp
}

// Active returns the active profile, if any.
func (m *Manager) Active() (Profile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == nil {
		return Profile{}, false
	}
	return *m.active, true
}

// LoadProgress fetches a profile's records into the cache.
func (m *Manager) LoadProgress(ctx context.Context, profileID string) ([]Record, error) {
	records, err := m.store.Progress(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("progress: load progress: %w", err)
	}
	m.mu.Lock()
	m.cache[profileID] = records
	m.mu.Unlock()
	return slices.Clone(records), nil
}

// Records returns the cached records for a profile.
func (m *Manager) Records(profileID string) []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.cache[profileID])
}

// Record returns the cached record for one level.
func (m *Manager) Record(profileID string, levelID int) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.cache[profileID] {
		if r.LevelID == levelID {
			return r, true
		}
	}
	return Record{}, false
}

// CompletedLevelIDs returns the completed level ids in ascending order.
func (m *Manager) CompletedLevelIDs(profileID string) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := mapset.New[int]()
	var ids []int
	for _, r := range m.cache[profileID] {
		if r.Completed && !seen.Has(r.LevelID) {
			seen.Put(r.LevelID)
			ids = append(ids, r.LevelID)
		}
	}
	slices.Sort(ids)
	return ids
}

// HighestUnlocked returns the level after the highest completed one,
// capped at levelCount. It is 1 when nothing is completed.
func (m *Manager) HighestUnlocked(profileID string, levelCount int) int {
	ids := m.CompletedLevelIDs(profileID)
	if len(ids) == 0 {
		return 1
	}
	return min(ids[len(ids)-1]+1, levelCount)
}

// IsLocked reports whether a level cannot be started yet.
func (m *Manager) IsLocked(profileID string, levelID, levelCount int) bool {
	return levelID > m.HighestUnlocked(profileID, levelCount)+1
}

// IsCurrent reports whether levelID is the next level to play.
func (m *Manager) IsCurrent(profileID string, levelID, levelCount int) bool {
	return levelID == m.HighestUnlocked(profileID, levelCount)
}

// RecordCompletion saves a completed level for the active profile.
// Without an active profile it does nothing.
func (m *Manager) RecordCompletion(ctx context.Context, levelID, movesUsed int) error {
	active, ok := m.Active()
	if !ok {
		return nil
	}
	r := Record{
		ProfileID:   active.ID,
		LevelID:     levelID,
		Completed:   true,
		MovesUsed:   movesUsed,
		CompletedAt: m.now().UTC(),
	}
	if err := m.store.SaveProgress(ctx, r); err != nil {
		return fmt.Errorf("progress: save progress: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	records := m.cache[active.ID]
	idx := slices.IndexFunc(records, func(x Record) bool { return x.LevelID == levelID })
	if idx >= 0 {
		records[idx] = r
	} else {
		records = append(records, r)
	}
	m.cache[active.ID] = records
	return nil
}
