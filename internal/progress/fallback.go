package progress

import (
	"context"

	"github.com/charmbracelet/log"
)

// FallbackStore reads from Remote and falls back to Local when Remote fails.
// Writes always reach Local; Remote writes are best effort.
type FallbackStore struct {
	Remote Store
	Local  Store
	Logger *log.Logger
}

// NewFallbackStore wraps a remote and a local store.
// A nil remote makes the store local-only.
func NewFallbackStore(remote, local Store, logger *log.Logger) *FallbackStore {
	if logger == nil {
		logger = log.Default()
	}
	return &FallbackStore{Remote: remote, Local: local, Logger: logger}
}

func (f *FallbackStore) Profiles(ctx context.Context) ([]Profile, error) {
	if f.Remote != nil {
		profiles, err := f.Remote.Profiles(ctx)
		if err == nil {
			return profiles, nil
		}
		f.Logger.Warn("remote profiles unavailable, using local", "error", err)
	}
	return f.Local.Profiles(ctx)
}

func (f *FallbackStore) SaveProfile(ctx context.Context, p Profile) error {
	if f.Remote != nil {
		if err := f.Remote.SaveProfile(ctx, p); err != nil {
			f.Logger.Warn("remote profile save failed", "profile", p.ID, "error", err)
		}
	}
	return f.Local.SaveProfile(ctx, p)
}

func (f *FallbackStore) DeleteProfile(ctx context.Context, id string) error {
	if f.Remote != nil {
		if err := f.Remote.DeleteProfile(ctx, id); err != nil {
			f.Logger.Warn("remote profile delete failed", "profile", id, "error", err)
		}
	}
	return f.Local.DeleteProfile(ctx, id)
}

func (f *FallbackStore) Progress(ctx context.Context, profileID string) ([]Record, error) {
	if f.Remote != nil {
		records, err := f.Remote.Progress(ctx, profileID)
		if err == nil {
			return records, nil
		}
		f.Logger.Warn("remote progress unavailable, using local", "profile", profileID, "error", err)
	}
	return f.Local.Progress(ctx, profileID)
}

func (f *FallbackStore) SaveProgress(ctx context.Context, r Record) error {
	if f.Remote != nil {
		if err := f.Remote.SaveProgress(ctx, r); err != nil {
			f.Logger.Warn("remote progress save failed", "profile", r.ProfileID, "level", r.LevelID, "error", err)
		}
	}
	return f.Local.SaveProgress(ctx, r)
}

var _ Store = (*FallbackStore)(nil)
