// Package progress tracks player profiles and per-level completion records.
package progress

import (
	"context"
	"time"
)

// Profile is a named player with an avatar.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// Record is the completion state of one level for one profile.
// (ProfileID, LevelID) is unique; saving a replay overwrites the previous record.
type Record struct {
	ProfileID   string    `json:"profile_id"`
	LevelID     int       `json:"level_id"`
	Completed   bool      `json:"completed"`
	MovesUsed   int       `json:"moves_used"`
	CompletedAt time.Time `json:"completed_at"`
}

// Store persists profiles and progress.
type Store interface {
	Profiles(ctx context.Context) ([]Profile, error)
	SaveProfile(ctx context.Context, p Profile) error
	// DeleteProfile removes the profile and all of its progress.
	DeleteProfile(ctx context.Context, id string) error
	Progress(ctx context.Context, profileID string) ([]Record, error)
	SaveProgress(ctx context.Context, r Record) error
}
