// Package storage provides SQLite-based persistence for profiles and level progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-flood/internal/progress"
)

// timeLayout is how timestamps are written; SQLite's CURRENT_TIMESTAMP uses the same layout.
const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// LeaderboardEntry is one profile's best result on a level.
type LeaderboardEntry struct {
	ProfileID   string
	Name        string
	Avatar      string
	MovesUsed   int
	CompletedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS progress (
			profile_id TEXT NOT NULL,
			level_id INTEGER NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			moves_used INTEGER NOT NULL DEFAULT 0,
			completed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile_id, level_id)
		);
		CREATE INDEX IF NOT EXISTS idx_progress_level ON progress(level_id, completed, moves_used);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Profiles returns all profiles, oldest first.
func (s *Store) Profiles(ctx context.Context) ([]progress.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, avatar, created_at
		 FROM profiles
		 ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []progress.Profile
	for rows.Next() {
		var p progress.Profile
		var createdAt any
		if err := rows.Scan(&p.ID, &p.Name, &p.Avatar, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return profiles, nil
}

// SaveProfile inserts a profile or updates its name and avatar.
func (s *Store) SaveProfile(ctx context.Context, p progress.Profile) error {
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, name, avatar, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, avatar = excluded.avatar`,
		p.ID, p.Name, p.Avatar, formatTime(created),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save profile: %w", err)
	}
	return nil
}

// DeleteProfile removes a profile and its progress in one transaction.
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM progress WHERE profile_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete progress: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete profile: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// Progress returns a profile's records ordered by level.
func (s *Store) Progress(ctx context.Context, profileID string) ([]progress.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT profile_id, level_id, completed, moves_used, completed_at
		 FROM progress
		 WHERE profile_id = ?
		 ORDER BY level_id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var records []progress.Record
	for rows.Next() {
		var r progress.Record
		var completedAt any
		if err := rows.Scan(&r.ProfileID, &r.LevelID, &r.Completed, &r.MovesUsed, &completedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CompletedAt = parseTime(completedAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SaveProgress upserts the record for (profile, level).
func (s *Store) SaveProgress(ctx context.Context, r progress.Record) error {
	at := r.CompletedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (profile_id, level_id, completed, moves_used, completed_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(profile_id, level_id) DO UPDATE SET
		   completed = excluded.completed,
		   moves_used = excluded.moves_used,
		   completed_at = excluded.completed_at`,
		r.ProfileID, r.LevelID, r.Completed, r.MovesUsed, formatTime(at),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// Leaderboard returns the fewest-move completions of a level across profiles.
// Ties go to whoever finished first.
func (s *Store) Leaderboard(ctx context.Context, levelID, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.name, p.avatar, g.moves_used, g.completed_at
		 FROM progress g
		 JOIN profiles p ON p.id = g.profile_id
		 WHERE g.level_id = ? AND g.completed = 1
		 ORDER BY g.moves_used ASC, g.completed_at ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var completedAt any
		if err := rows.Scan(&e.ProfileID, &e.Name, &e.Avatar, &e.MovesUsed, &completedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CompletedAt = parseTime(completedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// CompletedCount returns how many levels a profile has finished.
func (s *Store) CompletedCount(ctx context.Context, profileID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM progress WHERE profile_id = ? AND completed = 1",
		profileID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count progress: %w", err)
	}
	return n, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime handles both time.Time and string, depending on how the driver returns DATETIME.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timeLayout, string(v)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

var _ progress.Store = (*Store)(nil)
