// Package sqlite persists visitor planets in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/cozy.galaxy/internal/platform/storage/sqlitedb"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet/storage/sqlite/migrations"
)

// Store keeps one JSON-encoded planet row per visitor.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite planet store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	sqlDB, err := sqlitedb.Open(ctx, path, migrations.FS, "")
	if err != nil {
		return nil, err
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the visitor's planet. Rows that no longer validate are
// reported as errors rather than silently reset.
func (s *Store) Load(ctx context.Context, visitorID string) (planet.State, error) {
	if err := ctx.Err(); err != nil {
		return planet.State{}, err
	}
	var raw string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT state_json FROM visitor_planets WHERE visitor_id = ?`, visitorID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return planet.State{}, planet.ErrNotFound
	}
	if err != nil {
		return planet.State{}, fmt.Errorf("load planet: %w", err)
	}
	var state planet.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return planet.State{}, fmt.Errorf("decode planet for %s: %w", visitorID, err)
	}
	if err := state.Validate(); err != nil {
		return planet.State{}, fmt.Errorf("stored planet for %s: %w", visitorID, err)
	}
	return state, nil
}

// Save upserts the visitor's planet.
func (s *Store) Save(ctx context.Context, visitorID string, state planet.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode planet: %w", err)
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO visitor_planets (visitor_id, state_json, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(visitor_id) DO UPDATE SET
		   state_json = excluded.state_json,
		   updated_at = excluded.updated_at`,
		visitorID,
		string(raw),
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save planet: %w", err)
	}
	return nil
}

var _ planet.Store = (*Store)(nil)
