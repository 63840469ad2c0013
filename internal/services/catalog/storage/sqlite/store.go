// Package sqlite provides a SQLite-backed community store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/cozy.galaxy/internal/platform/storage/sqlitedb"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage/sqlite/migrations"
)

const communityColumns = `id, name, description, interests, image_url, members, color, location, created_at, updated_at`

// Store persists catalog state in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite catalog store and applies embedded migrations.
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

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// CreateCommunity inserts one community at the end of the catalog.
func (s *Store) CreateCommunity(ctx context.Context, community storage.Community) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	community, err := storage.Normalize(community)
	if err != nil {
		return err
	}
	community = storage.Stamp(community, s.now())
	interests, err := json.Marshal(community.Interests)
	if err != nil {
		return fmt.Errorf("encode interests: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO communities (
		   id, position, name, description, interests, image_url,
		   members, color, location, created_at, updated_at
		 ) VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM communities), ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		community.ID,
		community.Name,
		community.Description,
		string(interests),
		community.ImageURL,
		community.Members,
		community.Color,
		community.Location,
		toMillis(community.CreatedAt),
		toMillis(community.UpdatedAt),
	)
	if err != nil {
		if sqlitedb.IsUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create community: %w", err)
	}
	return nil
}

// PutCommunity inserts or replaces a community, keeping position and
// creation time of an existing row.
func (s *Store) PutCommunity(ctx context.Context, community storage.Community) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	normalized, err := storage.Normalize(community)
	if err != nil {
		return err
	}
	interests, err := json.Marshal(normalized.Interests)
	if err != nil {
		return fmt.Errorf("encode interests: %w", err)
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE communities
		    SET name = ?, description = ?, interests = ?, image_url = ?,
		        members = ?, color = ?, location = ?, updated_at = ?
		  WHERE id = ?`,
		normalized.Name,
		normalized.Description,
		string(interests),
		normalized.ImageURL,
		normalized.Members,
		normalized.Color,
		normalized.Location,
		toMillis(s.now()),
		normalized.ID,
	)
	if err != nil {
		return fmt.Errorf("update community: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		return nil
	}
	return s.CreateCommunity(ctx, normalized)
}

// GetCommunity returns one community by id.
func (s *Store) GetCommunity(ctx context.Context, id string) (storage.Community, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Community{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Community{}, fmt.Errorf("community id is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+communityColumns+` FROM communities WHERE id = ?`, id)
	community, err := scanCommunity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Community{}, storage.ErrNotFound
		}
		return storage.Community{}, fmt.Errorf("get community: %w", err)
	}
	return community, nil
}

// ListCommunities returns one page of communities ordered by id.
func (s *Store) ListCommunities(ctx context.Context, pageSize int, pageToken string) (storage.CommunityPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.CommunityPage{}, err
	}
	if pageSize <= 0 {
		return storage.CommunityPage{}, fmt.Errorf("page size must be greater than zero")
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+communityColumns+`
		   FROM communities
		  WHERE id > ?
		  ORDER BY id ASC
		  LIMIT ?`,
		strings.TrimSpace(pageToken),
		pageSize+1,
	)
	if err != nil {
		return storage.CommunityPage{}, fmt.Errorf("list communities: %w", err)
	}
	communities, err := scanCommunities(rows)
	if err != nil {
		return storage.CommunityPage{}, fmt.Errorf("list communities: %w", err)
	}
	page := storage.CommunityPage{Communities: communities}
	if len(page.Communities) > pageSize {
		page.NextPageToken = page.Communities[pageSize-1].ID
		page.Communities = page.Communities[:pageSize]
	}
	return page, nil
}

// AllCommunities returns every community in catalog order.
func (s *Store) AllCommunities(ctx context.Context) ([]storage.Community, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+communityColumns+` FROM communities ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("all communities: %w", err)
	}
	communities, err := scanCommunities(rows)
	if err != nil {
		return nil, fmt.Errorf("all communities: %w", err)
	}
	return communities, nil
}

// AddMembers adjusts the member count by delta, never below zero.
func (s *Store) AddMembers(ctx context.Context, id string, delta int) (storage.Community, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Community{}, err
	}
	id = strings.TrimSpace(id)
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE communities SET members = MAX(members + ?, 0), updated_at = ? WHERE id = ?`,
		delta,
		toMillis(s.now()),
		id,
	)
	if err != nil {
		return storage.Community{}, fmt.Errorf("add members: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storage.Community{}, fmt.Errorf("add members: %w", err)
	}
	if affected == 0 {
		return storage.Community{}, storage.ErrNotFound
	}
	return s.GetCommunity(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCommunity(row rowScanner) (storage.Community, error) {
	var (
		community storage.Community
		interests string
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(
		&community.ID,
		&community.Name,
		&community.Description,
		&interests,
		&community.ImageURL,
		&community.Members,
		&community.Color,
		&community.Location,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.Community{}, err
	}
	if err := json.Unmarshal([]byte(interests), &community.Interests); err != nil {
		return storage.Community{}, fmt.Errorf("decode interests for %s: %w", community.ID, err)
	}
	community.CreatedAt = fromMillis(createdAt)
	community.UpdatedAt = fromMillis(updatedAt)
	return community, nil
}

func scanCommunities(rows *sql.Rows) ([]storage.Community, error) {
	defer rows.Close()
	communities := make([]storage.Community, 0)
	for rows.Next() {
		community, err := scanCommunity(rows)
		if err != nil {
			return nil, err
		}
		communities = append(communities, community)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return communities, nil
}

var _ storage.CommunityStore = (*Store)(nil)
