// Package memory provides an in-process community store.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
)

// Store keeps communities in memory in catalog order.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]storage.Community
	order []string
	now   func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		byID: make(map[string]storage.Community),
		now:  time.Now,
	}
}

// CreateCommunity inserts a community, failing when the id is taken.
func (s *Store) CreateCommunity(ctx context.Context, community storage.Community) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	community, err := storage.Normalize(community)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[community.ID]; ok {
		return storage.ErrAlreadyExists
	}
	s.insertLocked(storage.Stamp(community, s.now()))
	return nil
}

// PutCommunity inserts or replaces a community. Replacing keeps the
// community's catalog position and creation time.
func (s *Store) PutCommunity(ctx context.Context, community storage.Community) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	community, err := storage.Normalize(community)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.byID[community.ID]
	if !ok {
		s.insertLocked(storage.Stamp(community, s.now()))
		return nil
	}
	community.CreatedAt = existing.CreatedAt
	community.UpdatedAt = s.now().UTC()
	s.byID[community.ID] = community
	return nil
}

func (s *Store) insertLocked(community storage.Community) {
	s.byID[community.ID] = community
	s.order = append(s.order, community.ID)
}

// GetCommunity returns one community by id.
func (s *Store) GetCommunity(ctx context.Context, id string) (storage.Community, error) {
	if err := ctx.Err(); err != nil {
		return storage.Community{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Community{}, fmt.Errorf("community id is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	community, ok := s.byID[id]
	if !ok {
		return storage.Community{}, storage.ErrNotFound
	}
	return clone(community), nil
}

// ListCommunities returns one page of communities ordered by id.
func (s *Store) ListCommunities(ctx context.Context, pageSize int, pageToken string) (storage.CommunityPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.CommunityPage{}, err
	}
	if pageSize <= 0 {
		return storage.CommunityPage{}, fmt.Errorf("page size must be greater than zero")
	}
	pageToken = strings.TrimSpace(pageToken)

	s.mu.RLock()
	ids := make([]string, 0, len(s.order))
	for _, id := range s.order {
		if id > pageToken {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	page := storage.CommunityPage{Communities: make([]storage.Community, 0, min(pageSize, len(ids)))}
	for _, id := range ids {
		if len(page.Communities) == pageSize {
			break
		}
		page.Communities = append(page.Communities, clone(s.byID[id]))
	}
	s.mu.RUnlock()

	if len(ids) > pageSize {
		page.NextPageToken = page.Communities[pageSize-1].ID
	}
	return page, nil
}

// AllCommunities returns every community in catalog order.
func (s *Store) AllCommunities(ctx context.Context) ([]storage.Community, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	communities := make([]storage.Community, 0, len(s.order))
	for _, id := range s.order {
		communities = append(communities, clone(s.byID[id]))
	}
	return communities, nil
}

// AddMembers adjusts a community's member count by delta, never going below
// zero, and returns the updated community.
func (s *Store) AddMembers(ctx context.Context, id string, delta int) (storage.Community, error) {
	if err := ctx.Err(); err != nil {
		return storage.Community{}, err
	}
	id = strings.TrimSpace(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	community, ok := s.byID[id]
	if !ok {
		return storage.Community{}, storage.ErrNotFound
	}
	community.Members = max(community.Members+delta, 0)
	community.UpdatedAt = s.now().UTC()
	s.byID[id] = community
	return clone(community), nil
}

func clone(community storage.Community) storage.Community {
	community.Interests = slices.Clone(community.Interests)
	return community
}

var _ storage.CommunityStore = (*Store)(nil)
