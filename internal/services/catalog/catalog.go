// Package catalog serves the community catalog: search, listing, detail and
// joining.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/search"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/seed"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage/memory"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage/sqlite"
)

const (
	// DefaultPageSize is used when a list request omits a page size.
	DefaultPageSize = 20
	// MaxPageSize caps list requests.
	MaxPageSize = 100
)

var errCommunityNotFound = apperrors.E(apperrors.KindNotFound, "Community not found", "No planet with that id exists in this galaxy")

// Service exposes catalog operations over a community store.
type Service struct {
	store storage.CommunityStore
}

// NewService builds a catalog service.
func NewService(store storage.CommunityStore) (*Service, error) {
	if store == nil {
		return nil, errors.New("community store is required")
	}
	return &Service{store: store}, nil
}

// Search runs a free-text search over the whole catalog.
func (s *Service) Search(ctx context.Context, query string) (search.Response, error) {
	return search.Search(ctx, s.store, query)
}

// List returns one page of communities ordered by id.
func (s *Service) List(ctx context.Context, pageSize int, pageToken string) (storage.CommunityPage, error) {
	switch {
	case pageSize < 0:
		return storage.CommunityPage{}, apperrors.E(apperrors.KindInvalidInput, "Invalid page size", "page_size must not be negative")
	case pageSize == 0:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	page, err := s.store.ListCommunities(ctx, pageSize, strings.TrimSpace(pageToken))
	if err != nil {
		return storage.CommunityPage{}, fmt.Errorf("list communities: %w", err)
	}
	return page, nil
}

// All returns every community in catalog order.
func (s *Service) All(ctx context.Context) ([]storage.Community, error) {
	communities, err := s.store.AllCommunities(ctx)
	if err != nil {
		return nil, fmt.Errorf("all communities: %w", err)
	}
	return communities, nil
}

// Get returns one community.
func (s *Service) Get(ctx context.Context, id string) (storage.Community, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Community{}, errCommunityNotFound
	}
	community, err := s.store.GetCommunity(ctx, id)
	if err != nil {
		return storage.Community{}, mapStoreError("get community", err)
	}
	return community, nil
}

// Join adds one member to a community and returns its new state.
func (s *Service) Join(ctx context.Context, id string) (storage.Community, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Community{}, errCommunityNotFound
	}
	community, err := s.store.AddMembers(ctx, id, 1)
	if err != nil {
		return storage.Community{}, mapStoreError("join community", err)
	}
	return community, nil
}

func mapStoreError(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.Wrap(apperrors.KindNotFound, "Community not found", "No planet with that id exists in this galaxy", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Store is a community store that may hold resources.
type Store interface {
	storage.CommunityStore
	Close() error
}

type memoryStore struct {
	*memory.Store
}

func (memoryStore) Close() error { return nil }

// OpenStore opens the catalog backing store. An empty path selects an
// in-memory store. Either store is seeded with the default catalog when it
// holds no communities.
func OpenStore(ctx context.Context, path string) (Store, error) {
	var store Store
	if strings.TrimSpace(path) == "" {
		store = memoryStore{Store: memory.New()}
	} else {
		sqliteStore, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open catalog store: %w", err)
		}
		store = sqliteStore
	}

	existing, err := store.AllCommunities(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("inspect catalog store: %w", err)
	}
	if len(existing) == 0 {
		if err := seed.Apply(ctx, store, seed.Default()); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return store, nil
}
