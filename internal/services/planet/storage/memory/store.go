// Package memory keeps visitor planets in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
)

// Store maps visitor ids to planets.
type Store struct {
	mu      sync.RWMutex
	planets map[string]planet.State
}

// New returns an empty store.
func New() *Store {
	return &Store{planets: make(map[string]planet.State)}
}

// Load returns the visitor's planet.
func (s *Store) Load(ctx context.Context, visitorID string) (planet.State, error) {
	if err := ctx.Err(); err != nil {
		return planet.State{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.planets[visitorID]
	if !ok {
		return planet.State{}, planet.ErrNotFound
	}
	return state, nil
}

// Save replaces the visitor's planet.
func (s *Store) Save(ctx context.Context, visitorID string, state planet.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.planets[visitorID] = state
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

var _ planet.Store = (*Store)(nil)
