package planet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Store persists one planet per visitor. Load returns ErrNotFound for
// visitors without a saved planet.
type Store interface {
	Load(ctx context.Context, visitorID string) (State, error)
	Save(ctx context.Context, visitorID string, state State) error
}

// ErrNotFound indicates the visitor has no saved planet.
var ErrNotFound = errors.New("planet not found")

// Service applies changes to visitor planets.
type Service struct {
	store Store
	// mu serializes read-modify-write cycles.
	mu sync.Mutex
}

// NewService builds a planet service.
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("planet store is required")
	}
	return &Service{store: store}, nil
}

// Get returns the visitor's planet, or the default planet.
func (s *Service) Get(ctx context.Context, visitorID string) (State, error) {
	visitorID, err := requireVisitor(visitorID)
	if err != nil {
		return State{}, err
	}
	return s.load(ctx, visitorID)
}

// Update applies patch and returns the stored result.
func (s *Service) Update(ctx context.Context, visitorID string, patch Patch) (State, error) {
	return s.mutate(ctx, visitorID, func(state State) (State, error) {
		return state.Apply(patch)
	})
}

// Launch stores the visitor's launch description.
func (s *Service) Launch(ctx context.Context, visitorID, description string) (State, error) {
	return s.mutate(ctx, visitorID, func(state State) (State, error) {
		if err := state.SetLaunchDescription(description); err != nil {
			return State{}, err
		}
		return state, nil
	})
}

// ToggleRings flips the visitor's rings.
func (s *Service) ToggleRings(ctx context.Context, visitorID string) (State, error) {
	return s.mutate(ctx, visitorID, func(state State) (State, error) {
		state.ToggleRings()
		return state, nil
	})
}

// ToggleMoons flips the visitor's moons.
func (s *Service) ToggleMoons(ctx context.Context, visitorID string) (State, error) {
	return s.mutate(ctx, visitorID, func(state State) (State, error) {
		state.ToggleMoons()
		return state, nil
	})
}

func (s *Service) mutate(ctx context.Context, visitorID string, fn func(State) (State, error)) (State, error) {
	visitorID, err := requireVisitor(visitorID)
	if err != nil {
		return State{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx, visitorID)
	if err != nil {
		return State{}, err
	}
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	if err := s.store.Save(ctx, visitorID, next); err != nil {
		return current, fmt.Errorf("save planet: %w", err)
	}
	return next, nil
}

func (s *Service) load(ctx context.Context, visitorID string) (State, error) {
	state, err := s.store.Load(ctx, visitorID)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load planet: %w", err)
	}
	return state, nil
}

func requireVisitor(visitorID string) (string, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return "", errors.New("visitor id is required")
	}
	return visitorID, nil
}
