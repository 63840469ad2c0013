// Package storage selects the planet store backend.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet/storage/memory"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet/storage/sqlite"
)

// Store is a planet store that may hold resources.
type Store interface {
	planet.Store
	Close() error
}

// Open returns an in-memory store for an empty path and a SQLite store
// otherwise.
func Open(ctx context.Context, path string) (Store, error) {
	if strings.TrimSpace(path) == "" {
		return memory.New(), nil
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open planet store: %w", err)
	}
	return store, nil
}
