package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/louisbranch/cozy.galaxy/internal/services/planet/storage/memory"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet/storage/sqlite"
)

func TestOpenSelectsBackend(t *testing.T) {
	t.Parallel()

	store, err := Open(context.Background(), "")
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := store.(*memory.Store); !ok {
		t.Fatalf("store = %T, want *memory.Store", store)
	}

	store, err = Open(context.Background(), filepath.Join(t.TempDir(), "planets.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()
	if _, ok := store.(*sqlite.Store); !ok {
		t.Fatalf("store = %T, want *sqlite.Store", store)
	}
}
