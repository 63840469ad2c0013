package seed

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage/memory"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	t.Parallel()

	communities := Default()
	if len(communities) != 12 {
		t.Fatalf("default catalog len = %d, want 12", len(communities))
	}
	seen := map[string]bool{}
	for _, community := range communities {
		if _, err := storage.Normalize(community); err != nil {
			t.Fatalf("normalize %s: %v", community.ID, err)
		}
		if seen[community.ID] {
			t.Fatalf("duplicate id %q", community.ID)
		}
		seen[community.ID] = true
	}
	if !seen["bicycle-riders"] {
		t.Fatal("expected bicycle-riders in default catalog")
	}
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	file, err := os.Open("testdata/catalog.yaml")
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	defer file.Close()

	got, err := LoadYAML(file)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	want := []storage.Community{
		{
			ID:          "bicycle-riders",
			Name:        "Bicycle Riders",
			Description: "Cycling & Adventure",
			Interests:   []string{"bicycle", "cycling"},
			ImageURL:    "/planets/bicycle-riders.png",
			Members:     621,
			Color:       "#B2F2BB",
			Location:    "Singapore, East Coast",
		},
		{
			ID:          "tea-house",
			Name:        "Tea House",
			Description: "Slow Afternoons",
			Interests:   []string{"tea", "calm"},
			ImageURL:    "/planets/custom/tea.png",
			Members:     12,
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAMLRejectsInvalidCatalogs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "no communities", body: "communities: []\n"},
		{name: "unknown field", body: "communities:\n  - id: a\n    name: A\n    rating: 5\n"},
		{name: "missing name", body: "communities:\n  - id: a\n"},
		{name: "duplicate id", body: "communities:\n  - id: a\n    name: A\n  - id: a\n    name: B\n"},
		{name: "negative members", body: "communities:\n  - id: a\n    name: A\n    members: -1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := LoadYAML(strings.NewReader(tc.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestApplySeedsStoreInOrder(t *testing.T) {
	t.Parallel()

	store := memory.New()
	if err := Apply(context.Background(), store, Default()); err != nil {
		t.Fatalf("apply: %v", err)
	}
	// Re-applying is an upsert.
	if err := Apply(context.Background(), store, Default()); err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	all, err := store.AllCommunities(context.Background())
	if err != nil {
		t.Fatalf("all communities: %v", err)
	}
	if len(all) != 12 {
		t.Fatalf("stored len = %d, want 12", len(all))
	}
	if all[0].ID != "urban-oasis" || all[11].ID != "game-forge" {
		t.Fatalf("catalog order = %s ... %s", all[0].ID, all[11].ID)
	}
}

func TestApplyRequiresStore(t *testing.T) {
	t.Parallel()

	if err := Apply(context.Background(), nil, Default()); err == nil {
		t.Fatal("expected error for nil store")
	}
}
