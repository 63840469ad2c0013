package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
)

func TestCreateGetRoundTrip(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()
	if err := store.CreateCommunity(ctx, storage.Community{ID: "book-worms", Name: "Book Worms", Members: 834}); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := store.GetCommunity(ctx, "book-worms")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Book Worms" || got.Members != 834 {
		t.Fatalf("got %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be stamped")
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()
	c := storage.Community{ID: "dup", Name: "Dup"}
	if err := store.CreateCommunity(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.CreateCommunity(ctx, c); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate create error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	if _, err := New().GetCommunity(context.Background(), "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestPutKeepsCatalogOrder(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		if err := store.PutCommunity(ctx, storage.Community{ID: id, Name: id}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}
	if err := store.PutCommunity(ctx, storage.Community{ID: "c", Name: "renamed"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	all, err := store.AllCommunities(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	var ids []string
	for _, c := range all {
		ids = append(ids, c.ID)
	}
	if got := ids; len(got) != 3 || got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("order = %v, want [c a b]", got)
	}
	if all[0].Name != "renamed" {
		t.Fatalf("name = %q, want renamed", all[0].Name)
	}
}

func TestListCommunitiesPaginatesByID(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()
	for _, id := range []string{"gamma", "alpha", "beta"} {
		if err := store.CreateCommunity(ctx, storage.Community{ID: id, Name: id}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	first, err := store.ListCommunities(ctx, 2, "")
	if err != nil {
		t.Fatalf("list page one: %v", err)
	}
	if len(first.Communities) != 2 || first.Communities[0].ID != "alpha" || first.NextPageToken != "beta" {
		t.Fatalf("page one = %+v", first)
	}
	second, err := store.ListCommunities(ctx, 2, first.NextPageToken)
	if err != nil {
		t.Fatalf("list page two: %v", err)
	}
	if len(second.Communities) != 1 || second.Communities[0].ID != "gamma" || second.NextPageToken != "" {
		t.Fatalf("page two = %+v", second)
	}
	if _, err := store.ListCommunities(ctx, 0, ""); err == nil {
		t.Fatal("expected page size error")
	}
}

func TestAddMembersClampsAtZero(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()
	if err := store.CreateCommunity(ctx, storage.Community{ID: "x", Name: "X", Members: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := store.AddMembers(ctx, "x", -5)
	if err != nil {
		t.Fatalf("add members: %v", err)
	}
	if got.Members != 0 {
		t.Fatalf("members = %d, want 0", got.Members)
	}
	if _, err := store.AddMembers(ctx, "missing", 1); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestAddMembersIsSafeForConcurrentUse(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()
	if err := store.CreateCommunity(ctx, storage.Community{ID: "x", Name: "X"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.AddMembers(ctx, "x", 1)
		}()
	}
	wg.Wait()
	got, _ := store.GetCommunity(ctx, "x")
	if got.Members != 50 {
		t.Fatalf("members = %d, want 50", got.Members)
	}
}

func TestReturnedInterestsAreCopies(t *testing.T) {
	t.Parallel()

	store := New()
	ctx := context.Background()
	if err := store.CreateCommunity(ctx, storage.Community{ID: "x", Name: "X", Interests: []string{"art"}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, _ := store.GetCommunity(ctx, "x")
	got.Interests[0] = "mutated"
	again, _ := store.GetCommunity(ctx, "x")
	if again.Interests[0] != "art" {
		t.Fatalf("interests leaked mutation: %v", again.Interests)
	}
}
