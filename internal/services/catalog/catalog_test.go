package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/search"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := OpenStore(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	service, err := NewService(store)
	require.NoError(t, err)
	return service
}

func TestNewServiceRequiresStore(t *testing.T) {
	t.Parallel()

	_, err := NewService(nil)
	require.Error(t, err)
}

func TestOpenStoreSeedsMemoryCatalog(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	all, err := service.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 12)
	require.Equal(t, "urban-oasis", all[0].ID)
}

func TestOpenStoreSeedsSQLiteOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := OpenStore(ctx, path)
	require.NoError(t, err)
	service, err := NewService(store)
	require.NoError(t, err)
	joined, err := service.Join(ctx, "bicycle-riders")
	require.NoError(t, err)
	require.Equal(t, 622, joined.Members)
	require.NoError(t, store.Close())

	reopened, err := OpenStore(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	got, err := reopened.GetCommunity(ctx, "bicycle-riders")
	require.NoError(t, err)
	require.Equal(t, 622, got.Members, "reopening must not reseed")
}

func TestServiceSearch(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	response, err := service.Search(context.Background(), "bicycle")
	require.NoError(t, err)
	require.Equal(t, 1, response.Total)
	require.Equal(t, "bicycle-riders", response.Results[0].ID)

	_, err = service.Search(context.Background(), "")
	require.ErrorIs(t, err, search.ErrEmptyQuery)
}

func TestServiceListPageSizes(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()

	page, err := service.List(ctx, 0, "")
	require.NoError(t, err)
	require.Len(t, page.Communities, 12)
	require.Empty(t, page.NextPageToken)

	page, err = service.List(ctx, 5, "")
	require.NoError(t, err)
	require.Len(t, page.Communities, 5)
	require.Equal(t, page.Communities[4].ID, page.NextPageToken)

	next, err := service.List(ctx, 5, page.NextPageToken)
	require.NoError(t, err)
	require.Greater(t, next.Communities[0].ID, page.NextPageToken)

	_, err = service.List(ctx, -1, "")
	require.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))

	page, err = service.List(ctx, 1000, "")
	require.NoError(t, err)
	require.Len(t, page.Communities, 12)
}

func TestServiceGetAndJoin(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()

	community, err := service.Get(ctx, "book-worms")
	require.NoError(t, err)
	require.Equal(t, 834, community.Members)

	joined, err := service.Join(ctx, "book-worms")
	require.NoError(t, err)
	require.Equal(t, community.Members+1, joined.Members)

	_, err = service.Get(ctx, "missing")
	require.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	require.True(t, errors.Is(err, storage.ErrNotFound))

	_, err = service.Join(ctx, " ")
	require.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
