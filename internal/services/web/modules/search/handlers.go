package search

import (
	"net/http"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	catalogsearch "github.com/louisbranch/cozy.galaxy/internal/services/catalog/search"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/weberror"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

// cacheControl lets shared caches serve a result for a minute and keep
// serving it while revalidating for two more.
const cacheControl = "public, s-maxage=60, stale-while-revalidate=120"

var errRouteNotFound = apperrors.E(apperrors.KindNotFound, "Not found", "No route matches this path")

type handlers struct {
	modulehandler.Base
	searcher Searcher
}

func newHandlers(searcher Searcher, base modulehandler.Base) handlers {
	return handlers{Base: base, searcher: searcher}
}

func (h handlers) handleSearch(w http.ResponseWriter, r *http.Request) {
	resp, err := h.searcher.Search(r.Context(), r.URL.Query().Get(routepath.SearchQueryKey))
	if err != nil {
		weberror.WriteAPIError(w, r, err, catalogsearch.FailureMessage, h.Logger())
		return
	}
	w.Header().Set("Cache-Control", cacheControl)
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteAPIError(w, r, errRouteNotFound)
}
