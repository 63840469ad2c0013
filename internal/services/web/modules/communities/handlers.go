package communities

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

var (
	errInvalidPageSize = apperrors.E(apperrors.KindInvalidInput, "Invalid page size", "page_size must be a whole number")
	errRouteNotFound   = apperrors.E(apperrors.KindNotFound, "Not found", "No route matches this path")
)

type handlers struct {
	modulehandler.Base
	catalog Catalog
}

func newHandlers(catalog Catalog, base modulehandler.Base) handlers {
	return handlers{Base: base, catalog: catalog}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	pageSize := 0
	if raw := strings.TrimSpace(query.Get(routepath.PageSizeQueryKey)); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.WriteAPIError(w, r, errInvalidPageSize)
			return
		}
		pageSize = parsed
	}
	page, err := h.catalog.List(r.Context(), pageSize, query.Get(routepath.PageTokenQueryKey))
	if err != nil {
		h.WriteAPIError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, listResponse{
		Communities:   communitiesJSON(page.Communities),
		NextPageToken: page.NextPageToken,
	})
}

func (h handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	community, err := h.catalog.Get(r.Context(), r.PathValue("communityID"))
	if err != nil {
		h.WriteAPIError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, communityJSON(community))
}

func (h handlers) handleJoin(w http.ResponseWriter, r *http.Request) {
	community, err := h.catalog.Join(r.Context(), r.PathValue("communityID"))
	if err != nil {
		h.WriteAPIError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, communityJSON(community))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteAPIError(w, r, errRouteNotFound)
}
