package public

import (
	"cmp"
	"net/http"
	"slices"
	"strings"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/catalogview"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/httpx"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/templates"
	"go.uber.org/zap"
)

// featuredCount is how many of the busiest planets the landing page shows.
const featuredCount = 3

var errRouteNotFound = apperrors.E(apperrors.KindNotFound, "Not found", "No route matches this path")

type handlers struct {
	modulehandler.Base
	catalog Catalog
	planets Planets
}

func newHandlers(catalog Catalog, planets Planets, base modulehandler.Base) handlers {
	return handlers{Base: base, catalog: catalog, planets: planets}
}

func (h handlers) handleLanding(w http.ResponseWriter, r *http.Request) {
	communities, err := h.catalog.All(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	view := templates.LandingView{Featured: catalogview.Cards(featured(communities, featuredCount))}
	if joined := strings.TrimSpace(r.URL.Query().Get(routepath.JoinedQueryKey)); joined != "" {
		view.Joined = h.joinedCard(r, joined)
	}
	h.WritePage(w, r, "", nil, templates.Landing(view))
}

// joinedCard resolves the highlight. Unknown ids render no highlight.
func (h handlers) joinedCard(r *http.Request, id string) *templates.CommunityCard {
	if id == routepath.MyPlanetID {
		state, err := h.planets.Get(r.Context(), h.VisitorID(r))
		if err != nil {
			h.Logger().Warn("load visitor planet", zap.Error(err))
			return nil
		}
		card := catalogview.MyPlanetCard(state)
		return &card
	}
	community, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindNotFound {
			h.Logger().Warn("load joined community", zap.String("community_id", id), zap.Error(err))
		}
		return nil
	}
	card := catalogview.Card(community)
	return &card
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if httpx.IsAPIRequest(r) {
		h.WriteAPIError(w, r, errRouteNotFound)
		return
	}
	h.WriteNotFound(w, r)
}

// featured returns the n busiest communities; ties keep catalog order.
func featured(communities []storage.Community, n int) []storage.Community {
	sorted := slices.Clone(communities)
	slices.SortStableFunc(sorted, func(a, b storage.Community) int {
		return cmp.Compare(b.Members, a.Members)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
