package galaxy

import (
	"net/http"
	"strings"

	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/catalogview"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/templates"
	"go.uber.org/zap"
)

// noMatchesNotice replaces the list when a search finds nothing.
const noMatchesNotice = "No planets found. Try another interest or name."

type handlers struct {
	modulehandler.Base
	catalog Catalog
	planets Planets
}

func newHandlers(catalog Catalog, planets Planets, base modulehandler.Base) handlers {
	return handlers{Base: base, catalog: catalog, planets: planets}
}

func (h handlers) handleGalaxy(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get(routepath.SearchQueryKey))
	view := templates.GalaxyView{Query: query}

	if query == "" {
		communities, err := h.catalog.All(r.Context())
		if err != nil {
			h.WriteError(w, r, err)
			return
		}
		view.Communities = catalogview.Cards(communities)
		if state, err := h.planets.Get(r.Context(), h.VisitorID(r)); err != nil {
			h.Logger().Warn("load visitor planet", zap.Error(err))
		} else {
			card := catalogview.MyPlanetCard(state)
			view.MyPlanet = &card
		}
	} else {
		resp, err := h.catalog.Search(r.Context(), query)
		if err != nil {
			h.WriteError(w, r, err)
			return
		}
		view.Communities = catalogview.ResultCards(resp.Results)
		if len(view.Communities) == 0 {
			view.Notice = noMatchesNotice
		}
	}

	crumbs := []templates.Breadcrumb{{Label: "Home", URL: routepath.Root}, {Label: "Galaxy"}}
	h.WritePage(w, r, "Galaxy", crumbs, templates.Galaxy(view))
}
