package community

import (
	"net/http"
	"strings"

	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/catalogview"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/flash"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	catalog Catalog
	planets Planets
}

func newHandlers(catalog Catalog, planets Planets, base modulehandler.Base) handlers {
	return handlers{Base: base, catalog: catalog, planets: planets}
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("communityID"))
	var view templates.CommunityView
	if id == routepath.MyPlanetID {
		state, err := h.planets.Get(r.Context(), h.VisitorID(r))
		if err != nil {
			h.WriteError(w, r, err)
			return
		}
		view = catalogview.MyPlanet(state)
	} else {
		community, err := h.catalog.Get(r.Context(), id)
		if err != nil {
			h.WriteError(w, r, err)
			return
		}
		view = catalogview.Community(community)
	}
	crumbs := []templates.Breadcrumb{
		{Label: "Home", URL: routepath.Root},
		{Label: "Galaxy", URL: routepath.Galaxy},
		{Label: view.Name},
	}
	h.WritePage(w, r, view.Name, crumbs, templates.Community(view))
}

// handleJoin lands the visitor on a planet. Landing on your own planet
// changes nothing in the catalog.
func (h handlers) handleJoin(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("communityID"))
	name := catalogview.MyPlanetName
	if id != routepath.MyPlanetID {
		community, err := h.catalog.Join(r.Context(), id)
		if err != nil {
			h.WriteError(w, r, err)
			return
		}
		id, name = community.ID, community.Name
	}
	h.RedirectWithNotice(w, r, routepath.RootWithJoined(id), flash.Success("Welcome to "+name+"!"))
}
