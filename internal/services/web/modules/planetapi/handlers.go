package planetapi

import (
	"errors"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"github.com/louisbranch/cozy.galaxy/internal/services/designgen"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/httpx"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
)

var errRouteNotFound = apperrors.E(apperrors.KindNotFound, "Not found", "No route matches this path")

// planetResponse is the planet state with its derived design key.
type planetResponse struct {
	planet.State
	DesignKey string `json:"designKey"`
}

type suggestRequest struct {
	Hint string `json:"hint"`
}

type handlers struct {
	modulehandler.Base
	planets   Planets
	generator designgen.Generator
}

func newHandlers(planets Planets, generator designgen.Generator, base modulehandler.Base) handlers {
	return handlers{Base: base, planets: planets, generator: generator}
}

func (h handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	state, err := h.planets.Get(r.Context(), h.VisitorID(r))
	h.writeState(w, r, state, err)
}

func (h handlers) handlePatch(w http.ResponseWriter, r *http.Request) {
	var patch planet.Patch
	if err := httpx.DecodeJSON(w, r, &patch); err != nil {
		h.WriteAPIError(w, r, err)
		return
	}
	state, err := h.planets.Update(r.Context(), h.VisitorID(r), patch)
	h.writeState(w, r, state, err)
}

func (h handlers) handleToggleRings(w http.ResponseWriter, r *http.Request) {
	state, err := h.planets.ToggleRings(r.Context(), h.VisitorID(r))
	h.writeState(w, r, state, err)
}

func (h handlers) handleToggleMoons(w http.ResponseWriter, r *http.Request) {
	state, err := h.planets.ToggleMoons(r.Context(), h.VisitorID(r))
	h.writeState(w, r, state, err)
}

// handleSuggest asks the generator for a description and saves it on the
// visitor's planet. The body is optional.
func (h handlers) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
			h.WriteAPIError(w, r, err)
			return
		}
	}
	visitorID := h.VisitorID(r)
	state, err := h.planets.Get(r.Context(), visitorID)
	if err != nil {
		h.WriteAPIError(w, r, err)
		return
	}
	text, err := h.generator.Suggest(r.Context(), designgen.RequestFromState(state, strings.TrimSpace(req.Hint)))
	if err != nil {
		h.WriteAPIError(w, r, err)
		return
	}
	state, err = h.planets.Update(r.Context(), visitorID, planet.Patch{Description: &text})
	h.writeState(w, r, state, err)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteAPIError(w, r, errRouteNotFound)
}

func (h handlers) writeState(w http.ResponseWriter, r *http.Request, state planet.State, err error) {
	if err != nil {
		h.WriteAPIError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, planetResponse{State: state, DesignKey: state.DesignKey()})
}
