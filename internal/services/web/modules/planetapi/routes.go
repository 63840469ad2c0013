package planetapi

import (
	"net/http"
	"strings"

	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/httpx"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	bare := strings.TrimSuffix(routepath.APIPlanetPrefix, "/")
	for _, path := range []string{bare, routepath.APIPlanetPrefix + "{$}"} {
		mux.HandleFunc(http.MethodGet+" "+path, h.handleGet)
		mux.HandleFunc(http.MethodPatch+" "+path, h.handlePatch)
		mux.HandleFunc(path, httpx.MethodNotAllowedJSON(http.MethodGet+", "+http.MethodPatch))
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.APIPlanetRings, h.handleToggleRings)
	mux.HandleFunc(http.MethodPost+" "+routepath.APIPlanetMoons, h.handleToggleMoons)
	mux.HandleFunc(http.MethodPost+" "+routepath.APIPlanetSuggest, h.handleSuggest)
	for _, path := range []string{routepath.APIPlanetRings, routepath.APIPlanetMoons, routepath.APIPlanetSuggest} {
		mux.HandleFunc(path, httpx.MethodNotAllowedJSON(http.MethodPost))
	}
	mux.HandleFunc(routepath.APIPlanetPrefix, h.handleNotFound)
}
