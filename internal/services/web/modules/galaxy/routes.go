package galaxy

import (
	"net/http"

	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Galaxy, h.handleGalaxy)
	mux.HandleFunc(http.MethodGet+" "+routepath.GalaxyPrefix+"{$}", h.handleGalaxy)
	mux.HandleFunc(routepath.GalaxyPrefix, h.WriteNotFound)
}
