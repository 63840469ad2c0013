package search

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
	bare := strings.TrimSuffix(routepath.APISearchPrefix, "/")
	mux.HandleFunc(http.MethodGet+" "+bare, h.handleSearch)
	mux.HandleFunc(http.MethodGet+" "+routepath.APISearchPrefix+"{$}", h.handleSearch)
	mux.HandleFunc(bare, httpx.MethodNotAllowedJSON(http.MethodGet))
	mux.HandleFunc(routepath.APISearchPrefix+"{$}", httpx.MethodNotAllowedJSON(http.MethodGet))
	mux.HandleFunc(routepath.APISearchPrefix, h.handleNotFound)
}
