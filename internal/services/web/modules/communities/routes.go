package communities

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
	bare := strings.TrimSuffix(routepath.APICommunitiesPrefix, "/")
	mux.HandleFunc(http.MethodGet+" "+bare, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.APICommunitiesPrefix+"{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.APICommunityPattern, h.handleGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.APICommunityJoin, h.handleJoin)
	mux.HandleFunc(bare, httpx.MethodNotAllowedJSON(http.MethodGet))
	mux.HandleFunc(routepath.APICommunitiesPrefix+"{$}", httpx.MethodNotAllowedJSON(http.MethodGet))
	mux.HandleFunc(routepath.APICommunityPattern, httpx.MethodNotAllowedJSON(http.MethodGet))
	mux.HandleFunc(routepath.APICommunityJoin, httpx.MethodNotAllowedJSON(http.MethodPost))
	mux.HandleFunc(routepath.APICommunitiesPrefix, h.handleNotFound)
}
