package community

import (
	"net/http"

	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/httpx"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.CommunityPattern, h.handleDetail)
	mux.HandleFunc(http.MethodPost+" "+routepath.CommunityJoinPattern, h.handleJoin)
	mux.HandleFunc(routepath.CommunityJoinPattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.CommunityPrefix, h.WriteNotFound)
}
