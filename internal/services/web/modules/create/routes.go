package create

import (
	"net/http"

	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/httpx"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	for _, path := range []string{routepath.Create, routepath.CreatePrefix + "{$}"} {
		mux.HandleFunc(http.MethodGet+" "+path, h.handleForm)
		mux.HandleFunc(http.MethodPost+" "+path, h.handleSave)
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.CreateSuggest, h.handleSuggest)
	mux.HandleFunc(routepath.CreateSuggest, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodGet+" "+routepath.CreateCustomize, h.handleLaunchForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.CreateCustomize, h.handleLaunch)
	mux.HandleFunc(routepath.CreateCustomize, httpx.MethodNotAllowed(http.MethodGet+", "+http.MethodPost))
	mux.HandleFunc(routepath.CreatePrefix, h.WriteNotFound)
}
