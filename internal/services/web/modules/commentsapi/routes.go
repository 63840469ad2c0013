package commentsapi

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
	bare := strings.TrimSuffix(routepath.APICommentsPrefix, "/")
	for _, path := range []string{bare, routepath.APICommentsPrefix + "{$}"} {
		mux.HandleFunc(http.MethodGet+" "+path, h.handleList)
		mux.HandleFunc(http.MethodPost+" "+path, h.handlePost)
		mux.HandleFunc(path, httpx.MethodNotAllowedJSON(http.MethodGet+", "+http.MethodPost))
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.APICommentPattern, h.handleGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.APICommentLikePattern, h.handleLike)
	mux.HandleFunc(http.MethodPut+" "+routepath.APICommentMovePattern, h.handleMove)
	mux.HandleFunc(routepath.APICommentPattern, httpx.MethodNotAllowedJSON(http.MethodGet))
	mux.HandleFunc(routepath.APICommentLikePattern, httpx.MethodNotAllowedJSON(http.MethodPost))
	mux.HandleFunc(routepath.APICommentMovePattern, httpx.MethodNotAllowedJSON(http.MethodPut))
	mux.HandleFunc(routepath.APICommentsPrefix, h.handleNotFound)
}
