package wall

import (
	"net/http"

	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/httpx"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	for _, path := range []string{routepath.Comments, routepath.CommentsPrefix + "{$}"} {
		mux.HandleFunc(http.MethodGet+" "+path, h.handleWall)
		mux.HandleFunc(http.MethodPost+" "+path, h.handlePost)
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.CommentLikePattern, h.handleLike)
	mux.HandleFunc(routepath.CommentLikePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.CommentsPrefix, h.WriteNotFound)
}
