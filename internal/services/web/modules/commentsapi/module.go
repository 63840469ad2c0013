// Package commentsapi serves the comment wall JSON API.
package commentsapi

import (
	"net/http"
	"time"

	"github.com/louisbranch/cozy.galaxy/internal/services/comments"
	module "github.com/louisbranch/cozy.galaxy/internal/services/web/module"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

// Wall stores comment bubbles.
type Wall interface {
	List() []comments.Comment
	Get(id string) (comments.Comment, error)
	Post(content string) (comments.Comment, error)
	Like(id string) (comments.Comment, error)
	Move(id string, xPct, yPct float64) (comments.Comment, error)
	Now() time.Time
}

// Module provides the comments API.
type Module struct {
	wall Wall
	base modulehandler.Base
}

// New returns the comments API module.
func New(wall Wall, base modulehandler.Base) Module {
	return Module{wall: wall, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "commentsapi" }

// Mount wires comments API routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.wall, m.base))
	return module.Mount{Prefix: routepath.APICommentsPrefix, Handler: mux}, nil
}
