// Package wall serves the floating comment wall page.
package wall

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
	Post(content string) (comments.Comment, error)
	Like(id string) (comments.Comment, error)
	Now() time.Time
}

// Module provides the wall page.
type Module struct {
	wall Wall
	base modulehandler.Base
}

// New returns the wall module.
func New(wall Wall, base modulehandler.Base) Module {
	return Module{wall: wall, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "wall" }

// Mount wires wall routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.wall, m.base))
	return module.Mount{Prefix: routepath.CommentsPrefix, Handler: mux}, nil
}
