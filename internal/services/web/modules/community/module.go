// Package community serves planet detail pages and the landing form.
package community

import (
	"context"
	"net/http"

	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	module "github.com/louisbranch/cozy.galaxy/internal/services/web/module"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

// Catalog reads and joins communities.
type Catalog interface {
	Get(ctx context.Context, id string) (storage.Community, error)
	Join(ctx context.Context, id string) (storage.Community, error)
}

// Planets reads the visitor's planet.
type Planets interface {
	Get(ctx context.Context, visitorID string) (planet.State, error)
}

// Module provides community detail routes.
type Module struct {
	catalog Catalog
	planets Planets
	base    modulehandler.Base
}

// New returns the community module.
func New(catalog Catalog, planets Planets, base modulehandler.Base) Module {
	return Module{catalog: catalog, planets: planets, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "community" }

// Mount wires community routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.catalog, m.planets, m.base))
	return module.Mount{Prefix: routepath.CommunityPrefix, Handler: mux}, nil
}
