// Package galaxy serves the planet list page.
package galaxy

import (
	"context"
	"net/http"

	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/search"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	module "github.com/louisbranch/cozy.galaxy/internal/services/web/module"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

// Catalog lists and searches communities.
type Catalog interface {
	All(ctx context.Context) ([]storage.Community, error)
	Search(ctx context.Context, query string) (search.Response, error)
}

// Planets reads the visitor's planet.
type Planets interface {
	Get(ctx context.Context, visitorID string) (planet.State, error)
}

// Module provides the galaxy page.
type Module struct {
	catalog Catalog
	planets Planets
	base    modulehandler.Base
}

// New returns the galaxy module.
func New(catalog Catalog, planets Planets, base modulehandler.Base) Module {
	return Module{catalog: catalog, planets: planets, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "galaxy" }

// Mount wires galaxy routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.catalog, m.planets, m.base))
	return module.Mount{Prefix: routepath.GalaxyPrefix, Handler: mux}, nil
}
