// Package public serves the landing page, the health check, and the
// not-found fallback for every path no other module owns.
package public

import (
	"context"
	"net/http"

	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	module "github.com/louisbranch/cozy.galaxy/internal/services/web/module"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

// Catalog reads communities for the landing page.
type Catalog interface {
	All(ctx context.Context) ([]storage.Community, error)
	Get(ctx context.Context, id string) (storage.Community, error)
}

// Planets reads the visitor's planet.
type Planets interface {
	Get(ctx context.Context, visitorID string) (planet.State, error)
}

// Module provides root routes.
type Module struct {
	catalog Catalog
	planets Planets
	base    modulehandler.Base
}

// New returns the public module.
func New(catalog Catalog, planets Planets, base modulehandler.Base) Module {
	return Module{catalog: catalog, planets: planets, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "public" }

// Mount wires root routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.catalog, m.planets, m.base))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
