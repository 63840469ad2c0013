// Package communities serves the community catalog JSON API.
package communities

import (
	"context"
	"net/http"

	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
	module "github.com/louisbranch/cozy.galaxy/internal/services/web/module"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

// Catalog lists, reads and joins communities.
type Catalog interface {
	List(ctx context.Context, pageSize int, pageToken string) (storage.CommunityPage, error)
	Get(ctx context.Context, id string) (storage.Community, error)
	Join(ctx context.Context, id string) (storage.Community, error)
}

// Module provides the communities API.
type Module struct {
	catalog Catalog
	base    modulehandler.Base
}

// New returns the communities API module.
func New(catalog Catalog, base modulehandler.Base) Module {
	return Module{catalog: catalog, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "communities" }

// Mount wires communities API routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.catalog, m.base))
	return module.Mount{Prefix: routepath.APICommunitiesPrefix, Handler: mux}, nil
}
