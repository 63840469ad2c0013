// Package search serves the community search endpoint.
package search

import (
	"context"
	"net/http"

	catalogsearch "github.com/louisbranch/cozy.galaxy/internal/services/catalog/search"
	module "github.com/louisbranch/cozy.galaxy/internal/services/web/module"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

// Searcher runs a catalog search.
type Searcher interface {
	Search(ctx context.Context, query string) (catalogsearch.Response, error)
}

// Module provides the search API.
type Module struct {
	searcher Searcher
	base     modulehandler.Base
}

// New returns the search module.
func New(searcher Searcher, base modulehandler.Base) Module {
	return Module{searcher: searcher, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "search" }

// Mount wires the search route.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.searcher, m.base))
	return module.Mount{Prefix: routepath.APISearchPrefix, Handler: mux}, nil
}
