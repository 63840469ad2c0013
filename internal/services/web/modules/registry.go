// Package modules composes the web feature modules.
package modules

import (
	"github.com/louisbranch/cozy.galaxy/internal/services/designgen"
	module "github.com/louisbranch/cozy.galaxy/internal/services/web/module"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/commentsapi"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/communities"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/community"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/create"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/galaxy"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/planetapi"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/public"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/search"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules/wall"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
)

// Module aliases the module interface contract.
type Module = module.Module

// Catalog is every catalog operation the modules need. Each module still
// receives it through its own narrow interface.
type Catalog interface {
	public.Catalog
	search.Searcher
	communities.Catalog
	galaxy.Catalog
	community.Catalog
}

// Planets is every planet operation the modules need.
type Planets interface {
	public.Planets
	planetapi.Planets
	create.Planets
}

// Wall is every comment wall operation the modules need.
type Wall interface {
	commentsapi.Wall
	wall.Wall
}

// Dependencies carries the services the web modules are built from.
type Dependencies struct {
	Catalog   Catalog
	Planets   Planets
	Wall      Wall
	Generator designgen.Generator
}

// DefaultModules returns every web module in mount order. The public module
// owns "/" and answers for every unmatched path.
func DefaultModules(deps Dependencies, base modulehandler.Base) []Module {
	return []Module{
		public.New(deps.Catalog, deps.Planets, base),
		galaxy.New(deps.Catalog, deps.Planets, base),
		community.New(deps.Catalog, deps.Planets, base),
		create.New(deps.Planets, deps.Generator, base),
		wall.New(deps.Wall, base),
		search.New(deps.Catalog, base),
		communities.New(deps.Catalog, base),
		planetapi.New(deps.Planets, deps.Generator, base),
		commentsapi.New(deps.Wall, base),
	}
}
