// Package create serves the planet customizer: the style form and the
// launch step that names the community vibe.
package create

import (
	"context"
	"net/http"

	"github.com/louisbranch/cozy.galaxy/internal/services/designgen"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	module "github.com/louisbranch/cozy.galaxy/internal/services/web/module"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

// Planets reads and updates visitor planets.
type Planets interface {
	Get(ctx context.Context, visitorID string) (planet.State, error)
	Update(ctx context.Context, visitorID string, patch planet.Patch) (planet.State, error)
	Launch(ctx context.Context, visitorID, description string) (planet.State, error)
}

// Module provides the customizer routes.
type Module struct {
	planets   Planets
	generator designgen.Generator
	base      modulehandler.Base
}

// New returns the create module. A nil generator hides suggestions.
func New(planets Planets, generator designgen.Generator, base modulehandler.Base) Module {
	if generator == nil {
		generator = designgen.Unavailable{}
	}
	return Module{planets: planets, generator: generator, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "create" }

// Mount wires customizer routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.planets, m.generator, m.base))
	return module.Mount{Prefix: routepath.CreatePrefix, Handler: mux}, nil
}
