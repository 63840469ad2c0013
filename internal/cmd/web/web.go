// Package web parses web command configuration and wires the galaxy services
// into the HTTP server.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/cozy.galaxy/internal/platform/cmd"
	"github.com/louisbranch/cozy.galaxy/internal/platform/logging"
	"github.com/louisbranch/cozy.galaxy/internal/platform/otel"
	"github.com/louisbranch/cozy.galaxy/internal/platform/timeouts"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog"
	"github.com/louisbranch/cozy.galaxy/internal/services/comments"
	"github.com/louisbranch/cozy.galaxy/internal/services/designgen"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	planetstorage "github.com/louisbranch/cozy.galaxy/internal/services/planet/storage"
	"github.com/louisbranch/cozy.galaxy/internal/services/web"
	"go.uber.org/zap"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr      string `env:"WEB_HTTP_ADDR" envDefault:"localhost:8086"`
	CatalogDBPath string `env:"CATALOG_DB_PATH"`
	PlanetDBPath  string `env:"PLANET_DB_PATH"`
	VisitorKey    string `env:"VISITOR_KEY"`
	GenAI         designgen.Config
	Logging       logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.CatalogDBPath, "catalog-db", cfg.CatalogDBPath, "catalog SQLite path; empty keeps the catalog in memory")
	fs.StringVar(&cfg.PlanetDBPath, "planet-db", cfg.PlanetDBPath, "planet SQLite path; empty keeps planets in memory")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "log level")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	logger, restore, err := logging.Install(entrypoint.ServiceWeb, cfg.Logging)
	if err != nil {
		return err
	}
	defer restore()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceWeb, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		server, closeStores, err := newServer(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer closeStores()
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

// newServer opens the stores and composes the web server. The returned
// function closes the stores.
func newServer(ctx context.Context, cfg Config, logger *zap.Logger) (*web.Server, func(), error) {
	openCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOpen)
	defer cancel()

	catalogStore, err := catalog.OpenStore(openCtx, cfg.CatalogDBPath)
	if err != nil {
		return nil, nil, err
	}
	planetStore, err := planetstorage.Open(openCtx, cfg.PlanetDBPath)
	if err != nil {
		_ = catalogStore.Close()
		return nil, nil, err
	}
	closeStores := func() {
		if err := errors.Join(planetStore.Close(), catalogStore.Close()); err != nil {
			logger.Warn("close stores", zap.Error(err))
		}
	}

	catalogService, err := catalog.NewService(catalogStore)
	if err != nil {
		closeStores()
		return nil, nil, err
	}
	planets, err := planet.NewService(planetStore)
	if err != nil {
		closeStores()
		return nil, nil, err
	}
	generator, err := designgen.New(ctx, cfg.GenAI)
	if err != nil {
		closeStores()
		return nil, nil, err
	}
	if _, ok := generator.(designgen.Unavailable); ok {
		logger.Info("description suggestions disabled; set COZY_GALAXY_GENAI_API_KEY to enable")
	}

	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr:   cfg.HTTPAddr,
		Catalog:    catalogService,
		Planets:    planets,
		Wall:       comments.NewWall(),
		Generator:  generator,
		VisitorKey: cfg.VisitorKey,
		Logger:     logger,
		Tracer:     otel.Tracer(),
	})
	if err != nil {
		closeStores()
		return nil, nil, err
	}
	logger.Info("web services ready",
		zap.Bool("catalog_sqlite", cfg.CatalogDBPath != ""),
		zap.Bool("planet_sqlite", cfg.PlanetDBPath != ""),
	)
	return server, closeStores, nil
}
