// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/cozy.galaxy/internal/platform/cmd"
	"github.com/louisbranch/cozy.galaxy/internal/platform/logging"
	"github.com/louisbranch/cozy.galaxy/internal/platform/timeouts"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog"
	"github.com/louisbranch/cozy.galaxy/internal/services/mcp/service"
	"go.uber.org/zap"
)

// Config holds MCP command configuration.
type Config struct {
	HTTPAddr      string `env:"MCP_HTTP_ADDR"   envDefault:"localhost:8087"`
	Transport     string `env:"MCP_TRANSPORT"   envDefault:"stdio"`
	CatalogDBPath string `env:"CATALOG_DB_PATH"`
	Logging       logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.CatalogDBPath, "catalog-db", cfg.CatalogDBPath, "catalog SQLite path; empty keeps the catalog in memory")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run serves the catalog over MCP until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	logger, restore, err := logging.Install(entrypoint.ServiceMCP, cfg.Logging)
	if err != nil {
		return err
	}
	defer restore()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceMCP, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return serve(ctx, cfg, logger)
	})
}

func serve(ctx context.Context, cfg Config, logger *zap.Logger) error {
	openCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOpen)
	store, err := catalog.OpenStore(openCtx, cfg.CatalogDBPath)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close catalog store", zap.Error(err))
		}
	}()

	catalogService, err := catalog.NewService(store)
	if err != nil {
		return err
	}
	if err := service.Run(ctx, catalogService, service.Config{
		Transport: cfg.Transport,
		HTTPAddr:  cfg.HTTPAddr,
		Logger:    logger,
	}); err != nil {
		return fmt.Errorf("serve mcp: %w", err)
	}
	return nil
}
