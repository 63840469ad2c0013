// Package web hosts the browser-facing galaxy service.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/cozy.galaxy/internal/platform/timeouts"
	"github.com/louisbranch/cozy.galaxy/internal/services/designgen"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/app"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/modules"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/httpx"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/observability"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/platform/visitor"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
	webstatic "github.com/louisbranch/cozy.galaxy/internal/services/web/static"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr  string
	Catalog   modules.Catalog
	Planets   modules.Planets
	Wall      modules.Wall
	Generator designgen.Generator
	// VisitorKey signs visitor cookies. Empty selects a per-process key.
	VisitorKey string
	Logger     *zap.Logger
	// Tracer is optional; nil disables request spans.
	Tracer trace.Tracer
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	listener   net.Listener
	logger     *zap.Logger
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Catalog == nil || cfg.Planets == nil || cfg.Wall == nil {
		return nil, errors.New("catalog, planets and wall are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	issuer, err := visitor.NewIssuer(cfg.VisitorKey)
	if err != nil {
		return nil, fmt.Errorf("visitor issuer: %w", err)
	}

	deps := modules.Dependencies{
		Catalog:   cfg.Catalog,
		Planets:   cfg.Planets,
		Wall:      cfg.Wall,
		Generator: cfg.Generator,
	}
	h, err := app.Compose(app.ComposeInput{
		Modules: modules.DefaultModules(deps, modulehandler.NewBase(logger)),
	})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.Handle(routepath.Root, h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.Trace(cfg.Tracer),
		issuer.Middleware(),
		observability.RequestLogger(logger),
	), nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Listen binds the server address. ListenAndServe calls it when needed.
func (s *Server) Listen() error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if s.listener != nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := s.Listen(); err != nil {
		return err
	}
	s.logger.Info("web server listening", zap.String("addr", s.Addr()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve web http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
