package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/cozy.galaxy/internal/platform/timeouts"
	"github.com/louisbranch/cozy.galaxy/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	serverName = "cozy-galaxy"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Transport kinds accepted by Run.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config selects how the MCP server is exposed.
type Config struct {
	Transport string
	HTTPAddr  string
	Logger    *zap.Logger
}

type registration struct {
	name     string
	register func(*mcp.Server)
}

// Server exposes the community catalog over MCP.
type Server struct {
	mcpServer *mcp.Server
	logger    *zap.Logger
}

// New registers every catalog tool and resource on a fresh MCP server.
func New(catalog domain.Catalog, logger *zap.Logger) (*Server, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		Instructions: "Browse the cozy galaxy: search communities by interest and read their details.",
	})
	for _, r := range registrations(catalog) {
		r.register(server)
		logger.Debug("mcp registration", zap.String("module", r.name))
	}
	return &Server{mcpServer: server, logger: logger}, nil
}

func registrations(catalog domain.Catalog) []registration {
	return []registration{
		{name: "community-tools", register: func(s *mcp.Server) {
			mcp.AddTool(s, domain.SearchCommunitiesTool(), domain.SearchCommunitiesHandler(catalog))
			mcp.AddTool(s, domain.GetCommunityTool(), domain.GetCommunityHandler(catalog))
		}},
		{name: "community-resources", register: func(s *mcp.Server) {
			s.AddResource(domain.CommunityListResource(), domain.CommunityListResourceHandler(catalog))
			s.AddResourceTemplate(domain.CommunityResourceTemplate(), domain.CommunityResourceHandler(catalog))
		}},
	}
}

// Run serves catalog over the configured transport until ctx is cancelled.
func Run(ctx context.Context, catalog domain.Catalog, cfg Config) error {
	kind := strings.ToLower(strings.TrimSpace(cfg.Transport))
	if kind == "" {
		kind = TransportStdio
	}
	if kind != TransportStdio && kind != TransportHTTP {
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
	server, err := New(catalog, cfg.Logger)
	if err != nil {
		return err
	}
	if kind == TransportHTTP {
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	}
	return server.runWithTransport(ctx, &mcp.StdioTransport{})
}

// runWithTransport serves one session and treats cancellation as a clean stop.
func (s *Server) runWithTransport(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("mcp session starting")
	err := s.mcpServer.Run(ctx, transport)
	if err == nil || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("run mcp server: %w", err)
}

// Handler serves the MCP streamable HTTP protocol.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
}

func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return errors.New("http address is required")
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	httpServer := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: timeouts.ReadHeader}
	s.logger.Info("mcp http listening", zap.String("addr", listener.Addr().String()))

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve mcp http: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
