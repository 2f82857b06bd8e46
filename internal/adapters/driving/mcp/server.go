package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/redline-labs/redline-cli/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for redline.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "redline",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.watchBundle(ctx)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// watchBundle reloads the session whenever the bundle file is
// rewritten, so highlights injected by external tooling reach
// long-lived assistant sessions. No-op without a document source.
func (s *Server) watchBundle(ctx context.Context) {
	if s.ports.Source == nil {
		return
	}
	go func() {
		err := s.ports.Source.Watch(ctx, func() {
			bundle, loadErr := s.ports.Source.Load(ctx)
			if loadErr != nil {
				logger.Warn("Bundle reload failed: %v", loadErr)
				return
			}
			s.ports.Session.SetBundle(bundle)
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("Bundle watch stopped: %v", err)
		}
	}()
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.watchBundle(ctx)

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
