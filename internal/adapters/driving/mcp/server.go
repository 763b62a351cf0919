package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/chunk-annotator/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// ServerName is the implementation name reported to MCP clients.
const ServerName = "annotation-mcp-server"

// Server is the MCP server for chunk annotation.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// HTTPOptions configures the HTTP transport.
type HTTPOptions struct {
	// RateLimit is the sustained number of requests per second. Zero disables limiting.
	RateLimit int

	// Burst is the number of requests allowed above the sustained rate.
	Burst int

	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil {
		return nil, ErrMissingSessionService
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    ServerName,
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
	logger.Info("mcp server listening", "transport", "stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves a single client over the given transport.
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

// Handler returns the HTTP handler serving MCP on /mcp, with optional
// metrics on /metrics, behind the configured rate limit.
func (s *Server) Handler(opts HTTPOptions) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil))
	if opts.Metrics {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return rateLimit(mux, opts.RateLimit, opts.Burst)
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string, opts HTTPOptions) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown failed", "error", err)
		}
	}()

	logger.Info("mcp server listening", "transport", "http", "addr", addr,
		"rate_limit", opts.RateLimit, "burst", opts.Burst, "metrics", opts.Metrics)

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// rateLimit rejects requests above rps with 429. A non-positive rps disables it.
func rateLimit(next http.Handler, rps, burst int) http.Handler {
	if rps <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			rateLimited.Inc()
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
