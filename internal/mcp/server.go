// Package mcp exposes label generation to AI agents over the Model Context
// Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/aki/qrlabel/internal/core/config"
	"github.com/aki/qrlabel/internal/core/logger"
	"github.com/aki/qrlabel/internal/core/sequence"
	"github.com/aki/qrlabel/internal/core/store"
)

// Version is reported to MCP clients
var Version = "dev"

// Option configures a Server
type Option func(*Server)

// WithLogger sets the server logger
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.log = logger.OrNop(l)
	}
}

// Server is the qrlabel MCP server
type Server struct {
	mcpServer  *server.MCPServer
	gen        *sequence.Generator
	store      store.Store
	transport  string
	httpConfig *config.HTTPConfig
	log        logger.Logger
}

// NewServer creates an MCP server backed by gen and st. httpConfig is only
// used by the http transport.
func NewServer(gen *sequence.Generator, st store.Store, transport string, httpConfig *config.HTTPConfig, opts ...Option) (*Server, error) {
	if gen == nil || st == nil {
		return nil, errors.New("generator and store are required")
	}

	s := &Server{
		mcpServer: server.NewMCPServer(
			"qrlabel",
			Version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithLogging(),
		),
		gen:        gen,
		store:      st,
		transport:  transport,
		httpConfig: httpConfig,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	if err := s.registerResources(); err != nil {
		return nil, fmt.Errorf("failed to register resources: %w", err)
	}
	return s, nil
}

// Start serves until ctx is cancelled or the transport fails
func (s *Server) Start(ctx context.Context) error {
	switch s.transport {
	case "stdio", "":
		return server.NewStdioServer(s.mcpServer).Listen(ctx, os.Stdin, os.Stdout)
	case "http", "https":
		return s.startHTTPServer(ctx)
	default:
		return fmt.Errorf("unsupported transport: %s", s.transport)
	}
}

// Handler returns the SSE endpoints wrapped in CORS and authentication
func (s *Server) Handler() http.Handler {
	sseServer := server.NewSSEServer(s.mcpServer)

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	return s.corsMiddleware(s.authMiddleware(mux))
}

func (s *Server) startHTTPServer(ctx context.Context) error {
	if s.httpConfig == nil {
		return fmt.Errorf("HTTP configuration required")
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.httpConfig.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Error("failed to shut down MCP server", "error", err)
		}
	}()

	s.log.Info("MCP server listening",
		"sse", fmt.Sprintf("http://localhost:%d/sse", s.httpConfig.Port),
		"message", fmt.Sprintf("http://localhost:%d/message", s.httpConfig.Port))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.httpConfig == nil || s.httpConfig.Auth.Type == "" || s.httpConfig.Auth.Type == "none" {
			next.ServeHTTP(w, r)
			return
		}

		auth := s.httpConfig.Auth
		switch auth.Type {
		case "bearer":
			if r.Header.Get("Authorization") != "Bearer "+auth.Bearer {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

		case "basic":
			username, password, ok := r.BasicAuth()
			if !ok || username != auth.Basic.Username || password != auth.Basic.Password {
				w.Header().Set("WWW-Authenticate", `Basic realm="qrlabel"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

		default:
			http.Error(w, "Invalid auth type", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r)
	})
}
