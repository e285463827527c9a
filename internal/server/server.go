// Package server exposes label generation over HTTP: an HTML form, label
// images, print PDFs and a small JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/semaphore"

	"github.com/aki/qrlabel/internal/core/logger"
	"github.com/aki/qrlabel/internal/core/sequence"
	"github.com/aki/qrlabel/internal/render"
)

const shutdownTimeout = 5 * time.Second

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request and lifecycle logger
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.log = logger.OrNop(l)
	}
}

// WithMetrics shares a metrics set between servers
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithRenderLimit bounds how many label images and PDFs are rendered at
// once. Requests beyond the limit wait for a slot.
func WithRenderLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.renderLimit = int64(n)
		}
	}
}

// Server serves the label web UI and API
type Server struct {
	gen         *sequence.Generator
	renderer    *render.Renderer
	log         logger.Logger
	metrics     *Metrics
	router      *mux.Router
	renderLimit int64
	renders     *semaphore.Weighted
}

// New creates a Server on top of a generator and a renderer
func New(gen *sequence.Generator, renderer *render.Renderer, opts ...Option) *Server {
	s := &Server{
		gen:         gen,
		renderer:    renderer,
		log:         logger.Nop(),
		renderLimit: int64(runtime.GOMAXPROCS(0)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.renders = semaphore.NewWeighted(s.renderLimit)
	s.routes()
	return s
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/", s.index).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/label_img/{text:.+}", s.labelImage).Methods(http.MethodGet)
	r.HandleFunc("/pdf", s.pdf).Methods(http.MethodGet)
	r.HandleFunc("/next_number", s.nextNumber).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/generate", s.apiGenerate).Methods(http.MethodPost)
	api.HandleFunc("/peek", s.nextNumber).Methods(http.MethodGet)
	api.HandleFunc("/expand", s.apiExpand).Methods(http.MethodGet)

	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	s.router = r
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Error("failed to shut down server", "error", err)
		}
	}()

	s.log.Info("label server listening", "addr", ln.Addr().String())

	err := httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	cancel()
	<-done
	return err
}
