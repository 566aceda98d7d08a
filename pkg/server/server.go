// Package server exposes the movers pipeline over HTTP.
//
// Renders are produced synchronously by POST /v1/renders, kept in a
// [store.Store] and served page by page afterwards:
//
//	GET    /healthz
//	POST   /v1/validate
//	POST   /v1/renders?format=svg,png&capacity=7
//	GET    /v1/renders/{id}
//	GET    /v1/renders/{id}/pages/{n}.{format}
//	GET    /v1/renders/{id}/archive.zip
//	DELETE /v1/renders/{id}
//
// Request bodies use the same JSON shape as the CLI input.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/moverboard/pkg/pipeline"
	"github.com/matzehuels/moverboard/pkg/store"
)

const (
	// DefaultMaxBodyBytes limits request bodies.
	DefaultMaxBodyBytes = 1 << 20

	shutdownTimeout = 10 * time.Second
)

// Config wires a server to its pipeline and storage.
type Config struct {
	Runner *pipeline.Runner
	Store  store.Store

	// Options are the base pipeline options; query parameters override
	// formats and capacity per request.
	Options      pipeline.Options
	OptionalLogo bool
	TTL          time.Duration
	MaxBodyBytes int64

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Logger *log.Logger
}

// Server is the HTTP API.
type Server struct {
	cfg    Config
	router chi.Router
}

// New builds the router. Runner and Store must be set.
func New(cfg Config) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.TTL <= 0 {
		cfg.TTL = store.DefaultTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	s := &Server{cfg: cfg}
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/renders", s.handleCreateRender)
		r.Route("/renders/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetRender)
			r.Delete("/", s.handleDeleteRender)
			r.Get("/pages/{file}", s.handlePage)
			r.Get("/archive.zip", s.handleArchive)
		})
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.cfg.Logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
