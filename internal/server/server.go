// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	POST /render?format=svg   render the posted document
//	POST /locate?x=&y=        resolve a pointer position to its tooltip
//	GET  /gallery             demo gallery index
//	GET  /gallery/{kind}.svg  one demo chart
//	GET  /healthz             build information
//
// Documents are posted as JSON, YAML or TOML; the encoding comes from the
// Content-Type header, or the "type" query parameter.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/waffle/pkg/demo"
	"github.com/matzehuels/waffle/pkg/pipeline"
)

// Config configures the server.
type Config struct {
	// Addr is the listen address (default ":8080").
	Addr string

	// ReadTimeout and WriteTimeout bound a single request.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxBodyBytes caps posted documents (default 4 MiB).
	MaxBodyBytes int64

	// Seed selects the demo gallery data.
	Seed uint64
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 60 * time.Second
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 4 << 20
	}
	if c.Seed == 0 {
		c.Seed = demo.DefaultSeed
	}
}

// Server is the rendering HTTP server.
type Server struct {
	config Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
	stats  *Stats
}

// New creates a server that renders with runner.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		config: cfg,
		runner: runner,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures middleware and routes.
func (s *Server) setupRoutes() {
	s.router.Use(requestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.observe)

	s.router.Post("/render", s.handleRender)
	s.router.Post("/locate", s.handleLocate)
	s.router.Get("/gallery", s.handleGalleryIndex)
	s.router.Get("/gallery/{file}", s.handleGalleryChart)
	s.router.Get("/healthz", s.handleHealth)
}

// WithStats reports stats on the health endpoint.
func (s *Server) WithStats(stats *Stats) *Server {
	s.stats = stats
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.config.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}
