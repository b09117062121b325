// Package server exposes spec sheet generation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	specsheet "github.com/alnah/go-specsheet"
	"github.com/alnah/go-specsheet/internal/catalog"
)

// Server defaults.
const (
	DefaultAddr       = ":8080"
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Catalog fetches products from the backend.
type Catalog interface {
	Product(ctx context.Context, id string) (*catalog.ProductDTO, error)
	Ping(ctx context.Context) error
}

// Generator builds one spec sheet.
type Generator interface {
	Generate(ctx context.Context, input specsheet.Input) (*specsheet.Result, error)
}

// Pool hands out generators; every acquired generator must be released.
type Pool interface {
	Acquire(ctx context.Context) (Generator, error)
	Release(Generator)
}

// Compile-time interface checks.
var (
	_ Catalog   = (*catalog.Client)(nil)
	_ Generator = (*specsheet.Generator)(nil)
)

// Server serves spec sheets for catalog products.
type Server struct {
	engine    *gin.Engine
	catalog   Catalog
	pool      Pool
	metrics   *Metrics
	logger    *zap.Logger
	assetBase string
	page      *specsheet.PageSettings
	footer    *specsheet.Footer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the collectors. Defaults to a fresh registry.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithAssetBase sets the base URL that relative image paths resolve against.
func WithAssetBase(base string) Option {
	return func(s *Server) {
		s.assetBase = base
	}
}

// WithPage sets the page settings used for every sheet.
func WithPage(p *specsheet.PageSettings) Option {
	return func(s *Server) {
		s.page = p
	}
}

// WithFooter sets the footer used for every sheet.
func WithFooter(f *specsheet.Footer) Option {
	return func(s *Server) {
		s.footer = f
	}
}

// New builds the server and its routes.
func New(cat Catalog, pool Pool, opts ...Option) *Server {
	s := &Server{
		catalog: cat,
		pool:    pool,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	engine := gin.New()
	engine.Use(requestID(), accessLog(s.logger), recovery(s.logger))
	engine.GET("/healthz", s.healthz)
	engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	engine.GET("/products/:id/spec-sheet", s.specSheet)
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Error: "not found"})
	})
	s.engine = engine
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
