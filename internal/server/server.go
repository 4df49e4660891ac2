// Package server exposes the amortization engine over an Echo HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rpgo/mortgage-calculator/internal/config"
	"github.com/rpgo/mortgage-calculator/internal/logging"
	"github.com/rpgo/mortgage-calculator/internal/store"
	"github.com/rs/zerolog"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests
const ShutdownTimeout = 10 * time.Second

// Server wires the registry, quote cache and handlers into an Echo instance
type Server struct {
	cfg         *config.ServerConfig
	echo        *echo.Echo
	registry    *store.Registry
	rateLimiter *RateLimiter
	logger      zerolog.Logger
}

// New builds the HTTP server. cache may be a Redis or in-memory QuoteCache.
func New(cfg *config.ServerConfig, cache store.QuoteCache, logger zerolog.Logger) *Server {
	registry := store.NewRegistry()
	registry.SetLogger(logging.NewAdapter(logger).With("component", "registry"))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       86400,
	}))

	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	e.Use(RequestLogger(logger))
	e.Use(echomiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok", "loans": registry.Len()})
	})

	rl := NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	RegisterRoutes(e, rl, NewLoanHandler(registry), NewCombinedHandler(), NewQuoteHandler(cache))

	return &Server{
		cfg:         cfg,
		echo:        e,
		registry:    registry,
		rateLimiter: rl,
		logger:      logger,
	}
}

// Handler returns the underlying http.Handler
func (s *Server) Handler() http.Handler { return s.echo }

// Registry returns the loans created through the API
func (s *Server) Registry() *store.Registry { return s.registry }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("port", s.cfg.Port).Str("env", s.cfg.Env).Msg("Starting server")
		if err := s.echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down server...")
	defer s.rateLimiter.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info().Msg("Server exited")
	return nil
}
