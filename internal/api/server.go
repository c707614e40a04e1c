package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/tt-value/internal/health"
	"github.com/yourusername/tt-value/internal/metrics"
)

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MetricsPath  string
	StaticDir    string
}

// Server is the public HTTP boundary
type Server struct {
	cfg     ServerConfig
	server  *http.Server
	handler http.Handler
	logger  *logrus.Logger
}

// NewServer wires the API, health and metrics routes behind the middleware
func NewServer(cfg ServerConfig, handlers *Handlers, checker *health.Checker, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 5 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 90 * time.Second
	}

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux)
	if checker != nil {
		checker.RegisterRoutes(mux)
	}
	if cfg.MetricsPath != "" {
		mux.Handle("GET "+cfg.MetricsPath, metrics.Handler())
	}
	if cfg.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	handler := RequestLogger(logger)(CORS(mux))
	return &Server{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		server: &http.Server{
			Addr:         cfg.Address,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("address", s.cfg.Address).Info("HTTP server starting")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	s.logger.Info("HTTP server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
