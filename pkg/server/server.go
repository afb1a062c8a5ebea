// Package server provides the HTTP server of the shipping quote API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"mercator-hq/shipquote/pkg/config"
	"mercator-hq/shipquote/pkg/rules"
	"mercator-hq/shipquote/pkg/server/middleware"
	"mercator-hq/shipquote/pkg/shipping"
	"mercator-hq/shipquote/pkg/telemetry/health"
	"mercator-hq/shipquote/pkg/telemetry/metrics"
	"mercator-hq/shipquote/pkg/telemetry/tracing"
)

var (
	// ErrAlreadyRunning is returned by Start when the server is already serving.
	ErrAlreadyRunning = errors.New("server is already running")

	// ErrServerClosed is returned by Start once Shutdown has been called. A
	// Server serves at most once; build a new one to serve again.
	ErrServerClosed = errors.New("server is closed")
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// Options are the dependencies of a Server. Config and Rules are required;
// Logger, Metrics and Tracer are optional.
type Options struct {
	Config  *config.Config
	Rules   *rules.RuleSet
	Logger  *slog.Logger
	Metrics *metrics.Collector
	Tracer  *tracing.Tracer
	Build   BuildInfo
}

// Server serves the quote API.
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	build   BuildInfo

	quoter  *shipping.Quoter
	checker *health.Checker

	httpServer   *http.Server
	listener     net.Listener
	ready        chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
	closed       bool
}

// New creates a server. It registers one readiness check per rules section
// so that /ready and /api/health reflect what was loaded.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		recorder    shipping.Recorder
		quoteTracer trace.Tracer
	)
	if opts.Metrics != nil {
		recorder = opts.Metrics
	}
	if opts.Tracer != nil {
		quoteTracer = opts.Tracer.Tracer()
	}

	s := &Server{
		cfg:     opts.Config,
		logger:  logger,
		metrics: opts.Metrics,
		tracer:  opts.Tracer,
		build:   opts.Build,
		quoter:  shipping.NewQuoter(opts.Rules, quoteTracer, recorder),
		checker: health.New(opts.Config.Telemetry.Health.CheckTimeout),
		ready:   make(chan struct{}),
	}

	for name, loaded := range opts.Rules.Sections().Loaded() {
		s.checker.RegisterCheck(name, health.SectionCheck(name, loaded))
	}

	return s
}

// Start listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully. It returns nil after a clean
// shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrServerClosed
	}
	if s.isRunning {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}

	addr := s.cfg.Server.ListenAddress
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:        s.Handler(),
		ReadTimeout:    s.cfg.Server.ReadTimeout,
		WriteTimeout:   s.cfg.Server.WriteTimeout,
		IdleTimeout:    s.cfg.Server.IdleTimeout,
		MaxHeaderBytes: s.cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	s.isRunning = true
	close(s.ready)
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		defer close(errChan)

		s.logger.Info("starting server",
			"address", ln.Addr().String(),
			"environment", s.cfg.Server.Environment,
		)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown stops accepting connections and waits for in-flight requests,
// bounded by the configured shutdown timeout. Only the first call has any
// effect, and Start fails with ErrServerClosed afterwards.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		running := s.isRunning
		s.mu.Unlock()
		if !running {
			return
		}

		timeout := s.cfg.Server.ShutdownTimeout
		s.logger.Info("initiating graceful shutdown", "timeout", timeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("server stopped")
	})

	return shutdownErr
}

// Ready is closed once Start is listening.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the listening address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// IsRunning returns true if the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := s.routes()

	// The mux is consulted directly because middleware that replaces the
	// request context also drops r.Pattern.
	route := func(r *http.Request) string {
		_, pattern := mux.Handler(r)
		return pattern
	}

	var handler http.Handler = mux
	handler = middleware.BodyLimit(s.cfg.Server.MaxBodyBytes)(handler)
	handler = middleware.CORS(s.cfg.Server.CORS)(handler)
	if s.tracer != nil {
		handler = s.tracer.HTTPMiddleware(route)(handler)
	}
	if s.metrics != nil {
		handler = middleware.Metrics(s.metrics, route)(handler)
	}
	handler = middleware.Logging(s.logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}
