package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vango-dev/htmlkit/internal/cache"
	"github.com/vango-dev/htmlkit/internal/logging"
	"github.com/vango-dev/htmlkit/pkg/middleware"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

// Server is the htmlkit fragment server.
type Server struct {
	config Config

	// Routing
	router   *chi.Mux
	upgrader websocket.Upgrader

	// Collaborators
	logger   *zap.Logger
	cache    cache.Cache
	registry prometheus.Registerer
	gatherer prometheus.Gatherer
	metrics  *middleware.Metrics
	otelOpts []middleware.OTelOption

	// HTTP server, set by Run.
	mu         sync.Mutex
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Default: a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logging.OrNop(logger)
	}
}

// WithCache enables caching of /v1/render results.
func WithCache(c cache.Cache) Option {
	return func(s *Server) {
		s.cache = c
	}
}

// WithRegistry sets the Prometheus registry the server's collectors are
// registered with. /metrics exposes it when it is also a Gatherer. Default:
// a private registry.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithTracing passes options to the OpenTelemetry middleware.
func WithTracing(opts ...middleware.OTelOption) Option {
	return func(s *Server) {
		s.otelOpts = append(s.otelOpts, opts...)
	}
}

// New creates a Server. Unset Config fields take their defaults.
func New(cfg Config, opts ...Option) *Server {
	s := &Server{
		config: cfg.withDefaults(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		reg := prometheus.NewRegistry()
		s.registry, s.gatherer = reg, reg
	} else if g, ok := s.registry.(prometheus.Gatherer); ok {
		s.gatherer = g
	} else {
		s.gatherer = prometheus.DefaultGatherer
	}
	s.metrics = middleware.NewMetrics(middleware.WithRegistry(s.registry))

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  s.config.ReadBufferSize,
		WriteBufferSize: s.config.WriteBufferSize,
		CheckOrigin:     s.config.CheckOrigin,
	}
	s.logger = s.logger.With(zap.String("component", "server"))
	s.router = s.routes()
	return s
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(s.metrics.Handler)
	r.Use(middleware.OpenTelemetry(s.otelOpts...))
	r.Use(chimw.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/escape", s.handleEscape)
		r.Post("/attributes", s.handleAttributes)
		r.Post("/element", s.handleElement)
		r.Post("/render", s.handleRender)
		r.Post("/sanitize", s.handleSanitize)
		r.Post("/patch", s.handlePatch)
	})
	r.Get("/ws", s.handleWebSocket)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *zap.Logger {
	return s.logger
}

// Run starts the HTTP server and blocks until ctx is done, SIGINT or
// SIGTERM is received, or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          zap.NewStdLog(s.logger),
	}
	s.mu.Lock()
	s.httpServer = httpServer
	s.mu.Unlock()

	// Set up graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	// Error channel for Serve
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server starting", zap.String("address", ln.Addr().String()))
		errCh <- httpServer.Serve(ln)
	}()

	// Wait for shutdown signal, cancellation or error
	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.WithoutCancel(ctx))
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", zap.Error(err))
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

type loggerKey struct{}

// requestID assigns every request an id, reusing a client supplied one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)

		logger := s.logger.With(zap.String(logging.FieldRequestID, id))
		ctx := context.WithValue(r.Context(), loggerKey{}, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log(r).Debug("request",
			zap.String("method", r.Method),
			zap.String(logging.FieldPath, r.URL.Path),
			zap.Int(logging.FieldStatus, ww.Status()),
			zap.Duration(logging.FieldDuration, time.Since(start)),
		)
	})
}

// log returns the request scoped logger.
func (s *Server) log(r *http.Request) *zap.Logger {
	if l, ok := r.Context().Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return s.logger
}
