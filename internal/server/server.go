// Package server exposes content generation over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/abhisek/aptiz/internal/contentgen"
)

// Server is the generation HTTP server.
type Server struct {
	gen     contentgen.Generator
	cfg     Config
	logger  *zap.Logger
	metrics *Metrics
	handler http.Handler
}

// New builds a Server and its router. logger may be nil.
func New(gen contentgen.Generator, cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		gen:     gen,
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(),
	}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if s.cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(accessLog(s.logger, s.metrics), middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Group(func(gr chi.Router) {
		if s.cfg.RateLimit > 0 {
			gr.Use(rateLimit(newClientLimiter(s.cfg.RateLimit, s.cfg.RateBurst)))
		}
		// Any method is routed here so non-POST requests get the 405 body.
		gr.HandleFunc("/generate", s.handleGenerate)
		gr.HandleFunc("/api/generate", s.handleGenerate)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/version", s.handleVersion)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on cfg.Addr and serves until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("generation server listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down generation server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
