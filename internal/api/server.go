package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/sartorproj/gofreq/freq"
	"github.com/sartorproj/gofreq/internal/cache"
	"github.com/sartorproj/gofreq/internal/metrics"
)

// Version is reported by the health endpoint.
var Version = "dev"

// Options wires the server's dependencies.
type Options struct {
	Analyzer *freq.Analyzer
	Defaults freq.Options // zero selects freq.DefaultOptions

	// Cache holds encoded responses keyed by endpoint and request body.
	// A nil cache disables caching.
	Cache *cache.LRUWithTTL[string, []byte]

	// Metrics defaults to unregistered collectors, MetricsHandler to the
	// handler of the default Prometheus registry.
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler

	Logger *logrus.Logger
}

// Server exposes the decomposition over HTTP.
type Server struct {
	analyzer *freq.Analyzer
	defaults freq.Options
	cache    *cache.LRUWithTTL[string, []byte]
	metrics  *metrics.Metrics
	logger   *logrus.Logger
	router   *gin.Engine
}

// NewServer creates a server and registers its routes.
func NewServer(opts Options) *Server {
	if opts.Analyzer == nil {
		opts.Analyzer = freq.New(freq.DefaultConfig())
	}
	if opts.Defaults == (freq.Options{}) {
		opts.Defaults = freq.DefaultOptions()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New(nil)
	}
	if opts.MetricsHandler == nil {
		opts.MetricsHandler = promhttp.Handler()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	s := &Server{
		analyzer: opts.Analyzer,
		defaults: opts.Defaults,
		cache:    opts.Cache,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(opts.Logger))

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(opts.MetricsHandler))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/resample", s.resample)
		v1.POST("/analyze", s.analyze)
		v1.POST("/trend", s.trend)
		v1.POST("/harmonic", s.harmonic)
		v1.POST("/correlogram", s.correlogram)
		v1.POST("/autoregressive", s.autoregressive)
	}

	s.router = router
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
