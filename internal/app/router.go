// Package app assembles the HTTP API from its parts.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/noah-isme/carquote/internal/catalog"
	"github.com/noah-isme/carquote/internal/common"
	"github.com/noah-isme/carquote/internal/config"
	"github.com/noah-isme/carquote/internal/configurator"
	"github.com/noah-isme/carquote/internal/health"
	"github.com/noah-isme/carquote/internal/obs"
	"github.com/noah-isme/carquote/internal/ratelimit"
	"github.com/noah-isme/carquote/internal/security"
)

// Dependencies enumerates what the API router is built from.
type Dependencies struct {
	Config         *config.Config
	Logger         zerolog.Logger
	Catalog        *catalog.Catalog
	Registry       *prometheus.Registry
	Limiter        ratelimit.Limiter
	TracingEnabled bool
	// Extra mounts optional handlers, such as pprof, before the API routes.
	Extra func(chi.Router)
}

// NewRouter builds the chi router serving health, metrics and the
// configurator API.
func NewRouter(deps Dependencies) (http.Handler, error) {
	if deps.Config == nil {
		return nil, errors.New("app: config is required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("app: catalog is required")
	}
	cfg := deps.Config
	logger := deps.Logger

	var (
		httpMetrics   *obs.HTTPMetrics
		domainMetrics *obs.DomainMetrics
	)
	if cfg.MetricsEnabled {
		if deps.Registry == nil {
			deps.Registry = prometheus.NewRegistry()
			deps.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		}
		httpMetrics = obs.NewHTTPMetrics(cfg.MetricsNamespace, obs.ParseBucketsCSV(cfg.MetricsBuckets), deps.Registry)
		domainMetrics = obs.NewDomainMetrics(cfg.MetricsNamespace, deps.Registry)
		domainMetrics.SetCatalogModels(deps.Catalog.Len())
	}

	svc, err := configurator.NewService(configurator.ServiceConfig{Catalog: deps.Catalog, Metrics: domainMetrics})
	if err != nil {
		return nil, err
	}
	configHandler := configurator.NewHandler(configurator.HandlerConfig{Service: svc})

	lim := deps.Limiter
	if lim == nil {
		lim = ratelimit.NewMemoryLimiter("carquote")
	}
	limiter := ratelimit.Handler{
		Limiter: lim,
		Config: ratelimit.Config{
			Key:    common.ClientIP,
			Window: cfg.RateLimitWindow,
			Max:    cfg.RateLimitMax,
		},
		OnError: func(err error) {
			logger.Warn().Err(err).Msg("rate limiter unavailable")
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if deps.TracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:         300,
	}))
	r.Use(security.Headers{Enable: cfg.SecurityHeaders, EnableHSTS: cfg.AppEnv == "production"}.Middleware)

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry}))
	}
	if deps.Extra != nil {
		deps.Extra(r)
	}

	healthHandler := health.Handler{Checker: CatalogChecker{Catalog: deps.Catalog}}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(limiter.Middleware)
		v.Use(security.BodyLimit{Max: cfg.BodyLimitBytes}.Middleware)
		configHandler.Routes(v)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		common.JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})
	return r, nil
}

// CatalogChecker reports readiness once a non-empty catalog is loaded.
type CatalogChecker struct {
	Catalog *catalog.Catalog
}

// CheckCatalog implements health.Checker.
func (c CatalogChecker) CheckCatalog(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.Catalog.Len() == 0 {
		return errors.New("catalog empty")
	}
	return nil
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
