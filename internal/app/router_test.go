package app_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/carquote/internal/app"
	"github.com/noah-isme/carquote/internal/catalog"
	"github.com/noah-isme/carquote/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:           "test",
		MetricsEnabled:   true,
		MetricsNamespace: "carquote",
		RateLimitWindow:  time.Minute,
		RateLimitMax:     100,
		BodyLimitBytes:   1024,
		SecurityHeaders:  true,
	}
}

func newRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	cat, err := catalog.LoadFile("../../data/cars.json")
	require.NoError(t, err)
	h, err := app.NewRouter(app.Dependencies{
		Config:   cfg,
		Logger:   zerolog.Nop(),
		Catalog:  cat,
		Registry: prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	return h
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouterServesAPIAndHealth(t *testing.T) {
	h := newRouter(t, testConfig())

	rr := serve(h, http.MethodGet, "/health/live", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(h, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(h, http.MethodPost, "/api/v1/models/k5/trims/prestige/quote", `{"selected":["nav"],"color":"ABP"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"total":20685000`)
	require.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "99", rr.Header().Get("X-RateLimit-Remaining"))
}

func TestRouterExposesMetrics(t *testing.T) {
	h := newRouter(t, testConfig())
	serve(h, http.MethodPost, "/api/v1/models/ev3/trims/air/quote", `{"selected":["nav"]}`)

	rr := serve(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, `carquote_quotes_computed_total{model="ev3",trim="air"} 1`)
	require.Contains(t, body, `carquote_catalog_models_loaded 3`)
	require.Contains(t, body, `route="/api/v1/models/{modelID}/trims/{trimCode}/quote"`)
}

func TestRouterWithoutMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	h := newRouter(t, cfg)

	rr := serve(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Contains(t, rr.Body.String(), "NOT_FOUND")
}

func TestRouterRateLimitsAPI(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitMax = 1
	h := newRouter(t, cfg)

	require.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/api/v1/models", "").Code)
	rr := serve(h, http.MethodGet, "/api/v1/models", "")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)

	// health probes are outside the limited group
	require.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/health/live", "").Code)
}

func TestRouterBodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.BodyLimitBytes = 16
	h := newRouter(t, cfg)

	rr := serve(h, http.MethodPost, "/api/v1/models/k5/trims/prestige/quote", `{"selected":["nav","roof","w18"]}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestRouterCORSPreflight(t *testing.T) {
	cfg := testConfig()
	cfg.CORSAllowedOrigins = []string{"https://shop.example"}
	h := newRouter(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/models", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, "https://shop.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouterRequiresDependencies(t *testing.T) {
	_, err := app.NewRouter(app.Dependencies{})
	require.Error(t, err)

	_, err = app.NewRouter(app.Dependencies{Config: testConfig()})
	require.Error(t, err)
}
