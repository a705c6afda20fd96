package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bond-optimizer/internal/domain/dto"
	"github.com/guttosm/bond-optimizer/internal/middleware"
	"github.com/guttosm/bond-optimizer/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_Endpoints(t *testing.T) {
	router := setupRouter()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/swagger/index.html", http.StatusOK},
		{http.MethodPost, "/api/optimize", http.StatusBadRequest},
		{http.MethodPost, "/api/compare", http.StatusBadRequest},
		{http.MethodPost, "/api/optimize/upload", http.StatusBadRequest},
		{http.MethodGet, "/api/datasets", http.StatusOK},
		{http.MethodPost, "/api/datasets/none/optimize", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
		{http.MethodGet, "/api/optimize", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/api/datasets", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(router, tt.method, tt.path, nil).Code)
		})
	}
}

func TestRouter_UnmatchedRoutesUseErrorEnvelope(t *testing.T) {
	router := setupRouter()

	tests := []struct {
		method   string
		path     string
		wantCode string
	}{
		{http.MethodGet, "/nowhere", dto.ErrCodeNotFound},
		{http.MethodPut, "/api/compare", dto.ErrCodeMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := serve(router, tt.method, tt.path, map[string]string{"Accept-Language": "nl"})

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), resp.RequestID)
		})
	}
}

func TestRouter_Authentication(t *testing.T) {
	secret := []byte("router-secret")
	token, err := middleware.IssueToken(secret, "analyst", time.Minute)
	require.NoError(t, err)

	keys := map[string]bool{"k-1": true}
	handler := NewHandler(service.NewOptimizerService(), nil)

	tests := []struct {
		name    string
		cfg     RouterConfig
		headers map[string]string
		want    int
	}{
		{name: "api key accepted", cfg: RouterConfig{EnableAuth: true, APIKeys: keys}, headers: map[string]string{middleware.APIKeyHeader: "k-1"}, want: http.StatusOK},
		{name: "api key missing", cfg: RouterConfig{EnableAuth: true, APIKeys: keys}, want: http.StatusUnauthorized},
		{name: "bearer token accepted", cfg: RouterConfig{EnableAuth: true, JWTSecret: secret}, headers: map[string]string{"Authorization": "Bearer " + token}, want: http.StatusOK},
		{name: "bearer token missing", cfg: RouterConfig{EnableAuth: true, JWTSecret: secret}, want: http.StatusUnauthorized},
		{name: "jwt takes precedence over api keys", cfg: RouterConfig{EnableAuth: true, JWTSecret: secret, APIKeys: keys}, headers: map[string]string{middleware.APIKeyHeader: "k-1"}, want: http.StatusUnauthorized},
		{name: "auth disabled", cfg: RouterConfig{APIKeys: keys}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(handler, NewHealthHandler(), tt.cfg)
			assert.Equal(t, tt.want, serve(router, http.MethodGet, "/api/datasets", tt.headers).Code)
		})
	}
}

func TestRouter_PublicRoutesSkipAuth(t *testing.T) {
	router := NewRouter(NewHandler(service.NewOptimizerService(), nil), NewHealthHandler(),
		RouterConfig{EnableAuth: true, JWTSecret: []byte("s")})

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, path, nil).Code, path)
	}
}

func TestRouter_SwaggerBasicAuth(t *testing.T) {
	router := NewRouter(nil, nil, RouterConfig{SwaggerUser: "docs", SwaggerPass: "secret"})

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/swagger/index.html", nil).Code)

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.SetBasicAuth("docs", "secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RateLimitHeaders(t *testing.T) {
	router := NewRouter(NewHandler(service.NewOptimizerService(), nil), NewHealthHandler(),
		RouterConfig{RateLimit: 1, RateWindow: time.Minute})

	first := serve(router, http.MethodGet, "/api/datasets", nil)
	second := serve(router, http.MethodGet, "/api/datasets", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := NewRouter(NewHandler(service.NewOptimizerService(), nil), nil, RouterConfig{CORSOrigins: []string{"https://desk.example.com"}})

	w := serve(router, http.MethodOptions, "/api/optimize", map[string]string{
		"Origin":                        "https://desk.example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://desk.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

func TestCORSConfig_DefaultOrigins(t *testing.T) {
	assert.Equal(t, defaultCORSOrigins, corsConfig(nil).AllowOrigins)
	assert.Equal(t, []string{"https://a"}, corsConfig([]string{"https://a"}).AllowOrigins)
}

func TestAPIChain(t *testing.T) {
	tests := []struct {
		name string
		cfg  RouterConfig
		want int
	}{
		{name: "nothing enabled", cfg: RouterConfig{}, want: 0},
		{name: "auth without keys still limits callers", cfg: RouterConfig{EnableAuth: true, RateLimit: 5}, want: 1},
		{name: "jwt and user limit", cfg: RouterConfig{EnableAuth: true, JWTSecret: []byte("s"), RateLimit: 5}, want: 2},
		{name: "timeout and idempotency", cfg: RouterConfig{RequestTimeout: time.Second, EnableIdempotency: true}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, apiChain(tt.cfg), tt.want)
		})
	}
}

func TestMountAPI(t *testing.T) {
	router := gin.New()
	mountAPI(router.Group("/api"), NewHandler(service.NewOptimizerService(), nil))

	var got []string
	for _, r := range router.Routes() {
		got = append(got, r.Method+" "+r.Path)
	}
	assert.ElementsMatch(t, []string{
		"POST /api/optimize",
		"POST /api/optimize/upload",
		"POST /api/compare",
		"GET /api/datasets",
		"POST /api/datasets/:name/optimize",
		"GET /api/logs",
	}, got)
}

func TestRouter_NilHandler(t *testing.T) {
	router := NewRouter(nil, NewHealthHandler(), DefaultRouterConfig())

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/api/optimize", nil).Code)
}
