//go:build contract

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bond-optimizer/internal/domain/dto"
	"github.com/guttosm/bond-optimizer/internal/middleware"
	"github.com/guttosm/bond-optimizer/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractRouter() *gin.Engine {
	handler := NewHandler(service.NewOptimizerService(), nil)
	healthHandler := NewHealthHandler()

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Recovery(), middleware.ErrorHandler())
	healthHandler.Register(router)
	mountAPI(router.Group("/api"), handler)
	return router
}

// TestAPI_ContractCompliance validates that API responses match the documented contract.
func TestAPI_ContractCompliance(t *testing.T) {
	router := contractRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		check      func(*testing.T, map[string]interface{})
	}{
		{
			name:       "POST /api/optimize - Success 200",
			method:     http.MethodPost,
			path:       "/api/optimize",
			body:       `{"funds": 500, "assets": ` + threeAssets + `}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp map[string]interface{}) {
				for _, field := range []string{"data", "message", "request_id", "timestamp"} {
					assert.Contains(t, resp, field)
				}
				data, ok := resp["data"].(map[string]interface{})
				require.True(t, ok, "data must be a Selection")
				for _, field := range []string{"algorithm", "funds", "assets", "profit", "cost", "exact_cost"} {
					assert.Contains(t, data, field)
				}

				assets, ok := data["assets"].([]interface{})
				require.True(t, ok)
				require.NotEmpty(t, assets)
				asset, ok := assets[0].(map[string]interface{})
				require.True(t, ok)
				for _, field := range []string{"name", "price", "price_difference", "yield", "profit"} {
					assert.Contains(t, asset, field)
				}
			},
		},
		{
			name:       "POST /api/compare - Success 200",
			method:     http.MethodPost,
			path:       "/api/compare",
			body:       `{"funds": 500, "assets": ` + threeAssets + `}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp map[string]interface{}) {
				data, ok := resp["data"].(map[string]interface{})
				require.True(t, ok, "data must be a Comparison")
				for _, field := range []string{"funds", "assets", "timings", "agree"} {
					assert.Contains(t, data, field)
				}

				timings, ok := data["timings"].([]interface{})
				require.True(t, ok)
				require.Len(t, timings, 3)
				timing, ok := timings[0].(map[string]interface{})
				require.True(t, ok)
				assert.Contains(t, timing, "algorithm")
				assert.Contains(t, timing, "selection")
				assert.Contains(t, timing, "duration_ns")
			},
		},
		{
			name:       "GET /api/datasets - Success 200",
			method:     http.MethodGet,
			path:       "/api/datasets",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp map[string]interface{}) {
				_, ok := resp["data"].([]interface{})
				assert.True(t, ok, "data must be a list")
			},
		},
		{
			name:       "POST /api/optimize - Error 400 Invalid JSON",
			method:     http.MethodPost,
			path:       "/api/optimize",
			body:       `invalid`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, resp map[string]interface{}) {
				assert.Equal(t, dto.ErrCodeInvalidRequest, resp["error"])
				assert.NotEmpty(t, resp["message"])
				assert.NotEmpty(t, resp["request_id"])
				assert.NotEmpty(t, resp["timestamp"])
			},
		},
		{
			name:       "POST /api/optimize - Error 400 Validation",
			method:     http.MethodPost,
			path:       "/api/optimize",
			body:       `{"funds": -1}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, resp map[string]interface{}) {
				details, ok := resp["details"].(map[string]interface{})
				require.True(t, ok, "validation errors carry details")
				assert.Contains(t, details, "funds")
			},
		},
		{
			name:       "POST /api/datasets/:name/optimize - Error 404",
			method:     http.MethodPost,
			path:       "/api/datasets/unknown/optimize",
			wantStatus: http.StatusNotFound,
			check: func(t *testing.T, resp map[string]interface{}) {
				assert.Equal(t, dto.ErrCodeNotFound, resp["error"])
			},
		},
		{
			name:       "GET /healthz - Success 200",
			method:     http.MethodGet,
			path:       "/healthz",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp map[string]interface{}) {
				assert.Equal(t, "ok", resp["status"])
			},
		},
		{
			name:       "GET /readyz - Success 200",
			method:     http.MethodGet,
			path:       "/readyz",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp map[string]interface{}) {
				assert.Equal(t, "ok", resp["status"])
				assert.Contains(t, resp, "checks")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, bytes.NewReader([]byte(tt.body)))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, "Status code mismatch")
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"), "Response must include X-Request-ID header")

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			if tt.check != nil {
				tt.check(t, resp)
			}
		})
	}
}

// TestAPI_LocalizedErrors validates that error messages follow Accept-Language.
func TestAPI_LocalizedErrors(t *testing.T) {
	router := contractRouter()

	messages := make(map[string]string)
	for _, locale := range []string{"en", "pt", "nl"} {
		req := httptest.NewRequest(http.MethodPost, "/api/datasets/unknown/optimize", nil)
		req.Header.Set("Accept-Language", locale)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		messages[locale] = resp.Message
	}

	assert.NotEqual(t, messages["en"], messages["pt"])
	assert.NotEqual(t, messages["en"], messages["nl"])
}
