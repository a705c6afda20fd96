package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompression(t *testing.T) {
	payload := strings.Repeat(`{"name":"bond","price":100}`, 20)

	tests := []struct {
		name           string
		path           string
		acceptEncoding string
		wantGzip       bool
	}{
		{name: "gzip accepted", path: "/api/datasets", acceptEncoding: "gzip", wantGzip: true},
		{name: "gzip among others", path: "/api/datasets", acceptEncoding: "br, gzip, deflate", wantGzip: true},
		{name: "no Accept-Encoding", path: "/api/datasets", wantGzip: false},
		{name: "metrics are excluded", path: "/metrics", acceptEncoding: "gzip", wantGzip: false},
		{name: "readiness is excluded", path: "/readyz", acceptEncoding: "gzip", wantGzip: false},
		{name: "extra excluded path", path: "/swagger/doc.json", acceptEncoding: "gzip", wantGzip: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Compression("/swagger"))
			router.GET(tt.path, func(c *gin.Context) { c.String(http.StatusOK, payload) })

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			if !tt.wantGzip {
				assert.Empty(t, w.Header().Get("Content-Encoding"))
				assert.Equal(t, payload, w.Body.String())
				return
			}
			assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
			zr, err := gzip.NewReader(w.Body)
			require.NoError(t, err)
			body, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, payload, string(body))
		})
	}
}
