package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guttosm/bond-optimizer/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoRequestID(header string) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/api/datasets", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/api/datasets", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		kept   bool
	}{
		{name: "missing header mints an ID", header: "", kept: false},
		{name: "client ID is echoed", header: "batch-7f3a", kept: true},
		{name: "client UUID is echoed", header: "0190f3a2-7c1e-7000-8000-000000000000", kept: true},
		{name: "embedded space is replaced", header: "two words", kept: false},
		{name: "control characters are replaced", header: "id\x01", kept: false},
		{name: "non-ASCII is replaced", header: "pedido-ção", kept: false},
		{name: "overlong ID is replaced", header: strings.Repeat("a", maxRequestIDLength+1), kept: false},
		{name: "ID at the length cap is echoed", header: strings.Repeat("a", maxRequestIDLength), kept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := echoRequestID(tt.header)

			id := w.Body.String()
			assert.Equal(t, id, w.Header().Get(RequestIDHeader))
			if tt.kept {
				assert.Equal(t, tt.header, id)
				return
			}
			parsed, err := uuid.Parse(id)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), parsed.Version())
		})
	}
}

func TestRequestID_MintedIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 50 {
		seen[echoRequestID("").Body.String()] = struct{}{}
	}
	assert.Len(t, seen, 50)
}

func TestGetRequestID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))

	c.Set(string(RequestIDKey), 42)
	assert.Empty(t, GetRequestID(c), "non-string values are ignored")
}

func TestRequestID_AttachesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter("info", false, &buf)
	t.Cleanup(func() { logger.Init("info", false) })

	router := gin.New()
	router.Use(RequestID())
	router.GET("/api/datasets", func(c *gin.Context) {
		logger.FromContext(c.Request.Context()).Info().Msg("listing datasets")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/datasets", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), "listing datasets")
}
