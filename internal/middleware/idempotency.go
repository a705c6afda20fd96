package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader carries the client's deduplication key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayedHeader marks responses served from the replay store.
	ReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long a successful response can be replayed.
	IdempotencyKeyTTL = 5 * time.Minute
)

// IdempotencyConfig configures the Idempotency middleware.
type IdempotencyConfig struct {
	Store   *ReplayStore
	Enabled bool
}

// DefaultIdempotencyConfig keeps successful responses for IdempotencyKeyTTL.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Store:   NewReplayStore(IdempotencyKeyTTL),
		Enabled: true,
	}
}

// Idempotency replays the stored response of a POST, PUT or PATCH that repeats the
// Idempotency-Key, method, path and body of an earlier successful request. A repeated
// key with a different body is treated as a new request. Only 2xx responses are stored.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Store == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || !mutating(c.Request.Method) {
			c.Next()
			return
		}

		fingerprint, err := requestFingerprint(key, c.Request)
		if err != nil {
			c.Next()
			return
		}

		if r, ok := cfg.Store.Get(fingerprint); ok {
			for name, value := range r.header {
				c.Header(name, value)
			}
			c.Header(ReplayedHeader, "true")
			c.Data(r.status, r.header["Content-Type"], r.body)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		header := make(map[string]string, len(rec.Header()))
		for name, values := range rec.Header() {
			if len(values) > 0 {
				header[name] = values[0]
			}
		}
		cfg.Store.Put(fingerprint, replay{status: status, header: header, body: rec.body.Bytes()})
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// requestFingerprint hashes the key, method, path and body. The body is put back so
// handlers can still bind it.
func requestFingerprint(key string, req *http.Request) (string, error) {
	h := sha256.New()
	for _, part := range []string{key, req.Method, req.URL.Path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// bodyRecorder tees the response body.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}
