package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bond-optimizer/internal/domain/dto"
	"github.com/guttosm/bond-optimizer/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
)

// APIKeyAuth admits requests carrying one of the enabled keys in X-API-Key or the
// api_key query parameter. Keys are compared by SHA-256 digest in constant time.
// With no enabled keys every request passes.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	digests := make([][sha256.Size]byte, 0, len(validKeys))
	for key, enabled := range validKeys {
		if enabled {
			digests = append(digests, sha256.Sum256([]byte(key)))
		}
	}

	return func(c *gin.Context) {
		if len(digests) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}
		if key == "" {
			abortUnauthorized(c, "ApiKey", i18n.ErrKeyAPIKeyRequired)
			return
		}

		sum := sha256.Sum256([]byte(key))
		if !knownDigest(digests, sum) {
			abortUnauthorized(c, "ApiKey", i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Set(string(SubjectKey), "api-key:"+hex.EncodeToString(sum[:4]))
		c.Next()
	}
}

// knownDigest checks every entry so the timing does not reveal which key matched.
func knownDigest(digests [][sha256.Size]byte, sum [sha256.Size]byte) bool {
	found := 0
	for i := range digests {
		found |= subtle.ConstantTimeCompare(digests[i][:], sum[:])
	}
	return found == 1
}

func abortUnauthorized(c *gin.Context, scheme, key string) {
	c.Header("WWW-Authenticate", scheme)
	writeError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, key)
}
