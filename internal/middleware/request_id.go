// Package middleware provides HTTP middleware components for the bond optimizer.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guttosm/bond-optimizer/internal/logger"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength caps client supplied IDs before they reach logs.
const maxRequestIDLength = 128

// ContextKey type for context keys to avoid collisions.
type ContextKey string

const (
	// RequestIDKey is the context key for request ID.
	RequestIDKey ContextKey = "request_id"
	// SubjectKey is the context key for the authenticated caller.
	SubjectKey ContextKey = "subject"
)

// RequestID tags each request with an ID, echoing a well-formed X-Request-ID from the
// client or minting a time-ordered UUID. A logger carrying the ID is placed on the
// request context for logger.FromContext.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !validRequestID(id) {
			id = newRequestID()
		}

		c.Set(string(RequestIDKey), id)
		c.Header(RequestIDHeader, id)

		l := logger.WithContext(map[string]interface{}{"request_id": id})
		c.Request = c.Request.WithContext(logger.IntoContext(c.Request.Context(), l))
		c.Next()
	}
}

func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// validRequestID accepts short IDs made of visible ASCII.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

// GetRequestID returns the ID set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(RequestIDKey))
}

// GetSubject returns the authenticated caller set by JWTAuth or APIKeyAuth.
func GetSubject(c *gin.Context) string {
	return c.GetString(string(SubjectKey))
}
