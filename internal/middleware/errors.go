package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bond-optimizer/internal/domain/dto"
	"github.com/guttosm/bond-optimizer/internal/i18n"
	"github.com/guttosm/bond-optimizer/internal/logger"
	"github.com/rs/zerolog"
)

// ErrorHandler logs the errors attached to the gin context and answers requests that
// wrote no response. Binding errors become 400; anything else becomes 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		status, code, key := http.StatusInternalServerError, dto.ErrCodeInternal, i18n.ErrKeyInternalError
		if last.IsType(gin.ErrorTypeBind) {
			status, code, key = http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequest
		}
		if c.Writer.Written() {
			status = c.Writer.Status()
		}

		level := zerolog.ErrorLevel
		if status < http.StatusInternalServerError {
			level = zerolog.WarnLevel
		}
		logger.FromContext(c.Request.Context()).WithLevel(level).
			Err(last.Err).
			Int("errors", len(c.Errors)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request error")

		if !c.Writer.Written() {
			writeError(c, status, code, key)
		}
	}
}

// Recovery turns a panic into a 500 response and logs it with its stack.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			logger.FromContext(c.Request.Context()).Error().
				Interface("panic", rec).
				Str("path", c.Request.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("PANIC recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			writeError(c, http.StatusInternalServerError, dto.ErrCodeInternal, i18n.ErrKeyInternalError)
		}()
		c.Next()
	}
}

// writeError aborts with a localized dto.ErrorResponse.
func writeError(c *gin.Context, status int, code, key string) {
	msg := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(status, dto.NewError(code, msg).WithRequestID(GetRequestID(c)))
}
