package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/guttosm/bond-optimizer/internal/service"
	"github.com/rs/zerolog"
)

// Audit action types.
const (
	ActionOptimize        = "optimize"
	ActionOptimizeUpload  = "optimize_upload"
	ActionOptimizeDataset = "optimize_dataset"
	ActionCompare         = "compare"
)

const directWriteTimeout = 5 * time.Second

// Audit records the outcome of an optimizer action. A non-nil err marks the entry
// as an error and stores its message. Nothing happens when svc is nil.
func Audit(svc service.LoggingService, c *gin.Context, action, message string, err error, fields map[string]interface{}) {
	if svc == nil {
		return
	}
	level := zerolog.InfoLevel
	if err != nil {
		level = zerolog.ErrorLevel
	}
	entry := requestEntry(c, level, message)
	entry.ActionType = action
	if err != nil {
		entry.Error = err.Error()
	}
	if len(fields) > 0 {
		entry.WithFields(fields)
	}
	dispatch(svc, entry)
}

// requestEntry fills the fields every request and audit entry carries.
func requestEntry(c *gin.Context, level zerolog.Level, message string) *model.LogEntry {
	return &model.LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level.String(),
		Message:   message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Subject:   GetSubject(c),
	}
}

// dispatch prefers the async logger. Without one the entry is written from its own
// goroutine so the response is never held up.
func dispatch(svc service.LoggingService, entry *model.LogEntry) {
	if al := GetAsyncLogger(); al != nil {
		al.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), directWriteTimeout)
		defer cancel()
		_ = svc.CreateLog(ctx, entry)
	}()
}
