package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bond-optimizer/internal/domain/dto"
	"github.com/guttosm/bond-optimizer/internal/i18n"
	"github.com/guttosm/bond-optimizer/internal/middleware"
)

// Validator is implemented by request DTOs that check their own fields.
type Validator interface {
	Validate() error
}

// bindJSON decodes the request body into a new T and, when T implements Validator,
// validates it. Binding errors are returned as is so callers can tell them apart from
// *dto.ValidationError.
func bindJSON[T any](c *gin.Context) (*T, error) {
	return bind[T](c.ShouldBindJSON)
}

// bindQuery is bindJSON for URL query parameters.
func bindQuery[T any](c *gin.Context) (*T, error) {
	return bind[T](c.ShouldBindQuery)
}

func bind[T any](decode func(obj any) error) (*T, error) {
	req := new(T)
	if err := decode(req); err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// reply writes the API envelopes for one request, localized by Accept-Language.
type reply struct {
	c *gin.Context
}

func replyTo(c *gin.Context) reply { return reply{c: c} }

func (r reply) translate(key string) string {
	return i18n.GetTranslator().Translate(key, i18n.GetLocale(r.c))
}

// ok writes a dto.SuccessResponse. An empty messageKey leaves the message out.
func (r reply) ok(status int, messageKey string, data interface{}) {
	resp := dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(r.c),
		Timestamp: time.Now().UTC(),
	}
	if messageKey != "" {
		resp.Message = r.translate(messageKey)
	}
	r.c.JSON(status, resp)
}

// fail aborts with a dto.ErrorResponse whose code follows status. A non-nil err is
// attached to the gin context for the error handler to log.
func (r reply) fail(status int, messageKey string, err error, details map[string]string) {
	if err != nil {
		_ = r.c.Error(err)
	}
	resp := dto.NewError(dto.ErrCodeFromStatus(status), r.translate(messageKey)).
		WithRequestID(middleware.GetRequestID(r.c))
	for field, msg := range details {
		resp = resp.WithDetail(field, msg)
	}
	r.c.AbortWithStatusJSON(status, resp)
}
