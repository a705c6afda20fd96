package dto

import (
	"maps"
	"net/http"
	"time"

	"github.com/guttosm/bond-optimizer/internal/dataset"
	"github.com/guttosm/bond-optimizer/internal/domain/model"
)

// Machine-readable error codes carried in ErrorResponse.Error.
const (
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeInternal         = "internal_error"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeUnprocessable    = "unprocessable"
	ErrCodeRateLimit        = "rate_limit_exceeded"
	ErrCodeTimeout          = "timeout"
	ErrCodeUnavailable      = "service_unavailable"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:            ErrCodeInvalidRequest,
	http.StatusRequestEntityTooLarge: ErrCodeInvalidRequest,
	http.StatusUnauthorized:          ErrCodeUnauthorized,
	http.StatusNotFound:              ErrCodeNotFound,
	http.StatusMethodNotAllowed:      ErrCodeMethodNotAllowed,
	http.StatusUnprocessableEntity:   ErrCodeUnprocessable,
	http.StatusTooManyRequests:       ErrCodeRateLimit,
	http.StatusRequestTimeout:        ErrCodeTimeout,
	http.StatusGatewayTimeout:        ErrCodeTimeout,
	http.StatusServiceUnavailable:    ErrCodeUnavailable,
}

// ErrCodeFromStatus maps an HTTP status to its error code. Unlisted statuses are internal errors.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return ErrCodeInternal
}

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data is a Selection, a Comparison or a list of dataset summaries
	Data      interface{} `json:"data" swaggertype:"object"`
	Message   string      `json:"message,omitempty" example:"Optimization completed successfully"`
	RequestID string      `json:"request_id,omitempty" example:"0190f3a2-7c1e-7000-8000-000000000000"`
	Timestamp time.Time   `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the body of every non-2xx API response.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"funds: must not be negative"`
	// Details maps offending fields to what is wrong with them
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"0190f3a2-7c1e-7000-8000-000000000000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError builds an ErrorResponse stamped with the current UTC time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: code, Message: message, Timestamp: time.Now().UTC()}
}

// WithRequestID returns a copy carrying requestID.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetail returns a copy with one more detail. The receiver's map is not modified.
func (e ErrorResponse) WithDetail(field, problem string) ErrorResponse {
	details := maps.Clone(e.Details)
	if details == nil {
		details = make(map[string]string, 1)
	}
	details[field] = problem
	e.Details = details
	return e
}

// DatasetSummary describes a stored dataset without its assets.
// @Description Stored dataset summary
type DatasetSummary struct {
	Name        string `json:"name" example:"bonds"`
	Description string `json:"description,omitempty" example:"Twenty listed bonds"`
	Funds       int    `json:"funds" example:"500"`
	Assets      int    `json:"assets" example:"20"`
} // @name DatasetSummary

// NewDatasetSummary summarizes a loaded dataset.
func NewDatasetSummary(d dataset.Dataset) DatasetSummary {
	return DatasetSummary{Name: d.Name, Description: d.Description, Funds: d.Funds, Assets: len(d.Assets)}
}

// LogPage is one page of stored log entries.
// @Description Page of request and audit logs, newest first
type LogPage struct {
	Entries []model.LogEntry `json:"entries"`
	// Total counts every match, ignoring limit and skip
	Total int64 `json:"total" example:"42"`
	Limit int   `json:"limit" example:"100"`
	Skip  int   `json:"skip" example:"0"`
} // @name LogPage
