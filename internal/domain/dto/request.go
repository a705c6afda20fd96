// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
)

// AssetInput is one candidate asset in a request body.
//
// @Description Candidate asset as submitted by the client
type AssetInput struct {
	// Name identifies the asset
	Name string `json:"name" example:"Action-4"`
	// Price is the asset price; fractional prices are rounded for optimization
	Price float64 `json:"price" example:"70"`
	// Yield is the yield percentage
	Yield float64 `json:"yield" example:"20"`
} // @name AssetInput

// OptimizeRequest represents the JSON request body for the optimize endpoint.
//
// Algorithm is optional; the server default is used when it is empty.
//
// @Description Request to select the most profitable assets within funds
// @Example {"funds": 500, "algorithm": "dynamic", "assets": [{"name": "Action-1", "price": 20, "yield": 5}]}
type OptimizeRequest struct {
	// Funds is the budget in whole currency units
	Funds *int `json:"funds" binding:"required" example:"500" minimum:"0"`
	// Algorithm is one of dynamic, bruteforce-combinations, bruteforce-bitmask
	Algorithm string `json:"algorithm,omitempty" example:"dynamic"`
	// Assets is the candidate list; an empty list yields an empty selection
	Assets []AssetInput `json:"assets"`
} // @name OptimizeRequest

// CompareRequest represents the JSON request body for the compare endpoint.
//
// @Description Request to run every algorithm on the same input
type CompareRequest struct {
	// Funds is the budget in whole currency units
	Funds *int `json:"funds" binding:"required" example:"500" minimum:"0"`
	// Assets is the candidate list
	Assets []AssetInput `json:"assets"`
} // @name CompareRequest

// DatasetOptimizeRequest is the optional body for optimizing a named dataset.
// Zero values fall back to the dataset's funds and the server's default algorithm.
//
// @Description Overrides for optimizing a stored dataset
type DatasetOptimizeRequest struct {
	Funds     *int   `json:"funds,omitempty" example:"500" minimum:"0"`
	Algorithm string `json:"algorithm,omitempty" example:"dynamic"`
} // @name DatasetOptimizeRequest

// LogQueryRequest holds the query parameters of the log listing.
//
// @Description Filters for stored request and audit logs
type LogQueryRequest struct {
	RequestID string `form:"request_id"`
	Level     string `form:"level" example:"error"`
	Method    string `form:"method" example:"POST"`
	Path      string `form:"path" example:"/api/optimize"`
	Action    string `form:"action" example:"optimize"`
	// Since and Until are RFC 3339 timestamps bounding the entry time
	Since time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00"`
	Until time.Time `form:"until" time_format:"2006-01-02T15:04:05Z07:00"`
	// Limit defaults to 100 and is capped at 1000
	Limit int `form:"limit" example:"100"`
	Skip  int `form:"skip" example:"0"`
} // @name LogQueryRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
	// Key is the i18n message key describing the failure.
	Key string
}

// ErrInvalidFunds is returned when funds are missing or negative.
var ErrInvalidFunds = &ValidationError{
	Field:   "funds",
	Message: "must not be negative",
	Key:     "error.validation.funds",
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *OptimizeRequest) Validate() error {
	if err := validateFunds(r.Funds); err != nil {
		return err
	}
	return validateAssets(r.Assets)
}

// ToAssets converts the submitted assets into domain assets.
func (r *OptimizeRequest) ToAssets() []model.Asset {
	return toAssets(r.Assets)
}

// Validate performs custom validation on the request.
func (r *CompareRequest) Validate() error {
	if err := validateFunds(r.Funds); err != nil {
		return err
	}
	return validateAssets(r.Assets)
}

// ToAssets converts the submitted assets into domain assets.
func (r *CompareRequest) ToAssets() []model.Asset {
	return toAssets(r.Assets)
}

// Validate checks the optional funds override.
func (r *DatasetOptimizeRequest) Validate() error {
	if r.Funds == nil {
		return nil
	}
	return validateFunds(r.Funds)
}

// ResolveFunds returns the override when present, otherwise fallback.
func (r *DatasetOptimizeRequest) ResolveFunds(fallback int) int {
	if r.Funds == nil {
		return fallback
	}
	return *r.Funds
}

func validateFunds(funds *int) error {
	if funds == nil || *funds < 0 {
		return ErrInvalidFunds
	}
	return nil
}

func validateAssets(assets []AssetInput) error {
	for i, a := range assets {
		if a.Name == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("assets[%d].name", i),
				Message: "must not be empty",
				Key:     "error.validation.asset_name",
			}
		}
		// the rounded price is what the solvers index on
		if model.RoundPrice(a.Price) <= 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("assets[%d].price", i),
				Message: "must be positive",
				Key:     "error.validation.asset_price",
			}
		}
	}
	return nil
}

func toAssets(in []AssetInput) []model.Asset {
	out := make([]model.Asset, len(in))
	for i, a := range in {
		out[i] = model.NewAsset(a.Name, a.Price, a.Yield)
	}
	return out
}

// Validate rejects negative paging and an inverted time window.
func (r *LogQueryRequest) Validate() error {
	switch {
	case r.Limit < 0:
		return &ValidationError{Field: "limit", Message: "must not be negative", Key: "error.validation.paging"}
	case r.Skip < 0:
		return &ValidationError{Field: "skip", Message: "must not be negative", Key: "error.validation.paging"}
	case !r.Since.IsZero() && !r.Until.IsZero() && r.Since.After(r.Until):
		return &ValidationError{Field: "since", Message: "must not be after until", Key: "error.validation.time_range"}
	}
	return nil
}

// ToOptions converts the request into repository query options.
func (r *LogQueryRequest) ToOptions() model.LogQueryOptions {
	opts := model.LogQueryOptions{
		RequestID:  r.RequestID,
		Level:      r.Level,
		Method:     strings.ToUpper(r.Method),
		Path:       r.Path,
		ActionType: r.Action,
		Limit:      r.Limit,
		Skip:       r.Skip,
	}
	if !r.Since.IsZero() {
		since := r.Since.UTC()
		opts.StartTime = &since
	}
	if !r.Until.IsZero() {
		until := r.Until.UTC()
		opts.EndTime = &until
	}
	return opts
}
