package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bond-optimizer/internal/dataset"
	"github.com/guttosm/bond-optimizer/internal/domain/dto"
	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/guttosm/bond-optimizer/internal/i18n"
	"github.com/guttosm/bond-optimizer/internal/middleware"
	"github.com/guttosm/bond-optimizer/internal/service"
	"github.com/guttosm/bond-optimizer/internal/solver"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxUploadBytes bounds multipart CSV uploads.
	DefaultMaxUploadBytes int64 = 5 << 20
	// DefaultFunds is used by uploads that do not send a funds field.
	DefaultFunds = dataset.DefaultFunds
)

// Handler provides HTTP handlers for the optimizer routes.
type Handler struct {
	optimizer      service.Optimizer
	datasets       service.DatasetProvider
	maxUploadBytes int64
	defaultFunds   int
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMaxUploadBytes sets the request size limit for CSV uploads.
func WithMaxUploadBytes(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}

// WithDefaultFunds sets the funds used when an upload omits them.
func WithDefaultFunds(funds int) HandlerOption {
	return func(h *Handler) {
		if funds >= 0 {
			h.defaultFunds = funds
		}
	}
}

// NewHandler creates a new Handler instance. A nil dataset provider serves no datasets.
func NewHandler(optimizer service.Optimizer, datasets service.DatasetProvider, opts ...HandlerOption) *Handler {
	h := &Handler{
		optimizer:      optimizer,
		datasets:       datasets,
		maxUploadBytes: DefaultMaxUploadBytes,
		defaultFunds:   DefaultFunds,
	}
	if h.datasets == nil {
		h.datasets = service.NewDatasetService(nil)
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Optimize handles POST /api/optimize requests.
//
// @Summary      Select the most profitable assets
// @Description  Picks the subset of assets with the highest total profit whose rounded prices fit in the funds. Each asset is bought at most once. Supports idempotency via Idempotency-Key header.
// @Tags         Optimizer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.OptimizeRequest true "Funds, algorithm and candidate assets"
// @Success      200 {object} dto.SuccessResponse{data=model.Selection} "Optimal selection"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input or unknown algorithm"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Failure      422 {object} dto.ErrorResponse "Input too large for the requested algorithm"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/optimize [post]
func (h *Handler) Optimize(c *gin.Context) {
	out := replyTo(c)

	req, err := bindJSON[dto.OptimizeRequest](c)
	if err != nil {
		writeRequestError(out, err)
		return
	}

	assets := req.ToAssets()
	audit(c, middleware.ActionOptimize, "Optimization requested", map[string]interface{}{
		"funds":     *req.Funds,
		"algorithm": req.Algorithm,
		"assets":    len(assets),
	})

	h.optimize(c, out, assets, *req.Funds, req.Algorithm, middleware.ActionOptimize)
}

// Compare handles POST /api/compare requests.
//
// @Summary      Compare every algorithm on the same input
// @Description  Runs the dynamic programming and both exhaustive solvers one after another and reports each selection with its duration. Exhaustive solvers are skipped when there are too many assets.
// @Tags         Optimizer
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.CompareRequest true "Funds and candidate assets"
// @Success      200 {object} dto.SuccessResponse{data=model.Comparison} "Per-algorithm results"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Failure      422 {object} dto.ErrorResponse "Funds above the configured maximum"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/compare [post]
func (h *Handler) Compare(c *gin.Context) {
	out := replyTo(c)

	req, err := bindJSON[dto.CompareRequest](c)
	if err != nil {
		writeRequestError(out, err)
		return
	}

	assets := req.ToAssets()
	audit(c, middleware.ActionCompare, "Comparison requested", map[string]interface{}{
		"funds":  *req.Funds,
		"assets": len(assets),
	})

	cmp, err := h.optimizer.Compare(c.Request.Context(), assets, *req.Funds)
	if err != nil {
		auditError(c, middleware.ActionCompare, "Comparison failed", err)
		writeOptimizerError(out, err)
		return
	}

	out.ok(http.StatusOK, i18n.SuccessKeyCompared, cmp)
}

// OptimizeUpload handles POST /api/optimize/upload requests.
//
// @Summary      Optimize an uploaded CSV file
// @Description  Reads assets from a CSV file with a header line and name, price and yield columns separated by ',' or ';'. Invalid rows are skipped.
// @Tags         Optimizer
// @Accept       multipart/form-data
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        file formData file true "CSV file"
// @Param        funds formData int false "Budget, defaults to 500"
// @Param        algorithm formData string false "Algorithm name"
// @Success      200 {object} dto.SuccessResponse{data=model.Selection} "Optimal selection"
// @Failure      400 {object} dto.ErrorResponse "Missing file, unreadable CSV or invalid funds"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Failure      413 {object} dto.ErrorResponse "File too large"
// @Failure      422 {object} dto.ErrorResponse "Input too large for the requested algorithm"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/optimize/upload [post]
func (h *Handler) OptimizeUpload(c *gin.Context) {
	out := replyTo(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			out.fail(http.StatusRequestEntityTooLarge, i18n.ErrKeyFileTooLarge, err, nil)
			return
		}
		out.fail(http.StatusBadRequest, i18n.ErrKeyFileRequired, err, nil)
		return
	}

	funds := h.defaultFunds
	if raw := c.PostForm("funds"); raw != "" {
		funds, err = strconv.Atoi(raw)
		if err != nil || funds < 0 {
			out.fail(http.StatusBadRequest, i18n.ErrKeyValidationFunds, dto.ErrInvalidFunds, nil)
			return
		}
	}
	algorithm := c.PostForm("algorithm")

	file, err := fileHeader.Open()
	if err != nil {
		out.fail(http.StatusBadRequest, i18n.ErrKeyInvalidCSV, err, nil)
		return
	}
	defer file.Close()

	assets, err := dataset.Parse(file)
	if err != nil {
		out.fail(http.StatusBadRequest, i18n.ErrKeyInvalidCSV, err, nil)
		return
	}

	audit(c, middleware.ActionOptimizeUpload, "Upload optimization requested", map[string]interface{}{
		"file":      fileHeader.Filename,
		"funds":     funds,
		"algorithm": algorithm,
		"assets":    len(assets),
	})

	h.optimize(c, out, assets, funds, algorithm, middleware.ActionOptimizeUpload)
}

// ListDatasets handles GET /api/datasets requests.
//
// @Summary      List stored datasets
// @Description  Returns the datasets declared in the manifest with their default funds and asset count.
// @Tags         Datasets
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=[]dto.DatasetSummary} "Dataset summaries"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Security     BearerAuth
// @Router       /api/datasets [get]
func (h *Handler) ListDatasets(c *gin.Context) {
	list := h.datasets.List()
	summaries := make([]dto.DatasetSummary, len(list))
	for i, d := range list {
		summaries[i] = dto.NewDatasetSummary(d)
	}
	replyTo(c).ok(http.StatusOK, "", summaries)
}

// OptimizeDataset handles POST /api/datasets/:name/optimize requests.
//
// @Summary      Optimize a stored dataset
// @Description  Runs the optimizer over a dataset from the manifest. The body is optional; funds default to the dataset's funds and the algorithm to the server default.
// @Tags         Datasets
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        name path string true "Dataset name"
// @Param        request body dto.DatasetOptimizeRequest false "Overrides"
// @Success      200 {object} dto.SuccessResponse{data=model.Selection} "Optimal selection"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input or unknown algorithm"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Failure      404 {object} dto.ErrorResponse "Dataset not found"
// @Failure      422 {object} dto.ErrorResponse "Input too large for the requested algorithm"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/datasets/{name}/optimize [post]
func (h *Handler) OptimizeDataset(c *gin.Context) {
	out := replyTo(c)

	req := &dto.DatasetOptimizeRequest{}
	if c.Request.ContentLength != 0 {
		var err error
		if req, err = bindJSON[dto.DatasetOptimizeRequest](c); err != nil {
			writeRequestError(out, err)
			return
		}
	}

	d, err := h.datasets.Get(c.Param("name"))
	if err != nil {
		writeOptimizerError(out, err)
		return
	}

	funds := req.ResolveFunds(d.Funds)
	audit(c, middleware.ActionOptimizeDataset, "Dataset optimization requested", map[string]interface{}{
		"dataset":   d.Name,
		"funds":     funds,
		"algorithm": req.Algorithm,
	})

	h.optimize(c, out, d.Assets, funds, req.Algorithm, middleware.ActionOptimizeDataset)
}

// ListLogs handles GET /api/logs requests.
//
// @Summary      Search request and audit logs
// @Description  Pages through stored log entries, newest first. Only available when MongoDB logging is enabled.
// @Tags         Logs
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request_id query string false "Exact request ID"
// @Param        level query string false "Log level" Enums(debug, info, warn, error)
// @Param        method query string false "HTTP method"
// @Param        path query string false "Case-insensitive path substring"
// @Param        action query string false "Audit action" Enums(optimize, compare, optimize_upload, optimize_dataset)
// @Param        since query string false "RFC 3339 lower bound"
// @Param        until query string false "RFC 3339 upper bound"
// @Param        limit query int false "Page size, default 100, at most 1000"
// @Param        skip query int false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.LogPage} "Matching entries"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid filter"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid credentials"
// @Failure      503 {object} dto.ErrorResponse "Log storage is not enabled"
// @Security     BearerAuth
// @Router       /api/logs [get]
func (h *Handler) ListLogs(c *gin.Context) {
	out := replyTo(c)

	ls := loggingService(c)
	if ls == nil {
		out.fail(http.StatusServiceUnavailable, i18n.ErrKeyLogsUnavailable, nil, nil)
		return
	}

	req, err := bindQuery[dto.LogQueryRequest](c)
	if err != nil {
		writeRequestError(out, err)
		return
	}
	opts := req.ToOptions()

	var (
		page dto.LogPage
		g    errgroup.Group
	)
	g.Go(func() error {
		entries, err := ls.QueryLogs(c.Request.Context(), opts)
		page.Entries = entries
		return err
	})
	g.Go(func() error {
		total, err := ls.CountLogs(c.Request.Context(), opts)
		page.Total = total
		return err
	})
	if err := g.Wait(); err != nil {
		writeOptimizerError(out, err)
		return
	}

	if page.Entries == nil {
		page.Entries = []model.LogEntry{}
	}
	page.Limit = service.EffectiveLogLimit(opts.Limit)
	page.Skip = opts.Skip
	out.ok(http.StatusOK, "", page)
}

func (h *Handler) optimize(c *gin.Context, out reply, assets []model.Asset, funds int, algorithm, action string) {
	sel, err := h.optimizer.Optimize(c.Request.Context(), assets, funds, algorithm)
	if err != nil {
		auditError(c, action, "Optimization failed", err)
		writeOptimizerError(out, err)
		return
	}
	out.ok(http.StatusOK, i18n.SuccessKeyOptimized, sel)
}

// writeRequestError reports a body that failed binding or validation.
func writeRequestError(out reply, err error) {
	var vErr *dto.ValidationError
	if errors.As(err, &vErr) {
		out.fail(http.StatusBadRequest, vErr.Key, err, map[string]string{vErr.Field: vErr.Message})
		return
	}
	out.fail(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err, nil)
}

// writeOptimizerError maps service and solver errors to HTTP responses.
func writeOptimizerError(out reply, err error) {
	status, key := errorStatus(err)
	out.fail(status, key, err, nil)
}

func errorStatus(err error) (int, string) {
	var parseErr *dataset.ParseError
	switch {
	case errors.Is(err, solver.ErrUnknownAlgorithm):
		return http.StatusBadRequest, i18n.ErrKeyUnknownAlgorithm
	case errors.Is(err, solver.ErrNegativeFunds):
		return http.StatusBadRequest, i18n.ErrKeyValidationFunds
	case errors.Is(err, solver.ErrInvalidPrice):
		return http.StatusBadRequest, i18n.ErrKeyValidationAssetPrice
	case errors.Is(err, solver.ErrTooManyAssets):
		return http.StatusUnprocessableEntity, i18n.ErrKeyTooManyAssets
	case errors.Is(err, service.ErrFundsTooLarge):
		return http.StatusUnprocessableEntity, i18n.ErrKeyFundsTooLarge
	case errors.Is(err, service.ErrTableTooLarge):
		return http.StatusUnprocessableEntity, i18n.ErrKeyProblemTooLarge
	case errors.Is(err, service.ErrDatasetNotFound), errors.Is(err, dataset.ErrNotFound):
		return http.StatusNotFound, i18n.ErrKeyDatasetNotFound
	case errors.As(err, &parseErr), errors.Is(err, dataset.ErrEmptyFile):
		return http.StatusBadRequest, i18n.ErrKeyInvalidCSV
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}

func loggingService(c *gin.Context) service.LoggingService {
	v, exists := c.Get(loggingServiceKey)
	if !exists {
		return nil
	}
	ls, _ := v.(service.LoggingService)
	return ls
}

func audit(c *gin.Context, action, message string, fields map[string]interface{}) {
	if ls := loggingService(c); ls != nil {
		middleware.Audit(ls, c, action, message, nil, fields)
	}
}

func auditError(c *gin.Context, action, message string, err error) {
	if ls := loggingService(c); ls != nil {
		middleware.Audit(ls, c, action, message, err, nil)
	}
}
