package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"

	// ErrKeyValidationFunds indicates negative funds.
	ErrKeyValidationFunds = "error.validation.funds"
	// ErrKeyValidationAssetName indicates an asset without a name.
	ErrKeyValidationAssetName = "error.validation.asset_name"
	// ErrKeyValidationAssetPrice indicates an asset whose price is not positive.
	ErrKeyValidationAssetPrice = "error.validation.asset_price"
	// ErrKeyValidationPaging indicates a negative limit or skip.
	ErrKeyValidationPaging = "error.validation.paging"
	// ErrKeyValidationTimeRange indicates a query window whose start is after its end.
	ErrKeyValidationTimeRange = "error.validation.time_range"
	// ErrKeyUnknownAlgorithm indicates an unregistered algorithm name.
	ErrKeyUnknownAlgorithm = "error.unknown_algorithm"
	// ErrKeyTooManyAssets indicates too many assets for an exhaustive solver.
	ErrKeyTooManyAssets = "error.too_many_assets"
	// ErrKeyFundsTooLarge indicates funds above the configured maximum.
	ErrKeyFundsTooLarge = "error.funds_too_large"
	// ErrKeyProblemTooLarge indicates assets and funds whose DP table exceeds the cell limit.
	ErrKeyProblemTooLarge = "error.problem_too_large"
	// ErrKeyDatasetNotFound indicates an unknown dataset name.
	ErrKeyDatasetNotFound = "error.dataset_not_found"
	// ErrKeyRouteNotFound indicates a path with no route.
	ErrKeyRouteNotFound = "error.route_not_found"
	// ErrKeyMethodNotAllowed indicates a known path called with the wrong method.
	ErrKeyMethodNotAllowed = "error.method_not_allowed"
	// ErrKeyInvalidCSV indicates an unreadable CSV upload.
	ErrKeyInvalidCSV = "error.invalid_csv"
	// ErrKeyFileRequired indicates a missing upload file.
	ErrKeyFileRequired = "error.file_required"
	// ErrKeyFileTooLarge indicates an upload above the size limit.
	ErrKeyFileTooLarge = "error.file_too_large"
	// ErrKeyLogsUnavailable indicates that no log store is configured.
	ErrKeyLogsUnavailable = "error.logs_unavailable"
)

// Success message translation keys.
const (
	// SuccessKeyOptimized indicates a completed optimization.
	SuccessKeyOptimized = "success.optimized"
	// SuccessKeyCompared indicates a completed solver comparison.
	SuccessKeyCompared = "success.compared"
)
