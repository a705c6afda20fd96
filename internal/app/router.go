package app

import (
	"context"
	"errors"

	"github.com/guttosm/bond-optimizer/config"
	"github.com/guttosm/bond-optimizer/internal/http"
	"github.com/guttosm/bond-optimizer/internal/service"
)

// RouterComponents is everything http.NewRouter needs.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

var errNoDatasets = errors.New("no datasets loaded")

// InitializeRouter builds the API handler, the readiness checks and the router configuration.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	return &RouterComponents{
		Handler: http.NewHandler(
			services.Optimizer,
			services.Datasets,
			http.WithMaxUploadBytes(cfg.Server.MaxUploadBytes),
			http.WithDefaultFunds(cfg.Optimizer.DefaultFunds),
		),
		HealthHandler: newHealthHandler(services, db, cfg.Optimizer.DatasetsManifest != ""),
		Config:        routerConfig(cfg, db),
	}
}

// CheckDatasets fails while the initial manifest load error stands or the catalog is empty.
func (c *ServiceComponents) CheckDatasets(context.Context) error {
	if c.CatalogErr != nil {
		return c.CatalogErr
	}
	if len(c.Datasets.List()) == 0 {
		return errNoDatasets
	}
	return nil
}

// newHealthHandler only checks datasets when a manifest is configured, so a
// service started without one stays ready.
func newHealthHandler(services *ServiceComponents, db *DatabaseComponents, withDatasets bool) *http.HealthHandler {
	h := http.NewHealthHandler()
	if withDatasets {
		h.RegisterChecker("datasets", http.HealthCheckerFunc(services.CheckDatasets))
	}
	if db == nil {
		return h
	}
	h.RegisterCircuitBreaker("mongodb_logs", db.LogsCircuitBreaker)
	if db.DB != nil {
		h.RegisterChecker("mongodb", http.HealthCheckerFunc(db.DB.HealthCheck))
	}
	return h
}

func routerConfig(cfg config.Config, db *DatabaseComponents) http.RouterConfig {
	rc := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: true,
		LoggingService:    loggingService(db),
	}
	if cfg.Auth.JWTSecretKey != "" {
		rc.JWTSecret = []byte(cfg.Auth.JWTSecretKey)
	}
	return rc
}

func loggingService(db *DatabaseComponents) service.LoggingService {
	if db == nil {
		return nil
	}
	return db.LoggingService
}
