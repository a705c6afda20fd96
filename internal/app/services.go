// Package app provides service initialization.
package app

import (
	"github.com/guttosm/bond-optimizer/config"
	"github.com/guttosm/bond-optimizer/internal/dataset"
	"github.com/guttosm/bond-optimizer/internal/scheduler"
	"github.com/guttosm/bond-optimizer/internal/service"
	"github.com/rs/zerolog/log"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Optimizer *service.OptimizerService
	Datasets  *service.DatasetService
	// Catalog is nil when no manifest is configured or it failed to load.
	Catalog   *dataset.Catalog
	Scheduler *scheduler.Scheduler
	// CatalogErr is the error of the initial manifest load, if any.
	CatalogErr error
}

// InitializeServices initializes the optimizer, the dataset catalog and the reload scheduler.
func InitializeServices(cacheCfg config.CacheConfig, cfg config.OptimizerConfig) *ServiceComponents {
	opts := []service.Option{}

	if cfg.DefaultAlgorithm != "" {
		opts = append(opts, service.WithDefaultAlgorithm(cfg.DefaultAlgorithm))
	}
	if cfg.MaxFunds > 0 {
		opts = append(opts, service.WithMaxFunds(cfg.MaxFunds))
	}
	if cfg.MaxTableCells > 0 {
		opts = append(opts, service.WithMaxTableCells(int64(cfg.MaxTableCells)))
	}
	if cfg.MaxBruteForceAssets > 0 {
		opts = append(opts, service.WithBruteForceLimit(cfg.MaxBruteForceAssets))
	}
	switch {
	case cacheCfg.Size > 0 && cacheCfg.Shards > 1:
		opts = append(opts, service.WithShardedCache(cacheCfg.Size, cacheCfg.TTL, cacheCfg.Shards))
	case cacheCfg.Size > 0:
		opts = append(opts, service.WithCache(cacheCfg.Size, cacheCfg.TTL))
	}

	components := &ServiceComponents{
		Optimizer: service.NewOptimizerService(opts...),
	}

	if cfg.DatasetsManifest != "" {
		catalog, err := dataset.NewCatalog(cfg.DatasetsManifest)
		if err != nil {
			log.Error().Err(err).Str("manifest", cfg.DatasetsManifest).Msg("Failed to load datasets - continuing without them")
			components.CatalogErr = err
		} else {
			components.Catalog = catalog
			log.Info().Int("datasets", len(catalog.List())).Msg("Datasets loaded")
		}
	}

	if components.Catalog != nil {
		components.Datasets = service.NewDatasetService(components.Catalog)
		components.Scheduler = newReloadScheduler(components.Catalog, components.Optimizer, cfg.DatasetReloadCron)
	} else {
		components.Datasets = service.NewDatasetService(nil)
	}

	return components
}

// newReloadScheduler schedules catalog reloads. Reloads drop cached selections since
// dataset contents may have changed. Returns nil when no schedule is configured.
func newReloadScheduler(catalog *dataset.Catalog, optimizer *service.OptimizerService, schedule string) *scheduler.Scheduler {
	if schedule == "" {
		return nil
	}
	s := scheduler.New(reloadFunc(func() error {
		if err := catalog.Reload(); err != nil {
			return err
		}
		optimizer.InvalidateCache()
		return nil
	}))
	if err := s.RegisterReload(schedule); err != nil {
		log.Error().Err(err).Msg("Invalid dataset reload schedule - reloads disabled")
		return nil
	}
	return s
}

type reloadFunc func() error

func (f reloadFunc) Reload() error { return f() }

// Start starts the background jobs.
func (c *ServiceComponents) Start() {
	if c.Scheduler != nil {
		c.Scheduler.Start()
	}
}

// Stop stops the background jobs and the result cache.
func (c *ServiceComponents) Stop() {
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	c.Optimizer.Stop()
}
