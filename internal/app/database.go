// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/guttosm/bond-optimizer/config"
	"github.com/guttosm/bond-optimizer/internal/circuitbreaker"
	"github.com/guttosm/bond-optimizer/internal/middleware"
	"github.com/guttosm/bond-optimizer/internal/repository"
	"github.com/guttosm/bond-optimizer/internal/service"
	"github.com/rs/zerolog/log"
)

const indexTimeout = 10 * time.Second

// DatabaseComponents holds the MongoDB request-log sink.
type DatabaseComponents struct {
	DB                 *repository.MongoDB
	LoggingService     service.LoggingService
	LogsCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and wires the logging service behind a circuit
// breaker. Returns nil if the database is disabled or the connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()
	if err := db.EnsureIndexes(ctx, cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Dur("retention", cfg.LogsTTL).Msg("Log indexes not created")
	}

	components := newLogComponents(repository.NewLogsRepository(db), cfg)
	components.DB = db

	middleware.InitAsyncLogger(components.LoggingService, middleware.DefaultAsyncLoggerConfig())

	return components
}

// newLogComponents wraps store in a circuit breaker configured from cfg.
func newLogComponents(store repository.LogStore, cfg config.DatabaseConfig) *DatabaseComponents {
	logsCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-logs",
	})

	return &DatabaseComponents{
		LoggingService:     service.NewLoggingService(repository.NewBreakerLogs(store, logsCB)),
		LogsCircuitBreaker: logsCB,
	}
}
