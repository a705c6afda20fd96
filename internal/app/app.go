// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bond-optimizer/config"
	"github.com/guttosm/bond-optimizer/internal/http"
	"github.com/guttosm/bond-optimizer/internal/middleware"
	"github.com/rs/zerolog/log"
)

// App is the wired application: the HTTP router plus the components that need an
// orderly shutdown.
type App struct {
	Router   *gin.Engine
	services *ServiceComponents
	db       *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	InitializeLogger(cfg.Log)

	serviceComponents := InitializeServices(cfg.Cache, cfg.Optimizer)
	dbComponents := InitializeDatabase(cfg.Database)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	serviceComponents.Start()

	return &App{
		Router:   http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		services: serviceComponents,
		db:       dbComponents,
	}
}

// Close stops background work and releases the database connection.
func (a *App) Close(ctx context.Context) {
	a.services.Stop()
	middleware.StopAsyncLogger()

	if a.db != nil && a.db.DB != nil {
		if err := a.db.DB.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to close MongoDB connection")
		}
	}
}
