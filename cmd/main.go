// Package main is the entry point for the bond-optimizer HTTP service.
//
// @title           Bond Optimizer API
// @version         1.0.0
// @description     API for selecting the most profitable set of assets within a budget.
//
//	Solves the 0-1 knapsack problem over bonds or shares with dynamic programming or exhaustive search.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/bond-optimizer
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT bearer token issued by bondopt token.
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled without a JWT secret.
//
// @tag.name        Optimizer
// @tag.description Portfolio optimization operations
//
// @tag.name        Datasets
// @tag.description Bundled dataset operations
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/guttosm/bond-optimizer/docs" // swagger docs

	"github.com/guttosm/bond-optimizer/config"
	"github.com/guttosm/bond-optimizer/internal/app"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	a := app.InitializeApp(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.Close(ctx)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := app.NewServer(a.Router, cfg.Server)
	if err := server.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Server error")
	}
}
