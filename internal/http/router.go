package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/bond-optimizer/internal/i18n"
	"github.com/guttosm/bond-optimizer/internal/metrics"
	"github.com/guttosm/bond-optimizer/internal/middleware"
	"github.com/guttosm/bond-optimizer/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// loggingServiceKey is the gin context key holding the request's LoggingService.
const loggingServiceKey = "logging_service"

var defaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	APIKeys           map[string]bool
	EnableAuth        bool
	JWTSecret         []byte
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	LoggingService    service.LoggingService
}

// DefaultRouterConfig limits each client IP to 100 requests a minute with auth off.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{RateLimit: 100, RateWindow: time.Minute}
}

// NewRouter builds the engine. Probes, metrics and docs sit outside /api and skip
// authentication; everything under /api goes through apiChain. A nil handler mounts
// no API routes.
func NewRouter(handler *Handler, health *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(notFound(http.StatusNotFound, i18n.ErrKeyRouteNotFound))
	router.NoMethod(notFound(http.StatusMethodNotAllowed, i18n.ErrKeyMethodNotAllowed))

	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.Use(globalChain(cfg)...)

	if health != nil {
		health.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	mountDocs(router, cfg.SwaggerUser, cfg.SwaggerPass)

	api := router.Group("/api", apiChain(cfg)...)
	if handler != nil {
		mountAPI(api, handler)
	}
	return router
}

// mountAPI registers the optimizer, dataset and log endpoints on rg.
func mountAPI(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/optimize", h.Optimize)
	rg.POST("/optimize/upload", h.OptimizeUpload)
	rg.POST("/compare", h.Compare)
	rg.GET("/datasets", h.ListDatasets)
	rg.POST("/datasets/:name/optimize", h.OptimizeDataset)
	rg.GET("/logs", h.ListLogs)
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Accept-Language", "Accept-Encoding",
			"Authorization", middleware.APIKeyHeader, middleware.IdempotencyKeyHeader, middleware.RequestIDHeader,
		},
		ExposeHeaders: []string{
			middleware.RequestIDHeader, middleware.ReplayedHeader,
			"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After",
		},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
}

// globalChain runs on every route, probes included.
func globalChain(cfg RouterConfig) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression("/swagger"),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	}
	if cfg.LoggingService != nil {
		ls := cfg.LoggingService
		chain = append(chain, func(c *gin.Context) {
			c.Set(loggingServiceKey, ls)
			c.Next()
		})
	}
	if cfg.RateLimit > 0 {
		chain = append(chain, middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow).RateLimit())
	}
	return chain
}

// apiChain authenticates, applies the per-caller budget, bounds the request time and
// replays idempotent requests. JWT wins over API keys when both are configured.
func apiChain(cfg RouterConfig) []gin.HandlerFunc {
	var chain []gin.HandlerFunc
	if cfg.EnableAuth {
		switch {
		case len(cfg.JWTSecret) > 0:
			chain = append(chain, middleware.JWTAuth(cfg.JWTSecret))
		case len(cfg.APIKeys) > 0:
			chain = append(chain, middleware.APIKeyAuth(cfg.APIKeys))
		}
		if cfg.RateLimit > 0 {
			chain = append(chain, middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow).UserRateLimit())
		}
	}
	if cfg.RequestTimeout > 0 {
		chain = append(chain, middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.EnableIdempotency {
		chain = append(chain, middleware.Idempotency(middleware.DefaultIdempotencyConfig()))
	}
	return chain
}

func mountDocs(router *gin.Engine, user, pass string) {
	docs := ginSwagger.WrapHandler(swaggerFiles.Handler)
	if user == "" || pass == "" {
		router.GET("/swagger/*any", docs)
		return
	}
	router.Group("/swagger", gin.BasicAuth(gin.Accounts{user: pass})).GET("/*any", docs)
}

func notFound(status int, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		replyTo(c).fail(status, key, nil, nil)
	}
}
