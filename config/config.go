// Package config reads the bond optimizer settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// maxExhaustiveAssets mirrors the widest input the exhaustive solvers can enumerate.
const maxExhaustiveAssets = 30

// Config holds the complete application configuration.
type Config struct {
	Server    ServerConfig
	Cache     CacheConfig
	Optimizer OptimizerConfig
	Auth      AuthConfig
	Database  DatabaseConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	MaxUploadBytes int64
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// CacheConfig sizes the optimization result cache. Shards above 1 split it into
// independently locked LRU shards.
type CacheConfig struct {
	Size   int
	TTL    time.Duration
	Shards int
}

// OptimizerConfig holds solver defaults and dataset locations.
type OptimizerConfig struct {
	DefaultAlgorithm    string
	DefaultFunds        int
	MaxFunds            int
	MaxTableCells       int
	MaxBruteForceAssets int
	DatasetsManifest    string
	// DatasetReloadCron is a robfig/cron schedule; empty disables periodic reloads.
	DatasetReloadCron string
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled      bool
	APIKeys      map[string]bool
	JWTSecretKey string
	TokenTTL     time.Duration
}

// DatabaseConfig holds the MongoDB log sink settings.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads the configuration from the environment. Malformed values keep their
// default and are reported, together with out-of-range settings, in the returned error.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	e := &env{lookup: lookup}
	cfg := Config{
		Server: ServerConfig{
			Port:           e.str("PORT", "8080"),
			RateLimit:      e.num("RATE_LIMIT", 100),
			RateWindow:     e.duration("RATE_WINDOW", time.Minute),
			RequestTimeout: e.duration("REQUEST_TIMEOUT", 30*time.Second),
			MaxUploadBytes: int64(e.num("MAX_UPLOAD_BYTES", 5<<20)),
			CORSOrigins:    append(localOrigins(), e.list("CORS_ORIGINS")...),
			SwaggerUser:    e.str("SWAGGER_USER", ""),
			SwaggerPass:    e.str("SWAGGER_PASS", ""),
		},
		Cache: CacheConfig{
			Size:   e.num("CACHE_SIZE", 1000),
			TTL:    e.duration("CACHE_TTL", 5*time.Minute),
			Shards: e.num("CACHE_SHARDS", 1),
		},
		Optimizer: OptimizerConfig{
			DefaultAlgorithm:    e.str("DEFAULT_ALGORITHM", "dynamic"),
			DefaultFunds:        e.num("DEFAULT_FUNDS", 500),
			MaxFunds:            e.num("MAX_FUNDS", 100000),
			MaxTableCells:       e.num("MAX_DP_CELLS", 50_000_000),
			MaxBruteForceAssets: e.num("MAX_BRUTEFORCE_ASSETS", 22),
			DatasetsManifest:    e.str("DATASETS_MANIFEST", "data/datasets.yaml"),
			DatasetReloadCron:   e.str("DATASET_RELOAD_CRON", ""),
		},
		Auth: AuthConfig{
			Enabled:      e.flag("AUTH_ENABLED", false),
			APIKeys:      keySet(e.list("API_KEYS")),
			JWTSecretKey: e.str("JWT_SECRET_KEY", ""),
			TokenTTL:     e.duration("JWT_TOKEN_TTL", time.Hour),
		},
		Database: DatabaseConfig{
			URI:                            e.str("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   e.str("MONGODB_DATABASE", "bond_optimizer"),
			LogsTTL:                        e.duration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        e.flag("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: e.num("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: e.num("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          e.duration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Log: LogConfig{
			Level:  e.str("LOG_LEVEL", "info"),
			Pretty: e.flag("LOG_PRETTY", false),
		},
	}
	return cfg, errors.Join(append(e.errs, cfg.Validate())...)
}

// Validate reports settings that parse but cannot work.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	port, err := strconv.Atoi(c.Server.Port)
	check(err == nil && port >= 0 && port <= 65535, "PORT %q is not a TCP port", c.Server.Port)
	check(c.Server.RateLimit >= 0, "RATE_LIMIT must not be negative")
	check(c.Server.RateLimit == 0 || c.Server.RateWindow > 0, "RATE_WINDOW must be positive when RATE_LIMIT is set")
	check(c.Cache.Shards >= 1, "CACHE_SHARDS must be at least 1")
	check(c.Optimizer.DefaultFunds >= 0, "DEFAULT_FUNDS must not be negative")
	check(c.Optimizer.MaxFunds >= c.Optimizer.DefaultFunds, "MAX_FUNDS %d is below DEFAULT_FUNDS %d", c.Optimizer.MaxFunds, c.Optimizer.DefaultFunds)
	check(c.Optimizer.MaxTableCells > 0, "MAX_DP_CELLS must be positive")
	check(c.Optimizer.MaxBruteForceAssets >= 1 && c.Optimizer.MaxBruteForceAssets <= maxExhaustiveAssets,
		"MAX_BRUTEFORCE_ASSETS must be between 1 and %d", maxExhaustiveAssets)
	check(!c.Database.Enabled || c.Database.LogsTTL > 0, "MONGODB_LOGS_TTL must be positive")
	return errors.Join(errs...)
}

// env reads typed variables, remembering the ones that failed to parse.
type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func parsed[T any](e *env, key string, def T, parse func(string) (T, error)) T {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s=%q: %w", key, raw, err))
		return def
	}
	return v
}

func (e *env) num(key string, def int) int { return parsed(e, key, def, strconv.Atoi) }

func (e *env) flag(key string, def bool) bool { return parsed(e, key, def, strconv.ParseBool) }

func (e *env) duration(key string, def time.Duration) time.Duration {
	return parsed(e, key, def, time.ParseDuration)
}

// list splits a comma separated variable, dropping blank items.
func (e *env) list(key string) []string {
	var out []string
	for _, item := range strings.Split(e.str(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func keySet(keys []string) map[string]bool {
	if len(keys) == 0 {
		return nil
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// localOrigins are always allowed so a local frontend works without configuration.
func localOrigins() []string {
	return []string{"http://localhost:3000", "http://127.0.0.1:3000"}
}
