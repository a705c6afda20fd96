// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/bond-optimizer/config"
	"github.com/guttosm/bond-optimizer/internal/logger"
)

// InitializeLogger initializes the global zerolog logger from the log configuration.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
