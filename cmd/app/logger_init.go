package main

import (
	"github.com/amigo-fit/amigo-server/internal/config"
	"github.com/amigo-fit/amigo-server/internal/handler"
	"github.com/amigo-fit/amigo-server/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Source locations are only worth the log volume in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		ServiceName,
		handler.Version,
		cfg.Environment,
		addSource,
	)

	logger.Init(loggerConfig)
}
