// Package providers holds the DI provider functions for the reader core.
package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/codexreader/codex-core/internal/config"
	"github.com/codexreader/codex-core/internal/logger"
)

// ProvideConfig loads application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig(os.Args[1:])
}

// ProvideLogger provides the application logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return logger.New(logger.Config{
		Environment: cfg.App.Environment,
		Level:       logger.ParseLevel(cfg.Logger.Level),
	}), nil
}
