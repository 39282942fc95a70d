package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderplan/internal/config"
	"wanderplan/pkg/logger"
)

var Module = fx.Provide(
	config.Load,
	provideLogger)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) *zap.Logger {
	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	lc.Append(fx.StopHook(func() {
		_ = log.Sync()
	}))
	return log
}
