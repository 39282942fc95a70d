package settings_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderplan/internal/config"
	"wanderplan/internal/services"
)

var Module = fx.Provide(
	provideSettingsService,
	func(s *services.SettingsService) services.SettingsProvider { return s },
	func(s *services.SettingsService) services.SettingsServiceInterface { return s })

func provideSettingsService(cfg *config.Config, log *zap.Logger) *services.SettingsService {
	return services.NewSettingsService(cfg.SettingsFile, log.Named("settings"))
}
