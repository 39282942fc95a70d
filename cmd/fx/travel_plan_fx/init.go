package travel_plan_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wanderplan/internal/repositories"
	"wanderplan/internal/services"
	mem "wanderplan/pkg/memcache"
)

var Module = fx.Provide(
	provideTravelPlanRepo, provideTravelPlanService)

func provideTravelPlanRepo(db *gorm.DB) repositories.TravelPlanRepository {
	return repositories.NewTravelPlanRepository(db)
}

func provideTravelPlanService(
	plans repositories.TravelPlanRepository,
	drafts mem.DraftStore,
	settings services.SettingsProvider,
	log *zap.Logger,
) services.TravelPlanServiceInterface {
	return services.NewTravelPlanService(plans, drafts, settings, log.Named("plans"))
}
