package planner_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderplan/internal/services"
	mem "wanderplan/pkg/memcache"
)

var Module = fx.Provide(
	ProvidePlannerService,
	services.NewBudgetService)

// ProvidePlannerService builds the orchestrator. The provider variant is resolved from the
// settings store on every call, so nothing provider-specific is constructed here.
func ProvidePlannerService(
	settings services.SettingsProvider,
	recorder services.GenerationMetrics,
	drafts mem.DraftStore,
	log *zap.Logger,
) services.PlannerServiceInterface {
	return services.NewPlannerService(settings, recorder, drafts, log.Named("planner"))
}
