package controllers_fx

import (
	"go.uber.org/fx"

	"wanderplan/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPlannerController),
	fx.Provide(controllers.NewBudgetController),
	fx.Provide(controllers.NewMetricsController),
	fx.Provide(controllers.NewSettingsController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewTravelPlanController),
	fx.Provide(controllers.NewExpenseController))
