package expense_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wanderplan/internal/repositories"
	"wanderplan/internal/services"
)

var Module = fx.Provide(
	provideExpenseRepo, provideExpenseService)

func provideExpenseRepo(db *gorm.DB) repositories.ExpenseRepository {
	return repositories.NewExpenseRepository(db)
}

func provideExpenseService(expenses repositories.ExpenseRepository, plans repositories.TravelPlanRepository, log *zap.Logger) services.ExpenseServiceInterface {
	return services.NewExpenseService(expenses, plans, log.Named("expenses"))
}
