package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderplan/internal/api/controllers"
	"wanderplan/internal/config"
	dbm "wanderplan/internal/models/db_models"
	"wanderplan/pkg/metrics"
	"wanderplan/pkg/middleware"
	"wanderplan/pkg/utils"
)

type RouterParams struct {
	fx.In

	Config   *config.Config
	Logger   *zap.Logger
	Recorder *metrics.Recorder
	Tokens   *utils.TokenIssuer

	Planner  *controllers.PlannerController
	Budget   *controllers.BudgetController
	Metrics  *controllers.MetricsController
	Settings *controllers.SettingsController
	Accounts *controllers.AccountController
	Plans    *controllers.TravelPlanController
	Expenses *controllers.ExpenseController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	if p.Config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())
	if p.Config.RequestLog {
		r.Use(middleware.RequestLogger(p.Logger.Named("http")))
	}
	r.Use(middleware.RequestMetrics(p.Recorder))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	auth := middleware.JWTAuthMiddleware(p.Tokens)

	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
	})

	plannerGroup := r.Group("/planner")
	plannerGroup.POST("/suggest", p.Planner.SuggestItinerary)
	plannerGroup.POST("/generate", p.Planner.GenerateItinerary)
	plannerGroup.POST("/evaluate", p.Planner.EvaluateItinerary)

	r.POST("/budget/estimate", p.Budget.EstimateBudget)

	r.GET("/metrics", p.Metrics.GetMetrics)
	r.GET("/metrics/prometheus", p.Metrics.Prometheus())

	settingsGroup := r.Group("/settings", auth, middleware.RoleMiddleware(dbm.RoleAdmin))
	settingsGroup.GET("", p.Settings.GetSettings)
	settingsGroup.POST("", p.Settings.UpdateSettings)

	authGroup := r.Group("/auth")
	authGroup.POST("/register", p.Accounts.Register)
	authGroup.POST("/login", p.Accounts.Login)
	authGroup.GET("/me", auth, p.Accounts.Me)

	plansGroup := r.Group("/plans", auth)
	plansGroup.POST("", p.Plans.CreatePlan)
	plansGroup.GET("/my", p.Plans.GetMyPlans)
	plansGroup.GET("/:id", p.Plans.GetPlan)
	plansGroup.GET("/:id/day/:dayIndex", p.Plans.GetPlanDay)
	plansGroup.DELETE("/:id", p.Plans.DeletePlan)

	expensesGroup := r.Group("/expenses", auth)
	expensesGroup.POST("", p.Expenses.CreateExpense)
	expensesGroup.GET("", p.Expenses.ListExpenses)
	expensesGroup.GET("/stats", p.Expenses.GetExpenseStats)
	expensesGroup.DELETE("/:id", p.Expenses.DeleteExpense)
}
