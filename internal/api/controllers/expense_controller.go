package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/services"
	"wanderplan/pkg/middleware"
	"wanderplan/pkg/utils"
)

type ExpenseController struct {
	expenseService services.ExpenseServiceInterface
}

func NewExpenseController(expenseService services.ExpenseServiceInterface) *ExpenseController {
	return &ExpenseController{expenseService: expenseService}
}

// CreateExpense godoc
// @Summary Record an expense against a plan
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body request_models.CreateExpenseRequest true "Expense payload"
// @Success 201 {object} utils.APIResponse{data=response_models.ExpenseResponse}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /expenses [post]
func (e *ExpenseController) CreateExpense(c *gin.Context) {
	var req request_models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	expense, err := e.expenseService.CreateExpense(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, expense, "Expense recorded successfully")
}

// ListExpenses godoc
// @Summary List the expenses of a plan
// @Tags Expenses
// @Produce json
// @Param planId query string true "Plan ID"
// @Success 200 {object} utils.APIResponse{data=[]response_models.ExpenseResponse}
// @Security BearerAuth
// @Router /expenses [get]
func (e *ExpenseController) ListExpenses(c *gin.Context) {
	planID := strings.TrimSpace(c.Query("planId"))
	if planID == "" {
		utils.RespondError(c, http.StatusBadRequest, "planId is required")
		return
	}

	expenses, err := e.expenseService.ListExpenses(c.Request.Context(), c.GetString(middleware.ContextUserID), planID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, expenses, "Expenses fetched successfully")
}

// GetExpenseStats godoc
// @Summary Spending per budget bucket
// @Tags Expenses
// @Produce json
// @Param planId query string true "Plan ID"
// @Success 200 {object} utils.APIResponse{data=response_models.ExpenseStats}
// @Security BearerAuth
// @Router /expenses/stats [get]
func (e *ExpenseController) GetExpenseStats(c *gin.Context) {
	planID := strings.TrimSpace(c.Query("planId"))
	if planID == "" {
		utils.RespondError(c, http.StatusBadRequest, "planId is required")
		return
	}

	stats, err := e.expenseService.GetStats(c.Request.Context(), c.GetString(middleware.ContextUserID), planID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Expense stats fetched successfully")
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (e *ExpenseController) DeleteExpense(c *gin.Context) {
	if err := e.expenseService.DeleteExpense(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Expense deleted successfully")
}
