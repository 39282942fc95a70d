package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/services"
	"wanderplan/pkg/utils"
)

type BudgetController struct {
	budgetService services.BudgetServiceInterface
}

func NewBudgetController(budgetService services.BudgetServiceInterface) *BudgetController {
	return &BudgetController{budgetService: budgetService}
}

// EstimateBudget godoc
// @Summary Estimate a trip budget
// @Description Prices an itinerary segment by segment, or the dates alone when no itinerary is given
// @Tags Budget
// @Accept json
// @Produce json
// @Param request body request_models.EstimateBudgetRequest true "Estimate request"
// @Success 200 {object} utils.APIResponse{data=response_models.BudgetEstimate}
// @Failure 400 {object} utils.APIResponse
// @Router /budget/estimate [post]
func (b *BudgetController) EstimateBudget(c *gin.Context) {
	var req request_models.EstimateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "destination, start_date, end_date are required")
		return
	}

	estimate, err := b.budgetService.Estimate(req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, estimate, "Budget estimated")
}
