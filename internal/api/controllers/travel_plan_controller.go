package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/services"
	"wanderplan/pkg/middleware"
	"wanderplan/pkg/utils"
)

type TravelPlanController struct {
	travelPlanService services.TravelPlanServiceInterface
}

func NewTravelPlanController(travelPlanService services.TravelPlanServiceInterface) *TravelPlanController {
	return &TravelPlanController{
		travelPlanService: travelPlanService,
	}
}

// CreatePlan godoc
// @Summary Save a travel plan
// @Description Saves a generated draft by id, or an explicit itinerary
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body request_models.CreatePlanRequest true "Plan payload"
// @Success 201 {object} utils.APIResponse{data=response_models.TravelPlanDetail}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /plans [post]
func (t *TravelPlanController) CreatePlan(c *gin.Context) {
	var req request_models.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := t.travelPlanService.CreatePlan(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, plan, "Plan saved successfully")
}

// GetMyPlans godoc
// @Summary List my plans
// @Description Fetch a paginated list of plans for the authenticated user, newest first
// @Tags Plans
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse{data=[]response_models.TravelPlanSummary}
// @Security BearerAuth
// @Router /plans/my [get]
func (t *TravelPlanController) GetMyPlans(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	plans, err := t.travelPlanService.ListMyPlans(c.Request.Context(), c.GetString(middleware.ContextUserID), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// GetPlan godoc
// @Summary Get a plan with all its days
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse{data=response_models.TravelPlanDetail}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /plans/{id} [get]
func (t *TravelPlanController) GetPlan(c *gin.Context) {
	plan, err := t.travelPlanService.GetPlan(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan fetched successfully")
}

// GetPlanDay godoc
// @Summary Get one day of a plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Param dayIndex path int true "1-based day index"
// @Success 200 {object} utils.APIResponse{data=response_models.PlanDayResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /plans/{id}/day/{dayIndex} [get]
func (t *TravelPlanController) GetPlanDay(c *gin.Context) {
	dayIndex, err := strconv.Atoi(c.Param("dayIndex"))
	if err != nil || dayIndex < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid day index")
		return
	}

	day, err := t.travelPlanService.GetPlanDay(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"), dayIndex)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, day, "Plan day fetched successfully")
}

// DeletePlan godoc
// @Summary Delete a plan
// @Description Removes the plan together with its days and expenses
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /plans/{id} [delete]
func (t *TravelPlanController) DeletePlan(c *gin.Context) {
	if err := t.travelPlanService.DeletePlan(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Plan deleted successfully")
}
