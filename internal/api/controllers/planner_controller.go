package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/services"
	"wanderplan/pkg/utils"
)

type PlannerController struct {
	plannerService services.PlannerServiceInterface
}

func NewPlannerController(plannerService services.PlannerServiceInterface) *PlannerController {
	return &PlannerController{
		plannerService: plannerService,
	}
}

// SuggestItinerary godoc
// @Summary Generate an itinerary
// @Description Runs one orchestrated generation and returns the normalized itinerary
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.GenerationRequest true "Trip request"
// @Success 200 {object} utils.APIResponse{data=response_models.GeneratedItinerary}
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /planner/suggest [post]
func (p *PlannerController) SuggestItinerary(c *gin.Context) {
	var req request_models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	itinerary, err := p.plannerService.SuggestItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary generated successfully")
}

// GenerateItinerary godoc
// @Summary Generate an itinerary with quality report and budget
// @Description Same as suggest, plus a quality score, a budget estimate and a draft id for saving
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.GenerationRequest true "Trip request"
// @Success 200 {object} utils.APIResponse{data=response_models.GenerationResult}
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /planner/generate [post]
func (p *PlannerController) GenerateItinerary(c *gin.Context) {
	var req request_models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := p.plannerService.Generate(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Itinerary generated successfully")
}

// EvaluateItinerary godoc
// @Summary Score an itinerary
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.EvaluateItineraryRequest true "Itinerary to score"
// @Success 200 {object} utils.APIResponse{data=response_models.QualityScore}
// @Router /planner/evaluate [post]
func (p *PlannerController) EvaluateItinerary(c *gin.Context) {
	var req request_models.EvaluateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	utils.RespondSuccess(c, p.plannerService.Evaluate(req.Itinerary), "Itinerary evaluated")
}
