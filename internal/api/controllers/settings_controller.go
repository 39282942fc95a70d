package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/services"
	"wanderplan/pkg/utils"
)

type SettingsController struct {
	settingsService services.SettingsServiceInterface
}

func NewSettingsController(settingsService services.SettingsServiceInterface) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

// GetSettings godoc
// @Summary Read runtime settings
// @Description API keys are masked
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /settings [get]
func (s *SettingsController) GetSettings(c *gin.Context) {
	settings, err := s.settingsService.GetMaskedSettings()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, settings, "Settings fetched successfully")
}

// UpdateSettings godoc
// @Summary Update runtime settings
// @Description Partial update; a null value removes the key
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Settings to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /settings [post]
func (s *SettingsController) UpdateSettings(c *gin.Context) {
	var update map[string]interface{}
	if err := c.ShouldBindJSON(&update); err != nil || update == nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if _, err := s.settingsService.UpdateSettings(update); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	settings, err := s.settingsService.GetMaskedSettings()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, settings, "Settings updated successfully")
}
