package request_models

import "wanderplan/internal/models/response_models"

type EstimateBudgetRequest struct {
	Destination string                              `json:"destination" binding:"required"`
	StartDate   string                              `json:"start_date" binding:"required"`
	EndDate     string                              `json:"end_date" binding:"required"`
	PartySize   *int                                `json:"party_size"`
	Itinerary   *response_models.GeneratedItinerary `json:"itinerary,omitempty"`
}

type EvaluateItineraryRequest struct {
	Itinerary response_models.GeneratedItinerary `json:"itinerary"`
}
