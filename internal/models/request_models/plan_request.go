package request_models

import (
	"encoding/json"
)

// CreatePlanRequest saves either a stored draft or an explicit itinerary.
type CreatePlanRequest struct {
	DraftID     string                 `json:"draft_id,omitempty"`
	Itinerary   json.RawMessage        `json:"itinerary,omitempty"`
	Preferences map[string]interface{} `json:"preferences,omitempty"`
}

type CreateExpenseRequest struct {
	PlanID      string  `json:"plan_id" binding:"required,uuid"`
	Date        string  `json:"date" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Note        string  `json:"note,omitempty"`
	InputMethod string  `json:"input_method,omitempty"`
}
