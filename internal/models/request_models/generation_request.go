package request_models

// GenerationRequest is the caller's ask for an itinerary.
type GenerationRequest struct {
	Origin      string                 `json:"origin,omitempty"`
	Destination string                 `json:"destination"`
	StartDate   string                 `json:"start_date"`
	EndDate     string                 `json:"end_date"`
	Preferences map[string]interface{} `json:"preferences,omitempty"`
	PartySize   *int                   `json:"party_size,omitempty"`
	Budget      *float64               `json:"budget,omitempty"`
}

// PartySizeHint returns the requested party size, or 0 when absent or not positive.
func (r GenerationRequest) PartySizeHint() int {
	if r.PartySize == nil || *r.PartySize <= 0 {
		return 0
	}
	return *r.PartySize
}

// BudgetHint returns the requested budget, or 0 when absent or not positive.
func (r GenerationRequest) BudgetHint() float64 {
	if r.Budget == nil || *r.Budget <= 0 {
		return 0
	}
	return *r.Budget
}
