package response_models

type TravelPlanSummary struct {
	ID          string   `json:"id"`
	Origin      string   `json:"origin,omitempty"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Budget      *float64 `json:"budget,omitempty"`
	PartySize   int      `json:"party_size"`
	CreatedAt   string   `json:"created_at"`
}

type TravelPlanDetail struct {
	TravelPlanSummary
	Preferences map[string]interface{} `json:"preferences,omitempty"`
	Days        []Day                  `json:"days"`
}

type PlanDayResponse struct {
	PlanID      string    `json:"plan_id"`
	Origin      string    `json:"origin,omitempty"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	DayIndex    int       `json:"day_index"`
	DayBudget   float64   `json:"dayBudget"`
	Segments    []Segment `json:"segments"`
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	PlanID      string  `json:"plan_id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Note        string  `json:"note,omitempty"`
	InputMethod string  `json:"input_method,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type ExpenseStats struct {
	PlanID     string             `json:"plan_id"`
	Total      float64            `json:"total"`
	Count      int                `json:"count"`
	ByCategory map[string]float64 `json:"by_category"`
}
