package response_models

// Budget buckets. Attraction segments are always counted as entertainment.
var BudgetBuckets = []string{
	SegmentAccommodation,
	SegmentFood,
	SegmentTransport,
	SegmentEntertainment,
	SegmentShopping,
	SegmentOther,
}

type BudgetEstimate struct {
	Destination string             `json:"destination"`
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
	PartySize   int                `json:"party_size"`
	Currency    string             `json:"currency"`
	Total       float64            `json:"total"`
	Breakdown   map[string]float64 `json:"breakdown"`
	DayBudgets  []float64          `json:"day_budgets,omitempty"`
	Warnings    []string           `json:"warnings"`
}
