package response_models

// Segment types accepted on the wire.
const (
	SegmentTransport     = "transport"
	SegmentAccommodation = "accommodation"
	SegmentFood          = "food"
	SegmentEntertainment = "entertainment"
	SegmentAttraction    = "attraction"
	SegmentShopping      = "shopping"
	SegmentOther         = "other"
)

var SegmentTypes = []string{
	SegmentTransport,
	SegmentAccommodation,
	SegmentFood,
	SegmentEntertainment,
	SegmentAttraction,
	SegmentShopping,
	SegmentOther,
}

type Segment struct {
	Title        string   `json:"title"`
	Type         string   `json:"type,omitempty"`
	StartTime    string   `json:"startTime,omitempty"`
	EndTime      string   `json:"endTime,omitempty"`
	TimeRange    string   `json:"timeRange,omitempty"`
	Location     string   `json:"location,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	CostEstimate *float64 `json:"costEstimate,omitempty"`
}

// HasTime reports whether the segment carries any schedule information.
func (s Segment) HasTime() bool {
	return s.TimeRange != "" || s.StartTime != "" || s.EndTime != ""
}

type Day struct {
	DayIndex  int       `json:"day_index"`
	Segments  []Segment `json:"segments"`
	DayBudget float64   `json:"dayBudget"`
}

type GeneratedItinerary struct {
	Origin         string   `json:"origin"`
	Destination    string   `json:"destination"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Days           []Day    `json:"days"`
	PartySize      int      `json:"party_size"`
	Budget         *float64 `json:"budget,omitempty"`
	EstimatedTotal float64  `json:"estimated_total"`
}

type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type QualityScore struct {
	OK      bool     `json:"ok"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// GenerationResult is what the generate endpoint hands back.
type GenerationResult struct {
	Itinerary *GeneratedItinerary `json:"itinerary"`
	Quality   QualityScore        `json:"quality"`
	Budget    *BudgetEstimate     `json:"budget"`
	DraftID   string              `json:"draft_id,omitempty"`
}
