package llm

import (
	"context"

	"wanderplan/internal/models/request_models"
	"wanderplan/pkg/utils"
)

// MockClient returns a deterministic, well-formed itinerary. It needs no credentials.
type MockClient struct{}

func NewMockClient() *MockClient { return &MockClient{} }

func (m *MockClient) Name() string { return ProviderMock }

func (m *MockClient) Close() error { return nil }

func (m *MockClient) Generate(ctx context.Context, req request_models.GenerationRequest) (RawCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dayCount, err := utils.InclusiveDayCount(req.StartDate, req.EndDate)
	if err != nil || dayCount <= 0 {
		return nil, utils.NewBadRequestError("date range invalid")
	}

	days := make([]interface{}, 0, dayCount)
	for i := 1; i <= dayCount; i++ {
		segments := []interface{}{}
		if i == 1 && req.Origin != "" {
			segments = append(segments, segment("Travel from "+req.Origin, "transport", "07:00-09:00", req.Destination+" Railway Station", "", 150))
		}
		segments = append(segments,
			segment("Breakfast near hotel", "food", "08:00-09:00", req.Destination+" old town", "Local cuisine", 30),
			segment("City landmark walk", "attraction", "09:30-12:00", req.Destination+" city centre", "", 80),
			segment("Lunch", "food", "12:30-13:30", req.Destination+" food street", "", 60),
			segment("Metro to museum", "transport", "13:45-14:15", req.Destination+" Metro", "", 5),
			segment("Afternoon museum visit", "entertainment", "14:30-17:00", req.Destination+" Museum", afternoonNote(req), 40),
			segment("Dinner", "food", "18:30-20:00", req.Destination+" riverside", "", 100),
			segment("Hotel check-in", "accommodation", "21:00-22:00", req.Destination+" central hotel", "", 300),
		)
		days = append(days, map[string]interface{}{
			"day_index": float64(i),
			"segments":  segments,
		})
	}

	candidate := RawCandidate{
		"origin":      req.Origin,
		"destination": req.Destination,
		"start_date":  req.StartDate,
		"end_date":    req.EndDate,
		"days":        days,
	}
	if n := req.PartySizeHint(); n > 0 {
		candidate["party_size"] = float64(n)
	}
	return candidate, nil
}

func segment(title, typ, timeRange, location, notes string, cost float64) map[string]interface{} {
	s := map[string]interface{}{
		"title":        title,
		"type":         typ,
		"timeRange":    timeRange,
		"location":     location,
		"costEstimate": cost,
	}
	if notes != "" {
		s["notes"] = notes
	}
	return s
}

func afternoonNote(req request_models.GenerationRequest) string {
	if len(req.Preferences) > 0 {
		return "Tailored to preferences"
	}
	return ""
}
