package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"wanderplan/internal/models/request_models"
)

const SystemPrompt = "You are a travel itinerary planner. You reply with a single JSON object and nothing else: no markdown, no code fences, no commentary."

// BuildPrompt renders the user prompt shared by every variant. dayCount is the inclusive
// number of calendar days between the request's start and end dates.
func BuildPrompt(req request_models.GenerationRequest, dayCount int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan a %d-day trip to %s", dayCount, req.Destination)
	if strings.TrimSpace(req.Origin) != "" {
		fmt.Fprintf(&b, " departing from %s", req.Origin)
	}
	fmt.Fprintf(&b, ", from %s to %s.\n", req.StartDate, req.EndDate)
	if n := req.PartySizeHint(); n > 0 {
		fmt.Fprintf(&b, "Party size: %d.\n", n)
	}
	if budget := req.BudgetHint(); budget > 0 {
		fmt.Fprintf(&b, "Total budget: %.0f CNY.\n", budget)
	}
	if len(req.Preferences) > 0 {
		if prefs, err := json.Marshal(req.Preferences); err == nil {
			fmt.Fprintf(&b, "Traveller preferences (JSON): %s\n", prefs)
		}
	}

	b.WriteString(`
Return JSON only, matching this shape exactly:
{
  "origin": "string",
  "destination": "string",
  "start_date": "YYYY-MM-DD",
  "end_date": "YYYY-MM-DD",
  "party_size": 1,
  "budget": 0,
  "days": [
    {
      "day_index": 1,
      "segments": [
        {"title": "string", "type": "food", "startTime": "12:00", "endTime": "13:00", "location": "string", "notes": "string", "costEstimate": 60}
      ]
    }
  ]
}
`)

	fmt.Fprintf(&b, `
Hard constraints:
- Required top-level fields: destination, start_date, end_date, days.
- Exactly %d entries in "days", with day_index 1..%d in order and no gaps.
- Every day has a non-empty "segments" array and every segment has a non-empty "title".
- "type" is one of: transport, accommodation, food, entertainment, attraction, shopping, other.
- Times use HH:MM (24h). Use either startTime/endTime or timeRange as HH:MM-HH:MM.
- costEstimate is a non-negative per-person amount in CNY.
- Every day contains at least two segments of type "food" (lunch and dinner).
- Never use placeholder values such as "???", "N/A", "unknown", "TBD", "未知" or "待定". Give a concrete name or omit the field.
- Use "%s" as destination and "%s"/"%s" as the dates.
`, dayCount, dayCount, req.Destination, req.StartDate, req.EndDate)

	return b.String()
}
