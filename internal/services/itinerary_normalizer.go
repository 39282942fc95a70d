package services

import (
	"regexp"
	"strings"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/models/response_models"
)

const (
	FallbackTitle    = "unspecified activity"
	FallbackLocation = "unspecified location"

	freeTimeTitle    = "free time"
	freeTimeRange    = "09:00-18:00"
	freeTimeNote     = "no specific arrangements were provided for this day"
	defaultPartySize = 1
)

var placeholderPattern = regexp.MustCompile(`(?i)^(\?+|n/?a|unknown|none|null|tbd|未知|未定|待定)$`)

// IsPlaceholder reports whether a trimmed value is a token models emit instead of content.
func IsPlaceholder(v string) bool {
	return placeholderPattern.MatchString(strings.TrimSpace(v))
}

func cleanText(v, fallback string) string {
	t := strings.TrimSpace(v)
	if t == "" || IsPlaceholder(t) {
		return fallback
	}
	return t
}

// NormalizeItinerary forces the request's identity fields, scrubs placeholder text and
// guarantees a non-empty day for every entry. Budget figures are not computed here.
func NormalizeItinerary(req request_models.GenerationRequest, it response_models.GeneratedItinerary) response_models.GeneratedItinerary {
	out := response_models.GeneratedItinerary{
		Origin:         req.Origin,
		Destination:    req.Destination,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Days:           make([]response_models.Day, 0, len(it.Days)),
		PartySize:      resolvePartySize(it.PartySize, req.PartySizeHint()),
		EstimatedTotal: it.EstimatedTotal,
	}
	if it.Budget != nil && *it.Budget > 0 {
		b := *it.Budget
		out.Budget = &b
	}

	for i, d := range it.Days {
		day := response_models.Day{
			DayIndex:  i + 1,
			DayBudget: d.DayBudget,
			Segments:  make([]response_models.Segment, 0, len(d.Segments)),
		}
		for _, s := range d.Segments {
			day.Segments = append(day.Segments, normalizeSegment(s))
		}
		if len(day.Segments) == 0 {
			day.Segments = append(day.Segments, response_models.Segment{
				Title:     freeTimeTitle,
				Type:      response_models.SegmentOther,
				TimeRange: freeTimeRange,
				Notes:     freeTimeNote,
			})
		}
		out.Days = append(out.Days, day)
	}
	return out
}

func normalizeSegment(s response_models.Segment) response_models.Segment {
	out := response_models.Segment{
		Title:     cleanText(s.Title, FallbackTitle),
		Type:      strings.ToLower(strings.TrimSpace(s.Type)),
		StartTime: strings.TrimSpace(s.StartTime),
		EndTime:   strings.TrimSpace(s.EndTime),
		TimeRange: strings.TrimSpace(s.TimeRange),
		Notes:     cleanText(s.Notes, ""),
	}
	// An absent location stays absent; a present but useless one gets the fallback.
	if s.Location != "" {
		out.Location = cleanText(s.Location, FallbackLocation)
	}
	if s.CostEstimate != nil && *s.CostEstimate >= 0 {
		c := *s.CostEstimate
		out.CostEstimate = &c
	}
	return out
}

func resolvePartySize(candidate, hint int) int {
	switch {
	case candidate > 0:
		return candidate
	case hint > 0:
		return hint
	default:
		return defaultPartySize
	}
}

// DecodeCandidate reads a raw provider object into the typed itinerary, tolerating wrong
// or missing field types. Provider supplied dayBudget and totals are dropped.
func DecodeCandidate(c map[string]interface{}) response_models.GeneratedItinerary {
	it := response_models.GeneratedItinerary{
		Origin:      stringField(c, "origin"),
		Destination: stringField(c, "destination"),
		StartDate:   stringField(c, "start_date"),
		EndDate:     stringField(c, "end_date"),
	}
	if n, ok := asWholeNumber(c["party_size"]); ok {
		it.PartySize = n
	}
	if b, ok := c["budget"].(float64); ok {
		it.Budget = &b
	}

	days, _ := c["days"].([]interface{})
	for i, rawDay := range days {
		dm, _ := rawDay.(map[string]interface{})
		day := response_models.Day{DayIndex: i + 1}
		if n, ok := asWholeNumber(dm["day_index"]); ok {
			day.DayIndex = n
		}
		segments, _ := dm["segments"].([]interface{})
		for _, rawSeg := range segments {
			sm, ok := rawSeg.(map[string]interface{})
			if !ok {
				continue
			}
			seg := response_models.Segment{
				Title:     stringField(sm, "title"),
				Type:      stringField(sm, "type"),
				StartTime: stringField(sm, "startTime"),
				EndTime:   stringField(sm, "endTime"),
				TimeRange: stringField(sm, "timeRange"),
				Location:  stringField(sm, "location"),
				Notes:     stringField(sm, "notes"),
			}
			if cost, ok := sm["costEstimate"].(float64); ok {
				seg.CostEstimate = &cost
			}
			day.Segments = append(day.Segments, seg)
		}
		it.Days = append(it.Days, day)
	}
	return it
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
