package services

import (
	"fmt"
	"math"
	"strings"

	"wanderplan/internal/models/response_models"
)

const (
	minSegmentsPerDay = 3
	minFoodPerDay     = 2
	passingScore      = 60
	maxReasons        = 2
)

// EvaluateQuality scores how complete an itinerary is. It is a reporting aid only and never
// drives generation retries.
func EvaluateQuality(it response_models.GeneratedItinerary) response_models.QualityScore {
	if len(it.Days) == 0 {
		return response_models.QualityScore{OK: false, Score: 0, Reasons: []string{"itinerary has no days"}}
	}

	var (
		fullDays, segments, typed, timed, costed int
		keySegments, located                     int
		hasTransport                             bool
		shortOnFood                              []int
	)

	for _, day := range it.Days {
		if len(day.Segments) >= minSegmentsPerDay {
			fullDays++
		}
		food := 0
		for _, s := range day.Segments {
			segments++
			t := strings.ToLower(strings.TrimSpace(s.Type))
			if t != "" {
				typed++
			}
			if s.HasTime() {
				timed++
			}
			if s.CostEstimate != nil {
				costed++
			}
			switch t {
			case response_models.SegmentTransport:
				hasTransport = true
			case response_models.SegmentFood:
				food++
			}
			if t == response_models.SegmentAccommodation || t == response_models.SegmentFood || t == response_models.SegmentAttraction {
				keySegments++
				if strings.TrimSpace(s.Location) != "" {
					located++
				}
			}
		}
		if food < minFoodPerDay {
			shortOnFood = append(shortOnFood, day.DayIndex)
		}
	}

	score := 25*ratio(fullDays, len(it.Days)) +
		15*ratio(typed, segments) +
		15*ratio(timed, segments) +
		15*ratio(costed, segments) +
		20*ratio(located, keySegments)
	if hasTransport {
		score += 10
	}

	reasons := []string{}
	if fullDays < len(it.Days) {
		reasons = append(reasons, fmt.Sprintf("some days have fewer than %d segments", minSegmentsPerDay))
	}
	if typed < segments {
		reasons = append(reasons, "some segments lack type")
	}
	if timed < segments {
		reasons = append(reasons, "some segments lack time information")
	}
	if costed < segments {
		reasons = append(reasons, "some segments lack cost estimate")
	}
	if !hasTransport {
		reasons = append(reasons, "no transport segment")
	}
	if located < keySegments {
		reasons = append(reasons, "some accommodation, food or attraction segments lack location")
	}
	if len(shortOnFood) > 0 {
		reasons = append(reasons, fmt.Sprintf("days %v have fewer than %d food segments (lunch and dinner)", shortOnFood, minFoodPerDay))
	}

	rounded := int(math.Round(score))
	return response_models.QualityScore{
		OK:      len(shortOnFood) == 0 && rounded >= passingScore && len(reasons) <= maxReasons,
		Score:   rounded,
		Reasons: reasons,
	}
}

// ratio treats an empty population as fully satisfied.
func ratio(n, total int) float64 {
	if total == 0 {
		return 1
	}
	return float64(n) / float64(total)
}
