package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"wanderplan/internal/models/response_models"
	"wanderplan/pkg/utils"
)

var (
	nullableString = []interface{}{"string", "null"}
	nullableNumber = []interface{}{"number", "null"}
)

var itinerarySchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"destination", "start_date", "end_date", "days"},
	"properties": map[string]interface{}{
		"origin":      map[string]interface{}{"type": nullableString},
		"destination": map[string]interface{}{"type": "string", "minLength": 1},
		"start_date":  map[string]interface{}{"type": "string", "pattern": utils.DatePatternSource},
		"end_date":    map[string]interface{}{"type": "string", "pattern": utils.DatePatternSource},
		"party_size":  map[string]interface{}{"type": nullableNumber},
		"budget":      map[string]interface{}{"type": nullableNumber},
		"days": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"day_index", "segments"},
				"properties": map[string]interface{}{
					"day_index": map[string]interface{}{"type": "integer", "minimum": 1},
					"segments": map[string]interface{}{
						"type":     "array",
						"minItems": 1,
						"items": map[string]interface{}{
							"type":     "object",
							"required": []interface{}{"title"},
							"properties": map[string]interface{}{
								"title":        map[string]interface{}{"type": "string", "pattern": `\S`},
								"type":         map[string]interface{}{"type": nullableString},
								"startTime":    map[string]interface{}{"type": nullableString, "pattern": utils.ClockPatternSource},
								"endTime":      map[string]interface{}{"type": nullableString, "pattern": utils.ClockPatternSource},
								"timeRange":    map[string]interface{}{"type": nullableString, "pattern": utils.TimeRangePatternSource},
								"location":     map[string]interface{}{"type": nullableString},
								"notes":        map[string]interface{}{"type": nullableString},
								"costEstimate": map[string]interface{}{"type": nullableNumber, "minimum": 0},
							},
						},
					},
				},
			},
		},
	},
}

var compiledItinerarySchema = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(itinerarySchema))
	if err != nil {
		panic(fmt.Sprintf("itinerary schema: %v", err))
	}
	return schema
}()

// ValidateItinerary checks a candidate's structure. It never fails hard: every violated
// rule becomes one message in the result.
func ValidateItinerary(candidate map[string]interface{}) response_models.ValidationResult {
	if candidate == nil {
		return response_models.ValidationResult{Valid: false, Errors: []string{"itinerary must be object"}}
	}

	errs := []string{}
	result, err := compiledItinerarySchema.Validate(gojsonschema.NewGoLoader(candidate))
	if err != nil {
		return response_models.ValidationResult{Valid: false, Errors: []string{fmt.Sprintf("itinerary could not be read: %v", err)}}
	}
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	errs = append(errs, checkDaySequence(candidate)...)
	errs = append(errs, checkSegmentTypes(candidate)...)

	return response_models.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// checkDaySequence requires day_index to run 1..N in order, N being the candidate's own day count.
func checkDaySequence(candidate map[string]interface{}) []string {
	days, ok := candidate["days"].([]interface{})
	if !ok {
		return nil
	}
	var errs []string
	for i, raw := range days {
		day, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		idx, ok := asWholeNumber(day["day_index"])
		if !ok {
			continue
		}
		if idx != i+1 {
			errs = append(errs, fmt.Sprintf("days.%d.day_index: expected %d, got %d", i, i+1, idx))
		}
	}
	return errs
}

func checkSegmentTypes(candidate map[string]interface{}) []string {
	days, ok := candidate["days"].([]interface{})
	if !ok {
		return nil
	}
	var errs []string
	for i, rawDay := range days {
		day, ok := rawDay.(map[string]interface{})
		if !ok {
			continue
		}
		segments, ok := day["segments"].([]interface{})
		if !ok {
			continue
		}
		for j, rawSeg := range segments {
			seg, ok := rawSeg.(map[string]interface{})
			if !ok {
				continue
			}
			t, ok := seg["type"].(string)
			if !ok || strings.TrimSpace(t) == "" {
				continue
			}
			if !isSegmentType(t) {
				errs = append(errs, fmt.Sprintf("days.%d.segments.%d.type: %q is not one of %s",
					i, j, t, strings.Join(response_models.SegmentTypes, ", ")))
			}
		}
	}
	return errs
}

func isSegmentType(t string) bool {
	t = strings.ToLower(strings.TrimSpace(t))
	for _, known := range response_models.SegmentTypes {
		if known == t {
			return true
		}
	}
	return false
}

func asWholeNumber(v interface{}) (int, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// CandidateDayCount returns the number of day entries in a candidate, or -1 when days is absent.
func CandidateDayCount(candidate map[string]interface{}) int {
	days, ok := candidate["days"].([]interface{})
	if !ok {
		return -1
	}
	return len(days)
}
