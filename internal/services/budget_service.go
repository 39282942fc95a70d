package services

import (
	"math"
	"strings"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/models/response_models"
	"wanderplan/pkg/utils"
)

const (
	Currency = "CNY"

	highTotalThreshold  = 5000
	groupBookingParty   = 5
	warnHighTotal       = "Estimated total exceeds 5,000 CNY. Consider adjusting plan."
	warnLargeParty      = "Large party size may require group booking arrangements."
	warnMissingSegments = "Some segments lack type; estimates may be rough."
)

// BudgetCoefficients holds per-person amounts. Segment applies to a segment without its
// own cost, PerDay drives the heuristic estimate before any itinerary exists.
type BudgetCoefficients struct {
	Segment map[string]float64
	PerDay  map[string]float64
}

func DefaultBudgetCoefficients() BudgetCoefficients {
	return BudgetCoefficients{
		Segment: map[string]float64{
			response_models.SegmentTransport:     50,
			response_models.SegmentFood:          60,
			response_models.SegmentEntertainment: 80,
			response_models.SegmentAccommodation: 300,
			response_models.SegmentShopping:      0,
			response_models.SegmentOther:         0,
		},
		PerDay: map[string]float64{
			response_models.SegmentAccommodation: 300,
			response_models.SegmentFood:          120,
			response_models.SegmentTransport:     50,
			response_models.SegmentEntertainment: 80,
		},
	}
}

// BucketFor maps a segment type onto its budget bucket. Attraction is entertainment;
// anything unrecognised or missing lands in other.
func BucketFor(segmentType string) string {
	t := strings.ToLower(strings.TrimSpace(segmentType))
	if t == response_models.SegmentAttraction {
		return response_models.SegmentEntertainment
	}
	for _, b := range response_models.BudgetBuckets {
		if b == t {
			return t
		}
	}
	return response_models.SegmentOther
}

// AggregateItinerary computes every day's dayBudget in place and returns the estimate.
// A top-level budget echoed by the provider is left untouched.
func AggregateItinerary(it *response_models.GeneratedItinerary, coeffs BudgetCoefficients) *response_models.BudgetEstimate {
	partySize := it.PartySize
	if partySize < 1 {
		partySize = 1
	}

	breakdown := emptyBreakdown()
	dayBudgets := make([]float64, len(it.Days))
	missingType := false
	total := 0.0

	for i := range it.Days {
		day := &it.Days[i]
		dayTotal := 0.0
		for _, seg := range day.Segments {
			if strings.TrimSpace(seg.Type) == "" {
				missingType = true
			}
			bucket := BucketFor(seg.Type)
			perPerson := coeffs.Segment[bucket]
			if seg.CostEstimate != nil && *seg.CostEstimate > 0 {
				perPerson = *seg.CostEstimate
			}
			cost := perPerson * float64(partySize)
			breakdown[bucket] += cost
			dayTotal += cost
		}
		day.DayBudget = roundCents(dayTotal)
		dayBudgets[i] = day.DayBudget
		total += dayTotal
	}
	it.EstimatedTotal = roundCents(total)

	estimate := &response_models.BudgetEstimate{
		Destination: it.Destination,
		StartDate:   it.StartDate,
		EndDate:     it.EndDate,
		PartySize:   partySize,
		Currency:    Currency,
		Total:       it.EstimatedTotal,
		Breakdown:   roundBreakdown(breakdown),
		DayBudgets:  dayBudgets,
		Warnings:    []string{},
	}
	if missingType {
		estimate.Warnings = append(estimate.Warnings, warnMissingSegments)
	}
	estimate.Warnings = append(estimate.Warnings, thresholdWarnings(estimate.Total, partySize)...)
	return estimate
}

// EstimateHeuristic prices a trip from per-person-per-day coefficients alone.
func EstimateHeuristic(destination, startDate, endDate string, dayCount, partySize int, perDay map[string]float64) *response_models.BudgetEstimate {
	breakdown := emptyBreakdown()
	total := 0.0
	for bucket, amount := range perDay {
		cost := amount * float64(dayCount) * float64(partySize)
		breakdown[BucketFor(bucket)] += cost
		total += cost
	}

	return &response_models.BudgetEstimate{
		Destination: destination,
		StartDate:   startDate,
		EndDate:     endDate,
		PartySize:   partySize,
		Currency:    Currency,
		Total:       roundCents(total),
		Breakdown:   roundBreakdown(breakdown),
		Warnings:    thresholdWarnings(total, partySize),
	}
}

func thresholdWarnings(total float64, partySize int) []string {
	warnings := []string{}
	if total > highTotalThreshold {
		warnings = append(warnings, warnHighTotal)
	}
	if partySize >= groupBookingParty {
		warnings = append(warnings, warnLargeParty)
	}
	return warnings
}

func emptyBreakdown() map[string]float64 {
	out := make(map[string]float64, len(response_models.BudgetBuckets))
	for _, b := range response_models.BudgetBuckets {
		out[b] = 0
	}
	return out
}

func roundBreakdown(in map[string]float64) map[string]float64 {
	for k, v := range in {
		in[k] = roundCents(v)
	}
	return in
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

type BudgetServiceInterface interface {
	Estimate(req request_models.EstimateBudgetRequest) (*response_models.BudgetEstimate, error)
	Coefficients() BudgetCoefficients
}

type BudgetService struct {
	settings SettingsProvider
}

func NewBudgetService(settings SettingsProvider) BudgetServiceInterface {
	return &BudgetService{settings: settings}
}

func (b *BudgetService) Coefficients() BudgetCoefficients {
	return b.settings.Current().Budget
}

// Estimate uses segment mode when the request carries itinerary days, heuristic mode otherwise.
func (b *BudgetService) Estimate(req request_models.EstimateBudgetRequest) (*response_models.BudgetEstimate, error) {
	if strings.TrimSpace(req.Destination) == "" || req.StartDate == "" || req.EndDate == "" {
		return nil, utils.NewBadRequestError("destination, start_date, end_date are required")
	}
	partySize := 1
	if req.PartySize != nil {
		partySize = *req.PartySize
	}
	if partySize <= 0 {
		return nil, utils.NewBadRequestError("party_size must be a positive number")
	}
	dayCount, err := utils.InclusiveDayCount(req.StartDate, req.EndDate)
	if err != nil {
		return nil, utils.NewBadRequestError(err.Error())
	}
	if dayCount <= 0 {
		return nil, utils.NewBadRequestError("date range invalid")
	}

	coeffs := b.Coefficients()
	if req.Itinerary != nil && len(req.Itinerary.Days) > 0 {
		it := *req.Itinerary
		it.Days = append([]response_models.Day(nil), req.Itinerary.Days...)
		it.Destination = req.Destination
		it.StartDate = req.StartDate
		it.EndDate = req.EndDate
		it.PartySize = partySize
		return AggregateItinerary(&it, coeffs), nil
	}
	return EstimateHeuristic(req.Destination, req.StartDate, req.EndDate, dayCount, partySize, coeffs.PerDay), nil
}
