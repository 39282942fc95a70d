package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	dbm "wanderplan/internal/models/db_models"
	"wanderplan/internal/models/request_models"
	"wanderplan/internal/models/response_models"
	"wanderplan/internal/repositories"
	mem "wanderplan/pkg/memcache"
	"wanderplan/pkg/utils"
)

type TravelPlanServiceInterface interface {
	CreatePlan(ctx context.Context, accountID string, req request_models.CreatePlanRequest) (*response_models.TravelPlanDetail, error)
	ListMyPlans(ctx context.Context, accountID string, page, pageSize int) ([]response_models.TravelPlanSummary, error)
	GetPlan(ctx context.Context, accountID, planID string) (*response_models.TravelPlanDetail, error)
	GetPlanDay(ctx context.Context, accountID, planID string, dayIndex int) (*response_models.PlanDayResponse, error)
	DeletePlan(ctx context.Context, accountID, planID string) error
}

type TravelPlanService struct {
	plans    repositories.TravelPlanRepository
	drafts   mem.DraftStore
	settings SettingsProvider
	logger   *zap.Logger
}

func NewTravelPlanService(
	plans repositories.TravelPlanRepository,
	drafts mem.DraftStore,
	settings SettingsProvider,
	logger *zap.Logger,
) TravelPlanServiceInterface {
	return &TravelPlanService{plans: plans, drafts: drafts, settings: settings, logger: logger}
}

// CreatePlan persists either a stored draft or a caller supplied itinerary. Supplied
// itineraries go through the same validation, normalization and budgeting as generated ones.
func (s *TravelPlanService) CreatePlan(ctx context.Context, accountID string, req request_models.CreatePlanRequest) (*response_models.TravelPlanDetail, error) {
	owner, err := uuid.Parse(accountID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	var it *response_models.GeneratedItinerary
	switch {
	case strings.TrimSpace(req.DraftID) != "":
		it, err = s.drafts.Consume(ctx, strings.TrimSpace(req.DraftID))
		if err != nil {
			if errors.Is(err, utils.ErrDraftNotFound) {
				return nil, err
			}
			s.logger.Error("draft lookup failed", zap.String("draft_id", req.DraftID), zap.Error(err))
			return nil, utils.NewInternalError("draft lookup failed", err)
		}
	case len(req.Itinerary) > 0:
		it, err = s.itineraryFromPayload(req.Itinerary)
		if err != nil {
			return nil, err
		}
	default:
		return nil, utils.NewBadRequestError("draft_id or itinerary is required")
	}

	prefs := req.Preferences
	if prefs == nil {
		prefs = map[string]interface{}{}
	}
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return nil, utils.NewBadRequestError("preferences must be a JSON object")
	}

	plan := &dbm.TravelPlan{
		AccountID:      owner,
		Origin:         it.Origin,
		Destination:    it.Destination,
		StartDate:      it.StartDate,
		EndDate:        it.EndDate,
		Budget:         it.Budget,
		PartySize:      it.PartySize,
		EstimatedTotal: it.EstimatedTotal,
		Preferences:    datatypes.JSON(prefsJSON),
	}
	days := make([]dbm.PlanDay, 0, len(it.Days))
	for _, d := range it.Days {
		segments, err := json.Marshal(d.Segments)
		if err != nil {
			return nil, utils.NewInternalError("encode segments", err)
		}
		days = append(days, dbm.PlanDay{
			DayIndex:  d.DayIndex,
			DayBudget: d.DayBudget,
			Segments:  datatypes.JSON(segments),
		})
	}

	if err := s.plans.CreateWithDays(ctx, plan, days); err != nil {
		s.logger.Error("plan insert failed", zap.String("account_id", accountID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	s.logger.Info("plan saved",
		zap.String("plan_id", plan.ID.String()),
		zap.String("destination", plan.Destination),
		zap.Int("days", len(days)))
	return toPlanDetail(plan), nil
}

func (s *TravelPlanService) itineraryFromPayload(raw json.RawMessage) (*response_models.GeneratedItinerary, error) {
	var candidate map[string]interface{}
	if err := json.Unmarshal(raw, &candidate); err != nil || candidate == nil {
		return nil, utils.NewBadRequestError("itinerary must be a JSON object")
	}

	result := ValidateItinerary(candidate)
	if !result.Valid {
		return nil, utils.NewBadRequestError("invalid itinerary: " + strings.Join(result.Errors, "; "))
	}

	decoded := DecodeCandidate(candidate)
	req := request_models.GenerationRequest{
		Origin:      decoded.Origin,
		Destination: decoded.Destination,
		StartDate:   decoded.StartDate,
		EndDate:     decoded.EndDate,
		Budget:      decoded.Budget,
	}
	dayCount, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	if len(decoded.Days) != dayCount {
		return nil, utils.NewBadRequestError("invalid itinerary: days must cover start_date through end_date")
	}

	it := NormalizeItinerary(req, decoded)
	AggregateItinerary(&it, s.settings.Current().Budget)
	return &it, nil
}

func (s *TravelPlanService) ListMyPlans(ctx context.Context, accountID string, page, pageSize int) ([]response_models.TravelPlanSummary, error) {
	plans, err := s.plans.ListByAccount(ctx, accountID, page, pageSize)
	if err != nil {
		s.logger.Error("plan listing failed", zap.String("account_id", accountID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TravelPlanSummary, 0, len(plans))
	for i := range plans {
		out = append(out, toPlanSummary(&plans[i]))
	}
	return out, nil
}

func (s *TravelPlanService) GetPlan(ctx context.Context, accountID, planID string) (*response_models.TravelPlanDetail, error) {
	if _, err := uuid.Parse(planID); err != nil {
		return nil, utils.ErrPlanNotFound
	}
	plan, err := s.plans.FindWithDays(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if err := checkOwner(plan, accountID); err != nil {
		return nil, err
	}
	return toPlanDetail(plan), nil
}

func (s *TravelPlanService) GetPlanDay(ctx context.Context, accountID, planID string, dayIndex int) (*response_models.PlanDayResponse, error) {
	plan, err := ownedPlan(ctx, s.plans, accountID, planID)
	if err != nil {
		return nil, err
	}

	day, err := s.plans.FindDay(ctx, planID, dayIndex)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if day == nil {
		return nil, utils.ErrDayNotFound
	}

	return &response_models.PlanDayResponse{
		PlanID:      plan.ID.String(),
		Origin:      plan.Origin,
		Destination: plan.Destination,
		StartDate:   plan.StartDate,
		EndDate:     plan.EndDate,
		DayIndex:    day.DayIndex,
		DayBudget:   day.DayBudget,
		Segments:    decodeSegments(day.Segments),
	}, nil
}

func (s *TravelPlanService) DeletePlan(ctx context.Context, accountID, planID string) error {
	if _, err := ownedPlan(ctx, s.plans, accountID, planID); err != nil {
		return err
	}
	if err := s.plans.DeleteWithChildren(ctx, planID); err != nil {
		s.logger.Error("plan delete failed", zap.String("plan_id", planID), zap.Error(err))
		return utils.ErrDatabaseError
	}
	s.logger.Info("plan deleted", zap.String("plan_id", planID))
	return nil
}

// ownedPlan loads a plan header and checks it belongs to accountID.
func ownedPlan(ctx context.Context, plans repositories.TravelPlanRepository, accountID, planID string) (*dbm.TravelPlan, error) {
	if _, err := uuid.Parse(planID); err != nil {
		return nil, utils.ErrPlanNotFound
	}
	plan, err := plans.FindByID(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if err := checkOwner(plan, accountID); err != nil {
		return nil, err
	}
	return plan, nil
}

func checkOwner(plan *dbm.TravelPlan, accountID string) error {
	if plan == nil {
		return utils.ErrPlanNotFound
	}
	if plan.AccountID.String() != accountID {
		return utils.ErrForbidden
	}
	return nil
}

func toPlanSummary(p *dbm.TravelPlan) response_models.TravelPlanSummary {
	return response_models.TravelPlanSummary{
		ID:          p.ID.String(),
		Origin:      p.Origin,
		Destination: p.Destination,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		PartySize:   p.PartySize,
		CreatedAt:   p.CreatedAtRFC3339(),
	}
}

func toPlanDetail(p *dbm.TravelPlan) *response_models.TravelPlanDetail {
	detail := &response_models.TravelPlanDetail{
		TravelPlanSummary: toPlanSummary(p),
		Days:              make([]response_models.Day, 0, len(p.Days)),
	}
	if len(p.Preferences) > 0 {
		var prefs map[string]interface{}
		if err := json.Unmarshal(p.Preferences, &prefs); err == nil && len(prefs) > 0 {
			detail.Preferences = prefs
		}
	}
	for _, d := range p.Days {
		detail.Days = append(detail.Days, response_models.Day{
			DayIndex:  d.DayIndex,
			DayBudget: d.DayBudget,
			Segments:  decodeSegments(d.Segments),
		})
	}
	return detail
}

func decodeSegments(raw datatypes.JSON) []response_models.Segment {
	segments := []response_models.Segment{}
	if len(raw) == 0 {
		return segments
	}
	_ = json.Unmarshal(raw, &segments)
	return segments
}
