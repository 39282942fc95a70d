package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/models/response_models"
	"wanderplan/pkg/llm"
	mem "wanderplan/pkg/memcache"
	"wanderplan/pkg/utils"
)

const maxTripDays = 30

// GenerationMetrics receives the planner's counter increments.
type GenerationMetrics interface {
	IncTotal()
	IncSuccess()
	IncTimeout()
	IncInvalid()
	IncFailed()
	IncRetries()
}

// ClientFactory resolves the provider variant for one generation.
type ClientFactory func(ctx context.Context, cfg llm.ProviderConfig) (llm.ItineraryClient, error)

type PlannerServiceInterface interface {
	SuggestItinerary(ctx context.Context, req request_models.GenerationRequest) (*response_models.GeneratedItinerary, error)
	Generate(ctx context.Context, req request_models.GenerationRequest) (*response_models.GenerationResult, error)
	Evaluate(it response_models.GeneratedItinerary) response_models.QualityScore
}

type PlannerService struct {
	settings SettingsProvider
	metrics  GenerationMetrics
	drafts   mem.DraftStore
	factory  ClientFactory
	tracer   trace.Tracer
	logger   *zap.Logger
}

type PlannerOption func(*PlannerService)

func WithClientFactory(f ClientFactory) PlannerOption {
	return func(p *PlannerService) { p.factory = f }
}

func WithTracer(t trace.Tracer) PlannerOption {
	return func(p *PlannerService) { p.tracer = t }
}

func NewPlannerService(
	settings SettingsProvider,
	metrics GenerationMetrics,
	drafts mem.DraftStore,
	logger *zap.Logger,
	opts ...PlannerOption,
) *PlannerService {
	p := &PlannerService{
		settings: settings,
		metrics:  metrics,
		drafts:   drafts,
		factory:  llm.NewItineraryClient,
		tracer:   otel.Tracer("wanderplan/planner"),
		logger:   logger,
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// validateRequest returns the inclusive day count of a well-formed request.
func validateRequest(req request_models.GenerationRequest) (int, error) {
	if strings.TrimSpace(req.Destination) == "" || req.StartDate == "" || req.EndDate == "" {
		return 0, utils.NewBadRequestError("destination, start_date, end_date are required")
	}
	dayCount, err := utils.InclusiveDayCount(req.StartDate, req.EndDate)
	if err != nil {
		return 0, utils.NewBadRequestError("start_date and end_date must be YYYY-MM-DD dates")
	}
	if dayCount <= 0 {
		return 0, utils.NewBadRequestError("date range invalid")
	}
	if dayCount > maxTripDays {
		return 0, utils.NewBadRequestError(fmt.Sprintf("trips longer than %d days are not supported", maxTripDays))
	}
	return dayCount, nil
}

// SuggestItinerary drives one generation to a normalized itinerary or exactly one
// classified error.
func (p *PlannerService) SuggestItinerary(ctx context.Context, req request_models.GenerationRequest) (*response_models.GeneratedItinerary, error) {
	it, _, err := p.suggest(ctx, req)
	return it, err
}

func (p *PlannerService) suggest(ctx context.Context, req request_models.GenerationRequest) (*response_models.GeneratedItinerary, *response_models.BudgetEstimate, error) {
	ctx, span := p.tracer.Start(ctx, "planner.suggest",
		trace.WithAttributes(attribute.String("planner.destination", req.Destination)))
	defer span.End()

	it, estimate, err := p.run(ctx, span, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, utils.MessageOf(err))
		return nil, nil, err
	}
	span.SetStatus(codes.Ok, "")
	return it, estimate, nil
}

func (p *PlannerService) run(ctx context.Context, span trace.Span, req request_models.GenerationRequest) (*response_models.GeneratedItinerary, *response_models.BudgetEstimate, error) {
	dayCount, err := validateRequest(req)
	if err != nil {
		return nil, nil, err
	}

	settings := p.settings.Current()
	client, err := p.factory(ctx, settings.Provider)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			p.logger.Warn("provider close failed", zap.String("provider", client.Name()), zap.Error(cerr))
		}
	}()

	span.SetAttributes(
		attribute.String("planner.provider", client.Name()),
		attribute.Int("planner.max_retries", settings.MaxRetries),
		attribute.Int("planner.day_count", dayCount),
	)
	log := p.logger.With(
		zap.String("destination", req.Destination),
		zap.String("provider", client.Name()),
		zap.Int("max_retries", settings.MaxRetries),
	)

	p.metrics.IncTotal()

	var lastErr error
	for attempt := 0; attempt <= settings.MaxRetries; attempt++ {
		if attempt > 0 {
			p.metrics.IncRetries()
		}
		if ctx.Err() != nil {
			return nil, nil, p.cancelled(log, attempt, ctx.Err())
		}

		candidate, err := p.attempt(ctx, client, req, attempt, settings.Timeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, p.cancelled(log, attempt, ctx.Err())
			}
			lastErr = err
			if utils.IsTimeout(err) {
				p.metrics.IncTimeout()
				log.Warn("provider attempt timed out", zap.Int("attempt", attempt), zap.Duration("timeout", settings.Timeout))
			} else {
				log.Warn("provider attempt failed", zap.Int("attempt", attempt), zap.Error(err))
			}
			continue
		}

		result := ValidateItinerary(candidate)
		if n := CandidateDayCount(candidate); n >= 0 && n != dayCount {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("days: expected %d entries for the requested dates, got %d", dayCount, n))
		}
		if !result.Valid {
			p.metrics.IncInvalid()
			lastErr = utils.NewBadGatewayError("invalid itinerary generated", nil)
			log.Warn("provider returned invalid itinerary", zap.Int("attempt", attempt), zap.Strings("errors", result.Errors))
			continue
		}

		it := NormalizeItinerary(req, DecodeCandidate(candidate))
		estimate := AggregateItinerary(&it, settings.Budget)
		p.metrics.IncSuccess()
		log.Debug("itinerary generated", zap.Int("attempt", attempt), zap.Float64("estimated_total", it.EstimatedTotal))
		return &it, estimate, nil
	}

	p.metrics.IncFailed()
	log.Error("planner generation failed after retries", zap.Error(lastErr))
	return nil, nil, &utils.AppError{
		Kind:    failureKind(lastErr),
		Message: "planner generation failed after retries",
		Cause:   lastErr,
	}
}

type attemptResult struct {
	candidate llm.RawCandidate
	err       error
}

// attempt races one provider call against the deadline. The losing call is cancelled
// through its context and its late result, if any, is dropped on the buffered channel.
func (p *PlannerService) attempt(ctx context.Context, client llm.ItineraryClient, req request_models.GenerationRequest, attempt int, timeout time.Duration) (llm.RawCandidate, error) {
	ctx, span := p.tracer.Start(ctx, "planner.attempt", trace.WithAttributes(attribute.Int("planner.attempt", attempt)))
	defer span.End()

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan attemptResult, 1)
	go func() {
		c, err := client.Generate(attemptCtx, req)
		done <- attemptResult{candidate: c, err: err}
	}()

	var res attemptResult
	select {
	case res = <-done:
	case <-attemptCtx.Done():
		res = attemptResult{err: attemptCtx.Err()}
	}

	if res.err != nil && ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		res.err = utils.NewTimeoutError("planner generation timeout")
	}
	if res.err != nil {
		span.RecordError(res.err)
		span.SetStatus(codes.Error, utils.MessageOf(res.err))
		return nil, res.err
	}
	span.SetStatus(codes.Ok, "")
	return res.candidate, nil
}

func (p *PlannerService) cancelled(log *zap.Logger, attempt int, cause error) error {
	p.metrics.IncFailed()
	log.Warn("planner generation cancelled by caller", zap.Int("attempt", attempt), zap.Error(cause))
	return utils.NewInternalError("planner generation cancelled", cause)
}

// failureKind keeps the last attempt's classification; unclassified errors are upstream faults.
func failureKind(err error) utils.ErrorKind {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return utils.KindBadGateway
}

// Generate runs SuggestItinerary and adds the quality report, the budget estimate and a
// draft id the caller can later save as a plan.
func (p *PlannerService) Generate(ctx context.Context, req request_models.GenerationRequest) (*response_models.GenerationResult, error) {
	it, estimate, err := p.suggest(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &response_models.GenerationResult{
		Itinerary: it,
		Quality:   EvaluateQuality(*it),
		Budget:    estimate,
	}
	if p.drafts != nil {
		id := uuid.New().String()
		if err := p.drafts.Save(ctx, id, it); err != nil {
			p.logger.Warn("draft not stored", zap.String("destination", it.Destination), zap.Error(err))
		} else {
			result.DraftID = id
		}
	}
	return result, nil
}

func (p *PlannerService) Evaluate(it response_models.GeneratedItinerary) response_models.QualityScore {
	return EvaluateQuality(it)
}
