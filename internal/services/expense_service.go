package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	dbm "wanderplan/internal/models/db_models"
	"wanderplan/internal/models/request_models"
	"wanderplan/internal/models/response_models"
	"wanderplan/internal/repositories"
	"wanderplan/pkg/utils"
)

const (
	InputManual = "manual"
	InputVoice  = "voice"
)

type ExpenseServiceInterface interface {
	CreateExpense(ctx context.Context, accountID string, req request_models.CreateExpenseRequest) (*response_models.ExpenseResponse, error)
	ListExpenses(ctx context.Context, accountID, planID string) ([]response_models.ExpenseResponse, error)
	GetStats(ctx context.Context, accountID, planID string) (*response_models.ExpenseStats, error)
	DeleteExpense(ctx context.Context, accountID, expenseID string) error
}

type ExpenseService struct {
	expenses repositories.ExpenseRepository
	plans    repositories.TravelPlanRepository
	logger   *zap.Logger
}

func NewExpenseService(expenses repositories.ExpenseRepository, plans repositories.TravelPlanRepository, logger *zap.Logger) ExpenseServiceInterface {
	return &ExpenseService{expenses: expenses, plans: plans, logger: logger}
}

func validateExpense(req request_models.CreateExpenseRequest) (category, inputMethod string, err error) {
	if req.Amount <= 0 {
		return "", "", utils.NewBadRequestError("amount must be greater than 0")
	}
	if _, err := utils.ParseISODate(req.Date); err != nil {
		return "", "", utils.NewBadRequestError("date must be YYYY-MM-DD")
	}

	category = strings.ToLower(strings.TrimSpace(req.Category))
	known := false
	for _, b := range response_models.BudgetBuckets {
		if b == category {
			known = true
			break
		}
	}
	if !known {
		return "", "", utils.NewBadRequestError(fmt.Sprintf("category must be one of %s", strings.Join(response_models.BudgetBuckets, ", ")))
	}

	inputMethod = strings.ToLower(strings.TrimSpace(req.InputMethod))
	switch inputMethod {
	case "":
		inputMethod = InputManual
	case InputManual, InputVoice:
	default:
		return "", "", utils.NewBadRequestError("input_method must be manual or voice")
	}
	return category, inputMethod, nil
}

func (s *ExpenseService) CreateExpense(ctx context.Context, accountID string, req request_models.CreateExpenseRequest) (*response_models.ExpenseResponse, error) {
	category, inputMethod, err := validateExpense(req)
	if err != nil {
		return nil, err
	}
	plan, err := ownedPlan(ctx, s.plans, accountID, req.PlanID)
	if err != nil {
		return nil, err
	}

	expense := &dbm.Expense{
		PlanID:      plan.ID,
		AccountID:   plan.AccountID,
		Date:        req.Date,
		Amount:      roundCents(req.Amount),
		Category:    category,
		Note:        strings.TrimSpace(req.Note),
		InputMethod: inputMethod,
	}
	if err := s.expenses.Insert(ctx, expense); err != nil {
		s.logger.Error("expense insert failed", zap.String("plan_id", req.PlanID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	resp := toExpenseResponse(expense)
	return &resp, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, accountID, planID string) ([]response_models.ExpenseResponse, error) {
	if _, err := ownedPlan(ctx, s.plans, accountID, planID); err != nil {
		return nil, err
	}

	expenses, err := s.expenses.ListByPlan(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, toExpenseResponse(&expenses[i]))
	}
	return out, nil
}

// GetStats sums a plan's expenses overall and per budget bucket. Every bucket is present.
func (s *ExpenseService) GetStats(ctx context.Context, accountID, planID string) (*response_models.ExpenseStats, error) {
	if _, err := ownedPlan(ctx, s.plans, accountID, planID); err != nil {
		return nil, err
	}

	rows, err := s.expenses.SumByCategory(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	stats := &response_models.ExpenseStats{PlanID: planID, ByCategory: emptyBreakdown()}
	total := 0.0
	for _, r := range rows {
		stats.ByCategory[BucketFor(r.Category)] += r.Total
		stats.Count += r.Count
		total += r.Total
	}
	stats.Total = roundCents(total)
	roundBreakdown(stats.ByCategory)
	return stats, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, accountID, expenseID string) error {
	if _, err := uuid.Parse(expenseID); err != nil {
		return utils.ErrExpenseNotFound
	}
	expense, err := s.expenses.FindByID(ctx, expenseID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if expense == nil {
		return utils.ErrExpenseNotFound
	}
	if expense.AccountID.String() != accountID {
		return utils.ErrForbidden
	}

	if err := s.expenses.Delete(ctx, expenseID); err != nil {
		s.logger.Error("expense delete failed", zap.String("expense_id", expenseID), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func toExpenseResponse(e *dbm.Expense) response_models.ExpenseResponse {
	return response_models.ExpenseResponse{
		ID:          e.ID.String(),
		PlanID:      e.PlanID.String(),
		Date:        e.Date,
		Amount:      e.Amount,
		Category:    e.Category,
		Note:        e.Note,
		InputMethod: e.InputMethod,
		CreatedAt:   e.CreatedAtRFC3339(),
	}
}
