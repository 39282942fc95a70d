package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"wanderplan/internal/models/request_models"
	"wanderplan/pkg/utils"
)

func newExpenseFixture(t *testing.T) (ExpenseServiceInterface, planFixture, string) {
	t.Helper()
	f := newPlanFixture(t)
	planID := f.saveFromPayload(t, shanghaiRequest())
	svc := NewExpenseService(newFakeExpenseRepo(), f.repo, zaptest.NewLogger(t))
	return svc, f, planID
}

func TestExpenseService_CreateListAndStats(t *testing.T) {
	svc, f, planID := newExpenseFixture(t)
	ctx := context.Background()

	entries := []request_models.CreateExpenseRequest{
		{PlanID: planID, Date: "2025-01-10", Amount: 32.5, Category: "Food", Note: " noodles "},
		{PlanID: planID, Date: "2025-01-11", Amount: 60, Category: "food", InputMethod: "voice"},
		{PlanID: planID, Date: "2025-01-10", Amount: 4, Category: "transport"},
	}
	for _, e := range entries {
		_, err := svc.CreateExpense(ctx, f.owner, e)
		require.NoError(t, err)
	}

	list, err := svc.ListExpenses(ctx, f.owner, planID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, e := range list {
		assert.Equal(t, planID, e.PlanID)
		assert.Contains(t, []string{"manual", "voice"}, e.InputMethod)
	}

	stats, err := svc.GetStats(ctx, f.owner, planID)
	require.NoError(t, err)
	assert.Equal(t, 96.5, stats.Total)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 92.5, stats.ByCategory["food"])
	assert.Equal(t, 4.0, stats.ByCategory["transport"])
	assert.Equal(t, 0.0, stats.ByCategory["shopping"])
	assert.Len(t, stats.ByCategory, 6)
}

func TestExpenseService_Validation(t *testing.T) {
	svc, f, planID := newExpenseFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  request_models.CreateExpenseRequest
		msg  string
	}{
		{"zero amount", request_models.CreateExpenseRequest{PlanID: planID, Date: "2025-01-10", Amount: 0, Category: "food"}, "amount must be greater than 0"},
		{"bad date", request_models.CreateExpenseRequest{PlanID: planID, Date: "10.01.2025", Amount: 5, Category: "food"}, "date must be YYYY-MM-DD"},
		{"bad category", request_models.CreateExpenseRequest{PlanID: planID, Date: "2025-01-10", Amount: 5, Category: "attraction"}, "category must be one of accommodation, food, transport, entertainment, shopping, other"},
		{"bad input method", request_models.CreateExpenseRequest{PlanID: planID, Date: "2025-01-10", Amount: 5, Category: "food", InputMethod: "ocr"}, "input_method must be manual or voice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateExpense(ctx, f.owner, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.msg, utils.MessageOf(err))
		})
	}
}

func TestExpenseService_Ownership(t *testing.T) {
	svc, f, planID := newExpenseFixture(t)
	ctx := context.Background()
	stranger := uuid.NewString()

	_, err := svc.CreateExpense(ctx, stranger, request_models.CreateExpenseRequest{PlanID: planID, Date: "2025-01-10", Amount: 5, Category: "food"})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	created, err := svc.CreateExpense(ctx, f.owner, request_models.CreateExpenseRequest{PlanID: planID, Date: "2025-01-10", Amount: 5, Category: "food"})
	require.NoError(t, err)

	_, err = svc.GetStats(ctx, stranger, planID)
	assert.ErrorIs(t, err, utils.ErrForbidden)
	assert.ErrorIs(t, svc.DeleteExpense(ctx, stranger, created.ID), utils.ErrForbidden)
	assert.ErrorIs(t, svc.DeleteExpense(ctx, f.owner, uuid.NewString()), utils.ErrExpenseNotFound)

	require.NoError(t, svc.DeleteExpense(ctx, f.owner, created.ID))
	list, err := svc.ListExpenses(ctx, f.owner, planID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
