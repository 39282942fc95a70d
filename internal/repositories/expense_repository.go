package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	dbm "wanderplan/internal/models/db_models"
)

// CategoryTotal is one row of the per-category expense rollup.
type CategoryTotal struct {
	Category string
	Total    float64
	Count    int
}

type ExpenseRepository interface {
	Insert(ctx context.Context, expense *dbm.Expense) error
	FindByID(ctx context.Context, id string) (*dbm.Expense, error)
	ListByPlan(ctx context.Context, planID string) ([]dbm.Expense, error)
	SumByCategory(ctx context.Context, planID string) ([]CategoryTotal, error)
	Delete(ctx context.Context, id string) error
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Insert(ctx context.Context, expense *dbm.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) FindByID(ctx context.Context, id string) (*dbm.Expense, error) {
	var expense dbm.Expense
	err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &expense, nil
}

func (r *expenseRepository) ListByPlan(ctx context.Context, planID string) ([]dbm.Expense, error) {
	var expenses []dbm.Expense
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("date ASC, created_at ASC").
		Find(&expenses).Error

	if err != nil {
		return nil, err
	}

	return expenses, nil
}

func (r *expenseRepository) SumByCategory(ctx context.Context, planID string) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := r.db.WithContext(ctx).
		Model(&dbm.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("plan_id = ?", planID).
		Group("category").
		Order("category").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&dbm.Expense{}).Error
}
