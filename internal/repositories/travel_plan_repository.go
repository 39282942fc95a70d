package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	dbm "wanderplan/internal/models/db_models"
)

type TravelPlanRepository interface {
	CreateWithDays(ctx context.Context, plan *dbm.TravelPlan, days []dbm.PlanDay) error
	ListByAccount(ctx context.Context, accountID string, page, pageSize int) ([]dbm.TravelPlan, error)
	FindByID(ctx context.Context, planID string) (*dbm.TravelPlan, error)
	FindWithDays(ctx context.Context, planID string) (*dbm.TravelPlan, error)
	FindDay(ctx context.Context, planID string, dayIndex int) (*dbm.PlanDay, error)
	DeleteWithChildren(ctx context.Context, planID string) error
}

type travelPlanRepository struct {
	db *gorm.DB
}

func NewTravelPlanRepository(db *gorm.DB) TravelPlanRepository {
	return &travelPlanRepository{db: db}
}

// CreateWithDays inserts the plan header and all of its days in one transaction.
func (r *travelPlanRepository) CreateWithDays(ctx context.Context, plan *dbm.TravelPlan, days []dbm.PlanDay) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Days", "Expenses").Create(plan).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		for i := range days {
			days[i].PlanID = plan.ID
		}
		if err := tx.Create(&days).Error; err != nil {
			return err
		}
		plan.Days = days
		return nil
	})
}

func (r *travelPlanRepository) ListByAccount(ctx context.Context, accountID string, page, pageSize int) ([]dbm.TravelPlan, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var plans []dbm.TravelPlan
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&plans).Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}

// FindByID loads the plan header only.
func (r *travelPlanRepository) FindByID(ctx context.Context, planID string) (*dbm.TravelPlan, error) {
	var plan dbm.TravelPlan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", planID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (r *travelPlanRepository) FindWithDays(ctx context.Context, planID string) (*dbm.TravelPlan, error) {
	var plan dbm.TravelPlan
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_index ASC")
		}).
		First(&plan, "id = ?", planID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (r *travelPlanRepository) FindDay(ctx context.Context, planID string, dayIndex int) (*dbm.PlanDay, error) {
	var day dbm.PlanDay
	err := r.db.WithContext(ctx).
		Where("plan_id = ? AND day_index = ?", planID, dayIndex).
		First(&day).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &day, nil
}

// DeleteWithChildren soft-deletes the plan together with its days and expenses.
func (r *travelPlanRepository) DeleteWithChildren(ctx context.Context, planID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", planID).Delete(&dbm.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", planID).Delete(&dbm.PlanDay{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", planID).Delete(&dbm.TravelPlan{}).Error
	})
}
