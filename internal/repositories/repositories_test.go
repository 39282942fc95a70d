package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbm "wanderplan/internal/models/db_models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestAccountRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role"}).
			AddRow(id.String(), "Lin", "lin@example.com", "hash", "user"))

	account, err := repo.FindByEmail(context.Background(), "lin@example.com")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, id, account.ID)
	assert.Equal(t, "Lin", account.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByEmailMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	account, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, account)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByIdError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	boom := errors.New("connection refused")

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).WillReturnError(boom)

	account, err := repo.FindById(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, account)
}

func TestTravelPlanRepository_CreateWithDays(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTravelPlanRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "travel_plans"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "plan_days"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	plan := &dbm.TravelPlan{
		AccountID:   uuid.New(),
		Destination: "Shanghai",
		StartDate:   "2025-01-10",
		EndDate:     "2025-01-11",
		PartySize:   2,
		Preferences: datatypes.JSON(`{}`),
	}
	days := []dbm.PlanDay{
		{DayIndex: 1, DayBudget: 360, Segments: datatypes.JSON(`[]`)},
		{DayIndex: 2, DayBudget: 120, Segments: datatypes.JSON(`[]`)},
	}

	require.NoError(t, repo.CreateWithDays(context.Background(), plan, days))
	assert.NotEqual(t, uuid.Nil, plan.ID)
	require.Len(t, plan.Days, 2)
	for _, d := range plan.Days {
		assert.Equal(t, plan.ID, d.PlanID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTravelPlanRepository_CreateWithDaysRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTravelPlanRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "travel_plans"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "plan_days"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.CreateWithDays(context.Background(),
		&dbm.TravelPlan{AccountID: uuid.New(), Destination: "Shanghai", Preferences: datatypes.JSON(`{}`)},
		[]dbm.PlanDay{{DayIndex: 1, Segments: datatypes.JSON(`[]`)}})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTravelPlanRepository_FindWithDays(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTravelPlanRepository(db)
	planID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "travel_plans" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "destination", "start_date", "end_date", "party_size"}).
			AddRow(planID.String(), uuid.NewString(), "Shanghai", "2025-01-10", "2025-01-11", 1))
	mock.ExpectQuery(`SELECT \* FROM "plan_days" WHERE "plan_days"."plan_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "plan_id", "day_index", "day_budget", "segments"}).
			AddRow(uuid.NewString(), planID.String(), 1, 615.0, []byte(`[{"title":"Lunch"}]`)).
			AddRow(uuid.NewString(), planID.String(), 2, 615.0, []byte(`[{"title":"Dinner"}]`)))

	plan, err := repo.FindWithDays(context.Background(), planID.String())
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, "Shanghai", plan.Destination)
	require.Len(t, plan.Days, 2)
	assert.Equal(t, 1, plan.Days[0].DayIndex)
	assert.JSONEq(t, `[{"title":"Dinner"}]`, string(plan.Days[1].Segments))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTravelPlanRepository_FindDayMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTravelPlanRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "plan_days" WHERE .*plan_id = \$1 AND day_index = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	day, err := repo.FindDay(context.Background(), uuid.NewString(), 9)
	assert.NoError(t, err)
	assert.Nil(t, day)
}

func TestTravelPlanRepository_DeleteWithChildren(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTravelPlanRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "expenses" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`UPDATE "plan_days" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE "travel_plans" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteWithChildren(context.Background(), uuid.NewString()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_SumByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExpenseRepository(db)

	mock.ExpectQuery(`SELECT category, COALESCE\(SUM\(amount\), 0\) AS total, COUNT\(\*\) AS count FROM "expenses"`).
		WillReturnRows(sqlmock.NewRows([]string{"category", "total", "count"}).
			AddRow("food", 180.5, 3).
			AddRow("transport", 42.0, 2))

	rows, err := repo.SumByCategory(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, []CategoryTotal{
		{Category: "food", Total: 180.5, Count: 3},
		{Category: "transport", Total: 42, Count: 2},
	}, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_InsertAndDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExpenseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "expenses"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "expenses" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	expense := &dbm.Expense{PlanID: uuid.New(), AccountID: uuid.New(), Date: "2025-01-10", Amount: 35, Category: "food"}
	require.NoError(t, repo.Insert(context.Background(), expense))
	assert.NotEqual(t, uuid.Nil, expense.ID)

	require.NoError(t, repo.Delete(context.Background(), expense.ID.String()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
