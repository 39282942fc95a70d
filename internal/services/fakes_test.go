package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	dbm "wanderplan/internal/models/db_models"
	"wanderplan/internal/repositories"
)

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*dbm.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*dbm.Account{}}
}

func (f *fakeAccountRepo) InsertTx(account *dbm.Account, _ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	account.ID = uuid.New()
	cp := *account
	f.accounts[account.ID.String()] = &cp
	return nil
}

func (f *fakeAccountRepo) FindById(_ context.Context, id string) (*dbm.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*dbm.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

type fakePlanRepo struct {
	mu    sync.Mutex
	plans map[string]*dbm.TravelPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[string]*dbm.TravelPlan{}}
}

func (f *fakePlanRepo) CreateWithDays(_ context.Context, plan *dbm.TravelPlan, days []dbm.PlanDay) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	plan.ID = uuid.New()
	for i := range days {
		days[i].ID = uuid.New()
		days[i].PlanID = plan.ID
	}
	plan.Days = days
	cp := *plan
	f.plans[plan.ID.String()] = &cp
	return nil
}

func (f *fakePlanRepo) ListByAccount(_ context.Context, accountID string, _, _ int) ([]dbm.TravelPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbm.TravelPlan
	for _, p := range f.plans {
		if p.AccountID.String() == accountID {
			h := *p
			h.Days = nil
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Destination < out[j].Destination })
	return out, nil
}

func (f *fakePlanRepo) FindByID(ctx context.Context, planID string) (*dbm.TravelPlan, error) {
	p, err := f.FindWithDays(ctx, planID)
	if p != nil {
		p.Days = nil
	}
	return p, err
}

func (f *fakePlanRepo) FindWithDays(_ context.Context, planID string) (*dbm.TravelPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.plans[planID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakePlanRepo) FindDay(_ context.Context, planID string, dayIndex int) (*dbm.PlanDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plans[planID]
	if !ok {
		return nil, nil
	}
	for _, d := range p.Days {
		if d.DayIndex == dayIndex {
			cp := d
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePlanRepo) DeleteWithChildren(_ context.Context, planID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.plans, planID)
	return nil
}

type fakeExpenseRepo struct {
	mu       sync.Mutex
	expenses map[string]*dbm.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: map[string]*dbm.Expense{}}
}

func (f *fakeExpenseRepo) Insert(_ context.Context, e *dbm.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = uuid.New()
	cp := *e
	f.expenses[e.ID.String()] = &cp
	return nil
}

func (f *fakeExpenseRepo) FindByID(_ context.Context, id string) (*dbm.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.expenses[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeExpenseRepo) ListByPlan(_ context.Context, planID string) ([]dbm.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbm.Expense
	for _, e := range f.expenses {
		if e.PlanID.String() == planID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeExpenseRepo) SumByCategory(_ context.Context, planID string) ([]repositories.CategoryTotal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byCat := map[string]*repositories.CategoryTotal{}
	for _, e := range f.expenses {
		if e.PlanID.String() != planID {
			continue
		}
		row, ok := byCat[e.Category]
		if !ok {
			row = &repositories.CategoryTotal{Category: e.Category}
			byCat[e.Category] = row
		}
		row.Total += e.Amount
		row.Count++
	}
	out := make([]repositories.CategoryTotal, 0, len(byCat))
	for _, r := range byCat {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeExpenseRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.expenses, id)
	return nil
}
