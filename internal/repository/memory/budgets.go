package memory

import (
	"context"

	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/fernandoludvig/finance-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BudgetRepository struct {
	t *table[models.Budget]
}

func NewBudgetRepository() *BudgetRepository {
	return &BudgetRepository{t: newTable[models.Budget]()}
}

func budgetConflict(b models.Budget) func(models.Budget) bool {
	return func(existing models.Budget) bool {
		return existing.UserID == b.UserID && existing.Month == b.Month && existing.Year == b.Year
	}
}

// clone copies the categories slice so callers cannot mutate stored rows.
func cloneBudget(b models.Budget) models.Budget {
	if b.Categories != nil {
		b.Categories = append([]models.BudgetCategory(nil), b.Categories...)
	}
	return b
}

func (r *BudgetRepository) Create(_ context.Context, budget *models.Budget) error {
	assignID(&budget.ID)
	return r.t.put(budget.ID, cloneBudget(*budget), false, budgetConflict(*budget))
}

func (r *BudgetRepository) FindByID(_ context.Context, userID, id primitive.ObjectID) (*models.Budget, error) {
	b, err := r.t.find(func(b models.Budget) bool { return b.ID == id && b.UserID == userID })
	if err != nil {
		return nil, err
	}
	b = cloneBudget(b)
	return &b, nil
}

func (r *BudgetRepository) FindByPeriod(_ context.Context, userID primitive.ObjectID, month, year int) (*models.Budget, error) {
	b, err := r.t.find(func(b models.Budget) bool {
		return b.UserID == userID && b.Month == month && b.Year == year
	})
	if err != nil {
		return nil, err
	}
	b = cloneBudget(b)
	return &b, nil
}

func (r *BudgetRepository) List(_ context.Context, filter models.BudgetFilter) ([]models.Budget, error) {
	out := r.t.filter(func(b models.Budget) bool {
		if b.UserID != filter.UserID {
			return false
		}
		if filter.Year != 0 && b.Year != filter.Year {
			return false
		}
		return filter.Month == 0 || b.Month == filter.Month
	}, func(a, b models.Budget) bool {
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.Month > b.Month
	})
	for i := range out {
		out[i] = cloneBudget(out[i])
	}
	return out, nil
}

func (r *BudgetRepository) Update(ctx context.Context, budget *models.Budget) error {
	if _, err := r.FindByID(ctx, budget.UserID, budget.ID); err != nil {
		return repository.ErrNotFound
	}
	return r.t.put(budget.ID, cloneBudget(*budget), true, budgetConflict(*budget))
}

func (r *BudgetRepository) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	return r.t.remove(id, func(b models.Budget) bool { return b.UserID == userID })
}
