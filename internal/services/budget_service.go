package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/fernandoludvig/finance-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const minBudgetYear = 2000

type BudgetService struct {
	budgets    BudgetRepository
	categories CategoryRepository
	now        func() time.Time
}

func NewBudgetService(budgets BudgetRepository, categories CategoryRepository) *BudgetService {
	return &BudgetService{budgets: budgets, categories: categories, now: time.Now}
}

func (s *BudgetService) List(ctx context.Context, filter models.BudgetFilter) ([]models.Budget, error) {
	if filter.Month != 0 {
		if err := validateMonth(filter.Month); err != nil {
			return nil, err
		}
	}
	return s.budgets.List(ctx, filter)
}

func (s *BudgetService) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Budget, error) {
	budget, err := s.budgets.FindByID(ctx, userID, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrBudgetNotFound, nil)
	}
	return budget, nil
}

// Current returns the budget for the current calendar month.
func (s *BudgetService) Current(ctx context.Context, userID primitive.ObjectID) (*models.Budget, error) {
	now := s.now()
	budget, err := s.budgets.FindByPeriod(ctx, userID, int(now.Month()), now.Year())
	if err != nil {
		return nil, mapRepoErr(err, ErrBudgetNotFound, nil)
	}
	return budget, nil
}

func (s *BudgetService) Create(ctx context.Context, userID primitive.ObjectID, req *dto.BudgetRequest) (*models.Budget, error) {
	switch {
	case req.Month == nil:
		return nil, invalid("month", "month is required")
	case req.Year == nil:
		return nil, invalid("year", "year is required")
	case req.TotalBudget == nil:
		return nil, invalid("totalBudget", "totalBudget is required")
	}

	now := s.now().UTC()
	budget := models.Budget{
		UserID:     userID,
		Categories: []models.BudgetCategory{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.apply(ctx, &budget, req); err != nil {
		return nil, err
	}
	if err := s.budgets.Create(ctx, &budget); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrBudgetExists
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return &budget, nil
}

func (s *BudgetService) Update(ctx context.Context, userID, id primitive.ObjectID, req *dto.BudgetRequest) (*models.Budget, error) {
	if req.Empty() {
		return nil, invalid("", "No fields provided to update")
	}
	budget, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, budget, req); err != nil {
		return nil, err
	}
	budget.UpdatedAt = s.now().UTC()
	if err := s.budgets.Update(ctx, budget); err != nil {
		return nil, mapRepoErr(err, ErrBudgetNotFound, ErrBudgetExists)
	}
	return budget, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return mapRepoErr(s.budgets.Delete(ctx, userID, id), ErrBudgetNotFound, nil)
}

// Summary aggregates the user's budgets for year; year 0 means the current year.
func (s *BudgetService) Summary(ctx context.Context, userID primitive.ObjectID, year int) (*models.BudgetSummary, error) {
	if year == 0 {
		year = s.now().Year()
	}
	budgets, err := s.budgets.List(ctx, models.BudgetFilter{UserID: userID, Year: year})
	if err != nil {
		return nil, err
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].Month < budgets[j].Month })

	budgeted := make([]float64, 0, len(budgets))
	spent := make([]float64, 0, len(budgets))
	breakdown := make([]models.MonthlyBudgetSummary, 0, len(budgets))
	for i := range budgets {
		b := &budgets[i]
		budgeted = append(budgeted, b.TotalBudget)
		spent = append(spent, b.TotalSpent)
		breakdown = append(breakdown, models.MonthlyBudgetSummary{
			Month:                 b.Month,
			Budgeted:              b.TotalBudget,
			Spent:                 b.TotalSpent,
			Remaining:             b.RemainingBudget(),
			UtilizationPercentage: b.UtilizationPercentage(),
		})
	}
	totalBudgeted := sumMoney(budgeted).InexactFloat64()
	totalSpent := sumMoney(spent).InexactFloat64()

	return &models.BudgetSummary{
		Year:                         year,
		TotalBudgets:                 len(budgets),
		TotalBudgetedAmount:          totalBudgeted,
		TotalSpentAmount:             totalSpent,
		OverallUtilizationPercentage: models.UtilizationPercentage(totalSpent, totalBudgeted),
		MonthlyBreakdown:             breakdown,
	}, nil
}

// ApplyExpense adds an expense to the budget covering its date.
func (s *BudgetService) ApplyExpense(ctx context.Context, txn *models.Transaction) error {
	return s.adjustSpent(ctx, txn, txn.Amount)
}

// RevertExpense removes an expense from the budget covering its date.
func (s *BudgetService) RevertExpense(ctx context.Context, txn *models.Transaction) error {
	return s.adjustSpent(ctx, txn, -txn.Amount)
}

func (s *BudgetService) adjustSpent(ctx context.Context, txn *models.Transaction, delta float64) error {
	if txn.Type != models.TypeExpense || delta == 0 {
		return nil
	}
	budget, err := s.budgets.FindByPeriod(ctx, txn.UserID, int(txn.Date.Month()), txn.Date.Year())
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	budget.TotalSpent = addMoney(budget.TotalSpent, delta)
	if line, err := s.matchCategory(ctx, budget, txn.Category); err != nil {
		return err
	} else if line != nil {
		line.SpentAmount = addMoney(line.SpentAmount, delta)
	}
	budget.UpdatedAt = s.now().UTC()
	return s.budgets.Update(ctx, budget)
}

// matchCategory finds the budget line whose category name equals name,
// ignoring case.
func (s *BudgetService) matchCategory(ctx context.Context, budget *models.Budget, name string) (*models.BudgetCategory, error) {
	if name == "" {
		return nil, nil
	}
	for i := range budget.Categories {
		line := &budget.Categories[i]
		category, err := s.categories.FindByID(ctx, budget.UserID, line.CategoryID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(category.Name, name) {
			return line, nil
		}
	}
	return nil, nil
}

func (s *BudgetService) apply(ctx context.Context, b *models.Budget, req *dto.BudgetRequest) error {
	if req.Month != nil {
		if err := validateMonth(*req.Month); err != nil {
			return err
		}
		b.Month = *req.Month
	}
	if req.Year != nil {
		if *req.Year < minBudgetYear {
			return invalid("year", fmt.Sprintf("year must be %d or later", minBudgetYear))
		}
		b.Year = *req.Year
	}
	if req.TotalBudget != nil {
		if *req.TotalBudget < 0 {
			return invalid("totalBudget", "totalBudget must be a non-negative number")
		}
		b.TotalBudget = *req.TotalBudget
	}
	if req.TotalSpent != nil {
		if *req.TotalSpent < 0 {
			return invalid("totalSpent", "totalSpent must be a non-negative number")
		}
		b.TotalSpent = *req.TotalSpent
	}
	if req.Notes != nil {
		b.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Categories != nil {
		lines, err := s.budgetLines(ctx, b.UserID, *req.Categories)
		if err != nil {
			return err
		}
		b.Categories = lines
	}
	return nil
}

// budgetLines validates the category allocations and checks that every
// referenced category belongs to userID.
func (s *BudgetService) budgetLines(ctx context.Context, userID primitive.ObjectID, reqs []dto.BudgetCategoryRequest) ([]models.BudgetCategory, error) {
	lines := make([]models.BudgetCategory, 0, len(reqs))
	seen := make(map[primitive.ObjectID]struct{}, len(reqs))
	ids := make([]primitive.ObjectID, 0, len(reqs))

	for _, r := range reqs {
		id, err := primitive.ObjectIDFromHex(r.CategoryID)
		if err != nil {
			return nil, invalid("categories", "Invalid category ID")
		}
		if _, dup := seen[id]; dup {
			return nil, invalid("categories", "Each category may appear only once")
		}
		seen[id] = struct{}{}
		ids = append(ids, id)

		if r.BudgetedAmount == nil {
			return nil, invalid("categories", "budgetedAmount is required")
		}
		if *r.BudgetedAmount < 0 {
			return nil, invalid("categories", "budgetedAmount must be a non-negative number")
		}
		line := models.BudgetCategory{CategoryID: id, BudgetedAmount: *r.BudgetedAmount}
		if r.SpentAmount != nil {
			if *r.SpentAmount < 0 {
				return nil, invalid("categories", "spentAmount must be a non-negative number")
			}
			line.SpentAmount = *r.SpentAmount
		}
		lines = append(lines, line)
	}

	if len(ids) == 0 {
		return lines, nil
	}
	owned, err := s.categories.CountOwned(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to verify categories: %w", err)
	}
	if owned != len(ids) {
		return nil, invalid("categories", "One or more categories are invalid or do not belong to the user")
	}
	return lines, nil
}

func validateMonth(month int) error {
	if month < 1 || month > 12 {
		return invalid("month", "month must be between 1 and 12")
	}
	return nil
}
