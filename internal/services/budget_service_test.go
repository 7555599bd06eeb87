package services

import (
	"context"
	"testing"
	"time"

	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func createCategory(t *testing.T, f *fixture, userID primitive.ObjectID, name string) *models.Category {
	t.Helper()
	c, err := f.categories.Create(context.Background(), userID, &dto.CategoryRequest{
		Name: ptr(name),
		Type: ptr(models.TypeExpense),
	})
	require.NoError(t, err)
	return c
}

func budgetRequest(month, year int, total float64, lines ...dto.BudgetCategoryRequest) *dto.BudgetRequest {
	req := &dto.BudgetRequest{Month: ptr(month), Year: ptr(year), TotalBudget: ptr(total)}
	if lines != nil {
		req.Categories = &lines
	}
	return req
}

func TestBudgetCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	food := createCategory(t, f, userID, "Food")

	budget, err := f.budgets.Create(ctx, userID, budgetRequest(3, 2024, 1000,
		dto.BudgetCategoryRequest{CategoryID: food.ID.Hex(), BudgetedAmount: ptr(400.0)}))
	require.NoError(t, err)
	assert.Equal(t, userID, budget.UserID)
	require.Len(t, budget.Categories, 1)
	assert.Equal(t, 400.0, budget.Categories[0].BudgetedAmount)

	_, err = f.budgets.Create(ctx, userID, budgetRequest(3, 2024, 500))
	assert.ErrorIs(t, err, ErrBudgetExists)

	_, err = f.budgets.Create(ctx, primitive.NewObjectID(), budgetRequest(3, 2024, 500))
	assert.NoError(t, err, "period uniqueness is per user")
}

func TestBudgetCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	foreign := createCategory(t, f, primitive.NewObjectID(), "Food")

	tests := []struct {
		name string
		req  *dto.BudgetRequest
		want string
	}{
		{"month too high", budgetRequest(13, 2024, 10), "between 1 and 12"},
		{"month zero", budgetRequest(0, 2024, 10), "between 1 and 12"},
		{"year too early", budgetRequest(1, 1999, 10), "2000"},
		{"negative total", budgetRequest(1, 2024, -1), "non-negative"},
		{"missing total", &dto.BudgetRequest{Month: ptr(1), Year: ptr(2024)}, "totalBudget is required"},
		{"malformed category id", budgetRequest(1, 2024, 10,
			dto.BudgetCategoryRequest{CategoryID: "nope", BudgetedAmount: ptr(1.0)}), "Invalid category ID"},
		{"category of another user", budgetRequest(1, 2024, 10,
			dto.BudgetCategoryRequest{CategoryID: foreign.ID.Hex(), BudgetedAmount: ptr(1.0)}), "do not belong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.budgets.Create(ctx, userID, tt.req)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBudgetCurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	f.budgets.now = fixedClock(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC))

	_, err := f.budgets.Current(ctx, userID)
	assert.ErrorIs(t, err, ErrBudgetNotFound)

	_, err = f.budgets.Create(ctx, userID, budgetRequest(5, 2024, 800))
	require.NoError(t, err)

	current, err := f.budgets.Current(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 5, current.Month)
}

func TestBudgetSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	for _, req := range []*dto.BudgetRequest{
		{Month: ptr(2), Year: ptr(2024), TotalBudget: ptr(1000.0), TotalSpent: ptr(750.0)},
		{Month: ptr(1), Year: ptr(2024), TotalBudget: ptr(500.0), TotalSpent: ptr(600.0)},
		{Month: ptr(1), Year: ptr(2023), TotalBudget: ptr(900.0)},
	} {
		_, err := f.budgets.Create(ctx, userID, req)
		require.NoError(t, err)
	}

	summary, err := f.budgets.Summary(ctx, userID, 2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, 2, summary.TotalBudgets)
	assert.Equal(t, 1500.0, summary.TotalBudgetedAmount)
	assert.Equal(t, 1350.0, summary.TotalSpentAmount)
	assert.Equal(t, 90, summary.OverallUtilizationPercentage)
	require.Len(t, summary.MonthlyBreakdown, 2)
	assert.Equal(t, 1, summary.MonthlyBreakdown[0].Month)
	assert.Equal(t, -100.0, summary.MonthlyBreakdown[0].Remaining)
	assert.Equal(t, 120, summary.MonthlyBreakdown[0].UtilizationPercentage)
	assert.Equal(t, 75, summary.MonthlyBreakdown[1].UtilizationPercentage)

	empty, err := f.budgets.Summary(ctx, userID, 2030)
	require.NoError(t, err)
	assert.Zero(t, empty.OverallUtilizationPercentage)
	assert.NotNil(t, empty.MonthlyBreakdown)
}

func TestBudgetTracksExpenses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	food := createCategory(t, f, userID, "Food")

	budget, err := f.budgets.Create(ctx, userID, budgetRequest(3, 2024, 100,
		dto.BudgetCategoryRequest{CategoryID: food.ID.Hex(), BudgetedAmount: ptr(80.0)}))
	require.NoError(t, err)

	expense, err := f.transactions.Create(ctx, userID, txnRequest(75, "food", "expense", "2024-03-12"))
	require.NoError(t, err)
	_, err = f.transactions.Create(ctx, userID, txnRequest(500, "Salary", "income", "2024-03-01"))
	require.NoError(t, err)
	_, err = f.transactions.Create(ctx, userID, txnRequest(40, "Food", "expense", "2024-04-02"))
	require.NoError(t, err)

	got, err := f.budgets.Get(ctx, userID, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, got.TotalSpent)
	assert.Equal(t, 75.0, got.Categories[0].SpentAmount)
	assert.Equal(t, 75, got.UtilizationPercentage())
	assert.False(t, got.IsOverBudget())

	_, err = f.transactions.Update(ctx, userID, expense.ID, &dto.TransactionRequest{Amount: ptr(120.0)})
	require.NoError(t, err)
	got, err = f.budgets.Get(ctx, userID, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.TotalSpent)
	assert.True(t, got.IsOverBudget())

	require.NoError(t, f.transactions.Delete(ctx, userID, expense.ID))
	got, err = f.budgets.Get(ctx, userID, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.TotalSpent)
	assert.Equal(t, 0.0, got.Categories[0].SpentAmount)
}

func TestBudgetRevertExpense_FloorsAtZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	budget, err := f.budgets.Create(ctx, userID, &dto.BudgetRequest{
		Month: ptr(6), Year: ptr(2024), TotalBudget: ptr(100.0), TotalSpent: ptr(10.0),
	})
	require.NoError(t, err)

	err = f.budgets.RevertExpense(ctx, &models.Transaction{
		UserID: userID, Type: models.TypeExpense, Amount: 25,
		Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	got, err := f.budgets.Get(ctx, userID, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.TotalSpent)
}

func TestBudgetUpdate_PeriodConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	_, err := f.budgets.Create(ctx, userID, budgetRequest(1, 2024, 100))
	require.NoError(t, err)
	feb, err := f.budgets.Create(ctx, userID, budgetRequest(2, 2024, 100))
	require.NoError(t, err)

	_, err = f.budgets.Update(ctx, userID, feb.ID, &dto.BudgetRequest{Month: ptr(1)})
	assert.ErrorIs(t, err, ErrBudgetExists)

	updated, err := f.budgets.Update(ctx, userID, feb.ID, &dto.BudgetRequest{Notes: ptr("tight month")})
	require.NoError(t, err)
	assert.Equal(t, "tight month", updated.Notes)
	assert.Equal(t, 2, updated.Month)
}
