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

func txnRequest(amount float64, category, typ, date string) *dto.TransactionRequest {
	req := &dto.TransactionRequest{
		Amount:      ptr(amount),
		Description: ptr(category + " entry"),
		Category:    ptr(category),
		Type:        ptr(typ),
	}
	if date != "" {
		req.Date = ptr(date)
	}
	return req
}

func TestTransactionCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	tests := []struct {
		name string
		req  *dto.TransactionRequest
		want string
	}{
		{"zero amount", txnRequest(0, "Food", "expense", ""), "greater than zero"},
		{"negative amount", txnRequest(-10, "Food", "expense", ""), "greater than zero"},
		{"unknown type", txnRequest(10, "Food", "transfer", ""), "income or expense"},
		{"bad date", txnRequest(10, "Food", "expense", "yesterday"), "Invalid date"},
		{"missing amount", &dto.TransactionRequest{Description: ptr("x"), Category: ptr("y"), Type: ptr("income")}, "amount is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.transactions.Create(ctx, userID, tt.req)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTransactionCreate_DefaultsDateToNow(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	f.transactions.now = fixedClock(now)

	txn, err := f.transactions.Create(context.Background(), primitive.NewObjectID(), txnRequest(10, "Food", "Expense", ""))
	require.NoError(t, err)
	assert.Equal(t, now, txn.Date)
	assert.Equal(t, models.TypeExpense, txn.Type)
}

func TestTransactionList_ScopedAndFiltered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()

	_, err := f.transactions.Create(ctx, alice, txnRequest(100, "Groceries", "expense", "2024-01-05"))
	require.NoError(t, err)
	_, err = f.transactions.Create(ctx, alice, txnRequest(200, "Salary", "income", "2024-01-07"))
	require.NoError(t, err)
	_, err = f.transactions.Create(ctx, bob, txnRequest(300, "Groceries", "expense", "2024-01-06"))
	require.NoError(t, err)

	all, err := f.transactions.List(ctx, models.TransactionFilter{UserID: alice})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Salary", all[0].Category, "newest first")

	groceries, err := f.transactions.List(ctx, models.TransactionFilter{UserID: alice, Category: "grocer"})
	require.NoError(t, err)
	require.Len(t, groceries, 1)
	assert.Equal(t, 100.0, groceries[0].Amount)

	_, err = f.transactions.List(ctx, models.TransactionFilter{UserID: alice, Type: "gift"})
	assert.True(t, IsValidation(err))
}

func TestTransactionSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	for _, req := range []*dto.TransactionRequest{
		txnRequest(5000, "Salary", "income", ""),
		txnRequest(1200, "Freelance", "income", ""),
		txnRequest(50.75, "Food", "expense", ""),
	} {
		_, err := f.transactions.Create(ctx, userID, req)
		require.NoError(t, err)
	}

	summary, err := f.transactions.Summary(ctx, models.TransactionFilter{UserID: userID, Type: models.TypeIncome})
	require.NoError(t, err)
	assert.Equal(t, 6200.0, summary.TotalIncome)
	assert.Equal(t, 50.75, summary.TotalExpense)
	assert.Equal(t, 6149.25, summary.Balance)
	assert.Equal(t, 3, summary.Count)
}

func TestTransactionSummary_DecimalSums(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	for _, amount := range []float64{0.1, 0.2} {
		_, err := f.transactions.Create(ctx, userID, txnRequest(amount, "Misc", "income", ""))
		require.NoError(t, err)
	}

	summary, err := f.transactions.Summary(ctx, models.TransactionFilter{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, 0.3, summary.TotalIncome)
}

func TestTransactionGet_OtherUsersTransactionIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	txn, err := f.transactions.Create(ctx, primitive.NewObjectID(), txnRequest(10, "Food", "expense", ""))
	require.NoError(t, err)

	_, err = f.transactions.Get(ctx, primitive.NewObjectID(), txn.ID)
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	err = f.transactions.Delete(ctx, primitive.NewObjectID(), txn.ID)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestTransactionUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	txn, err := f.transactions.Create(ctx, userID, txnRequest(10, "Food", "expense", "2024-02-01"))
	require.NoError(t, err)

	_, err = f.transactions.Update(ctx, userID, txn.ID, &dto.TransactionRequest{})
	assert.EqualError(t, err, "No fields provided to update")

	updated, err := f.transactions.Update(ctx, userID, txn.ID, &dto.TransactionRequest{Description: ptr("Dinner")})
	require.NoError(t, err)
	assert.Equal(t, "Dinner", updated.Description)
	assert.Equal(t, 10.0, updated.Amount, "untouched fields keep their values")

	_, err = f.transactions.Update(ctx, userID, primitive.NewObjectID(), &dto.TransactionRequest{Description: ptr("x")})
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
