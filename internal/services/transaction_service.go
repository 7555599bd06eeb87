package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExpenseTracker keeps budget spending in step with expense transactions.
type ExpenseTracker interface {
	ApplyExpense(ctx context.Context, txn *models.Transaction) error
	RevertExpense(ctx context.Context, txn *models.Transaction) error
}

type TransactionService struct {
	transactions TransactionRepository
	tracker      ExpenseTracker
	now          func() time.Time
}

func NewTransactionService(transactions TransactionRepository, tracker ExpenseTracker) *TransactionService {
	return &TransactionService{transactions: transactions, tracker: tracker, now: time.Now}
}

func (s *TransactionService) List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	filter.Type = strings.ToLower(strings.TrimSpace(filter.Type))
	if filter.Type != "" && !models.IsValidEntryType(filter.Type) {
		return nil, invalid("type", "type must be income or expense")
	}
	filter.Category = strings.TrimSpace(filter.Category)
	return s.transactions.List(ctx, filter)
}

func (s *TransactionService) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Transaction, error) {
	txn, err := s.transactions.FindByID(ctx, userID, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrTransactionNotFound, nil)
	}
	return txn, nil
}

func (s *TransactionService) Create(ctx context.Context, userID primitive.ObjectID, req *dto.TransactionRequest) (*models.Transaction, error) {
	switch {
	case req.Amount == nil:
		return nil, invalid("amount", "amount is required")
	case req.Description == nil:
		return nil, invalid("description", "description is required")
	case req.Category == nil:
		return nil, invalid("category", "category is required")
	case req.Type == nil:
		return nil, invalid("type", "type is required")
	}

	now := s.now().UTC()
	txn := models.Transaction{
		UserID:    userID,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyTransaction(&txn, req); err != nil {
		return nil, err
	}
	if err := s.transactions.Create(ctx, &txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	s.track(ctx, true, &txn)
	return &txn, nil
}

func (s *TransactionService) Update(ctx context.Context, userID, id primitive.ObjectID, req *dto.TransactionRequest) (*models.Transaction, error) {
	if req.Empty() {
		return nil, invalid("", "No fields provided to update")
	}
	txn, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	before := *txn

	if err := applyTransaction(txn, req); err != nil {
		return nil, err
	}
	txn.UpdatedAt = s.now().UTC()
	if err := s.transactions.Update(ctx, txn); err != nil {
		return nil, mapRepoErr(err, ErrTransactionNotFound, nil)
	}

	s.track(ctx, false, &before)
	s.track(ctx, true, txn)
	return txn, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	txn, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.transactions.Delete(ctx, userID, id); err != nil {
		return mapRepoErr(err, ErrTransactionNotFound, nil)
	}
	s.track(ctx, false, txn)
	return nil
}

// Summary totals the user's transactions. Balance is income minus expense.
func (s *TransactionService) Summary(ctx context.Context, filter models.TransactionFilter) (*models.TransactionSummary, error) {
	filter.Type = ""
	filter.Category = ""
	txns, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	var income, expense []float64
	for _, t := range txns {
		switch t.Type {
		case models.TypeIncome:
			income = append(income, t.Amount)
		case models.TypeExpense:
			expense = append(expense, t.Amount)
		}
	}
	totalIncome := sumMoney(income)
	totalExpense := sumMoney(expense)

	return &models.TransactionSummary{
		TotalIncome:  totalIncome.InexactFloat64(),
		TotalExpense: totalExpense.InexactFloat64(),
		Balance:      totalIncome.Sub(totalExpense).InexactFloat64(),
		Count:        len(txns),
	}, nil
}

// track applies or reverts txn against its month's budget. Failures are
// logged; the transaction write has already succeeded.
func (s *TransactionService) track(ctx context.Context, apply bool, txn *models.Transaction) {
	if s.tracker == nil {
		return
	}
	action, fn := "apply", s.tracker.ApplyExpense
	if !apply {
		action, fn = "revert", s.tracker.RevertExpense
	}
	if err := fn(ctx, txn); err != nil {
		slog.Warn("budget tracking failed",
			"action", action,
			"transaction_id", txn.ID.Hex(),
			"user_id", txn.UserID.Hex(),
			"error", err,
		)
	}
}

func applyTransaction(t *models.Transaction, req *dto.TransactionRequest) error {
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return invalid("amount", "amount must be greater than zero")
		}
		t.Amount = *req.Amount
	}
	if req.Description != nil {
		if err := required("description", *req.Description); err != nil {
			return err
		}
		t.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		if err := required("category", *req.Category); err != nil {
			return err
		}
		t.Category = strings.TrimSpace(*req.Category)
	}
	if req.Type != nil {
		typ := strings.ToLower(strings.TrimSpace(*req.Type))
		if !models.IsValidEntryType(typ) {
			return invalid("type", "type must be income or expense")
		}
		t.Type = typ
	}
	if req.Date != nil && *req.Date != "" {
		date, err := parseDate(*req.Date)
		if err != nil {
			return err
		}
		t.Date = date.UTC()
	}
	return nil
}
