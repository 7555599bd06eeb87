package memory

import (
	"context"

	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/fernandoludvig/finance-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransactionRepository struct {
	t *table[models.Transaction]
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{t: newTable[models.Transaction]()}
}

func (r *TransactionRepository) Create(_ context.Context, txn *models.Transaction) error {
	assignID(&txn.ID)
	return r.t.put(txn.ID, *txn, false, noConflict[models.Transaction])
}

func (r *TransactionRepository) FindByID(_ context.Context, userID, id primitive.ObjectID) (*models.Transaction, error) {
	txn, err := r.t.find(func(t models.Transaction) bool { return t.ID == id && t.UserID == userID })
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *TransactionRepository) List(_ context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	return r.t.filter(func(t models.Transaction) bool {
		if t.UserID != filter.UserID {
			return false
		}
		if filter.Type != "" && t.Type != filter.Type {
			return false
		}
		if filter.Category != "" && !containsFold(t.Category, filter.Category) {
			return false
		}
		if filter.From != nil && t.Date.Before(*filter.From) {
			return false
		}
		if filter.To != nil && t.Date.After(*filter.To) {
			return false
		}
		return true
	}, func(a, b models.Transaction) bool {
		return a.Date.After(b.Date)
	}), nil
}

func (r *TransactionRepository) Update(ctx context.Context, txn *models.Transaction) error {
	if _, err := r.FindByID(ctx, txn.UserID, txn.ID); err != nil {
		return repository.ErrNotFound
	}
	return r.t.put(txn.ID, *txn, true, noConflict[models.Transaction])
}

func (r *TransactionRepository) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	return r.t.remove(id, func(t models.Transaction) bool { return t.UserID == userID })
}
