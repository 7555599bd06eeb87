package services

import (
	"context"

	"github.com/fernandoludvig/finance-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Finance repositories are scoped by owner: lookups with the wrong userID
// behave as if the record does not exist.

type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	FindByID(ctx context.Context, userID, id primitive.ObjectID) (*models.Transaction, error)
	List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	Update(ctx context.Context, txn *models.Transaction) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, userID, id primitive.ObjectID) (*models.Category, error)
	List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error)
	CountOwned(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
}

type BudgetRepository interface {
	Create(ctx context.Context, budget *models.Budget) error
	FindByID(ctx context.Context, userID, id primitive.ObjectID) (*models.Budget, error)
	FindByPeriod(ctx context.Context, userID primitive.ObjectID, month, year int) (*models.Budget, error)
	List(ctx context.Context, filter models.BudgetFilter) ([]models.Budget, error)
	Update(ctx context.Context, budget *models.Budget) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
}
