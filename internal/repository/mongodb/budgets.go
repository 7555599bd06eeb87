package mongodb

import (
	"context"

	"github.com/fernandoludvig/finance-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BudgetRepository struct {
	coll *mongo.Collection
}

func NewBudgetRepository(db *mongo.Database) *BudgetRepository {
	return &BudgetRepository{coll: db.Collection(BudgetsCollection)}
}

func (r *BudgetRepository) Create(ctx context.Context, budget *models.Budget) error {
	return insertOne(ctx, r.coll, &budget.ID, budget)
}

func (r *BudgetRepository) FindByID(ctx context.Context, userID, id primitive.ObjectID) (*models.Budget, error) {
	return findOne[models.Budget](ctx, r.coll, bson.M{"_id": id, "userId": userID})
}

func (r *BudgetRepository) FindByPeriod(ctx context.Context, userID primitive.ObjectID, month, year int) (*models.Budget, error) {
	return findOne[models.Budget](ctx, r.coll, bson.M{"userId": userID, "month": month, "year": year})
}

func (r *BudgetRepository) List(ctx context.Context, filter models.BudgetFilter) ([]models.Budget, error) {
	query := bson.M{"userId": filter.UserID}
	if filter.Year != 0 {
		query["year"] = filter.Year
	}
	if filter.Month != 0 {
		query["month"] = filter.Month
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "year", Value: -1},
		{Key: "month", Value: -1},
	})
	return findAll[models.Budget](ctx, r.coll, query, opts)
}

func (r *BudgetRepository) Update(ctx context.Context, budget *models.Budget) error {
	return replaceOne(ctx, r.coll, bson.M{"_id": budget.ID, "userId": budget.UserID}, budget)
}

func (r *BudgetRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return deleteOne(ctx, r.coll, bson.M{"_id": id, "userId": userID})
}
