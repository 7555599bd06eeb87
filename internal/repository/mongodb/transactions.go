package mongodb

import (
	"context"

	"github.com/fernandoludvig/finance-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TransactionRepository struct {
	coll *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{coll: db.Collection(TransactionsCollection)}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	return insertOne(ctx, r.coll, &txn.ID, txn)
}

func (r *TransactionRepository) FindByID(ctx context.Context, userID, id primitive.ObjectID) (*models.Transaction, error) {
	return findOne[models.Transaction](ctx, r.coll, bson.M{"_id": id, "userId": userID})
}

func (r *TransactionRepository) List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	query := bson.M{"userId": filter.UserID}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Category != "" {
		query["category"] = containsFold(filter.Category)
	}
	if filter.From != nil || filter.To != nil {
		date := bson.M{}
		if filter.From != nil {
			date["$gte"] = *filter.From
		}
		if filter.To != nil {
			date["$lte"] = *filter.To
		}
		query["date"] = date
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return findAll[models.Transaction](ctx, r.coll, query, opts)
}

func (r *TransactionRepository) Update(ctx context.Context, txn *models.Transaction) error {
	return replaceOne(ctx, r.coll, bson.M{"_id": txn.ID, "userId": txn.UserID}, txn)
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return deleteOne(ctx, r.coll, bson.M{"_id": id, "userId": userID})
}
