// Package mongodb implements the service repositories on the official
// MongoDB driver.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/fernandoludvig/finance-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection        = "users"
	ProductsCollection     = "products"
	TransactionsCollection = "transactions"
	CategoriesCollection   = "categories"
	BudgetsCollection      = "budgets"
)

// EnsureIndexes creates the unique and lookup indexes the services rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
			{Keys: bson.D{{Key: "googleId", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_google_id")},
		},
		TransactionsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}, Options: options.Index().SetName("user_date")},
		},
		CategoriesCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_user_name")},
		},
		BudgetsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "month", Value: 1}, {Key: "year", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_user_period")},
		},
		ProductsCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}}, Options: options.Index().SetName("category")},
		},
	}

	for coll, models := range specs {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
		slog.Debug("indexes ensured", "collection", coll, "indexes", names)
	}
	return nil
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	default:
		return err
	}
}

func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var doc T
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func replaceOne(ctx context.Context, coll *mongo.Collection, filter bson.M, doc any) error {
	res, err := coll.ReplaceOne(ctx, filter, doc)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, filter bson.M) error {
	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, id *primitive.ObjectID, doc any) error {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}
	return nil
}
