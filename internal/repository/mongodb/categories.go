package mongodb

import (
	"context"

	"github.com/fernandoludvig/finance-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(CategoriesCollection)}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return insertOne(ctx, r.coll, &category.ID, category)
}

func (r *CategoryRepository) FindByID(ctx context.Context, userID, id primitive.ObjectID) (*models.Category, error) {
	return findOne[models.Category](ctx, r.coll, bson.M{"_id": id, "userId": userID})
}

func (r *CategoryRepository) List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error) {
	query := bson.M{"userId": filter.UserID}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "isDefault", Value: -1},
		{Key: "createdAt", Value: -1},
	})
	return findAll[models.Category](ctx, r.coll, query, opts)
}

// CountOwned counts how many of ids exist and belong to userID.
func (r *CategoryRepository) CountOwned(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"_id":    bson.M{"$in": ids},
		"userId": userID,
	})
	return int(n), err
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return replaceOne(ctx, r.coll, bson.M{"_id": category.ID, "userId": category.UserID}, category)
}

func (r *CategoryRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return deleteOne(ctx, r.coll, bson.M{"_id": id, "userId": userID})
}
