package mongodb

import (
	"context"

	"github.com/fernandoludvig/finance-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(ProductsCollection)}
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return insertOne(ctx, r.coll, &product.ID, product)
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return findOne[models.Product](ctx, r.coll, bson.M{"_id": id})
}

func (r *ProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Name != "" {
		query["name"] = containsFold(filter.Name)
	}
	if filter.InStock != nil {
		query["inStock"] = *filter.InStock
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Product](ctx, r.coll, query, opts)
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	return replaceOne(ctx, r.coll, bson.M{"_id": product.ID}, product)
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteOne(ctx, r.coll, bson.M{"_id": id})
}
