package memory

import (
	"context"

	"github.com/fernandoludvig/finance-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository struct {
	t *table[models.Product]
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{t: newTable[models.Product]()}
}

func noConflict[T any](T) bool { return false }

func (r *ProductRepository) Create(_ context.Context, product *models.Product) error {
	assignID(&product.ID)
	return r.t.put(product.ID, *product, false, noConflict[models.Product])
}

func (r *ProductRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, err := r.t.find(func(p models.Product) bool { return p.ID == id })
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return r.t.filter(func(p models.Product) bool {
		if filter.Category != "" && p.Category != filter.Category {
			return false
		}
		if filter.Name != "" && !containsFold(p.Name, filter.Name) {
			return false
		}
		if filter.InStock != nil && p.InStock != *filter.InStock {
			return false
		}
		return true
	}, func(a, b models.Product) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}), nil
}

func (r *ProductRepository) Update(_ context.Context, product *models.Product) error {
	return r.t.put(product.ID, *product, true, noConflict[models.Product])
}

func (r *ProductRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	return r.t.remove(id, func(models.Product) bool { return true })
}
