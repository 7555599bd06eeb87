package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	productNameMin = 2
	productNameMax = 100
)

type ProductService struct {
	products ProductRepository
	now      func() time.Time
}

func NewProductService(products ProductRepository) *ProductService {
	return &ProductService{products: products, now: time.Now}
}

func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	filter.Name = strings.TrimSpace(filter.Name)
	filter.Category = strings.TrimSpace(filter.Category)
	return s.products.List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrProductNotFound, nil)
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, req *dto.ProductRequest) (*models.Product, error) {
	switch {
	case req.Name == nil:
		return nil, invalid("name", "name is required")
	case req.Description == nil:
		return nil, invalid("description", "description is required")
	case req.Price == nil:
		return nil, invalid("price", "price is required")
	case req.Category == nil:
		return nil, invalid("category", "category is required")
	case req.InStock == nil:
		return nil, invalid("inStock", "inStock is required")
	}

	now := s.now().UTC()
	product := models.Product{CreatedAt: now, UpdatedAt: now}
	if err := applyProduct(&product, req); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, req *dto.ProductRequest) (*models.Product, error) {
	if req.Empty() {
		return nil, invalid("", "No fields provided to update")
	}
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProduct(product, req); err != nil {
		return nil, err
	}
	product.UpdatedAt = s.now().UTC()
	if err := s.products.Update(ctx, product); err != nil {
		return nil, mapRepoErr(err, ErrProductNotFound, nil)
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return mapRepoErr(s.products.Delete(ctx, id), ErrProductNotFound, nil)
}

// applyProduct validates and copies the supplied fields onto p.
func applyProduct(p *models.Product, req *dto.ProductRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if n := utf8.RuneCountInString(name); n < productNameMin || n > productNameMax {
			return invalid("name", fmt.Sprintf("name must be between %d and %d characters", productNameMin, productNameMax))
		}
		p.Name = name
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return invalid("price", "price must be a non-negative number")
		}
		p.Price = *req.Price
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return invalid("category", "category is required")
		}
		p.Category = category
	}
	if req.InStock != nil {
		p.InStock = *req.InStock
	}
	return nil
}
