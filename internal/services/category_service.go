package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/fernandoludvig/finance-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultCategoryColor = "#007bff"

// defaultCategories are created for every new account.
var defaultCategories = []models.Category{
	{Name: "Salary", Type: models.TypeIncome, Color: "#28a745"},
	{Name: "Investments", Type: models.TypeIncome, Color: "#17a2b8"},
	{Name: "Food", Type: models.TypeExpense, Color: "#fd7e14"},
	{Name: "Housing", Type: models.TypeExpense, Color: "#6f42c1"},
	{Name: "Transport", Type: models.TypeExpense, Color: "#ffc107"},
	{Name: "Health", Type: models.TypeExpense, Color: "#dc3545"},
	{Name: "Leisure", Type: models.TypeExpense, Color: "#20c997"},
}

type CategoryService struct {
	categories CategoryRepository
	now        func() time.Time
}

func NewCategoryService(categories CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories, now: time.Now}
}

func (s *CategoryService) List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error) {
	filter.Type = strings.ToLower(strings.TrimSpace(filter.Type))
	if filter.Type != "" && !models.IsValidEntryType(filter.Type) {
		return nil, invalid("type", "type must be income or expense")
	}
	return s.categories.List(ctx, filter)
}

func (s *CategoryService) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, userID, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrCategoryNotFound, nil)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, userID primitive.ObjectID, req *dto.CategoryRequest) (*models.Category, error) {
	switch {
	case req.Name == nil:
		return nil, invalid("name", "name is required")
	case req.Type == nil:
		return nil, invalid("type", "type is required")
	}

	category := models.Category{
		UserID:    userID,
		Color:     defaultCategoryColor,
		CreatedAt: s.now().UTC(),
	}
	if err := applyCategory(&category, req); err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, &category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id primitive.ObjectID, req *dto.CategoryRequest) (*models.Category, error) {
	if req.Empty() {
		return nil, invalid("", "No fields provided to update")
	}
	category, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := applyCategory(category, req); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, mapRepoErr(err, ErrCategoryNotFound, ErrCategoryExists)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return mapRepoErr(s.categories.Delete(ctx, userID, id), ErrCategoryNotFound, nil)
}

// SeedDefaults creates the default categories for userID. Names the user
// already has are skipped.
func (s *CategoryService) SeedDefaults(ctx context.Context, userID primitive.ObjectID) error {
	now := s.now().UTC()
	var errs []error
	for _, def := range defaultCategories {
		category := def
		category.UserID = userID
		category.IsDefault = true
		category.CreatedAt = now
		if err := s.categories.Create(ctx, &category); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			errs = append(errs, fmt.Errorf("seed %s: %w", def.Name, err))
		}
	}
	return errors.Join(errs...)
}

func applyCategory(c *models.Category, req *dto.CategoryRequest) error {
	if req.Name != nil {
		if err := required("name", *req.Name); err != nil {
			return err
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		typ := strings.ToLower(strings.TrimSpace(*req.Type))
		if !models.IsValidEntryType(typ) {
			return invalid("type", "type must be income or expense")
		}
		c.Type = typ
	}
	if req.BudgetLimit != nil {
		if *req.BudgetLimit < 0 {
			return invalid("budgetLimit", "budgetLimit must be a non-negative number")
		}
		limit := *req.BudgetLimit
		c.BudgetLimit = &limit
	}
	if req.Color != nil {
		if !colorPattern.MatchString(*req.Color) {
			return invalid("color", "color must be a hex value like #RGB or #RRGGBB")
		}
		c.Color = *req.Color
	}
	if req.IsDefault != nil {
		c.IsDefault = *req.IsDefault
	}
	return nil
}
