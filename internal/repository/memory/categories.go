package memory

import (
	"context"

	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/fernandoludvig/finance-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryRepository struct {
	t *table[models.Category]
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{t: newTable[models.Category]()}
}

func categoryConflict(c models.Category) func(models.Category) bool {
	return func(existing models.Category) bool {
		return existing.UserID == c.UserID && existing.Name == c.Name
	}
}

func (r *CategoryRepository) Create(_ context.Context, category *models.Category) error {
	assignID(&category.ID)
	return r.t.put(category.ID, *category, false, categoryConflict(*category))
}

func (r *CategoryRepository) FindByID(_ context.Context, userID, id primitive.ObjectID) (*models.Category, error) {
	c, err := r.t.find(func(c models.Category) bool { return c.ID == id && c.UserID == userID })
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) List(_ context.Context, filter models.CategoryFilter) ([]models.Category, error) {
	return r.t.filter(func(c models.Category) bool {
		if c.UserID != filter.UserID {
			return false
		}
		return filter.Type == "" || c.Type == filter.Type
	}, func(a, b models.Category) bool {
		if a.IsDefault != b.IsDefault {
			return a.IsDefault
		}
		return a.CreatedAt.After(b.CreatedAt)
	}), nil
}

func (r *CategoryRepository) CountOwned(_ context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int, error) {
	want := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	owned := r.t.filter(func(c models.Category) bool {
		_, ok := want[c.ID]
		return ok && c.UserID == userID
	}, func(a, b models.Category) bool { return false })
	return len(owned), nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	if _, err := r.FindByID(ctx, category.UserID, category.ID); err != nil {
		return repository.ErrNotFound
	}
	return r.t.put(category.ID, *category, true, categoryConflict(*category))
}

func (r *CategoryRepository) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	return r.t.remove(id, func(c models.Category) bool { return c.UserID == userID })
}
