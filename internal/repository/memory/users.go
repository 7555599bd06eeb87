package memory

import (
	"context"

	"github.com/fernandoludvig/finance-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository struct {
	t *table[models.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{t: newTable[models.User]()}
}

func userConflict(u models.User) func(models.User) bool {
	return func(existing models.User) bool {
		if existing.Email == u.Email {
			return true
		}
		return u.GoogleID != "" && existing.GoogleID == u.GoogleID
	}
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	assignID(&user.ID)
	return r.t.put(user.ID, *user, false, userConflict(*user))
}

func (r *UserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := r.t.find(func(u models.User) bool { return u.ID == id })
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, err := r.t.find(func(u models.User) bool { return u.Email == email })
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	u, err := r.t.find(func(u models.User) bool { return u.GoogleID != "" && u.GoogleID == googleID })
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(_ context.Context, filter models.UserFilter) ([]models.User, error) {
	return r.t.filter(func(u models.User) bool {
		if filter.Email != "" && u.Email != filter.Email {
			return false
		}
		if filter.Name != "" && !containsFold(u.FirstName, filter.Name) && !containsFold(u.LastName, filter.Name) {
			return false
		}
		return true
	}, func(a, b models.User) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}), nil
}

func (r *UserRepository) Update(_ context.Context, user *models.User) error {
	return r.t.put(user.ID, *user, true, userConflict(*user))
}

func (r *UserRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	return r.t.remove(id, func(models.User) bool { return true })
}
