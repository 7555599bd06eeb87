package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fernandoludvig/finance-api/internal/config"
	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/fernandoludvig/finance-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	users       UserRepository
	adminEmails []string
	now         func() time.Time
}

func NewUserService(users UserRepository, cfg *config.Config) *UserService {
	return &UserService{
		users:       users,
		adminEmails: cfg.AdminEmailList(),
		now:         time.Now,
	}
}

// IsAdmin checks the configured admin emails first, then the stored role.
func (s *UserService) IsAdmin(ctx context.Context, userID primitive.ObjectID, email string) bool {
	if slices.Contains(s.adminEmails, normalizeEmail(email)) {
		return true
	}
	if userID.IsZero() {
		return false
	}
	user, err := s.users.FindByID(ctx, userID)
	return err == nil && user.IsAdmin()
}

// Authorize allows actors to manage their own account and admins to manage any.
func (s *UserService) Authorize(ctx context.Context, actorID primitive.ObjectID, actorEmail string, targetID primitive.ObjectID) error {
	if actorID == targetID || s.IsAdmin(ctx, actorID, actorEmail) {
		return nil
	}
	return ErrForbidden
}

func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	filter.Email = normalizeEmail(filter.Email)
	filter.Name = strings.TrimSpace(filter.Name)
	return s.users.List(ctx, filter)
}

func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound, nil)
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	for _, f := range []struct{ name, value string }{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"email", req.Email},
		{"password", req.Password},
	} {
		if err := required(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	if req.Birthday != "" {
		if err := validateBirthday(req.Birthday); err != nil {
			return nil, err
		}
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, invalid("role", "Role must be user or admin")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	user := models.User{
		Email:         req.Email,
		PasswordHash:  hash,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		FavoriteColor: strings.TrimSpace(req.FavoriteColor),
		Birthday:      req.Birthday,
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		Provider:      models.ProviderLocal,
		Role:          role,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateUserRequest) (*models.User, error) {
	if req.Empty() {
		return nil, invalid("", "No fields provided to update")
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if err := required("firstName", *req.FirstName); err != nil {
			return nil, err
		}
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if err := required("lastName", *req.LastName); err != nil {
			return nil, err
		}
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return nil, err
		}
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.Birthday != nil {
		if err := validateBirthday(*req.Birthday); err != nil {
			return nil, err
		}
		user.Birthday = *req.Birthday
	}
	if req.FavoriteColor != nil {
		user.FavoriteColor = strings.TrimSpace(*req.FavoriteColor)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = strings.TrimSpace(*req.ProfilePicture)
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound, ErrEmailTaken)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return mapRepoErr(s.users.Delete(ctx, id), ErrUserNotFound, nil)
}

// Promote grants the admin role to the account with the given email.
func (s *UserService) Promote(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound, nil)
	}
	if user.IsAdmin() {
		return user, nil
	}
	user.Role = models.RoleAdmin
	user.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound, nil)
	}
	return user, nil
}
