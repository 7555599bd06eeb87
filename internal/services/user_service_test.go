package services

import (
	"context"
	"testing"

	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func createUser(t *testing.T, f *fixture, email, role string) *models.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), &dto.CreateUserRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "secret1",
		Role:      role,
	})
	require.NoError(t, err)
	return u
}

func TestUserAuthorize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := createUser(t, f, "alice@example.com", "")
	bob := createUser(t, f, "bob@example.com", "")
	admin := createUser(t, f, "admin@example.com", models.RoleAdmin)

	assert.NoError(t, f.users.Authorize(ctx, alice.ID, alice.Email, alice.ID), "self")
	assert.ErrorIs(t, f.users.Authorize(ctx, alice.ID, alice.Email, bob.ID), ErrForbidden)
	assert.NoError(t, f.users.Authorize(ctx, admin.ID, admin.Email, bob.ID), "stored admin role")
	assert.NoError(t, f.users.Authorize(ctx, primitive.NewObjectID(), "Root@Example.com", bob.ID), "configured admin email")
}

func TestUserCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := createUser(t, f, "Alice@Example.com", "")
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, models.RoleUser, u.Role)

	_, err := f.users.Create(ctx, &dto.CreateUserRequest{FirstName: "A", LastName: "B", Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.users.Create(ctx, &dto.CreateUserRequest{FirstName: "A", LastName: "B", Email: "c@example.com", Password: "secret1", Role: "owner"})
	assert.True(t, IsValidation(err))
}

func TestUserUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f, "alice@example.com", "")
	createUser(t, f, "bob@example.com", "")

	_, err := f.users.Update(ctx, alice.ID, &dto.UpdateUserRequest{})
	assert.EqualError(t, err, "No fields provided to update")

	_, err = f.users.Update(ctx, alice.ID, &dto.UpdateUserRequest{Email: ptr("bob@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	updated, err := f.users.Update(ctx, alice.ID, &dto.UpdateUserRequest{FirstName: ptr("Alicia"), Birthday: ptr("1991-01-31")})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "User", updated.LastName)

	_, err = f.users.Update(ctx, primitive.NewObjectID(), &dto.UpdateUserRequest{FirstName: ptr("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserListAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f, "alice@example.com", "")
	createUser(t, f, "bob@example.com", "")

	byEmail, err := f.users.List(ctx, models.UserFilter{Email: "ALICE@example.com"})
	require.NoError(t, err)
	require.Len(t, byEmail, 1)

	byName, err := f.users.List(ctx, models.UserFilter{Name: "tes"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	require.NoError(t, f.users.Delete(ctx, alice.ID))
	assert.ErrorIs(t, f.users.Delete(ctx, alice.ID), ErrUserNotFound)
}

func TestUserPromote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	createUser(t, f, "alice@example.com", "")

	u, err := f.users.Promote(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
	assert.True(t, f.users.IsAdmin(ctx, u.ID, u.Email))

	_, err = f.users.Promote(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
