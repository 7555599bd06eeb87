package services

import (
	"context"
	"testing"
	"time"

	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCategoryCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	c, err := f.categories.Create(ctx, userID, &dto.CategoryRequest{
		Name:        ptr("Food"),
		Type:        ptr("expense"),
		BudgetLimit: ptr(300.0),
	})
	require.NoError(t, err)
	assert.Equal(t, defaultCategoryColor, c.Color)
	require.NotNil(t, c.BudgetLimit)
	assert.Equal(t, 300.0, *c.BudgetLimit)

	_, err = f.categories.Create(ctx, userID, &dto.CategoryRequest{Name: ptr("Food"), Type: ptr("expense")})
	assert.ErrorIs(t, err, ErrCategoryExists)

	_, err = f.categories.Create(ctx, primitive.NewObjectID(), &dto.CategoryRequest{Name: ptr("Food"), Type: ptr("expense")})
	assert.NoError(t, err, "names are unique per user")
}

func TestCategoryColor(t *testing.T) {
	tests := []struct {
		color string
		ok    bool
	}{
		{"#fff", true},
		{"#A1B2C3", true},
		{"#abcd", false},
		{"red", false},
		{"#GGGGGG", false},
		{"fff", false},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.categories.Create(context.Background(), primitive.NewObjectID(), &dto.CategoryRequest{
				Name:  ptr("Any"),
				Type:  ptr("income"),
				Color: ptr(tt.color),
			})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, IsValidation(err))
			}
		})
	}
}

func TestCategoryList_SortsDefaultsFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, req := range []*dto.CategoryRequest{
		{Name: ptr("Old"), Type: ptr("expense")},
		{Name: ptr("Pinned"), Type: ptr("expense"), IsDefault: ptr(true)},
		{Name: ptr("New"), Type: ptr("income")},
	} {
		f.categories.now = fixedClock(base.Add(time.Duration(i) * time.Hour))
		_, err := f.categories.Create(ctx, userID, req)
		require.NoError(t, err)
	}

	list, err := f.categories.List(ctx, models.CategoryFilter{UserID: userID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Pinned", "New", "Old"}, []string{list[0].Name, list[1].Name, list[2].Name})

	incomes, err := f.categories.List(ctx, models.CategoryFilter{UserID: userID, Type: "INCOME"})
	require.NoError(t, err)
	require.Len(t, incomes, 1)

	_, err = f.categories.List(ctx, models.CategoryFilter{UserID: userID, Type: "other"})
	assert.True(t, IsValidation(err))
}

func TestCategoryUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	food, err := f.categories.Create(ctx, userID, &dto.CategoryRequest{Name: ptr("Food"), Type: ptr("expense")})
	require.NoError(t, err)
	_, err = f.categories.Create(ctx, userID, &dto.CategoryRequest{Name: ptr("Rent"), Type: ptr("expense")})
	require.NoError(t, err)

	_, err = f.categories.Update(ctx, userID, food.ID, &dto.CategoryRequest{Name: ptr("Rent")})
	assert.ErrorIs(t, err, ErrCategoryExists)

	updated, err := f.categories.Update(ctx, userID, food.ID, &dto.CategoryRequest{Color: ptr("#123")})
	require.NoError(t, err)
	assert.Equal(t, "#123", updated.Color)
	assert.Equal(t, "Food", updated.Name)

	assert.ErrorIs(t, f.categories.Delete(ctx, primitive.NewObjectID(), food.ID), ErrCategoryNotFound)
	require.NoError(t, f.categories.Delete(ctx, userID, food.ID))
	_, err = f.categories.Get(ctx, userID, food.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestSeedDefaults_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	require.NoError(t, f.categories.SeedDefaults(ctx, userID))
	require.NoError(t, f.categories.SeedDefaults(ctx, userID))

	list, err := f.categories.List(ctx, models.CategoryFilter{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, list, len(defaultCategories))
}
