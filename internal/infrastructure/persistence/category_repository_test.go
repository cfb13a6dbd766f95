package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Ammar-000/PointOfSale/internal/domain/catalog"
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceOf(v int) decimal.Decimal {
	return decimal.NewFromInt(int64(v))
}

func seedCategory(t *testing.T, repo *GormCategoryRepository, name string, active bool) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory(name, "")
	require.NoError(t, err)
	category.IsActive = active
	category.StampCreated(time.Now().UTC(), "seed-user")
	require.NoError(t, repo.Save(context.Background(), category))
	return category
}

func TestGormCategoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save assigns an id and find returns the row", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))
		category := seedCategory(t, repo, "Drinks", true)
		require.NotZero(t, category.ID)

		loaded, err := repo.FindByID(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, "Drinks", loaded.Name)
		assert.Equal(t, "seed-user", loaded.CreatedBy)
		assert.Nil(t, loaded.UpdatedAt)
	})

	t.Run("find by id returns inactive rows too", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))
		category := seedCategory(t, repo, "Retired", false)

		loaded, err := repo.FindByID(ctx, category.ID)
		require.NoError(t, err)
		assert.False(t, loaded.IsActive)
	})

	t.Run("missing id maps to not found", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))
		_, err := repo.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("default listing excludes inactive rows", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))
		seedCategory(t, repo, "Drinks", true)
		seedCategory(t, repo, "Retired", false)

		visible, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, visible, 1)
		assert.Equal(t, "Drinks", visible[0].Name)

		all, err := repo.FindAll(ctx, shared.Filter{IncludeInactive: true})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		count, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("save persists soft delete and restore", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))
		category := seedCategory(t, repo, "Drinks", true)

		category.Deactivate()
		category.StampUpdated(time.Now().UTC(), "editor-user")
		require.NoError(t, repo.Save(ctx, category))

		loaded, err := repo.FindByID(ctx, category.ID)
		require.NoError(t, err)
		assert.False(t, loaded.IsActive)
		require.NotNil(t, loaded.UpdatedBy)
		assert.Equal(t, "editor-user", *loaded.UpdatedBy)

		category.Activate()
		require.NoError(t, repo.Save(ctx, category))
		loaded, err = repo.FindByID(ctx, category.ID)
		require.NoError(t, err)
		assert.True(t, loaded.IsActive)
	})
}

func TestGormProductRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and filter by category", func(t *testing.T) {
		db := newTestDB(t)
		categories := NewGormCategoryRepository(db)
		products := NewGormProductRepository(db)

		drinks := seedCategory(t, categories, "Drinks", true)
		food := seedCategory(t, categories, "Food", true)

		for i, spec := range []struct {
			name       string
			categoryID int
		}{
			{"Espresso", drinks.ID},
			{"Latte", drinks.ID},
			{"Burger", food.ID},
		} {
			product, err := catalog.NewProduct(spec.name, priceOf(2+i), "", spec.categoryID)
			require.NoError(t, err)
			product.StampCreated(time.Now().UTC(), "seed-user")
			require.NoError(t, products.Save(ctx, product))
		}

		inDrinks, err := products.FindAll(ctx, shared.Filter{
			Comparisons: []shared.FieldComparison{
				{Field: "categoryId", Op: shared.OpEq, Value: drinks.ID},
			},
		})
		require.NoError(t, err)
		assert.Len(t, inDrinks, 2)

		count, err := products.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("image sub path round trips", func(t *testing.T) {
		db := newTestDB(t)
		categories := NewGormCategoryRepository(db)
		products := NewGormProductRepository(db)

		drinks := seedCategory(t, categories, "Drinks", true)
		product, err := catalog.NewProduct("Espresso", priceOf(3), "", drinks.ID)
		require.NoError(t, err)
		product.StampCreated(time.Now().UTC(), "seed-user")
		require.NoError(t, products.Save(ctx, product))

		product.SetImageSubPath("products/1.png")
		require.NoError(t, products.Save(ctx, product))

		loaded, err := products.FindByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded.ImageSubPath)
		assert.Equal(t, "products/1.png", *loaded.ImageSubPath)
	})
}
