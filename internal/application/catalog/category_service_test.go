package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/Ammar-000/PointOfSale/internal/application/audit"
	"github.com/Ammar-000/PointOfSale/internal/domain/catalog"
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id int) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// MockUserChecker is a mock implementation of shared.ActingUserChecker
type MockUserChecker struct {
	mock.Mock
}

func (m *MockUserChecker) ExistsActive(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var (
	catalogActor = "3f1c2a4d-0b5e-4f6a-8c7d-9e0f1a2b3c4d"
	catalogNow   = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
)

func newCategoryService(t *testing.T) (*CategoryService, *MockCategoryRepository, *MockUserChecker) {
	t.Helper()
	repo := new(MockCategoryRepository)
	users := new(MockUserChecker)
	stamper := audit.NewStamper(users).WithClock(func() time.Time { return catalogNow })
	return NewCategoryService(repo, stamper, zap.NewNop()), repo, users
}

func storedCategory(t *testing.T) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory("Drinks", "Hot and cold drinks")
	require.NoError(t, err)
	category.ID = 5
	category.StampCreated(catalogNow.Add(-48*time.Hour), "creator-id")
	return category
}

func TestCategoryServiceGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("hides inactive rows by default", func(t *testing.T) {
		svc, repo, _ := newCategoryService(t)
		category := storedCategory(t)
		category.Deactivate()
		repo.On("FindByID", ctx, 5).Return(category, nil)

		_, err := svc.GetByID(ctx, 5, false)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)

		got, err := svc.GetByID(ctx, 5, true)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("hides storage errors behind a generic failure", func(t *testing.T) {
		svc, repo, _ := newCategoryService(t)
		repo.On("FindByID", ctx, 5).Return(nil, assert.AnError)

		_, err := svc.GetByID(ctx, 5, false)
		assert.ErrorIs(t, err, shared.ErrInternal)
	})
}

func TestCategoryServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps the new row with the acting user", func(t *testing.T) {
		svc, repo, users := newCategoryService(t)
		users.On("ExistsActive", ctx, catalogActor).Return(true, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

		category, err := svc.Create(ctx, CreateCategoryRequest{Name: "Drinks", Description: "Hot and cold drinks"}, catalogActor)
		require.NoError(t, err)
		assert.Equal(t, catalogNow, category.CreatedAt)
		assert.Equal(t, catalogActor, category.CreatedBy)
		assert.Nil(t, category.UpdatedAt)
		assert.True(t, category.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown acting user without persisting", func(t *testing.T) {
		svc, repo, users := newCategoryService(t)
		users.On("ExistsActive", ctx, "ghost").Return(false, nil)

		_, err := svc.Create(ctx, CreateCategoryRequest{Name: "Drinks"}, "ghost")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeActingUserNotFound, domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		svc, repo, users := newCategoryService(t)
		users.On("ExistsActive", ctx, catalogActor).Return(true, nil)

		_, err := svc.Create(ctx, CreateCategoryRequest{Name: "   "}, catalogActor)
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCategoryServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("updates an active row and stamps the editor", func(t *testing.T) {
		svc, repo, users := newCategoryService(t)
		users.On("ExistsActive", ctx, catalogActor).Return(true, nil)
		category := storedCategory(t)
		repo.On("FindByID", ctx, 5).Return(category, nil)
		repo.On("Save", ctx, category).Return(nil)

		updated, err := svc.Update(ctx, 5, UpdateCategoryRequest{Name: "Beverages", Description: "All drinks"}, catalogActor)
		require.NoError(t, err)
		assert.Equal(t, "Beverages", updated.Name)
		assert.Equal(t, "creator-id", updated.CreatedBy, "creation stamp survives updates")
		require.NotNil(t, updated.UpdatedAt)
		assert.Equal(t, catalogNow, *updated.UpdatedAt)
		assert.Equal(t, catalogActor, *updated.UpdatedBy)
	})

	t.Run("rejects updates to inactive rows", func(t *testing.T) {
		svc, repo, users := newCategoryService(t)
		users.On("ExistsActive", ctx, catalogActor).Return(true, nil)
		category := storedCategory(t)
		category.Deactivate()
		repo.On("FindByID", ctx, 5).Return(category, nil)

		_, err := svc.Update(ctx, 5, UpdateCategoryRequest{Name: "Beverages"}, catalogActor)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeEntityInactive, domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCategoryServiceSoftDeleteAndRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("soft delete deactivates, restore brings the row back", func(t *testing.T) {
		svc, repo, users := newCategoryService(t)
		users.On("ExistsActive", ctx, catalogActor).Return(true, nil)
		category := storedCategory(t)
		repo.On("FindByID", ctx, 5).Return(category, nil)
		repo.On("Save", ctx, category).Return(nil)

		require.NoError(t, svc.SoftDelete(ctx, 5, catalogActor))
		assert.False(t, category.IsActive)

		restored, err := svc.Restore(ctx, 5, catalogActor)
		require.NoError(t, err)
		assert.True(t, restored.IsActive)
		require.NotNil(t, restored.UpdatedAt)
		assert.Equal(t, catalogActor, *restored.UpdatedBy)
	})
}

func TestCategoryServicePaged(t *testing.T) {
	ctx := context.Background()

	t.Run("requires positive paging", func(t *testing.T) {
		svc, _, _ := newCategoryService(t)
		_, err := svc.Paged(ctx, shared.Filter{Page: 0, PageSize: 10})
		require.Error(t, err)
	})

	t.Run("combines the page with the total count", func(t *testing.T) {
		svc, repo, _ := newCategoryService(t)
		filter := shared.Filter{Page: 2, PageSize: 2}
		repo.On("FindAll", ctx, filter).Return([]catalog.Category{*storedCategory(t)}, nil)
		repo.On("Count", ctx, filter).Return(int64(3), nil)

		page, err := svc.Paged(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Items, 1)
	})
}
