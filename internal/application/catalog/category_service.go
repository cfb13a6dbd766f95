package catalog

import (
	"context"
	"errors"

	"github.com/Ammar-000/PointOfSale/internal/application/audit"
	"github.com/Ammar-000/PointOfSale/internal/domain/catalog"
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateCategoryRequest carries the fields a caller may set on a new category
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateCategoryRequest carries the fields a caller may change on a category
type UpdateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryService handles category business operations
type CategoryService struct {
	categories catalog.CategoryRepository
	stamper    *audit.Stamper
	logger     *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories catalog.CategoryRepository, stamper *audit.Stamper, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		stamper:    stamper,
		logger:     logger,
	}
}

// GetByID retrieves a category by id. Inactive categories are returned only
// when includeInactive is set.
func (s *CategoryService) GetByID(ctx context.Context, id int, includeInactive bool) (*catalog.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "find category", zap.Int("id", id))
	}
	if !includeInactive && !category.IsActive {
		return nil, shared.NewNotFoundError("Category", id)
	}
	return category, nil
}

// List retrieves categories matching the filter
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	categories, err := s.categories.FindAll(ctx, filter)
	if err != nil {
		return nil, s.wrap(err, "list categories")
	}
	return categories, nil
}

// Count counts categories matching the filter
func (s *CategoryService) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	count, err := s.categories.Count(ctx, filter)
	if err != nil {
		return 0, s.wrap(err, "count categories")
	}
	return count, nil
}

// Paged retrieves one page of categories together with the total count
func (s *CategoryService) Paged(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.Category], error) {
	var empty shared.Paginated[catalog.Category]
	if filter.Page <= 0 || filter.PageSize <= 0 {
		return empty, shared.NewValidationError("Page and page size must be greater than zero")
	}
	items, err := s.List(ctx, filter)
	if err != nil {
		return empty, err
	}
	total, err := s.Count(ctx, filter)
	if err != nil {
		return empty, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Create creates a category, stamping it with the acting user
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest, actingUserID string) (*catalog.Category, error) {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}

	category, err := catalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	category.StampCreated(s.stamper.Now(), actingUserID)

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, s.wrap(err, "save category")
	}
	s.logger.Info("category created", zap.Int("id", category.ID), zap.String("by", actingUserID))
	return category, nil
}

// Update updates a category. The stored row must be active; soft-deleted
// categories must be restored first.
func (s *CategoryService) Update(ctx context.Context, id int, req UpdateCategoryRequest, actingUserID string) (*catalog.Category, error) {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "find category", zap.Int("id", id))
	}
	if !category.IsActive {
		return nil, shared.NewInactiveError("Category", id)
	}

	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	category.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, s.wrap(err, "save category", zap.Int("id", id))
	}
	s.logger.Info("category updated", zap.Int("id", id), zap.String("by", actingUserID))
	return category, nil
}

// SoftDelete flips the category inactive
func (s *CategoryService) SoftDelete(ctx context.Context, id int, actingUserID string) error {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return err
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return s.wrap(err, "find category", zap.Int("id", id))
	}
	category.Deactivate()
	category.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.categories.Save(ctx, category); err != nil {
		return s.wrap(err, "save category", zap.Int("id", id))
	}
	s.logger.Info("category soft-deleted", zap.Int("id", id), zap.String("by", actingUserID))
	return nil
}

// Restore flips the category active again and returns the refreshed row
func (s *CategoryService) Restore(ctx context.Context, id int, actingUserID string) (*catalog.Category, error) {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "find category", zap.Int("id", id))
	}
	category.Activate()
	category.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, s.wrap(err, "save category", zap.Int("id", id))
	}
	s.logger.Info("category restored", zap.Int("id", id), zap.String("by", actingUserID))
	return category, nil
}

// wrap passes domain errors through untouched and hides storage errors behind
// a generic failure after logging them.
func (s *CategoryService) wrap(err error, op string, fields ...zap.Field) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	s.logger.Error("category storage failure", append(fields, zap.String("op", op), zap.Error(err))...)
	return shared.ErrInternal
}
