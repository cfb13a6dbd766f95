package catalog

import (
	"context"
	"errors"

	"github.com/Ammar-000/PointOfSale/internal/application/audit"
	"github.com/Ammar-000/PointOfSale/internal/application/media"
	"github.com/Ammar-000/PointOfSale/internal/domain/catalog"
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest carries the fields a caller may set on a new product
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CategoryID  int             `json:"categoryId"`
}

// UpdateProductRequest carries the fields a caller may change on a product
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CategoryID  int             `json:"categoryId"`
}

// ProductService handles product business operations. It is also the image
// host for product images: the image service persists image paths through it
// so path changes are audit-stamped like any other update.
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	stamper    *audit.Stamper
	logger     *zap.Logger
}

// Ensure ProductService can host product images
var _ media.ImageHost = (*ProductService)(nil)

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, categories catalog.CategoryRepository, stamper *audit.Stamper, logger *zap.Logger) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		stamper:    stamper,
		logger:     logger,
	}
}

// GetByID retrieves a product by id. Inactive products are returned only when
// includeInactive is set.
func (s *ProductService) GetByID(ctx context.Context, id int, includeInactive bool) (*catalog.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "find product", zap.Int("id", id))
	}
	if !includeInactive && !product.IsActive {
		return nil, shared.NewNotFoundError("Product", id)
	}
	return product, nil
}

// List retrieves products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, s.wrap(err, "list products")
	}
	return products, nil
}

// Count counts products matching the filter
func (s *ProductService) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	count, err := s.products.Count(ctx, filter)
	if err != nil {
		return 0, s.wrap(err, "count products")
	}
	return count, nil
}

// Paged retrieves one page of products together with the total count
func (s *ProductService) Paged(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	var empty shared.Paginated[catalog.Product]
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

// Create creates a product under an existing active category
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, actingUserID string) (*catalog.Product, error) {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Price, req.Description, req.CategoryID)
	if err != nil {
		return nil, err
	}
	product.StampCreated(s.stamper.Now(), actingUserID)

	if err := s.products.Save(ctx, product); err != nil {
		return nil, s.wrap(err, "save product")
	}
	s.logger.Info("product created", zap.Int("id", product.ID), zap.String("by", actingUserID))
	return product, nil
}

// Update updates a product. The stored row must be active.
func (s *ProductService) Update(ctx context.Context, id int, req UpdateProductRequest, actingUserID string) (*catalog.Product, error) {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "find product", zap.Int("id", id))
	}
	if !product.IsActive {
		return nil, shared.NewInactiveError("Product", id)
	}
	if req.CategoryID != product.CategoryID {
		if err := s.checkCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := product.Update(req.Name, req.Price, req.Description, req.CategoryID); err != nil {
		return nil, err
	}
	product.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.products.Save(ctx, product); err != nil {
		return nil, s.wrap(err, "save product", zap.Int("id", id))
	}
	s.logger.Info("product updated", zap.Int("id", id), zap.String("by", actingUserID))
	return product, nil
}

// SoftDelete flips the product inactive
func (s *ProductService) SoftDelete(ctx context.Context, id int, actingUserID string) error {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return s.wrap(err, "find product", zap.Int("id", id))
	}
	product.Deactivate()
	product.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.products.Save(ctx, product); err != nil {
		return s.wrap(err, "save product", zap.Int("id", id))
	}
	s.logger.Info("product soft-deleted", zap.Int("id", id), zap.String("by", actingUserID))
	return nil
}

// Restore flips the product active again and returns the refreshed row
func (s *ProductService) Restore(ctx context.Context, id int, actingUserID string) (*catalog.Product, error) {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "find product", zap.Int("id", id))
	}
	product.Activate()
	product.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.products.Save(ctx, product); err != nil {
		return nil, s.wrap(err, "save product", zap.Int("id", id))
	}
	s.logger.Info("product restored", zap.Int("id", id), zap.String("by", actingUserID))
	return product, nil
}

// EntityName implements media.ImageHost
func (s *ProductService) EntityName() string {
	return "Product"
}

// SubDirectory implements media.ImageHost
func (s *ProductService) SubDirectory() string {
	return "products"
}

// ImageSubPath implements media.ImageHost
func (s *ProductService) ImageSubPath(ctx context.Context, entityID int) (*string, error) {
	product, err := s.GetByID(ctx, entityID, false)
	if err != nil {
		return nil, err
	}
	return product.ImageSubPath, nil
}

// SaveImageSubPath implements media.ImageHost
func (s *ProductService) SaveImageSubPath(ctx context.Context, entityID int, subPath, actingUserID string) error {
	return s.updateImageSubPath(ctx, entityID, &subPath, actingUserID)
}

// ClearImageSubPath implements media.ImageHost
func (s *ProductService) ClearImageSubPath(ctx context.Context, entityID int, actingUserID string) error {
	return s.updateImageSubPath(ctx, entityID, nil, actingUserID)
}

func (s *ProductService) updateImageSubPath(ctx context.Context, entityID int, subPath *string, actingUserID string) error {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return err
	}

	product, err := s.products.FindByID(ctx, entityID)
	if err != nil {
		return s.wrap(err, "find product", zap.Int("id", entityID))
	}
	if !product.IsActive {
		return shared.NewInactiveError("Product", entityID)
	}

	if subPath != nil {
		product.SetImageSubPath(*subPath)
	} else {
		product.ClearImageSubPath()
	}
	product.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.products.Save(ctx, product); err != nil {
		return s.wrap(err, "save product", zap.Int("id", entityID))
	}
	return nil
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID int) error {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.CodeNotFound {
			return shared.NewValidationErrorf("Category with id %d does not exist", categoryID)
		}
		return s.wrap(err, "find category", zap.Int("categoryId", categoryID))
	}
	if !category.IsActive {
		return shared.NewValidationErrorf("Category with id %d is inactive", categoryID)
	}
	return nil
}

func (s *ProductService) wrap(err error, op string, fields ...zap.Field) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	s.logger.Error("product storage failure", append(fields, zap.String("op", op), zap.Error(err))...)
	return shared.ErrInternal
}
