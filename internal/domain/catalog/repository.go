package catalog

import (
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence.
// Categories are soft-deletable; the products foreign key restricts physical
// deletion at the storage level.
type CategoryRepository interface {
	shared.SoftDeletableRepository[Category, int]
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	shared.SoftDeletableRepository[Product, int]
}
