package catalog

import (
	"strings"

	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	maxProductNameLength        = 100
	maxProductDescriptionLength = 500
)

// Product is a sellable menu item. Price is the current selling price; orders
// snapshot it per line item so later price changes never rewrite history.
type Product struct {
	shared.SoftDeletableModel
	Name         string          `json:"name" gorm:"type:varchar(100);not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(18,2);not null"`
	Description  string          `json:"description" gorm:"type:varchar(500)"`
	ImageSubPath *string         `json:"imageSubPath" gorm:"type:varchar(260)"`
	CategoryID   int             `json:"categoryId" gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a product, validating its fields
func NewProduct(name string, price decimal.Decimal, description string, categoryID int) (*Product, error) {
	product := &Product{
		Name:        strings.TrimSpace(name),
		Price:       price,
		Description: strings.TrimSpace(description),
		CategoryID:  categoryID,
	}
	product.IsActive = true

	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces the product's editable fields
func (p *Product) Update(name string, price decimal.Decimal, description string, categoryID int) error {
	updated := *p
	updated.Name = strings.TrimSpace(name)
	updated.Price = price
	updated.Description = strings.TrimSpace(description)
	updated.CategoryID = categoryID
	if err := updated.Validate(); err != nil {
		return err
	}

	p.Name = updated.Name
	p.Price = price
	p.Description = updated.Description
	p.CategoryID = categoryID
	return nil
}

// HasImage reports whether an image is associated with the product
func (p *Product) HasImage() bool {
	return p.ImageSubPath != nil && *p.ImageSubPath != ""
}

// SetImageSubPath associates a stored image path with the product
func (p *Product) SetImageSubPath(subPath string) {
	p.ImageSubPath = &subPath
}

// ClearImageSubPath removes the image association
func (p *Product) ClearImageSubPath() {
	p.ImageSubPath = nil
}

// Validate checks the product's field-level rules
func (p *Product) Validate() *shared.DomainError {
	if p.Name == "" {
		return shared.NewValidationError("Product name is required")
	}
	if len(p.Name) > maxProductNameLength {
		return shared.NewValidationErrorf("Product name cannot exceed %d characters", maxProductNameLength)
	}
	if !p.Price.IsPositive() {
		return shared.NewValidationError("Product price must be greater than zero")
	}
	if len(p.Description) > maxProductDescriptionLength {
		return shared.NewValidationErrorf("Product description cannot exceed %d characters", maxProductDescriptionLength)
	}
	if p.CategoryID <= 0 {
		return shared.NewValidationError("Product category is required")
	}
	return nil
}
