package catalog

import (
	"strings"

	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
)

const (
	maxCategoryNameLength        = 100
	maxCategoryDescriptionLength = 500
)

// Category groups products on the menu. Categories are soft-deletable: an
// inactive category keeps its products but disappears from default listings.
type Category struct {
	shared.SoftDeletableModel
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
	Products    []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a category, validating its fields
func NewCategory(name, description string) (*Category, error) {
	category := &Category{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	category.IsActive = true

	if err := category.Validate(); err != nil {
		return nil, err
	}
	return category, nil
}

// Update replaces the category's editable fields
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	updated := *c
	updated.Name = name
	updated.Description = description
	if err := updated.Validate(); err != nil {
		return err
	}

	c.Name = name
	c.Description = description
	return nil
}

// Validate checks the category's field-level rules
func (c *Category) Validate() *shared.DomainError {
	if c.Name == "" {
		return shared.NewValidationError("Category name is required")
	}
	if len(c.Name) > maxCategoryNameLength {
		return shared.NewValidationErrorf("Category name cannot exceed %d characters", maxCategoryNameLength)
	}
	if len(c.Description) > maxCategoryDescriptionLength {
		return shared.NewValidationErrorf("Category description cannot exceed %d characters", maxCategoryDescriptionLength)
	}
	return nil
}
