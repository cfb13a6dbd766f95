package identity

import (
	"strings"

	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"github.com/google/uuid"
)

// Well-known role names. Route authorization is keyed on these.
const (
	RoleAdmin  = "Admin"
	RoleWaiter = "Waiter"
)

const maxRoleNameLength = 50

// Role is a named authorization group. Role names are embedded as claims in
// issued tokens, looked up fresh at login.
type Role struct {
	ID string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	shared.AuditStamp
	Name        string  `json:"name" gorm:"type:varchar(50);not null;uniqueIndex"`
	Description *string `json:"description" gorm:"type:varchar(500)"`
	IsActive    bool    `json:"isActive" gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a role, validating its fields
func NewRole(name string, description *string) (*Role, error) {
	role := &Role{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(name),
		IsActive: true,
	}
	if description != nil && strings.TrimSpace(*description) != "" {
		trimmed := strings.TrimSpace(*description)
		role.Description = &trimmed
	}

	if err := role.Validate(); err != nil {
		return nil, err
	}
	return role, nil
}

// Validate checks the role's field-level rules
func (r *Role) Validate() *shared.DomainError {
	if r.Name == "" {
		return shared.NewValidationError("Role name is required")
	}
	if len(r.Name) > maxRoleNameLength {
		return shared.NewValidationErrorf("Role name cannot exceed %d characters", maxRoleNameLength)
	}
	return nil
}
