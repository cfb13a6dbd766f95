package identity

import (
	"context"

	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
)

// UserRepository defines the interface for user persistence and role
// membership. Users are soft-deletable.
type UserRepository interface {
	shared.SoftDeletableRepository[User, string]

	// FindByUserName fetches a user by exact username, inactive included.
	FindByUserName(ctx context.Context, userName string) (*User, error)

	// ExistsActive reports whether an active user with the id exists.
	// Used as the acting-user guard before any mutation.
	ExistsActive(ctx context.Context, id string) (bool, error)

	// AddRole adds the user to a role; adding twice is a no-op.
	AddRole(ctx context.Context, userID, roleID string) error

	// RemoveRole removes the user from a role.
	RemoveRole(ctx context.Context, userID, roleID string) error

	// FindRoles returns the roles a user belongs to.
	FindRoles(ctx context.Context, userID string) ([]Role, error)

	// FindUsersInRole returns the users holding a role.
	FindUsersInRole(ctx context.Context, roleID string) ([]User, error)
}

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	shared.SoftDeletableRepository[Role, string]

	// FindByName fetches a role by exact name.
	FindByName(ctx context.Context, name string) (*Role, error)
}
