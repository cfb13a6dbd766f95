package persistence

import (
	"context"
	"errors"

	"github.com/Ammar-000/PointOfSale/internal/domain/identity"
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM. Role membership
// lives in the user_roles join table managed through the Roles association.
type GormUserRepository struct {
	db     *gorm.DB
	filter identityFilter
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{
		db: db,
		filter: identityFilter{
			columns: map[string]string{
				"id":        "id",
				"userName":  "user_name",
				"firstName": "first_name",
				"lastName":  "last_name",
				"email":     "email",
				"isActive":  "is_active",
				"createdAt": "created_at",
				"updatedAt": "updated_at",
			},
			likeColumns: map[string]bool{
				"userName":  true,
				"firstName": true,
				"lastName":  true,
				"email":     true,
			},
		},
	}
}

// FindByID finds a user by id with roles preloaded, inactive included
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).Preload("Roles").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindAll finds all users matching the filter
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	var users []identity.User
	query := r.filter.apply(r.db.WithContext(ctx).Model(&identity.User{}), filter)

	if err := query.Preload("Roles").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Count counts users matching the filter
func (r *GormUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.filter.applyWithoutPagination(r.db.WithContext(ctx).Model(&identity.User{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a user. Role membership is managed through AddRole
// and RemoveRole, never through Save.
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Omit("Roles").Save(user).Error
}

// FindByUserName fetches a user by exact username, inactive included
func (r *GormUserRepository) FindByUserName(ctx context.Context, userName string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "user_name = ?", userName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ExistsActive reports whether an active user with the id exists
func (r *GormUserRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddRole adds the user to a role. The association append is an upsert on the
// join table, so adding twice is a no-op.
func (r *GormUserRepository) AddRole(ctx context.Context, userID, roleID string) error {
	user := identity.User{ID: userID}
	role := identity.Role{ID: roleID}
	return r.db.WithContext(ctx).
		Model(&user).
		Omit("Roles.*").
		Association("Roles").
		Append(&role)
}

// RemoveRole removes the user from a role
func (r *GormUserRepository) RemoveRole(ctx context.Context, userID, roleID string) error {
	user := identity.User{ID: userID}
	role := identity.Role{ID: roleID}
	return r.db.WithContext(ctx).
		Model(&user).
		Association("Roles").
		Delete(&role)
}

// FindRoles returns the roles a user belongs to
func (r *GormUserRepository) FindRoles(ctx context.Context, userID string) ([]identity.Role, error) {
	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Roles, nil
}

// FindUsersInRole returns the users holding a role
func (r *GormUserRepository) FindUsersInRole(ctx context.Context, roleID string) ([]identity.User, error) {
	var users []identity.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.role_id = ?", roleID).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
