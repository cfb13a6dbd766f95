package identity

import (
	"context"
	"errors"

	"github.com/Ammar-000/PointOfSale/internal/application/audit"
	"github.com/Ammar-000/PointOfSale/internal/domain/identity"
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateRoleRequest carries the fields of a new role
type CreateRoleRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateRoleRequest carries the editable fields of a role
type UpdateRoleRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// RoleService handles role management
type RoleService struct {
	roles   identity.RoleRepository
	stamper *audit.Stamper
	logger  *zap.Logger
}

// NewRoleService creates a new RoleService
func NewRoleService(roles identity.RoleRepository, stamper *audit.Stamper, logger *zap.Logger) *RoleService {
	return &RoleService{
		roles:   roles,
		stamper: stamper,
		logger:  logger,
	}
}

// GetByID retrieves a role by id. Inactive roles are returned only when
// includeInactive is set.
func (s *RoleService) GetByID(ctx context.Context, id string, includeInactive bool) (*identity.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "find role", zap.String("id", id))
	}
	if !includeInactive && !role.IsActive {
		return nil, shared.NewNotFoundError("Role", id)
	}
	return role, nil
}

// GetByName retrieves a role by exact name
func (s *RoleService) GetByName(ctx context.Context, name string) (*identity.Role, error) {
	role, err := s.roles.FindByName(ctx, name)
	if err != nil {
		return nil, s.wrap(err, "find role by name", zap.String("name", name))
	}
	return role, nil
}

// List retrieves roles matching the filter
func (s *RoleService) List(ctx context.Context, filter shared.Filter) ([]identity.Role, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	roles, err := s.roles.FindAll(ctx, filter)
	if err != nil {
		return nil, s.wrap(err, "list roles")
	}
	return roles, nil
}

// Count counts roles matching the filter
func (s *RoleService) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	count, err := s.roles.Count(ctx, filter)
	if err != nil {
		return 0, s.wrap(err, "count roles")
	}
	return count, nil
}

// Create creates a role, stamped with the acting user
func (s *RoleService) Create(ctx context.Context, req CreateRoleRequest, actingUserID string) (*identity.Role, error) {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}
	if existing, err := s.roles.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.NewDomainErrorf(shared.CodeAlreadyExists, "Role %q already exists", req.Name)
	}

	role, err := identity.NewRole(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	role.StampCreated(s.stamper.Now(), actingUserID)

	if err := s.roles.Save(ctx, role); err != nil {
		return nil, s.wrap(err, "save role")
	}
	s.logger.Info("role created", zap.String("id", role.ID), zap.String("name", role.Name), zap.String("by", actingUserID))
	return role, nil
}

// Update updates a role. The stored row must be active.
func (s *RoleService) Update(ctx context.Context, id string, req UpdateRoleRequest, actingUserID string) (*identity.Role, error) {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}

	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "find role", zap.String("id", id))
	}
	if !role.IsActive {
		return nil, shared.NewInactiveError("Role", id)
	}

	role.Name = req.Name
	role.Description = req.Description
	if err := role.Validate(); err != nil {
		return nil, err
	}
	role.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.roles.Save(ctx, role); err != nil {
		return nil, s.wrap(err, "save role", zap.String("id", id))
	}
	s.logger.Info("role updated", zap.String("id", id), zap.String("by", actingUserID))
	return role, nil
}

// SoftDelete deactivates a role
func (s *RoleService) SoftDelete(ctx context.Context, id string, actingUserID string) error {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return err
	}

	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return s.wrap(err, "find role", zap.String("id", id))
	}
	role.IsActive = false
	role.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.roles.Save(ctx, role); err != nil {
		return s.wrap(err, "save role", zap.String("id", id))
	}
	s.logger.Info("role soft-deleted", zap.String("id", id), zap.String("by", actingUserID))
	return nil
}

// Restore reactivates a role and returns the refreshed row
func (s *RoleService) Restore(ctx context.Context, id string, actingUserID string) (*identity.Role, error) {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}

	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "find role", zap.String("id", id))
	}
	role.IsActive = true
	role.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.roles.Save(ctx, role); err != nil {
		return nil, s.wrap(err, "save role", zap.String("id", id))
	}
	s.logger.Info("role restored", zap.String("id", id), zap.String("by", actingUserID))
	return role, nil
}

func (s *RoleService) wrap(err error, op string, fields ...zap.Field) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	s.logger.Error("role storage failure", append(fields, zap.String("op", op), zap.Error(err))...)
	return shared.ErrInternal
}
