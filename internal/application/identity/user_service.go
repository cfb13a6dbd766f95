package identity

import (
	"context"
	"errors"
	"time"

	"github.com/Ammar-000/PointOfSale/internal/application/audit"
	"github.com/Ammar-000/PointOfSale/internal/domain/identity"
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateUserRequest carries the fields of a new account
type CreateUserRequest struct {
	UserName    string  `json:"userName"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Password    string  `json:"password"`
}

// UpdateUserRequest carries the editable profile fields of an account
type UpdateUserRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
}

// UserService handles account management and role membership
type UserService struct {
	users   identity.UserRepository
	roles   identity.RoleRepository
	stamper *audit.Stamper
	logger  *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository, roles identity.RoleRepository, stamper *audit.Stamper, logger *zap.Logger) *UserService {
	return &UserService{
		users:   users,
		roles:   roles,
		stamper: stamper,
		logger:  logger,
	}
}

// GetByID retrieves a user by id. Inactive users are returned only when
// includeInactive is set.
func (s *UserService) GetByID(ctx context.Context, id string, includeInactive bool) (*identity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "find user", zap.String("id", id))
	}
	if !includeInactive && !user.IsActive {
		return nil, shared.NewNotFoundError("User", id)
	}
	return user, nil
}

// List retrieves users matching the filter
func (s *UserService) List(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	users, err := s.users.FindAll(ctx, filter)
	if err != nil {
		return nil, s.wrap(err, "list users")
	}
	return users, nil
}

// Count counts users matching the filter
func (s *UserService) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	count, err := s.users.Count(ctx, filter)
	if err != nil {
		return 0, s.wrap(err, "count users")
	}
	return count, nil
}

// Paged retrieves one page of users together with the total count
func (s *UserService) Paged(ctx context.Context, filter shared.Filter) (shared.Paginated[identity.User], error) {
	var empty shared.Paginated[identity.User]
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

// Create creates an account, stamped with the acting user
func (s *UserService) Create(ctx context.Context, req CreateUserRequest, actingUserID string) (*identity.User, error) {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}
	return s.create(ctx, req, actingUserID)
}

// CreateBootstrap creates the first account when no users exist yet, so
// there is no acting user to verify. The account is stamped as created by
// itself. Only the startup seeder uses this path.
func (s *UserService) CreateBootstrap(ctx context.Context, req CreateUserRequest) (*identity.User, error) {
	count, err := s.users.Count(ctx, shared.Filter{IncludeInactive: true})
	if err != nil {
		return nil, s.wrap(err, "count users")
	}
	if count > 0 {
		return nil, shared.NewDomainError(shared.CodeConflict, "Bootstrap user can only be created on an empty user store")
	}
	return s.create(ctx, req, "")
}

func (s *UserService) create(ctx context.Context, req CreateUserRequest, actingUserID string) (*identity.User, error) {
	if existing, err := s.users.FindByUserName(ctx, req.UserName); err == nil && existing != nil {
		return nil, shared.NewDomainErrorf(shared.CodeAlreadyExists, "Username %q is already taken", req.UserName)
	}

	user, err := identity.NewUser(req.UserName, req.FirstName, req.LastName, req.Email, req.PhoneNumber, req.Password)
	if err != nil {
		return nil, err
	}
	createdBy := actingUserID
	if createdBy == "" {
		createdBy = user.ID
	}
	user.StampCreated(s.stamper.Now(), createdBy)

	if err := s.users.Save(ctx, user); err != nil {
		return nil, s.wrap(err, "save user")
	}
	s.logger.Info("user created", zap.String("id", user.ID), zap.String("userName", user.UserName))
	return user, nil
}

// Update updates an account's profile. The stored row must be active.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest, actingUserID string) (*identity.User, error) {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "find user", zap.String("id", id))
	}
	if !user.IsActive {
		return nil, shared.NewInactiveError("User", id)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	user.PhoneNumber = req.PhoneNumber
	if err := user.Validate(); err != nil {
		return nil, err
	}
	user.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.users.Save(ctx, user); err != nil {
		return nil, s.wrap(err, "save user", zap.String("id", id))
	}
	s.logger.Info("user updated", zap.String("id", id), zap.String("by", actingUserID))
	return user, nil
}

// SoftDelete deactivates an account
func (s *UserService) SoftDelete(ctx context.Context, id string, actingUserID string) error {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return s.wrap(err, "find user", zap.String("id", id))
	}
	user.Deactivate()
	user.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.users.Save(ctx, user); err != nil {
		return s.wrap(err, "save user", zap.String("id", id))
	}
	s.logger.Info("user soft-deleted", zap.String("id", id), zap.String("by", actingUserID))
	return nil
}

// Restore reactivates an account and returns the refreshed row
func (s *UserService) Restore(ctx context.Context, id string, actingUserID string) (*identity.User, error) {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "find user", zap.String("id", id))
	}
	user.Activate()
	user.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.users.Save(ctx, user); err != nil {
		return nil, s.wrap(err, "save user", zap.String("id", id))
	}
	s.logger.Info("user restored", zap.String("id", id), zap.String("by", actingUserID))
	return user, nil
}

// ChangePassword lets a user replace their own password after proving the
// current one.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return s.wrap(err, "find user", zap.String("id", userID))
	}
	if !user.IsActive {
		return shared.NewInactiveError("User", userID)
	}
	if !user.CheckPassword(currentPassword) {
		return shared.NewDomainError(shared.CodeInvalidCredentials, "Current password is incorrect")
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	user.StampUpdated(s.stamper.Now(), userID)

	if err := s.users.Save(ctx, user); err != nil {
		return s.wrap(err, "save user", zap.String("id", userID))
	}
	s.logger.Info("password changed", zap.String("id", userID))
	return nil
}

// ResetPassword sets a new password without the current one. Admin only.
func (s *UserService) ResetPassword(ctx context.Context, userID, newPassword, actingUserID string) error {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return s.wrap(err, "find user", zap.String("id", userID))
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	user.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.users.Save(ctx, user); err != nil {
		return s.wrap(err, "save user", zap.String("id", userID))
	}
	s.logger.Info("password reset", zap.String("id", userID), zap.String("by", actingUserID))
	return nil
}

// Lock locks an account until the given time
func (s *UserService) Lock(ctx context.Context, userID string, until time.Time, actingUserID string) error {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return s.wrap(err, "find user", zap.String("id", userID))
	}
	user.Lock(until)
	user.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.users.Save(ctx, user); err != nil {
		return s.wrap(err, "save user", zap.String("id", userID))
	}
	s.logger.Info("user locked", zap.String("id", userID), zap.Time("until", until), zap.String("by", actingUserID))
	return nil
}

// Unlock clears an account's lock window and failure counter
func (s *UserService) Unlock(ctx context.Context, userID, actingUserID string) error {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return s.wrap(err, "find user", zap.String("id", userID))
	}
	user.Unlock()
	user.StampUpdated(s.stamper.Now(), actingUserID)

	if err := s.users.Save(ctx, user); err != nil {
		return s.wrap(err, "save user", zap.String("id", userID))
	}
	s.logger.Info("user unlocked", zap.String("id", userID), zap.String("by", actingUserID))
	return nil
}

// AddToRole adds a user to a role; adding twice is a no-op
func (s *UserService) AddToRole(ctx context.Context, userID, roleID, actingUserID string) error {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return s.wrap(err, "find user", zap.String("id", userID))
	}
	if _, err := s.roles.FindByID(ctx, roleID); err != nil {
		return s.wrap(err, "find role", zap.String("id", roleID))
	}

	if err := s.users.AddRole(ctx, userID, roleID); err != nil {
		return s.wrap(err, "add role", zap.String("userId", userID), zap.String("roleId", roleID))
	}
	s.logger.Info("user added to role",
		zap.String("userId", userID), zap.String("roleId", roleID), zap.String("by", actingUserID))
	return nil
}

// RemoveFromRole removes a user from a role
func (s *UserService) RemoveFromRole(ctx context.Context, userID, roleID, actingUserID string) error {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return err
	}
	if err := s.users.RemoveRole(ctx, userID, roleID); err != nil {
		return s.wrap(err, "remove role", zap.String("userId", userID), zap.String("roleId", roleID))
	}
	s.logger.Info("user removed from role",
		zap.String("userId", userID), zap.String("roleId", roleID), zap.String("by", actingUserID))
	return nil
}

// GetRolesOfUser returns the roles a user belongs to
func (s *UserService) GetRolesOfUser(ctx context.Context, userID string) ([]identity.Role, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, s.wrap(err, "find user", zap.String("id", userID))
	}
	roles, err := s.users.FindRoles(ctx, userID)
	if err != nil {
		return nil, s.wrap(err, "find roles", zap.String("userId", userID))
	}
	return roles, nil
}

// GetUsersInRole returns the users holding a role
func (s *UserService) GetUsersInRole(ctx context.Context, roleID string) ([]identity.User, error) {
	if _, err := s.roles.FindByID(ctx, roleID); err != nil {
		return nil, s.wrap(err, "find role", zap.String("id", roleID))
	}
	users, err := s.users.FindUsersInRole(ctx, roleID)
	if err != nil {
		return nil, s.wrap(err, "find users in role", zap.String("roleId", roleID))
	}
	return users, nil
}

func (s *UserService) wrap(err error, op string, fields ...zap.Field) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	s.logger.Error("identity storage failure", append(fields, zap.String("op", op), zap.Error(err))...)
	return shared.ErrInternal
}
