// Package seed provisions the initial user and roles on startup. Seeding is
// idempotent: existing data is reused, never duplicated.
package seed

import (
	"context"
	"errors"
	"fmt"

	identityapp "github.com/Ammar-000/PointOfSale/internal/application/identity"
	"github.com/Ammar-000/PointOfSale/internal/domain/identity"
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"go.uber.org/zap"
)

// BootstrapUser is the account created on an empty user store. The password
// must be changed after first login.
type BootstrapUser struct {
	UserName    string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
}

// DefaultBootstrapUser returns the built-in first account
func DefaultBootstrapUser() BootstrapUser {
	return BootstrapUser{
		UserName:    "Ammar_1",
		FirstName:   "Ammar1",
		LastName:    "Tawfiq",
		Email:       "ammar1@gmail.com",
		PhoneNumber: "7335629291",
		Password:    "ChangeMe_123",
	}
}

var seededRoles = []struct {
	name        string
	description string
}{
	{identity.RoleAdmin, "System administrator."},
	{identity.RoleWaiter, "Serves customers and handles orders."},
}

// Seeder provisions the bootstrap user, the built-in roles and the first
// Admin membership through the regular services, so seeded rows carry audit
// stamps like any other row.
type Seeder struct {
	users     *identityapp.UserService
	roles     *identityapp.RoleService
	bootstrap BootstrapUser
	logger    *zap.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(users *identityapp.UserService, roles *identityapp.RoleService, bootstrap BootstrapUser, logger *zap.Logger) *Seeder {
	return &Seeder{
		users:     users,
		roles:     roles,
		bootstrap: bootstrap,
		logger:    logger,
	}
}

// Seed runs the full provisioning sequence
func (s *Seeder) Seed(ctx context.Context) error {
	user, err := s.seedUser(ctx)
	if err != nil {
		return fmt.Errorf("seeding user: %w", err)
	}

	adminRole, err := s.seedRoles(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("seeding roles: %w", err)
	}

	if err := s.seedAdmin(ctx, user, adminRole); err != nil {
		return fmt.Errorf("seeding admin membership: %w", err)
	}
	return nil
}

// seedUser returns the first existing user, creating the bootstrap account
// when the store is empty.
func (s *Seeder) seedUser(ctx context.Context) (*identity.User, error) {
	existing, err := s.users.List(ctx, shared.Filter{
		Page: 1, PageSize: 1,
		OrderBy: "createdAt", OrderDir: "asc",
		IncludeInactive: true,
	})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &existing[0], nil
	}

	user, err := s.users.CreateBootstrap(ctx, identityapp.CreateUserRequest{
		UserName:    s.bootstrap.UserName,
		FirstName:   s.bootstrap.FirstName,
		LastName:    s.bootstrap.LastName,
		Email:       s.bootstrap.Email,
		PhoneNumber: &s.bootstrap.PhoneNumber,
		Password:    s.bootstrap.Password,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("bootstrap user seeded", zap.String("userName", user.UserName), zap.String("id", user.ID))
	return user, nil
}

// seedRoles ensures the built-in roles exist and returns the Admin role
func (s *Seeder) seedRoles(ctx context.Context, actingUserID string) (*identity.Role, error) {
	var adminRole *identity.Role

	for _, spec := range seededRoles {
		role, err := s.roles.GetByName(ctx, spec.name)
		if err != nil {
			var domainErr *shared.DomainError
			if !errors.As(err, &domainErr) || domainErr.Code != shared.CodeNotFound {
				return nil, err
			}
			description := spec.description
			role, err = s.roles.Create(ctx, identityapp.CreateRoleRequest{
				Name:        spec.name,
				Description: &description,
			}, actingUserID)
			if err != nil {
				return nil, err
			}
			s.logger.Info("role seeded", zap.String("name", role.Name), zap.String("id", role.ID))
		}
		if role.Name == identity.RoleAdmin {
			adminRole = role
		}
	}
	return adminRole, nil
}

// seedAdmin puts the first user into the Admin role unless someone already
// holds it.
func (s *Seeder) seedAdmin(ctx context.Context, user *identity.User, adminRole *identity.Role) error {
	holders, err := s.users.GetUsersInRole(ctx, adminRole.ID)
	if err != nil {
		return err
	}
	if len(holders) > 0 {
		return nil
	}

	if err := s.users.AddToRole(ctx, user.ID, adminRole.ID, user.ID); err != nil {
		return err
	}
	s.logger.Info("admin membership seeded", zap.String("userName", user.UserName))
	return nil
}
