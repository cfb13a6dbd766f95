package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Ammar-000/PointOfSale/internal/domain/identity"
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *GormUserRepository, userName string, active bool) *identity.User {
	t.Helper()
	user, err := identity.NewUser(userName, "Test", "User", userName+"@example.com", nil, "Passw0rd1")
	require.NoError(t, err)
	user.IsActive = active
	user.StampCreated(time.Now().UTC(), user.ID)
	require.NoError(t, repo.Save(context.Background(), user))
	return user
}

func seedRole(t *testing.T, repo *GormRoleRepository, name string) *identity.Role {
	t.Helper()
	role, err := identity.NewRole(name, nil)
	require.NoError(t, err)
	role.StampCreated(time.Now().UTC(), "seed-user")
	require.NoError(t, repo.Save(context.Background(), role))
	return role
}

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("find by username", func(t *testing.T) {
		repo := NewGormUserRepository(newTestDB(t))
		seedUser(t, repo, "amira_1", true)

		user, err := repo.FindByUserName(ctx, "amira_1")
		require.NoError(t, err)
		assert.Equal(t, "amira_1", user.UserName)

		_, err = repo.FindByUserName(ctx, "nobody")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("exists active ignores inactive accounts", func(t *testing.T) {
		repo := NewGormUserRepository(newTestDB(t))
		active := seedUser(t, repo, "active_1", true)
		inactive := seedUser(t, repo, "inactive_1", false)

		ok, err := repo.ExistsActive(ctx, active.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsActive(ctx, inactive.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.ExistsActive(ctx, "missing-id")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("default listing excludes inactive users", func(t *testing.T) {
		repo := NewGormUserRepository(newTestDB(t))
		seedUser(t, repo, "active_1", true)
		seedUser(t, repo, "inactive_1", false)

		visible, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, visible, 1)
		assert.Equal(t, "active_1", visible[0].UserName)

		count, err := repo.Count(ctx, shared.Filter{IncludeInactive: true})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("save persists lockout state", func(t *testing.T) {
		repo := NewGormUserRepository(newTestDB(t))
		user := seedUser(t, repo, "amira_1", true)

		now := time.Now().UTC().Truncate(time.Second)
		for i := 0; i < identity.MaxLoginAttempts; i++ {
			user.RecordLoginFailure(now)
		}
		require.NoError(t, repo.Save(ctx, user))

		loaded, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.MaxLoginAttempts, loaded.FailedLoginAttempts)
		assert.True(t, loaded.IsLocked(now))
	})
}

func TestGormUserRepositoryRoles(t *testing.T) {
	ctx := context.Background()

	t.Run("add, list and remove membership", func(t *testing.T) {
		db := newTestDB(t)
		users := NewGormUserRepository(db)
		roles := NewGormRoleRepository(db)

		user := seedUser(t, users, "amira_1", true)
		admin := seedRole(t, roles, identity.RoleAdmin)
		waiter := seedRole(t, roles, identity.RoleWaiter)

		require.NoError(t, users.AddRole(ctx, user.ID, admin.ID))
		require.NoError(t, users.AddRole(ctx, user.ID, waiter.ID))

		held, err := users.FindRoles(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, held, 2)

		require.NoError(t, users.RemoveRole(ctx, user.ID, waiter.ID))
		held, err = users.FindRoles(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, held, 1)
		assert.Equal(t, identity.RoleAdmin, held[0].Name)
	})

	t.Run("adding the same role twice is a no-op", func(t *testing.T) {
		db := newTestDB(t)
		users := NewGormUserRepository(db)
		roles := NewGormRoleRepository(db)

		user := seedUser(t, users, "amira_1", true)
		admin := seedRole(t, roles, identity.RoleAdmin)

		require.NoError(t, users.AddRole(ctx, user.ID, admin.ID))
		require.NoError(t, users.AddRole(ctx, user.ID, admin.ID))

		held, err := users.FindRoles(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, held, 1)
	})

	t.Run("find users in role", func(t *testing.T) {
		db := newTestDB(t)
		users := NewGormUserRepository(db)
		roles := NewGormRoleRepository(db)

		first := seedUser(t, users, "first_1", true)
		second := seedUser(t, users, "second_1", true)
		seedUser(t, users, "outsider_1", true)
		waiter := seedRole(t, roles, identity.RoleWaiter)

		require.NoError(t, users.AddRole(ctx, first.ID, waiter.ID))
		require.NoError(t, users.AddRole(ctx, second.ID, waiter.ID))

		holders, err := users.FindUsersInRole(ctx, waiter.ID)
		require.NoError(t, err)
		assert.Len(t, holders, 2)
	})
}

func TestGormRoleRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("find by name", func(t *testing.T) {
		repo := NewGormRoleRepository(newTestDB(t))
		seedRole(t, repo, identity.RoleAdmin)

		role, err := repo.FindByName(ctx, identity.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleAdmin, role.Name)

		_, err = repo.FindByName(ctx, "Chef")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("default listing excludes inactive roles", func(t *testing.T) {
		repo := NewGormRoleRepository(newTestDB(t))
		seedRole(t, repo, identity.RoleAdmin)
		retired := seedRole(t, repo, "Retired")
		retired.IsActive = false
		require.NoError(t, repo.Save(ctx, retired))

		visible, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, visible, 1)
		assert.Equal(t, identity.RoleAdmin, visible[0].Name)
	})
}
