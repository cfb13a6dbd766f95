package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ammar-000/PointOfSale/internal/domain/ordering"
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, repo *GormOrderRepository, tableNumber int) *ordering.Order {
	t.Helper()

	item1, err := ordering.NewOrderItem(1, 2, decimal.NewFromFloat(5.00))
	require.NoError(t, err)
	item2, err := ordering.NewOrderItem(2, 1, decimal.NewFromFloat(3.50))
	require.NoError(t, err)

	order, err := ordering.NewOrder(tableNumber, []ordering.OrderItem{*item1, *item2})
	require.NoError(t, err)
	order.StampCreated(time.Now().UTC().Truncate(time.Second), "seed-user")
	for i := range order.Items {
		order.Items[i].InheritCreated(order.AuditStamp)
	}

	require.NoError(t, repo.Save(context.Background(), order))
	require.NotZero(t, order.ID)
	return order
}

func TestGormOrderRepositorySave(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	ctx := context.Background()

	order := seedOrder(t, repo, 7)

	loaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.TableNumber)
	assert.True(t, loaded.TotalPrice.Equal(decimal.NewFromFloat(13.50)))
	require.Len(t, loaded.Items, 2)
	for _, item := range loaded.Items {
		assert.Equal(t, order.ID, item.OrderID)
		assert.NotZero(t, item.ID)
	}
}

func TestGormOrderRepositoryAuditStampsPersist(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	ctx := context.Background()

	createdAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	item, err := ordering.NewOrderItem(1, 2, decimal.NewFromFloat(5.00))
	require.NoError(t, err)
	order, err := ordering.NewOrder(7, []ordering.OrderItem{*item})
	require.NoError(t, err)
	order.StampCreated(createdAt, "creator-user")
	order.Items[0].InheritCreated(order.AuditStamp)
	require.NoError(t, repo.Save(ctx, order))

	// the stamped creation instant must round-trip and the update fields must
	// stay empty until the first update
	loaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, loaded.CreatedAt.Equal(createdAt), "order CreatedAt stored as %v", loaded.CreatedAt)
	assert.Nil(t, loaded.UpdatedAt, "order UpdatedAt set on create")
	assert.Nil(t, loaded.UpdatedBy)
	require.Len(t, loaded.Items, 1)
	assert.True(t, loaded.Items[0].CreatedAt.Equal(createdAt))
	assert.Nil(t, loaded.Items[0].UpdatedAt, "item UpdatedAt set on create")

	edited, err := ordering.NewOrderItem(1, 3, decimal.NewFromFloat(5.00))
	require.NoError(t, err)
	edited.ID = order.Items[0].ID
	updated, err := ordering.NewOrder(7, []ordering.OrderItem{*edited})
	require.NoError(t, err)
	updated.ID = order.ID

	err = repo.SaveReconciled(ctx, updated, func(stored *ordering.Order) error {
		updated.InheritCreated(stored.AuditStamp)
		updated.StampUpdated(updatedAt, "editor-user")
		updated.Items[0].OrderID = updated.ID
		updated.Items[0].InheritCreated(stored.Items[0].AuditStamp)
		updated.Items[0].StampUpdated(updatedAt, "editor-user")
		return nil
	})
	require.NoError(t, err)

	// the stored update instant must be exactly the stamped one, shared by
	// the order and its items, with the creation stamp untouched
	loaded, err = repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, loaded.CreatedAt.Equal(createdAt))
	require.NotNil(t, loaded.UpdatedAt)
	assert.True(t, loaded.UpdatedAt.Equal(updatedAt), "order UpdatedAt stored as %v, want %v", loaded.UpdatedAt, updatedAt)
	require.Len(t, loaded.Items, 1)
	require.NotNil(t, loaded.Items[0].UpdatedAt)
	assert.True(t, loaded.Items[0].UpdatedAt.Equal(updatedAt), "item UpdatedAt stored as %v, want %v", loaded.Items[0].UpdatedAt, updatedAt)
}

func TestGormOrderRepositoryFindByIDMissing(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), 9999)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepositorySaveReconciled(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes absent items, inserts new ones, updates the rest", func(t *testing.T) {
		repo := NewGormOrderRepository(newTestDB(t))
		stored := seedOrder(t, repo, 7)
		keptID := stored.Items[0].ID
		droppedID := stored.Items[1].ID

		kept, err := ordering.NewOrderItem(1, 3, decimal.NewFromFloat(5.00))
		require.NoError(t, err)
		kept.ID = keptID
		added, err := ordering.NewOrderItem(3, 1, decimal.NewFromFloat(7.00))
		require.NoError(t, err)

		updated, err := ordering.NewOrder(8, []ordering.OrderItem{*kept, *added})
		require.NoError(t, err)
		updated.ID = stored.ID

		err = repo.SaveReconciled(ctx, updated, func(current *ordering.Order) error {
			require.Len(t, current.Items, 2)
			updated.InheritCreated(current.AuditStamp)
			updated.StampUpdated(time.Now().UTC(), "editor-user")
			for i := range updated.Items {
				updated.Items[i].OrderID = updated.ID
				if updated.Items[i].ID == 0 {
					updated.Items[i].StampCreated(time.Now().UTC(), "editor-user")
					continue
				}
				updated.Items[i].InheritCreated(current.Items[0].AuditStamp)
				updated.Items[i].StampUpdated(time.Now().UTC(), "editor-user")
			}
			return nil
		})
		require.NoError(t, err)

		loaded, err := repo.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, loaded.TableNumber)
		assert.True(t, loaded.TotalPrice.Equal(decimal.NewFromFloat(22.00)))
		require.Len(t, loaded.Items, 2)

		ids := []int{loaded.Items[0].ID, loaded.Items[1].ID}
		assert.Contains(t, ids, keptID)
		assert.NotContains(t, ids, droppedID)
		assert.Equal(t, "seed-user", loaded.CreatedBy)
		require.NotNil(t, loaded.UpdatedBy)
		assert.Equal(t, "editor-user", *loaded.UpdatedBy)
	})

	t.Run("missing order aborts before the callback", func(t *testing.T) {
		repo := NewGormOrderRepository(newTestDB(t))
		order, err := ordering.NewOrder(7, []ordering.OrderItem{{
			Quantity: 1, ProductID: 1,
			ProductPrice:  decimal.NewFromFloat(5.00),
			SubTotalPrice: decimal.NewFromFloat(5.00),
		}})
		require.NoError(t, err)
		order.ID = 9999

		called := false
		err = repo.SaveReconciled(ctx, order, func(*ordering.Order) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.False(t, called)
	})

	t.Run("callback error rolls everything back", func(t *testing.T) {
		repo := NewGormOrderRepository(newTestDB(t))
		stored := seedOrder(t, repo, 7)

		replacement, err := ordering.NewOrderItem(5, 1, decimal.NewFromFloat(9.99))
		require.NoError(t, err)
		updated, err := ordering.NewOrder(9, []ordering.OrderItem{*replacement})
		require.NoError(t, err)
		updated.ID = stored.ID

		boom := errors.New("reconcile rejected")
		err = repo.SaveReconciled(ctx, updated, func(*ordering.Order) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)

		loaded, err := repo.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, loaded.TableNumber)
		assert.Len(t, loaded.Items, 2)
	})
}

func TestGormOrderRepositoryDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the order and its items", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormOrderRepository(db)
		order := seedOrder(t, repo, 7)

		require.NoError(t, repo.Delete(ctx, order.ID))

		_, err := repo.FindByID(ctx, order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var itemCount int64
		require.NoError(t, db.Model(&ordering.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
		assert.Zero(t, itemCount)
	})

	t.Run("deleting a missing order fails", func(t *testing.T) {
		repo := NewGormOrderRepository(newTestDB(t))
		assert.ErrorIs(t, repo.Delete(ctx, 9999), shared.ErrNotFound)
	})
}

func TestGormOrderRepositoryDeleteRange(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the whole batch", func(t *testing.T) {
		repo := NewGormOrderRepository(newTestDB(t))
		first := seedOrder(t, repo, 1)
		second := seedOrder(t, repo, 2)

		require.NoError(t, repo.DeleteRange(ctx, []int{first.ID, second.ID}))

		count, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("one missing id aborts the batch", func(t *testing.T) {
		repo := NewGormOrderRepository(newTestDB(t))
		order := seedOrder(t, repo, 1)

		err := repo.DeleteRange(ctx, []int{order.ID, 9999})
		assert.ErrorIs(t, err, shared.ErrNotFound)

		survivor, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Len(t, survivor.Items, 2)
	})
}

func TestGormOrderRepositoryFilter(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	ctx := context.Background()

	for table := 1; table <= 5; table++ {
		seedOrder(t, repo, table)
	}

	t.Run("comparison on table number", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{
			Comparisons: []shared.FieldComparison{
				{Field: "tableNumber", Op: shared.OpGte, Value: 4},
			},
		})
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{
			Comparisons: []shared.FieldComparison{
				{Field: "password_hash", Op: shared.OpEq, Value: "x"},
			},
		})
		require.NoError(t, err)
		assert.Len(t, orders, 5)
	})

	t.Run("pagination and ordering", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{
			Page: 2, PageSize: 2, OrderBy: "tableNumber", OrderDir: "desc",
		})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, 3, orders[0].TableNumber)
		assert.Equal(t, 2, orders[1].TableNumber)

		count, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})
}
