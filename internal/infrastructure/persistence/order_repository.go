package persistence

import (
	"context"
	"errors"

	"github.com/Ammar-000/PointOfSale/internal/domain/ordering"
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM. Orders are
// hard-deletable aggregates: the order row owns its item rows.
type GormOrderRepository struct {
	db     *gorm.DB
	filter catalogFilter
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{
		db: db,
		filter: catalogFilter{
			columns: map[string]string{
				"id":          "id",
				"tableNumber": "table_number",
				"totalPrice":  "total_price",
				"createdAt":   "created_at",
				"updatedAt":   "updated_at",
			},
		},
	}
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id int) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter, items included
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	var orders []ordering.Order
	query := r.filter.apply(r.db.WithContext(ctx).Model(&ordering.Order{}), filter)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.filter.applyWithoutPagination(r.db.WithContext(ctx).Model(&ordering.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(order).Error
}

// SaveReconciled runs the order update as one transaction: it loads the
// stored aggregate, hands it to the reconcile callback, deletes stored items
// the submission no longer carries and upserts the rest. Any failure,
// including one returned by the callback, rolls the whole update back.
func (r *GormOrderRepository) SaveReconciled(ctx context.Context, order *ordering.Order, reconcile func(stored *ordering.Order) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored ordering.Order
		if err := tx.Preload("Items").First(&stored, "id = ?", order.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := reconcile(&stored); err != nil {
			return err
		}

		keep := make([]int, 0, len(order.Items))
		for i := range order.Items {
			if order.Items[i].ID != 0 {
				keep = append(keep, order.Items[i].ID)
			}
		}
		del := tx.Where("order_id = ?", order.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&ordering.OrderItem{}).Error; err != nil {
			return err
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
	})
}

// Delete removes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&ordering.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&ordering.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// DeleteRange removes several orders in one transaction. One missing id
// aborts the whole batch.
func (r *GormOrderRepository) DeleteRange(ctx context.Context, ids []int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id IN ?", ids).Delete(&ordering.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&ordering.Order{}, "id IN ?", ids)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(ids)) {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
