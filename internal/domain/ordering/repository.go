package ordering

import (
	"context"

	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence. Orders are
// hard-deletable; deleting an order cascades to its items. Save (inherited
// from shared.Repository) inserts a new order together with its items.
type OrderRepository interface {
	shared.Repository[Order, int]

	// SaveReconciled persists an existing order inside one transaction. It
	// loads the stored order with its items, hands it to reconcile so the
	// caller can diff and stamp the submitted aggregate against stored
	// state, then deletes stored items whose ids are absent from
	// order.Items and upserts the order row and the remaining items. Any
	// failure, including an error from reconcile, rolls back everything.
	SaveReconciled(ctx context.Context, order *Order, reconcile func(stored *Order) error) error
}
