package ordering

import (
	"context"
	"errors"

	"github.com/Ammar-000/PointOfSale/internal/application/audit"
	"github.com/Ammar-000/PointOfSale/internal/domain/ordering"
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderItemRequest is one submitted line item. ProductPrice is the price
// snapshot for the line; SubTotalPrice and the order total are always
// recomputed server-side, whatever the caller sent. The item id matters only
// on update: ids matching a stored item update it, all others insert.
type OrderItemRequest struct {
	ID           int             `json:"id"`
	ProductID    int             `json:"productId"`
	Quantity     int             `json:"quantity"`
	ProductPrice decimal.Decimal `json:"productPrice"`
}

// CreateOrderRequest carries a new order submission
type CreateOrderRequest struct {
	TableNumber int                `json:"tableNumber"`
	Items       []OrderItemRequest `json:"orderItems"`
}

// UpdateOrderRequest carries the full desired state of an existing order.
// Stored items absent from Items are deleted by the update.
type UpdateOrderRequest struct {
	ID          int                `json:"id"`
	TableNumber int                `json:"tableNumber"`
	Items       []OrderItemRequest `json:"orderItems"`
}

// OrderService handles the order aggregate. Create and Update both recompute
// all derived prices and enforce per-product uniqueness; Update additionally
// reconciles the submitted item set against stored state inside one
// transaction.
type OrderService struct {
	orders  ordering.OrderRepository
	stamper *audit.Stamper
	logger  *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orders ordering.OrderRepository, stamper *audit.Stamper, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:  orders,
		stamper: stamper,
		logger:  logger,
	}
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, id int) (*ordering.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "find order", zap.Int("id", id))
	}
	return order, nil
}

// List retrieves orders matching the filter
func (s *OrderService) List(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	orders, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, s.wrap(err, "list orders")
	}
	return orders, nil
}

// Count counts orders matching the filter
func (s *OrderService) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	count, err := s.orders.Count(ctx, filter)
	if err != nil {
		return 0, s.wrap(err, "count orders")
	}
	return count, nil
}

// Paged retrieves one page of orders together with the total count
func (s *OrderService) Paged(ctx context.Context, filter shared.Filter) (shared.Paginated[ordering.Order], error) {
	var empty shared.Paginated[ordering.Order]
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

// Create persists a new order with its items. Client-supplied ids are
// discarded and every item inherits the order's creation stamp.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest, actingUserID string) (*ordering.Order, error) {
	order, err := buildOrder(req.TableNumber, req.Items)
	if err != nil {
		return nil, err
	}
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}

	order.ResetID()
	order.StampCreated(s.stamper.Now(), actingUserID)
	for i := range order.Items {
		order.Items[i].ResetID()
		order.Items[i].InheritCreated(order.AuditStamp)
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, s.wrap(err, "save order")
	}
	s.logger.Info("order created",
		zap.Int("id", order.ID),
		zap.Int("tableNumber", order.TableNumber),
		zap.Int("items", len(order.Items)),
		zap.String("by", actingUserID))
	return order, nil
}

// Update reconciles the submitted order against stored state: stored items
// missing from the submission are deleted, submitted items without a matching
// stored id are inserted, the rest are updated. The whole sequence runs in
// one transaction; any failure leaves storage unchanged.
//
// Item stamps follow the parent's lifecycle: an item added during the edit is
// created at the order's update stamp, a pre-existing item keeps its original
// creation stamp and takes the order's update stamp as its update stamp.
func (s *OrderService) Update(ctx context.Context, req UpdateOrderRequest, actingUserID string) (*ordering.Order, error) {
	if req.ID <= 0 {
		return nil, shared.NewValidationError("Order id is required for update")
	}

	order, err := buildOrder(req.TableNumber, req.Items)
	if err != nil {
		return nil, err
	}
	order.ID = req.ID
	seenIDs := make(map[int]struct{}, len(req.Items))
	for i := range order.Items {
		id := req.Items[i].ID
		order.Items[i].ID = id
		if id == 0 {
			continue
		}
		if _, dup := seenIDs[id]; dup {
			return nil, shared.NewValidationErrorf("Order can't have more than one order item with id %d", id)
		}
		seenIDs[id] = struct{}{}
	}

	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return nil, err
	}

	now := s.stamper.Now()
	err = s.orders.SaveReconciled(ctx, order, func(stored *ordering.Order) error {
		order.InheritCreated(stored.AuditStamp)
		order.StampUpdated(now, actingUserID)

		storedItems := make(map[int]*ordering.OrderItem, len(stored.Items))
		for i := range stored.Items {
			storedItems[stored.Items[i].ID] = &stored.Items[i]
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			storedItem, kept := storedItems[item.ID]
			if !kept {
				// Unmatched ids are new line items: insert them, created
				// at the order's edit stamp.
				item.ResetID()
				item.StampCreated(now, actingUserID)
				continue
			}
			item.InheritCreated(storedItem.AuditStamp)
			item.StampUpdated(now, actingUserID)
		}
		return nil
	})
	if err != nil {
		return nil, s.wrap(err, "save order", zap.Int("id", req.ID))
	}

	s.logger.Info("order updated",
		zap.Int("id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.String("by", actingUserID))
	return order, nil
}

// Delete removes an order and, by cascade, its items
func (s *OrderService) Delete(ctx context.Context, id int, actingUserID string) error {
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return s.wrap(err, "delete order", zap.Int("id", id))
	}
	s.logger.Info("order deleted", zap.Int("id", id), zap.String("by", actingUserID))
	return nil
}

// DeleteRange removes several orders atomically; one missing id aborts the
// whole batch.
func (s *OrderService) DeleteRange(ctx context.Context, ids []int, actingUserID string) error {
	if len(ids) == 0 {
		return shared.NewValidationError("At least one order id is required")
	}
	if err := s.stamper.VerifyActor(ctx, actingUserID); err != nil {
		return err
	}
	if err := s.orders.DeleteRange(ctx, ids); err != nil {
		return s.wrap(err, "delete orders", zap.Ints("ids", ids))
	}
	s.logger.Info("orders deleted", zap.Ints("ids", ids), zap.String("by", actingUserID))
	return nil
}

// buildOrder turns a submission into a validated aggregate with recomputed
// prices. Submitted ids and audit fields are not carried over; callers set
// them explicitly per operation.
func buildOrder(tableNumber int, itemReqs []OrderItemRequest) (*ordering.Order, error) {
	items := make([]ordering.OrderItem, 0, len(itemReqs))
	for _, ir := range itemReqs {
		item, err := ordering.NewOrderItem(ir.ProductID, ir.Quantity, ir.ProductPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return ordering.NewOrder(tableNumber, items)
}

func (s *OrderService) wrap(err error, op string, fields ...zap.Field) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	s.logger.Error("order storage failure", append(fields, zap.String("op", op), zap.Error(err))...)
	return shared.ErrInternal
}
