package ordering

import (
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	// MinTableNumber and MaxTableNumber bound the physical tables of the venue.
	MinTableNumber = 1
	MaxTableNumber = 200
)

// OrderItem is a line item of an order. ProductPrice is a snapshot of the
// product's price at order time; SubTotalPrice and the parent's TotalPrice are
// always recomputed server-side and never trusted from the caller.
type OrderItem struct {
	shared.BaseModel
	Quantity      int             `json:"quantity" gorm:"not null"`
	ProductPrice  decimal.Decimal `json:"productPrice" gorm:"type:decimal(18,2);not null"`
	SubTotalPrice decimal.Decimal `json:"subTotalPrice" gorm:"type:decimal(18,2);not null"`
	OrderID       int             `json:"orderId" gorm:"not null;index"`
	ProductID     int             `json:"productId" gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a line item, validating its fields
func NewOrderItem(productID, quantity int, productPrice decimal.Decimal) (*OrderItem, error) {
	item := &OrderItem{
		Quantity:     quantity,
		ProductPrice: productPrice,
		ProductID:    productID,
	}
	item.Recalculate()

	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Recalculate rederives the sub total from price and quantity
func (i *OrderItem) Recalculate() {
	i.SubTotalPrice = i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Validate checks the item's field-level rules
func (i *OrderItem) Validate() *shared.DomainError {
	if i.Quantity <= 0 {
		return shared.NewValidationError("Order item quantity must be greater than zero")
	}
	if !i.ProductPrice.IsPositive() {
		return shared.NewValidationError("Order item product price must be greater than zero")
	}
	if i.ProductID <= 0 {
		return shared.NewValidationError("Order item product is required")
	}
	return nil
}

// Order is the aggregate root for a table's order. It owns its items: they are
// persisted, reconciled, and deleted together with the order.
type Order struct {
	shared.BaseModel
	TableNumber int             `json:"tableNumber" gorm:"not null"`
	TotalPrice  decimal.Decimal `json:"totalPrice" gorm:"type:decimal(18,2);not null"`
	Items       []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order with its items, recomputing all derived prices
func NewOrder(tableNumber int, items []OrderItem) (*Order, error) {
	order := &Order{
		TableNumber: tableNumber,
		Items:       items,
	}
	order.RecalculateTotals()

	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// AddItem appends a line item, enforcing per-product uniqueness
func (o *Order) AddItem(item OrderItem) error {
	if o.itemByProduct(item.ProductID) != nil {
		return duplicateProductError()
	}
	if err := item.Validate(); err != nil {
		return err
	}

	o.Items = append(o.Items, item)
	o.RecalculateTotals()
	return nil
}

// RecalculateTotals rederives every item's sub total and the order total.
// Caller-supplied values for these fields are always discarded.
func (o *Order) RecalculateTotals() {
	total := decimal.Zero
	for i := range o.Items {
		o.Items[i].Recalculate()
		total = total.Add(o.Items[i].SubTotalPrice)
	}
	o.TotalPrice = total
}

// CheckDuplicateProducts rejects the order when two items share a product
func (o *Order) CheckDuplicateProducts() *shared.DomainError {
	seen := make(map[int]struct{}, len(o.Items))
	for i := range o.Items {
		if _, ok := seen[o.Items[i].ProductID]; ok {
			return duplicateProductError()
		}
		seen[o.Items[i].ProductID] = struct{}{}
	}
	return nil
}

// Validate checks the fully-prepared aggregate. It expects RecalculateTotals
// to have run, so TotalPrice > 0 follows from valid items.
func (o *Order) Validate() *shared.DomainError {
	if o.TableNumber < MinTableNumber || o.TableNumber > MaxTableNumber {
		return shared.NewValidationErrorf("Table number must be between %d and %d", MinTableNumber, MaxTableNumber)
	}
	if len(o.Items) == 0 {
		return shared.NewValidationError("Order must have at least one order item")
	}
	if err := o.CheckDuplicateProducts(); err != nil {
		return err
	}
	for i := range o.Items {
		if err := o.Items[i].Validate(); err != nil {
			return err
		}
	}
	if !o.TotalPrice.IsPositive() {
		return shared.NewValidationError("Order total price must be greater than zero")
	}
	return nil
}

// ItemIDs returns the ids of all persisted items (unpersisted items excluded)
func (o *Order) ItemIDs() []int {
	ids := make([]int, 0, len(o.Items))
	for i := range o.Items {
		if !o.Items[i].IsNew() {
			ids = append(ids, o.Items[i].ID)
		}
	}
	return ids
}

func (o *Order) itemByProduct(productID int) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

func duplicateProductError() *shared.DomainError {
	return shared.NewDomainError(shared.CodeDuplicateProduct,
		"Order can't have more than one order item with each product")
}
