package dto

import (
	"github.com/Ammar-000/PointOfSale/internal/domain/catalog"
	"github.com/Ammar-000/PointOfSale/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// The view types below shape responses for the waiter surface: id plus
// business fields only, no audit stamps and no active flags. The admin surface
// returns the full models instead.

// CategoryView is the waiter-facing shape of a category
type CategoryView struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewCategoryView maps a category to its waiter view
func NewCategoryView(c catalog.Category) CategoryView {
	return CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

// NewCategoryViews maps a category slice to waiter views
func NewCategoryViews(categories []catalog.Category) []CategoryView {
	views := make([]CategoryView, len(categories))
	for i := range categories {
		views[i] = NewCategoryView(categories[i])
	}
	return views
}

// ProductView is the waiter-facing shape of a product
type ProductView struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	ImageSubPath *string         `json:"imageSubPath"`
	CategoryID   int             `json:"categoryId"`
}

// NewProductView maps a product to its waiter view
func NewProductView(p catalog.Product) ProductView {
	return ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Description:  p.Description,
		ImageSubPath: p.ImageSubPath,
		CategoryID:   p.CategoryID,
	}
}

// NewProductViews maps a product slice to waiter views
func NewProductViews(products []catalog.Product) []ProductView {
	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = NewProductView(products[i])
	}
	return views
}

// OrderItemView is the waiter-facing shape of an order line item
type OrderItemView struct {
	ID            int             `json:"id"`
	Quantity      int             `json:"quantity"`
	ProductPrice  decimal.Decimal `json:"productPrice"`
	SubTotalPrice decimal.Decimal `json:"subTotalPrice"`
	OrderID       int             `json:"orderId"`
	ProductID     int             `json:"productId"`
}

// OrderView is the waiter-facing shape of an order with its items
type OrderView struct {
	ID          int             `json:"id"`
	TableNumber int             `json:"tableNumber"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Items       []OrderItemView `json:"orderItems"`
}

// NewOrderView maps an order aggregate to its waiter view
func NewOrderView(o ordering.Order) OrderView {
	items := make([]OrderItemView, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemView{
			ID:            item.ID,
			Quantity:      item.Quantity,
			ProductPrice:  item.ProductPrice,
			SubTotalPrice: item.SubTotalPrice,
			OrderID:       item.OrderID,
			ProductID:     item.ProductID,
		}
	}
	return OrderView{
		ID:          o.ID,
		TableNumber: o.TableNumber,
		TotalPrice:  o.TotalPrice,
		Items:       items,
	}
}

// NewOrderViews maps an order slice to waiter views
func NewOrderViews(orders []ordering.Order) []OrderView {
	views := make([]OrderView, len(orders))
	for i := range orders {
		views[i] = NewOrderView(orders[i])
	}
	return views
}
