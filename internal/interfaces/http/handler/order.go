package handler

import (
	orderingapp "github.com/Ammar-000/PointOfSale/internal/application/ordering"
	"github.com/Ammar-000/PointOfSale/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// OrderHandler serves order endpoints
type OrderHandler struct {
	BaseHandler
	orders *orderingapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List handles GET /Orders
func (h *OrderHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		page, err := h.orders.Paged(c.Request.Context(), filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.SuccessPage(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
		return
	}

	orders, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, orders)
}

// Count handles GET /Orders/Count
func (h *OrderHandler) Count(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	count, err := h.orders.Count(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"count": count})
}

// GetByID handles GET /Orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Create handles POST /Orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderingapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orders.Create(c.Request.Context(), req, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, order)
}

// Update handles PUT /Orders/:id. The body carries the full desired order
// state; the path id wins over any id in the body.
func (h *OrderHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	var req orderingapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.ID = idReq.ID

	order, err := h.orders.Update(c.Request.Context(), req, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete handles DELETE /Orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	if err := h.orders.Delete(c.Request.Context(), req.ID, actingUserID(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteRange handles DELETE /Orders with a list of ids in the body. The
// batch is atomic, one missing id fails the whole request.
func (h *OrderHandler) DeleteRange(c *gin.Context) {
	var req struct {
		IDs []int `json:"ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.orders.DeleteRange(c.Request.Context(), req.IDs, actingUserID(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
