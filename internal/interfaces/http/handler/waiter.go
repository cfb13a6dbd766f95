package handler

import (
	catalogapp "github.com/Ammar-000/PointOfSale/internal/application/catalog"
	"github.com/Ammar-000/PointOfSale/internal/application/media"
	orderingapp "github.com/Ammar-000/PointOfSale/internal/application/ordering"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/config"
	"github.com/Ammar-000/PointOfSale/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// WaiterHandler serves the floor-staff surface. It runs against the same
// services as the admin handlers but responds with the trimmed view shapes
// from the dto package: id and business fields, no audit stamps, no active
// flags.
type WaiterHandler struct {
	BaseHandler
	categories *catalogapp.CategoryService
	products   *catalogapp.ProductService
	orders     *orderingapp.OrderService
	images     *media.ImageService
	imageCfg   config.ImagesConfig
}

// NewWaiterHandler creates a new WaiterHandler
func NewWaiterHandler(
	categories *catalogapp.CategoryService,
	products *catalogapp.ProductService,
	orders *orderingapp.OrderService,
	images *media.ImageService,
	imageCfg config.ImagesConfig,
) *WaiterHandler {
	return &WaiterHandler{
		categories: categories,
		products:   products,
		orders:     orders,
		images:     images,
		imageCfg:   imageCfg,
	}
}

// ListCategories handles GET /Waiter/Categories
func (h *WaiterHandler) ListCategories(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		page, err := h.categories.Paged(c.Request.Context(), filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.SuccessPage(c, dto.NewCategoryViews(page.Items), page.Total, page.Page, page.PageSize, page.TotalPages)
		return
	}

	categories, err := h.categories.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewCategoryViews(categories))
}

// CountCategories handles GET /Waiter/Categories/Count
func (h *WaiterHandler) CountCategories(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	count, err := h.categories.Count(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"count": count})
}

// GetCategory handles GET /Waiter/Categories/:id
func (h *WaiterHandler) GetCategory(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid category id")
		return
	}

	category, err := h.categories.GetByID(c.Request.Context(), req.ID, false)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewCategoryView(*category))
}

// ListProducts handles GET /Waiter/Products
func (h *WaiterHandler) ListProducts(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		page, err := h.products.Paged(c.Request.Context(), filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.SuccessPage(c, dto.NewProductViews(page.Items), page.Total, page.Page, page.PageSize, page.TotalPages)
		return
	}

	products, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewProductViews(products))
}

// CountProducts handles GET /Waiter/Products/Count
func (h *WaiterHandler) CountProducts(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	count, err := h.products.Count(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"count": count})
}

// GetProduct handles GET /Waiter/Products/:id
func (h *WaiterHandler) GetProduct(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), req.ID, false)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewProductView(*product))
}

// GetProductImage handles GET /Waiter/Products/:id/Image
func (h *WaiterHandler) GetProductImage(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	url, err := h.images.GetImageURL(c.Request.Context(), req.ID, h.imageCfg.PublicBaseURL)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"url": url})
}

// ListOrders handles GET /Waiter/Orders
func (h *WaiterHandler) ListOrders(c *gin.Context) {
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
		h.SuccessPage(c, dto.NewOrderViews(page.Items), page.Total, page.Page, page.PageSize, page.TotalPages)
		return
	}

	orders, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewOrderViews(orders))
}

// CountOrders handles GET /Waiter/Orders/Count
func (h *WaiterHandler) CountOrders(c *gin.Context) {
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

// GetOrder handles GET /Waiter/Orders/:id
func (h *WaiterHandler) GetOrder(c *gin.Context) {
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
	h.Success(c, dto.NewOrderView(*order))
}

// CreateOrder handles POST /Waiter/Orders
func (h *WaiterHandler) CreateOrder(c *gin.Context) {
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
	h.Created(c, dto.NewOrderView(*order))
}

// UpdateOrder handles PUT /Waiter/Orders/:id, the path id wins over the body
func (h *WaiterHandler) UpdateOrder(c *gin.Context) {
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
	h.Success(c, dto.NewOrderView(*order))
}

// DeleteOrder handles DELETE /Waiter/Orders/:id
func (h *WaiterHandler) DeleteOrder(c *gin.Context) {
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
