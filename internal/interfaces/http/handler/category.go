package handler

import (
	catalogapp "github.com/Ammar-000/PointOfSale/internal/application/catalog"
	"github.com/Ammar-000/PointOfSale/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CategoryHandler serves category endpoints
type CategoryHandler struct {
	BaseHandler
	categories *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /Categories
func (h *CategoryHandler) List(c *gin.Context) {
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
		h.SuccessPage(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
		return
	}

	categories, err := h.categories.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, categories)
}

// Count handles GET /Categories/Count
func (h *CategoryHandler) Count(c *gin.Context) {
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

// GetByID handles GET /Categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid category id")
		return
	}
	includeInactive := c.Query("includeInactive") == "true"

	category, err := h.categories.GetByID(c.Request.Context(), req.ID, includeInactive)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, category)
}

// Create handles POST /Categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, category)
}

// Update handles PUT /Categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid category id")
		return
	}
	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categories.Update(c.Request.Context(), idReq.ID, req, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete handles DELETE /Categories/:id, deactivating the category
func (h *CategoryHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid category id")
		return
	}

	if err := h.categories.SoftDelete(c.Request.Context(), req.ID, actingUserID(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Restore handles POST /Categories/:id/Restore
func (h *CategoryHandler) Restore(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid category id")
		return
	}

	category, err := h.categories.Restore(c.Request.Context(), req.ID, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, category)
}
