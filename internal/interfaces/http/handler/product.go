package handler

import (
	"mime/multipart"
	"net/http"

	catalogapp "github.com/Ammar-000/PointOfSale/internal/application/catalog"
	"github.com/Ammar-000/PointOfSale/internal/application/media"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/config"
	"github.com/Ammar-000/PointOfSale/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ProductHandler serves product endpoints, including the product image
// association.
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
	images   *media.ImageService
	imageCfg config.ImagesConfig
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService, images *media.ImageService, imageCfg config.ImagesConfig) *ProductHandler {
	return &ProductHandler{
		products: products,
		images:   images,
		imageCfg: imageCfg,
	}
}

// List handles GET /Products
func (h *ProductHandler) List(c *gin.Context) {
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
		h.SuccessPage(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
		return
	}

	products, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, products)
}

// Count handles GET /Products/Count
func (h *ProductHandler) Count(c *gin.Context) {
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

// GetByID handles GET /Products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}
	includeInactive := c.Query("includeInactive") == "true"

	product, err := h.products.GetByID(c.Request.Context(), req.ID, includeInactive)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// Create handles POST /Products
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.Create(c.Request.Context(), req, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, product)
}

// Update handles PUT /Products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}
	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.Update(c.Request.Context(), idReq.ID, req, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete handles DELETE /Products/:id, deactivating the product
func (h *ProductHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	if err := h.products.SoftDelete(c.Request.Context(), req.ID, actingUserID(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Restore handles POST /Products/:id/Restore
func (h *ProductHandler) Restore(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	product, err := h.products.Restore(c.Request.Context(), req.ID, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// GetImage handles GET /Products/:id/Image, returning the public image URL
func (h *ProductHandler) GetImage(c *gin.Context) {
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

// AddImage handles POST /Products/:id/Image with a multipart file field
func (h *ProductHandler) AddImage(c *gin.Context) {
	id, file, header, ok := h.bindImageUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.images.AddImage(c.Request.Context(), id, file, header.Filename, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, result)
}

// UpdateImage handles PUT /Products/:id/Image, replacing the stored image
func (h *ProductHandler) UpdateImage(c *gin.Context) {
	id, file, header, ok := h.bindImageUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.images.UpdateImage(c.Request.Context(), id, file, header.Filename, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteImage handles DELETE /Products/:id/Image
func (h *ProductHandler) DeleteImage(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	result, err := h.images.DeleteImage(c.Request.Context(), req.ID, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// bindImageUpload validates the id and multipart file of an image upload.
// A false return means a response was already written.
func (h *ProductHandler) bindImageUpload(c *gin.Context) (int, multipart.File, *multipart.FileHeader, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product id")
		return 0, nil, nil, false
	}

	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file form field")
		return 0, nil, nil, false
	}
	if h.imageCfg.MaxUploadSize > 0 && header.Size > h.imageCfg.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge,
			dto.NewErrorResponse(dto.ErrCodeBadRequest, "Uploaded file is too large"))
		return 0, nil, nil, false
	}

	file, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return 0, nil, nil, false
	}
	return req.ID, file, header, true
}
