// Package handler implements the gin handlers for the REST surface.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"github.com/Ammar-000/PointOfSale/internal/interfaces/http/dto"
	"github.com/Ammar-000/PointOfSale/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessPage sends a success response with pagination meta
func (h *BaseHandler) SuccessPage(c *gin.Context, data any, total int64, page, pageSize, totalPages int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize, totalPages))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message))
}

// HandleDomainError converts domain errors to HTTP responses
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code),
			dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(shared.CodeInternal, "An unexpected error occurred"))
}

// actingUserID returns the authenticated user id performing the request
func actingUserID(c *gin.Context) string {
	return middleware.GetUserID(c)
}

// parseFilter turns the common list query parameters into a domain filter.
// Raw filter clauses use the field:op:value form, e.g. name:like:espresso.
func parseFilter(c *gin.Context) (shared.Filter, error) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}

	filter := shared.Filter{
		Page:            req.Page,
		PageSize:        req.PageSize,
		OrderBy:         req.OrderBy,
		OrderDir:        req.OrderDir,
		IncludeInactive: req.IncludeInactive,
	}

	for _, raw := range req.Filters {
		parts := strings.SplitN(raw, ":", 3)
		if len(parts) != 3 {
			return shared.Filter{}, errors.New("filter must be field:op:value")
		}
		op := shared.ComparisonOp(parts[1])
		switch op {
		case shared.OpEq, shared.OpNeq, shared.OpGt, shared.OpGte, shared.OpLt, shared.OpLte, shared.OpLike:
		default:
			return shared.Filter{}, errors.New("unknown filter operator " + parts[1])
		}
		filter.Comparisons = append(filter.Comparisons, shared.FieldComparison{
			Field: parts[0],
			Op:    op,
			Value: parts[2],
		})
	}

	return filter, nil
}
