package handler

import (
	identityapp "github.com/Ammar-000/PointOfSale/internal/application/identity"
	"github.com/Ammar-000/PointOfSale/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RoleHandler serves role management endpoints
type RoleHandler struct {
	BaseHandler
	roles *identityapp.RoleService
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roles *identityapp.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// List handles GET /Roles
func (h *RoleHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	roles, err := h.roles.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, roles)
}

// Count handles GET /Roles/Count
func (h *RoleHandler) Count(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	count, err := h.roles.Count(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"count": count})
}

// GetByID handles GET /Roles/:id
func (h *RoleHandler) GetByID(c *gin.Context) {
	var req dto.UUIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid role id")
		return
	}
	includeInactive := c.Query("includeInactive") == "true"

	role, err := h.roles.GetByID(c.Request.Context(), req.ID, includeInactive)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, role)
}

// GetByName handles GET /Roles/ByName/:name
func (h *RoleHandler) GetByName(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		h.BadRequest(c, "Missing role name")
		return
	}

	role, err := h.roles.GetByName(c.Request.Context(), name)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, role)
}

// Create handles POST /Roles
func (h *RoleHandler) Create(c *gin.Context) {
	var req identityapp.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	role, err := h.roles.Create(c.Request.Context(), req, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, role)
}

// Update handles PUT /Roles/:id
func (h *RoleHandler) Update(c *gin.Context) {
	var idReq dto.UUIDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid role id")
		return
	}
	var req identityapp.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	role, err := h.roles.Update(c.Request.Context(), idReq.ID, req, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, role)
}

// Delete handles DELETE /Roles/:id, deactivating the role
func (h *RoleHandler) Delete(c *gin.Context) {
	var req dto.UUIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid role id")
		return
	}

	if err := h.roles.SoftDelete(c.Request.Context(), req.ID, actingUserID(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Restore handles POST /Roles/:id/Restore
func (h *RoleHandler) Restore(c *gin.Context) {
	var req dto.UUIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid role id")
		return
	}

	role, err := h.roles.Restore(c.Request.Context(), req.ID, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, role)
}
