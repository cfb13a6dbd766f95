package handler

import (
	"time"

	identityapp "github.com/Ammar-000/PointOfSale/internal/application/identity"
	"github.com/Ammar-000/PointOfSale/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// UserHandler serves user management endpoints
type UserHandler struct {
	BaseHandler
	users *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *identityapp.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ChangePasswordRequest carries a self-service password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ResetPasswordRequest carries an administrative password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

// LockRequest carries the lockout expiry for a manual account lock
type LockRequest struct {
	Until time.Time `json:"until" binding:"required,future"`
}

type userRoleURI struct {
	ID     string `uri:"id" binding:"required,uuid"`
	RoleID string `uri:"roleId" binding:"required,uuid"`
}

// List handles GET /Users
func (h *UserHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		page, err := h.users.Paged(c.Request.Context(), filter)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.SuccessPage(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
		return
	}

	users, err := h.users.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, users)
}

// Count handles GET /Users/Count
func (h *UserHandler) Count(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	count, err := h.users.Count(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"count": count})
}

// GetByID handles GET /Users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	var req dto.UUIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}
	includeInactive := c.Query("includeInactive") == "true"

	user, err := h.users.GetByID(c.Request.Context(), req.ID, includeInactive)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

// Create handles POST /Users
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.Create(c.Request.Context(), req, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, user)
}

// Update handles PUT /Users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var idReq dto.UUIDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}
	var req identityapp.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.Update(c.Request.Context(), idReq.ID, req, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete handles DELETE /Users/:id, deactivating the account
func (h *UserHandler) Delete(c *gin.Context) {
	var req dto.UUIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.users.SoftDelete(c.Request.Context(), req.ID, actingUserID(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Restore handles POST /Users/:id/Restore
func (h *UserHandler) Restore(c *gin.Context) {
	var req dto.UUIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}

	user, err := h.users.Restore(c.Request.Context(), req.ID, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword handles POST /Users/ChangePassword for the authenticated
// user's own account.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	err := h.users.ChangePassword(c.Request.Context(), actingUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// ResetPassword handles POST /Users/:id/ResetPassword
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var idReq dto.UUIDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	err := h.users.ResetPassword(c.Request.Context(), idReq.ID, req.NewPassword, actingUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Lock handles POST /Users/:id/Lock
func (h *UserHandler) Lock(c *gin.Context) {
	var idReq dto.UUIDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}
	var req LockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.users.Lock(c.Request.Context(), idReq.ID, req.Until, actingUserID(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Unlock handles POST /Users/:id/Unlock
func (h *UserHandler) Unlock(c *gin.Context) {
	var req dto.UUIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.users.Unlock(c.Request.Context(), req.ID, actingUserID(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// AddToRole handles POST /Users/:id/Roles/:roleId
func (h *UserHandler) AddToRole(c *gin.Context) {
	var req userRoleURI
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user or role id")
		return
	}

	if err := h.users.AddToRole(c.Request.Context(), req.ID, req.RoleID, actingUserID(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RemoveFromRole handles DELETE /Users/:id/Roles/:roleId
func (h *UserHandler) RemoveFromRole(c *gin.Context) {
	var req userRoleURI
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user or role id")
		return
	}

	if err := h.users.RemoveFromRole(c.Request.Context(), req.ID, req.RoleID, actingUserID(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RolesOfUser handles GET /Users/:id/Roles
func (h *UserHandler) RolesOfUser(c *gin.Context) {
	var req dto.UUIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user id")
		return
	}

	roles, err := h.users.GetRolesOfUser(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, roles)
}

// UsersInRole handles GET /Roles/:id/Users
func (h *UserHandler) UsersInRole(c *gin.Context) {
	var req dto.UUIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid role id")
		return
	}

	users, err := h.users.GetUsersInRole(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, users)
}
