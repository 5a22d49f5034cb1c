package api

import (
	"errors"
	"net/http"

	"navbat/internal/domain/user"
	reqdto "navbat/internal/handler/dto/request"
	resdto "navbat/internal/handler/dto/response"
	"navbat/internal/handler/middleware"
	"navbat/internal/usecase/commands"
	"navbat/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	shopCommands commands.ShopCommands
	userCommands commands.UserCommands
	userQueries  queries.UserQueries
}

func NewAdminHandler(
	shopCommands commands.ShopCommands,
	userCommands commands.UserCommands,
	userQueries queries.UserQueries,
) *AdminHandler {
	return &AdminHandler{
		shopCommands: shopCommands,
		userCommands: userCommands,
		userQueries:  userQueries,
	}
}

// @Summary Create shop
// @Description Register a shop for a barber account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateShopRequest true "Shop"
// @Success 201 {object} resdto.ShopCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/shops [post]
func (h *AdminHandler) CreateShop(c *gin.Context) {
	var req reqdto.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	shopID, err := h.shopCommands.CreateShop(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Owner account not found",
			})
		case errors.Is(err, commands.ErrOwnerNotBarber):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Shop owner must hold the barber role",
			})
		case errors.Is(err, commands.ErrShopAlreadyOwned):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Owner already has a shop",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.ShopCreatedResponse{ID: shopID})
}

// @Summary Update shop
// @Description Partial update of any shop
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "Shop ID"
// @Param request body reqdto.UpdateShopRequest true "Shop fields to update"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/shops/{id} [put]
func (h *AdminHandler) UpdateShop(c *gin.Context) {
	shopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid shop ID format",
		})
		return
	}

	var req reqdto.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.shopCommands.UpdateShop(c.Request.Context(), shopID, req); err != nil {
		switch {
		case errors.Is(err, commands.ErrShopNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Shop not found",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Deactivate shop
// @Description Soft-delete a shop; bookings and history stay intact
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Shop ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/shops/{id} [delete]
func (h *AdminHandler) DeactivateShop(c *gin.Context) {
	shopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid shop ID format",
		})
		return
	}

	if err := h.shopCommands.DeactivateShop(c.Request.Context(), shopID); err != nil {
		switch {
		case errors.Is(err, commands.ErrShopNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Shop not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List users
// @Description All accounts, optionally filtered by role
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter" Enums(customer, barber, admin)
// @Success 200 {array} queries.UserListItem
// @Failure 400 {object} map[string]string
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var roleFilter *user.Role
	if raw := c.Query("role"); raw != "" {
		role, err := user.NewRole(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid role filter",
			})
			return
		}
		roleFilter = &role
	}

	items, err := h.userQueries.ListUsers(c.Request.Context(), roleFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Change user role
// @Description Reassign an account's role; not one's own, no-ops rejected
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body reqdto.ChangeRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/users/{id}/role [patch]
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	var req reqdto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.userCommands.ChangeRole(c.Request.Context(), adminID, targetID, req); err != nil {
		switch {
		case errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, commands.ErrSelfModification):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Cannot change own role",
			})
		case errors.Is(err, commands.ErrRoleUnchanged):
			c.JSON(http.StatusConflict, gin.H{
				"error": "User already holds this role",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Toggle user status
// @Description Flip an account's active flag; not one's own
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} resdto.UserStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/users/{id}/status [patch]
func (h *AdminHandler) ToggleStatus(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	isActive, err := h.userCommands.ToggleStatus(c.Request.Context(), adminID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, commands.ErrSelfModification):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Cannot change own status",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.UserStatusResponse{ID: targetID, IsActive: isActive})
}
