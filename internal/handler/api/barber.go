package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "navbat/internal/handler/dto/request"
	resdto "navbat/internal/handler/dto/response"
	"navbat/internal/handler/middleware"
	"navbat/internal/pkg/civil"
	"navbat/internal/usecase/commands"
	"navbat/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BarberHandler serves the shop owner's own endpoints.
type BarberHandler struct {
	shopCommands   commands.ShopCommands
	shopQueries    queries.ShopQueries
	bookingQueries queries.BookingQueries
}

func NewBarberHandler(
	shopCommands commands.ShopCommands,
	shopQueries queries.ShopQueries,
	bookingQueries queries.BookingQueries,
) *BarberHandler {
	return &BarberHandler{
		shopCommands:   shopCommands,
		shopQueries:    shopQueries,
		bookingQueries: bookingQueries,
	}
}

// @Summary Get own shop
// @Description Shop owned by the authenticated barber, with today's queue
// @Tags barber
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.ShopDetailView
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /barber/shop [get]
func (h *BarberHandler) GetOwnShop(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.shopQueries.GetByOwner(c.Request.Context(), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrShopNotFound):
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

	c.JSON(http.StatusOK, view)
}

// @Summary Update own shop
// @Description Partial update of the barber's own shop
// @Tags barber
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.UpdateShopRequest true "Shop fields to update"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /barber/shop [put]
func (h *BarberHandler) UpdateOwnShop(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
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

	if err := h.shopCommands.UpdateOwnShop(c.Request.Context(), ownerID, req); err != nil {
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

// @Summary Day's queue
// @Description Bookings of the barber's own shop for a day, in queue order
// @Tags barber
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {array} queries.QueueEntry
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /barber/bookings [get]
func (h *BarberHandler) Queue(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var day *civil.Date
	if raw := c.Query("date"); raw != "" {
		parsed, err := civil.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format",
			})
			return
		}
		day = &parsed
	}

	entries, err := h.bookingQueries.QueueForOwner(c.Request.Context(), ownerID, day)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrShopNotFound):
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

	c.JSON(http.StatusOK, entries)
}

// @Summary Shop booking history
// @Description Bookings of the barber's own shop for the past N days (default 7), newest first
// @Tags barber
// @Produce json
// @Security BearerAuth
// @Param days query int false "History window in days"
// @Success 200 {array} queries.OwnerHistoryEntry
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /barber/bookings/history [get]
func (h *BarberHandler) History(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	// Unparsable values fall back to the default window instead of failing.
	days := queries.DefaultHistoryDays
	if raw := c.Query("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			days = parsed
		}
	}

	entries, err := h.bookingQueries.HistoryForOwner(c.Request.Context(), ownerID, days)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrShopNotFound):
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

	c.JSON(http.StatusOK, entries)
}

// @Summary Add staff member
// @Description Add an employee to a shop; the owner or an admin
// @Tags barber
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shop ID"
// @Param request body reqdto.AddStaffRequest true "Staff member"
// @Success 201 {object} resdto.StaffCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /shops/{id}/staff [post]
func (h *BarberHandler) AddStaff(c *gin.Context) {
	userID, okID := middleware.GetUserID(c)
	role, okRole := middleware.GetUserRole(c)
	if !okID || !okRole {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	shopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid shop ID format",
		})
		return
	}

	var req reqdto.AddStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	staffID, err := h.shopCommands.AddStaff(c.Request.Context(), userID, role, shopID, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrShopNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Shop not found",
			})
		case errors.Is(err, commands.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Operation not allowed",
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

	c.JSON(http.StatusCreated, resdto.StaffCreatedResponse{ID: staffID})
}
