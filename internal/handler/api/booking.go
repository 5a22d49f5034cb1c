package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"navbat/internal/domain/booking"
	reqdto "navbat/internal/handler/dto/request"
	"navbat/internal/handler/middleware"
	"navbat/internal/usecase/commands"
	"navbat/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Book the next walk-in slot of a shop for today
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} queries.BookingView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrShopNotFound), errors.Is(err, commands.ErrNoActiveStaff):
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

	c.JSON(http.StatusCreated, view)
}

// @Summary My bookings
// @Description Active bookings of the current user with live queue positions
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.BookingView
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) MyBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.bookingQueries.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Booking history
// @Description Bookings of the past N days (default 7), newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param days query int false "History window in days"
// @Success 200 {array} queries.HistoryEntry
// @Failure 401 {object} map[string]string
// @Router /bookings/history [get]
func (h *BookingHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
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

	entries, err := h.bookingQueries.History(c.Request.Context(), userID, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// @Summary Complete booking
// @Description Mark a booking as served; shop owner or admin only
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	h.transition(c, h.bookingCommands.CompleteBooking)
}

// @Summary Cancel booking
// @Description Cancel a booking; the customer, the shop owner or an admin
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.bookingCommands.CancelBooking)
}

// @Summary Move booking to tomorrow
// @Description Push a booking to the next day keeping its time; shop owner or admin only
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/move-tomorrow [post]
func (h *BookingHandler) MoveBookingToTomorrow(c *gin.Context) {
	actor, bookingID, ok := h.actorAndID(c)
	if !ok {
		return
	}

	view, err := h.bookingCommands.MoveBookingToTomorrow(c.Request.Context(), actor, bookingID)
	if err != nil {
		h.writeTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) transition(c *gin.Context, op func(ctx context.Context, actor booking.Actor, id uuid.UUID) error) {
	actor, bookingID, ok := h.actorAndID(c)
	if !ok {
		return
	}

	if err := op(c.Request.Context(), actor, bookingID); err != nil {
		h.writeTransitionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) actorAndID(c *gin.Context) (booking.Actor, uuid.UUID, bool) {
	userID, okID := middleware.GetUserID(c)
	role, okRole := middleware.GetUserRole(c)
	if !okID || !okRole {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return booking.Actor{}, uuid.Nil, false
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return booking.Actor{}, uuid.Nil, false
	}

	return booking.Actor{ID: userID, Role: role}, bookingID, true
}

func (h *BookingHandler) writeTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFound), errors.Is(err, commands.ErrShopNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Operation not allowed",
		})
	case errors.Is(err, commands.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking already completed",
		})
	case errors.Is(err, commands.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking already cancelled",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
