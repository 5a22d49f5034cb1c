package api

import (
	"errors"
	"net/http"

	"navbat/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShopHandler struct {
	shopQueries queries.ShopQueries
}

func NewShopHandler(shopQueries queries.ShopQueries) *ShopHandler {
	return &ShopHandler{
		shopQueries: shopQueries,
	}
}

// @Summary List shops
// @Description Active shops with their staff counts
// @Tags shops
// @Produce json
// @Success 200 {array} queries.ShopListItem
// @Router /shops [get]
func (h *ShopHandler) ListShops(c *gin.Context) {
	items, err := h.shopQueries.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Get shop
// @Description Shop details with staff and today's queue
// @Tags shops
// @Produce json
// @Param id path string true "Shop ID"
// @Success 200 {object} queries.ShopDetailView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /shops/{id} [get]
func (h *ShopHandler) GetShop(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid shop ID format",
		})
		return
	}

	view, err := h.shopQueries.GetByID(c.Request.Context(), id)
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
