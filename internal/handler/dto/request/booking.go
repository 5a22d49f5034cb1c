package request

import (
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ShopID uuid.UUID `json:"shop_id" binding:"required"`
}
