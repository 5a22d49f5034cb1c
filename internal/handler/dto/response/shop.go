package response

import (
	"github.com/google/uuid"
)

type ShopCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type StaffCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
