package response

import (
	"github.com/google/uuid"
)

type UserStatusResponse struct {
	ID       uuid.UUID `json:"id"`
	IsActive bool      `json:"is_active"`
}
