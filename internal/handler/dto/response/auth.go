package response

import (
	"navbat/internal/usecase/commands"

	"github.com/google/uuid"
)

type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func FromTokenPair(userID uuid.UUID, pair *commands.TokenPair) AuthResponse {
	return AuthResponse{
		UserID:       userID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}
