package request

import (
	"navbat/internal/pkg/civil"
	"navbat/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateShopRequest struct {
	Name        string  `json:"name" binding:"required"`
	Image       *string `json:"image"`
	Address     string  `json:"address" binding:"required"`
	Phone       string  `json:"phone" binding:"required"`
	Description *string `json:"description"`
	Price       int     `json:"price" binding:"required,gt=0"`
	OpeningTime string  `json:"opening_time" binding:"required"`
	ClosingTime string  `json:"closing_time" binding:"required"`
	// OwnerID must reference an account holding the barber role.
	OwnerID uuid.UUID `json:"owner_id" binding:"required"`
}

type CreateShopData struct {
	Name        string
	Image       *string
	Address     string
	Phone       string
	Description *string
	Price       int
	OpeningTime civil.TimeOfDay
	ClosingTime civil.TimeOfDay
	OwnerID     uuid.UUID
}

func (r *CreateShopRequest) ToDomain() (*CreateShopData, error) {
	opening, err := civil.ParseTimeOfDay(r.OpeningTime)
	if err != nil {
		return nil, err
	}
	closing, err := civil.ParseTimeOfDay(r.ClosingTime)
	if err != nil {
		return nil, err
	}
	return &CreateShopData{
		Name:        r.Name,
		Image:       r.Image,
		Address:     r.Address,
		Phone:       r.Phone,
		Description: r.Description,
		Price:       r.Price,
		OpeningTime: opening,
		ClosingTime: closing,
		OwnerID:     r.OwnerID,
	}, nil
}

// UpdateShopRequest is a partial update: absent fields stay untouched.
type UpdateShopRequest struct {
	Name        *string `json:"name"`
	Image       *string `json:"image"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
	OpeningTime *string `json:"opening_time"`
	ClosingTime *string `json:"closing_time"`
}

func (r *UpdateShopRequest) ToPatch() (shared.ShopPatch, error) {
	patch := shared.ShopPatch{
		Name:        r.Name,
		Image:       r.Image,
		Address:     r.Address,
		Phone:       r.Phone,
		Description: r.Description,
		Price:       r.Price,
	}
	if r.OpeningTime != nil {
		t, err := civil.ParseTimeOfDay(*r.OpeningTime)
		if err != nil {
			return shared.ShopPatch{}, err
		}
		patch.OpeningTime = &t
	}
	if r.ClosingTime != nil {
		t, err := civil.ParseTimeOfDay(*r.ClosingTime)
		if err != nil {
			return shared.ShopPatch{}, err
		}
		patch.ClosingTime = &t
	}
	return patch, nil
}

type AddStaffRequest struct {
	Name string `json:"name" binding:"required"`
}
