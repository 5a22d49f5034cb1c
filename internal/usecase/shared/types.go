package shared

import (
	"time"

	"navbat/internal/domain/booking"
	"navbat/internal/domain/user"
	"navbat/internal/pkg/civil"

	"github.com/google/uuid"
)

// ShopSnapshot is the command side's view of a shop: just enough to run
// permission checks and allocation.
type ShopSnapshot struct {
	ID       uuid.UUID
	Name     string
	Address  string
	OwnerID  uuid.UUID
	IsActive bool
}

// BookingSnapshot rehydrates into a domain entity for lifecycle transitions.
type BookingSnapshot struct {
	ID          uuid.UUID
	ShopID      uuid.UUID
	StaffID     uuid.UUID
	CustomerID  uuid.UUID
	Day         civil.Date
	TimeOfDay   civil.TimeOfDay
	Status      booking.Status
	CompletedAt *civil.DateTime
	CreatedAt   time.Time
}

func (s BookingSnapshot) ToEntity() *booking.Booking {
	return booking.ReconstructBooking(
		s.ID, s.ShopID, s.StaffID, s.CustomerID,
		s.Day, s.TimeOfDay, s.Status, s.CompletedAt, s.CreatedAt,
	)
}

type UserSnapshot struct {
	ID       uuid.UUID
	Phone    string
	Name     string
	Role     user.Role
	IsActive bool
}

// ShopPatch carries the mutable shop fields for an update. Nil means "leave
// unchanged".
type ShopPatch struct {
	Name        *string
	Image       *string
	Address     *string
	Phone       *string
	Description *string
	Price       *int
	OpeningTime *civil.TimeOfDay
	ClosingTime *civil.TimeOfDay
}
