package booking

import (
	"errors"
	"time"

	"navbat/internal/domain/user"
	"navbat/internal/pkg/civil"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrForbidden        = errors.New("actor is not allowed to perform this transition")
	ErrAlreadyCompleted = errors.New("booking is already completed")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)

// Actor identifies who is attempting a lifecycle transition. The id and role
// come from the resolved authentication context; the core never validates
// credentials itself.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

// canManage reports whether the actor may run staff transitions on a booking
// belonging to the shop owned by shopOwnerID.
func (a Actor) canManage(shopOwnerID uuid.UUID) bool {
	if a.Role == user.RoleAdmin {
		return true
	}
	return a.Role == user.RoleBarber && a.ID == shopOwnerID
}

// Booking is a single walk-in service slot. It is never deleted: history is
// append-only through status transitions and their timestamps. The queue
// position is deliberately not a field; it is derived from the day's
// non-cancelled bookings on every read.
type Booking struct {
	id          uuid.UUID
	shopID      uuid.UUID
	staffID     uuid.UUID
	customerID  uuid.UUID
	day         civil.Date
	timeOfDay   civil.TimeOfDay
	status      Status
	completedAt *civil.DateTime
	createdAt   time.Time
}

func NewBooking(shopID, staffID, customerID uuid.UUID, day civil.Date, timeOfDay civil.TimeOfDay) *Booking {
	return &Booking{
		id:         uuid.New(),
		shopID:     shopID,
		staffID:    staffID,
		customerID: customerID,
		day:        day,
		timeOfDay:  timeOfDay,
		status:     StatusConfirmed,
	}
}

func ReconstructBooking(
	id, shopID, staffID, customerID uuid.UUID,
	day civil.Date,
	timeOfDay civil.TimeOfDay,
	status Status,
	completedAt *civil.DateTime,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		shopID:      shopID,
		staffID:     staffID,
		customerID:  customerID,
		day:         day,
		timeOfDay:   timeOfDay,
		status:      status,
		completedAt: completedAt,
		createdAt:   createdAt,
	}
}

// Complete transitions confirmed/rescheduled → completed and stamps the
// completion time. The guard runs before any mutation: a rejected call leaves
// the booking untouched, including an already-set completion timestamp.
func (b *Booking) Complete(actor Actor, shopOwnerID uuid.UUID, at civil.DateTime) error {
	if !actor.canManage(shopOwnerID) {
		return ErrForbidden
	}
	if b.status == StatusCompleted {
		return ErrAlreadyCompleted
	}

	b.status = StatusCompleted
	b.completedAt = &at
	return nil
}

// MoveToTomorrow reschedules the booking to newDay (the caller passes the
// calendar's today(+1)), keeping the assigned time unchanged.
func (b *Booking) MoveToTomorrow(actor Actor, shopOwnerID uuid.UUID, newDay civil.Date) error {
	if !actor.canManage(shopOwnerID) {
		return ErrForbidden
	}
	if b.status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	b.day = newDay
	b.status = StatusRescheduled
	return nil
}

// Cancel may be performed by the requesting customer as well as the shop's
// owner or an administrator. Cancelled bookings keep their record but drop
// out of every future queue computation.
func (b *Booking) Cancel(actor Actor, shopOwnerID uuid.UUID) error {
	if actor.ID != b.customerID && !actor.canManage(shopOwnerID) {
		return ErrForbidden
	}
	if b.status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	b.status = StatusCancelled
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status == StatusConfirmed || b.status == StatusRescheduled
}

func (b *Booking) ID() uuid.UUID                 { return b.id }
func (b *Booking) ShopID() uuid.UUID             { return b.shopID }
func (b *Booking) StaffID() uuid.UUID            { return b.staffID }
func (b *Booking) CustomerID() uuid.UUID         { return b.customerID }
func (b *Booking) Day() civil.Date               { return b.day }
func (b *Booking) TimeOfDay() civil.TimeOfDay    { return b.timeOfDay }
func (b *Booking) Status() Status                { return b.status }
func (b *Booking) CompletedAt() *civil.DateTime  { return b.completedAt }
func (b *Booking) CreatedAt() time.Time          { return b.createdAt }
