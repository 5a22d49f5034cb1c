package repository

import (
	"context"

	"navbat/internal/domain/booking"
	"navbat/internal/infra"
	"navbat/internal/infra/db"
	"navbat/internal/pkg/civil"
	"navbat/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const createBookingSQL = `
INSERT INTO bookings (id, shop_id, staff_id, customer_id, day, time_of_day, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

const setBookingStatusSQL = `
UPDATE bookings
SET status = $2, completed_at = $3, updated_at = now()
WHERE id = $1`

const rescheduleBookingSQL = `
UPDATE bookings
SET day = $2, status = 'rescheduled', updated_at = now()
WHERE id = $1`

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.ShopID(),
		b.StaffID(),
		b.CustomerID(),
		pgconv.DateToPgtype(b.Day()),
		pgconv.TimeOfDayToPgtype(b.TimeOfDay()),
		b.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err, infra.KindFromPgError(err))
	}
	return id, nil
}

// SetStatus also clears or stamps completed_at; pass nil for transitions
// other than completion.
func (r *BookingRepository) SetStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status, completedAt *civil.DateTime) error {
	tag, err := tx.Exec(ctx, setBookingStatusSQL, id, status.String(), pgconv.DateTimePtrToPgtype(completedAt))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// Reschedule moves the booking to newDay keeping its assigned time; the
// status flips to rescheduled in the same statement.
func (r *BookingRepository) Reschedule(ctx context.Context, tx db.DBTX, id uuid.UUID, newDay civil.Date) error {
	tag, err := tx.Exec(ctx, rescheduleBookingSQL, id, pgconv.DateToPgtype(newDay))
	if err != nil {
		return infra.WrapRepoErr("failed to reschedule booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
