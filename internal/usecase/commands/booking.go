package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"navbat/internal/domain/booking"
	reqdto "navbat/internal/handler/dto/request"
	"navbat/internal/infra"
	"navbat/internal/pkg/civil"
	"navbat/internal/pkg/errs"
	"navbat/internal/usecase/queries"
	"navbat/internal/usecase/shared"
)

var (
	ErrShopNotFound            = errs.New("shop not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrNoActiveStaff           = errs.New("no active staff available")
	ErrForbidden               = errs.New("operation not allowed for this account")
	ErrAlreadyCompleted        = errs.New("booking already completed")
	ErrAlreadyCancelled        = errs.New("booking already cancelled")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookingCommands interface {
	// CreateBooking allocates the next walk-in slot of the shop's current
	// civil day and returns the stored booking with its queue position.
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, customerID uuid.UUID) (*queries.BookingView, error)
	CompleteBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) error
	// MoveBookingToTomorrow pushes the booking to the next civil day keeping
	// its assigned time, and returns the updated view.
	MoveBookingToTomorrow(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	selector       booking.StaffSelector
	calendar       *civil.Calendar
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	selector booking.StaffSelector,
	calendar *civil.Calendar,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		selector:       selector,
		calendar:       calendar,
	}
}

func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	customerID uuid.UUID,
) (*queries.BookingView, error) {
	var bookingID uuid.UUID

	// The per-shop lock serializes concurrent allocations: the queue read
	// and the insert happen atomically, so two walk-ins can never be handed
	// the same slot.
	err := c.uow.WithinShopLock(ctx, req.ShopID, func(ctx context.Context, tx shared.Tx) error {
		shopSnap, err := tx.Reads().ShopByID(ctx, req.ShopID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrShopNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !shopSnap.IsActive {
			return ErrShopNotFound
		}

		staff, err := tx.Reads().ActiveStaffForShop(ctx, req.ShopID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		member, ok := c.selector.Select(staff)
		if !ok {
			return ErrNoActiveStaff
		}

		today := c.calendar.Today(0)
		times, err := tx.Reads().BookingTimesForDay(ctx, req.ShopID, today)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		slot, _ := booking.AllocateSlot(times)

		entity := booking.NewBooking(req.ShopID, member.ID, customerID, today, slot)
		id, err := tx.Bookings().Create(ctx, tx.DB(), entity)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		bookingID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByID(ctx, bookingID)
}

func (c *bookingCommandsImpl) CompleteBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) error {
	completedAt := c.calendar.NowStamp()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, ownerID, err := c.loadForTransition(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if err := entity.Complete(actor, ownerID, completedAt); err != nil {
			return mapLifecycleError(err)
		}

		if err := tx.Bookings().SetStatus(ctx, tx.DB(), bookingID, booking.StatusCompleted, entity.CompletedAt()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) MoveBookingToTomorrow(
	ctx context.Context,
	actor booking.Actor,
	bookingID uuid.UUID,
) (*queries.BookingView, error) {
	tomorrow := c.calendar.Today(1)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, ownerID, err := c.loadForTransition(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if err := entity.MoveToTomorrow(actor, ownerID, tomorrow); err != nil {
			return mapLifecycleError(err)
		}

		if err := tx.Bookings().Reschedule(ctx, tx.DB(), bookingID, entity.Day()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByID(ctx, bookingID)
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, ownerID, err := c.loadForTransition(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if err := entity.Cancel(actor, ownerID); err != nil {
			return mapLifecycleError(err)
		}

		if err := tx.Bookings().SetStatus(ctx, tx.DB(), bookingID, booking.StatusCancelled, nil); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// loadForTransition fetches the booking snapshot and the owning barber of its
// shop inside the current transaction.
func (c *bookingCommandsImpl) loadForTransition(
	ctx context.Context,
	tx shared.Tx,
	bookingID uuid.UUID,
) (*booking.Booking, uuid.UUID, error) {
	snap, err := tx.Reads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, uuid.Nil, ErrBookingNotFound
		}
		return nil, uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	shopSnap, err := tx.Reads().ShopByID(ctx, snap.ShopID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, uuid.Nil, ErrShopNotFound
		}
		return nil, uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return snap.ToEntity(), shopSnap.OwnerID, nil
}

func mapLifecycleError(err error) error {
	switch {
	case errors.Is(err, booking.ErrForbidden):
		return ErrForbidden
	case errors.Is(err, booking.ErrAlreadyCompleted):
		return ErrAlreadyCompleted
	case errors.Is(err, booking.ErrAlreadyCancelled):
		return ErrAlreadyCancelled
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}
