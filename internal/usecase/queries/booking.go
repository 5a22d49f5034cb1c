package queries

import (
	"context"

	"github.com/google/uuid"

	"navbat/internal/infra"
	"navbat/internal/pkg/civil"
	"navbat/internal/pkg/errs"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
)

// DefaultHistoryDays is the history window applied when the client does not
// ask for one.
const DefaultHistoryDays = 7

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// ListMine returns the customer's active bookings with live queue
	// positions.
	ListMine(ctx context.Context, customerID uuid.UUID) ([]BookingView, error)
	// History returns the customer's bookings of the past `days` civil days,
	// today included, newest first. Negative values clamp to zero.
	History(ctx context.Context, customerID uuid.UUID, days int) ([]HistoryEntry, error)
	// QueueForOwner returns the queue of the shop owned by ownerID for the
	// given day; a nil day means today.
	QueueForOwner(ctx context.Context, ownerID uuid.UUID, day *civil.Date) ([]QueueEntry, error)
	// HistoryForOwner returns the shop's bookings of the past `days` civil
	// days with customer contact details, same windowing as History.
	HistoryForOwner(ctx context.Context, ownerID uuid.UUID, days int) ([]OwnerHistoryEntry, error)
}

type BookingReadStore interface {
	FindView(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListActiveByCustomer(ctx context.Context, customerID uuid.UUID) ([]BookingView, error)
	ListHistoryByCustomer(ctx context.Context, customerID uuid.UUID, from, to civil.Date) ([]HistoryEntry, error)
	QueueForOwnerDay(ctx context.Context, ownerID uuid.UUID, day civil.Date) ([]QueueEntry, error)
	ListHistoryByOwner(ctx context.Context, ownerID uuid.UUID, from, to civil.Date) ([]OwnerHistoryEntry, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
	calendar  *civil.Calendar
}

func NewBookingQueries(readStore BookingReadStore, calendar *civil.Calendar) BookingQueries {
	return &bookingQueriesImpl{
		readStore: readStore,
		calendar:  calendar,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.readStore.FindView(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListMine(ctx context.Context, customerID uuid.UUID) ([]BookingView, error) {
	return q.readStore.ListActiveByCustomer(ctx, customerID)
}

func (q *bookingQueriesImpl) History(ctx context.Context, customerID uuid.UUID, days int) ([]HistoryEntry, error) {
	if days < 0 {
		days = 0
	}
	to := q.calendar.Today(0)
	from := to.AddDays(-days)
	return q.readStore.ListHistoryByCustomer(ctx, customerID, from, to)
}

func (q *bookingQueriesImpl) QueueForOwner(ctx context.Context, ownerID uuid.UUID, day *civil.Date) ([]QueueEntry, error) {
	target := q.calendar.Today(0)
	if day != nil {
		target = *day
	}
	entries, err := q.readStore.QueueForOwnerDay(ctx, ownerID, target)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return entries, nil
}

func (q *bookingQueriesImpl) HistoryForOwner(ctx context.Context, ownerID uuid.UUID, days int) ([]OwnerHistoryEntry, error) {
	if days < 0 {
		days = 0
	}
	to := q.calendar.Today(0)
	from := to.AddDays(-days)
	entries, err := q.readStore.ListHistoryByOwner(ctx, ownerID, from, to)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return entries, nil
}
