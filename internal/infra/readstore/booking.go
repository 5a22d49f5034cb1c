package readstore

import (
	"context"

	"navbat/internal/domain/booking"
	"navbat/internal/infra"
	"navbat/internal/infra/db"
	"navbat/internal/pkg/civil"
	"navbat/internal/pkg/pgconv"
	"navbat/internal/usecase/queries"
	"navbat/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// The queue position counts the day's non-cancelled bookings at or before
// the booking's own time, the booking itself included. NULL once inactive.
const bookingViewSQL = `
SELECT b.id, b.shop_id, s.name, s.address, m.name, b.day, b.time_of_day, b.status, b.created_at,
       CASE WHEN b.status IN ('confirmed', 'rescheduled') THEN (
           SELECT count(*) FROM bookings q
           WHERE q.shop_id = b.shop_id AND q.day = b.day
             AND q.status <> 'cancelled' AND q.time_of_day <= b.time_of_day
       ) END AS queue_position
FROM bookings b
JOIN shops s ON s.id = b.shop_id
JOIN staff_members m ON m.id = b.staff_id`

const findBookingViewSQL = bookingViewSQL + `
WHERE b.id = $1`

const listActiveBookingsByCustomerSQL = bookingViewSQL + `
WHERE b.customer_id = $1 AND b.status IN ('confirmed', 'rescheduled')
ORDER BY b.day, b.time_of_day`

const listHistoryByCustomerSQL = `
SELECT b.id, s.name, b.day, b.time_of_day, b.status, b.completed_at
FROM bookings b
JOIN shops s ON s.id = b.shop_id
WHERE b.customer_id = $1 AND b.day BETWEEN $2 AND $3
ORDER BY b.day DESC, b.time_of_day DESC`

const listHistoryByShopSQL = `
SELECT b.id, u.name, u.phone, b.day, b.time_of_day, b.status, b.completed_at
FROM bookings b
JOIN users u ON u.id = b.customer_id
WHERE b.shop_id = $1 AND b.day BETWEEN $2 AND $3
ORDER BY b.day DESC, b.time_of_day DESC`

const findBookingSnapshotSQL = `
SELECT id, shop_id, staff_id, customer_id, day, time_of_day, status, completed_at, created_at
FROM bookings
WHERE id = $1`

const bookingTimesForDaySQL = `
SELECT time_of_day
FROM bookings
WHERE shop_id = $1 AND day = $2 AND status <> 'cancelled'`

type BookingReadStore struct {
	db    db.DBTX
	shops *ShopReadStore
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db, shops: NewShopReadStore(db)}
}

func (r *BookingReadStore) FindView(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := r.scanView(r.db.QueryRow(ctx, findBookingViewSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return view, nil
}

func (r *BookingReadStore) ListActiveByCustomer(ctx context.Context, customerID uuid.UUID) ([]queries.BookingView, error) {
	rows, err := r.db.Query(ctx, listActiveBookingsByCustomerSQL, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	views := []queries.BookingView{}
	for rows.Next() {
		view, err := r.scanView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return views, nil
}

func (r *BookingReadStore) ListHistoryByCustomer(ctx context.Context, customerID uuid.UUID, from, to civil.Date) ([]queries.HistoryEntry, error) {
	rows, err := r.db.Query(ctx, listHistoryByCustomerSQL, customerID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking history", err)
	}
	defer rows.Close()

	entries := []queries.HistoryEntry{}
	for rows.Next() {
		var (
			e           queries.HistoryEntry
			day         pgtype.Date
			timeOfDay   pgtype.Time
			completedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&e.ID, &e.ShopName, &day, &timeOfDay, &e.Status, &completedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan history row", err)
		}
		e.Day = pgconv.DateFromPgtype(day)
		e.TimeOfDay = pgconv.TimeOfDayFromPgtype(timeOfDay)
		e.CompletedAt = pgconv.DateTimePtrFromPgtype(completedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list booking history", err)
	}
	return entries, nil
}

func (r *BookingReadStore) QueueForOwnerDay(ctx context.Context, ownerID uuid.UUID, day civil.Date) ([]queries.QueueEntry, error) {
	snap, err := r.shops.FindSnapshotByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return r.shops.QueueForDay(ctx, snap.ID, day)
}

func (r *BookingReadStore) ListHistoryByOwner(ctx context.Context, ownerID uuid.UUID, from, to civil.Date) ([]queries.OwnerHistoryEntry, error) {
	snap, err := r.shops.FindSnapshotByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, listHistoryByShopSQL, snap.ID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list shop booking history", err)
	}
	defer rows.Close()

	entries := []queries.OwnerHistoryEntry{}
	for rows.Next() {
		var (
			e           queries.OwnerHistoryEntry
			day         pgtype.Date
			timeOfDay   pgtype.Time
			completedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&e.ID, &e.CustomerName, &e.CustomerPhone, &day, &timeOfDay, &e.Status, &completedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan shop history row", err)
		}
		e.Day = pgconv.DateFromPgtype(day)
		e.TimeOfDay = pgconv.TimeOfDayFromPgtype(timeOfDay)
		e.CompletedAt = pgconv.DateTimePtrFromPgtype(completedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list shop booking history", err)
	}
	return entries, nil
}

// FindSnapshot is the command side's booking read.
func (r *BookingReadStore) FindSnapshot(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var (
		snap        shared.BookingSnapshot
		day         pgtype.Date
		timeOfDay   pgtype.Time
		status      string
		completedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findBookingSnapshotSQL, id).Scan(
		&snap.ID, &snap.ShopID, &snap.StaffID, &snap.CustomerID,
		&day, &timeOfDay, &status, &completedAt, &snap.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	parsedStatus, err := booking.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid booking status in storage", err)
	}

	snap.Day = pgconv.DateFromPgtype(day)
	snap.TimeOfDay = pgconv.TimeOfDayFromPgtype(timeOfDay)
	snap.Status = parsedStatus
	snap.CompletedAt = pgconv.DateTimePtrFromPgtype(completedAt)
	return &snap, nil
}

// TimesForDay feeds the slot allocator: the assigned times of the day's
// non-cancelled bookings, order irrelevant.
func (r *BookingReadStore) TimesForDay(ctx context.Context, shopID uuid.UUID, day civil.Date) ([]civil.TimeOfDay, error) {
	rows, err := r.db.Query(ctx, bookingTimesForDaySQL, shopID, pgconv.DateToPgtype(day))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking times", err)
	}
	defer rows.Close()

	times := []civil.TimeOfDay{}
	for rows.Next() {
		var t pgtype.Time
		if err := rows.Scan(&t); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking time", err)
		}
		times = append(times, pgconv.TimeOfDayFromPgtype(t))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to load booking times", err)
	}
	return times, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *BookingReadStore) scanView(row rowScanner) (*queries.BookingView, error) {
	var (
		view      queries.BookingView
		day       pgtype.Date
		timeOfDay pgtype.Time
		position  pgtype.Int8
	)
	err := row.Scan(
		&view.ID, &view.ShopID, &view.ShopName, &view.ShopAddress, &view.StaffName,
		&day, &timeOfDay, &view.Status, &view.CreatedAt, &position,
	)
	if err != nil {
		return nil, err
	}
	view.Day = pgconv.DateFromPgtype(day)
	view.TimeOfDay = pgconv.TimeOfDayFromPgtype(timeOfDay)
	if position.Valid {
		p := int(position.Int64)
		view.QueuePosition = &p
	}
	return &view, nil
}
