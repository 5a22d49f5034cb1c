package readstore

import (
	"context"

	"navbat/internal/domain/shop"
	"navbat/internal/infra"
	"navbat/internal/infra/db"
	"navbat/internal/pkg/civil"
	"navbat/internal/pkg/pgconv"
	"navbat/internal/usecase/queries"
	"navbat/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const listActiveShopsSQL = `
SELECT s.id, s.name, s.image, s.address, s.phone, s.description, s.price,
       s.opening_time, s.closing_time,
       (SELECT count(*) FROM staff_members m WHERE m.shop_id = s.id AND m.is_active) AS staff_count
FROM shops s
WHERE s.is_active
ORDER BY s.created_at`

const findShopSQL = `
SELECT id, name, image, address, phone, description, price,
       opening_time, closing_time, owner_id, is_active
FROM shops
WHERE id = $1`

const findShopByOwnerSQL = `
SELECT id, name, image, address, phone, description, price,
       opening_time, closing_time, owner_id, is_active
FROM shops
WHERE owner_id = $1`

const findShopSnapshotSQL = `
SELECT id, name, address, owner_id, is_active
FROM shops
WHERE id = $1`

const findShopSnapshotByOwnerSQL = `
SELECT id, name, address, owner_id, is_active
FROM shops
WHERE owner_id = $1`

const listShopStaffSQL = `
SELECT id, name, is_active
FROM staff_members
WHERE shop_id = $1
ORDER BY created_at`

const listActiveShopStaffSQL = `
SELECT id, shop_id, name, is_active
FROM staff_members
WHERE shop_id = $1 AND is_active
ORDER BY created_at`

// Positions are ranks over the day's non-cancelled bookings ordered by
// assigned time; creation order breaks the (unreachable) tie.
const shopQueueSQL = `
SELECT b.id, u.name AS customer_name, m.name AS staff_name, b.time_of_day, b.status,
       ROW_NUMBER() OVER (ORDER BY b.time_of_day, b.created_at) AS position
FROM bookings b
JOIN users u ON u.id = b.customer_id
JOIN staff_members m ON m.id = b.staff_id
WHERE b.shop_id = $1 AND b.day = $2 AND b.status <> 'cancelled'
ORDER BY position`

type ShopReadStore struct {
	db db.DBTX
}

func NewShopReadStore(db db.DBTX) *ShopReadStore {
	return &ShopReadStore{db: db}
}

func (r *ShopReadStore) ListActive(ctx context.Context) ([]queries.ShopListItem, error) {
	rows, err := r.db.Query(ctx, listActiveShopsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list shops", err)
	}
	defer rows.Close()

	items := []queries.ShopListItem{}
	for rows.Next() {
		var (
			item               queries.ShopListItem
			image, description pgtype.Text
			opening, closing   pgtype.Time
			staffCount         int64
		)
		if err := rows.Scan(
			&item.ID, &item.Name, &image, &item.Address, &item.Phone,
			&description, &item.Price, &opening, &closing, &staffCount,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan shop row", err)
		}
		item.Image = pgconv.StringPtrFromPgtype(image)
		item.Description = pgconv.StringPtrFromPgtype(description)
		item.OpeningTime = pgconv.TimeOfDayFromPgtype(opening)
		item.ClosingTime = pgconv.TimeOfDayFromPgtype(closing)
		item.StaffCount = int(staffCount)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list shops", err)
	}
	return items, nil
}

func (r *ShopReadStore) FindDetail(ctx context.Context, id uuid.UUID, day civil.Date) (*queries.ShopDetailView, error) {
	return r.findDetail(ctx, findShopSQL, id, day)
}

func (r *ShopReadStore) FindDetailByOwner(ctx context.Context, ownerID uuid.UUID, day civil.Date) (*queries.ShopDetailView, error) {
	return r.findDetail(ctx, findShopByOwnerSQL, ownerID, day)
}

func (r *ShopReadStore) findDetail(ctx context.Context, shopSQL string, key uuid.UUID, day civil.Date) (*queries.ShopDetailView, error) {
	var (
		view               queries.ShopDetailView
		image, description pgtype.Text
		opening, closing   pgtype.Time
	)
	err := r.db.QueryRow(ctx, shopSQL, key).Scan(
		&view.ID, &view.Name, &image, &view.Address, &view.Phone,
		&description, &view.Price, &opening, &closing, &view.OwnerID, &view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("shop not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find shop", err)
	}
	view.Image = pgconv.StringPtrFromPgtype(image)
	view.Description = pgconv.StringPtrFromPgtype(description)
	view.OpeningTime = pgconv.TimeOfDayFromPgtype(opening)
	view.ClosingTime = pgconv.TimeOfDayFromPgtype(closing)

	staff, err := r.listStaff(ctx, view.ID)
	if err != nil {
		return nil, err
	}
	view.Staff = staff

	queue, err := r.QueueForDay(ctx, view.ID, day)
	if err != nil {
		return nil, err
	}
	view.TodayQueue = queue

	return &view, nil
}

func (r *ShopReadStore) listStaff(ctx context.Context, shopID uuid.UUID) ([]queries.StaffView, error) {
	rows, err := r.db.Query(ctx, listShopStaffSQL, shopID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list staff", err)
	}
	defer rows.Close()

	staff := []queries.StaffView{}
	for rows.Next() {
		var s queries.StaffView
		if err := rows.Scan(&s.ID, &s.Name, &s.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan staff row", err)
		}
		staff = append(staff, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list staff", err)
	}
	return staff, nil
}

// QueueForDay returns the shop's ordered queue for one civil day.
func (r *ShopReadStore) QueueForDay(ctx context.Context, shopID uuid.UUID, day civil.Date) ([]queries.QueueEntry, error) {
	rows, err := r.db.Query(ctx, shopQueueSQL, shopID, pgconv.DateToPgtype(day))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load shop queue", err)
	}
	defer rows.Close()

	entries := []queries.QueueEntry{}
	for rows.Next() {
		var (
			e         queries.QueueEntry
			timeOfDay pgtype.Time
			position  int64
		)
		if err := rows.Scan(&e.BookingID, &e.CustomerName, &e.StaffName, &timeOfDay, &e.Status, &position); err != nil {
			return nil, infra.WrapRepoErr("failed to scan queue row", err)
		}
		e.TimeOfDay = pgconv.TimeOfDayFromPgtype(timeOfDay)
		e.Position = int(position)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to load shop queue", err)
	}
	return entries, nil
}

// FindSnapshot is the command side's minimal shop read.
func (r *ShopReadStore) FindSnapshot(ctx context.Context, id uuid.UUID) (*shared.ShopSnapshot, error) {
	return r.findSnapshot(ctx, findShopSnapshotSQL, id)
}

func (r *ShopReadStore) FindSnapshotByOwner(ctx context.Context, ownerID uuid.UUID) (*shared.ShopSnapshot, error) {
	return r.findSnapshot(ctx, findShopSnapshotByOwnerSQL, ownerID)
}

func (r *ShopReadStore) findSnapshot(ctx context.Context, shopSQL string, key uuid.UUID) (*shared.ShopSnapshot, error) {
	var snap shared.ShopSnapshot
	err := r.db.QueryRow(ctx, shopSQL, key).Scan(
		&snap.ID, &snap.Name, &snap.Address, &snap.OwnerID, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("shop not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find shop", err)
	}
	return &snap, nil
}

// ActiveStaff returns the shop's active staff in creation order, the order
// the booking assignment walks.
func (r *ShopReadStore) ActiveStaff(ctx context.Context, shopID uuid.UUID) ([]shop.StaffMember, error) {
	rows, err := r.db.Query(ctx, listActiveShopStaffSQL, shopID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active staff", err)
	}
	defer rows.Close()

	staff := []shop.StaffMember{}
	for rows.Next() {
		var m shop.StaffMember
		if err := rows.Scan(&m.ID, &m.ShopID, &m.Name, &m.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan staff row", err)
		}
		staff = append(staff, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list active staff", err)
	}
	return staff, nil
}
