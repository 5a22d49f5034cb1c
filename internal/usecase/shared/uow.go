package shared

import (
	"context"

	"navbat/internal/domain/booking"
	"navbat/internal/domain/shop"
	"navbat/internal/domain/user"
	"navbat/internal/infra/db"
	"navbat/internal/pkg/civil"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinShopLock: like Within but first takes a transaction-scoped
	// advisory lock on the shop, serializing slot allocation per shop so two
	// concurrent "next slot" calls cannot read the same stale queue.
	WithinShopLock(ctx context.Context, shopID uuid.UUID, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions.
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: direct access to command reads outside transactions.
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Shops() ShopRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the write side's own read operations: minimal snapshots
// used to validate and rebuild aggregates, independent from the query views.
type CommandReads interface {
	ShopByID(ctx context.Context, id uuid.UUID) (*ShopSnapshot, error)
	ShopByOwner(ctx context.Context, ownerID uuid.UUID) (*ShopSnapshot, error)
	ActiveStaffForShop(ctx context.Context, shopID uuid.UUID) ([]shop.StaffMember, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// BookingTimesForDay returns the times of the day's non-cancelled
	// bookings for a shop, the read the slot allocator runs over.
	BookingTimesForDay(ctx context.Context, shopID uuid.UUID, day civil.Date) ([]civil.TimeOfDay, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	SetStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status, completedAt *civil.DateTime) error
	Reschedule(ctx context.Context, tx db.DBTX, id uuid.UUID, newDay civil.Date) error
}

type ShopRepository interface {
	Create(ctx context.Context, tx db.DBTX, s *shop.Shop) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, id uuid.UUID, patch ShopPatch) error
	Deactivate(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	CreateStaffMember(ctx context.Context, tx db.DBTX, m shop.StaffMember) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	UpdateRole(ctx context.Context, tx db.DBTX, id uuid.UUID, role user.Role) error
	SetActive(ctx context.Context, tx db.DBTX, id uuid.UUID, active bool) error
}
