//go:build unit

package commands_test

import (
	"context"

	"navbat/internal/domain/booking"
	"navbat/internal/domain/shop"
	"navbat/internal/domain/user"
	"navbat/internal/infra"
	"navbat/internal/infra/db"
	"navbat/internal/pkg/civil"
	"navbat/internal/usecase/queries"
	"navbat/internal/usecase/shared"

	"github.com/google/uuid"
)

func notFound() error {
	return infra.WrapRepoErr("row not found", nil, infra.KindNotFound)
}

func duplicateKey() error {
	return infra.WrapRepoErr("unique constraint violated", nil, infra.KindDuplicateKey)
}

type timesKey struct {
	shopID uuid.UUID
	day    civil.Date
}

// fakeWorld is an in-memory store standing in for the database. The fake
// unit of work runs closures against it directly; there is no transaction
// isolation, which is fine for single-operation command tests.
type fakeWorld struct {
	shops    map[uuid.UUID]*shared.ShopSnapshot
	staff    map[uuid.UUID][]shop.StaffMember
	bookings map[uuid.UUID]*shared.BookingSnapshot
	times    map[timesKey][]civil.TimeOfDay
	users    map[uuid.UUID]*shared.UserSnapshot

	lockedShops []uuid.UUID

	duplicateShopOwner bool
	duplicatePhone     bool

	createdUsers []*user.User
	updatedRoles map[uuid.UUID]user.Role
	setActive    map[uuid.UUID]bool
	patches      map[uuid.UUID]shared.ShopPatch
	staffAdded   []shop.StaffMember
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		shops:        make(map[uuid.UUID]*shared.ShopSnapshot),
		staff:        make(map[uuid.UUID][]shop.StaffMember),
		bookings:     make(map[uuid.UUID]*shared.BookingSnapshot),
		times:        make(map[timesKey][]civil.TimeOfDay),
		users:        make(map[uuid.UUID]*shared.UserSnapshot),
		updatedRoles: make(map[uuid.UUID]user.Role),
		setActive:    make(map[uuid.UUID]bool),
		patches:      make(map[uuid.UUID]shared.ShopPatch),
	}
}

func (w *fakeWorld) addShop(ownerID uuid.UUID, active bool) uuid.UUID {
	id := uuid.New()
	w.shops[id] = &shared.ShopSnapshot{
		ID:       id,
		Name:     "Test Shop",
		Address:  "Test Street 1",
		OwnerID:  ownerID,
		IsActive: active,
	}
	return id
}

func (w *fakeWorld) addStaff(shopID uuid.UUID, active bool) uuid.UUID {
	m := shop.StaffMember{ID: uuid.New(), ShopID: shopID, Name: "Staff", IsActive: active}
	w.staff[shopID] = append(w.staff[shopID], m)
	return m.ID
}

func (w *fakeWorld) addBooking(shopID, customerID uuid.UUID, day civil.Date, t civil.TimeOfDay, status booking.Status) uuid.UUID {
	id := uuid.New()
	w.bookings[id] = &shared.BookingSnapshot{
		ID:         id,
		ShopID:     shopID,
		StaffID:    uuid.New(),
		CustomerID: customerID,
		Day:        day,
		TimeOfDay:  t,
		Status:     status,
	}
	return id
}

func (w *fakeWorld) addUser(role user.Role, active bool) uuid.UUID {
	id := uuid.New()
	w.users[id] = &shared.UserSnapshot{
		ID:       id,
		Phone:    "+998901234567",
		Name:     "Test User",
		Role:     role,
		IsActive: active,
	}
	return id
}

// --- unit of work ---

type fakeUoW struct {
	w *fakeWorld
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{w: u.w})
}

func (u *fakeUoW) WithinShopLock(ctx context.Context, shopID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.w.lockedShops = append(u.w.lockedShops, shopID)
	return fn(ctx, &fakeTx{w: u.w})
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{w: u.w}
}

type fakeTx struct {
	w *fakeWorld
}

func (t *fakeTx) Bookings() shared.BookingRepository { return &fakeBookingRepo{w: t.w} }
func (t *fakeTx) Shops() shared.ShopRepository       { return &fakeShopRepo{w: t.w} }
func (t *fakeTx) Users() shared.UserRepository       { return &fakeUserRepo{w: t.w} }
func (t *fakeTx) Reads() shared.CommandReads         { return &fakeReads{w: t.w} }
func (t *fakeTx) DB() db.DBTX                        { return nil }

// --- command reads ---

type fakeReads struct {
	w *fakeWorld
}

func (r *fakeReads) ShopByID(_ context.Context, id uuid.UUID) (*shared.ShopSnapshot, error) {
	if s, ok := r.w.shops[id]; ok {
		return s, nil
	}
	return nil, notFound()
}

func (r *fakeReads) ShopByOwner(_ context.Context, ownerID uuid.UUID) (*shared.ShopSnapshot, error) {
	for _, s := range r.w.shops {
		if s.OwnerID == ownerID {
			return s, nil
		}
	}
	return nil, notFound()
}

func (r *fakeReads) ActiveStaffForShop(_ context.Context, shopID uuid.UUID) ([]shop.StaffMember, error) {
	var active []shop.StaffMember
	for _, m := range r.w.staff[shopID] {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active, nil
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	if b, ok := r.w.bookings[id]; ok {
		return b, nil
	}
	return nil, notFound()
}

func (r *fakeReads) BookingTimesForDay(_ context.Context, shopID uuid.UUID, day civil.Date) ([]civil.TimeOfDay, error) {
	return r.w.times[timesKey{shopID: shopID, day: day}], nil
}

func (r *fakeReads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	if u, ok := r.w.users[id]; ok {
		return u, nil
	}
	return nil, notFound()
}

// --- repositories ---

type fakeBookingRepo struct {
	w *fakeWorld
}

func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	r.w.bookings[b.ID()] = &shared.BookingSnapshot{
		ID:         b.ID(),
		ShopID:     b.ShopID(),
		StaffID:    b.StaffID(),
		CustomerID: b.CustomerID(),
		Day:        b.Day(),
		TimeOfDay:  b.TimeOfDay(),
		Status:     b.Status(),
	}
	key := timesKey{shopID: b.ShopID(), day: b.Day()}
	r.w.times[key] = append(r.w.times[key], b.TimeOfDay())
	return b.ID(), nil
}

func (r *fakeBookingRepo) SetStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status booking.Status, completedAt *civil.DateTime) error {
	b, ok := r.w.bookings[id]
	if !ok {
		return notFound()
	}
	b.Status = status
	b.CompletedAt = completedAt
	return nil
}

func (r *fakeBookingRepo) Reschedule(_ context.Context, _ db.DBTX, id uuid.UUID, newDay civil.Date) error {
	b, ok := r.w.bookings[id]
	if !ok {
		return notFound()
	}
	b.Day = newDay
	b.Status = booking.StatusRescheduled
	return nil
}

type fakeShopRepo struct {
	w *fakeWorld
}

func (r *fakeShopRepo) Create(_ context.Context, _ db.DBTX, s *shop.Shop) (uuid.UUID, error) {
	if r.w.duplicateShopOwner {
		return uuid.Nil, duplicateKey()
	}
	r.w.shops[s.ID()] = &shared.ShopSnapshot{
		ID:       s.ID(),
		Name:     s.Name(),
		Address:  s.Address(),
		OwnerID:  s.OwnerID(),
		IsActive: s.IsActive(),
	}
	return s.ID(), nil
}

func (r *fakeShopRepo) Update(_ context.Context, _ db.DBTX, id uuid.UUID, patch shared.ShopPatch) error {
	if _, ok := r.w.shops[id]; !ok {
		return notFound()
	}
	r.w.patches[id] = patch
	return nil
}

func (r *fakeShopRepo) Deactivate(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	s, ok := r.w.shops[id]
	if !ok {
		return notFound()
	}
	s.IsActive = false
	return nil
}

func (r *fakeShopRepo) CreateStaffMember(_ context.Context, _ db.DBTX, m shop.StaffMember) error {
	r.w.staff[m.ShopID] = append(r.w.staff[m.ShopID], m)
	r.w.staffAdded = append(r.w.staffAdded, m)
	return nil
}

type fakeUserRepo struct {
	w *fakeWorld
}

func (r *fakeUserRepo) Create(_ context.Context, _ db.DBTX, u *user.User) (uuid.UUID, error) {
	if r.w.duplicatePhone {
		return uuid.Nil, duplicateKey()
	}
	r.w.createdUsers = append(r.w.createdUsers, u)
	r.w.users[u.ID()] = &shared.UserSnapshot{
		ID:       u.ID(),
		Phone:    u.Phone().Value(),
		Name:     u.Name().Value(),
		Role:     u.Role(),
		IsActive: u.IsActive(),
	}
	return u.ID(), nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, _ db.DBTX, id uuid.UUID, role user.Role) error {
	u, ok := r.w.users[id]
	if !ok {
		return notFound()
	}
	u.Role = role
	r.w.updatedRoles[id] = role
	return nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, _ db.DBTX, id uuid.UUID, active bool) error {
	u, ok := r.w.users[id]
	if !ok {
		return notFound()
	}
	u.IsActive = active
	r.w.setActive[id] = active
	return nil
}

// --- query-side fakes ---

// fakeBookingQueries serves the read-after-write the booking commands do. It
// renders views straight from the world's snapshots.
type fakeBookingQueries struct {
	w *fakeWorld
}

func (q *fakeBookingQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	b, ok := q.w.bookings[id]
	if !ok {
		return nil, queries.ErrBookingNotFound
	}
	return q.view(b), nil
}

func (q *fakeBookingQueries) ListMine(_ context.Context, customerID uuid.UUID) ([]queries.BookingView, error) {
	var views []queries.BookingView
	for _, b := range q.w.bookings {
		if b.CustomerID == customerID {
			views = append(views, *q.view(b))
		}
	}
	return views, nil
}

func (q *fakeBookingQueries) History(context.Context, uuid.UUID, int) ([]queries.HistoryEntry, error) {
	return nil, nil
}

func (q *fakeBookingQueries) QueueForOwner(context.Context, uuid.UUID, *civil.Date) ([]queries.QueueEntry, error) {
	return nil, nil
}

func (q *fakeBookingQueries) HistoryForOwner(context.Context, uuid.UUID, int) ([]queries.OwnerHistoryEntry, error) {
	return nil, nil
}

func (q *fakeBookingQueries) view(b *shared.BookingSnapshot) *queries.BookingView {
	return &queries.BookingView{
		ID:        b.ID,
		ShopID:    b.ShopID,
		Day:       b.Day,
		TimeOfDay: b.TimeOfDay,
		Status:    b.Status.String(),
	}
}

// fakeUserReadStore backs the auth commands.
type fakeUserReadStore struct {
	w      *fakeWorld
	hashes map[string]string // phone -> password hash
}

func (r *fakeUserReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	if u, ok := r.w.users[id]; ok {
		return r.view(u), nil
	}
	return nil, notFound()
}

func (r *fakeUserReadStore) FindByPhone(_ context.Context, phone string) (*queries.AuthorizedUserView, string, error) {
	for _, u := range r.w.users {
		if u.Phone == phone {
			return r.view(u), r.hashes[phone], nil
		}
	}
	return nil, "", notFound()
}

func (r *fakeUserReadStore) List(context.Context, *user.Role) ([]queries.UserListItem, error) {
	return nil, nil
}

func (r *fakeUserReadStore) view(u *shared.UserSnapshot) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       u.ID,
		Phone:    u.Phone,
		Name:     u.Name,
		Role:     u.Role.String(),
		IsActive: u.IsActive,
	}
}
