package queries

import (
	"context"

	"github.com/google/uuid"

	"navbat/internal/infra"
	"navbat/internal/pkg/civil"
	"navbat/internal/pkg/errs"
)

var (
	ErrShopNotFound = errs.New("shop not found")
)

type ShopQueries interface {
	ListActive(ctx context.Context) ([]ShopListItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ShopDetailView, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*ShopDetailView, error)
}

type ShopReadStore interface {
	ListActive(ctx context.Context) ([]ShopListItem, error)
	// FindDetail loads the shop with its staff and the queue for the given
	// day (non-cancelled bookings, positions derived by assigned time).
	FindDetail(ctx context.Context, id uuid.UUID, day civil.Date) (*ShopDetailView, error)
	FindDetailByOwner(ctx context.Context, ownerID uuid.UUID, day civil.Date) (*ShopDetailView, error)
}

type shopQueriesImpl struct {
	readStore ShopReadStore
	calendar  *civil.Calendar
}

func NewShopQueries(readStore ShopReadStore, calendar *civil.Calendar) ShopQueries {
	return &shopQueriesImpl{
		readStore: readStore,
		calendar:  calendar,
	}
}

func (q *shopQueriesImpl) ListActive(ctx context.Context) ([]ShopListItem, error) {
	return q.readStore.ListActive(ctx)
}

func (q *shopQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ShopDetailView, error) {
	view, err := q.readStore.FindDetail(ctx, id, q.calendar.Today(0))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *shopQueriesImpl) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*ShopDetailView, error) {
	view, err := q.readStore.FindDetailByOwner(ctx, ownerID, q.calendar.Today(0))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return view, nil
}
