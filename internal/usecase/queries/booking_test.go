//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"navbat/internal/infra"
	"navbat/internal/pkg/civil"
	"navbat/internal/pkg/clock"
	"navbat/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed at 2026-02-10 10:00 in the business timezone.
var queryNow = time.Date(2026, time.February, 10, 10, 0, 0, 0, civil.Zone)

func testCalendar() *civil.Calendar {
	return civil.NewCalendar(clock.NewMockClock(queryNow))
}

func day(d int) civil.Date {
	return civil.Date{Year: 2026, Month: time.February, Day: d}
}

type fakeBookingReadStore struct {
	view         *queries.BookingView
	history      []queries.HistoryEntry
	queue        []queries.QueueEntry
	ownerHistory []queries.OwnerHistoryEntry

	findErr  error
	queueErr error

	historyFrom civil.Date
	historyTo   civil.Date
	queueDay    civil.Date

	ownerHistoryFrom civil.Date
	ownerHistoryTo   civil.Date
}

func (f *fakeBookingReadStore) FindView(context.Context, uuid.UUID) (*queries.BookingView, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.view, nil
}

func (f *fakeBookingReadStore) ListActiveByCustomer(context.Context, uuid.UUID) ([]queries.BookingView, error) {
	return nil, nil
}

func (f *fakeBookingReadStore) ListHistoryByCustomer(_ context.Context, _ uuid.UUID, from, to civil.Date) ([]queries.HistoryEntry, error) {
	f.historyFrom = from
	f.historyTo = to
	return f.history, nil
}

func (f *fakeBookingReadStore) QueueForOwnerDay(_ context.Context, _ uuid.UUID, day civil.Date) ([]queries.QueueEntry, error) {
	if f.queueErr != nil {
		return nil, f.queueErr
	}
	f.queueDay = day
	return f.queue, nil
}

func (f *fakeBookingReadStore) ListHistoryByOwner(_ context.Context, _ uuid.UUID, from, to civil.Date) ([]queries.OwnerHistoryEntry, error) {
	if f.queueErr != nil {
		return nil, f.queueErr
	}
	f.ownerHistoryFrom = from
	f.ownerHistoryTo = to
	return f.ownerHistory, nil
}

func TestBookingHistory(t *testing.T) {
	t.Run("window spans the past N days including today", func(t *testing.T) {
		store := &fakeBookingReadStore{}
		q := queries.NewBookingQueries(store, testCalendar())

		_, err := q.History(context.Background(), uuid.New(), 7)
		require.NoError(t, err)

		assert.Equal(t, day(3), store.historyFrom)
		assert.Equal(t, day(10), store.historyTo)
	})

	t.Run("default window is a week", func(t *testing.T) {
		store := &fakeBookingReadStore{}
		q := queries.NewBookingQueries(store, testCalendar())

		_, err := q.History(context.Background(), uuid.New(), queries.DefaultHistoryDays)
		require.NoError(t, err)

		assert.Equal(t, day(3), store.historyFrom)
	})

	t.Run("negative days clamp to today only", func(t *testing.T) {
		store := &fakeBookingReadStore{}
		q := queries.NewBookingQueries(store, testCalendar())

		_, err := q.History(context.Background(), uuid.New(), -5)
		require.NoError(t, err)

		assert.Equal(t, day(10), store.historyFrom)
		assert.Equal(t, day(10), store.historyTo)
	})
}

func TestBookingGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		want := &queries.BookingView{ID: uuid.New(), Status: "confirmed"}
		q := queries.NewBookingQueries(&fakeBookingReadStore{view: want}, testCalendar())

		got, err := q.GetByID(context.Background(), want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("not found maps to the sentinel", func(t *testing.T) {
		store := &fakeBookingReadStore{findErr: infra.WrapRepoErr("no rows", nil, infra.KindNotFound)}
		q := queries.NewBookingQueries(store, testCalendar())

		_, err := q.GetByID(context.Background(), uuid.New())

		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestQueueForOwner(t *testing.T) {
	t.Run("nil day queries today", func(t *testing.T) {
		store := &fakeBookingReadStore{queue: []queries.QueueEntry{{Position: 1}}}
		q := queries.NewBookingQueries(store, testCalendar())

		entries, err := q.QueueForOwner(context.Background(), uuid.New(), nil)
		require.NoError(t, err)

		assert.Len(t, entries, 1)
		assert.Equal(t, day(10), store.queueDay)
	})

	t.Run("explicit day passes through", func(t *testing.T) {
		store := &fakeBookingReadStore{}
		q := queries.NewBookingQueries(store, testCalendar())

		target := day(14)
		_, err := q.QueueForOwner(context.Background(), uuid.New(), &target)
		require.NoError(t, err)

		assert.Equal(t, day(14), store.queueDay)
	})

	t.Run("owner without a shop", func(t *testing.T) {
		store := &fakeBookingReadStore{queueErr: infra.WrapRepoErr("no rows", nil, infra.KindNotFound)}
		q := queries.NewBookingQueries(store, testCalendar())

		_, err := q.QueueForOwner(context.Background(), uuid.New(), nil)

		assert.ErrorIs(t, err, queries.ErrShopNotFound)
	})
}

func TestHistoryForOwner(t *testing.T) {
	t.Run("windows like the customer history and keeps entries intact", func(t *testing.T) {
		want := []queries.OwnerHistoryEntry{
			{ID: uuid.New(), CustomerName: "Anvar", CustomerPhone: "+998901234567", Day: day(9), Status: "completed"},
			{ID: uuid.New(), CustomerName: "Bek", CustomerPhone: "+998907654321", Day: day(8), Status: "cancelled"},
		}
		store := &fakeBookingReadStore{ownerHistory: want}
		q := queries.NewBookingQueries(store, testCalendar())

		got, err := q.HistoryForOwner(context.Background(), uuid.New(), 7)
		require.NoError(t, err)

		assert.Equal(t, day(3), store.ownerHistoryFrom)
		assert.Equal(t, day(10), store.ownerHistoryTo)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("history entries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("negative days clamp to today only", func(t *testing.T) {
		store := &fakeBookingReadStore{}
		q := queries.NewBookingQueries(store, testCalendar())

		_, err := q.HistoryForOwner(context.Background(), uuid.New(), -3)
		require.NoError(t, err)

		assert.Equal(t, day(10), store.ownerHistoryFrom)
	})

	t.Run("owner without a shop", func(t *testing.T) {
		store := &fakeBookingReadStore{queueErr: infra.WrapRepoErr("no rows", nil, infra.KindNotFound)}
		q := queries.NewBookingQueries(store, testCalendar())

		_, err := q.HistoryForOwner(context.Background(), uuid.New(), 7)

		assert.ErrorIs(t, err, queries.ErrShopNotFound)
	})
}
