//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"navbat/internal/domain/user"
	"navbat/internal/handler/api"
	"navbat/internal/pkg/civil"
	"navbat/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBarberQueries serves only the endpoints under test; the shop command
// and query dependencies of the handler stay nil.
type stubBarberQueries struct {
	queue        []queries.QueueEntry
	ownerHistory []queries.OwnerHistoryEntry
	err          error

	gotDay  *civil.Date
	gotDays int
}

func (s *stubBarberQueries) GetByID(context.Context, uuid.UUID) (*queries.BookingView, error) {
	return nil, queries.ErrBookingNotFound
}

func (s *stubBarberQueries) ListMine(context.Context, uuid.UUID) ([]queries.BookingView, error) {
	return nil, nil
}

func (s *stubBarberQueries) History(context.Context, uuid.UUID, int) ([]queries.HistoryEntry, error) {
	return nil, nil
}

func (s *stubBarberQueries) QueueForOwner(_ context.Context, _ uuid.UUID, day *civil.Date) ([]queries.QueueEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotDay = day
	return s.queue, nil
}

func (s *stubBarberQueries) HistoryForOwner(_ context.Context, _ uuid.UUID, days int) ([]queries.OwnerHistoryEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotDays = days
	return s.ownerHistory, nil
}

func newBarberRouter(qs queries.BookingQueries, ownerID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := api.NewBarberHandler(nil, nil, qs)

	router := gin.New()
	authed := router.Group("", func(c *gin.Context) {
		c.Set("user_id", ownerID)
		c.Set("user_role", user.RoleBarber)
	})
	authed.GET("/barber/bookings", h.Queue)
	authed.GET("/barber/bookings/history", h.History)
	return router
}

func TestBarberQueueHandler(t *testing.T) {
	ownerID := uuid.New()

	t.Run("no date means today", func(t *testing.T) {
		qs := &stubBarberQueries{queue: []queries.QueueEntry{{Position: 1, Status: "confirmed"}}}
		router := newBarberRouter(qs, ownerID)

		req := httptest.NewRequest(http.MethodGet, "/barber/bookings", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, qs.gotDay)
	})

	t.Run("explicit date passes through", func(t *testing.T) {
		qs := &stubBarberQueries{}
		router := newBarberRouter(qs, ownerID)

		req := httptest.NewRequest(http.MethodGet, "/barber/bookings?date=2026-02-14", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, qs.gotDay)
		assert.Equal(t, civil.Date{Year: 2026, Month: time.February, Day: 14}, *qs.gotDay)
	})

	t.Run("malformed date", func(t *testing.T) {
		router := newBarberRouter(&stubBarberQueries{}, ownerID)

		req := httptest.NewRequest(http.MethodGet, "/barber/bookings?date=14.02.2026", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("owner without a shop", func(t *testing.T) {
		router := newBarberRouter(&stubBarberQueries{err: queries.ErrShopNotFound}, ownerID)

		req := httptest.NewRequest(http.MethodGet, "/barber/bookings", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBarberHistoryHandler(t *testing.T) {
	ownerID := uuid.New()

	t.Run("explicit window", func(t *testing.T) {
		qs := &stubBarberQueries{}
		router := newBarberRouter(qs, ownerID)

		req := httptest.NewRequest(http.MethodGet, "/barber/bookings/history?days=30", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 30, qs.gotDays)
	})

	t.Run("unparsable window falls back to the default", func(t *testing.T) {
		qs := &stubBarberQueries{}
		router := newBarberRouter(qs, ownerID)

		req := httptest.NewRequest(http.MethodGet, "/barber/bookings/history?days=week", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, queries.DefaultHistoryDays, qs.gotDays)
	})

	t.Run("owner without a shop", func(t *testing.T) {
		router := newBarberRouter(&stubBarberQueries{err: queries.ErrShopNotFound}, ownerID)

		req := httptest.NewRequest(http.MethodGet, "/barber/bookings/history", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
