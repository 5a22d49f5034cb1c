//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"navbat/internal/domain/booking"
	"navbat/internal/domain/user"
	reqdto "navbat/internal/handler/dto/request"
	"navbat/internal/pkg/civil"
	"navbat/internal/pkg/clock"
	"navbat/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.February, 3, 10, 0, 0, 0, civil.Zone)

func newBookingCommands(w *fakeWorld) commands.BookingCommands {
	calendar := civil.NewCalendar(clock.NewMockClock(testNow))
	return commands.NewBookingCommands(
		&fakeUoW{w: w},
		&fakeBookingQueries{w: w},
		booking.NewFirstActiveSelector(),
		calendar,
	)
}

func slot(hour, minute int) civil.TimeOfDay {
	return civil.TimeOfDay{Hour: hour, Minute: minute}
}

func TestCreateBooking(t *testing.T) {
	today := civil.Date{Year: 2026, Month: time.February, Day: 3}

	t.Run("first booking of the day gets the opening slot", func(t *testing.T) {
		w := newFakeWorld()
		shopID := w.addShop(uuid.New(), true)
		w.addStaff(shopID, true)
		cmds := newBookingCommands(w)

		view, err := cmds.CreateBooking(context.Background(), reqdto.CreateBookingRequest{ShopID: shopID}, uuid.New())
		require.NoError(t, err)

		assert.Equal(t, today, view.Day)
		assert.Equal(t, slot(9, 0), view.TimeOfDay)
		assert.Equal(t, "confirmed", view.Status)
		assert.Equal(t, []uuid.UUID{shopID}, w.lockedShops, "allocation must run under the shop lock")
	})

	t.Run("appends after the latest existing booking", func(t *testing.T) {
		w := newFakeWorld()
		shopID := w.addShop(uuid.New(), true)
		w.addStaff(shopID, true)
		w.times[timesKey{shopID: shopID, day: today}] = []civil.TimeOfDay{slot(9, 0), slot(10, 0)}
		cmds := newBookingCommands(w)

		view, err := cmds.CreateBooking(context.Background(), reqdto.CreateBookingRequest{ShopID: shopID}, uuid.New())
		require.NoError(t, err)

		assert.Equal(t, slot(10, 30), view.TimeOfDay)
	})

	t.Run("assigned staff is the first active member", func(t *testing.T) {
		w := newFakeWorld()
		shopID := w.addShop(uuid.New(), true)
		w.addStaff(shopID, false)
		activeID := w.addStaff(shopID, true)
		cmds := newBookingCommands(w)

		view, err := cmds.CreateBooking(context.Background(), reqdto.CreateBookingRequest{ShopID: shopID}, uuid.New())
		require.NoError(t, err)

		assert.Equal(t, activeID, w.bookings[view.ID].StaffID)
	})

	t.Run("unknown shop", func(t *testing.T) {
		w := newFakeWorld()
		cmds := newBookingCommands(w)

		_, err := cmds.CreateBooking(context.Background(), reqdto.CreateBookingRequest{ShopID: uuid.New()}, uuid.New())

		assert.ErrorIs(t, err, commands.ErrShopNotFound)
	})

	t.Run("deactivated shop behaves like a missing one", func(t *testing.T) {
		w := newFakeWorld()
		shopID := w.addShop(uuid.New(), false)
		w.addStaff(shopID, true)
		cmds := newBookingCommands(w)

		_, err := cmds.CreateBooking(context.Background(), reqdto.CreateBookingRequest{ShopID: shopID}, uuid.New())

		assert.ErrorIs(t, err, commands.ErrShopNotFound)
	})

	t.Run("no active staff", func(t *testing.T) {
		w := newFakeWorld()
		shopID := w.addShop(uuid.New(), true)
		w.addStaff(shopID, false)
		cmds := newBookingCommands(w)

		_, err := cmds.CreateBooking(context.Background(), reqdto.CreateBookingRequest{ShopID: shopID}, uuid.New())

		assert.ErrorIs(t, err, commands.ErrNoActiveStaff)
		assert.Empty(t, w.bookings)
	})
}

func TestCompleteBooking(t *testing.T) {
	today := civil.Date{Year: 2026, Month: time.February, Day: 3}

	setup := func() (*fakeWorld, commands.BookingCommands, uuid.UUID, uuid.UUID) {
		w := newFakeWorld()
		ownerID := uuid.New()
		shopID := w.addShop(ownerID, true)
		bookingID := w.addBooking(shopID, uuid.New(), today, slot(9, 0), booking.StatusConfirmed)
		return w, newBookingCommands(w), ownerID, bookingID
	}

	t.Run("owner completes and the timestamp is recorded", func(t *testing.T) {
		w, cmds, ownerID, bookingID := setup()
		actor := booking.Actor{ID: ownerID, Role: user.RoleBarber}

		require.NoError(t, cmds.CompleteBooking(context.Background(), actor, bookingID))

		b := w.bookings[bookingID]
		assert.Equal(t, booking.StatusCompleted, b.Status)
		require.NotNil(t, b.CompletedAt)
		assert.Equal(t, civil.DateTimeOf(testNow), *b.CompletedAt)
	})

	t.Run("customer may not complete", func(t *testing.T) {
		w, cmds, _, bookingID := setup()
		actor := booking.Actor{ID: w.bookings[bookingID].CustomerID, Role: user.RoleCustomer}

		err := cmds.CompleteBooking(context.Background(), actor, bookingID)

		assert.ErrorIs(t, err, commands.ErrForbidden)
		assert.Equal(t, booking.StatusConfirmed, w.bookings[bookingID].Status)
	})

	t.Run("already completed", func(t *testing.T) {
		w, cmds, ownerID, bookingID := setup()
		w.bookings[bookingID].Status = booking.StatusCompleted
		actor := booking.Actor{ID: ownerID, Role: user.RoleBarber}

		err := cmds.CompleteBooking(context.Background(), actor, bookingID)

		assert.ErrorIs(t, err, commands.ErrAlreadyCompleted)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, cmds, ownerID, _ := setup()
		actor := booking.Actor{ID: ownerID, Role: user.RoleBarber}

		err := cmds.CompleteBooking(context.Background(), actor, uuid.New())

		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}

func TestMoveBookingToTomorrow(t *testing.T) {
	today := civil.Date{Year: 2026, Month: time.February, Day: 3}
	tomorrow := today.AddDays(1)

	t.Run("admin moves a booking to the next day", func(t *testing.T) {
		w := newFakeWorld()
		shopID := w.addShop(uuid.New(), true)
		bookingID := w.addBooking(shopID, uuid.New(), today, slot(9, 30), booking.StatusConfirmed)
		cmds := newBookingCommands(w)
		actor := booking.Actor{ID: uuid.New(), Role: user.RoleAdmin}

		view, err := cmds.MoveBookingToTomorrow(context.Background(), actor, bookingID)
		require.NoError(t, err)

		assert.Equal(t, tomorrow, view.Day)
		assert.Equal(t, slot(9, 30), view.TimeOfDay, "time of day must be kept")
		assert.Equal(t, "rescheduled", view.Status)
	})

	t.Run("cancelled booking cannot be moved", func(t *testing.T) {
		w := newFakeWorld()
		shopID := w.addShop(uuid.New(), true)
		bookingID := w.addBooking(shopID, uuid.New(), today, slot(9, 30), booking.StatusCancelled)
		cmds := newBookingCommands(w)
		actor := booking.Actor{ID: uuid.New(), Role: user.RoleAdmin}

		_, err := cmds.MoveBookingToTomorrow(context.Background(), actor, bookingID)

		assert.ErrorIs(t, err, commands.ErrAlreadyCancelled)
	})
}

func TestCancelBooking(t *testing.T) {
	today := civil.Date{Year: 2026, Month: time.February, Day: 3}

	t.Run("customer cancels own booking", func(t *testing.T) {
		w := newFakeWorld()
		customerID := uuid.New()
		shopID := w.addShop(uuid.New(), true)
		bookingID := w.addBooking(shopID, customerID, today, slot(9, 0), booking.StatusConfirmed)
		cmds := newBookingCommands(w)
		actor := booking.Actor{ID: customerID, Role: user.RoleCustomer}

		require.NoError(t, cmds.CancelBooking(context.Background(), actor, bookingID))

		b := w.bookings[bookingID]
		assert.Equal(t, booking.StatusCancelled, b.Status)
		assert.Nil(t, b.CompletedAt)
	})

	t.Run("a different customer may not cancel", func(t *testing.T) {
		w := newFakeWorld()
		shopID := w.addShop(uuid.New(), true)
		bookingID := w.addBooking(shopID, uuid.New(), today, slot(9, 0), booking.StatusConfirmed)
		cmds := newBookingCommands(w)
		actor := booking.Actor{ID: uuid.New(), Role: user.RoleCustomer}

		err := cmds.CancelBooking(context.Background(), actor, bookingID)

		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("cancelling twice", func(t *testing.T) {
		w := newFakeWorld()
		customerID := uuid.New()
		shopID := w.addShop(uuid.New(), true)
		bookingID := w.addBooking(shopID, customerID, today, slot(9, 0), booking.StatusCancelled)
		cmds := newBookingCommands(w)
		actor := booking.Actor{ID: customerID, Role: user.RoleCustomer}

		err := cmds.CancelBooking(context.Background(), actor, bookingID)

		assert.ErrorIs(t, err, commands.ErrAlreadyCancelled)
	})
}
