package booking

import "navbat/internal/pkg/civil"

const (
	// ServiceIntervalMinutes is the fixed walk-in slot length.
	ServiceIntervalMinutes = 30
)

// OpeningSlot is the time assigned to the first booking of a day.
var OpeningSlot = civil.TimeOfDay{Hour: 9, Minute: 0}

// AllocateSlot computes the next slot for a shop/day given the times of that
// day's existing non-cancelled bookings, in any order. The policy is a
// single-lane FIFO walk-in queue: strictly append after the latest existing
// booking. It does not search gaps, does not check opening/closing bounds and
// does not detect a fully booked day.
//
// The returned queue position is the 1-based rank the new booking will hold
// among the day's non-cancelled bookings once inserted: one more than the
// count of existing times at or before the assigned time.
//
// Pure computation; reading the existing bookings and persisting the result
// are the caller's responsibility.
func AllocateSlot(existing []civil.TimeOfDay) (civil.TimeOfDay, int) {
	if len(existing) == 0 {
		return OpeningSlot, 1
	}

	latest := existing[0]
	for _, t := range existing[1:] {
		if t.Compare(latest) > 0 {
			latest = t
		}
	}

	assigned := latest.AddMinutes(ServiceIntervalMinutes)

	position := 1
	for _, t := range existing {
		if t.Compare(assigned) <= 0 {
			position++
		}
	}

	return assigned, position
}
