package civil

import "navbat/internal/pkg/clock"

// Calendar answers "what day is it" questions against the fixed business
// timezone. It is constructed once at bootstrap and injected wherever a
// current date or timestamp is needed, instead of each call site re-deriving
// the zone offset.
type Calendar struct {
	clock clock.Clock
}

func NewCalendar(clk clock.Clock) *Calendar {
	return &Calendar{clock: clk}
}

// Today returns the current calendar date shifted by daysOffset whole days.
// The fixed offset makes the conversion total; there is no error path.
func (c *Calendar) Today(daysOffset int) Date {
	return DateOf(c.clock.Now()).AddDays(daysOffset)
}

// NowStamp renders the current instant with second precision, for recording
// lifecycle transition times.
func (c *Calendar) NowStamp() DateTime {
	return DateTimeOf(c.clock.Now())
}
