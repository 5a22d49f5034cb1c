// Package civil implements calendar dates and clock times pinned to the
// service's single business timezone (Asia/Tashkent, UTC+05:00, no DST).
// Every "today" computation in the system goes through this package so the
// calendar day never depends on the server's locale.
package civil

import (
	"errors"
	"fmt"
	"time"
)

const (
	// Tashkent has had a fixed +05:00 offset since 1992, so a FixedZone is
	// safe and avoids a dependency on the host tzdata.
	zoneName   = "Asia/Tashkent"
	zoneOffset = 5 * 60 * 60
)

var Zone = time.FixedZone(zoneName, zoneOffset)

var (
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:MM")
	ErrInvalidDateTime  = errors.New("invalid timestamp, expected RFC 3339 with offset")
)

// Date is a calendar date in the fixed business timezone. The zero value is
// not a valid date; construct via DateOf, ParseDate or Calendar.Today.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.In(Zone).Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", s, Zone)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// AddDays shifts the date by whole days. time.Date normalizes out-of-range
// day values, which makes the arithmetic immune to month/year boundaries.
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, Zone)
	return DateOf(t)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) Equal(other Date) bool {
	return d == other
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall-clock time on a 24-hour clock, without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// AddMinutes adds n minutes, wrapping within the same day. The booking policy
// never rolls a queue past midnight; bounding total slots per day is the
// caller's concern.
func (t TimeOfDay) AddMinutes(n int) TimeOfDay {
	total := (t.Hour*60 + t.Minute + n) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

// Compare returns -1, 0 or +1 ordering t against other within one day.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	a := t.Hour*60 + t.Minute
	b := other.Hour*60 + other.Minute
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return ErrInvalidTimeOfDay
	}
	parsed, err := ParseTimeOfDay(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DateTime is a second-precision timestamp in the fixed business timezone.
// It is only recorded at lifecycle transitions, never used for arithmetic.
type DateTime struct {
	Date   Date
	Hour   int
	Minute int
	Second int
}

func DateTimeOf(t time.Time) DateTime {
	local := t.In(Zone)
	return DateTime{
		Date:   DateOf(local),
		Hour:   local.Hour(),
		Minute: local.Minute(),
		Second: local.Second(),
	}
}

func (dt DateTime) String() string {
	return fmt.Sprintf("%sT%02d:%02d:%02d+05:00", dt.Date, dt.Hour, dt.Minute, dt.Second)
}

func ParseDateTime(s string) (DateTime, error) {
	t, err := time.Parse("2006-01-02T15:04:05-07:00", s)
	if err != nil {
		return DateTime{}, ErrInvalidDateTime
	}
	return DateTimeOf(t), nil
}

// Time converts back to an absolute instant in the business timezone.
func (dt DateTime) Time() time.Time {
	return time.Date(dt.Date.Year, dt.Date.Month, dt.Date.Day, dt.Hour, dt.Minute, dt.Second, 0, Zone)
}

func (dt DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + dt.String() + `"`), nil
}

func (dt *DateTime) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return ErrInvalidDateTime
	}
	parsed, err := ParseDateTime(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}
