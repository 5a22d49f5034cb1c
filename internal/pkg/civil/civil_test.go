//go:build unit

package civil_test

import (
	"encoding/json"
	"testing"
	"time"

	"navbat/internal/pkg/civil"
	"navbat/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf(t *testing.T) {
	t.Run("converts instants into the business timezone", func(t *testing.T) {
		// 20:30 UTC is already the next day at +05:00.
		instant := time.Date(2026, time.February, 3, 20, 30, 0, 0, time.UTC)

		actual := civil.DateOf(instant)

		assert.Equal(t, civil.Date{Year: 2026, Month: time.February, Day: 4}, actual)
	})

	t.Run("same day before the offset boundary", func(t *testing.T) {
		instant := time.Date(2026, time.February, 3, 18, 59, 0, 0, time.UTC)

		actual := civil.DateOf(instant)

		assert.Equal(t, civil.Date{Year: 2026, Month: time.February, Day: 3}, actual)
	})
}

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		actual, err := civil.ParseDate("2026-02-03")
		require.NoError(t, err)
		assert.Equal(t, civil.Date{Year: 2026, Month: time.February, Day: 3}, actual)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"03.02.2026", "2026-13-01", "not a date", ""} {
			_, err := civil.ParseDate(s)
			assert.ErrorIs(t, err, civil.ErrInvalidDate, s)
		}
	})
}

func TestDateAddDays(t *testing.T) {
	tests := []struct {
		name string
		from civil.Date
		n    int
		want civil.Date
	}{
		{
			name: "within a month",
			from: civil.Date{Year: 2026, Month: time.February, Day: 3},
			n:    1,
			want: civil.Date{Year: 2026, Month: time.February, Day: 4},
		},
		{
			name: "across a month boundary",
			from: civil.Date{Year: 2026, Month: time.January, Day: 31},
			n:    1,
			want: civil.Date{Year: 2026, Month: time.February, Day: 1},
		},
		{
			name: "across a year boundary",
			from: civil.Date{Year: 2025, Month: time.December, Day: 31},
			n:    1,
			want: civil.Date{Year: 2026, Month: time.January, Day: 1},
		},
		{
			name: "backwards",
			from: civil.Date{Year: 2026, Month: time.March, Day: 1},
			n:    -7,
			want: civil.Date{Year: 2026, Month: time.February, Day: 22},
		},
		{
			name: "leap day",
			from: civil.Date{Year: 2028, Month: time.February, Day: 28},
			n:    1,
			want: civil.Date{Year: 2028, Month: time.February, Day: 29},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.AddDays(tt.n))
		})
	}
}

func TestDateJSON(t *testing.T) {
	d := civil.Date{Year: 2026, Month: time.February, Day: 3}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-02-03"`, string(data))

	var parsed civil.Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d, parsed)

	assert.Error(t, json.Unmarshal([]byte(`"03/02/2026"`), &parsed))
}

func TestTimeOfDay(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		actual, err := civil.ParseTimeOfDay("09:30")
		require.NoError(t, err)
		assert.Equal(t, civil.TimeOfDay{Hour: 9, Minute: 30}, actual)

		for _, s := range []string{"24:00", "09:60", "morning", ""} {
			_, err := civil.ParseTimeOfDay(s)
			assert.ErrorIs(t, err, civil.ErrInvalidTimeOfDay, s)
		}
	})

	t.Run("add minutes", func(t *testing.T) {
		start := civil.TimeOfDay{Hour: 9, Minute: 45}

		assert.Equal(t, civil.TimeOfDay{Hour: 10, Minute: 15}, start.AddMinutes(30))
		assert.Equal(t, civil.TimeOfDay{Hour: 0, Minute: 15}, civil.TimeOfDay{Hour: 23, Minute: 45}.AddMinutes(30))
	})

	t.Run("compare", func(t *testing.T) {
		early := civil.TimeOfDay{Hour: 9, Minute: 0}
		late := civil.TimeOfDay{Hour: 9, Minute: 30}

		assert.Equal(t, -1, early.Compare(late))
		assert.Equal(t, 1, late.Compare(early))
		assert.Equal(t, 0, early.Compare(early))
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "09:05", civil.TimeOfDay{Hour: 9, Minute: 5}.String())
	})
}

func TestDateTime(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		dt := civil.DateTimeOf(time.Date(2026, time.February, 3, 14, 30, 45, 0, civil.Zone))

		assert.Equal(t, "2026-02-03T14:30:45+05:00", dt.String())

		parsed, err := civil.ParseDateTime(dt.String())
		require.NoError(t, err)
		assert.Equal(t, dt, parsed)
	})

	t.Run("normalizes foreign offsets", func(t *testing.T) {
		// 23:00 UTC on Feb 3 is 04:00 Feb 4 local.
		parsed, err := civil.ParseDateTime("2026-02-03T23:00:00+00:00")
		require.NoError(t, err)

		assert.Equal(t, civil.Date{Year: 2026, Month: time.February, Day: 4}, parsed.Date)
		assert.Equal(t, 4, parsed.Hour)
	})

	t.Run("Time returns the same instant", func(t *testing.T) {
		instant := time.Date(2026, time.February, 3, 20, 30, 0, 0, time.UTC)
		dt := civil.DateTimeOf(instant)

		assert.True(t, dt.Time().Equal(instant))
	})
}

func TestCalendar(t *testing.T) {
	// 21:00 UTC on Feb 3 = 02:00 Feb 4 in the business timezone.
	clk := clock.NewMockClock(time.Date(2026, time.February, 3, 21, 0, 0, 0, time.UTC))
	calendar := civil.NewCalendar(clk)

	assert.Equal(t, civil.Date{Year: 2026, Month: time.February, Day: 4}, calendar.Today(0))
	assert.Equal(t, civil.Date{Year: 2026, Month: time.February, Day: 5}, calendar.Today(1))
	assert.Equal(t, civil.Date{Year: 2026, Month: time.January, Day: 28}, calendar.Today(-7))

	stamp := calendar.NowStamp()
	assert.Equal(t, "2026-02-04T02:00:00+05:00", stamp.String())
}
