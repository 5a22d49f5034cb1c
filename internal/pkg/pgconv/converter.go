package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"navbat/internal/pkg/civil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func UUIDPtrFromPgtype(pu pgtype.UUID) *uuid.UUID {
	if !pu.Valid {
		return nil
	}
	id := uuid.UUID(pu.Bytes)
	return &id
}

func StringPtrFromPgtype(pt pgtype.Text) *string {
	if !pt.Valid {
		return nil
	}
	return &pt.String
}

func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

func TimePtrFromPgtype(pt pgtype.Timestamptz) *time.Time {
	if !pt.Valid {
		return nil
	}
	return &pt.Time
}

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func StringToPgtype(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func StringPtrToPgtype(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// DateToPgtype maps a civil date onto a DATE column. The UTC anchor is
// arbitrary; pgtype.Date only reads the Y/M/D fields.
func DateToPgtype(d civil.Date) pgtype.Date {
	return pgtype.Date{Time: time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC), Valid: true}
}

func DateFromPgtype(pd pgtype.Date) civil.Date {
	return civil.Date{Year: pd.Time.Year(), Month: pd.Time.Month(), Day: pd.Time.Day()}
}

// TimeOfDayToPgtype maps a wall-clock time onto a TIME column
// (microseconds since midnight).
func TimeOfDayToPgtype(t civil.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t.Hour*3600+t.Minute*60) * 1_000_000, Valid: true}
}

func TimeOfDayFromPgtype(pt pgtype.Time) civil.TimeOfDay {
	minutes := int(pt.Microseconds / 60_000_000)
	return civil.TimeOfDay{Hour: minutes / 60, Minute: minutes % 60}
}

// DateTimePtrToPgtype stores a lifecycle timestamp; nil maps to NULL.
func DateTimePtrToPgtype(dt *civil.DateTime) pgtype.Timestamptz {
	if dt == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: dt.Time(), Valid: true}
}

func DateTimePtrFromPgtype(pt pgtype.Timestamptz) *civil.DateTime {
	if !pt.Valid {
		return nil
	}
	dt := civil.DateTimeOf(pt.Time)
	return &dt
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
