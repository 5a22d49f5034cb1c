package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"navbat/internal/domain/shop"
	"navbat/internal/infra/db"
	"navbat/internal/infra/readstore"
	"navbat/internal/infra/repository"
	"navbat/internal/pkg/civil"
	"navbat/internal/pkg/errs"
	"navbat/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errAdvisoryLock       = errs.New("failed to take shop lock")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, uuid.Nil, fn)
}

// WithinShopLock serializes the transaction against others holding the same
// shop's lock. pg_advisory_xact_lock releases automatically on commit or
// rollback, so slot allocation for one shop is strictly sequential while
// different shops proceed in parallel.
func (u *PostgresUoW) WithinShopLock(ctx context.Context, shopID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, shopID, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTx(ctx context.Context, lockShopID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond
	options := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = runLocked(ctx, pgxTx, lockShopID, fn)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func runLocked(ctx context.Context, pgxTx pgx.Tx, lockShopID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	if lockShopID != uuid.Nil {
		if _, err := pgxTx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", advisoryLockKey(lockShopID)); err != nil {
			return errs.Mark(err, errAdvisoryLock)
		}
	}
	return fn(ctx, &pgTx{dbtx: pgxTx})
}

// advisoryLockKey folds a UUID into the bigint keyspace of pg_advisory locks.
// Collisions between shops only cost extra serialization, never correctness.
func advisoryLockKey(id uuid.UUID) int64 {
	// #nosec G115 -- lock keys are opaque, sign is irrelevant
	return int64(binary.BigEndian.Uint64(id[:8]))
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask the high bit to keep the value positive
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	bookingRepo  shared.BookingRepository
	shopRepo     shared.ShopRepository
	userRepo     shared.UserRepository
	commandReads shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository()
	}
	return t.bookingRepo
}

func (t *pgTx) Shops() shared.ShopRepository {
	if t.shopRepo == nil {
		t.shopRepo = repository.NewShopRepository()
	}
	return t.shopRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository()
	}
	return t.userRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	shopStore    *readstore.ShopReadStore
	bookingStore *readstore.BookingReadStore
	userStore    *readstore.UserReadStore
}

func (r *commandReads) shops() *readstore.ShopReadStore {
	if r.shopStore == nil {
		r.shopStore = readstore.NewShopReadStore(r.dbtx)
	}
	return r.shopStore
}

func (r *commandReads) bookings() *readstore.BookingReadStore {
	if r.bookingStore == nil {
		r.bookingStore = readstore.NewBookingReadStore(r.dbtx)
	}
	return r.bookingStore
}

func (r *commandReads) users() *readstore.UserReadStore {
	if r.userStore == nil {
		r.userStore = readstore.NewUserReadStore(r.dbtx)
	}
	return r.userStore
}

func (r *commandReads) ShopByID(ctx context.Context, id uuid.UUID) (*shared.ShopSnapshot, error) {
	return r.shops().FindSnapshot(ctx, id)
}

func (r *commandReads) ShopByOwner(ctx context.Context, ownerID uuid.UUID) (*shared.ShopSnapshot, error) {
	return r.shops().FindSnapshotByOwner(ctx, ownerID)
}

func (r *commandReads) ActiveStaffForShop(ctx context.Context, shopID uuid.UUID) ([]shop.StaffMember, error) {
	return r.shops().ActiveStaff(ctx, shopID)
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.bookings().FindSnapshot(ctx, id)
}

func (r *commandReads) BookingTimesForDay(ctx context.Context, shopID uuid.UUID, day civil.Date) ([]civil.TimeOfDay, error) {
	return r.bookings().TimesForDay(ctx, shopID, day)
}

func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	return r.users().FindSnapshot(ctx, id)
}
