package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripd/internal/domain/booking"
	"tripd/internal/infra"
	"tripd/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation  = "23505"
	pgErrCodeLockNotAvailable = "55P03"
)

// BookingRepository is the write side of the booking ledger. It is bound to
// one transaction; LockSchedule must precede any decision that depends on
// the schedule's current seat claims.
type BookingRepository struct {
	db          db.DBTX
	lockTimeout time.Duration
}

func NewBookingRepository(dbtx db.DBTX, lockTimeout time.Duration) *BookingRepository {
	return &BookingRepository{
		db:          dbtx,
		lockTimeout: lockTimeout,
	}
}

// LockSchedule takes a transaction-scoped advisory lock keyed by the
// schedule id. Requests for different schedules never serialize against
// each other; requests for the same schedule queue here, with a bounded
// wait so contention surfaces as a retryable error instead of a pile-up.
func (r *BookingRepository) LockSchedule(ctx context.Context, scheduleID uuid.UUID) error {
	timeout := fmt.Sprintf("%dms", r.lockTimeout.Milliseconds())
	if _, err := r.db.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, timeout); err != nil {
		return infra.WrapRepoErr("failed to set lock timeout", err)
	}

	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, scheduleID); err != nil {
		if isLockTimeout(err) {
			return infra.WrapRepoErr("schedule lock wait timed out", err, infra.KindLockTimeout)
		}
		return infra.WrapRepoErr("failed to lock schedule", err)
	}
	return nil
}

// HeldSeats resolves the seat claim set: the union of seat codes over all
// confirmed bookings of the schedule. Booking status is authoritative; the
// active flag on seat rows only backs the unique index.
func (r *BookingRepository) HeldSeats(ctx context.Context, scheduleID uuid.UUID) (booking.Seats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT bs.seat_code
		FROM booking_seats bs
		JOIN bookings b ON b.id = bs.booking_id
		WHERE bs.schedule_id = $1 AND b.status = 'confirmed'
		ORDER BY bs.seat_code`, scheduleID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query held seats", err)
	}
	defer rows.Close()

	var held booking.Seats
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, infra.WrapRepoErr("failed to scan held seat", err)
		}
		held = append(held, booking.SeatCode(code))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read held seats", err)
	}
	return held, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (id, user_id, schedule_id, total_cents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		b.ID(), b.UserID(), b.ScheduleID(), b.Total().Cents(), b.Status().String(), b.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}

	for i, seat := range b.Seats() {
		_, err := r.db.Exec(ctx, `
			INSERT INTO booking_seats (booking_id, schedule_id, seat_code, position, active)
			VALUES ($1, $2, $3, $4, TRUE)`,
			b.ID(), b.ScheduleID(), seat.String(), i)
		if err != nil {
			if isUniqueViolation(err) {
				return infra.WrapRepoErr("seat already claimed", err, infra.KindConflict)
			}
			return infra.WrapRepoErr("failed to insert booking seat", err)
		}
	}

	for i, p := range b.Passengers() {
		_, err := r.db.Exec(ctx, `
			INSERT INTO passengers (booking_id, position, full_name, age, gender, contact)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			b.ID(), i, p.FullName, p.Age, p.Gender, p.Contact)
		if err != nil {
			return infra.WrapRepoErr("failed to insert passenger", err)
		}
	}

	return nil
}

// MarkCancelled is the compare-and-set half of cancellation: the status
// predicate means a concurrent cancel that already committed makes this a
// zero-row update, reported as a conflict.
func (r *BookingRepository) MarkCancelled(ctx context.Context, bookingID uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET status = 'cancelled', updated_at = $2
		WHERE id = $1 AND status = 'confirmed'`,
		bookingID, now)
	if err != nil {
		return infra.WrapRepoErr("failed to cancel booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not in confirmed state", nil, infra.KindConflict)
	}

	if _, err := r.db.Exec(ctx, `UPDATE booking_seats SET active = FALSE WHERE booking_id = $1`, bookingID); err != nil {
		return infra.WrapRepoErr("failed to release booking seats", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}

func isLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeLockNotAvailable
}
