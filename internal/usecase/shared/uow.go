package shared

import (
	"context"
	"time"

	"tripd/internal/domain/booking"

	"github.com/google/uuid"
)

// UnitOfWork scopes ledger writes to one transaction. Within is the only
// way to mutate the booking ledger; both reservation and cancellation run
// their whole read-validate-write region inside it.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads gives command preconditions direct access to committed data,
	// outside any transaction.
	Reads() CommandReads
}

type Tx interface {
	Ledger() LedgerRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

// LedgerRepository is the write side of the booking ledger. All methods are
// transaction-bound; LockSchedule must be called before any decision that
// depends on the schedule's current seat claims.
type LedgerRepository interface {
	// LockSchedule serializes reservations and cancellations per schedule.
	// Waiting is bounded; contention surfaces as a lock-timeout error.
	LockSchedule(ctx context.Context, scheduleID uuid.UUID) error
	HeldSeats(ctx context.Context, scheduleID uuid.UUID) (booking.Seats, error)
	Create(ctx context.Context, b *booking.Booking) error
	// MarkCancelled flips status and deactivates the booking's seat rows in
	// one statement pair; the status predicate makes it a compare-and-set.
	MarkCancelled(ctx context.Context, bookingID uuid.UUID, now time.Time) error
}

type NotificationRepository interface {
	Enqueue(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type CommandReads interface {
	ScheduleByID(ctx context.Context, id uuid.UUID) (*ScheduleSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
}
