package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"tripd/internal/domain/booking"
	"tripd/internal/infra"
	"tripd/internal/pkg/clock"
	"tripd/internal/pkg/errs"
	"tripd/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrScheduleNotFound        = errs.New("schedule not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrSeatConflict            = errs.New("seat already held")
	ErrBusy                    = errs.New("booking ledger busy")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// SeatConflictError reports the first seat of the request that is already
// held, in request order, so clients get a reproducible message.
type SeatConflictError struct {
	Seat booking.SeatCode
}

func (e *SeatConflictError) Error() string {
	if e.Seat == "" {
		return "seat already held"
	}
	return fmt.Sprintf("seat %s already held", e.Seat)
}

func (e *SeatConflictError) Is(target error) bool {
	return target == ErrSeatConflict
}

type PassengerParams struct {
	FullName string
	Age      int
	Gender   string
	Contact  string
}

type ReserveSeatsParams struct {
	UserID     uuid.UUID
	ScheduleID uuid.UUID
	Seats      []string
	Passengers []PassengerParams
}

type BookingCommands interface {
	ReserveSeats(ctx context.Context, p ReserveSeatsParams) (uuid.UUID, error)
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow     shared.UnitOfWork
	factory *booking.Factory
	clock   clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, factory *booking.Factory, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		uow:     uow,
		factory: factory,
		clock:   clk,
	}
}

// ReserveSeats validates the request, then runs the availability check and
// the ledger append as one critical section per schedule. Preconditions are
// checked in a fixed order so each failure mode is distinct and stable.
func (c *bookingCommandsImpl) ReserveSeats(ctx context.Context, p ReserveSeatsParams) (uuid.UUID, error) {
	seats, err := booking.NewSeats(p.Seats)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	sched, err := c.findSchedule(ctx, p.ScheduleID)
	if err != nil {
		return uuid.Nil, err
	}

	passengers, err := toPassengers(p.Passengers)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	if _, err := booking.NewPassengerList(passengers, len(seats)); err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	price, err := booking.NewMoney(sched.PriceCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var bookingID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Ledger().LockSchedule(ctx, p.ScheduleID); err != nil {
			return translateLedgerErr(err)
		}

		held, err := tx.Ledger().HeldSeats(ctx, p.ScheduleID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if conflict := firstConflict(seats, held); conflict != nil {
			return conflict
		}

		entity, err := c.factory.CreateBooking(p.UserID, p.ScheduleID, seats, passengers, price, c.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Ledger().Create(ctx, entity); err != nil {
			return translateLedgerErr(err)
		}

		if err := c.enqueueJob(ctx, tx, "booking_confirmed", entity, sched); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		bookingID = entity.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return bookingID, nil
}

// CancelBooking transitions a booking to cancelled under the same
// per-schedule lock as reservations, so a cancel and a rebooking of the
// freed seats serialize cleanly. Ownership mismatch is reported exactly
// like absence to avoid leaking other users' booking ids.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if snap.UserID != userID {
			return ErrBookingNotFound
		}

		if err := tx.Ledger().LockSchedule(ctx, snap.ScheduleID); err != nil {
			return translateLedgerErr(err)
		}

		now := c.clock.Now()
		if err := booking.CanCancel(booking.Status(snap.Status), now, snap.DepartureAt); err != nil {
			return err
		}

		if err := tx.Ledger().MarkCancelled(ctx, bookingID, now); err != nil {
			// Zero rows means a concurrent cancel won the compare-and-set.
			if infra.IsKind(err, infra.KindConflict) {
				return booking.ErrAlreadyCancelled
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		payload, err := json.Marshal(map[string]any{
			"booking_id":  bookingID,
			"user_id":     userID,
			"schedule_id": snap.ScheduleID,
			"type":        "booking_cancelled",
		})
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Notifications().Enqueue(ctx, "email", "booking_cancelled", payload, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) findSchedule(ctx context.Context, id uuid.UUID) (*shared.ScheduleSnapshot, error) {
	sched, err := c.uow.Reads().ScheduleByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return sched, nil
}

func (c *bookingCommandsImpl) enqueueJob(ctx context.Context, tx shared.Tx, topic string, b *booking.Booking, sched *shared.ScheduleSnapshot) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id":  b.ID(),
		"user_id":     b.UserID(),
		"schedule_id": b.ScheduleID(),
		"seats":       b.Seats().Strings(),
		"total_cents": b.Total().Cents(),
		"route_from":  sched.RouteFrom,
		"route_to":    sched.RouteTo,
		"departs_at":  sched.DepartureAt,
		"type":        topic,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().Enqueue(ctx, "email", topic, payload, c.clock.Now())
}

// firstConflict returns the conflict for the first requested seat that is
// already held, preserving request order for deterministic messaging.
func firstConflict(requested booking.Seats, held booking.Seats) *SeatConflictError {
	taken := make(map[booking.SeatCode]struct{}, len(held))
	for _, s := range held {
		taken[s] = struct{}{}
	}
	for _, s := range requested {
		if _, ok := taken[s]; ok {
			return &SeatConflictError{Seat: s}
		}
	}
	return nil
}

func toPassengers(params []PassengerParams) ([]booking.Passenger, error) {
	if len(params) == 0 {
		return nil, nil
	}
	out := make([]booking.Passenger, 0, len(params))
	for _, p := range params {
		passenger, err := booking.NewPassenger(p.FullName, p.Age, p.Gender, p.Contact)
		if err != nil {
			return nil, err
		}
		out = append(out, passenger)
	}
	return out, nil
}

func translateLedgerErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindLockTimeout):
		return errs.Mark(err, ErrBusy)
	case infra.IsKind(err, infra.KindConflict):
		// Unique index backstop; the advisory lock should make this rare.
		return errs.Mark(err, ErrSeatConflict)
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
