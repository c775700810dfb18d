package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrPastDeparture    = errors.New("departure has passed, booking can no longer be cancelled")
)

// Booking is one user's claim on one or more seats of a schedule. It is
// created confirmed and mutated exactly once, to cancelled; the record is a
// tombstone after that, never deleted.
type Booking struct {
	id         uuid.UUID
	userID     uuid.UUID
	scheduleID uuid.UUID
	seats      Seats
	passengers []Passenger
	total      Money
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func ReconstructBooking(
	id, userID, scheduleID uuid.UUID,
	seats Seats,
	passengers []Passenger,
	total Money,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		userID:     userID,
		scheduleID: scheduleID,
		seats:      seats,
		passengers: passengers,
		total:      total,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) IsConfirmed() bool {
	return b.status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

// CanCancel checks the cancellation preconditions: the booking must not be
// in its terminal state, and the schedule's departure must still be strictly
// in the future. The actual transition is a compare-and-set in the ledger.
func CanCancel(status Status, now, departureAt time.Time) error {
	if status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if !now.Before(departureAt) {
		return ErrPastDeparture
	}
	return nil
}

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) UserID() uuid.UUID       { return b.userID }
func (b *Booking) ScheduleID() uuid.UUID   { return b.scheduleID }
func (b *Booking) Seats() Seats            { return b.seats }
func (b *Booking) Passengers() []Passenger { return b.passengers }
func (b *Booking) Total() Money            { return b.total }
func (b *Booking) Status() Status          { return b.status }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }
