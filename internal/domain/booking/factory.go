package booking

import (
	"time"

	"github.com/google/uuid"
)

// Fare is the pricing rule: schedule price times seat count, computed once
// at creation and never re-derived, even if the catalog price moves later.
func Fare(price Money, seatCount int) Money {
	return price.Times(seatCount)
}

// Factory assembles confirmed bookings from validated inputs. The schedule
// price is passed in as a snapshot taken by the caller from the catalog.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) CreateBooking(
	userID, scheduleID uuid.UUID,
	seats Seats,
	passengers []Passenger,
	price Money,
	now time.Time,
) (*Booking, error) {
	if len(seats) == 0 {
		return nil, ErrEmptySeats
	}

	roster, err := NewPassengerList(passengers, len(seats))
	if err != nil {
		return nil, err
	}

	return &Booking{
		id:         uuid.New(),
		userID:     userID,
		scheduleID: scheduleID,
		seats:      seats,
		passengers: roster,
		total:      Fare(price, len(seats)),
		status:     StatusConfirmed,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}
