//go:build unit || e2e

package builder

import (
	"time"

	dombooking "tripd/internal/domain/booking"
	reqdto "tripd/internal/handler/dto/request"
	"tripd/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	UserID     uuid.UUID
	ScheduleID uuid.UUID
	Seats      []string
	Passengers []commands.PassengerParams
	PriceCents int64
	CreatedAt  time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		UserID:     uuid.New(),
		ScheduleID: uuid.New(),
		Seats:      []string{"1A", "1B"},
		Passengers: nil,
		PriceCents: 50000,
		CreatedAt:  time.Now(),
	}
}

func (b *BookingBuilder) WithSeats(seats ...string) *BookingBuilder {
	b.Seats = seats
	return b
}

func (b *BookingBuilder) WithPassengers(passengers ...commands.PassengerParams) *BookingBuilder {
	b.Passengers = passengers
	return b
}

func (b *BookingBuilder) WithPriceCents(cents int64) *BookingBuilder {
	b.PriceCents = cents
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	seats, err := dombooking.NewSeats(b.Seats)
	if err != nil {
		return nil, err
	}
	passengers := make([]dombooking.Passenger, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		passenger, err := dombooking.NewPassenger(p.FullName, p.Age, p.Gender, p.Contact)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, passenger)
	}
	price, err := dombooking.NewMoney(b.PriceCents)
	if err != nil {
		return nil, err
	}
	return dombooking.NewFactory().CreateBooking(b.UserID, b.ScheduleID, seats, passengers, price, b.CreatedAt)
}

func (b *BookingBuilder) BuildReserveParams() commands.ReserveSeatsParams {
	return commands.ReserveSeatsParams{
		UserID:     b.UserID,
		ScheduleID: b.ScheduleID,
		Seats:      b.Seats,
		Passengers: b.Passengers,
	}
}

func (b *BookingBuilder) BuildReserveRequestDTO() reqdto.ReserveSeatsRequest {
	passengers := make([]reqdto.PassengerRequest, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		passengers = append(passengers, reqdto.PassengerRequest{
			FullName: p.FullName,
			Age:      p.Age,
			Gender:   p.Gender,
			Contact:  p.Contact,
		})
	}
	return reqdto.ReserveSeatsRequest{
		ScheduleID: b.ScheduleID,
		Seats:      b.Seats,
		Passengers: passengers,
	}
}
