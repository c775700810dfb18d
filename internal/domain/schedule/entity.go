package schedule

import (
	"errors"
	"time"

	"tripd/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrInvalidPrice    = errors.New("schedule price must be positive")
	ErrInvalidCapacity = errors.New("schedule seat capacity must be positive")
	ErrInvalidTimes    = errors.New("departure must be before arrival")
)

// Schedule is a bookable trip instance from the catalog. The booking core
// treats it as immutable reference data; it never writes to the catalog.
type Schedule struct {
	id           uuid.UUID
	routeFrom    string
	routeTo      string
	operator     string
	busNumber    string
	seatCapacity int
	price        booking.Money
	departureAt  time.Time
	arrivalAt    time.Time
}

func NewSchedule(
	id uuid.UUID,
	routeFrom, routeTo, operator, busNumber string,
	seatCapacity int,
	priceCents int64,
	departureAt, arrivalAt time.Time,
) (*Schedule, error) {
	if priceCents <= 0 {
		return nil, ErrInvalidPrice
	}
	if seatCapacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if !departureAt.Before(arrivalAt) {
		return nil, ErrInvalidTimes
	}
	price, err := booking.NewMoney(priceCents)
	if err != nil {
		return nil, ErrInvalidPrice
	}
	return &Schedule{
		id:           id,
		routeFrom:    routeFrom,
		routeTo:      routeTo,
		operator:     operator,
		busNumber:    busNumber,
		seatCapacity: seatCapacity,
		price:        price,
		departureAt:  departureAt,
		arrivalAt:    arrivalAt,
	}, nil
}

func (s *Schedule) ID() uuid.UUID          { return s.id }
func (s *Schedule) RouteFrom() string      { return s.routeFrom }
func (s *Schedule) RouteTo() string        { return s.routeTo }
func (s *Schedule) Operator() string       { return s.operator }
func (s *Schedule) BusNumber() string      { return s.busNumber }
func (s *Schedule) SeatCapacity() int      { return s.seatCapacity }
func (s *Schedule) Price() booking.Money   { return s.price }
func (s *Schedule) DepartureAt() time.Time { return s.departureAt }
func (s *Schedule) ArrivalAt() time.Time   { return s.arrivalAt }

func (s *Schedule) HasDeparted(now time.Time) bool {
	return !now.Before(s.departureAt)
}
