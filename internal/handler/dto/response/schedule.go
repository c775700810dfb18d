package response

import (
	"time"

	"tripd/internal/usecase/queries"

	"github.com/google/uuid"
)

type ScheduleResponse struct {
	ID           uuid.UUID `json:"id"`
	RouteFrom    string    `json:"routeFrom"`
	RouteTo      string    `json:"routeTo"`
	Operator     string    `json:"operator"`
	BusNumber    string    `json:"busNumber"`
	SeatCapacity int       `json:"seatCapacity"`
	PriceCents   int64     `json:"priceCents"`
	DepartureAt  time.Time `json:"departureAt"`
	ArrivalAt    time.Time `json:"arrivalAt"`
}

type AvailabilityResponse struct {
	ScheduleID     uuid.UUID `json:"scheduleId"`
	SeatCapacity   int       `json:"seatCapacity"`
	HeldSeats      []string  `json:"heldSeats"`
	AvailableCount int       `json:"availableCount"`
}

func FromScheduleView(rm *queries.ScheduleView) *ScheduleResponse {
	return &ScheduleResponse{
		ID:           rm.ID,
		RouteFrom:    rm.RouteFrom,
		RouteTo:      rm.RouteTo,
		Operator:     rm.Operator,
		BusNumber:    rm.BusNumber,
		SeatCapacity: rm.SeatCapacity,
		PriceCents:   rm.PriceCents,
		DepartureAt:  rm.DepartureAt,
		ArrivalAt:    rm.ArrivalAt,
	}
}

func FromAvailabilityView(rm *queries.AvailabilityView) *AvailabilityResponse {
	held := rm.HeldSeats
	if held == nil {
		held = []string{}
	}
	return &AvailabilityResponse{
		ScheduleID:     rm.ScheduleID,
		SeatCapacity:   rm.SeatCapacity,
		HeldSeats:      held,
		AvailableCount: rm.AvailableCount,
	}
}
