package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types.

type ScheduleSnapshot struct {
	ID           uuid.UUID
	RouteFrom    string
	RouteTo      string
	Operator     string
	BusNumber    string
	SeatCapacity int
	PriceCents   int64
	DepartureAt  time.Time
	ArrivalAt    time.Time
}

// BookingSnapshot is the minimal state cancellation needs to decide:
// ownership, terminal-state, and departure checks.
type BookingSnapshot struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ScheduleID  uuid.UUID
	Status      string
	DepartureAt time.Time
}
