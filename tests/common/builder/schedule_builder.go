//go:build unit || e2e

package builder

import (
	"time"

	domschedule "tripd/internal/domain/schedule"
	"tripd/internal/usecase/shared"

	"github.com/google/uuid"
)

type ScheduleBuilder struct {
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

func NewScheduleBuilder() *ScheduleBuilder {
	departure := time.Now().Add(48 * time.Hour).Truncate(time.Minute)
	return &ScheduleBuilder{
		ID:           uuid.New(),
		RouteFrom:    "Mumbai",
		RouteTo:      "Pune",
		Operator:     "Neeta Travels",
		BusNumber:    "MH-12-4477",
		SeatCapacity: 40,
		PriceCents:   50000,
		DepartureAt:  departure,
		ArrivalAt:    departure.Add(3 * time.Hour),
	}
}

func (s *ScheduleBuilder) WithDepartureAt(t time.Time) *ScheduleBuilder {
	s.DepartureAt = t
	s.ArrivalAt = t.Add(3 * time.Hour)
	return s
}

func (s *ScheduleBuilder) WithPriceCents(cents int64) *ScheduleBuilder {
	s.PriceCents = cents
	return s
}

func (s *ScheduleBuilder) WithSeatCapacity(capacity int) *ScheduleBuilder {
	s.SeatCapacity = capacity
	return s
}

func (s *ScheduleBuilder) BuildDomain() (*domschedule.Schedule, error) {
	return domschedule.NewSchedule(
		s.ID, s.RouteFrom, s.RouteTo, s.Operator, s.BusNumber,
		s.SeatCapacity, s.PriceCents, s.DepartureAt, s.ArrivalAt,
	)
}

func (s *ScheduleBuilder) BuildSnapshot() *shared.ScheduleSnapshot {
	return &shared.ScheduleSnapshot{
		ID:           s.ID,
		RouteFrom:    s.RouteFrom,
		RouteTo:      s.RouteTo,
		Operator:     s.Operator,
		BusNumber:    s.BusNumber,
		SeatCapacity: s.SeatCapacity,
		PriceCents:   s.PriceCents,
		DepartureAt:  s.DepartureAt,
		ArrivalAt:    s.ArrivalAt,
	}
}
