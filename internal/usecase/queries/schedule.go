package queries

import (
	"context"
	"time"

	"tripd/internal/infra"
	"tripd/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrScheduleNotFound = errs.New("schedule not found")

type ScheduleView struct {
	ID           uuid.UUID `json:"id"`
	RouteFrom    string    `json:"route_from"`
	RouteTo      string    `json:"route_to"`
	Operator     string    `json:"operator"`
	BusNumber    string    `json:"bus_number"`
	SeatCapacity int       `json:"seat_capacity"`
	PriceCents   int64     `json:"price_cents"`
	DepartureAt  time.Time `json:"departure_at"`
	ArrivalAt    time.Time `json:"arrival_at"`
}

// AvailabilityView reports which seats are currently held by confirmed
// bookings. Seats of cancelled bookings never appear here.
type AvailabilityView struct {
	ScheduleID     uuid.UUID `json:"schedule_id"`
	SeatCapacity   int       `json:"seat_capacity"`
	HeldSeats      []string  `json:"held_seats"`
	AvailableCount int       `json:"available_count"`
}

type ScheduleQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ScheduleView, error)
	Search(ctx context.Context, from, to string, day time.Time) ([]*ScheduleView, error)
	GetAvailability(ctx context.Context, scheduleID uuid.UUID) (*AvailabilityView, error)
}

type ScheduleViewRepo interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*ScheduleView, error)
	SearchViews(ctx context.Context, from, to string, day time.Time) ([]*ScheduleView, error)
	HeldSeatCodes(ctx context.Context, scheduleID uuid.UUID) ([]string, error)
}

type scheduleQueriesImpl struct {
	repo ScheduleViewRepo
}

func NewScheduleQueries(repo ScheduleViewRepo) ScheduleQueries {
	return &scheduleQueriesImpl{repo: repo}
}

func (q *scheduleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ScheduleView, error) {
	view, err := q.repo.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrScheduleNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *scheduleQueriesImpl) Search(ctx context.Context, from, to string, day time.Time) ([]*ScheduleView, error) {
	views, err := q.repo.SearchViews(ctx, from, to, day)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return views, nil
}

// GetAvailability is advisory: it reads outside the reservation lock, so the
// answer can be stale by the time a reservation is attempted. The write path
// re-resolves held seats under the schedule lock before committing.
func (q *scheduleQueriesImpl) GetAvailability(ctx context.Context, scheduleID uuid.UUID) (*AvailabilityView, error) {
	sched, err := q.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	held, err := q.repo.HeldSeatCodes(ctx, scheduleID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &AvailabilityView{
		ScheduleID:     sched.ID,
		SeatCapacity:   sched.SeatCapacity,
		HeldSeats:      held,
		AvailableCount: sched.SeatCapacity - len(held),
	}, nil
}
