package queries

import (
	"context"
	"time"

	"tripd/internal/infra"
	"tripd/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound         = errs.New("booking not found")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// Read models (DTO for read side)
type BookingView struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	ScheduleID  uuid.UUID       `json:"schedule_id"`
	RouteFrom   string          `json:"route_from"`
	RouteTo     string          `json:"route_to"`
	DepartureAt time.Time       `json:"departure_at"`
	Seats       []string        `json:"seats"`
	Passengers  []PassengerView `json:"passengers,omitempty"`
	TotalCents  int64           `json:"total_cents"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type PassengerView struct {
	SeatCode string `json:"seat_code"`
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender,omitempty"`
	Contact  string `json:"contact,omitempty"`
}

type BookingListItem struct {
	ID          uuid.UUID `json:"id"`
	ScheduleID  uuid.UUID `json:"schedule_id"`
	RouteFrom   string    `json:"route_from"`
	RouteTo     string    `json:"route_to"`
	DepartureAt time.Time `json:"departure_at"`
	SeatCount   int       `json:"seat_count"`
	TotalCents  int64     `json:"total_cents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*BookingListItem, error)
}

type BookingViewRepo interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

// GetByID scopes the lookup to the acting user. A booking owned by someone
// else is reported as not found rather than forbidden, so callers cannot
// probe which IDs exist.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if view.UserID != actor {
		return nil, errs.Wrap(ErrBookingNotFound, "booking owned by another user")
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*BookingListItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	items, err := q.repo.FindByUserID(ctx, userID, int32(limit))
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return items, nil
}
