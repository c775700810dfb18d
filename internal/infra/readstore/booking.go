package readstore

import (
	"context"
	"errors"

	"tripd/internal/infra"
	"tripd/internal/infra/db"
	"tripd/internal/usecase/queries"
	"tripd/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

// FindSnapshotByID loads the minimal state the cancellation command needs.
// The join pulls departure_at so the cutoff check never needs a second round trip.
func (r *BookingReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT b.id, b.user_id, b.schedule_id, b.status, s.departure_at
		FROM bookings b
		JOIN schedules s ON s.id = b.schedule_id
		WHERE b.id = $1`, id)

	var snap shared.BookingSnapshot
	err := row.Scan(&snap.ID, &snap.UserID, &snap.ScheduleID, &snap.Status, &snap.DepartureAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return &snap, nil
}

func (r *BookingReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT b.id, b.user_id, b.schedule_id, s.route_from, s.route_to, s.departure_at,
		       b.total_cents, b.status, b.created_at, b.updated_at
		FROM bookings b
		JOIN schedules s ON s.id = b.schedule_id
		WHERE b.id = $1`, id)

	var view queries.BookingView
	err := row.Scan(
		&view.ID,
		&view.UserID,
		&view.ScheduleID,
		&view.RouteFrom,
		&view.RouteTo,
		&view.DepartureAt,
		&view.TotalCents,
		&view.Status,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view by ID", err)
	}

	seats, passengers, err := r.loadSeatsAndPassengers(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Seats = seats
	view.Passengers = passengers
	return &view, nil
}

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.schedule_id, s.route_from, s.route_to, s.departure_at,
		       (SELECT COUNT(*) FROM booking_seats bs WHERE bs.booking_id = b.id) AS seat_count,
		       b.total_cents, b.status, b.created_at
		FROM bookings b
		JOIN schedules s ON s.id = b.schedule_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		err := rows.Scan(
			&item.ID,
			&item.ScheduleID,
			&item.RouteFrom,
			&item.RouteTo,
			&item.DepartureAt,
			&item.SeatCount,
			&item.TotalCents,
			&item.Status,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking list rows", err)
	}
	return result, nil
}

// loadSeatsAndPassengers returns seats in the order they were requested and
// the roster aligned with them. Passengers are optional per booking.
func (r *BookingReadStore) loadSeatsAndPassengers(ctx context.Context, bookingID uuid.UUID) ([]string, []queries.PassengerView, error) {
	seatRows, err := r.db.Query(ctx, `
		SELECT seat_code
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY position`, bookingID)
	if err != nil {
		return nil, nil, infra.WrapRepoErr("failed to load booking seats", err)
	}
	defer seatRows.Close()

	var seats []string
	for seatRows.Next() {
		var code string
		if err := seatRows.Scan(&code); err != nil {
			return nil, nil, infra.WrapRepoErr("failed to scan booking seat", err)
		}
		seats = append(seats, code)
	}
	if err := seatRows.Err(); err != nil {
		return nil, nil, infra.WrapRepoErr("failed to read booking seats", err)
	}

	paxRows, err := r.db.Query(ctx, `
		SELECT position, full_name, age, gender, contact
		FROM passengers
		WHERE booking_id = $1
		ORDER BY position`, bookingID)
	if err != nil {
		return nil, nil, infra.WrapRepoErr("failed to load passengers", err)
	}
	defer paxRows.Close()

	var passengers []queries.PassengerView
	for paxRows.Next() {
		var pos int
		var p queries.PassengerView
		if err := paxRows.Scan(&pos, &p.FullName, &p.Age, &p.Gender, &p.Contact); err != nil {
			return nil, nil, infra.WrapRepoErr("failed to scan passenger", err)
		}
		if pos >= 0 && pos < len(seats) {
			p.SeatCode = seats[pos]
		}
		passengers = append(passengers, p)
	}
	if err := paxRows.Err(); err != nil {
		return nil, nil, infra.WrapRepoErr("failed to read passengers", err)
	}
	return seats, passengers, nil
}
