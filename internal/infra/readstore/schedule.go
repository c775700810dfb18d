package readstore

import (
	"context"
	"errors"
	"time"

	"tripd/internal/infra"
	"tripd/internal/infra/db"
	"tripd/internal/usecase/queries"
	"tripd/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ScheduleReadStore struct {
	db db.DBTX
}

func NewScheduleReadStore(dbtx db.DBTX) *ScheduleReadStore {
	return &ScheduleReadStore{db: dbtx}
}

const scheduleColumns = `id, route_from, route_to, operator, bus_number, seat_capacity, price_cents, departure_at, arrival_at`

func (r *ScheduleReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.ScheduleSnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE id = $1`, id)

	snap, err := scanScheduleSnapshot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("schedule not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find schedule by ID", err)
	}
	return snap, nil
}

func (r *ScheduleReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.ScheduleView, error) {
	snap, err := r.FindSnapshotByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toScheduleView(snap), nil
}

// SearchViews lists schedules for a route on a given calendar day, soonest
// first. Empty route legs match any value so the catalog can be browsed.
func (r *ScheduleReadStore) SearchViews(ctx context.Context, from, to string, day time.Time) ([]*queries.ScheduleView, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := r.db.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE ($1 = '' OR route_from = $1)
		  AND ($2 = '' OR route_to = $2)
		  AND departure_at >= $3 AND departure_at < $4
		ORDER BY departure_at`, from, to, dayStart, dayEnd)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search schedules", err)
	}
	defer rows.Close()

	var result []*queries.ScheduleView
	for rows.Next() {
		snap, err := scanScheduleSnapshot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule row", err)
		}
		result = append(result, toScheduleView(snap))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read schedule rows", err)
	}
	return result, nil
}

// HeldSeatCodes resolves the seats currently held on a schedule by joining
// the seat ledger against confirmed bookings, ordered for stable output.
func (r *ScheduleReadStore) HeldSeatCodes(ctx context.Context, scheduleID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT bs.seat_code
		FROM booking_seats bs
		JOIN bookings b ON b.id = bs.booking_id
		WHERE bs.schedule_id = $1 AND b.status = 'confirmed'
		ORDER BY bs.seat_code`, scheduleID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to resolve held seats", err)
	}
	defer rows.Close()

	var held []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, infra.WrapRepoErr("failed to scan held seat", err)
		}
		held = append(held, code)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read held seats", err)
	}
	return held, nil
}

func scanScheduleSnapshot(row pgx.Row) (*shared.ScheduleSnapshot, error) {
	var s shared.ScheduleSnapshot
	err := row.Scan(
		&s.ID,
		&s.RouteFrom,
		&s.RouteTo,
		&s.Operator,
		&s.BusNumber,
		&s.SeatCapacity,
		&s.PriceCents,
		&s.DepartureAt,
		&s.ArrivalAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func toScheduleView(s *shared.ScheduleSnapshot) *queries.ScheduleView {
	return &queries.ScheduleView{
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
