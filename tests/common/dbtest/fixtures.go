//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"tripd/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestSchedule inserts a catalog row and returns its id. The catalog
// is reference data in these tests; bookings never modify it.
func CreateTestSchedule(t *testing.T, db DBLike, b *builder.ScheduleBuilder) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO schedules (id, route_from, route_to, operator, bus_number, seat_capacity, price_cents, departure_at, arrival_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.RouteFrom, b.RouteTo, b.Operator, b.BusNumber,
		b.SeatCapacity, b.PriceCents, b.DepartureAt, b.ArrivalAt)
	require.NoError(t, err)

	return b.ID
}

// ResetDB truncates all mutable state between subtests. Schedules go too;
// each subtest seeds its own catalog rows.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `
		TRUNCATE notification_jobs, passengers, booking_seats, bookings, schedules CASCADE`)
	return err
}

// BookingStatus reads the committed status of a booking directly.
func BookingStatus(t *testing.T, db DBLike, bookingID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM bookings WHERE id = $1", bookingID).Scan(&status)
	require.NoError(t, err)
	return status
}

// CountNotificationJobs counts queued jobs for a topic.
func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)
	return n
}
