//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"tripd/internal/domain/schedule"
	"tripd/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedule(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewScheduleBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, b.ID, actual.ID())
		assert.Equal(t, "Mumbai", actual.RouteFrom())
		assert.Equal(t, "Pune", actual.RouteTo())
		assert.Equal(t, 40, actual.SeatCapacity())
		assert.Equal(t, int64(50000), actual.Price().Cents())
	})

	t.Run("price must be positive", func(t *testing.T) {
		_, err := builder.NewScheduleBuilder().WithPriceCents(0).BuildDomain()
		assert.ErrorIs(t, err, schedule.ErrInvalidPrice)

		_, err = builder.NewScheduleBuilder().WithPriceCents(-100).BuildDomain()
		assert.ErrorIs(t, err, schedule.ErrInvalidPrice)
	})

	t.Run("capacity must be positive", func(t *testing.T) {
		_, err := builder.NewScheduleBuilder().WithSeatCapacity(0).BuildDomain()
		assert.ErrorIs(t, err, schedule.ErrInvalidCapacity)
	})

	t.Run("departure must precede arrival", func(t *testing.T) {
		b := builder.NewScheduleBuilder()
		b.ArrivalAt = b.DepartureAt
		_, err := b.BuildDomain()
		assert.ErrorIs(t, err, schedule.ErrInvalidTimes)
	})
}

func TestHasDeparted(t *testing.T) {
	departure := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	sched, err := builder.NewScheduleBuilder().WithDepartureAt(departure).BuildDomain()
	require.NoError(t, err)

	assert.False(t, sched.HasDeparted(departure.Add(-time.Second)))
	assert.True(t, sched.HasDeparted(departure))
	assert.True(t, sched.HasDeparted(departure.Add(time.Hour)))
}
