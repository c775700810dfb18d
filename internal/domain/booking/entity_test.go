//go:build unit

package booking_test

import (
	"testing"
	"time"

	"tripd/internal/domain/booking"
	"tripd/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCreateBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, b.UserID, actual.UserID())
		assert.Equal(t, b.ScheduleID, actual.ScheduleID())
		assert.Equal(t, []string{"1A", "1B"}, actual.Seats().Strings())
		assert.Equal(t, booking.StatusConfirmed, actual.Status())
		assert.True(t, actual.IsConfirmed())
		assert.False(t, actual.IsCancelled())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("total is price times seat count", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().
			WithSeats("1A", "1B", "1C").
			WithPriceCents(49999).
			BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, int64(149997), actual.Total().Cents())
	})

	t.Run("concrete fare scenario", func(t *testing.T) {
		// Two seats at 500.00 each must come to exactly 1000.00.
		actual, err := builder.NewBookingBuilder().
			WithSeats("1A", "1B").
			WithPriceCents(50000).
			BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, int64(100000), actual.Total().Cents())
	})

	t.Run("empty seats rejected", func(t *testing.T) {
		price := booking.MustMoney(50000)
		_, err := booking.NewFactory().CreateBooking(uuid.New(), uuid.New(), nil, nil, price, time.Now())
		assert.ErrorIs(t, err, booking.ErrEmptySeats)
	})

	t.Run("generated IDs are unique", func(t *testing.T) {
		first, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		second, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		assert.NotEqual(t, first.ID(), second.ID())
	})
}

func TestCanCancel(t *testing.T) {
	departure := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		status booking.Status
		now    time.Time
		errIs  error
	}{
		{
			name:   "confirmed before departure",
			status: booking.StatusConfirmed,
			now:    departure.Add(-time.Hour),
		},
		{
			name:   "already cancelled",
			status: booking.StatusCancelled,
			now:    departure.Add(-time.Hour),
			errIs:  booking.ErrAlreadyCancelled,
		},
		{
			name:   "exactly at departure",
			status: booking.StatusConfirmed,
			now:    departure,
			errIs:  booking.ErrPastDeparture,
		},
		{
			name:   "after departure",
			status: booking.StatusConfirmed,
			now:    departure.Add(time.Minute),
			errIs:  booking.ErrPastDeparture,
		},
		{
			name: "cancelled takes precedence over past departure",
			// The terminal-state check runs first so the caller always
			// sees the same error for a given booking state.
			status: booking.StatusCancelled,
			now:    departure.Add(time.Hour),
			errIs:  booking.ErrAlreadyCancelled,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := booking.CanCancel(tc.status, tc.now, departure)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	assert.True(t, booking.StatusConfirmed.IsValid())
	assert.True(t, booking.StatusCancelled.IsValid())
	assert.False(t, booking.Status("CONFIRMED").IsValid())
	assert.False(t, booking.Status("pending").IsValid())
	assert.Equal(t, "confirmed", booking.StatusConfirmed.String())
	assert.Equal(t, "cancelled", booking.StatusCancelled.String())
}
