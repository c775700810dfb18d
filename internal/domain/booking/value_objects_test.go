//go:build unit

package booking_test

import (
	"testing"

	"tripd/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seatsCase struct {
	name  string
	input []string
	errIs error
}

func TestNewSeats(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		seats, err := booking.NewSeats([]string{"1A", "1B", "12C"})
		require.NoError(t, err)
		require.Len(t, seats, 3)

		assert.Equal(t, []string{"1A", "1B", "12C"}, seats.Strings())
		assert.True(t, seats.Contains("1A"))
		assert.False(t, seats.Contains("2A"))
	})

	t.Run("request order is preserved", func(t *testing.T) {
		seats, err := booking.NewSeats([]string{"3C", "1A", "2B"})
		require.NoError(t, err)
		assert.Equal(t, []string{"3C", "1A", "2B"}, seats.Strings())
	})

	t.Run("codes are case sensitive", func(t *testing.T) {
		seats, err := booking.NewSeats([]string{"1a", "1A"})
		require.NoError(t, err)
		assert.Len(t, seats, 2)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []seatsCase{
			{name: "empty list", input: []string{}, errIs: booking.ErrEmptySeats},
			{name: "nil list", input: nil, errIs: booking.ErrEmptySeats},
			{name: "empty code", input: []string{"1A", ""}, errIs: booking.ErrInvalidSeatCode},
			{name: "code too long", input: []string{"123456789"}, errIs: booking.ErrInvalidSeatCode},
			{name: "code with space", input: []string{"1 A"}, errIs: booking.ErrInvalidSeatCode},
			{name: "code with tab", input: []string{"1\tA"}, errIs: booking.ErrInvalidSeatCode},
			{name: "duplicate code", input: []string{"1A", "1B", "1A"}, errIs: booking.ErrDuplicateSeat},
			{name: "single seat", input: []string{"1A"}},
			{name: "max length code", input: []string{"12345678"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := booking.NewSeats(tc.input)
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestMoney(t *testing.T) {
	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := booking.NewMoney(-1)
		assert.ErrorIs(t, err, booking.ErrNegativeAmount)
	})

	t.Run("zero is allowed", func(t *testing.T) {
		m, err := booking.NewMoney(0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Cents())
	})

	t.Run("multiplication is exact", func(t *testing.T) {
		// 3 seats at 499.99 each; float arithmetic would drift here.
		m := booking.MustMoney(49999)
		assert.Equal(t, int64(149997), m.Times(3).Cents())
	})
}

func TestFare(t *testing.T) {
	price := booking.MustMoney(50000)

	assert.Equal(t, int64(50000), booking.Fare(price, 1).Cents())
	assert.Equal(t, int64(100000), booking.Fare(price, 2).Cents())
	assert.Equal(t, int64(2000000), booking.Fare(price, 40).Cents())
}

func TestNewPassenger(t *testing.T) {
	t.Run("valid passenger", func(t *testing.T) {
		p, err := booking.NewPassenger("  Asha Rao  ", 34, "F", "asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Asha Rao", p.FullName)
		assert.Equal(t, 34, p.Age)
	})

	t.Run("name required", func(t *testing.T) {
		_, err := booking.NewPassenger("   ", 30, "", "")
		assert.ErrorIs(t, err, booking.ErrInvalidPassenger)
	})

	t.Run("age bounds", func(t *testing.T) {
		_, err := booking.NewPassenger("A", -1, "", "")
		assert.ErrorIs(t, err, booking.ErrInvalidPassenger)

		_, err = booking.NewPassenger("A", 121, "", "")
		assert.ErrorIs(t, err, booking.ErrInvalidPassenger)

		_, err = booking.NewPassenger("A", 0, "", "")
		assert.NoError(t, err)

		_, err = booking.NewPassenger("A", 120, "", "")
		assert.NoError(t, err)
	})
}

func TestNewPassengerList(t *testing.T) {
	mk := func(names ...string) []booking.Passenger {
		out := make([]booking.Passenger, 0, len(names))
		for _, n := range names {
			p, _ := booking.NewPassenger(n, 30, "", "")
			out = append(out, p)
		}
		return out
	}

	t.Run("empty roster is allowed", func(t *testing.T) {
		roster, err := booking.NewPassengerList(nil, 3)
		require.NoError(t, err)
		assert.Nil(t, roster)
	})

	t.Run("roster must match seat count exactly", func(t *testing.T) {
		_, err := booking.NewPassengerList(mk("A", "B"), 3)
		assert.ErrorIs(t, err, booking.ErrPassengerCountMismatch)

		_, err = booking.NewPassengerList(mk("A", "B", "C", "D"), 3)
		assert.ErrorIs(t, err, booking.ErrPassengerCountMismatch)

		roster, err := booking.NewPassengerList(mk("A", "B", "C"), 3)
		require.NoError(t, err)
		assert.Len(t, roster, 3)
	})
}
