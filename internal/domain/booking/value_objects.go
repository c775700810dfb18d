package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptySeats             = errors.New("seat list cannot be empty")
	ErrInvalidSeatCode        = errors.New("invalid seat code")
	ErrDuplicateSeat          = errors.New("duplicate seat code in request")
	ErrNegativeAmount         = errors.New("amount cannot be negative")
	ErrInvalidPassenger       = errors.New("invalid passenger")
	ErrPassengerCountMismatch = errors.New("passenger count does not match seat count")
)

const maxSeatCodeLength = 8

// SeatCode identifies a physical seat position, e.g. "12A". Codes are
// case-sensitive and compared byte-for-byte.
type SeatCode string

func NewSeatCode(value string) (SeatCode, error) {
	if value == "" || len(value) > maxSeatCodeLength {
		return "", ErrInvalidSeatCode
	}
	if strings.ContainsAny(value, " \t\n") {
		return "", ErrInvalidSeatCode
	}
	return SeatCode(value), nil
}

func (s SeatCode) String() string {
	return string(s)
}

// Seats is an ordered, duplicate-free seat code list. Request order is
// preserved so conflict reporting stays deterministic.
type Seats []SeatCode

func NewSeats(values []string) (Seats, error) {
	if len(values) == 0 {
		return nil, ErrEmptySeats
	}

	seen := make(map[SeatCode]struct{}, len(values))
	seats := make(Seats, 0, len(values))
	for _, v := range values {
		code, err := NewSeatCode(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSeatCode, v)
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSeat, v)
		}
		seen[code] = struct{}{}
		seats = append(seats, code)
	}
	return seats, nil
}

func (s Seats) Contains(code SeatCode) bool {
	for _, c := range s {
		if c == code {
			return true
		}
	}
	return false
}

func (s Seats) Strings() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = string(c)
	}
	return out
}

// Money is an amount of currency in integer cents, so fare arithmetic is
// exact rather than floating-point approximate.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Times(n int) Money {
	return Money{cents: m.cents * int64(n)}
}

// Passenger describes the traveller assigned to one seat, aligned with the
// seat list by position.
type Passenger struct {
	FullName string
	Age      int
	Gender   string
	Contact  string
}

func NewPassenger(fullName string, age int, gender, contact string) (Passenger, error) {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return Passenger{}, fmt.Errorf("%w: name required", ErrInvalidPassenger)
	}
	if age < 0 || age > 120 {
		return Passenger{}, fmt.Errorf("%w: age out of range", ErrInvalidPassenger)
	}
	return Passenger{
		FullName: name,
		Age:      age,
		Gender:   strings.TrimSpace(gender),
		Contact:  strings.TrimSpace(contact),
	}, nil
}

// NewPassengerList validates the optional passenger roster: either empty or
// exactly one entry per seat, in seat order.
func NewPassengerList(passengers []Passenger, seatCount int) ([]Passenger, error) {
	if len(passengers) == 0 {
		return nil, nil
	}
	if len(passengers) != seatCount {
		return nil, ErrPassengerCountMismatch
	}
	out := make([]Passenger, len(passengers))
	copy(out, passengers)
	return out, nil
}
