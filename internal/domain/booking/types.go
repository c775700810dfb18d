package booking

// Status is the two-value booking state machine: confirmed on creation,
// cancelled as the only (terminal) transition. The spelling is deliberately
// case-consistent; storage and API use these exact values.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}
