package reservation

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusCheckedOut Status = "CHECKED_OUT"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo enforces the lifecycle
// PENDING -> CONFIRMED -> CHECKED_IN -> CHECKED_OUT, with CANCELLED
// reachable from PENDING and CONFIRMED only.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCheckedIn || next == StatusCancelled
	case StatusCheckedIn:
		return next == StatusCheckedOut
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// BlocksInventory reports whether a reservation in this status holds a room
// unit for its stay period.
func (s Status) BlocksInventory() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
