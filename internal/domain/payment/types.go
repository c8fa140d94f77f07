package payment

type Status string

const (
	StatusPending           Status = "PENDING"
	StatusSucceeded         Status = "SUCCEEDED"
	StatusFailed            Status = "FAILED"
	StatusRefunded          Status = "REFUNDED"
	StatusPartiallyRefunded Status = "PARTIALLY_REFUNDED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSucceeded, StatusFailed, StatusRefunded, StatusPartiallyRefunded:
		return true
	default:
		return false
	}
}

// IsSettled reports whether the charge has completed and cannot be confirmed
// again. PARTIALLY_REFUNDED still allows further refunds.
func (s Status) IsSettled() bool {
	switch s {
	case StatusSucceeded, StatusRefunded, StatusPartiallyRefunded:
		return true
	default:
		return false
	}
}

// IsRefundable reports whether the charge settled with money left to return.
func (s Status) IsRefundable() bool {
	return s == StatusSucceeded || s == StatusPartiallyRefunded
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
