package booking

// Status is a closed enumeration. The reference data model stored free-form
// text; keeping the set closed makes illegal states unrepresentable and lets
// transitions be checked structurally instead of by string comparison.
type Status string

const (
	// StatusConfirmed is assigned at creation.
	StatusConfirmed Status = "confirmed"
	// StatusCompleted is terminal; the service was rendered.
	StatusCompleted Status = "completed"
	// StatusRescheduled marks a booking moved to a later day. It stays
	// active and behaves like a fresh confirmed slot on the new day.
	StatusRescheduled Status = "rescheduled"
	// StatusCancelled is terminal and excluded from all queue computations.
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusRescheduled, StatusCancelled:
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
