package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// Blocks reports whether a reservation in this status makes its vehicle
// unavailable for overlapping periods. Pending holds do not block.
func (s Status) Blocks() bool {
	return s == StatusConfirmed || s == StatusActive
}

// BlockingStatuses is the status filter used by the availability query.
// It must stay in sync with Blocks.
var BlockingStatuses = []Status{StatusConfirmed, StatusActive}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
