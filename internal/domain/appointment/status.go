package appointment

import "github.com/curequeue/curequeue-server/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// InitialStatus is the state a freshly booked appointment lands in. There is
// no approval step: bookings are confirmed immediately.
func InitialStatus() Status {
	return StatusConfirmed
}

// IsActive reports whether the appointment still occupies a queue position.
// Only active appointments count for token and waiting-time math.
func IsActive(s Status) bool {
	return s == StatusConfirmed || s == StatusPending
}

// IsTerminal reports whether no further transitions are allowed.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Transition guards
// ===============================

func CanCancel(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
