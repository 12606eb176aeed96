package timezone

import "time"

// ReferenceTimezone is the fixed zone every booking date and time is derived
// from, regardless of client locale. CureQueue operates on India Standard Time.
const ReferenceTimezone = "Asia/Kolkata"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Clock supplies "now" in the reference timezone. Scheduling code never calls
// time.Now directly, so tests can pin the booking instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().In(Location())
}

func System() Clock {
	return systemClock{}
}

// Fixed returns a Clock frozen at t.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t.In(Location())}
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func Location() *time.Location {
	loc, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		// IST has no DST, so the fixed offset is a safe fallback when the
		// tzdata is missing from the host.
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}

// Stamp splits an instant into the calendar date and wall-clock strings
// stored on appointments.
func Stamp(t time.Time) (date string, hhmm string) {
	ist := t.In(Location())
	return ist.Format(DateLayout), ist.Format(TimeLayout)
}

// ParseDate validates the strict YYYY-MM-DD format used by bookings.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, Location())
}
