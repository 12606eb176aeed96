package timezone

import (
	"testing"
	"time"
)

func TestStampConvertsToIST(t *testing.T) {
	// 2025-03-09 23:00 UTC is already 2025-03-10 04:30 in Kolkata.
	utc := time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)

	date, hhmm := Stamp(utc)
	if date != "2025-03-10" {
		t.Errorf("date = %q, want 2025-03-10", date)
	}
	if hhmm != "04:30" {
		t.Errorf("time = %q, want 04:30", hhmm)
	}
}

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2025-03-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := day.Format(DateLayout); got != "2025-03-10" {
		t.Errorf("round trip = %q", got)
	}

	for _, bad := range []string{"10-03-2025", "2025/03/10", "2025-3-1", "not-a-date"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q): expected error", bad)
		}
	}
}

func TestFixedClock(t *testing.T) {
	instant := time.Date(2025, 3, 10, 9, 30, 0, 0, Location())
	clock := Fixed(instant)

	if !clock.Now().Equal(instant) {
		t.Errorf("Now() = %v, want %v", clock.Now(), instant)
	}
	if clock.Now().Location().String() != Location().String() {
		t.Errorf("location = %v", clock.Now().Location())
	}
}
