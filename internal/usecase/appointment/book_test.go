package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/curequeue/curequeue-server/internal/audit"
	domain "github.com/curequeue/curequeue-server/internal/domain/appointment"
	"github.com/curequeue/curequeue-server/internal/httperr"
	"github.com/curequeue/curequeue-server/internal/models"
	"github.com/curequeue/curequeue-server/internal/timezone"
)

// bookingInstant is 2025-03-10 09:30 IST.
var bookingInstant = time.Date(2025, 3, 10, 9, 30, 0, 0, timezone.Location())

func newBookUC(repo *fakeRepo, notifier *fakeNotifier) *BookAppointment {
	return NewBookAppointment(
		repo,
		notifier,
		timezone.Fixed(bookingInstant),
		audit.NewDispatcher(nil),
	)
}

func seedUsers(repo *fakeRepo) {
	repo.addUser("pat-1", "Asha Verma", "asha@example.com", models.RolePatient)
	repo.addUser("pat-2", "Ravi Nair", "ravi@example.com", models.RolePatient)
	repo.addUser("doc-1", "Meera Iyer", "meera@example.com", models.RoleDoctor)
	repo.addUser("doc-2", "Arjun Rao", "arjun@example.com", models.RoleDoctor)
	repo.addUser("adm-1", "Admin", "admin@example.com", models.RoleAdmin)
}

func mustBook(t *testing.T, uc *BookAppointment, patientID, doctorID, date string) *models.Appointment {
	t.Helper()

	ap, err := uc.Execute(context.Background(), BookAppointmentInput{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	return ap
}

func TestBookFirstAppointmentOfTheDay(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	seedUsers(repo)

	uc := newBookUC(repo, notifier)

	ap := mustBook(t, uc, "pat-1", "doc-1", "2025-03-10")

	if ap.Token != 1 {
		t.Errorf("token = %d, want 1", ap.Token)
	}
	if ap.WaitingTime != 0 {
		t.Errorf("waitingTime = %d, want 0", ap.WaitingTime)
	}
	if ap.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %q, want confirmed", ap.Status)
	}
	if ap.Time != "09:30" {
		t.Errorf("time = %q, want 09:30", ap.Time)
	}
	if ap.Date != "2025-03-10" {
		t.Errorf("date = %q, want 2025-03-10", ap.Date)
	}

	if len(notifier.confirmations) != 1 {
		t.Fatalf("confirmations = %d, want 1", len(notifier.confirmations))
	}
	got := notifier.confirmations[0]
	if got.To != "asha@example.com" || got.DoctorName != "Meera Iyer" {
		t.Errorf("confirmation payload = %+v", got)
	}
	if got.WaitingTime != 0 || got.TimeIST != "09:30" {
		t.Errorf("confirmation wait/time = %d/%q", got.WaitingTime, got.TimeIST)
	}
}

func TestBookSecondAppointmentQueuesBehindFirst(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	seedUsers(repo)

	uc := newBookUC(repo, notifier)

	mustBook(t, uc, "pat-1", "doc-1", "2025-03-10")
	second := mustBook(t, uc, "pat-2", "doc-1", "2025-03-10")

	if second.Token != 2 {
		t.Errorf("token = %d, want 2", second.Token)
	}
	if second.WaitingTime != 5 {
		t.Errorf("waitingTime = %d, want 5", second.WaitingTime)
	}
}

func TestBookTokensAreSequentialWithoutGaps(t *testing.T) {
	repo := newFakeRepo()
	seedUsers(repo)

	uc := newBookUC(repo, &fakeNotifier{})

	for i := 1; i <= 6; i++ {
		ap := mustBook(t, uc, "pat-1", "doc-1", "2025-03-10")
		if ap.Token != i {
			t.Fatalf("booking %d got token %d", i, ap.Token)
		}
		if ap.WaitingTime != (i-1)*5 {
			t.Fatalf("booking %d got waitingTime %d, want %d", i, ap.WaitingTime, (i-1)*5)
		}
	}
}

func TestBookSeparateDoctorsHaveSeparateTokenSequences(t *testing.T) {
	repo := newFakeRepo()
	seedUsers(repo)

	uc := newBookUC(repo, &fakeNotifier{})

	mustBook(t, uc, "pat-1", "doc-1", "2025-03-10")
	other := mustBook(t, uc, "pat-1", "doc-2", "2025-03-10")

	if other.Token != 1 {
		t.Errorf("token for second doctor = %d, want 1", other.Token)
	}
	if other.WaitingTime != 0 {
		t.Errorf("waitingTime for second doctor = %d, want 0", other.WaitingTime)
	}
}

func TestBookCancelledAppointmentsHoldTheirToken(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	seedUsers(repo)

	bookUC := newBookUC(repo, notifier)
	cancelUC := NewCancelAppointment(repo, notifier, domain.RolePolicy{}, audit.NewDispatcher(nil))

	first := mustBook(t, bookUC, "pat-1", "doc-1", "2025-03-10")

	if _, err := cancelUC.Execute(context.Background(), domain.Actor{ID: "pat-1", Role: models.RolePatient}, first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// The cancelled slot keeps token 1 out of circulation, but it no longer
	// counts toward the waiting-time estimate.
	next := mustBook(t, bookUC, "pat-2", "doc-1", "2025-03-10")

	if next.Token != 2 {
		t.Errorf("token = %d, want 2", next.Token)
	}
	if next.WaitingTime != 0 {
		t.Errorf("waitingTime = %d, want 0", next.WaitingTime)
	}
}

func TestBookValidation(t *testing.T) {
	repo := newFakeRepo()
	seedUsers(repo)

	uc := newBookUC(repo, &fakeNotifier{})

	tests := []struct {
		name     string
		doctorID string
		date     string
		wantCode string
	}{
		{"malformed date", "doc-1", "10-03-2025", "invalid_date"},
		{"not a date", "doc-1", "soon", "invalid_date"},
		{"date with time", "doc-1", "2025-03-10T09:00", "invalid_date"},
		{"yesterday", "doc-1", "2025-03-09", "past_date"},
		{"unknown doctor", "doc-404", "2025-03-10", "invalid_doctor"},
		{"patient as doctor", "pat-2", "2025-03-10", "invalid_doctor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), BookAppointmentInput{
				PatientID: "pat-1",
				DoctorID:  tt.doctorID,
				Date:      tt.date,
			})
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Errorf("err = %v, want business code %q", err, tt.wantCode)
			}
		})
	}
}

func TestBookTodayAndFutureDatesAreAccepted(t *testing.T) {
	repo := newFakeRepo()
	seedUsers(repo)

	uc := newBookUC(repo, &fakeNotifier{})

	for _, date := range []string{"2025-03-10", "2025-03-11", "2025-04-01"} {
		if _, err := uc.Execute(context.Background(), BookAppointmentInput{
			PatientID: "pat-1",
			DoctorID:  "doc-1",
			Date:      date,
		}); err != nil {
			t.Errorf("booking for %s: %v", date, err)
		}
	}
}

func TestBookFutureDateStillQueuesInTodaysPartition(t *testing.T) {
	repo := newFakeRepo()
	seedUsers(repo)

	uc := newBookUC(repo, &fakeNotifier{})

	mustBook(t, uc, "pat-1", "doc-1", "2025-03-10")
	future := mustBook(t, uc, "pat-2", "doc-1", "2025-03-20")

	// Token numbering keys on the booking instant's date, not the requested
	// date, so the future booking continues today's sequence.
	if future.Token != 2 {
		t.Errorf("token = %d, want 2", future.Token)
	}
	if future.WaitingTime != 5 {
		t.Errorf("waitingTime = %d, want 5", future.WaitingTime)
	}
}
