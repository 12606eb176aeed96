package appointment

import (
	"context"
	"testing"

	"github.com/curequeue/curequeue-server/internal/audit"
	domain "github.com/curequeue/curequeue-server/internal/domain/appointment"
	"github.com/curequeue/curequeue-server/internal/httperr"
	"github.com/curequeue/curequeue-server/internal/models"
)

func seedAppointment(t *testing.T, repo *fakeRepo, uc *BookAppointment) *models.Appointment {
	t.Helper()
	seedUsers(repo)
	return mustBook(t, uc, "pat-1", "doc-1", "2025-03-10")
}

var (
	patient  = domain.Actor{ID: "pat-1", Role: models.RolePatient}
	doctor   = domain.Actor{ID: "doc-1", Role: models.RoleDoctor}
	admin    = domain.Actor{ID: "adm-1", Role: models.RoleAdmin}
	stranger = domain.Actor{ID: "pat-2", Role: models.RolePatient}
)

func TestCancelByPatient(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	ap := seedAppointment(t, repo, newBookUC(repo, notifier))

	uc := NewCancelAppointment(repo, notifier, domain.RolePolicy{}, audit.NewDispatcher(nil))

	got, err := uc.Execute(context.Background(), patient, ap.ID)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %q, want cancelled", got.Status)
	}

	if len(notifier.patientCancels) != 1 || len(notifier.doctorCancels) != 0 {
		t.Errorf("cancellation mails: patient=%d doctor=%d, want 1/0",
			len(notifier.patientCancels), len(notifier.doctorCancels))
	}
	if n := notifier.patientCancels[0]; n.To != "asha@example.com" || n.DoctorName != "Meera Iyer" {
		t.Errorf("payload = %+v", n)
	}
}

func TestCancelByDoctorUsesProviderWording(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	ap := seedAppointment(t, repo, newBookUC(repo, notifier))

	uc := NewCancelAppointment(repo, notifier, domain.RolePolicy{}, audit.NewDispatcher(nil))

	if _, err := uc.Execute(context.Background(), doctor, ap.ID); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(notifier.doctorCancels) != 1 || len(notifier.patientCancels) != 0 {
		t.Errorf("cancellation mails: doctor=%d patient=%d, want 1/0",
			len(notifier.doctorCancels), len(notifier.patientCancels))
	}
}

func TestCancelByAdminUsesPatientWording(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	ap := seedAppointment(t, repo, newBookUC(repo, notifier))

	uc := NewCancelAppointment(repo, notifier, domain.RolePolicy{}, audit.NewDispatcher(nil))

	if _, err := uc.Execute(context.Background(), admin, ap.ID); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(notifier.patientCancels) != 1 {
		t.Errorf("patient-worded mails = %d, want 1", len(notifier.patientCancels))
	}
}

func TestCancelGuards(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	ap := seedAppointment(t, repo, newBookUC(repo, notifier))

	uc := NewCancelAppointment(repo, notifier, domain.RolePolicy{}, audit.NewDispatcher(nil))
	ctx := context.Background()

	if _, err := uc.Execute(ctx, stranger, ap.ID); !httperr.IsBusiness(err, "forbidden") {
		t.Errorf("stranger cancel: err = %v, want forbidden", err)
	}

	if _, err := uc.Execute(ctx, patient, "missing"); !httperr.IsBusiness(err, "not_found") {
		t.Errorf("unknown id: err = %v, want not_found", err)
	}

	if _, err := uc.Execute(ctx, patient, ap.ID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if _, err := uc.Execute(ctx, patient, ap.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("second cancel: err = %v, want invalid_state", err)
	}

	// The failed second cancel must not have touched the record.
	stored, _ := repo.GetAppointment(ctx, ap.ID)
	if stored.Status != string(domain.StatusCancelled) {
		t.Errorf("status after double cancel = %q", stored.Status)
	}
}

func TestCompleteByDoctor(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	ap := seedAppointment(t, repo, newBookUC(repo, notifier))

	uc := NewCompleteAppointment(repo, domain.RolePolicy{}, audit.NewDispatcher(nil))

	got, err := uc.Execute(context.Background(), doctor, ap.ID)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != string(domain.StatusCompleted) {
		t.Errorf("status = %q, want completed", got.Status)
	}
}

func TestCompleteGuards(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	ap := seedAppointment(t, repo, newBookUC(repo, notifier))

	uc := NewCompleteAppointment(repo, domain.RolePolicy{}, audit.NewDispatcher(nil))
	ctx := context.Background()

	// Patients never complete their own appointments.
	if _, err := uc.Execute(ctx, patient, ap.ID); !httperr.IsBusiness(err, "forbidden") {
		t.Errorf("patient complete: err = %v, want forbidden", err)
	}

	if _, err := uc.Execute(ctx, doctor, "missing"); !httperr.IsBusiness(err, "not_found") {
		t.Errorf("unknown id: err = %v, want not_found", err)
	}

	if _, err := uc.Execute(ctx, admin, ap.ID); err != nil {
		t.Fatalf("admin complete: %v", err)
	}
	if _, err := uc.Execute(ctx, doctor, ap.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("complete after complete: err = %v, want invalid_state", err)
	}
}

func TestCancelAfterCompleteIsRejected(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	ap := seedAppointment(t, repo, newBookUC(repo, notifier))

	completeUC := NewCompleteAppointment(repo, domain.RolePolicy{}, audit.NewDispatcher(nil))
	cancelUC := NewCancelAppointment(repo, notifier, domain.RolePolicy{}, audit.NewDispatcher(nil))
	ctx := context.Background()

	if _, err := completeUC.Execute(ctx, doctor, ap.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := cancelUC.Execute(ctx, patient, ap.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("cancel after complete: err = %v, want invalid_state", err)
	}
}
