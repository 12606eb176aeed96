package appointment

import (
	"context"

	"github.com/curequeue/curequeue-server/internal/audit"
	domain "github.com/curequeue/curequeue-server/internal/domain/appointment"
	"github.com/curequeue/curequeue-server/internal/httperr"
	"github.com/curequeue/curequeue-server/internal/models"
)

type CancelAppointment struct {
	repo     domain.Repository
	notifier domain.Notifier
	policy   domain.Policy
	audit    *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	notifier domain.Notifier,
	policy domain.Policy,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		notifier: notifier,
		policy:   policy,
		audit:    audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	// Authorization precedes the status guard.
	if !uc.policy.CanCancel(actor, ap) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if err := domain.Cancel(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.notifyCancelled(ctx, actor, ap)

	return ap, nil
}

// Doctor-initiated cancellations read differently from the patient's own
// ("cancelled by provider" vs "cancellation confirmed"); admins get the
// patient-facing wording.
func (uc *CancelAppointment) notifyCancelled(
	ctx context.Context,
	actor domain.Actor,
	ap *models.Appointment,
) {
	patient, err := uc.repo.GetUserByID(ctx, ap.PatientID)
	if err != nil || patient.Email == "" {
		return
	}

	doctorName := "Doctor"
	if doctor, err := uc.repo.GetUserByID(ctx, ap.DoctorID); err == nil {
		doctorName = doctor.Name
	}

	n := domain.Cancellation{
		To:          patient.Email,
		PatientName: patient.Name,
		DoctorName:  doctorName,
		Date:        ap.Date,
		Time:        ap.Time,
	}

	if actor.ID == ap.DoctorID {
		uc.notifier.CancelledByDoctor(n)
	} else {
		uc.notifier.CancelledByPatient(n)
	}
}
