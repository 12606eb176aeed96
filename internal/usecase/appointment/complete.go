package appointment

import (
	"context"

	"github.com/curequeue/curequeue-server/internal/audit"
	domain "github.com/curequeue/curequeue-server/internal/domain/appointment"
	"github.com/curequeue/curequeue-server/internal/httperr"
	"github.com/curequeue/curequeue-server/internal/models"
)

type CompleteAppointment struct {
	repo   domain.Repository
	policy domain.Policy
	audit  *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	policy domain.Policy,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:   repo,
		policy: policy,
		audit:  audit,
	}
}

// Execute marks an appointment as served. Only the assigned doctor or an
// admin may do this. No mail goes out on completion; the patient was present.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	if !uc.policy.CanComplete(actor, ap) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if err := domain.Complete(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
