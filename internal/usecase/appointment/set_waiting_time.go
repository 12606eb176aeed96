package appointment

import (
	"context"

	"github.com/curequeue/curequeue-server/internal/audit"
	domain "github.com/curequeue/curequeue-server/internal/domain/appointment"
	"github.com/curequeue/curequeue-server/internal/httperr"
	"github.com/curequeue/curequeue-server/internal/models"
)

type SetWaitingTime struct {
	repo     domain.Repository
	notifier domain.Notifier
	policy   domain.Policy
	audit    *audit.Dispatcher
}

func NewSetWaitingTime(
	repo domain.Repository,
	notifier domain.Notifier,
	policy domain.Policy,
	audit *audit.Dispatcher,
) *SetWaitingTime {
	return &SetWaitingTime{
		repo:     repo,
		notifier: notifier,
		policy:   policy,
		audit:    audit,
	}
}

// Execute applies an admin's manual waiting-time override and then reconciles
// the whole (doctor, date) partition.
//
// The manual value is written first and the positional recompute runs over
// every active appointment afterwards, the edited one included, so the
// override survives only when it coincides with the edited entry's position.
// That ordering is deliberate; the admin dashboard depends on it.
func (uc *SetWaitingTime) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID string,
	waitingTime int,
) (*models.Appointment, error) {

	if !uc.policy.CanSetWaitingTime(actor) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if waitingTime < 0 {
		return nil, httperr.ErrBusiness("invalid_waiting_time")
	}

	target, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	err = uc.repo.WithPartitionLock(ctx, target.DoctorID, target.Date, func(txRepo domain.Repository) error {

		// 1. Manual override lands first.
		target.WaitingTime = waitingTime
		if err := txRepo.UpdateAppointment(ctx, target); err != nil {
			return err
		}

		// 2. Positional recompute over the active partition, ordered by
		// (token, time). Only rows whose value actually changes are written.
		partition, err := txRepo.ListActivePartition(ctx, target.DoctorID, target.Date)
		if err != nil {
			return err
		}

		for i := range partition {
			wt := domain.EstimateWait(i)
			changed := partition[i].WaitingTime != wt
			partition[i].WaitingTime = wt

			if changed {
				if err := txRepo.UpdateAppointment(ctx, &partition[i]); err != nil {
					return err
				}
			}

			if partition[i].ID == target.ID {
				target = &partition[i]
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "waiting_time_updated",
		Entity:   "appointment",
		EntityID: &target.ID,
	})

	// One mail, to the edited appointment's patient, reporting the value it
	// ended up with after the recompute.
	if patient, err := uc.repo.GetUserByID(ctx, target.PatientID); err == nil && patient.Email != "" {
		doctorName := "Doctor"
		if doctor, err := uc.repo.GetUserByID(ctx, target.DoctorID); err == nil {
			doctorName = doctor.Name
		}

		uc.notifier.WaitingTimeUpdated(domain.WaitUpdate{
			To:          patient.Email,
			PatientName: patient.Name,
			DoctorName:  doctorName,
			StatusLabel: "Updated",
			WaitingTime: target.WaitingTime,
		})
	}

	return target, nil
}
