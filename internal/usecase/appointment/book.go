package appointment

import (
	"context"

	"github.com/curequeue/curequeue-server/internal/audit"
	domain "github.com/curequeue/curequeue-server/internal/domain/appointment"
	"github.com/curequeue/curequeue-server/internal/httperr"
	"github.com/curequeue/curequeue-server/internal/models"
	"github.com/curequeue/curequeue-server/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	PatientID  string
	DoctorID   string
	FacilityID string
	Date       string
	Reason     string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo     domain.Repository
	notifier domain.Notifier
	clock    timezone.Clock
	audit    *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	notifier domain.Notifier,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// Strict YYYY-MM-DD only.
	requested, err := timezone.ParseDate(in.Date)
	if err != nil || requested.Format(timezone.DateLayout) != in.Date {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	// "Today" is defined at the reference timezone, not the client's.
	now := uc.clock.Now()
	bookingDate, bookingTime := timezone.Stamp(now)

	today, _ := timezone.ParseDate(bookingDate)
	if requested.Before(today) {
		return nil, httperr.ErrBusiness("past_date")
	}

	doctor, err := uc.repo.GetUserByID(ctx, in.DoctorID)
	if err != nil || doctor.Role != models.RoleDoctor {
		return nil, httperr.ErrBusiness("invalid_doctor")
	}

	var facilityID *string
	if in.FacilityID != "" {
		facilityID = &in.FacilityID
	}

	created, err := uc.assignAndCreate(ctx, in, facilityID, bookingDate, bookingTime)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.PatientID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	// Confirmation mail is best-effort. A booking never rolls back because
	// the mail could not be delivered.
	if patient, err := uc.repo.GetUserByID(ctx, in.PatientID); err == nil && patient.Email != "" {
		uc.notifier.AppointmentConfirmed(domain.Confirmation{
			To:          patient.Email,
			PatientName: patient.Name,
			DoctorName:  doctor.Name,
			TimeIST:     bookingTime,
			WaitingTime: created.WaitingTime,
		})
	}

	return created, nil
}

// tokenRetries bounds how often a booking re-reads the partition after losing
// a token race to a concurrent insert.
const tokenRetries = 3

// assignAndCreate runs the token read-then-write under the partition lock.
// Both the token counter and the waiting-time estimate key on the booking
// instant's date.
func (uc *BookAppointment) assignAndCreate(
	ctx context.Context,
	in BookAppointmentInput,
	facilityID *string,
	bookingDate string,
	bookingTime string,
) (*models.Appointment, error) {

	var created *models.Appointment

	for attempt := 0; attempt < tokenRetries; attempt++ {

		err := uc.repo.WithPartitionLock(ctx, in.DoctorID, bookingDate, func(txRepo domain.Repository) error {

			highest, err := txRepo.HighestToken(ctx, in.DoctorID, bookingDate)
			if err != nil {
				return err
			}

			// Tokens are numbered off the booking day's partition, but the
			// unique index guards the stored date. For future-dated bookings
			// those differ, so after a conflict the stored partition is
			// consulted too or the retry would re-read the same max.
			if attempt > 0 && in.Date != bookingDate {
				stored, err := txRepo.HighestToken(ctx, in.DoctorID, in.Date)
				if err != nil {
					return err
				}
				if stored > highest {
					highest = stored
				}
			}

			activeCount, err := txRepo.CountActive(ctx, in.DoctorID, bookingDate)
			if err != nil {
				return err
			}

			ap := &models.Appointment{
				PatientID:   in.PatientID,
				DoctorID:    in.DoctorID,
				FacilityID:  facilityID,
				Date:        in.Date,
				Time:        bookingTime,
				Reason:      in.Reason,
				Token:       highest + 1,
				WaitingTime: domain.EstimateWait(int(activeCount)),
				Status:      string(domain.InitialStatus()),
			}

			if err := txRepo.CreateAppointment(ctx, ap); err != nil {
				return err
			}

			created = ap
			return nil
		})

		if httperr.IsBusiness(err, "token_conflict") {
			continue
		}
		if err != nil {
			return nil, err
		}
		return created, nil
	}

	return nil, httperr.ErrBusiness("token_conflict")
}
