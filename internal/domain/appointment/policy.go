package appointment

import "github.com/curequeue/curequeue-server/internal/models"

// Actor identifies whoever is performing an operation.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Policy decides who may mutate an appointment. Kept behind an interface so
// handlers and tests can share one rule set instead of scattering role checks.
type Policy interface {
	CanCancel(actor Actor, ap *models.Appointment) bool
	CanComplete(actor Actor, ap *models.Appointment) bool
	CanSetWaitingTime(actor Actor) bool
}

// RolePolicy is the production rule set:
//   - cancel: owning patient, assigned doctor, or admin
//   - complete: assigned doctor or admin (never the patient)
//   - waiting-time override: admin only
type RolePolicy struct{}

func (RolePolicy) CanCancel(actor Actor, ap *models.Appointment) bool {
	return actor.IsAdmin() || actor.ID == ap.PatientID || actor.ID == ap.DoctorID
}

func (RolePolicy) CanComplete(actor Actor, ap *models.Appointment) bool {
	return actor.IsAdmin() || actor.ID == ap.DoctorID
}

func (RolePolicy) CanSetWaitingTime(actor Actor) bool {
	return actor.IsAdmin()
}
