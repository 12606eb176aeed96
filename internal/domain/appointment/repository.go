package appointment

import (
	"context"

	"github.com/curequeue/curequeue-server/internal/models"
)

type Repository interface {
	// -------- Users --------
	GetUserByID(
		ctx context.Context,
		id string,
	) (*models.User, error)

	// -------- Appointment (create / read / update) --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Partition queries --------
	// A partition is the set of appointments sharing (doctorID, date); it is
	// the unit tokens and waiting times are computed over.

	HighestToken(
		ctx context.Context,
		doctorID string,
		date string,
	) (int, error)

	CountActive(
		ctx context.Context,
		doctorID string,
		date string,
	) (int64, error)

	// ListActivePartition returns active appointments ordered by token, with
	// booking time as the tie-break.
	ListActivePartition(
		ctx context.Context,
		doctorID string,
		date string,
	) ([]models.Appointment, error)

	// WithPartitionLock runs fn inside a transaction holding an exclusive
	// lock on the (doctorID, date) partition, serialising the read-then-write
	// sequences of token assignment and reconciliation.
	WithPartitionLock(
		ctx context.Context,
		doctorID string,
		date string,
		fn func(Repository) error,
	) error

	// -------- Listing --------
	ListForPatient(
		ctx context.Context,
		patientID string,
	) ([]models.Appointment, error)

	ListForDoctor(
		ctx context.Context,
		doctorID string,
	) ([]models.Appointment, error)

	ListAll(
		ctx context.Context,
	) ([]models.Appointment, error)
}
