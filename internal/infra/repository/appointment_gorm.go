package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/curequeue/curequeue-server/internal/domain/appointment"
	"github.com/curequeue/curequeue-server/internal/httperr"
	"github.com/curequeue/curequeue-server/internal/models"
)

var activeStatuses = []string{
	string(domain.StatusConfirmed),
	string(domain.StatusPending),
}

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUserByID(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Appointment (create / read / update)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		if isUniqueViolation(err) {
			// Another booking grabbed the same token despite the partition
			// lock; the caller retries with a fresh read.
			return httperr.ErrBusiness("token_conflict")
		}
		return err
	}
	return nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Partition queries
// --------------------------------------------------

func (r *AppointmentGormRepository) HighestToken(
	ctx context.Context,
	doctorID string,
	date string,
) (int, error) {

	var highest int
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		Select("COALESCE(MAX(token), 0)").
		Scan(&highest).Error
	if err != nil {
		return 0, err
	}
	return highest, nil
}

func (r *AppointmentGormRepository) CountActive(
	ctx context.Context,
	doctorID string,
	date string,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND date = ? AND status IN ?",
			doctorID, date, activeStatuses,
		).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AppointmentGormRepository) ListActivePartition(
	ctx context.Context,
	doctorID string,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"doctor_id = ? AND date = ? AND status IN ?",
			doctorID, date, activeStatuses,
		).
		Order("token ASC, time ASC").
		Find(&aps).Error
	if err != nil {
		return nil, err
	}
	return aps, nil
}

// WithPartitionLock serialises token assignment and reconciliation for one
// (doctor, date) partition by taking row locks on its appointments inside a
// transaction. Empty partitions have nothing to lock, which is why the token
// column also carries a unique index as a backstop.
func (r *AppointmentGormRepository) WithPartitionLock(
	ctx context.Context,
	doctorID string,
	date string,
	fn func(domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var locked []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("doctor_id = ? AND date = ?", doctorID, date).
			Find(&locked).Error; err != nil {
			return err
		}

		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForPatient(
	ctx context.Context,
	patientID string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("date ASC, time ASC").
		Find(&aps).Error
	if err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListForDoctor(
	ctx context.Context,
	doctorID string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("date ASC, time ASC").
		Find(&aps).Error
	if err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListAll(
	ctx context.Context,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Order("date ASC, time ASC").
		Find(&aps).Error
	if err != nil {
		return nil, err
	}
	return aps, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
