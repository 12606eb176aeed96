package appointment

import (
	"context"

	domain "github.com/curequeue/curequeue-server/internal/domain/appointment"
	"github.com/curequeue/curequeue-server/internal/dto"
	"github.com/curequeue/curequeue-server/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) ForPatient(
	ctx context.Context,
	patientID string,
) ([]dto.AppointmentDTO, error) {

	aps, err := uc.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return toDTOs(aps), nil
}

func (uc *ListAppointments) ForDoctor(
	ctx context.Context,
	doctorID string,
) ([]dto.AppointmentDTO, error) {

	aps, err := uc.repo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return toDTOs(aps), nil
}

func (uc *ListAppointments) All(
	ctx context.Context,
) ([]dto.AppointmentDTO, error) {

	aps, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(aps), nil
}

func toDTOs(aps []models.Appointment) []dto.AppointmentDTO {
	out := make([]dto.AppointmentDTO, 0, len(aps))
	for i := range aps {
		out = append(out, dto.FromAppointment(&aps[i]))
	}
	return out
}
