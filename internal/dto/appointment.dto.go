package dto

import "github.com/curequeue/curequeue-server/internal/models"

type AppointmentDTO struct {
	ID          string `json:"id"`
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	WaitingTime int    `json:"waiting_time"`
	Reason      string `json:"reason"`
	Token       int    `json:"token"`
}

func FromAppointment(ap *models.Appointment) AppointmentDTO {
	d := AppointmentDTO{
		ID:          ap.ID,
		Date:        ap.Date,
		Time:        ap.Time,
		Status:      ap.Status,
		WaitingTime: ap.WaitingTime,
		Reason:      ap.Reason,
		Token:       ap.Token,
	}

	if ap.Patient.Name != "" {
		d.PatientName = ap.Patient.Name
	} else {
		d.PatientName = "Unknown Patient"
	}

	if ap.Doctor.Name != "" {
		d.DoctorName = ap.Doctor.Name
	} else {
		d.DoctorName = "Unknown Doctor"
	}

	return d
}
