package models

type Appointment struct {
	Base

	PatientID string `gorm:"type:uuid;index;not null" json:"patient_id"`
	Patient   User   `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	DoctorID string `gorm:"type:uuid;index:idx_doctor_date;uniqueIndex:idx_doctor_date_token;not null" json:"doctor_id"`
	Doctor   User   `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	FacilityID *string   `gorm:"type:uuid" json:"facility_id,omitempty"`
	Facility   *Facility `gorm:"foreignKey:FacilityID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Calendar date the appointment is scheduled for (YYYY-MM-DD) and the
	// wall-clock booking time (HH:MM), both in the reference timezone.
	Date string `gorm:"size:10;index:idx_doctor_date;uniqueIndex:idx_doctor_date_token;not null" json:"date"`
	Time string `gorm:"size:5;not null" json:"time"`

	Reason string `gorm:"size:255" json:"reason"`

	// Queue position within the (doctor, date) partition. The composite
	// unique index backs up the partition lock against racing bookings.
	Token int `gorm:"uniqueIndex:idx_doctor_date_token" json:"token"`

	// Estimated wait in minutes. Recomputed whenever an admin edits one
	// appointment of the partition.
	WaitingTime int `gorm:"default:0" json:"waiting_time"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`
}
