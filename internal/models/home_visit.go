package models

import "time"

const (
	HomeVisitNew       = "new"
	HomeVisitApproved  = "approved"
	HomeVisitRejected  = "rejected"
	HomeVisitCompleted = "completed"
)

type HomeVisit struct {
	Base

	PatientID string `gorm:"type:uuid;index;not null" json:"patient_id"`
	Patient   User   `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Address       string     `gorm:"size:255;not null" json:"address"`
	PreferredTime *time.Time `json:"preferred_time,omitempty"`
	Notes         string     `gorm:"size:255" json:"notes"`

	ETAMinutes int    `json:"eta_minutes"`
	Status     string `gorm:"size:20;default:'new'" json:"status"`
}
