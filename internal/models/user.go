package models

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

type User struct {
	Base

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Address      string `gorm:"size:255" json:"address"`
	Role         string `gorm:"size:20;default:'patient'" json:"role"`

	// Doctors only.
	Speciality string `gorm:"size:100" json:"speciality,omitempty"`
}
