package models

// Facility is a hospital or clinic listed in the directory. The API only
// reads these; seeding and administration happen outside the service.
type Facility struct {
	Base

	Name        string   `gorm:"size:150;not null" json:"name"`
	Address     string   `gorm:"size:255;not null" json:"address"`
	Specialties []string `gorm:"serializer:json" json:"specialties"`
	Capacity    int      `gorm:"default:0" json:"capacity"`
	Emergency   bool     `gorm:"default:false" json:"emergency"`
}

// FacilityQueue is the live queue board a facility's staff keeps updated:
// the token currently being served and a rough ETA for newcomers.
type FacilityQueue struct {
	Base

	FacilityID string   `gorm:"type:uuid;uniqueIndex;not null" json:"facility_id"`
	Facility   Facility `gorm:"foreignKey:FacilityID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DoctorID *string `gorm:"type:uuid" json:"doctor_id,omitempty"`

	NowServing int  `gorm:"default:0" json:"now_serving"`
	ETAMinutes int  `gorm:"default:0" json:"eta_minutes"`
	Emergency  bool `gorm:"default:false" json:"emergency"`
}
