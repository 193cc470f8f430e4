package models

import (
	"gorm.io/gorm"
)

type Therapist struct {
	gorm.Model
	Name              string             `json:"name"`
	Bio               string             `json:"bio"`
	ProfilePictureURL *string            `json:"profile_picture_url"`
	UserID            *uint              `json:"user_id"`
	User              *User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	AvailabilitySlots []AvailabilitySlot `json:"availability_slots,omitempty" gorm:"foreignKey:TherapistID"`
}
