package models

import (
	"time"

	"gorm.io/gorm"
)

// AvailabilitySlot is a fixed time interval during which one therapist can
// take exactly one appointment. Times are stored in UTC.
type AvailabilitySlot struct {
	gorm.Model
	TherapistID uint      `json:"therapist_id"`
	Therapist   Therapist `json:"therapist,omitempty" gorm:"foreignKey:TherapistID"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsBooked    bool      `json:"is_booked" gorm:"default:false"`
}
