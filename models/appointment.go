package models

import (
	"gorm.io/gorm"
)

// Appointment ties one customer to one therapist's availability slot for one
// service. The referenced slot must stay booked for the appointment's
// lifetime; deleting the appointment releases the slot again.
type Appointment struct {
	gorm.Model
	ServiceID          uint             `json:"service_id"`
	Service            Service          `json:"service" gorm:"foreignKey:ServiceID"`
	TherapistID        uint             `json:"therapist_id"`
	Therapist          Therapist        `json:"therapist" gorm:"foreignKey:TherapistID"`
	AvailabilitySlotID uint             `json:"availability_slot_id"`
	AvailabilitySlot   AvailabilitySlot `json:"availability_slot" gorm:"foreignKey:AvailabilitySlotID"`
	CustomerID         uint             `json:"customer_id"`
	Customer           Customer         `json:"customer" gorm:"foreignKey:CustomerID"`
	UserID             *uint            `json:"user_id"`
	User               *User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
