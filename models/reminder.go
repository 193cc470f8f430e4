package models

import (
	"time"

	"gorm.io/gorm"
)

// Reminder is a persisted due-time record for an appointment reminder.
// A cron sweep picks up rows whose DueAt has passed and SentAt is still
// null, so pending reminders survive process restarts. Rescheduling an
// appointment repoints DueAt; cancelling deletes the row.
type Reminder struct {
	gorm.Model
	AppointmentID uint        `json:"appointment_id"`
	Appointment   Appointment `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID"`
	DueAt         time.Time   `json:"due_at" gorm:"index"`
	SentAt        *time.Time  `json:"sent_at"`
}
