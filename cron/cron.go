package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/serenispa/booking-api/db"
	"github.com/serenispa/booking-api/models"
	"github.com/serenispa/booking-api/notifications"
)

// StartCronJobs starts the reminder sweep. Reminders are persisted rows, so
// a restart picks up where the previous process left off.
func StartCronJobs() {
	c := cron.New()
	// Run every minute to deliver reminders that have come due
	_, err := c.AddFunc("* * * * *", SendDueReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// SendDueReminders delivers every unsent reminder whose due time has passed
// and marks it sent. A failed send leaves SentAt null so the next sweep
// retries it.
func SendDueReminders() {
	var reminders []models.Reminder
	err := db.DB.
		Where("due_at <= ? AND sent_at IS NULL", time.Now()).
		Find(&reminders).Error
	if err != nil {
		log.Printf("Error fetching due reminders: %v", err)
		return
	}

	for _, reminder := range reminders {
		var appointment models.Appointment
		err := db.DB.
			Preload("Service").
			Preload("Therapist").
			Preload("Customer").
			Preload("AvailabilitySlot").
			First(&appointment, reminder.AppointmentID).Error
		if err != nil {
			// Appointment was cancelled between scheduling and delivery
			log.Printf("Dropping reminder %d: appointment %d no longer exists",
				reminder.ID, reminder.AppointmentID)
			db.DB.Delete(&reminder)
			continue
		}

		notifications.Default.SendReminder(&appointment)

		now := time.Now()
		if err := db.DB.Model(&reminder).Update("sent_at", now).Error; err != nil {
			log.Printf("Failed to mark reminder %d sent: %v", reminder.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s",
			appointment.ID, appointment.Customer.Email)
	}
}
