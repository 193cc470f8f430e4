package notifications

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/serenispa/booking-api/models"
	"github.com/serenispa/booking-api/utils"
	"gorm.io/gorm"
)

// Dispatcher fans appointment notifications out to email and SMS. Channel
// failures are logged and swallowed: a notification must never fail the
// business operation that triggered it.
type Dispatcher struct {
	Email EmailSender
	SMS   SMSSender
}

// Default is used by the controllers and the cron sweep. Tests swap it for
// recording senders.
var Default = NewDispatcher()

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		Email: &GomailSender{},
		SMS:   &TwilioSender{},
	}
}

// fanOut runs both channel sends in parallel and waits for both, logging
// each failure on its own.
func (d *Dispatcher) fanOut(intent, email, subject, body, phone, sms string) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := d.Email.Send(email, subject, body); err != nil {
			log.Printf("Failed to send %s email to %s: %v", intent, email, err)
		}
	}()

	go func() {
		defer wg.Done()
		if err := d.SMS.Send(phone, sms); err != nil {
			log.Printf("Failed to send %s SMS to %s: %v", intent, phone, err)
		}
	}()

	wg.Wait()
}

// SendConfirmation notifies the customer that an appointment was booked or
// moved to a new time.
func (d *Dispatcher) SendConfirmation(appointment *models.Appointment) {
	start := utils.ToBusinessTime(appointment.AvailabilitySlot.StartTime)

	subject := "Appointment Confirmation"
	body := fmt.Sprintf(`
		<p>Dear %s %s,</p>
		<p>Your appointment has been confirmed.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Therapist:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Thank you for choosing us!</p>
		<p>Best regards,</p>
		<p>Serenity Spa</p>
	`, appointment.Customer.Name, appointment.Customer.Surname,
		appointment.Service.Name, appointment.Therapist.Name,
		start.Format("2006-01-02 15:04"))

	sms := fmt.Sprintf("Your %s appointment with %s on %s is confirmed.",
		appointment.Service.Name, appointment.Therapist.Name,
		start.Format("Jan 2 15:04"))

	d.fanOut("confirmation", appointment.Customer.Email, subject, body,
		appointment.Customer.Phone, sms)
}

// SendReminder notifies the customer about an appointment starting soon.
func (d *Dispatcher) SendReminder(appointment *models.Appointment) {
	start := utils.ToBusinessTime(appointment.AvailabilitySlot.StartTime)

	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s %s,</p>
		<p>This is a reminder for your upcoming appointment.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Therapist:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel,
		contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Serenity Spa</p>
	`, appointment.Customer.Name, appointment.Customer.Surname,
		appointment.Service.Name, appointment.Therapist.Name,
		start.Format("2006-01-02 15:04"))

	sms := fmt.Sprintf("Reminder: your %s appointment with %s is on %s.",
		appointment.Service.Name, appointment.Therapist.Name,
		start.Format("Jan 2 15:04"))

	d.fanOut("reminder", appointment.Customer.Email, subject, body,
		appointment.Customer.Phone, sms)
}

// SendCancellation notifies the customer that an appointment was cancelled.
func (d *Dispatcher) SendCancellation(appointment *models.Appointment) {
	start := utils.ToBusinessTime(appointment.AvailabilitySlot.StartTime)

	subject := "Appointment Cancelled"
	body := fmt.Sprintf(`
		<p>Dear %s %s,</p>
		<p>Your appointment has been cancelled.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Therapist:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>We hope to see you again soon.</p>
		<p>Best regards,</p>
		<p>Serenity Spa</p>
	`, appointment.Customer.Name, appointment.Customer.Surname,
		appointment.Service.Name, appointment.Therapist.Name,
		start.Format("2006-01-02 15:04"))

	sms := fmt.Sprintf("Your %s appointment on %s has been cancelled.",
		appointment.Service.Name, start.Format("Jan 2 15:04"))

	d.fanOut("cancellation", appointment.Customer.Email, subject, body,
		appointment.Customer.Phone, sms)
}

// ScheduleReminder records a reminder due 24 hours before the slot starts.
// The row is picked up by the cron sweep, so it survives restarts. Nothing
// is scheduled when the due time has already passed.
func ScheduleReminder(tx *gorm.DB, appointment *models.Appointment) error {
	dueAt := appointment.AvailabilitySlot.StartTime.Add(-24 * time.Hour)
	if dueAt.Before(time.Now()) {
		log.Printf("Skipping reminder for appointment %d: due time %s already passed",
			appointment.ID, dueAt.Format(time.RFC3339))
		return nil
	}

	reminder := models.Reminder{
		AppointmentID: appointment.ID,
		DueAt:         dueAt,
	}
	return tx.Create(&reminder).Error
}

// RescheduleReminder repoints the pending reminder at the new slot time, or
// drops it when the new due time is already in the past.
func RescheduleReminder(tx *gorm.DB, appointment *models.Appointment) error {
	dueAt := appointment.AvailabilitySlot.StartTime.Add(-24 * time.Hour)

	var reminder models.Reminder
	err := tx.Where("appointment_id = ? AND sent_at IS NULL", appointment.ID).
		First(&reminder).Error
	if err == gorm.ErrRecordNotFound {
		return ScheduleReminder(tx, appointment)
	}
	if err != nil {
		return err
	}

	if dueAt.Before(time.Now()) {
		log.Printf("Dropping reminder for appointment %d: new due time %s already passed",
			appointment.ID, dueAt.Format(time.RFC3339))
		return tx.Delete(&reminder).Error
	}

	return tx.Model(&reminder).Update("due_at", dueAt).Error
}

// CancelReminder removes any pending reminder so a cancelled appointment
// never fires a stale notification.
func CancelReminder(tx *gorm.DB, appointmentID uint) error {
	return tx.Where("appointment_id = ? AND sent_at IS NULL", appointmentID).
		Delete(&models.Reminder{}).Error
}
