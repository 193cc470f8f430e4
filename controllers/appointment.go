package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/serenispa/booking-api/db"
	"github.com/serenispa/booking-api/models"
	"github.com/serenispa/booking-api/notifications"
	"github.com/serenispa/booking-api/utils"
	"gorm.io/gorm"
)

var errSlotUnavailable = errors.New("selected time is unavailable")

// withAppointmentAssociations preloads everything a booking response needs
func withAppointmentAssociations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Service").
		Preload("Therapist").
		Preload("Customer").
		Preload("AvailabilitySlot")
}

// GetAllAppointments returns every appointment, newest slot first
func GetAllAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	err := withAppointmentAssociations(db.DB).
		Joins("JOIN availability_slots ON availability_slots.id = appointments.availability_slot_id").
		Order("availability_slots.start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment returns one appointment by ID
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := withAppointmentAssociations(db.DB).First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// customerAppointments builds the base query for one customer's bookings
func customerAppointments(email string) *gorm.DB {
	return withAppointmentAssociations(db.DB).
		Joins("JOIN customers ON customers.id = appointments.customer_id").
		Joins("JOIN availability_slots ON availability_slots.id = appointments.availability_slot_id").
		Where("customers.email = ?", email)
}

// GetCustomerAppointments returns all appointments booked under an email
func GetCustomerAppointments(c *fiber.Ctx) error {
	email := c.Params("email")
	var appointments []models.Appointment
	err := customerAppointments(email).
		Order("availability_slots.start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetCustomerUpcomingAppointments returns bookings whose slot has not
// started yet, soonest first
func GetCustomerUpcomingAppointments(c *fiber.Ctx) error {
	email := c.Params("email")
	var appointments []models.Appointment
	err := customerAppointments(email).
		Where("availability_slots.start_time > ?", time.Now().UTC()).
		Order("availability_slots.start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch upcoming appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetCustomerPastAppointments returns bookings whose slot already started,
// most recent first
func GetCustomerPastAppointments(c *fiber.Ctx) error {
	email := c.Params("email")
	var appointments []models.Appointment
	err := customerAppointments(email).
		Where("availability_slots.start_time <= ?", time.Now().UTC()).
		Order("availability_slots.start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch past appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

type CreateAppointmentInput struct {
	ServiceID          uint  `json:"service_id"`
	TherapistID        uint  `json:"therapist_id"`
	AvailabilitySlotID uint  `json:"availability_slot_id"`
	CustomerID         uint  `json:"customer_id"`
	UserID             *uint `json:"user_id"`
}

// CreateAppointment books a slot. The slot reservation and the appointment
// insert happen in one transaction; the reservation is a conditional update
// so a concurrent booking of the same slot loses with a clear error.
func CreateAppointment(c *fiber.Ctx) error {
	var input CreateAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var service models.Service
	if err := db.DB.First(&service, input.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
			Error:   err.Error(),
		})
	}
	var therapist models.Therapist
	if err := db.DB.First(&therapist, input.TherapistID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Therapist not found",
			Error:   err.Error(),
		})
	}
	var slot models.AvailabilitySlot
	if err := db.DB.First(&slot, input.AvailabilitySlotID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Availability slot not found",
			Error:   err.Error(),
		})
	}
	var customer models.Customer
	if err := db.DB.First(&customer, input.CustomerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Customer not found",
			Error:   err.Error(),
		})
	}

	appointment := models.Appointment{
		ServiceID:          input.ServiceID,
		TherapistID:        input.TherapistID,
		AvailabilitySlotID: input.AvailabilitySlotID,
		CustomerID:         input.CustomerID,
		UserID:             input.UserID,
	}
	// Creation timestamp is kept in the spa's local time for display
	appointment.CreatedAt = utils.ToBusinessTime(time.Now())

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		reserved, err := utils.ReserveSlot(tx, input.AvailabilitySlotID)
		if err != nil {
			return err
		}
		if !reserved {
			return errSlotUnavailable
		}

		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}

		appointment.AvailabilitySlot = slot
		return notifications.ScheduleReminder(tx, &appointment)
	})
	if err != nil {
		if errors.Is(err, errSlotUnavailable) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Selected time is unavailable",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}

	var created models.Appointment
	if err := withAppointmentAssociations(db.DB).First(&created, appointment.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load created appointment",
			Error:   err.Error(),
		})
	}

	go notifications.Default.SendConfirmation(&created)

	return c.Status(fiber.StatusCreated).JSON(created)
}

type RescheduleInput struct {
	NewAvailabilitySlotID uint  `json:"new_availability_slot_id"`
	NewTherapistID        *uint `json:"new_therapist_id"`
}

// RescheduleAppointment moves a booking to another free slot. Releasing the
// old slot, reserving the new one and repointing the appointment are one
// atomic unit; no intermediate state is observable.
func RescheduleAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var input RescheduleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	var newSlot models.AvailabilitySlot
	if err := db.DB.First(&newSlot, input.NewAvailabilitySlotID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Selected time is unavailable",
		})
	}

	oldSlotID := appointment.AvailabilitySlotID
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := utils.ReleaseSlot(tx, oldSlotID); err != nil {
			return err
		}

		reserved, err := utils.ReserveSlot(tx, newSlot.ID)
		if err != nil {
			return err
		}
		if !reserved {
			return errSlotUnavailable
		}

		updates := map[string]interface{}{
			"availability_slot_id": newSlot.ID,
		}
		if input.NewTherapistID != nil {
			updates["therapist_id"] = *input.NewTherapistID
		}
		if err := tx.Model(&appointment).Updates(updates).Error; err != nil {
			return err
		}

		appointment.AvailabilitySlot = newSlot
		return notifications.RescheduleReminder(tx, &appointment)
	})
	if err != nil {
		if errors.Is(err, errSlotUnavailable) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Selected time is unavailable",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reschedule appointment",
			Error:   err.Error(),
		})
	}

	var updated models.Appointment
	if err := withAppointmentAssociations(db.DB).First(&updated, appointment.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load rescheduled appointment",
			Error:   err.Error(),
		})
	}

	go notifications.Default.SendConfirmation(&updated)

	return c.JSON(updated)
}

// UpdateAppointment is a generic field edit without booking-rule checks
func UpdateAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment ID",
			Error:   err.Error(),
		})
	}

	var payload models.Appointment
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if payload.ID != 0 && payload.ID != uint(id) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Appointment ID mismatch",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&appointment).Updates(payload).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// DeleteAppointment cancels a booking. The appointment is removed, the slot
// is released and any pending reminder is dropped, all in one transaction.
func DeleteAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var appointment models.Appointment
	if err := withAppointmentAssociations(db.DB).First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&appointment).Error; err != nil {
			return err
		}
		if err := utils.ReleaseSlot(tx, appointment.AvailabilitySlotID); err != nil {
			return err
		}
		return notifications.CancelReminder(tx, appointment.ID)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to cancel appointment",
			Error:   err.Error(),
		})
	}

	go notifications.Default.SendCancellation(&appointment)

	return c.SendStatus(fiber.StatusNoContent)
}
