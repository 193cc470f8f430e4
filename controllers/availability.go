package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/serenispa/booking-api/db"
	"github.com/serenispa/booking-api/models"
	"github.com/serenispa/booking-api/utils"
)

// GetAllAvailabilitySlots lists slots, optionally filtered by therapist and
// booking state (?therapist_id=3&free=true)
func GetAllAvailabilitySlots(c *fiber.Ctx) error {
	query := db.DB.Order("start_time ASC")

	if therapistID := c.Query("therapist_id"); therapistID != "" {
		query = query.Where("therapist_id = ?", therapistID)
	}
	if free := c.Query("free"); free != "" {
		isFree, err := strconv.ParseBool(free)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid free filter",
				Error:   err.Error(),
			})
		}
		query = query.Where("is_booked = ?", !isFree)
	}

	var slots []models.AvailabilitySlot
	if err := query.Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability slots",
			Error:   err.Error(),
		})
	}
	return c.JSON(slots)
}

// GetAvailabilitySlot returns one slot by ID
func GetAvailabilitySlot(c *fiber.Ctx) error {
	id := c.Params("id")
	var slot models.AvailabilitySlot
	if err := db.DB.First(&slot, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Availability slot not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(slot)
}

// CreateAvailabilitySlot opens a new bookable interval for a therapist
func CreateAvailabilitySlot(c *fiber.Ctx) error {
	var slot models.AvailabilitySlot
	if err := c.BodyParser(&slot); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if slot.StartTime.IsZero() || slot.EndTime.IsZero() || !slot.EndTime.After(slot.StartTime) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Start time must be before end time",
		})
	}

	var therapist models.Therapist
	if err := db.DB.First(&therapist, slot.TherapistID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Therapist not found",
			Error:   err.Error(),
		})
	}

	// Slots are stored and served in UTC
	slot.StartTime = slot.StartTime.UTC()
	slot.EndTime = slot.EndTime.UTC()
	slot.IsBooked = false

	if err := db.DB.Create(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create availability slot",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(slot)
}

// UpdateAvailabilitySlot edits a slot's times
func UpdateAvailabilitySlot(c *fiber.Ctx) error {
	id := c.Params("id")
	var slot models.AvailabilitySlot
	if err := db.DB.First(&slot, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Availability slot not found",
			Error:   err.Error(),
		})
	}

	var payload struct {
		StartTime time.Time `json:"start_time"`
		EndTime   time.Time `json:"end_time"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	updates := map[string]interface{}{}
	if !payload.StartTime.IsZero() {
		updates["start_time"] = payload.StartTime.UTC()
	}
	if !payload.EndTime.IsZero() {
		updates["end_time"] = payload.EndTime.UTC()
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&slot).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update availability slot",
				Error:   err.Error(),
			})
		}
	}
	return c.JSON(slot)
}

// DeleteAvailabilitySlot removes a slot. A booked slot cannot be deleted:
// the appointment referencing it has to be cancelled first.
func DeleteAvailabilitySlot(c *fiber.Ctx) error {
	id := c.Params("id")
	var slot models.AvailabilitySlot
	if err := db.DB.First(&slot, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Availability slot not found",
			Error:   err.Error(),
		})
	}

	if slot.IsBooked {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot delete a booked slot",
		})
	}

	if err := db.DB.Delete(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete availability slot",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
