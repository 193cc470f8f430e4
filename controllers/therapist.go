package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/serenispa/booking-api/db"
	"github.com/serenispa/booking-api/models"
	"github.com/serenispa/booking-api/utils"
)

// GetAllTherapists returns all therapists
func GetAllTherapists(c *fiber.Ctx) error {
	var therapists []models.Therapist
	if err := db.DB.Find(&therapists).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch therapists",
			Error:   err.Error(),
		})
	}
	return c.JSON(therapists)
}

// GetTherapist returns one therapist with their availability
func GetTherapist(c *fiber.Ctx) error {
	id := c.Params("id")
	var therapist models.Therapist
	if err := db.DB.Preload("AvailabilitySlots").First(&therapist, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Therapist not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(therapist)
}

// CreateTherapist adds a therapist profile
func CreateTherapist(c *fiber.Ctx) error {
	var therapist models.Therapist
	if err := c.BodyParser(&therapist); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if therapist.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Name is required",
		})
	}
	if err := db.DB.Create(&therapist).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create therapist",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(therapist)
}

// UpdateTherapist edits a therapist profile
func UpdateTherapist(c *fiber.Ctx) error {
	id := c.Params("id")
	var therapist models.Therapist
	if err := db.DB.First(&therapist, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Therapist not found",
			Error:   err.Error(),
		})
	}

	var payload models.Therapist
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&therapist).Updates(payload).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update therapist",
			Error:   err.Error(),
		})
	}
	return c.JSON(therapist)
}

// DeleteTherapist removes a therapist profile
func DeleteTherapist(c *fiber.Ctx) error {
	id := c.Params("id")
	var therapist models.Therapist
	if err := db.DB.First(&therapist, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Therapist not found",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Delete(&therapist).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete therapist",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadTherapistPicture stores a profile picture on Cloudinary and saves
// the public URL on the therapist
func UploadTherapistPicture(c *fiber.Ctx) error {
	id := c.Params("id")
	var therapist models.Therapist
	if err := db.DB.First(&therapist, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Therapist not found",
			Error:   err.Error(),
		})
	}

	file, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to get profile picture",
			Error:   err.Error(),
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to open profile picture",
			Error:   err.Error(),
		})
	}
	defer f.Close()

	publicID := fmt.Sprintf("therapist_%d_%d", therapist.ID, time.Now().Unix())
	secureURL, err := utils.UploadToCloudinary(f, publicID, "therapist_pictures")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload profile picture",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&therapist).Update("profile_picture_url", secureURL).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save profile picture",
			Error:   err.Error(),
		})
	}

	therapist.ProfilePictureURL = &secureURL
	return c.JSON(therapist)
}
