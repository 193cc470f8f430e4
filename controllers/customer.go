package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/serenispa/booking-api/db"
	"github.com/serenispa/booking-api/models"
	"github.com/serenispa/booking-api/utils"
)

// GetAllCustomers returns all customers
func GetAllCustomers(c *fiber.Ctx) error {
	var customers []models.Customer
	if err := db.DB.Find(&customers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch customers",
			Error:   err.Error(),
		})
	}
	return c.JSON(customers)
}

// GetCustomer returns one customer by ID
func GetCustomer(c *fiber.Ctx) error {
	id := c.Params("id")
	var customer models.Customer
	if err := db.DB.First(&customer, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Customer not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(customer)
}

// CreateCustomer records the person a booking is for. Email is deliberately
// not unique here; the guest flow may create a row per booking.
func CreateCustomer(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if customer.Name == "" || customer.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Name and email are required",
		})
	}
	if err := db.DB.Create(&customer).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create customer",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// UpdateCustomer edits customer contact fields
func UpdateCustomer(c *fiber.Ctx) error {
	id := c.Params("id")
	var customer models.Customer
	if err := db.DB.First(&customer, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Customer not found",
			Error:   err.Error(),
		})
	}

	var payload models.Customer
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&customer).Updates(payload).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update customer",
			Error:   err.Error(),
		})
	}
	return c.JSON(customer)
}

// DeleteCustomer removes a customer record
func DeleteCustomer(c *fiber.Ctx) error {
	id := c.Params("id")
	var customer models.Customer
	if err := db.DB.First(&customer, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Customer not found",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Delete(&customer).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete customer",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
