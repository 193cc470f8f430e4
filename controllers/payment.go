package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/serenispa/booking-api/utils"
)

type SimulatePaymentInput struct {
	Amount     float64 `json:"amount"`
	CardNumber string  `json:"card_number"`
}

// SimulatePayment approves or declines a synthetic payment. No real gateway
// is involved; card numbers ending in 0000 decline, everything else with a
// positive amount approves.
func SimulatePayment(c *fiber.Ctx) error {
	var input SimulatePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Amount must be positive",
		})
	}

	reference := uuid.NewString()

	if strings.HasSuffix(input.CardNumber, "0000") {
		return c.JSON(fiber.Map{
			"success":   false,
			"status":    "declined",
			"reference": reference,
			"message":   "Payment was declined",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"status":    "approved",
		"reference": reference,
		"message":   "Payment approved",
	})
}
