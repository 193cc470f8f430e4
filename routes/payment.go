package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/serenispa/booking-api/controllers"
)

// SetupPaymentRoutes configures the simulated payment endpoint
func SetupPaymentRoutes(app *fiber.App) {
	payment := app.Group("/payments")
	payment.Post("/simulate", controllers.SimulatePayment)
}
