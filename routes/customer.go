package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/serenispa/booking-api/controllers"
	"github.com/serenispa/booking-api/middleware"
)

// SetupCustomerRoutes configures all customer related routes
func SetupCustomerRoutes(app *fiber.App) {
	customer := app.Group("/customers")
	customer.Get("/", controllers.GetAllCustomers)
	customer.Get("/:id", controllers.GetCustomer)
	customer.Post("/", controllers.CreateCustomer)
	customer.Put("/:id", controllers.UpdateCustomer)
	customer.Delete("/:id", middleware.Protected(), middleware.RequireRole("admin"), controllers.DeleteCustomer)
}
