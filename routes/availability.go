package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/serenispa/booking-api/controllers"
	"github.com/serenispa/booking-api/middleware"
)

// SetupAvailabilityRoutes configures all availability slot routes
func SetupAvailabilityRoutes(app *fiber.App) {
	availability := app.Group("/availability")
	availability.Get("/", controllers.GetAllAvailabilitySlots)
	availability.Get("/:id", controllers.GetAvailabilitySlot)
	availability.Post("/", middleware.Protected(), middleware.RequireRole("admin", "therapist"), controllers.CreateAvailabilitySlot)
	availability.Put("/:id", middleware.Protected(), middleware.RequireRole("admin", "therapist"), controllers.UpdateAvailabilitySlot)
	availability.Delete("/:id", middleware.Protected(), middleware.RequireRole("admin", "therapist"), controllers.DeleteAvailabilitySlot)
}
