package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/serenispa/booking-api/controllers"
	"github.com/serenispa/booking-api/middleware"
)

// SetupServiceRoutes configures all service catalogue routes
func SetupServiceRoutes(app *fiber.App) {
	service := app.Group("/services")
	service.Get("/", controllers.GetAllServices)
	service.Get("/:id", controllers.GetService)
	service.Post("/", middleware.Protected(), middleware.RequireRole("admin"), controllers.CreateService)
	service.Put("/:id", middleware.Protected(), middleware.RequireRole("admin"), controllers.UpdateService)
	service.Delete("/:id", middleware.Protected(), middleware.RequireRole("admin"), controllers.DeleteService)
}
