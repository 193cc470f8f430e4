package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/serenispa/booking-api/controllers"
	"github.com/serenispa/booking-api/middleware"
)

// SetupTherapistRoutes configures all therapist related routes
func SetupTherapistRoutes(app *fiber.App) {
	therapist := app.Group("/therapists")
	therapist.Get("/", controllers.GetAllTherapists)
	therapist.Get("/:id", controllers.GetTherapist)
	therapist.Post("/", middleware.Protected(), middleware.RequireRole("admin"), controllers.CreateTherapist)
	therapist.Put("/:id", middleware.Protected(), middleware.RequireRole("admin", "therapist"), controllers.UpdateTherapist)
	therapist.Delete("/:id", middleware.Protected(), middleware.RequireRole("admin"), controllers.DeleteTherapist)
	therapist.Post("/:id/upload-picture", middleware.Protected(), middleware.RequireRole("admin", "therapist"), controllers.UploadTherapistPicture)
}
