package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/serenispa/booking-api/controllers"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")
	appointment.Get("/", controllers.GetAllAppointments)
	appointment.Get("/customer/:email", controllers.GetCustomerAppointments)
	appointment.Get("/customer/:email/upcoming", controllers.GetCustomerUpcomingAppointments)
	appointment.Get("/customer/:email/past", controllers.GetCustomerPastAppointments)
	appointment.Get("/:id", controllers.GetAppointment)
	appointment.Post("/", controllers.CreateAppointment)
	appointment.Put("/:id/reschedule", controllers.RescheduleAppointment)
	appointment.Put("/:id", controllers.UpdateAppointment)
	appointment.Delete("/:id", controllers.DeleteAppointment)
}
