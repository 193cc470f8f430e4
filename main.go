package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/serenispa/booking-api/cron"
	"github.com/serenispa/booking-api/db"
	"github.com/serenispa/booking-api/redis"
	"github.com/serenispa/booking-api/routes"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		db.Migrate()
		return
	}

	app := fiber.New()
	db.Init()

	if os.Getenv("REDIS_ADDR") != "" {
		redis.InitRedis()
	} else {
		log.Println("REDIS_ADDR not set, logout token denylist disabled")
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Serenity Spa booking API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupTherapistRoutes(app)
	routes.SetupAvailabilityRoutes(app)
	routes.SetupCustomerRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupPaymentRoutes(app)

	cron.StartCronJobs()

	app.Listen(":8000")
}
