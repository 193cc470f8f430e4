package db

import (
	"fmt"
	"log"

	"github.com/serenispa/booking-api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.UserFavoriteTherapist{},
		&models.Service{},
		&models.Therapist{},
		&models.AvailabilitySlot{},
		&models.Customer{},
		&models.Appointment{},
		&models.Reminder{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
