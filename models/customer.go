package models

import (
	"gorm.io/gorm"
)

// Customer is the person an appointment is booked for. Email is not unique:
// the guest booking flow may create a new row per booking.
type Customer struct {
	gorm.Model
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}
