package models

import (
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    uint    `json:"duration"` // Duration in minutes
	Price       float64 `json:"price" gorm:"type:decimal(10,2)"`
}
