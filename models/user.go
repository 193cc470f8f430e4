package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer  UserRole = "customer"
	RoleTherapist UserRole = "therapist"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID                    uint          `json:"id" gorm:"primaryKey"`
	Name                  string        `json:"name"`
	Surname               string        `json:"surname"`
	Email                 string        `json:"email" gorm:"unique"`
	Phone                 string        `json:"phone"`
	Password              string        `json:"password,omitempty"`
	Role                  UserRole      `json:"role" gorm:"default:customer"`
	IsVerified            bool          `json:"is_verified"`
	VerificationToken     string        `json:"-"`
	VerificationExpiresAt time.Time     `json:"-"`
	ResetToken            string        `json:"-"`
	ResetExpiresAt        time.Time     `json:"-"`
	LastLoginAt           *time.Time    `json:"last_login_at,omitempty"`
	Therapist             *Therapist    `json:"therapist,omitempty" gorm:"foreignKey:UserID"`
	Appointments          []Appointment `json:"appointments,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

// UserFavoriteTherapist links a user to a therapist they favorited.
// The composite unique index keeps a pair from being stored twice.
type UserFavoriteTherapist struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex:idx_user_therapist"`
	TherapistID uint      `json:"therapist_id" gorm:"uniqueIndex:idx_user_therapist"`
	Therapist   Therapist `json:"therapist,omitempty" gorm:"foreignKey:TherapistID"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasFavorited reports whether the pair already exists.
func (f *UserFavoriteTherapist) HasFavorited(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&UserFavoriteTherapist{}).
		Where("user_id = ? AND therapist_id = ?", f.UserID, f.TherapistID).
		Count(&count).Error
	return count > 0, err
}
