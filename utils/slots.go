package utils

import (
	"github.com/serenispa/booking-api/models"
	"gorm.io/gorm"
)

// ReserveSlot marks a slot booked iff it is currently free. The conditional
// update makes concurrent bookings of the same slot race-safe: of two
// requests passing an earlier "is it free" read, only one update affects a
// row and the loser gets false.
func ReserveSlot(tx *gorm.DB, slotID uint) (bool, error) {
	res := tx.Model(&models.AvailabilitySlot{}).
		Where("id = ? AND is_booked = ?", slotID, false).
		Update("is_booked", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ReleaseSlot marks a slot free again after a cancellation or reschedule.
func ReleaseSlot(tx *gorm.DB, slotID uint) error {
	return tx.Model(&models.AvailabilitySlot{}).
		Where("id = ?", slotID).
		Update("is_booked", false).Error
}
