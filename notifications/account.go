package notifications

import (
	"fmt"
	"log"
	"os"

	"github.com/serenispa/booking-api/models"
)

// SendVerificationEmail mails the address-verification link. Email only,
// still fire-and-forget: a failed send never fails the registration.
func (d *Dispatcher) SendVerificationEmail(user *models.User) {
	link := fmt.Sprintf("%s/verify-email?token=%s",
		os.Getenv("FRONTEND_URL"), user.VerificationToken)

	body := fmt.Sprintf(`
		<p>Dear %s %s,</p>
		<p>Welcome to Serenity Spa! Please verify your email address by
		clicking the link below. The link is valid for 24 hours.</p>
		<p><a href="%s">Verify my email</a></p>
		<p>Best regards,</p>
		<p>Serenity Spa</p>
	`, user.Name, user.Surname, link)

	if err := d.Email.Send(user.Email, "Verify your email", body); err != nil {
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
	}
}

// SendPasswordResetEmail mails the reset link. The token is valid for one
// hour and is cleared after a successful reset.
func (d *Dispatcher) SendPasswordResetEmail(user *models.User) {
	link := fmt.Sprintf("%s/reset-password?token=%s",
		os.Getenv("FRONTEND_URL"), user.ResetToken)

	body := fmt.Sprintf(`
		<p>Dear %s %s,</p>
		<p>We received a request to reset your password. Click the link
		below to choose a new one. The link is valid for 1 hour.</p>
		<p><a href="%s">Reset my password</a></p>
		<p>If you did not request this, you can safely ignore this email.</p>
		<p>Best regards,</p>
		<p>Serenity Spa</p>
	`, user.Name, user.Surname, link)

	if err := d.Email.Send(user.Email, "Password reset", body); err != nil {
		log.Printf("Failed to send password reset email to %s: %v", user.Email, err)
	}
}
