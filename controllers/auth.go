package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/serenispa/booking-api/db"
	"github.com/serenispa/booking-api/middleware"
	"github.com/serenispa/booking-api/models"
	"github.com/serenispa/booking-api/notifications"
	"github.com/serenispa/booking-api/redis"
	"github.com/serenispa/booking-api/utils"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// issueTokenPair creates the 24h access token and the 7 day refresh token
func issueTokenPair(user *models.User) (string, string, error) {
	secret := []byte(middleware.Secret())

	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(time.Hour * 24).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(time.Hour * 24 * 7).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(secret)
	if err != nil {
		return "", "", err
	}

	return token, refreshToken, nil
}

type RegisterInput struct {
	Name            string `json:"name"`
	Surname         string `json:"surname"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Register handles user registration
func Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	if input.Email == "" || input.Password == "" || input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
		})
	}
	if len(input.Password) < minPasswordLength {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Password must be at least 6 characters",
		})
	}
	if input.Password != input.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Passwords do not match",
		})
	}

	var existingUser models.User
	if db.DB.Where("email = ?", input.Email).First(&existingUser).RowsAffected > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "User with this email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to hash password",
		})
	}

	user := models.User{
		Name:                  input.Name,
		Surname:               input.Surname,
		Email:                 input.Email,
		Phone:                 input.Phone,
		Password:              string(hashedPassword),
		Role:                  models.RoleCustomer,
		VerificationToken:     utils.GenerateToken(),
		VerificationExpiresAt: time.Now().Add(24 * time.Hour),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create user",
			Error:   err.Error(),
		})
	}

	go notifications.Default.SendVerificationEmail(&user)

	token, refreshToken, err := issueTokenPair(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
		})
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// Login handles user authentication. The failure message never says whether
// the email exists.
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Email or password incorrect",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Email or password incorrect",
		})
	}

	now := time.Now()
	user.LastLoginAt = &now
	db.DB.Model(&user).Update("last_login_at", now)

	token, refreshToken, err := issueTokenPair(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
		})
	}

	favorites := favoriteTherapists(user.ID)

	return c.JSON(fiber.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"user": fiber.Map{
			"id":                  user.ID,
			"name":                user.Name,
			"surname":             user.Surname,
			"email":               user.Email,
			"phone":               user.Phone,
			"role":                user.Role,
			"is_verified":         user.IsVerified,
			"last_login_at":       user.LastLoginAt,
			"favorite_therapists": favorites,
		},
	})
}

// VerifyEmail consumes the emailed verification token and marks the
// account verified. Verification is informational and never gates login.
func VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Verification token is required",
		})
	}

	var user models.User
	err := db.DB.Where("verification_token = ? AND verification_expires_at > ?",
		token, time.Now()).First(&user).Error
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid or expired verification token",
		})
	}

	err = db.DB.Model(&user).Updates(map[string]interface{}{
		"is_verified":        true,
		"verification_token": "",
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to verify email",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Email verified successfully",
	})
}

// Logout puts the presented token on the redis denylist for the remainder
// of its lifetime. JWTs are stateless, so this is what invalidates them.
func Logout(c *fiber.Ctx) error {
	raw := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")

	token, _ := c.Locals("user").(*jwt.Token)
	if token != nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				ttl := time.Until(time.Unix(int64(exp), 0))
				if err := redis.RevokeToken(raw, ttl); err != nil {
					return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
						Message: "Failed to log out",
					})
				}
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	refreshRequest := new(RefreshRequest)
	if err := c.BodyParser(refreshRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	token, err := jwt.Parse(refreshRequest.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(middleware.Secret()), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	var user models.User
	if err := db.DB.First(&user, uint(claims["id"].(float64))).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid refresh token",
		})
	}

	newToken, _, err := issueTokenPair(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": newToken,
	})
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangePassword verifies the current password before accepting a new one
func ChangePassword(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var input ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	if len(input.NewPassword) < minPasswordLength {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Password must be at least 6 characters",
		})
	}
	if input.NewPassword != input.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Passwords do not match",
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Current password is incorrect",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to hash password",
		})
	}

	if err := db.DB.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update password",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Password changed successfully",
	})
}

// ForgotPassword always answers with the same message so the response does
// not reveal whether an account exists.
func ForgotPassword(c *fiber.Ctx) error {
	type ForgotInput struct {
		Email string `json:"email"`
	}

	input := new(ForgotInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected > 0 {
		user.ResetToken = utils.GenerateToken()
		user.ResetExpiresAt = time.Now().Add(time.Hour)
		db.DB.Model(&user).Updates(map[string]interface{}{
			"reset_token":      user.ResetToken,
			"reset_expires_at": user.ResetExpiresAt,
		})

		go notifications.Default.SendPasswordResetEmail(&user)
	}

	return c.JSON(fiber.Map{
		"message": "If an account exists for this email, a reset link has been sent",
	})
}

type ResetPasswordInput struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetPassword consumes a reset token. The token is single use: it is
// cleared as part of the same update that stores the new password.
func ResetPassword(c *fiber.Ctx) error {
	var input ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	if len(input.NewPassword) < minPasswordLength {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Password must be at least 6 characters",
		})
	}
	if input.NewPassword != input.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Passwords do not match",
		})
	}

	var user models.User
	err := db.DB.Where("reset_token = ? AND reset_token <> '' AND reset_expires_at > ?",
		input.Token, time.Now()).First(&user).Error
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid or expired reset token",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to hash password",
		})
	}

	err = db.DB.Model(&user).Updates(map[string]interface{}{
		"password":         string(hashedPassword),
		"reset_token":      "",
		"reset_expires_at": time.Time{},
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reset password",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Password reset successfully",
	})
}

// GetProfile returns a user's profile with favorite therapists
func GetProfile(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	user.Password = ""
	return c.JSON(fiber.Map{
		"user":                user,
		"favorite_therapists": favoriteTherapists(user.ID),
	})
}

type UpdateProfileInput struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// UpdateProfile edits the basic account fields
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var input UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Surname != "" {
		updates["surname"] = input.Surname
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.Email != "" && input.Email != user.Email {
		var other models.User
		if db.DB.Where("email = ?", input.Email).First(&other).RowsAffected > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "User with this email already exists",
			})
		}
		updates["email"] = input.Email
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update profile",
			})
		}
	}

	user.Password = ""
	return c.JSON(user)
}

// TherapistSummary is the projection returned for favorites
type TherapistSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

func favoriteTherapists(userID uint) []TherapistSummary {
	var favorites []TherapistSummary
	db.DB.Model(&models.Therapist{}).
		Select("therapists.id, therapists.name, therapists.bio").
		Joins("JOIN user_favorite_therapists ON user_favorite_therapists.therapist_id = therapists.id").
		Where("user_favorite_therapists.user_id = ?", userID).
		Scan(&favorites)
	return favorites
}

// AddFavorite is idempotent: favoriting an already-favorited therapist
// still reports success and stores nothing new.
func AddFavorite(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid user ID",
		})
	}
	therapistID, err := c.ParamsInt("therapistId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid therapist ID",
		})
	}

	var therapist models.Therapist
	if err := db.DB.First(&therapist, therapistID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Therapist not found",
		})
	}

	favorite := models.UserFavoriteTherapist{
		UserID:      uint(userID),
		TherapistID: uint(therapistID),
	}
	exists, err := favorite.HasFavorited(db.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to add favorite",
		})
	}
	if !exists {
		if err := db.DB.Create(&favorite).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to add favorite",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Therapist added to favorites",
	})
}

// RemoveFavorite is idempotent as well
func RemoveFavorite(c *fiber.Ctx) error {
	userID := c.Params("userId")
	therapistID := c.Params("therapistId")

	err := db.DB.Where("user_id = ? AND therapist_id = ?", userID, therapistID).
		Delete(&models.UserFavoriteTherapist{}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to remove favorite",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Therapist removed from favorites",
	})
}

// GetFavorites lists a user's favorite therapists
func GetFavorites(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid user ID",
		})
	}
	return c.JSON(favoriteTherapists(uint(userID)))
}
