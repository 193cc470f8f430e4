package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/serenispa/booking-api/db"
	"github.com/serenispa/booking-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func registerUser(t *testing.T, app *fiber.App, email string) (models.User, string) {
	t.Helper()

	resp := doRequest(t, app, http.MethodPost, "/auth/register", "", RegisterInput{
		Name:            "Elif",
		Surname:         "Demir",
		Email:           email,
		Phone:           "+905551112233",
		Password:        "sekret1",
		ConfirmPassword: "sekret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.User, body.Token
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupTestApp(t)

	user, _ := registerUser(t, app, "elif@example.com")
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.False(t, user.IsVerified)

	// Stored password is a bcrypt hash, never the plaintext
	var stored models.User
	require.NoError(t, db.DB.First(&stored, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("sekret1")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("wrong")))
	assert.NotEmpty(t, stored.VerificationToken)

	resp := doRequest(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "elif@example.com",
		"password": "sekret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login map[string]interface{}
	decodeBody(t, resp, &login)
	assert.NotEmpty(t, login["token"])

	require.NoError(t, db.DB.First(&stored, user.ID).Error)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestRegisterValidation(t *testing.T) {
	app := setupTestApp(t)

	// Too short
	resp := doRequest(t, app, http.MethodPost, "/auth/register", "", RegisterInput{
		Name: "Elif", Email: "a@b.com", Password: "abc", ConfirmPassword: "abc",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Confirmation mismatch
	resp = doRequest(t, app, http.MethodPost, "/auth/register", "", RegisterInput{
		Name: "Elif", Email: "a@b.com", Password: "sekret1", ConfirmPassword: "sekret2",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Duplicate email
	registerUser(t, app, "dup@example.com")
	resp = doRequest(t, app, http.MethodPost, "/auth/register", "", RegisterInput{
		Name: "Elif", Email: "dup@example.com", Password: "sekret1", ConfirmPassword: "sekret1",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "User with this email already exists", body["message"])
}

func TestLoginFailureIsGeneric(t *testing.T) {
	app := setupTestApp(t)
	registerUser(t, app, "elif@example.com")

	// Wrong password and unknown email produce the same message
	var wrongPassword, unknownEmail map[string]string

	resp := doRequest(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "elif@example.com", "password": "nope",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeBody(t, resp, &wrongPassword)

	resp = doRequest(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ghost@example.com", "password": "nope",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeBody(t, resp, &unknownEmail)

	assert.Equal(t, wrongPassword["message"], unknownEmail["message"])
}

func TestChangePassword(t *testing.T) {
	app := setupTestApp(t)
	user, token := registerUser(t, app, "elif@example.com")

	path := fmt.Sprintf("/auth/change-password/%d", user.ID)

	// Wrong current password
	resp := doRequest(t, app, http.MethodPost, path, token, ChangePasswordInput{
		CurrentPassword: "wrong", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, path, token, ChangePasswordInput{
		CurrentPassword: "sekret1", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "elif@example.com", "password": "newpass1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestForgotPasswordIsGeneric(t *testing.T) {
	app := setupTestApp(t)
	registerUser(t, app, "elif@example.com")

	var known, unknown map[string]string

	resp := doRequest(t, app, http.MethodPost, "/auth/forgot-password", "",
		map[string]string{"email": "elif@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &known)

	resp = doRequest(t, app, http.MethodPost, "/auth/forgot-password", "",
		map[string]string{"email": "ghost@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &unknown)

	assert.Equal(t, known["message"], unknown["message"])
}

func TestResetTokenIsSingleUse(t *testing.T) {
	app := setupTestApp(t)
	user, _ := registerUser(t, app, "elif@example.com")

	resp := doRequest(t, app, http.MethodPost, "/auth/forgot-password", "",
		map[string]string{"email": "elif@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var stored models.User
	require.NoError(t, db.DB.First(&stored, user.ID).Error)
	require.NotEmpty(t, stored.ResetToken)
	resetToken := stored.ResetToken

	resp = doRequest(t, app, http.MethodPost, "/auth/reset-password", "", ResetPasswordInput{
		Token: resetToken, NewPassword: "brandnew1", ConfirmPassword: "brandnew1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The token was cleared on use; a replay fails
	resp = doRequest(t, app, http.MethodPost, "/auth/reset-password", "", ResetPasswordInput{
		Token: resetToken, NewPassword: "another1", ConfirmPassword: "another1",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Invalid or expired reset token", body["message"])

	resp = doRequest(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "elif@example.com", "password": "brandnew1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestVerifyEmail(t *testing.T) {
	app := setupTestApp(t)
	user, _ := registerUser(t, app, "elif@example.com")

	var stored models.User
	require.NoError(t, db.DB.First(&stored, user.ID).Error)
	require.NotEmpty(t, stored.VerificationToken)
	verifyToken := stored.VerificationToken

	resp := doRequest(t, app, http.MethodGet,
		"/auth/verify-email?token="+verifyToken, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.NoError(t, db.DB.First(&stored, user.ID).Error)
	assert.True(t, stored.IsVerified)
	assert.Empty(t, stored.VerificationToken)

	// The token was cleared; replaying it fails
	resp = doRequest(t, app, http.MethodGet,
		"/auth/verify-email?token="+verifyToken, "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestResetPasswordBadToken(t *testing.T) {
	app := setupTestApp(t)
	registerUser(t, app, "elif@example.com")

	resp := doRequest(t, app, http.MethodPost, "/auth/reset-password", "", ResetPasswordInput{
		Token: "nonsense", NewPassword: "brandnew1", ConfirmPassword: "brandnew1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestFavoritesAreIdempotent(t *testing.T) {
	app := setupTestApp(t)
	user, token := registerUser(t, app, "elif@example.com")

	therapist := models.Therapist{Name: "Ayşe", Bio: "Senior therapist"}
	require.NoError(t, db.DB.Create(&therapist).Error)

	addPath := fmt.Sprintf("/auth/favorites/%d/add/%d", user.ID, therapist.ID)
	removePath := fmt.Sprintf("/auth/favorites/%d/remove/%d", user.ID, therapist.ID)
	listPath := fmt.Sprintf("/auth/favorites/%d", user.ID)

	// Adding twice succeeds both times and stores one row
	for i := 0; i < 2; i++ {
		resp := doRequest(t, app, http.MethodPost, addPath, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	var count int64
	db.DB.Model(&models.UserFavoriteTherapist{}).
		Where("user_id = ? AND therapist_id = ?", user.ID, therapist.ID).
		Count(&count)
	assert.EqualValues(t, 1, count)

	resp := doRequest(t, app, http.MethodGet, listPath, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var favorites []TherapistSummary
	decodeBody(t, resp, &favorites)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Ayşe", favorites[0].Name)
	assert.Equal(t, "Senior therapist", favorites[0].Bio)

	// Removing twice succeeds both times
	for i := 0; i < 2; i++ {
		resp := doRequest(t, app, http.MethodDelete, removePath, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	db.DB.Model(&models.UserFavoriteTherapist{}).
		Where("user_id = ? AND therapist_id = ?", user.ID, therapist.ID).
		Count(&count)
	assert.Zero(t, count)
}

func TestAddFavoriteUnknownTherapist(t *testing.T) {
	app := setupTestApp(t)
	user, token := registerUser(t, app, "elif@example.com")

	resp := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/auth/favorites/%d/add/9999", user.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProfileRequiresToken(t *testing.T) {
	app := setupTestApp(t)
	user, token := registerUser(t, app, "elif@example.com")

	path := fmt.Sprintf("/auth/profile/%d", user.ID)

	resp := doRequest(t, app, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		User models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "elif@example.com", body.User.Email)
	assert.Empty(t, body.User.Password)
}

func TestUpdateProfile(t *testing.T) {
	app := setupTestApp(t)
	user, token := registerUser(t, app, "elif@example.com")

	resp := doRequest(t, app, http.MethodPut,
		fmt.Sprintf("/auth/profile/%d", user.ID), token,
		UpdateProfileInput{Name: "Elif Nur", Phone: "+905559998877"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.User
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Elif Nur", updated.Name)
	assert.Equal(t, "+905559998877", updated.Phone)
}
