package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/serenispa/booking-api/db"
	"github.com/serenispa/booking-api/middleware"
	"github.com/serenispa/booking-api/models"
	"github.com/serenispa/booking-api/notifications"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingSender captures notification sends so tests can assert on them
// without touching SMTP or Twilio. Sends happen on goroutines, hence the
// mutex.
type recordingSender struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingSender) record(call string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
	return nil
}

func (r *recordingSender) Send(to, subject, body string) error {
	return r.record(to + "|" + subject)
}

type recordingSMS struct{ recordingSender }

func (r *recordingSMS) Send(phone, message string) error {
	return r.record(phone + "|" + message)
}

func setupTestDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.UserFavoriteTherapist{},
		&models.Service{},
		&models.Therapist{},
		&models.AvailabilitySlot{},
		&models.Customer{},
		&models.Appointment{},
		&models.Reminder{},
	))

	db.DB = gdb

	notifications.Default = &notifications.Dispatcher{
		Email: &recordingSender{},
		SMS:   &recordingSMS{},
	}
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	setupTestDB(t)

	app := fiber.New()

	app.Post("/auth/register", Register)
	app.Post("/auth/login", Login)
	app.Post("/auth/forgot-password", ForgotPassword)
	app.Post("/auth/reset-password", ResetPassword)
	app.Get("/auth/verify-email", VerifyEmail)
	app.Post("/auth/change-password/:userId", middleware.Protected(), ChangePassword)
	app.Get("/auth/profile/:userId", middleware.Protected(), GetProfile)
	app.Put("/auth/profile/:userId", middleware.Protected(), UpdateProfile)
	app.Get("/auth/favorites/:userId", middleware.Protected(), GetFavorites)
	app.Post("/auth/favorites/:userId/add/:therapistId", middleware.Protected(), AddFavorite)
	app.Delete("/auth/favorites/:userId/remove/:therapistId", middleware.Protected(), RemoveFavorite)

	app.Get("/appointments", GetAllAppointments)
	app.Get("/appointments/customer/:email", GetCustomerAppointments)
	app.Get("/appointments/customer/:email/upcoming", GetCustomerUpcomingAppointments)
	app.Get("/appointments/customer/:email/past", GetCustomerPastAppointments)
	app.Get("/appointments/:id", GetAppointment)
	app.Post("/appointments", CreateAppointment)
	app.Put("/appointments/:id/reschedule", RescheduleAppointment)
	app.Put("/appointments/:id", UpdateAppointment)
	app.Delete("/appointments/:id", DeleteAppointment)

	app.Get("/availability", GetAllAvailabilitySlots)
	app.Get("/availability/:id", GetAvailabilitySlot)
	app.Post("/availability", CreateAvailabilitySlot)
	app.Put("/availability/:id", UpdateAvailabilitySlot)
	app.Delete("/availability/:id", DeleteAvailabilitySlot)

	app.Post("/payments/simulate", SimulatePayment)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	resp.Body.Close()
}
