package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/serenispa/booking-api/controllers"
	"github.com/serenispa/booking-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/forgot-password", controllers.ForgotPassword)
	auth.Post("/reset-password", controllers.ResetPassword)
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Get("/verify-email", controllers.VerifyEmail)

	// Protected routes
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
	auth.Post("/change-password/:userId", middleware.Protected(), controllers.ChangePassword)
	auth.Get("/profile/:userId", middleware.Protected(), controllers.GetProfile)
	auth.Put("/profile/:userId", middleware.Protected(), controllers.UpdateProfile)

	// Favorites
	auth.Get("/favorites/:userId", middleware.Protected(), controllers.GetFavorites)
	auth.Post("/favorites/:userId/add/:therapistId", middleware.Protected(), controllers.AddFavorite)
	auth.Delete("/favorites/:userId/remove/:therapistId", middleware.Protected(), controllers.RemoveFavorite)
}
