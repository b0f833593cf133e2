package routes

import (
	"github.com/gofiber/fiber/v2"

	"chirper/src/controllers"
)

// AuthRoutes sets up signup, login, logout, and the current-identity route.
func AuthRoutes(app *fiber.App, ctrl *controllers.AuthController, protect fiber.Handler) {
	auth := app.Group("/api/auth")

	auth.Post("/signup", ctrl.Signup)
	auth.Post("/login", ctrl.Login)
	auth.Post("/logout", protect, ctrl.Logout)
	auth.Get("/me", protect, ctrl.GetMe)
}
