package routes

import (
	"github.com/gofiber/fiber/v2"

	"chirper/src/controllers"
)

// UserRoutes sets up profile, suggestion, follow, and profile-update routes.
func UserRoutes(app *fiber.App, ctrl *controllers.UserController, protect fiber.Handler) {
	user := app.Group("/api/user", protect)

	user.Get("/profile/:username", ctrl.GetProfile)
	user.Get("/suggested", ctrl.GetSuggested)
	user.Post("/follow/:id", ctrl.FollowToggle)
	user.Post("/update", ctrl.UpdateProfile)
}
