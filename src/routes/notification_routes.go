package routes

import (
	"github.com/gofiber/fiber/v2"

	"chirper/src/controllers"
)

// NotificationRoutes sets up the notification read and clear routes.
func NotificationRoutes(app *fiber.App, ctrl *controllers.NotificationController, protect fiber.Handler) {
	notifications := app.Group("/api/notifications", protect)

	notifications.Get("/", ctrl.GetNotifications)
	notifications.Delete("/", ctrl.DeleteNotifications)
}
