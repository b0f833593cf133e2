package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"chirper/src/lib"
	"chirper/src/middleware"
	"chirper/src/services"
)

type NotificationController struct {
	base
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService, log *logrus.Logger, production bool) *NotificationController {
	return &NotificationController{
		base:          base{log: log, production: production},
		notifications: notifications,
	}
}

// GetNotifications returns the user's notifications newest-first and marks
// them read.
func (nc *NotificationController) GetNotifications(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	notifications, err := nc.notifications.List(c.Context(), user.Id)
	if err != nil {
		return nc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message":       "Notifications fetched successfully",
		"count":         len(notifications),
		"notifications": notifications,
	})
}

// DeleteNotifications deletes every notification addressed to the user.
func (nc *NotificationController) DeleteNotifications(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	if err := nc.notifications.Clear(c.Context(), user.Id); err != nil {
		return nc.fail(c, err)
	}
	return c.JSON(lib.MessageResponse("Notifications deleted successfully"))
}
