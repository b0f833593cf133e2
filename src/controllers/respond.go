package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"chirper/src/apperrors"
)

// base carries what every controller needs to turn a service error into an
// HTTP response.
type base struct {
	log        *logrus.Logger
	production bool
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation, apperrors.KindConflict:
		return fiber.StatusBadRequest
	case apperrors.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperrors.KindForbidden:
		return fiber.StatusForbidden
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// fail maps the error kind to a status and writes the error envelope. Internal
// detail is only exposed outside production.
func (b base) fail(c *fiber.Ctx, err error) error {
	kind := apperrors.KindOf(err)
	status := statusForKind(kind)

	message := err.Error()
	if kind == apperrors.KindUnknown {
		b.log.WithError(err).Error("unhandled error")
		message = "Internal server error"
	}

	body := fiber.Map{"message": message}
	if !b.production {
		body["stack"] = fmt.Sprintf("%+v", err)
	}
	return c.Status(status).JSON(body)
}
