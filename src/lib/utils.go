package lib

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie the session token travels in.
const SessionCookieName = "token"

const defaultContentType = "application/octet-stream"

// MessageResponse returns a map with a message key for API responses.
func MessageResponse(message string) fiber.Map {
	return fiber.Map{
		"message": message,
	}
}

// SetSessionCookie attaches the session token as an HTTP-only cookie so client
// script can never read it. Secure is only set outside local development.
func SetSessionCookie(c *fiber.Ctx, token string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(SessionValidity),
		HTTPOnly: true,
		SameSite: "Strict",
		Secure:   secure,
		Path:     "/",
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
		Path:     "/",
	})
}

// DecodeImage decodes a base64 image payload, accepting either a bare base64
// string or a data URI ("data:image/png;base64,...."). It returns the raw
// bytes and the declared content type.
func DecodeImage(payload string) ([]byte, string, error) {
	contentType := defaultContentType

	if strings.HasPrefix(payload, "data:") {
		semi := strings.Index(payload, ";base64,")
		if semi > 0 {
			contentType = payload[len("data:"):semi]
			payload = payload[semi+len(";base64,"):]
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}
