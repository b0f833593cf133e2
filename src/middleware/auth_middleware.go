package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"chirper/src/lib"
	"chirper/src/models"
	"chirper/src/store"
)

// ProtectRoute builds the middleware that resolves the session cookie into a
// user and attaches it to the request context. Every protected operation runs
// behind it.
func ProtectRoute(users store.UserStore, tokens *lib.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(lib.SessionCookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized: No Token Provided"))
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized: Invalid Token"))
		}

		objectID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized: Invalid Token"))
		}

		user, err := users.GetByID(c.Context(), objectID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}

		user.Password = ""
		c.Locals("user", *user)

		return c.Next()
	}
}

// CurrentUser returns the identity ProtectRoute resolved for this request.
func CurrentUser(c *fiber.Ctx) models.User {
	return c.Locals("user").(models.User)
}
