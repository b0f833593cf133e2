package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"chirper/src/lib"
	"chirper/src/middleware"
	"chirper/src/services"
)

type AuthController struct {
	base
	auth          *services.AuthService
	secureCookies bool
}

func NewAuthController(auth *services.AuthService, log *logrus.Logger, production bool) *AuthController {
	return &AuthController{
		base:          base{log: log, production: production},
		auth:          auth,
		secureCookies: production,
	}
}

// Signup handles user registration and sets the session cookie on success.
func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullname"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user, token, err := ac.auth.Register(c.Context(), body.Username, body.Email, body.Password, body.FullName)
	if err != nil {
		return ac.fail(c, err)
	}

	lib.SetSessionCookie(c, token, ac.secureCookies)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login authenticates by username and password and refreshes the session
// cookie.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user, token, err := ac.auth.Login(c.Context(), body.Username, body.Password)
	if err != nil {
		return ac.fail(c, err)
	}

	lib.SetSessionCookie(c, token, ac.secureCookies)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

// Logout clears the session cookie.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	lib.ClearSessionCookie(c)
	return c.JSON(lib.MessageResponse("Logged out successfully"))
}

// GetMe returns the identity the middleware resolved for this session.
func (ac *AuthController) GetMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{
		"message": "User fetched successfully",
		"user":    user,
	})
}
