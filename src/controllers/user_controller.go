package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"chirper/src/lib"
	"chirper/src/middleware"
	"chirper/src/services"
)

type UserController struct {
	base
	users *services.UserService
}

func NewUserController(users *services.UserService, log *logrus.Logger, production bool) *UserController {
	return &UserController{
		base:  base{log: log, production: production},
		users: users,
	}
}

// GetProfile returns a user's public profile by username.
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, err := uc.users.GetProfile(c.Context(), c.Params("username"))
	if err != nil {
		return uc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User fetched successfully",
		"user":    user,
	})
}

// FollowToggle follows or unfollows the target user.
func (uc *UserController) FollowToggle(c *fiber.Ctx) error {
	targetID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID"))
	}

	actor := middleware.CurrentUser(c)
	state, err := uc.users.FollowToggle(c.Context(), actor.Id, targetID)
	if err != nil {
		return uc.fail(c, err)
	}

	message := "User followed successfully"
	if state == services.StateUnfollowed {
		message = "User unfollowed successfully"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"state":   state,
	})
}

// GetSuggested returns up to four users the actor does not follow yet.
func (uc *UserController) GetSuggested(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	suggested, err := uc.users.SuggestUsers(c.Context(), actor.Id, services.SuggestCount)
	if err != nil {
		return uc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Suggested users fetched successfully",
		"users":   suggested,
	})
}

// UpdateProfile applies a partial profile update. Absent fields stay
// unchanged; empty strings clear a field.
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	var body struct {
		FullName        *string `json:"fullname"`
		Email           *string `json:"email"`
		Username        *string `json:"username"`
		Bio             *string `json:"bio"`
		Link            *string `json:"link"`
		CurrentPassword *string `json:"currentPassword"`
		NewPassword     *string `json:"newPassword"`
		ProfileImg      *string `json:"profileImg"`
		CoverImg        *string `json:"coverImg"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	params := services.UpdateProfileParams{
		FullName:        body.FullName,
		Email:           body.Email,
		Username:        body.Username,
		Bio:             body.Bio,
		Link:            body.Link,
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	}

	if body.ProfileImg != nil {
		data, contentType, err := lib.DecodeImage(*body.ProfileImg)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid profile image payload"))
		}
		params.ProfileImg = data
		params.ProfileImgContentType = contentType
	}
	if body.CoverImg != nil {
		data, contentType, err := lib.DecodeImage(*body.CoverImg)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid cover image payload"))
		}
		params.CoverImg = data
		params.CoverImgContentType = contentType
	}

	actor := middleware.CurrentUser(c)
	user, err := uc.users.UpdateProfile(c.Context(), actor.Id, params)
	if err != nil {
		return uc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
