package routes

import (
	"github.com/gofiber/fiber/v2"

	"chirper/src/controllers"
)

// PostRoutes sets up feed, creation, deletion, comment, and like routes.
func PostRoutes(app *fiber.App, ctrl *controllers.PostController, protect fiber.Handler) {
	post := app.Group("/api/posts", protect)

	post.Get("/all", ctrl.GetAllPosts)
	post.Get("/following", ctrl.GetFollowingPosts)
	post.Get("/likes/:id", ctrl.GetLikedPosts)
	post.Get("/user/:username", ctrl.GetUserPosts)
	post.Post("/create", ctrl.CreatePost)
	post.Post("/like/:id", ctrl.LikePost)
	post.Post("/comment/:id", ctrl.CommentPost)
	post.Get("/:id", ctrl.GetPost)
	post.Delete("/:id", ctrl.DeletePost)
}
