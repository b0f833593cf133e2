package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"chirper/src/lib"
	"chirper/src/middleware"
	"chirper/src/services"
)

type PostController struct {
	base
	posts *services.PostService
}

func NewPostController(posts *services.PostService, log *logrus.Logger, production bool) *PostController {
	return &PostController{
		base:  base{log: log, production: production},
		posts: posts,
	}
}

// CreatePost creates a post with text, an image, or both.
func (pc *PostController) CreatePost(c *fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
		Img  string `json:"img"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	var image []byte
	var contentType string
	if body.Img != "" {
		var err error
		image, contentType, err = lib.DecodeImage(body.Img)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid image payload"))
		}
	}

	actor := middleware.CurrentUser(c)
	post, err := pc.posts.CreatePost(c.Context(), actor.Id, body.Text, image, contentType)
	if err != nil {
		return pc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"post":    post,
	})
}

// DeletePost deletes an owned post.
func (pc *PostController) DeletePost(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID"))
	}

	actor := middleware.CurrentUser(c)
	if err := pc.posts.DeletePost(c.Context(), actor.Id, postID); err != nil {
		return pc.fail(c, err)
	}
	return c.JSON(lib.MessageResponse("Post deleted successfully"))
}

// LikePost toggles the actor's like on the post.
func (pc *PostController) LikePost(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID"))
	}

	actor := middleware.CurrentUser(c)
	likes, err := pc.posts.ToggleLike(c.Context(), actor.Id, postID)
	if err != nil {
		return pc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Post like toggled successfully",
		"likes":   likes,
	})
}

// CommentPost appends a comment to the post.
func (pc *PostController) CommentPost(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID"))
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	actor := middleware.CurrentUser(c)
	post, err := pc.posts.AddComment(c.Context(), actor.Id, postID, body.Text)
	if err != nil {
		return pc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Comment added successfully",
		"post":    post,
	})
}

// GetPost returns one post by id.
func (pc *PostController) GetPost(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID"))
	}

	post, err := pc.posts.GetPost(c.Context(), postID)
	if err != nil {
		return pc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Post fetched successfully",
		"post":    post,
	})
}

// GetAllPosts returns every post, newest-first.
func (pc *PostController) GetAllPosts(c *fiber.Ctx) error {
	posts, err := pc.posts.ListAll(c.Context())
	if err != nil {
		return pc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Posts fetched successfully",
		"posts":   posts,
	})
}

// GetFollowingPosts returns the posts of everyone the actor follows.
func (pc *PostController) GetFollowingPosts(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	posts, err := pc.posts.ListFollowingFeed(c.Context(), actor.Id)
	if err != nil {
		return pc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Posts fetched successfully",
		"posts":   posts,
	})
}

// GetLikedPosts returns the posts a user has liked.
func (pc *PostController) GetLikedPosts(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID"))
	}

	posts, err := pc.posts.ListLiked(c.Context(), userID)
	if err != nil {
		return pc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Posts fetched successfully",
		"posts":   posts,
	})
}

// GetUserPosts returns the posts authored by the given username.
func (pc *PostController) GetUserPosts(c *fiber.Ctx) error {
	posts, err := pc.posts.ListByAuthor(c.Context(), c.Params("username"))
	if err != nil {
		return pc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Posts fetched successfully",
		"posts":   posts,
	})
}
