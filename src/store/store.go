// Package store holds the persistence interfaces the services are written
// against, plus the MongoDB implementation and an in-memory one for tests.
//
// Mirrored fields (following/followers, likedPosts/post.likes) are only ever
// touched through idempotent set operations that add or remove a single value,
// never by writing back a whole array read earlier. Replaying either side of a
// mirror update converges instead of diverging.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"chirper/src/models"
)

// Fields is a set of document fields for an atomic multi-field update, keyed
// by stored field name.
type Fields map[string]interface{}

type UserStore interface {
	// Create inserts a new user and surfaces a conflict error when the
	// username or email is already taken.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)

	// UpdateFields applies all given fields to one user in a single update.
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields Fields) error

	// Mirror updates for the follow graph. Each call applies a set-add or
	// set-remove to both affected records.
	AddFollow(ctx context.Context, actorID, targetID primitive.ObjectID) error
	RemoveFollow(ctx context.Context, actorID, targetID primitive.ObjectID) error

	// Actor-side half of the like mirror; the post side lives in PostStore.
	AddLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error
	RemoveLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error

	// RemoveLikedPostFromAll cascades a post deletion into every user's
	// likedPosts so no dangling reference survives.
	RemoveLikedPostFromAll(ctx context.Context, postID primitive.ObjectID) error

	// Sample returns up to n random users other than exclude. Composition is
	// a set-membership contract only, no ordering guarantee.
	Sample(ctx context.Context, exclude primitive.ObjectID, n int) ([]models.User, error)
}

type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error

	AppendComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error

	// Feed queries, all newest-first by createdAt. Empty results are valid.
	ListAll(ctx context.Context) ([]models.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []primitive.ObjectID) ([]models.Post, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
}

type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
	ListTo(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) error
	DeleteAllTo(ctx context.Context, userID primitive.ObjectID) error
}
