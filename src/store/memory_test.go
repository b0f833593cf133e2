package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"chirper/src/apperrors"
	"chirper/src/models"
)

func seedUser(t *testing.T, users UserStore, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestMemoryFollowIsIdempotent(t *testing.T) {
	t.Parallel()
	mem := NewMemory()
	ctx := context.Background()

	alice := seedUser(t, mem.Users(), "alice")
	bob := seedUser(t, mem.Users(), "bob")

	// Replaying a set-add must not duplicate the edge.
	require.NoError(t, mem.Users().AddFollow(ctx, alice.Id, bob.Id))
	require.NoError(t, mem.Users().AddFollow(ctx, alice.Id, bob.Id))

	a, err := mem.Users().GetByID(ctx, alice.Id)
	require.NoError(t, err)
	b, err := mem.Users().GetByID(ctx, bob.Id)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{bob.Id}, a.Following)
	assert.Equal(t, []primitive.ObjectID{alice.Id}, b.Followers)

	// Replaying a set-remove converges on the same empty state.
	require.NoError(t, mem.Users().RemoveFollow(ctx, alice.Id, bob.Id))
	require.NoError(t, mem.Users().RemoveFollow(ctx, alice.Id, bob.Id))

	a, err = mem.Users().GetByID(ctx, alice.Id)
	require.NoError(t, err)
	b, err = mem.Users().GetByID(ctx, bob.Id)
	require.NoError(t, err)
	assert.Empty(t, a.Following)
	assert.Empty(t, b.Followers)
}

func TestMemoryLikeIsIdempotent(t *testing.T) {
	t.Parallel()
	mem := NewMemory()
	ctx := context.Background()

	alice := seedUser(t, mem.Users(), "alice")
	post := &models.Post{UserId: alice.Id, Text: "hi"}
	require.NoError(t, mem.Posts().Create(ctx, post))

	require.NoError(t, mem.Posts().AddLike(ctx, post.Id, alice.Id))
	require.NoError(t, mem.Posts().AddLike(ctx, post.Id, alice.Id))

	stored, err := mem.Posts().GetByID(ctx, post.Id)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{alice.Id}, stored.Likes)
}

func TestMemoryCreateUserConflicts(t *testing.T) {
	t.Parallel()
	mem := NewMemory()
	ctx := context.Background()

	seedUser(t, mem.Users(), "alice")

	err := mem.Users().Create(ctx, &models.User{Username: "alice", Email: "other@example.com"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	err = mem.Users().Create(ctx, &models.User{Username: "alicia", Email: "alice@example.com"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestMemoryUpdateFieldsConflict(t *testing.T) {
	t.Parallel()
	mem := NewMemory()
	ctx := context.Background()

	alice := seedUser(t, mem.Users(), "alice")
	seedUser(t, mem.Users(), "bob")

	err := mem.Users().UpdateFields(ctx, alice.Id, Fields{"username": "bob"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	// Applying several fields in one update.
	require.NoError(t, mem.Users().UpdateFields(ctx, alice.Id, Fields{"bio": "gopher", "link": "https://example.com"}))
	updated, err := mem.Users().GetByID(ctx, alice.Id)
	require.NoError(t, err)
	assert.Equal(t, "gopher", updated.Bio)
	assert.Equal(t, "https://example.com", updated.Link)
}

func TestMemoryPostListsNewestFirst(t *testing.T) {
	t.Parallel()
	mem := NewMemory()
	ctx := context.Background()

	alice := seedUser(t, mem.Users(), "alice")

	ids := []primitive.ObjectID{}
	for i := 0; i < 3; i++ {
		post := &models.Post{UserId: alice.Id, Text: "post"}
		require.NoError(t, mem.Posts().Create(ctx, post))
		ids = append(ids, post.Id)
		time.Sleep(time.Millisecond)
	}

	posts, err := mem.Posts().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, ids[2], posts[0].Id)
	assert.Equal(t, ids[1], posts[1].Id)
	assert.Equal(t, ids[0], posts[2].Id)
}

func TestMemoryRemoveLikedPostFromAll(t *testing.T) {
	t.Parallel()
	mem := NewMemory()
	ctx := context.Background()

	alice := seedUser(t, mem.Users(), "alice")
	bob := seedUser(t, mem.Users(), "bob")
	postID := primitive.NewObjectID()

	require.NoError(t, mem.Users().AddLikedPost(ctx, alice.Id, postID))
	require.NoError(t, mem.Users().AddLikedPost(ctx, bob.Id, postID))

	require.NoError(t, mem.Users().RemoveLikedPostFromAll(ctx, postID))

	for _, id := range []primitive.ObjectID{alice.Id, bob.Id} {
		user, err := mem.Users().GetByID(ctx, id)
		require.NoError(t, err)
		assert.NotContains(t, user.LikedPosts, postID)
	}
}
