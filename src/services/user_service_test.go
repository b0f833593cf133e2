package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"chirper/src/apperrors"
	"chirper/src/models"
)

func TestFollowToggleParity(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	// After an odd number of toggles both mirror sides hold the edge, after
	// an even number neither does.
	for i := 1; i <= 5; i++ {
		state, err := f.users.FollowToggle(ctx, alice.Id, bob.Id)
		require.NoError(t, err)

		a, err := f.mem.Users().GetByID(ctx, alice.Id)
		require.NoError(t, err)
		b, err := f.mem.Users().GetByID(ctx, bob.Id)
		require.NoError(t, err)

		if i%2 == 1 {
			assert.Equal(t, StateFollowed, state)
			assert.Contains(t, a.Following, bob.Id)
			assert.Contains(t, b.Followers, alice.Id)
		} else {
			assert.Equal(t, StateUnfollowed, state)
			assert.NotContains(t, a.Following, bob.Id)
			assert.NotContains(t, b.Followers, alice.Id)
		}
	}
}

func TestFollowToggleSelf(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")

	for i := 0; i < 2; i++ {
		_, err := f.users.FollowToggle(ctx, alice.Id, alice.Id)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
}

func TestFollowToggleUnknownTarget(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	alice := f.register(t, "alice")

	_, err := f.users.FollowToggle(context.Background(), alice.Id, primitive.NewObjectID())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestFollowToggleNotifications(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	_, err := f.users.FollowToggle(ctx, alice.Id, bob.Id)
	require.NoError(t, err)

	notifications := f.notificationsFor(t, bob)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeFollow, notifications[0].Type)
	assert.Equal(t, alice.Id, notifications[0].From)

	// Unfollow must not add a second one.
	_, err = f.users.FollowToggle(ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	assert.Len(t, f.notificationsFor(t, bob), 1)
}

func TestSuggestUsers(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	others := []*models.User{
		f.register(t, "carol"),
		f.register(t, "dave"),
		f.register(t, "erin"),
		f.register(t, "frank"),
	}
	_ = others

	_, err := f.users.FollowToggle(ctx, alice.Id, bob.Id)
	require.NoError(t, err)

	suggested, err := f.users.SuggestUsers(ctx, alice.Id, SuggestCount)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(suggested), SuggestCount)
	for _, user := range suggested {
		assert.NotEqual(t, alice.Id, user.Id, "must not suggest the actor")
		assert.NotEqual(t, bob.Id, user.Id, "must not suggest already-followed users")
		assert.Empty(t, user.Password)
	}
}

func TestUpdateProfilePartialFields(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")

	bio := "gopher"
	updated, err := f.users.UpdateProfile(ctx, alice.Id, UpdateProfileParams{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "gopher", updated.Bio)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Empty(t, updated.Password)
}

func TestUpdateProfilePasswordRules(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")

	current := "secret1"
	wrong := "not-it"
	short := "five5"
	fresh := "secret2"

	// Only one half of the pair.
	_, err := f.users.UpdateProfile(ctx, alice.Id, UpdateProfileParams{CurrentPassword: &current})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = f.users.UpdateProfile(ctx, alice.Id, UpdateProfileParams{NewPassword: &fresh})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	// Wrong current password.
	_, err = f.users.UpdateProfile(ctx, alice.Id, UpdateProfileParams{CurrentPassword: &wrong, NewPassword: &fresh})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	// New password too short.
	_, err = f.users.UpdateProfile(ctx, alice.Id, UpdateProfileParams{CurrentPassword: &current, NewPassword: &short})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	// Valid change; the new password logs in, the old one does not.
	_, err = f.users.UpdateProfile(ctx, alice.Id, UpdateProfileParams{CurrentPassword: &current, NewPassword: &fresh})
	require.NoError(t, err)

	_, _, err = f.auth.Login(ctx, "alice", fresh)
	require.NoError(t, err)
	_, _, err = f.auth.Login(ctx, "alice", current)
	require.Error(t, err)
}

func TestUpdateProfileDuplicateUsername(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	alice := f.register(t, "alice")
	f.register(t, "bob")

	taken := "bob"
	_, err := f.users.UpdateProfile(context.Background(), alice.Id, UpdateProfileParams{Username: &taken})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestUpdateProfileReplacesImage(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")

	first, err := f.users.UpdateProfile(ctx, alice.Id, UpdateProfileParams{
		ProfileImg:            []byte("image-one"),
		ProfileImgContentType: "image/png",
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ProfileImg)
	assert.Empty(t, f.objects.deleted)

	second, err := f.users.UpdateProfile(ctx, alice.Id, UpdateProfileParams{
		ProfileImg:            []byte("image-two"),
		ProfileImgContentType: "image/png",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ProfileImg, second.ProfileImg)
	assert.Equal(t, []string{first.ProfileImg}, f.objects.deleted)
}

func TestUpdateProfileDeleteFailureIsBestEffort(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")

	_, err := f.users.UpdateProfile(ctx, alice.Id, UpdateProfileParams{
		CoverImg:            []byte("cover-one"),
		CoverImgContentType: "image/jpeg",
	})
	require.NoError(t, err)

	// A failing delete of the replaced object must not fail the update.
	f.objects.deleteErr = errors.New("object store down")
	updated, err := f.users.UpdateProfile(ctx, alice.Id, UpdateProfileParams{
		CoverImg:            []byte("cover-two"),
		CoverImgContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, updated.CoverImg)
}

func TestUpdateProfileUploadFailureAborts(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")

	f.objects.uploadErr = errors.New("object store down")
	bio := "gopher"
	_, err := f.users.UpdateProfile(ctx, alice.Id, UpdateProfileParams{
		Bio:                   &bio,
		ProfileImg:            []byte("image"),
		ProfileImgContentType: "image/png",
	})
	require.Error(t, err)

	// Nothing was committed, the bio included.
	unchanged, err := f.mem.Users().GetByID(ctx, alice.Id)
	require.NoError(t, err)
	assert.Empty(t, unchanged.Bio)
}

func TestGetProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.register(t, "alice")

	user, err := f.users.GetProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Password)

	_, err = f.users.GetProfile(context.Background(), "nobody")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
