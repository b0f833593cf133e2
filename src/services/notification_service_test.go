package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationListMarksRead(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	carol := f.register(t, "carol")

	_, err := f.users.FollowToggle(ctx, bob.Id, alice.Id)
	require.NoError(t, err)
	_, err = f.users.FollowToggle(ctx, carol.Id, alice.Id)
	require.NoError(t, err)

	// First read returns the unread records and marks them.
	first, err := f.notifications.List(ctx, alice.Id)
	require.NoError(t, err)
	require.Len(t, first, 2)
	for _, n := range first {
		assert.False(t, n.Read)
	}

	// Second read returns the same set, all read.
	second, err := f.notifications.List(ctx, alice.Id)
	require.NoError(t, err)
	require.Len(t, second, 2)
	for i, n := range second {
		assert.True(t, n.Read)
		assert.Equal(t, first[i].Id, n.Id)
	}
}

func TestNotificationListResolvesSender(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	_, err := f.users.FollowToggle(ctx, bob.Id, alice.Id)
	require.NoError(t, err)

	notifications, err := f.notifications.List(ctx, alice.Id)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "bob", notifications[0].From.Username)
	assert.Equal(t, bob.Id, notifications[0].From.Id)
}

func TestNotificationClearIdempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	_, err := f.users.FollowToggle(ctx, bob.Id, alice.Id)
	require.NoError(t, err)

	require.NoError(t, f.notifications.Clear(ctx, alice.Id))

	notifications, err := f.notifications.List(ctx, alice.Id)
	require.NoError(t, err)
	assert.Empty(t, notifications)

	// Clearing an already-empty set is not an error.
	require.NoError(t, f.notifications.Clear(ctx, alice.Id))
}
