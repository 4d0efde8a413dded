package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanoutNotificationsUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("creates one notification per recipient", func(t *testing.T) {
		chats := newFakeChatRepo(groupOf("chat1", "u1", "u1", "u2", "u3"))
		notifs := newFakeNotificationRepo()
		cache := newFakeCache()
		uc := NewFanoutNotificationsUseCase(chats, notifs, cache)

		err := uc.Execute(ctx, FanoutNotificationsInput{MessageID: "m1", ChatID: "chat1", SenderID: "u1"})
		require.NoError(t, err)

		// The sender gets nothing; everyone else exactly one.
		assert.Len(t, notifs.byPair, 2)
		listed, err := notifs.ListForUser(ctx, "u2", true)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "m1", listed[0].MessageID)
	})

	t.Run("running twice changes nothing", func(t *testing.T) {
		chats := newFakeChatRepo(groupOf("chat1", "u1", "u1", "u2"))
		notifs := newFakeNotificationRepo()
		uc := NewFanoutNotificationsUseCase(chats, notifs, nil)

		in := FanoutNotificationsInput{MessageID: "m1", ChatID: "chat1", SenderID: "u1"}
		require.NoError(t, uc.Execute(ctx, in))
		require.NoError(t, uc.Execute(ctx, in))

		assert.Len(t, notifs.byPair, 1)
	})

	t.Run("invalidates each recipient's cached listing", func(t *testing.T) {
		chats := newFakeChatRepo(groupOf("chat1", "u1", "u1", "u2"))
		notifs := newFakeNotificationRepo()
		cache := newFakeCache()
		cache.values[NotificationCacheKey("u2")] = "[]"
		uc := NewFanoutNotificationsUseCase(chats, notifs, cache)

		err := uc.Execute(ctx, FanoutNotificationsInput{MessageID: "m1", ChatID: "chat1", SenderID: "u1"})
		require.NoError(t, err)

		_, ok := cache.values[NotificationCacheKey("u2")]
		assert.False(t, ok)
	})
}

func TestListNotificationsUseCase(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*fakeNotificationRepo, *fakeCache, *ListNotificationsUseCase) {
		t.Helper()
		notifs := newFakeNotificationRepo()
		for _, mid := range []string{"m1", "m2"} {
			_, err := notifs.Create(ctx, newNotification("u2", mid, "chat1"))
			require.NoError(t, err)
		}
		cache := newFakeCache()
		return notifs, cache, NewListNotificationsUseCase(notifs, cache)
	}

	t.Run("first unread read fills the cache", func(t *testing.T) {
		_, cache, uc := seed(t)

		out, err := uc.Execute(ctx, ListNotificationsInput{UserID: "u2", UnreadOnly: true})
		require.NoError(t, err)
		require.Len(t, out, 2)
		for _, n := range out {
			// Listings surface only fully populated records.
			assert.NotEmpty(t, n.User.ID)
			assert.NotEmpty(t, n.Message.ID)
			assert.NotEmpty(t, n.Chat.ID)
		}
		assert.Equal(t, 1, cache.sets)
		assert.Contains(t, cache.values, NotificationCacheKey("u2"))
	})

	t.Run("second unread read is served from cache", func(t *testing.T) {
		notifs, cache, uc := seed(t)

		_, err := uc.Execute(ctx, ListNotificationsInput{UserID: "u2", UnreadOnly: true})
		require.NoError(t, err)

		// A write after the fill is invisible until the entry expires or is
		// invalidated.
		_, err = notifs.Create(ctx, newNotification("u2", "m3", "chat1"))
		require.NoError(t, err)

		out, err := uc.Execute(ctx, ListNotificationsInput{UserID: "u2", UnreadOnly: true})
		require.NoError(t, err)
		assert.Len(t, out, 2)
		assert.Equal(t, 1, cache.hits)
	})

	t.Run("full listing bypasses the cache", func(t *testing.T) {
		_, cache, uc := seed(t)

		out, err := uc.Execute(ctx, ListNotificationsInput{UserID: "u2", UnreadOnly: false})
		require.NoError(t, err)
		assert.Len(t, out, 2)
		assert.Zero(t, cache.gets)
		assert.Zero(t, cache.sets)
	})
}

func TestMarkNotificationReadUseCase(t *testing.T) {
	ctx := context.Background()

	notifs := newFakeNotificationRepo()
	id, err := notifs.Create(ctx, newNotification("u2", "m1", "chat1"))
	require.NoError(t, err)

	cache := newFakeCache()
	cache.values[NotificationCacheKey("u2")] = "[]"

	uc := NewMarkNotificationReadUseCase(notifs, cache)
	require.NoError(t, uc.Execute(ctx, MarkNotificationReadInput{NotificationID: id, UserID: "u2"}))

	populated, err := notifs.GetPopulated(ctx, id)
	require.NoError(t, err)
	assert.True(t, populated.Read)

	_, ok := cache.values[NotificationCacheKey("u2")]
	assert.False(t, ok)

	unread, err := notifs.ListForUser(ctx, "u2", true)
	require.NoError(t, err)
	assert.Empty(t, unread)
}
