package services

import (
	"context"
	"testing"
	"time"

	"github.com/foundic-app/foundic-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationFixture() (*NotificationService, *fakeNotificationStore, *fakeUserStore) {
	notifs := newFakeNotificationStore()
	users := newFakeUserStore()
	return NewNotificationService(notifs, users, newFakePushStore(), nil, nil), notifs, users
}

func TestNotifyWritesNotification(t *testing.T) {
	ctx := context.Background()
	svc, notifs, users := newNotificationFixture()

	alice := users.addUser("Alice")
	bob := users.addUser("Bob")

	svc.Notify(ctx, bob.ID, models.NotifTypeLike, "New like", "liked your post", &alice.ID, nil)

	require.Len(t, notifs.notifications, 1)
	n := notifs.notifications[0]
	assert.Equal(t, bob.ID, n.UserID)
	assert.Equal(t, "Alice", n.ActorName)
	assert.False(t, n.Read)
}

func TestNotifySelfIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, notifs, users := newNotificationFixture()

	alice := users.addUser("Alice")
	svc.Notify(ctx, alice.ID, models.NotifTypeLike, "New like", "liked your post", &alice.ID, nil)

	assert.Empty(t, notifs.notifications)
}

func TestNotifyUnknownActorFallsBackToSomeone(t *testing.T) {
	ctx := context.Background()
	svc, notifs, users := newNotificationFixture()

	bob := users.addUser("Bob")
	ghost := newFakeUserStore().addUser("Ghost").ID // not in the store under test

	svc.Notify(ctx, bob.ID, models.NotifTypeFollow, "New follower", "started following you", &ghost, nil)

	require.Len(t, notifs.notifications, 1)
	assert.Equal(t, "Someone", notifs.notifications[0].ActorName)
}

func TestNotifySwallowsWriteFailures(t *testing.T) {
	ctx := context.Background()
	svc, notifs, users := newNotificationFixture()
	notifs.failWrites = true

	alice := users.addUser("Alice")
	bob := users.addUser("Bob")

	// Must not panic or propagate the error.
	svc.Notify(ctx, bob.ID, models.NotifTypeLike, "New like", "liked your post", &alice.ID, nil)
	assert.Empty(t, notifs.notifications)
}

func TestMarkAsReadAndCountUnread(t *testing.T) {
	ctx := context.Background()
	svc, notifs, users := newNotificationFixture()

	alice := users.addUser("Alice")
	bob := users.addUser("Bob")

	svc.Notify(ctx, bob.ID, models.NotifTypeLike, "New like", "liked your post", &alice.ID, nil)
	svc.Notify(ctx, bob.ID, models.NotifTypeComment, "New comment", "commented on your post", &alice.ID, nil)

	count, err := svc.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkNotificationAsRead(ctx, notifs.notifications[0].ID, bob.ID))

	count, err = svc.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMarkAsReadRequiresOwnership(t *testing.T) {
	ctx := context.Background()
	svc, notifs, users := newNotificationFixture()

	alice := users.addUser("Alice")
	bob := users.addUser("Bob")

	svc.Notify(ctx, bob.ID, models.NotifTypeLike, "New like", "liked your post", &alice.ID, nil)
	require.Len(t, notifs.notifications, 1)

	// Alice cannot mark Bob's notification as read.
	err := svc.MarkNotificationAsRead(ctx, notifs.notifications[0].ID, alice.ID)
	assert.Error(t, err)
	assert.False(t, notifs.notifications[0].Read)

	require.NoError(t, svc.MarkNotificationAsRead(ctx, notifs.notifications[0].ID, bob.ID))
	assert.True(t, notifs.notifications[0].Read)
}

func TestCleanupOldNotifications(t *testing.T) {
	ctx := context.Background()
	svc, notifs, users := newNotificationFixture()

	alice := users.addUser("Alice")
	bob := users.addUser("Bob")

	svc.Notify(ctx, bob.ID, models.NotifTypeLike, "New like", "liked your post", &alice.ID, nil)
	svc.Notify(ctx, bob.ID, models.NotifTypeRepost, "New repost", "reposted your post", &alice.ID, nil)

	// Age the first one past the retention window and mark it read.
	notifs.notifications[0].Read = true
	notifs.notifications[0].CreatedAt = time.Now().Add(-40 * 24 * time.Hour)
	// The second is just as old but unread, so it must survive.
	notifs.notifications[1].CreatedAt = time.Now().Add(-40 * 24 * time.Hour)

	require.NoError(t, svc.CleanupOldNotifications(ctx, 30*24*time.Hour))

	require.Len(t, notifs.notifications, 1)
	assert.False(t, notifs.notifications[0].Read)
}
