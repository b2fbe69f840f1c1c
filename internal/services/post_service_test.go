package services

import (
	"context"
	"testing"

	"github.com/foundic-app/foundic-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostFixture() (*PostService, *fakePostStore, *fakeUserStore, *fakeNotifier) {
	posts := newFakePostStore()
	users := newFakeUserStore()
	notifier := &fakeNotifier{}
	userService := NewUserService(users, newFakeNotificationStore(), newFakeMatchStore(), newFakePushStore(), "http://localhost:8080")
	return NewPostService(posts, users, userService, notifier), posts, users, notifier
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()
	svc, _, users, _ := newPostFixture()

	alice := users.addUser("Alice")
	users.users[alice.ID].Role = models.RoleFounder

	post, err := svc.CreatePost(ctx, alice.ID, "We just shipped v1!", models.PostTypeLaunch, nil)
	require.NoError(t, err)

	// Author name and role ride along on the post.
	assert.Equal(t, "Alice", post.AuthorName)
	assert.Equal(t, models.RoleFounder, post.AuthorRole)

	// Posting earns coins.
	assert.Equal(t, int64(CoinsPerPost), users.users[alice.ID].Coins)
}

func TestCreatePostValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, users, _ := newPostFixture()
	alice := users.addUser("Alice")

	_, err := svc.CreatePost(ctx, alice.ID, "", models.PostTypeUpdate, nil)
	assert.Error(t, err)

	_, err = svc.CreatePost(ctx, alice.ID, "hello", "blog", nil)
	assert.Error(t, err)
}

func TestLikeAndUnlikePost(t *testing.T) {
	ctx := context.Background()
	svc, posts, users, notifier := newPostFixture()

	alice := users.addUser("Alice")
	bob := users.addUser("Bob")
	post, err := svc.CreatePost(ctx, alice.ID, "hello wall", models.PostTypeUpdate, nil)
	require.NoError(t, err)

	require.NoError(t, svc.LikePost(ctx, post.ID, bob.ID))
	assert.Contains(t, posts.posts[post.ID].Likes, bob.ID)

	// Liking twice stays a single like.
	require.NoError(t, svc.LikePost(ctx, post.ID, bob.ID))
	assert.Len(t, posts.posts[post.ID].Likes, 1)

	require.NoError(t, svc.UnlikePost(ctx, post.ID, bob.ID))
	assert.Empty(t, posts.posts[post.ID].Likes)

	// The author was notified of the likes but not the unlike.
	var likeNotifs int
	for _, c := range notifier.calls {
		if c.Type == models.NotifTypeLike {
			likeNotifs++
			assert.Equal(t, alice.ID, c.Target)
		}
	}
	assert.Equal(t, 2, likeNotifs)
}

func TestRepostAndUndo(t *testing.T) {
	ctx := context.Background()
	svc, posts, users, notifier := newPostFixture()

	alice := users.addUser("Alice")
	bob := users.addUser("Bob")
	post, err := svc.CreatePost(ctx, alice.ID, "reshare me", models.PostTypeIdea, nil)
	require.NoError(t, err)

	require.NoError(t, svc.RepostPost(ctx, post.ID, bob.ID))
	assert.Contains(t, posts.posts[post.ID].Reposts, bob.ID)

	require.NoError(t, svc.UndoRepost(ctx, post.ID, bob.ID))
	assert.Empty(t, posts.posts[post.ID].Reposts)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, models.NotifTypeRepost, notifier.calls[0].Type)
}

func TestCommentOnPost(t *testing.T) {
	ctx := context.Background()
	svc, posts, users, notifier := newPostFixture()

	alice := users.addUser("Alice")
	bob := users.addUser("Bob")
	post, err := svc.CreatePost(ctx, alice.ID, "thoughts?", models.PostTypeQuestion, nil)
	require.NoError(t, err)

	comment, err := svc.CommentOnPost(ctx, post.ID, bob.ID, "great idea")
	require.NoError(t, err)
	assert.Equal(t, "Bob", comment.AuthorName)
	require.Len(t, posts.posts[post.ID].Comments, 1)

	// Commenting earns coins and notifies the author.
	assert.Equal(t, int64(CoinsPerComment), users.users[bob.ID].Coins)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, models.NotifTypeComment, notifier.calls[0].Type)
	assert.Equal(t, alice.ID, notifier.calls[0].Target)

	_, err = svc.CommentOnPost(ctx, post.ID, bob.ID, "")
	assert.Error(t, err)
}

func TestReplyToComment(t *testing.T) {
	ctx := context.Background()
	svc, posts, users, _ := newPostFixture()

	alice := users.addUser("Alice")
	bob := users.addUser("Bob")
	post, err := svc.CreatePost(ctx, alice.ID, "thoughts?", models.PostTypeQuestion, nil)
	require.NoError(t, err)

	comment, err := svc.CommentOnPost(ctx, post.ID, bob.ID, "great idea")
	require.NoError(t, err)

	reply, err := svc.ReplyToComment(ctx, post.ID, comment.ID, alice.ID, "thanks!")
	require.NoError(t, err)
	assert.Equal(t, "Alice", reply.AuthorName)
	assert.Len(t, posts.posts[post.ID].Comments[0].Replies, 1)
}

func TestDeletePostPermissions(t *testing.T) {
	ctx := context.Background()
	svc, posts, users, _ := newPostFixture()

	alice := users.addUser("Alice")
	bob := users.addUser("Bob")
	admin := users.addUser("Admin")

	post, err := svc.CreatePost(ctx, alice.ID, "delete me", models.PostTypeUpdate, nil)
	require.NoError(t, err)

	// A stranger can't delete it.
	assert.Error(t, svc.DeletePost(ctx, post.ID, bob.ID, models.RoleFounder))

	// An admin can.
	require.NoError(t, svc.DeletePost(ctx, post.ID, admin.ID, models.RoleAdmin))
	assert.Empty(t, posts.posts)

	// The author can delete their own.
	post2, err := svc.CreatePost(ctx, alice.ID, "mine", models.PostTypeUpdate, nil)
	require.NoError(t, err)
	require.NoError(t, svc.DeletePost(ctx, post2.ID, alice.ID, models.RoleFounder))
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()
	svc, _, users, _ := newPostFixture()

	alice := users.addUser("Alice")
	bob := users.addUser("Bob")
	carol := users.addUser("Carol")

	p1, err := svc.CreatePost(ctx, alice.ID, "a", models.PostTypeUpdate, nil)
	require.NoError(t, err)
	p2, err := svc.CreatePost(ctx, bob.ID, "b", models.PostTypeUpdate, nil)
	require.NoError(t, err)

	require.NoError(t, svc.LikePost(ctx, p1.ID, bob.ID))
	require.NoError(t, svc.LikePost(ctx, p1.ID, carol.ID))
	require.NoError(t, svc.LikePost(ctx, p2.ID, carol.ID))

	entries, err := svc.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, alice.ID, entries[0].AuthorID)
	assert.Equal(t, int64(2), entries[0].Likes)
}
