package services

import (
	"context"
	"fmt"
	"time"

	"github.com/foundic-app/foundic-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultFeedLimit caps a single wall page.
const DefaultFeedLimit = 50

// PostService handles the wall: posts, likes, reposts and comments.
type PostService struct {
	repo        PostStore
	userRepo    UserStore
	userService *UserService
	notifier    Notifier
}

func NewPostService(repo PostStore, userRepo UserStore, userService *UserService, notifier Notifier) *PostService {
	return &PostService{
		repo:        repo,
		userRepo:    userRepo,
		userService: userService,
		notifier:    notifier,
	}
}

// CreatePost validates and stores a wall post, denormalizing the author's
// name and role so the feed renders without user lookups.
func (s *PostService) CreatePost(ctx context.Context, authorID primitive.ObjectID, content, postType string, images []string) (*models.Post, error) {
	if content == "" {
		return nil, fmt.Errorf("post content is required")
	}
	if !models.ValidPostType(postType) {
		return nil, fmt.Errorf("invalid post type: %s", postType)
	}

	author, err := s.userRepo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %v", err)
	}

	post := &models.Post{
		AuthorID:   authorID,
		AuthorName: author.Name,
		AuthorRole: author.Role,
		Content:    content,
		Type:       postType,
		Images:     images,
	}

	created, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}

	s.userService.AwardCoins(ctx, authorID, CoinsPerPost)
	return created, nil
}

// GetFeed returns the wall, newest first.
func (s *PostService) GetFeed(ctx context.Context, before time.Time) ([]models.Post, error) {
	return s.repo.GetFeed(ctx, before, DefaultFeedLimit)
}

// GetPost returns one post.
func (s *PostService) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.repo.GetPostByID(ctx, id)
}

// GetPostsByAuthor lists a user's own posts for their profile page.
func (s *PostService) GetPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	return s.repo.GetPostsByAuthor(ctx, authorID)
}

// LikePost records a like and notifies the author.
func (s *PostService) LikePost(ctx context.Context, postID, userID primitive.ObjectID) error {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to get post: %v", err)
	}

	if err := s.repo.AddLike(ctx, postID, userID); err != nil {
		return err
	}

	s.notifier.Notify(ctx, post.AuthorID, models.NotifTypeLike,
		"New like", "liked your post", &userID, &postID)
	return nil
}

// UnlikePost removes a like. No notification on unlike.
func (s *PostService) UnlikePost(ctx context.Context, postID, userID primitive.ObjectID) error {
	return s.repo.RemoveLike(ctx, postID, userID)
}

// RepostPost records a repost and notifies the author.
func (s *PostService) RepostPost(ctx context.Context, postID, userID primitive.ObjectID) error {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to get post: %v", err)
	}

	if err := s.repo.AddRepost(ctx, postID, userID); err != nil {
		return err
	}

	s.notifier.Notify(ctx, post.AuthorID, models.NotifTypeRepost,
		"New repost", "reposted your post", &userID, &postID)
	return nil
}

// UndoRepost removes a repost.
func (s *PostService) UndoRepost(ctx context.Context, postID, userID primitive.ObjectID) error {
	return s.repo.RemoveRepost(ctx, postID, userID)
}

// CommentOnPost appends a comment and notifies the post author.
func (s *PostService) CommentOnPost(ctx context.Context, postID, authorID primitive.ObjectID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("comment content is required")
	}

	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %v", err)
	}

	author, err := s.userRepo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment author: %v", err)
	}

	comment := &models.Comment{
		AuthorID:   authorID,
		AuthorName: author.Name,
		Content:    content,
	}
	if err := s.repo.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	s.userService.AwardCoins(ctx, authorID, CoinsPerComment)
	s.notifier.Notify(ctx, post.AuthorID, models.NotifTypeComment,
		"New comment", "commented on your post", &authorID, &postID)

	return comment, nil
}

// ReplyToComment appends a reply to an embedded comment.
func (s *PostService) ReplyToComment(ctx context.Context, postID, commentID, authorID primitive.ObjectID, content string) (*models.Reply, error) {
	if content == "" {
		return nil, fmt.Errorf("reply content is required")
	}

	author, err := s.userRepo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reply author: %v", err)
	}

	reply := &models.Reply{
		AuthorID:   authorID,
		AuthorName: author.Name,
		Content:    content,
	}
	if err := s.repo.AddReply(ctx, postID, commentID, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// DeletePost removes a post; only the author or an admin may do so.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID primitive.ObjectID, requesterRole string) error {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to get post: %v", err)
	}

	if post.AuthorID != requesterID && requesterRole != models.RoleAdmin {
		return fmt.Errorf("only the author or an admin can delete a post")
	}

	return s.repo.DeletePost(ctx, postID)
}

// Leaderboard returns the top users by likes received.
func (s *PostService) Leaderboard(ctx context.Context, limit int64) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.Leaderboard(ctx, limit)
}
