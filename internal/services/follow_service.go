package services

import (
	"context"
	"fmt"

	"github.com/foundic-app/foundic-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FollowService handles business logic for the follow graph.
type FollowService struct {
	userRepo UserStore
	notifier Notifier
}

// NewFollowService creates a new FollowService.
func NewFollowService(userRepo UserStore, notifier Notifier) *FollowService {
	return &FollowService{
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Follow adds actor to target's followers and target to actor's following.
// Both writes run in one transaction and are idempotent, so following an
// already-followed user changes nothing. Emits a follow notification.
func (s *FollowService) Follow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if actorID.IsZero() || targetID.IsZero() {
		return fmt.Errorf("both user ids are required")
	}
	if actorID == targetID {
		return fmt.Errorf("cannot follow yourself")
	}

	if err := s.userRepo.AddFollow(ctx, actorID, targetID); err != nil {
		return fmt.Errorf("failed to follow user: %v", err)
	}

	s.notifier.Notify(ctx, targetID, models.NotifTypeFollow,
		"New follower", "started following you", &actorID, nil)

	return nil
}

// Unfollow removes the follow edge in both directions. No notification is
// emitted on unfollow.
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if actorID.IsZero() || targetID.IsZero() {
		return fmt.Errorf("both user ids are required")
	}
	if actorID == targetID {
		return fmt.Errorf("cannot unfollow yourself")
	}

	if err := s.userRepo.RemoveFollow(ctx, actorID, targetID); err != nil {
		return fmt.Errorf("failed to unfollow user: %v", err)
	}
	return nil
}

// GetFollowers returns the public profiles of a user's followers.
func (s *FollowService) GetFollowers(ctx context.Context, userID primitive.ObjectID) ([]models.PublicUser, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return s.resolvePublicUsers(ctx, user.Followers)
}

// GetFollowing returns the public profiles of the users someone follows.
func (s *FollowService) GetFollowing(ctx context.Context, userID primitive.ObjectID) ([]models.PublicUser, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return s.resolvePublicUsers(ctx, user.Following)
}

func (s *FollowService) resolvePublicUsers(ctx context.Context, ids []primitive.ObjectID) ([]models.PublicUser, error) {
	if len(ids) == 0 {
		return []models.PublicUser{}, nil
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %v", err)
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return public, nil
}
