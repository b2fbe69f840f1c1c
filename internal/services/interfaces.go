package services

import (
	"context"
	"time"

	"github.com/foundic-app/foundic-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage capabilities the services depend on. Each interface is satisfied by
// the matching repository; tests substitute in-memory fakes, and a different
// backend can be swapped in without touching business logic.

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByVerifyToken(ctx context.Context, token string) (*models.User, error)
	GetUserByResetToken(ctx context.Context, token string) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	AddFollow(ctx context.Context, actorID, targetID primitive.ObjectID) error
	RemoveFollow(ctx context.Context, actorID, targetID primitive.ObjectID) error
	RemoveUserFromGraph(ctx context.Context, id primitive.ObjectID) error
	IncrementCoins(ctx context.Context, id primitive.ObjectID, delta int64) error
	UpdateLastActive(ctx context.Context, id primitive.ObjectID) error
	GetSurveyedUsers(ctx context.Context) ([]models.User, error)
}

type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	GetFeed(ctx context.Context, before time.Time, limit int64) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error)
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
	AddRepost(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveRepost(ctx context.Context, postID, userID primitive.ObjectID) error
	AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) error
	AddReply(ctx context.Context, postID, commentID primitive.ObjectID, reply *models.Reply) error
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	Leaderboard(ctx context.Context, limit int64) ([]models.LeaderboardEntry, error)
}

type ChatStore interface {
	GetOrCreateChat(ctx context.Context, a, b primitive.ObjectID) (*models.Chat, error)
	GetChatByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error)
	GetUserChats(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error)
	InsertMessage(ctx context.Context, msg *models.Message) (*models.Message, error)
	GetMessages(ctx context.Context, chatID primitive.ObjectID) ([]models.Message, error)
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID, before time.Time, limit int64) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error
}

type PodStore interface {
	CreatePod(ctx context.Context, pod *models.Pod) (*models.Pod, error)
	GetPodByID(ctx context.Context, id primitive.ObjectID) (*models.Pod, error)
	GetAllPods(ctx context.Context) ([]models.Pod, error)
	AddMember(ctx context.Context, podID, userID primitive.ObjectID) error
	RemoveMember(ctx context.Context, podID, userID primitive.ObjectID) error
}

type OpportunityStore interface {
	CreateOpportunity(ctx context.Context, opp *models.Opportunity) (*models.Opportunity, error)
	GetOpportunityByID(ctx context.Context, id primitive.ObjectID) (*models.Opportunity, error)
	GetOpenOpportunities(ctx context.Context) ([]models.Opportunity, error)
	AddApplicant(ctx context.Context, oppID, userID primitive.ObjectID) error
	RemoveApplicant(ctx context.Context, oppID, userID primitive.ObjectID) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	DeleteOpportunity(ctx context.Context, id primitive.ObjectID) error
}

type MatchStore interface {
	UpsertMatch(ctx context.Context, userA, userB primitive.ObjectID, score int) error
	GetMatchesForUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.DNAMatch, error)
	DeleteMatchesForUser(ctx context.Context, userID primitive.ObjectID) error
}

type PushStore interface {
	UpsertSubscription(ctx context.Context, sub *models.PushSubscription) error
	GetSubscription(ctx context.Context, userID primitive.ObjectID) (*models.PushSubscription, error)
	DeleteSubscription(ctx context.Context, userID primitive.ObjectID) error
}

// Notifier is how the other services trigger notification fan-out; the
// NotificationService implements it.
type Notifier interface {
	Notify(ctx context.Context, targetUserID primitive.ObjectID, notifType, title, message string, actorID, refID *primitive.ObjectID)
}
