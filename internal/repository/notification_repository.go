package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/foundic-app/foundic-backend/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// CreateNotification inserts a new notification with read=false and a server
// timestamp.
func (r *NotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) error {
	notif.Read = false
	notif.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, notif)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert notification")
		return fmt.Errorf("failed to create notification: %v", err)
	}
	return nil
}

// GetUserNotifications returns the newest notifications for a user, limited.
// When before is non-zero it acts as a pagination cursor.
//
// The sorted query needs a compound index; when it fails the repository
// retries without the sort and orders in memory, one fallback policy for
// every caller instead of one per component.
func (r *NotificationRepository) GetUserNotifications(ctx context.Context, userID primitive.ObjectID, before time.Time, limit int64) ([]models.Notification, error) {
	filter := bson.M{"user_id": userID}
	if !before.IsZero() {
		filter["created_at"] = bson.M{"$lt": before}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	notifications, err := r.findNotifications(ctx, filter, opts)
	if err == nil {
		return notifications, nil
	}

	logrus.WithError(err).Warn("Sorted notification query failed, falling back to unordered query")

	notifications, err = r.findNotifications(ctx, filter, options.Find())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %v", err)
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	if int64(len(notifications)) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

func (r *NotificationRepository) findNotifications(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Notification, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAsRead sets notification's Read to true. The filter includes the owner
// so a user cannot flip someone else's notification.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID, "read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %v", err)
	}
	return count, nil
}

// DeleteReadBefore removes read notifications created before the cutoff.
func (r *NotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{
		"read":       true,
		"created_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete old notifications: %v", err)
	}
	return result.DeletedCount, nil
}

// DeleteAllForUser removes every notification targeting the user, used by the
// account deletion flow.
func (r *NotificationRepository) DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete notifications for user: %v", err)
	}
	return nil
}
