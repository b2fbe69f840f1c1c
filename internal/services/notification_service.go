package services

import (
	"context"
	"time"

	"github.com/foundic-app/foundic-backend/internal/models"
	"github.com/foundic-app/foundic-backend/internal/ws"
	"github.com/foundic-app/foundic-backend/pkg/push"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultNotificationLimit caps a single notification page.
const DefaultNotificationLimit = 20

// NotificationService writes and reads notifications and fans them out to
// live WebSocket listeners and Web Push subscribers.
type NotificationService struct {
	repo     NotificationStore
	userRepo UserStore
	pushRepo PushStore
	hub      *ws.Hub
	sender   *push.Sender
}

func NewNotificationService(repo NotificationStore, userRepo UserStore, pushRepo PushStore, hub *ws.Hub, sender *push.Sender) *NotificationService {
	return &NotificationService{
		repo:     repo,
		userRepo: userRepo,
		pushRepo: pushRepo,
		hub:      hub,
		sender:   sender,
	}
}

// Notify writes a notification for the target user. Self-notification is a
// no-op. The actor lookup is best-effort: when it fails the notification is
// written with "Someone" as the actor name. Write failures are logged and
// swallowed; a lost notification never fails the action that caused it.
func (s *NotificationService) Notify(ctx context.Context, targetUserID primitive.ObjectID, notifType, title, message string, actorID, refID *primitive.ObjectID) {
	if actorID != nil && *actorID == targetUserID {
		return
	}

	actorName := "Someone"
	actorAvatar := ""
	if actorID != nil {
		actor, err := s.userRepo.GetUserByID(ctx, *actorID)
		if err != nil {
			logrus.WithError(err).Warn("Failed to look up notification actor")
		} else {
			actorName = actor.Name
			actorAvatar = actor.AvatarURL
		}
	}

	notif := &models.Notification{
		UserID:      targetUserID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		ActorName:   actorName,
		ActorAvatar: actorAvatar,
		TargetID:    refID,
	}
	if err := s.repo.CreateNotification(ctx, notif); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"targetUserID": targetUserID.Hex(),
			"type":         notifType,
		}).Error("Failed to write notification")
		return
	}

	if s.hub != nil {
		s.hub.SendToUser(targetUserID.Hex(), ws.Event{Type: "notification", Data: notif})
	}
	s.sendPush(targetUserID, title, message, actorAvatar)
}

// sendPush delivers the notification to the target's browser when they have
// a stored subscription. Every failure is log-only.
func (s *NotificationService) sendPush(targetUserID primitive.ObjectID, title, message, icon string) {
	if s.sender == nil || s.pushRepo == nil {
		return
	}

	sub, err := s.pushRepo.GetSubscription(context.Background(), targetUserID)
	if err != nil {
		return // no subscription
	}

	if err := s.sender.Send(&sub.Sub, push.Payload{Title: title, Body: message, Icon: icon}); err != nil {
		logrus.WithError(err).WithField("userID", targetUserID.Hex()).Warn("Failed to deliver web push")
	}
}

// GetUserNotifications returns the newest page of notifications for a user.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID, before time.Time) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID, before, DefaultNotificationLimit)
}

// MarkNotificationAsRead sets the "read" status of one of the user's own
// notifications to true.
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notifID, userID primitive.ObjectID) error {
	return s.repo.MarkAsRead(ctx, notifID, userID)
}

// CountUnread returns how many unread notifications the user has.
func (s *NotificationService) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// SaveSubscription stores a browser push subscription for the user.
func (s *NotificationService) SaveSubscription(ctx context.Context, sub *models.PushSubscription) error {
	return s.pushRepo.UpsertSubscription(ctx, sub)
}

// CleanupOldNotifications deletes read notifications older than maxAge.
// Called nightly by the scheduler.
func (s *NotificationService) CleanupOldNotifications(ctx context.Context, maxAge time.Duration) error {
	deleted, err := s.repo.DeleteReadBefore(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return err
	}
	logrus.Infof("Deleted %d old notifications", deleted)
	return nil
}
