package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types written by the fan-out paths.
const (
	NotifTypeLike        = "like"
	NotifTypeComment     = "comment"
	NotifTypeFollow      = "follow"
	NotifTypeMessage     = "message"
	NotifTypeRepost      = "repost"
	NotifTypePodInterest = "pod_interest"
	NotifTypeApplication = "application"
)

type Notification struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID  `bson:"user_id" json:"user_id"`
	Type        string              `bson:"type" json:"type"`
	Title       string              `bson:"title" json:"title"`
	Message     string              `bson:"message" json:"message"`
	ActorName   string              `bson:"actor_name,omitempty" json:"actor_name,omitempty"`
	ActorAvatar string              `bson:"actor_avatar,omitempty" json:"actor_avatar,omitempty"`
	Read        bool                `bson:"read" json:"read"`
	TargetID    *primitive.ObjectID `bson:"target_id,omitempty" json:"target_id,omitempty"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
}
