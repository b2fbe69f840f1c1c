package models

import (
	"github.com/SherClockHolmes/webpush-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PushSubscription is a browser Web Push subscription, one per user
// (upserted on re-subscribe).
type PushSubscription struct {
	ID     primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Sub    webpush.Subscription `bson:"sub" json:"sub"`
}
