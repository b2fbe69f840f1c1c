package repository

import (
	"context"
	"fmt"

	"github.com/foundic-app/foundic-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PushRepository struct {
	collection *mongo.Collection
}

func NewPushRepository(db *mongo.Database) *PushRepository {
	return &PushRepository{collection: db.Collection("push_subscriptions")}
}

// UpsertSubscription saves the user's browser push subscription, replacing
// any previous one.
func (r *PushRepository) UpsertSubscription(ctx context.Context, sub *models.PushSubscription) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": sub.UserID},
		bson.M{"$set": bson.M{"user_id": sub.UserID, "sub": sub.Sub}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save push subscription: %v", err)
	}
	return nil
}

// GetSubscription returns the user's push subscription, or an error when
// none exists.
func (r *PushRepository) GetSubscription(ctx context.Context, userID primitive.ObjectID) (*models.PushSubscription, error) {
	var sub models.PushSubscription
	if err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&sub); err != nil {
		return nil, fmt.Errorf("failed to find push subscription: %v", err)
	}
	return &sub, nil
}

// DeleteSubscription removes the user's push subscription.
func (r *PushRepository) DeleteSubscription(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete push subscription: %v", err)
	}
	return nil
}
