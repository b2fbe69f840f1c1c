package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/foundic-app/foundic-backend/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatRepository struct {
	chats    *mongo.Collection
	messages *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{
		chats:    db.Collection("chats"),
		messages: db.Collection("messages"),
	}
}

// GetOrCreateChat resolves the single chat for an unordered participant pair.
// The pair key plus an upserting FindOneAndUpdate gives create-if-absent
// semantics; the unique index on pair_key makes two concurrent first messages
// land on the same document, with the losing upsert re-reading the winner's.
func (r *ChatRepository) GetOrCreateChat(ctx context.Context, a, b primitive.ObjectID) (*models.Chat, error) {
	pairKey := models.ChatPairKey(a, b)

	filter := bson.M{"pair_key": pairKey}
	update := bson.M{"$setOnInsert": bson.M{
		"pair_key":     pairKey,
		"participants": []primitive.ObjectID{a, b},
		"created_at":   time.Now(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var chat models.Chat
	err := r.chats.FindOneAndUpdate(ctx, filter, update, opts).Decode(&chat)
	if mongo.IsDuplicateKeyError(err) {
		err = r.chats.FindOne(ctx, filter).Decode(&chat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get or create chat: %v", err)
	}
	return &chat, nil
}

func (r *ChatRepository) GetChatByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error) {
	var chat models.Chat
	if err := r.chats.FindOne(ctx, bson.M{"_id": id}).Decode(&chat); err != nil {
		return nil, fmt.Errorf("failed to get chat: %v", err)
	}
	return &chat, nil
}

// GetUserChats returns the user's chats, most recently active first.
func (r *ChatRepository) GetUserChats(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error) {
	filter := bson.M{"participants": userID}
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})

	cursor, err := r.chats.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chats: %v", err)
	}
	defer cursor.Close(ctx)

	var chats []models.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, fmt.Errorf("failed to decode chats: %v", err)
	}
	return chats, nil
}

// InsertMessage stores a message and refreshes the chat's denormalized
// last-message snapshot. The snapshot update is best-effort: the message is
// already persisted, so a failure here only leaves the chat list stale.
func (r *ChatRepository) InsertMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.CreatedAt = time.Now()

	result, err := r.messages.InsertOne(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %v", err)
	}
	msg.ID = result.InsertedID.(primitive.ObjectID)

	preview := msg.Content
	if preview == "" && msg.ImageURL != "" {
		preview = "[image]"
	}
	_, err = r.chats.UpdateOne(ctx,
		bson.M{"_id": msg.ChatID},
		bson.M{"$set": bson.M{
			"last_message":    preview,
			"last_sender_id":  msg.SenderID,
			"last_message_at": msg.CreatedAt,
		}},
	)
	if err != nil {
		logrus.WithError(err).WithField("chatID", msg.ChatID.Hex()).Warn("Failed to update chat last message")
	}

	return msg, nil
}

// GetMessages returns a chat's messages in timestamp order.
func (r *ChatRepository) GetMessages(ctx context.Context, chatID primitive.ObjectID) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %v", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %v", err)
	}
	return messages, nil
}
