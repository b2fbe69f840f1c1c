package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat holds exactly two participants. PairKey is derived from the sorted
// participant ids, so the same unordered pair always maps to the same chat
// document regardless of who messages first.
type Chat struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PairKey       string               `bson:"pair_key" json:"-"`
	Participants  []primitive.ObjectID `bson:"participants" json:"participants"`
	LastMessage   string               `bson:"last_message,omitempty" json:"last_message,omitempty"`
	LastSenderID  primitive.ObjectID   `bson:"last_sender_id,omitempty" json:"last_sender_id,omitempty"`
	LastMessageAt time.Time            `bson:"last_message_at,omitempty" json:"last_message_at,omitempty"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
}

// ChatPairKey returns the canonical key for an unordered participant pair.
func ChatPairKey(a, b primitive.ObjectID) string {
	ah, bh := a.Hex(), b.Hex()
	if ah < bh {
		return ah + ":" + bh
	}
	return bh + ":" + ah
}

// Message is stored in the flat messages collection keyed by chat id.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChatID    primitive.ObjectID `bson:"chat_id" json:"chat_id"`
	SenderID  primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	Content   string             `bson:"content,omitempty" json:"content,omitempty"`
	ImageURL  string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// ChatSummary is a chat joined with the other participant's public profile,
// as rendered in the chat list.
type ChatSummary struct {
	ID            primitive.ObjectID `json:"id"`
	Partner       PublicUser         `json:"partner"`
	LastMessage   string             `json:"last_message,omitempty"`
	LastSenderID  primitive.ObjectID `json:"last_sender_id,omitempty"`
	LastMessageAt time.Time          `json:"last_message_at,omitempty"`
}
