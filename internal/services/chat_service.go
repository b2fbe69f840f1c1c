package services

import (
	"context"
	"fmt"

	"github.com/foundic-app/foundic-backend/internal/models"
	"github.com/foundic-app/foundic-backend/internal/ws"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatService handles direct messages between two users.
type ChatService struct {
	repo     ChatStore
	userRepo UserStore
	notifier Notifier
	hub      *ws.Hub
}

func NewChatService(repo ChatStore, userRepo UserStore, notifier Notifier, hub *ws.Hub) *ChatService {
	return &ChatService{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		hub:      hub,
	}
}

// SendMessage delivers a message from sender to recipient, resolving the
// pair's single chat document on the way. The recipient gets a live ws event
// and a message notification.
func (s *ChatService) SendMessage(ctx context.Context, senderID, recipientID primitive.ObjectID, content, imageURL string) (*models.Message, error) {
	if senderID == recipientID {
		return nil, fmt.Errorf("cannot message yourself")
	}
	if content == "" && imageURL == "" {
		return nil, fmt.Errorf("message content is required")
	}

	chat, err := s.repo.GetOrCreateChat(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}

	msg, err := s.repo.InsertMessage(ctx, &models.Message{
		ChatID:   chat.ID,
		SenderID: senderID,
		Content:  content,
		ImageURL: imageURL,
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		ev := ws.Event{Type: "message", Data: msg}
		s.hub.SendToUser(recipientID.Hex(), ev)
		s.hub.SendToUser(senderID.Hex(), ev)
	}

	s.notifier.Notify(ctx, recipientID, models.NotifTypeMessage,
		"New message", "sent you a message", &senderID, &chat.ID)

	return msg, nil
}

// GetHistory returns the chat's messages in timestamp order. Only a
// participant may read them.
func (s *ChatService) GetHistory(ctx context.Context, chatID, userID primitive.ObjectID) ([]models.Message, error) {
	chat, err := s.repo.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat: %v", err)
	}
	if !chatHasParticipant(chat, userID) {
		return nil, fmt.Errorf("access denied to chat")
	}

	return s.repo.GetMessages(ctx, chatID)
}

// GetChatList returns the user's chats with the partner profile resolved.
// All partner names come from one batched read instead of a point-read per
// chat.
func (s *ChatService) GetChatList(ctx context.Context, userID primitive.ObjectID) ([]models.ChatSummary, error) {
	chats, err := s.repo.GetUserChats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(chats) == 0 {
		return []models.ChatSummary{}, nil
	}

	partnerIDs := make([]primitive.ObjectID, 0, len(chats))
	for i := range chats {
		if pid, ok := chatPartner(&chats[i], userID); ok {
			partnerIDs = append(partnerIDs, pid)
		}
	}

	partners := make(map[primitive.ObjectID]models.PublicUser, len(partnerIDs))
	if len(partnerIDs) > 0 {
		users, err := s.userRepo.GetUsersByIDs(ctx, partnerIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve chat partners: %v", err)
		}
		for i := range users {
			partners[users[i].ID] = users[i].Public()
		}
	}

	summaries := make([]models.ChatSummary, 0, len(chats))
	for i := range chats {
		chat := &chats[i]
		summary := models.ChatSummary{
			ID:            chat.ID,
			LastMessage:   chat.LastMessage,
			LastSenderID:  chat.LastSenderID,
			LastMessageAt: chat.LastMessageAt,
		}

		// A deleted partner renders with the "User" placeholder.
		summary.Partner = models.PublicUser{Name: "User"}
		if pid, ok := chatPartner(chat, userID); ok {
			if partner, found := partners[pid]; found {
				summary.Partner = partner
			} else {
				summary.Partner.ID = pid
			}
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// OpenChat resolves (or lazily creates) the chat with another user.
func (s *ChatService) OpenChat(ctx context.Context, userID, partnerID primitive.ObjectID) (*models.Chat, error) {
	if userID == partnerID {
		return nil, fmt.Errorf("cannot open a chat with yourself")
	}
	return s.repo.GetOrCreateChat(ctx, userID, partnerID)
}

func chatHasParticipant(chat *models.Chat, userID primitive.ObjectID) bool {
	for _, p := range chat.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

func chatPartner(chat *models.Chat, userID primitive.ObjectID) (primitive.ObjectID, bool) {
	for _, p := range chat.Participants {
		if p != userID {
			return p, true
		}
	}
	return primitive.NilObjectID, false
}
