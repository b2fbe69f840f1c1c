package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/foundic-app/foundic-backend/internal/services"
	"github.com/foundic-app/foundic-backend/pkg/logger"
	"github.com/foundic-app/foundic-backend/pkg/middleware"
	"github.com/foundic-app/foundic-backend/pkg/storage"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// chatListTimeout bounds the chat list request; resolving partners for a large
// chat list is the slowest read in the app.
const chatListTimeout = 10 * time.Second

// ChatHandler handles HTTP requests for direct messages.
type ChatHandler struct {
	Service *services.ChatService
	Images  *storage.ImageStore
}

func NewChatHandler(service *services.ChatService, images *storage.ImageStore) *ChatHandler {
	return &ChatHandler{Service: service, Images: images}
}

// SendMessageHandler delivers a message to another user, creating the chat on
// first contact.
func (h *ChatHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		RecipientID string `json:"recipient_id"`
		Content     string `json:"content"`
		ImageURL    string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	recipientID, err := primitive.ObjectIDFromHex(req.RecipientID)
	if err != nil {
		http.Error(w, "Invalid recipient ID", http.StatusBadRequest)
		return
	}
	senderID, _ := primitive.ObjectIDFromHex(claims.UserID)

	msg, err := h.Service.SendMessage(r.Context(), senderID, recipientID, req.Content, req.ImageURL)
	if err != nil {
		logger.Log.WithError(err).Warnf("User %s failed to send message", claims.UserID)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

// GetChatListHandler returns the user's chats with partner profiles resolved.
func (h *ChatHandler) GetChatListHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), chatListTimeout)
	defer cancel()

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	chats, err := h.Service.GetChatList(ctx, userID)
	if err != nil {
		logger.Log.WithError(err).Errorf("Failed to load chat list for %s", claims.UserID)
		http.Error(w, "Failed to load chats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chats)
}

// GetMessagesHandler returns a chat's message history, oldest first.
func (h *ChatHandler) GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}
	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	messages, err := h.Service.GetHistory(r.Context(), chatID, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

// OpenChatHandler resolves (or creates) the chat with another user, so the
// client can navigate to it before any message exists.
func (h *ChatHandler) OpenChatHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	partnerID, err := primitive.ObjectIDFromHex(mux.Vars(r)["userId"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	chat, err := h.Service.OpenChat(r.Context(), userID, partnerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chat)
}

// UploadChatImageHandler stores a chat image and returns its URL for a
// subsequent send-message request.
func (h *ChatHandler) UploadChatImageHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.ParseMultipartForm(10 << 20) // max ~10MB
	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	url := h.Images.Store(r.Context(), "foundic/chats", uuid.New().String(), data)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
