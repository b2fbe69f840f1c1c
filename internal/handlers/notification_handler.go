package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/foundic-app/foundic-backend/internal/config"
	"github.com/foundic-app/foundic-backend/internal/models"
	"github.com/foundic-app/foundic-backend/internal/services"
	"github.com/foundic-app/foundic-backend/pkg/logger"
	"github.com/foundic-app/foundic-backend/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationHandler handles HTTP requests for notifications and web push
// subscriptions.
type NotificationHandler struct {
	Service *services.NotificationService
	Config  *config.Config
}

func NewNotificationHandler(service *services.NotificationService, cfg *config.Config) *NotificationHandler {
	return &NotificationHandler{Service: service, Config: cfg}
}

// GetNotificationsHandler returns the newest page of the user's
// notifications. An optional "before" query parameter (RFC 3339) pages
// further back.
func (h *NotificationHandler) GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	before := time.Time{}
	if raw := r.URL.Query().Get("before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "Invalid before timestamp", http.StatusBadRequest)
			return
		}
		before = parsed
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	notifications, err := h.Service.GetUserNotifications(r.Context(), userID, before)
	if err != nil {
		logger.Log.WithError(err).Errorf("Failed to load notifications for %s", claims.UserID)
		http.Error(w, "Failed to load notifications", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notifications)
}

// MarkAsReadHandler marks one notification as read.
func (h *NotificationHandler) MarkAsReadHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	notifID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid notification ID", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	if err := h.Service.MarkNotificationAsRead(r.Context(), notifID, userID); err != nil {
		http.Error(w, "Notification not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Notification marked as read"})
}

// UnreadCountHandler returns the user's unread notification count for the
// badge.
func (h *NotificationHandler) UnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	count, err := h.Service.CountUnread(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to count notifications", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"unread": count})
}

// SubscribePushHandler stores the browser's push subscription.
func (h *NotificationHandler) SubscribePushHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var sub models.PushSubscription
	if err := json.NewDecoder(r.Body).Decode(&sub.Sub); err != nil {
		http.Error(w, "Invalid subscription payload", http.StatusBadRequest)
		return
	}
	sub.UserID, _ = primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.SaveSubscription(r.Context(), &sub); err != nil {
		logger.Log.WithError(err).Warnf("Failed to save push subscription for %s", claims.UserID)
		http.Error(w, "Failed to save subscription", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Subscribed"})
}

// VAPIDPublicKeyHandler exposes the server's VAPID public key so the client
// can subscribe to web push.
func (h *NotificationHandler) VAPIDPublicKeyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"public_key": h.Config.VAPIDPublicKey})
}
