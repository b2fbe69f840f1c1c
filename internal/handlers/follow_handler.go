package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/foundic-app/foundic-backend/internal/services"
	"github.com/foundic-app/foundic-backend/pkg/logger"
	"github.com/foundic-app/foundic-backend/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FollowHandler handles HTTP requests for the follow graph.
type FollowHandler struct {
	Service *services.FollowService
}

func NewFollowHandler(service *services.FollowService) *FollowHandler {
	return &FollowHandler{Service: service}
}

// FollowUserHandler makes the logged-in user follow the target user.
func (h *FollowHandler) FollowUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	targetID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	actorID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.Follow(r.Context(), actorID, targetID); err != nil {
		logger.Log.WithError(err).Warnf("User %s failed to follow %s", claims.UserID, vars["id"])
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Followed"})
}

// UnfollowUserHandler makes the logged-in user unfollow the target user.
func (h *FollowHandler) UnfollowUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	targetID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	actorID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.Unfollow(r.Context(), actorID, targetID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Unfollowed"})
}

// GetFollowersHandler lists a user's followers.
func (h *FollowHandler) GetFollowersHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	followers, err := h.Service.GetFollowers(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get followers", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(followers)
}

// GetFollowingHandler lists the users someone follows.
func (h *FollowHandler) GetFollowingHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	following, err := h.Service.GetFollowing(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get following", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(following)
}
