package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/foundic-app/foundic-backend/internal/services"
	"github.com/foundic-app/foundic-backend/pkg/logger"
	"github.com/foundic-app/foundic-backend/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MatchHandler handles HTTP requests for the founder-DNA survey and matches.
type MatchHandler struct {
	Service *services.MatchService
}

func NewMatchHandler(service *services.MatchService) *MatchHandler {
	return &MatchHandler{Service: service}
}

// SubmitSurveyHandler stores the user's survey answers and recomputes their
// matches.
func (h *MatchHandler) SubmitSurveyHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var answers map[string]string
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	if err := h.Service.SubmitSurvey(r.Context(), userID, answers); err != nil {
		logger.Log.WithError(err).Warnf("User %s failed to submit survey", claims.UserID)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Survey saved"})
}

// GetMatchesHandler returns the user's matches best-first.
func (h *MatchHandler) GetMatchesHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := int64(20)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			limit = parsed
		}
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	matches, err := h.Service.ListMatches(r.Context(), userID, limit)
	if err != nil {
		logger.Log.WithError(err).Errorf("Failed to list matches for %s", claims.UserID)
		http.Error(w, "Failed to load matches", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matches)
}
