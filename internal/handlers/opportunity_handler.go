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

// OpportunityHandler handles HTTP requests for the opportunities board.
type OpportunityHandler struct {
	Service *services.OpportunityService
}

func NewOpportunityHandler(service *services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{Service: service}
}

// CreateOpportunityHandler posts a new opening.
func (h *OpportunityHandler) CreateOpportunityHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Role        string `json:"role"`
		Location    string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	posterID, _ := primitive.ObjectIDFromHex(claims.UserID)
	opp, err := h.Service.CreateOpportunity(r.Context(), posterID, req.Title, req.Description, req.Role, req.Location)
	if err != nil {
		logger.Log.WithError(err).Warnf("User %s failed to create opportunity", claims.UserID)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(opp)
}

// GetOpportunitiesHandler lists open opportunities.
func (h *OpportunityHandler) GetOpportunitiesHandler(w http.ResponseWriter, r *http.Request) {
	opps, err := h.Service.GetOpenOpportunities(r.Context())
	if err != nil {
		http.Error(w, "Failed to load opportunities", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(opps)
}

// GetOpportunityHandler returns one opportunity.
func (h *OpportunityHandler) GetOpportunityHandler(w http.ResponseWriter, r *http.Request) {
	oppID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid opportunity ID", http.StatusBadRequest)
		return
	}

	opp, err := h.Service.GetOpportunity(r.Context(), oppID)
	if err != nil {
		http.Error(w, "Opportunity not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(opp)
}

// ApplyHandler records the logged-in user's application.
func (h *OpportunityHandler) ApplyHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	oppID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid opportunity ID", http.StatusBadRequest)
		return
	}
	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.Apply(r.Context(), oppID, userID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Application submitted"})
}

// WithdrawHandler removes the logged-in user's application.
func (h *OpportunityHandler) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	oppID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid opportunity ID", http.StatusBadRequest)
		return
	}
	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.Withdraw(r.Context(), oppID, userID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Application withdrawn"})
}

// CloseOpportunityHandler marks the opportunity closed; poster only.
func (h *OpportunityHandler) CloseOpportunityHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	oppID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid opportunity ID", http.StatusBadRequest)
		return
	}
	requesterID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.Close(r.Context(), oppID, requesterID); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Opportunity closed"})
}

// DeleteOpportunityHandler removes the posting; poster or admin only.
func (h *OpportunityHandler) DeleteOpportunityHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	oppID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid opportunity ID", http.StatusBadRequest)
		return
	}
	requesterID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.Delete(r.Context(), oppID, requesterID, claims.Role); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Opportunity deleted"})
}
