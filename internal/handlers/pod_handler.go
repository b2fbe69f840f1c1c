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

// PodHandler handles HTTP requests for pods.
type PodHandler struct {
	Service *services.PodService
}

func NewPodHandler(service *services.PodService) *PodHandler {
	return &PodHandler{Service: service}
}

// CreatePodHandler creates a pod with the logged-in user as its creator.
func (h *PodHandler) CreatePodHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Title        string `json:"title"`
		Goal         string `json:"goal"`
		Compensation string `json:"compensation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	creatorID, _ := primitive.ObjectIDFromHex(claims.UserID)
	pod, err := h.Service.CreatePod(r.Context(), creatorID, req.Title, req.Goal, req.Compensation)
	if err != nil {
		logger.Log.WithError(err).Warnf("User %s failed to create pod", claims.UserID)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(pod)
}

// GetPodsHandler lists every pod.
func (h *PodHandler) GetPodsHandler(w http.ResponseWriter, r *http.Request) {
	pods, err := h.Service.GetAllPods(r.Context())
	if err != nil {
		http.Error(w, "Failed to load pods", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pods)
}

// GetPodHandler returns one pod.
func (h *PodHandler) GetPodHandler(w http.ResponseWriter, r *http.Request) {
	podID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid pod ID", http.StatusBadRequest)
		return
	}

	pod, err := h.Service.GetPod(r.Context(), podID)
	if err != nil {
		http.Error(w, "Pod not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pod)
}

// JoinPodHandler adds the logged-in user to a pod.
func (h *PodHandler) JoinPodHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	podID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid pod ID", http.StatusBadRequest)
		return
	}
	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.JoinPod(r.Context(), podID, userID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Joined pod"})
}

// LeavePodHandler removes the logged-in user from a pod.
func (h *PodHandler) LeavePodHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	podID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid pod ID", http.StatusBadRequest)
		return
	}
	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.LeavePod(r.Context(), podID, userID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Left pod"})
}
