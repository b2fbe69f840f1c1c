package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/foundic-app/foundic-backend/internal/models"
	"github.com/foundic-app/foundic-backend/internal/services"
	"github.com/foundic-app/foundic-backend/pkg/logger"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// DevTestPassword is the password of every seeded test account.
const DevTestPassword = "password123"

// DevHandler exposes unauthenticated helpers for local development and
// automated tests. It must only be mounted when dev mode is enabled.
type DevHandler struct {
	Users    services.UserStore
	Notifier services.Notifier
}

func NewDevHandler(users services.UserStore, notifier services.Notifier) *DevHandler {
	return &DevHandler{Users: users, Notifier: notifier}
}

// CreateTestUserHandler seeds one pre-verified account with the shared test
// password and returns it.
func (h *DevHandler) CreateTestUserHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	user, err := h.seedUser(r, req.Name, req.Email, req.Role)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// CreateTestUsersHandler seeds a batch of pre-verified accounts, one per
// known role, and returns them.
func (h *DevHandler) CreateTestUsersHandler(w http.ResponseWriter, r *http.Request) {
	roles := []string{models.RoleFounder, models.RoleInvestor, models.RoleFreelancer, models.RoleHirer}

	users := make([]*models.User, 0, len(roles))
	for _, role := range roles {
		user, err := h.seedUser(r, "", "", role)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		users = append(users, user)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(users)
}

// DebugUsersHandler dumps every user document for inspection.
func (h *DevHandler) DebugUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.GetAllUsers(r.Context())
	if err != nil {
		http.Error(w, "Failed to load users", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// TestNotificationHandler writes a notification for the given user so the
// live listener path can be exercised without triggering a real action.
func (h *DevHandler) TestNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string `json:"user_id"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		req.Message = "This is a test notification"
	}

	h.Notifier.Notify(r.Context(), userID, models.NotifTypeMessage, "Test notification", req.Message, nil, nil)
	json.NewEncoder(w).Encode(map[string]string{"message": "Notification sent"})
}

func (h *DevHandler) seedUser(r *http.Request, name, userEmail, role string) (*models.User, error) {
	suffix := uuid.NewString()[:8]
	if name == "" {
		name = "Test User " + suffix
	}
	if userEmail == "" {
		userEmail = fmt.Sprintf("test-%s@foundic.dev", suffix)
	}
	if role == "" || !models.ValidRole(role) {
		role = models.RoleFounder
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(DevTestPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash test password: %v", err)
	}

	user, err := h.Users.CreateUser(r.Context(), &models.User{
		Name:           name,
		Email:          userEmail,
		HashedPassword: string(hashed),
		Role:           role,
		IsVerified:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed test user: %v", err)
	}

	logger.Log.Infof("Seeded test user %s (%s)", user.Email, user.ID.Hex())
	return user, nil
}
