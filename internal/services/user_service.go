package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/foundic-app/foundic-backend/internal/models"
	"github.com/foundic-app/foundic-backend/pkg/email"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Coin awards for contributing content.
const (
	CoinsPerPost    = 10
	CoinsPerComment = 2
)

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo      UserStore
	notifRepo NotificationStore
	matchRepo MatchStore
	pushRepo  PushStore
	baseURL   string
	sendMail  func(to, subject, body string) error
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore, notifRepo NotificationStore, matchRepo MatchStore, pushRepo PushStore, baseURL string) *UserService {
	return &UserService{
		repo:      repo,
		notifRepo: notifRepo,
		matchRepo: matchRepo,
		pushRepo:  pushRepo,
		baseURL:   baseURL,
		sendMail:  email.SendEmail,
	}
}

// RegisterUser registers a new user after hashing their password. The role
// is picked in a separate onboarding step, so new accounts start without one.
func (s *UserService) RegisterUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.Email == "" || user.Name == "" || user.HashedPassword == "" {
		return nil, fmt.Errorf("missing required user fields")
	}

	if !emailRegex.MatchString(user.Email) {
		return nil, fmt.Errorf("invalid email format")
	}

	existingUser, _ := s.repo.GetUserByEmail(ctx, user.Email)
	if existingUser != nil {
		logrus.WithField("email", user.Email).Warn("Email already in use")
		return nil, fmt.Errorf("email already in use")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(user.HashedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	user.HashedPassword = string(hashedPwd)

	user.VerifyToken = uuid.NewString()
	user.IsVerified = false
	user.Coins = 0

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	verificationLink := fmt.Sprintf("%s/users/verify?token=%s", s.baseURL, createdUser.VerifyToken)
	body := fmt.Sprintf("Welcome to Foundic!\n\nPlease verify your email by clicking the link below:\n%s", verificationLink)
	if err := s.sendMail(createdUser.Email, "Email Verification", body); err != nil {
		logrus.WithError(err).Error("Failed to send verification email")
	}

	logrus.WithField("userID", createdUser.ID.Hex()).Info("User registered successfully")
	return createdUser, nil
}

// VerifyEmail activates the account matching the verification token.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.repo.GetUserByVerifyToken(ctx, token)
	if err != nil {
		return fmt.Errorf("invalid or expired verification token")
	}

	_, err = s.repo.UpdateUser(ctx, user.ID, map[string]interface{}{
		"is_verified":  true,
		"verify_token": "",
	})
	if err != nil {
		return fmt.Errorf("failed to update user verification status: %v", err)
	}
	return nil
}

// RequestPasswordReset emails a reset link valid for one hour.
func (s *UserService) RequestPasswordReset(ctx context.Context, userEmail string) error {
	user, err := s.repo.GetUserByEmail(ctx, userEmail)
	if err != nil {
		return fmt.Errorf("no account found with this email")
	}

	resetToken := uuid.NewString()
	_, err = s.repo.UpdateUser(ctx, user.ID, map[string]interface{}{
		"reset_token":     resetToken,
		"reset_token_exp": time.Now().Add(1 * time.Hour),
	})
	if err != nil {
		return fmt.Errorf("failed to save reset token")
	}

	resetLink := fmt.Sprintf("%s/users/reset-password?token=%s", s.baseURL, resetToken)
	body := fmt.Sprintf("Click the link below to reset your password:\n\n%s", resetLink)
	if err := s.sendMail(user.Email, "Reset Your Password", body); err != nil {
		return fmt.Errorf("failed to send password reset email: %v", err)
	}

	logrus.Infof("Password reset email sent to %s", userEmail)
	return nil
}

// ResetPassword sets a new password for the account matching the token.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.repo.GetUserByResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("invalid or expired reset token")
	}

	if time.Now().After(user.ResetTokenExp) {
		return fmt.Errorf("reset token has expired")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	_, err = s.repo.UpdateUser(ctx, user.ID, map[string]interface{}{
		"hashed_password": string(hashedPwd),
		"reset_token":     "",
		"reset_token_exp": time.Time{},
	})
	if err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}
	return nil
}

// AuthenticateUser verifies the credentials and returns the user if valid.
func (s *UserService) AuthenticateUser(ctx context.Context, userEmail, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	if !user.IsVerified {
		return nil, fmt.Errorf("email not verified. Please check your inbox")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", userEmail).Warn("Invalid credentials")
		return nil, fmt.Errorf("invalid credentials")
	}

	return user, nil
}

// ChooseRole sets the user's role once during onboarding; admin cannot be
// self-assigned.
func (s *UserService) ChooseRole(ctx context.Context, userID primitive.ObjectID, role string) (*models.User, error) {
	if !models.ValidRole(role) || role == models.RoleAdmin {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	if user.Role != "" {
		return nil, fmt.Errorf("role already chosen")
	}

	return s.repo.UpdateUser(ctx, userID, map[string]interface{}{"role": role})
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}

	user, err := s.repo.GetUserByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

// UpdateProfile updates the free-form profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}

	allowed := map[string]bool{"name": true, "bio": true, "links": true, "skills": true, "avatar_url": true}
	filtered := make(map[string]interface{})
	for k, v := range updates {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}

	user, err := s.repo.UpdateUser(ctx, objID, filtered)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %v", err)
	}
	return user, nil
}

// SearchUsers finds users by display name.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.PublicUser, error) {
	if query == "" {
		return []models.PublicUser{}, nil
	}

	users, err := s.repo.SearchUsers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %v", err)
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return public, nil
}

// AwardCoins bumps the user's balance; failures only cost coins, so they are
// logged and swallowed.
func (s *UserService) AwardCoins(ctx context.Context, userID primitive.ObjectID, delta int64) {
	if err := s.repo.IncrementCoins(ctx, userID, delta); err != nil {
		logrus.WithError(err).WithField("userID", userID.Hex()).Warn("Failed to award coins")
	}
}

// UpdateLastActive stamps the user's last activity time.
func (s *UserService) UpdateLastActive(ctx context.Context, userID primitive.ObjectID) error {
	return s.repo.UpdateLastActive(ctx, userID)
}

// DeleteAccount removes the user document along with their notifications,
// DNA matches, push subscription and every follow edge pointing at them.
func (s *UserService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	if err := s.repo.RemoveUserFromGraph(ctx, userID); err != nil {
		logrus.WithError(err).Warn("Failed to clean follow graph after account deletion")
	}
	if err := s.notifRepo.DeleteAllForUser(ctx, userID); err != nil {
		logrus.WithError(err).Warn("Failed to delete notifications after account deletion")
	}
	if err := s.matchRepo.DeleteMatchesForUser(ctx, userID); err != nil {
		logrus.WithError(err).Warn("Failed to delete matches after account deletion")
	}
	if err := s.pushRepo.DeleteSubscription(ctx, userID); err != nil {
		logrus.WithError(err).Warn("Failed to delete push subscription after account deletion")
	}

	logrus.WithField("userID", userID.Hex()).Info("Account deleted")
	return nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}
