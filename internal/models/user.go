package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can pick after signing up.
const (
	RoleFounder    = "founder"
	RoleInvestor   = "investor"
	RoleFreelancer = "freelancer"
	RoleHirer      = "hirer"
	RoleAdmin      = "admin"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleFounder, RoleInvestor, RoleFreelancer, RoleHirer, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the Foundic network.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	Email          string               `bson:"email" json:"email"`
	HashedPassword string               `bson:"hashed_password" json:"-"`
	Role           string               `bson:"role" json:"role"`
	Bio            string               `bson:"bio,omitempty" json:"bio,omitempty"`
	Links          []string             `bson:"links,omitempty" json:"links,omitempty"`
	Skills         []string             `bson:"skills,omitempty" json:"skills,omitempty"`
	AvatarURL      string               `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Followers      []primitive.ObjectID `bson:"followers,omitempty" json:"followers,omitempty"`
	Following      []primitive.ObjectID `bson:"following,omitempty" json:"following,omitempty"`
	Coins          int64                `bson:"coins" json:"coins"`
	SurveyAnswers  map[string]string    `bson:"survey_answers,omitempty" json:"survey_answers,omitempty"`
	IsVerified     bool                 `bson:"is_verified" json:"is_verified"`
	VerifyToken    string               `bson:"verify_token,omitempty" json:"-"`
	ResetToken     string               `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExp  time.Time            `bson:"reset_token_exp,omitempty" json:"-"`
	LastActiveAt   time.Time            `bson:"last_active_at,omitempty" json:"last_active_at,omitempty"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the shape returned to other users (no credentials, no tokens).
type PublicUser struct {
	ID        primitive.ObjectID `json:"id"`
	Name      string             `json:"name"`
	Role      string             `json:"role"`
	Bio       string             `json:"bio,omitempty"`
	AvatarURL string             `json:"avatar_url,omitempty"`
}

// Public strips the private fields off a user document.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Role:      u.Role,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
	}
}
