package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Opportunity statuses.
const (
	OpportunityOpen   = "open"
	OpportunityClosed = "closed"
)

// Opportunity is a job-like posting on the opportunities board.
type Opportunity struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	RoleSought  string               `bson:"role_sought" json:"role_sought"`
	Location    string               `bson:"location,omitempty" json:"location,omitempty"`
	PosterID    primitive.ObjectID   `bson:"poster_id" json:"poster_id"`
	Applicants  []primitive.ObjectID `bson:"applicants,omitempty" json:"applicants,omitempty"`
	Status      string               `bson:"status" json:"status"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}
