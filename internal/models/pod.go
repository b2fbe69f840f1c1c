package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compensation types a pod can offer its members.
const (
	PodCompEquity    = "equity"
	PodCompPaid      = "paid"
	PodCompRevShare  = "revenue_share"
	PodCompVolunteer = "volunteer"
)

// Pod is a cooperative project group.
type Pod struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"title" json:"title"`
	Goal         string               `bson:"goal" json:"goal"`
	Compensation string               `bson:"compensation" json:"compensation"`
	CreatorID    primitive.ObjectID   `bson:"creator_id" json:"creator_id"`
	Members      []primitive.ObjectID `bson:"members,omitempty" json:"members,omitempty"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updated_at"`
}
