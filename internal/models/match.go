package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyQuestions are the five fixed founder-DNA questions. Answers to
// anything else are ignored by the scorer.
var SurveyQuestions = []string{
	"workStyle",
	"riskTolerance",
	"vision",
	"commitment",
	"values",
}

// DNAMatch stores the computed compatibility between two surveyed users.
// PairKey follows the same sorted-id convention as chats, so each pair has
// one match document that is overwritten on recompute.
type DNAMatch struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PairKey   string             `bson:"pair_key" json:"-"`
	UserA     primitive.ObjectID `bson:"user_a" json:"user_a"`
	UserB     primitive.ObjectID `bson:"user_b" json:"user_b"`
	Score     int                `bson:"score" json:"score"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
